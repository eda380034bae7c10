//go:build !amd64 && !arm64 && !purego

package shuffle

// This file imports the generic kernel package for unsupported architectures.

import (
	// Generic kernels (pure Go reference)
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/generic"
)
