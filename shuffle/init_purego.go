//go:build purego

package shuffle

import (
	// Generic kernels (pure Go reference)
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/generic"
)
