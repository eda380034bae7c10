//go:build amd64 && !purego

package shuffle

// This file imports amd64-specific kernel packages to trigger their init()
// functions, which register the kernel families with the global registry.

import (
	// Generic kernels (pure Go reference)
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/generic"

	// AMD64 kernels
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/amd64/avx2"
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/amd64/sse2"
)
