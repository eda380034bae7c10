//go:build arm64 && !purego

package shuffle

// This file imports arm64-specific kernel packages to trigger their init()
// functions, which register the kernel families with the global registry.

import (
	// Generic kernels (pure Go reference)
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/generic"

	// ARM64 kernels
	_ "github.com/cwbudde/algo-blosc/internal/kernel/arch/arm64/neon"
)
