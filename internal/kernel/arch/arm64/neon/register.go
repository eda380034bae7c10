//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
)

// init registers the NEON-tiled kernels with the kernel registry.
//
// NEON (Advanced SIMD) is standard on all ARMv8/ARM64 processors. Only the
// byte shuffles are provided; the dispatcher resolves the bit transposes to
// the generic kernels.
//
// Priority: 15 (between SSE2 and AVX2 for consistency)
func init() {
	registry.Global.Register(registry.KernelEntry{
		Name:      "neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,

		Shuffle:   Shuffle,
		Unshuffle: Unshuffle,
	})
}
