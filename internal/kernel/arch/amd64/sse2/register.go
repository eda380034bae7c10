//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
)

// init registers the SSE2-tiled kernels with the kernel registry.
//
// SSE2 is part of the amd64 baseline, so this family is available on every
// amd64 host unless detection is overridden.
//
// Priority: 10 (medium - preferred over generic, below AVX2)
func init() {
	registry.Global.Register(registry.KernelEntry{
		Name:      "sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,

		Shuffle:      Shuffle,
		Unshuffle:    Unshuffle,
		BitShuffle:   BitShuffle,
		BitUnshuffle: BitUnshuffle,
	})
}
