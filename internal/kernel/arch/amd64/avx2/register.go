//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
)

// init registers the AVX2-tiled kernels with the kernel registry.
//
// AVX2 provides 256-bit integer operations. Available on Intel Haswell
// (2013+) and AMD Excavator (2015+). The bit kernels refuse elements wider
// than MaxBitElemSize, which the dispatcher answers with the next family.
//
// Priority: 20 (high - preferred over SSE2 and generic when available)
func init() {
	registry.Global.Register(registry.KernelEntry{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,

		Shuffle:      Shuffle,
		Unshuffle:    Unshuffle,
		BitShuffle:   BitShuffle,
		BitUnshuffle: BitUnshuffle,
	})
}
