package generic

import (
	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
)

// init registers the reference kernels with the kernel registry.
//
// The reference kernels define the output every accelerated kernel must
// reproduce, and serve as the terminal fallback when no accelerated kernel
// applies or when ForceGeneric is enabled.
//
// Priority: 0 (lowest - used only when no accelerated alternative accepts the call)
func init() {
	registry.Global.Register(Entry())
}

// Entry returns the registry entry describing the reference kernels.
func Entry() registry.KernelEntry {
	return registry.KernelEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,

		Shuffle:      Shuffle,
		Unshuffle:    Unshuffle,
		BitShuffle:   BitShuffle,
		BitUnshuffle: BitUnshuffle,
	}
}
