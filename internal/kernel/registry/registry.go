// Package registry provides the implementation registry for transposition kernels.
//
// The registry-based dispatch system allows multiple kernel families
// (generic, SSE2, AVX2, NEON) to coexist. Architecture-specific packages
// register themselves via init() functions, and the shuffle dispatcher asks
// the registry for every family the current CPU supports, in priority order.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel"
)

// KernelEntry represents a registered kernel family.
//
// Not all fields need to be populated - a family only provides the
// operations it accelerates, and the dispatcher skips nil functions.
type KernelEntry struct {
	// Name is a human-readable identifier for this family (e.g., "avx2", "neon").
	Name string

	// SIMDLevel indicates the SIMD instruction set the family is tiled for.
	SIMDLevel cpu.SIMDLevel

	// Priority determines selection order when multiple compatible families exist.
	// Higher priority families are preferred. Suggested priorities:
	//   - Generic (SIMDNone): 0
	//   - SSE2: 10
	//   - NEON: 15
	//   - AVX2: 20
	Priority int

	// Shuffle groups corresponding bytes of every element together.
	Shuffle kernel.ShuffleFunc

	// Unshuffle is the inverse of Shuffle.
	Unshuffle kernel.ShuffleFunc

	// BitShuffle groups corresponding bits of every element together.
	BitShuffle kernel.BitShuffleFunc

	// BitUnshuffle is the inverse of BitShuffle.
	BitUnshuffle kernel.BitShuffleFunc
}

// KernelRegistry manages the registration and lookup of kernel families.
type KernelRegistry struct {
	mu      sync.RWMutex
	entries []KernelEntry
	sorted  bool // true if entries are sorted by priority (descending)
}

// Global is the default registry instance used by the shuffle dispatcher.
var Global = &KernelRegistry{}

// Register adds a kernel family to the registry.
//
// This function is typically called from init() functions in architecture-specific
// packages. It is safe to call concurrently, but all registrations should
// complete before the dispatcher binds.
func (r *KernelRegistry) Register(entry KernelEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup finds the highest-priority family compatible with the given CPU
// features, or nil when nothing compatible is registered.
func (r *KernelRegistry) Lookup(features cpu.Features) *KernelEntry {
	all := r.LookupAll(features)
	if len(all) == 0 {
		return nil
	}
	return &all[0]
}

// LookupAll returns copies of every family compatible with the CPU features,
// highest priority first. The dispatcher builds its fallback chains from it.
func (r *KernelRegistry) LookupAll(features cpu.Features) []KernelEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []KernelEntry
	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			out = append(out, r.entries[i])
		}
	}
	return out
}

// sortByPriority sorts entries by priority in descending order.
// Must be called with r.mu held (write lock).
func (r *KernelRegistry) sortByPriority() {
	// Insertion sort keeps registration order among equal priorities.
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of all registered entries.
// This function is primarily intended for testing and debugging.
func (r *KernelRegistry) ListEntries() []KernelEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]KernelEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all registered entries.
// This function is intended for testing purposes only.
func (r *KernelRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
