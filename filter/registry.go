package filter

import (
	"fmt"
	"slices"
	"sync"
	"unsafe"
)

// Params carries the context a filter function runs with.
type Params struct {
	// TypeSize is the element size of the block, in bytes.
	TypeSize int

	// Meta is the slot metadata. Its meaning is filter specific.
	Meta uint8

	// BlockShape is the N-dimensional shape of the block, in elements,
	// for filters that reorder along dimensions. It may be nil.
	BlockShape []int
}

// Func transforms src into dst. dst has exactly len(src) bytes and never
// overlaps src. Implementations must not retain either slice.
type Func func(dst, src []byte, p Params) error

// Entry is an immutable registry binding.
type Entry struct {
	ID       ID
	Forward  Func
	Backward Func
}

// Registry maps filter identifiers to forward/backward pairs.
//
// Registration is expected to finish before pipelines run: building a
// Pipeline seals the registry it resolves against, after which Register
// fails with ErrRegistrySealed. Lookups are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[ID]Entry
	sealed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ID]Entry)}
}

// DefaultRegistry creates a registry holding the built-in filters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.put(Delta, DeltaForward, DeltaBackward)
	r.put(TruncPrec, TruncPrecForward, TruncPrecBackward)
	r.put(NDCell, NDCellForward, NDCellBackward)
	r.put(NDMean, NDMeanForward, NDMeanBackward)
	r.put(ByteDelta, ByteDeltaForward, ByteDeltaBackward)
	return r
}

// Global is the process-wide registry used by the package-level Forward and
// Backward functions.
var Global = DefaultRegistry()

func (r *Registry) put(id ID, forward, backward Func) {
	r.entries[id] = Entry{ID: id, Forward: forward, Backward: backward}
}

// Register binds id to a forward/backward pair.
//
// Registering the same pair again is a no-op. Registering a different pair
// under a bound id fails with ErrFilterConflict and keeps the original.
// Closures are the same only when they are the same instance; a factory
// called twice yields a different pair.
func (r *Registry) Register(id ID, forward, backward Func) error {
	if id < GlobalRegisteredStart {
		return fmt.Errorf("%w: %d", ErrReservedID, id)
	}
	if forward == nil || backward == nil {
		return fmt.Errorf("filter: nil function for id %d", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.entries[id]; ok {
		if sameFunc(old.Forward, forward) && sameFunc(old.Backward, backward) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrFilterConflict, id)
	}
	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, id)
	}

	r.put(id, forward, backward)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id ID, forward, backward Func) {
	if err := r.Register(id, forward, backward); err != nil {
		panic("filter registry: " + err.Error())
	}
}

// Lookup returns the entry bound to id. The boolean is false when id is not
// registered.
func (r *Registry) Lookup(id ID) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// IDs returns the registered identifiers in ascending order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Seal stops further registration.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// sameFunc reports whether a and b are the same func value: the same
// top-level function or the same closure instance. A func value points at
// its closure record, so two closures created separately differ even when
// they share code.
func sameFunc(a, b Func) bool {
	return *(*unsafe.Pointer)(unsafe.Pointer(&a)) == *(*unsafe.Pointer)(unsafe.Pointer(&b))
}
