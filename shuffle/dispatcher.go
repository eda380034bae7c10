package shuffle

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel"
	"github.com/cwbudde/algo-blosc/internal/kernel/arch/generic"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
)

// MaxElemSize is the largest element size accepted by the dispatcher.
const MaxElemSize = 255

var (
	// ErrInvalidElemSize is returned for element sizes outside 1..MaxElemSize.
	ErrInvalidElemSize = errors.New("shuffle: invalid element size")

	// ErrShortBuffer is returned when dst is shorter than src.
	ErrShortBuffer = errors.New("shuffle: destination shorter than source")
)

// Op names one of the four logical transposition operations.
type Op int

const (
	OpShuffle Op = iota
	OpUnshuffle
	OpBitShuffle
	OpBitUnshuffle

	numOps
)

// Ops lists every operation in declaration order.
var Ops = [...]Op{OpShuffle, OpUnshuffle, OpBitShuffle, OpBitUnshuffle}

func (o Op) String() string {
	switch o {
	case OpShuffle:
		return "shuffle"
	case OpUnshuffle:
		return "unshuffle"
	case OpBitShuffle:
		return "bitshuffle"
	case OpBitUnshuffle:
		return "bitunshuffle"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// State is the binding state of a Dispatcher.
type State int32

const (
	Uninitialized State = iota
	Probing
	Bound
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Probing:
		return "probing"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type candidate struct {
	name  string
	bytes kernel.ShuffleFunc
	bits  kernel.BitShuffleFunc
}

// binding is the immutable result of one probe.
type binding struct {
	features cpu.Features
	chains   [numOps][]candidate
}

// Dispatcher selects kernels from a registry for the CPU features reported
// by its detect function. The zero value is not usable; use NewDispatcher.
type Dispatcher struct {
	reg    *registry.KernelRegistry
	detect func() cpu.Features

	mu    sync.Mutex
	state atomic.Int32
	bound atomic.Pointer[binding]
}

// NewDispatcher returns an unbound dispatcher. Binding happens on Init or on
// the first operation.
func NewDispatcher(reg *registry.KernelRegistry, detect func() cpu.Features) *Dispatcher {
	return &Dispatcher{reg: reg, detect: detect}
}

// Default dispatches over the process-wide kernel registry using the
// detected CPU features.
var Default = NewDispatcher(registry.Global, cpu.DetectFeatures)

// State reports the current binding state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Init binds every operation. It is idempotent and safe for concurrent use.
func (d *Dispatcher) Init() {
	d.binding()
}

// Reset drops the binding so the next call probes again.
// This function is intended for testing purposes only.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bound.Store(nil)
	d.state.Store(int32(Uninitialized))
}

// Features returns the CPU features the binding was made for.
func (d *Dispatcher) Features() cpu.Features {
	return d.binding().features
}

// Implementation returns the name of the preferred kernel family for op.
func (d *Dispatcher) Implementation(op Op) string {
	chain := d.chain(op)
	if len(chain) == 0 {
		return ""
	}
	return chain[0].name
}

// Candidates returns the kernel family names tried for op, in order.
func (d *Dispatcher) Candidates(op Op) []string {
	chain := d.chain(op)
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.name
	}
	return names
}

func (d *Dispatcher) chain(op Op) []candidate {
	if op < 0 || op >= numOps {
		return nil
	}
	return d.binding().chains[op]
}

func (d *Dispatcher) binding() *binding {
	if b := d.bound.Load(); b != nil {
		return b
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if b := d.bound.Load(); b != nil {
		return b
	}

	d.state.Store(int32(Probing))
	b := d.probe()
	d.bound.Store(b)
	d.state.Store(int32(Bound))
	return b
}

// probe builds the candidate chains. Must be called with d.mu held.
func (d *Dispatcher) probe() *binding {
	b := &binding{features: d.detect()}

	var entries []registry.KernelEntry
	if d.reg != nil {
		entries = d.reg.LookupAll(b.features)
	}
	ref := generic.Entry()
	if n := len(entries); n == 0 || entries[n-1].Name != ref.Name {
		entries = append(entries, ref)
	}

	for _, e := range entries {
		b.addByte(OpShuffle, e.Name, e.Shuffle)
		b.addByte(OpUnshuffle, e.Name, e.Unshuffle)
		b.addBit(OpBitShuffle, e.Name, e.BitShuffle)
		b.addBit(OpBitUnshuffle, e.Name, e.BitUnshuffle)
	}
	return b
}

func (b *binding) addByte(op Op, name string, fn kernel.ShuffleFunc) {
	if fn != nil {
		b.chains[op] = append(b.chains[op], candidate{name: name, bytes: fn})
	}
}

func (b *binding) addBit(op Op, name string, fn kernel.BitShuffleFunc) {
	if fn != nil {
		b.chains[op] = append(b.chains[op], candidate{name: name, bits: fn})
	}
}

func validate(dst, src []byte, elemSize int) error {
	if elemSize < 1 || elemSize > MaxElemSize {
		return fmt.Errorf("%w: %d", ErrInvalidElemSize, elemSize)
	}
	if len(dst) < len(src) {
		return fmt.Errorf("%w: %d < %d", ErrShortBuffer, len(dst), len(src))
	}
	return nil
}

func (d *Dispatcher) runBytes(op Op, dst, src []byte, elemSize int) (int, error) {
	if err := validate(dst, src, elemSize); err != nil {
		return 0, err
	}
	dst = dst[:len(src)]
	for _, c := range d.chain(op) {
		n, err := c.bytes(dst, src, elemSize)
		if errors.Is(err, kernel.ErrUnsupported) {
			continue
		}
		return n, err
	}
	return 0, kernel.ErrUnsupported
}

func (d *Dispatcher) runBits(op Op, dst, src, tmp []byte, elemSize int) (int, error) {
	if err := validate(dst, src, elemSize); err != nil {
		return 0, err
	}
	dst = dst[:len(src)]
	for _, c := range d.chain(op) {
		n, err := c.bits(dst, src, tmp, elemSize)
		if errors.Is(err, kernel.ErrUnsupported) {
			continue
		}
		return n, err
	}
	return 0, kernel.ErrUnsupported
}

// Shuffle byte-transposes src into dst. dst must not overlap src.
func (d *Dispatcher) Shuffle(dst, src []byte, elemSize int) (int, error) {
	return d.runBytes(OpShuffle, dst, src, elemSize)
}

// Unshuffle reverses Shuffle.
func (d *Dispatcher) Unshuffle(dst, src []byte, elemSize int) (int, error) {
	return d.runBytes(OpUnshuffle, dst, src, elemSize)
}

// BitShuffle bit-transposes src into dst. tmp is optional scratch of
// len(src) bytes; when its capacity is too small the kernel allocates.
func (d *Dispatcher) BitShuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	return d.runBits(OpBitShuffle, dst, src, tmp, elemSize)
}

// BitUnshuffle reverses BitShuffle.
func (d *Dispatcher) BitUnshuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	return d.runBits(OpBitUnshuffle, dst, src, tmp, elemSize)
}

// Init binds the Default dispatcher.
func Init() { Default.Init() }

// Implementation reports the preferred kernel family for op on Default.
func Implementation(op Op) string { return Default.Implementation(op) }

// Shuffle byte-transposes src into dst using Default.
func Shuffle(dst, src []byte, elemSize int) (int, error) {
	return Default.Shuffle(dst, src, elemSize)
}

// Unshuffle reverses Shuffle using Default.
func Unshuffle(dst, src []byte, elemSize int) (int, error) {
	return Default.Unshuffle(dst, src, elemSize)
}

// BitShuffle bit-transposes src into dst using Default.
func BitShuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	return Default.BitShuffle(dst, src, tmp, elemSize)
}

// BitUnshuffle reverses BitShuffle using Default.
func BitUnshuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	return Default.BitUnshuffle(dst, src, tmp, elemSize)
}
