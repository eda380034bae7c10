package filter

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cwbudde/algo-blosc/internal/cpu"
	"github.com/cwbudde/algo-blosc/internal/kernel"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
	"github.com/cwbudde/algo-blosc/internal/testutil"
	"github.com/cwbudde/algo-blosc/shuffle"
)

func TestShuffleByteDeltaRamp(t *testing.T) {
	src := testutil.Ramp32(100, 0, 1)
	orig := append([]byte(nil), src...)
	cfg := Config{{ID: Shuffle, Meta: 4}, {ID: ByteDelta}}

	p, err := New(cfg, 4, WithRegistry(DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 400 {
		t.Fatalf("len = %d, want 400", len(out))
	}

	// The low-byte stream becomes 0,1,1,...; the three high streams are zero.
	nonzero := 0
	for i, b := range out {
		if b > 1 {
			t.Fatalf("out[%d] = %d, want at most 1", i, b)
		}
		if b != 0 {
			nonzero++
		}
	}
	if nonzero != 99 {
		t.Fatalf("%d nonzero bytes, want 99", nonzero)
	}

	back, err := p.Backward(out)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBytesEqual(t, back, orig)
	testutil.RequireBytesEqual(t, src, orig)
}

func TestInverseLaw(t *testing.T) {
	configs := []string{
		"",
		"shuffle",
		"bitshuffle",
		"delta",
		"bytedelta",
		"shuffle,bytedelta",
		"delta,bitshuffle",
		"bytedelta,shuffle:2,delta",
		"bitshuffle,shuffle,nofilter,delta",
		"shuffle,bitshuffle,delta,bytedelta,shuffle:3,bitshuffle:1",
	}
	typeSizes := []int{1, 2, 4, 8, 12}
	sizes := []int{0, 1, 7, 100, 1001, 4096}

	for _, text := range configs {
		cfg, err := ParseConfig(text)
		if err != nil {
			t.Fatal(err)
		}
		for _, ts := range typeSizes {
			p, err := New(cfg, ts, WithRegistry(DefaultRegistry()))
			if err != nil {
				t.Fatal(err)
			}
			for _, size := range sizes {
				src := testutil.DeterministicBytes(int64(size*17+ts), size)
				fwd, err := p.Forward(src)
				if err != nil {
					t.Fatalf("%q ts=%d size=%d: forward: %v", text, ts, size, err)
				}
				back, err := p.Backward(fwd)
				if err != nil {
					t.Fatalf("%q ts=%d size=%d: backward: %v", text, ts, size, err)
				}
				if !bytes.Equal(back, src) {
					t.Fatalf("%q ts=%d size=%d: round trip differs at %d", text, ts, size, testutil.FirstDiff(back, src))
				}
			}
		}
	}
}

func TestNDCellPipeline(t *testing.T) {
	src := testutil.DeterministicBytes(21, 10*10*4)
	cfg := Config{{ID: NDCell, Meta: 4}, {ID: Shuffle}, {ID: ByteDelta}}
	p, err := New(cfg, 4, WithRegistry(DefaultRegistry()), WithBlockShape(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	fwd, err := p.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	back, err := p.Backward(fwd)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBytesEqual(t, back, src)
}

func TestNDCellPipelineWithoutShape(t *testing.T) {
	p, err := New(Config{{ID: NDCell, Meta: 2}}, 4, WithRegistry(DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Forward(make([]byte, 64))
	if !errors.Is(err, ErrBlockShape) {
		t.Fatalf("err = %v, want ErrBlockShape", err)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		typeSize int
		want     error
	}{
		{"unknown id", Config{{ID: Shuffle}, {ID: 200}}, 4, ErrUnknownFilter},
		{"unregistered low id", Config{{ID: LastBuiltin}}, 4, ErrUnknownFilter},
		{"too many", make(Config, MaxFilters+1), 4, ErrTooManyFilters},
		{"typesize zero", Config{{ID: Shuffle}}, 0, ErrInvalidTypeSize},
		{"typesize too big", Config{{ID: Shuffle}}, 256, ErrInvalidTypeSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, tt.typeSize, WithRegistry(DefaultRegistry()))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmptyPipelineCopies(t *testing.T) {
	p, err := New(Config{{}, {}}, 4, WithRegistry(DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	src := []byte{1, 2, 3}
	out, err := p.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	out[0] = 9
	if src[0] != 1 {
		t.Fatal("pipeline returned the caller's buffer")
	}
}

func TestStageErrorContext(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.MustRegister(UserRegisteredStart, DeltaForward, func(dst, src []byte, p Params) error {
		dst[0] = 0xEE
		return boom
	})

	p, err := New(Config{{ID: Shuffle}, {ID: UserRegisteredStart}, {ID: Delta}}, 4, WithRegistry(r))
	if !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("delta is not in the custom registry: err = %v", err)
	}

	r2 := DefaultRegistry()
	r2.MustRegister(UserRegisteredStart, DeltaForward, func(dst, src []byte, p Params) error {
		dst[0] = 0xEE
		return boom
	})
	p, err = New(Config{{ID: Shuffle}, {ID: UserRegisteredStart}, {ID: Delta}}, 4, WithRegistry(r2))
	if err != nil {
		t.Fatal(err)
	}

	src := testutil.Ramp32(16, 5, 3)
	orig := append([]byte(nil), src...)
	fwd, err := p.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	frozen := append([]byte(nil), fwd...)

	_, err = p.Backward(fwd)
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StageError", err)
	}
	if se.Direction != DirectionBackward || se.Stage != 1 || se.ID != UserRegisteredStart {
		t.Fatalf("unexpected stage error %+v", se)
	}
	if !errors.Is(err, boom) {
		t.Fatal("stage error does not unwrap to the filter error")
	}
	testutil.RequireBytesEqual(t, fwd, frozen)
	testutil.RequireBytesEqual(t, src, orig)
}

func TestScratchLimit(t *testing.T) {
	src := testutil.Ramp32(100, 0, 1)
	orig := append([]byte(nil), src...)

	p, err := New(Config{{ID: Delta}, {ID: BitShuffle}}, 4,
		WithRegistry(DefaultRegistry()), WithScratchLimit(16))
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Forward(src)
	if !errors.Is(err, kernel.ErrScratchAlloc) {
		t.Fatalf("err = %v, want ErrScratchAlloc", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != 1 || se.ID != BitShuffle {
		t.Fatalf("unexpected error context: %v", err)
	}
	testutil.RequireBytesEqual(t, src, orig)

	p, err = New(Config{{ID: BitShuffle}}, 4, WithRegistry(DefaultRegistry()), WithScratchLimit(len(src)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Forward(src); err != nil {
		t.Fatalf("limit equal to block size: %v", err)
	}
}

func TestWithDispatcher(t *testing.T) {
	reg := &registry.KernelRegistry{}
	d := shuffle.NewDispatcher(reg, func() cpu.Features { return cpu.Features{} })

	p, err := New(Config{{ID: BitShuffle}}, 8, WithRegistry(DefaultRegistry()), WithDispatcher(d))
	if err != nil {
		t.Fatal(err)
	}
	src := testutil.Arange64(32)
	fwd, err := p.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	if d.State() != shuffle.Bound {
		t.Fatal("pipeline did not use the supplied dispatcher")
	}
	back, err := p.Backward(fwd)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBytesEqual(t, back, src)
}

func TestShuffleMetaOverridesTypeSize(t *testing.T) {
	src := testutil.DeterministicBytes(31, 64)
	a, err := New(Config{{ID: Shuffle, Meta: 2}}, 8, WithRegistry(DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Config{{ID: Shuffle}}, 2, WithRegistry(DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	outA, err := a.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	outB, err := b.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBytesEqual(t, outA, outB)
}

func TestConcurrentPipelines(t *testing.T) {
	p, err := New(Config{{ID: Shuffle}, {ID: BitShuffle}, {ID: ByteDelta}}, 4, WithRegistry(DefaultRegistry()))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			src := testutil.DeterministicBytes(seed, 4000)
			fwd, err := p.Forward(src)
			if err != nil {
				errs <- err
				return
			}
			back, err := p.Backward(fwd)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(back, src) {
				errs <- fmt.Errorf("seed %d: round trip mismatch", seed)
			}
		}(int64(g))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestPackageForwardBackward(t *testing.T) {
	cfg := Config{{ID: Shuffle}, {ID: ByteDelta}}
	src := testutil.MixedInt32(64)
	fwd, err := Forward(cfg, 4, src)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Backward(cfg, 4, fwd)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBytesEqual(t, back, src)
	if !Global.Sealed() {
		t.Fatal("Global not sealed after use")
	}
}

func BenchmarkPipelineForward(b *testing.B) {
	p, err := New(Config{{ID: Shuffle}, {ID: ByteDelta}}, 4)
	if err != nil {
		b.Fatal(err)
	}
	src := testutil.Ramp32(64*1024, 0, 7)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Forward(src); err != nil {
			b.Fatal(err)
		}
	}
}
