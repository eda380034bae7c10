package codec

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cwbudde/algo-blosc/internal/testutil"
)

func mustCodec(t testing.TB, name string) Codec {
	t.Helper()
	c, err := ByName(name)
	if err != nil {
		t.Fatalf("ByName(%q): %v", name, err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"ramp":   testutil.Ramp32(1000, 0, 1),
		"random": testutil.DeterministicBytes(1, 4096),
		"mixed":  testutil.MixedInt32(512),
	}
	for _, name := range Names() {
		c := mustCodec(t, name)
		if c.Name() != name {
			t.Fatalf("ByName(%q).Name() = %q", name, c.Name())
		}
		for label, src := range inputs {
			t.Run(name+"/"+label, func(t *testing.T) {
				comp := c.Compress(src, nil)
				dst := make([]byte, len(src))
				if err := c.Decompress(comp, dst); err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(dst, src) {
					t.Fatal("round trip mismatch")
				}
			})
		}
	}
}

func TestCompressAppends(t *testing.T) {
	src := testutil.Ramp32(256, 7, 3)
	for _, name := range Names() {
		c := mustCodec(t, name)
		prefix := []byte("hdr:")
		out := c.Compress(src, append([]byte(nil), prefix...))
		if !bytes.HasPrefix(out, prefix) {
			t.Fatalf("%s: prefix lost", name)
		}
		dst := make([]byte, len(src))
		if err := c.Decompress(out[len(prefix):], dst); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(dst, src) {
			t.Fatalf("%s: round trip mismatch", name)
		}
	}
}

func TestDecompressWrongSize(t *testing.T) {
	src := testutil.Ramp32(64, 0, 1)
	for _, name := range Names() {
		c := mustCodec(t, name)
		comp := c.Compress(src, nil)
		if err := c.Decompress(comp, make([]byte, len(src)-1)); !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("%s: short destination: err = %v, want ErrSizeMismatch", name, err)
		}
		if err := c.Decompress(comp, make([]byte, len(src)+1)); !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("%s: long destination: err = %v, want ErrSizeMismatch", name, err)
		}
	}
}

func TestDecompressGarbage(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8}
	for _, name := range Names() {
		if err := mustCodec(t, name).Decompress(garbage, make([]byte, 64)); err == nil {
			t.Errorf("%s: garbage accepted", name)
		}
	}
}

func TestRampCompressesWell(t *testing.T) {
	src := testutil.Ramp32(4096, 0, 0)
	for _, name := range Names() {
		comp := mustCodec(t, name).Compress(src, nil)
		if len(comp) > len(src)/10 {
			t.Errorf("%s: %d -> %d bytes", name, len(src), len(comp))
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	for _, name := range Names() {
		c := mustCodec(t, name)
		var wg sync.WaitGroup
		errs := make([]error, 8)
		for g := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				src := testutil.DeterministicBytes(int64(g), 2048+g)
				dst := make([]byte, len(src))
				if err := c.Decompress(c.Compress(src, nil), dst); err != nil {
					errs[g] = err
					return
				}
				if !bytes.Equal(dst, src) {
					errs[g] = fmt.Errorf("goroutine %d: round trip mismatch", g)
				}
			}()
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
		}
	}
}

func TestUnknownCodec(t *testing.T) {
	c, err := ByName("lz4")
	if c != nil || !errors.Is(err, ErrUnknownCodec) {
		t.Fatalf("ByName(lz4) = %v, %v; want nil, ErrUnknownCodec", c, err)
	}
}
