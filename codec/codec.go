// Package codec puts the klauspost/compress block compressors behind one
// interface so filtered blocks can be compressed and their ratio measured.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrUnknownCodec is returned by ByName for names not in Names.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrSizeMismatch is returned when a block does not decode to exactly
	// the destination size.
	ErrSizeMismatch = errors.New("codec: decoded size mismatch")
)

// Codec compresses and decompresses whole blocks. Implementations are safe
// for concurrent use.
type Codec interface {
	// Name is the name ByName resolves to this codec.
	Name() string

	// Compress appends the compressed form of src to dst and returns the
	// extended slice.
	Compress(src, dst []byte) []byte

	// Decompress decodes src into dst, which must be exactly the size of
	// the decoded block.
	Decompress(src, dst []byte) error
}

var names = []string{"s2", "zlib", "zstd", "zstd-better"}

// Names lists the codecs ByName knows, sorted.
func Names() []string {
	return slices.Clone(names)
}

// ByName builds the codec called name.
func ByName(name string) (Codec, error) {
	switch name {
	case "s2":
		return s2Codec{}, nil
	case "zlib":
		return newZlib(zlib.DefaultCompression)
	case "zstd":
		return newZstd(name, zstd.SpeedDefault)
	case "zstd-better":
		return newZstd(name, zstd.SpeedBetterCompression)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

func sizeError(name string, got, want int) error {
	return fmt.Errorf("%w: %s produced %d bytes, want %d", ErrSizeMismatch, name, got, want)
}

// zstdCodec shares one encoder and one decoder; both run EncodeAll and
// DecodeAll concurrently.
type zstdCodec struct {
	name string
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

func newZstd(name string, level zstd.EncoderLevel) (*zstdCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("codec %s: encoder: %w", name, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("codec %s: decoder: %w", name, err)
	}
	return &zstdCodec{name: name, enc: enc, dec: dec}, nil
}

func (c *zstdCodec) Name() string { return c.name }

func (c *zstdCodec) Compress(src, dst []byte) []byte {
	return c.enc.EncodeAll(src, dst)
}

func (c *zstdCodec) Decompress(src, dst []byte) error {
	out, err := c.dec.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return fmt.Errorf("codec %s: %w", c.name, err)
	}
	if len(out) != len(dst) {
		return sizeError(c.name, len(out), len(dst))
	}
	if len(out) > 0 && &out[0] != &dst[0] {
		copy(dst, out)
	}
	return nil
}

type s2Codec struct{}

func (s2Codec) Name() string { return "s2" }

func (s2Codec) Compress(src, dst []byte) []byte {
	n := len(dst)
	dst = slices.Grow(dst, s2.MaxEncodedLen(len(src)))
	// Encode writes into its destination when it is long enough.
	out := s2.Encode(dst[n:cap(dst)], src)
	return dst[:n+len(out)]
}

func (s2Codec) Decompress(src, dst []byte) error {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return fmt.Errorf("codec s2: %w", err)
	}
	if n != len(dst) {
		return sizeError("s2", n, len(dst))
	}
	if _, err := s2.Decode(dst, src); err != nil {
		return fmt.Errorf("codec s2: %w", err)
	}
	return nil
}

// zlibCodec pools its writers; a zlib.Writer is reset onto each output.
type zlibCodec struct {
	level   int
	writers sync.Pool
}

func newZlib(level int) (*zlibCodec, error) {
	w, err := zlib.NewWriterLevel(io.Discard, level)
	if err != nil {
		return nil, fmt.Errorf("codec zlib: %w", err)
	}
	c := &zlibCodec{level: level}
	c.writers.Put(w)
	return c, nil
}

func (c *zlibCodec) Name() string { return "zlib" }

func (c *zlibCodec) Compress(src, dst []byte) []byte {
	buf := bytes.NewBuffer(dst)
	w, ok := c.writers.Get().(*zlib.Writer)
	if ok {
		w.Reset(buf)
	} else {
		// The level was accepted by newZlib, so this cannot fail.
		w, _ = zlib.NewWriterLevel(buf, c.level)
	}
	// Writes to a bytes.Buffer do not fail.
	_, _ = w.Write(src)
	_ = w.Close()
	c.writers.Put(w)
	return buf.Bytes()
}

func (c *zlibCodec) Decompress(src, dst []byte) error {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("codec zlib: %w", err)
	}
	defer r.Close()

	n, err := io.ReadFull(r, dst)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return sizeError("zlib", n, len(dst))
	}
	if err != nil {
		return fmt.Errorf("codec zlib: %w", err)
	}
	var extra [1]byte
	if m, _ := r.Read(extra[:]); m != 0 {
		return fmt.Errorf("%w: zlib produced more than %d bytes", ErrSizeMismatch, len(dst))
	}
	return nil
}
