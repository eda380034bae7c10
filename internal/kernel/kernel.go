// Package kernel defines the contract shared by every transposition kernel:
// the function shapes, the error conditions a kernel may report, and the
// bounded scratch allocation used by the bit transposes.
//
// A kernel never retains dst, src, or tmp past the call and never reads or
// writes outside [0, len(src)) of src and dst.
package kernel

import (
	"errors"
	"math"
)

// MaxScratch is the largest scratch buffer a kernel will allocate.
// It matches the largest block the container layer can describe.
const MaxScratch = math.MaxInt32

var (
	// ErrUnsupported is returned by an accelerated kernel that cannot serve
	// the requested geometry. The dispatcher treats it as "try the next kernel".
	ErrUnsupported = errors.New("kernel: unsupported geometry")

	// ErrScratchAlloc is returned when a scratch buffer cannot be obtained.
	ErrScratchAlloc = errors.New("kernel: scratch allocation failed")
)

// ShuffleFunc transposes (or untransposes) the bytes of src into dst for
// elements of elemSize bytes. len(dst) >= len(src) and elemSize >= 1 are
// guaranteed by the caller. It returns len(src) on success.
type ShuffleFunc func(dst, src []byte, elemSize int) (int, error)

// BitShuffleFunc is a bit-level transpose. tmp is optional scratch space;
// when it is shorter than needed the kernel allocates through Scratch.
type BitShuffleFunc func(dst, src, tmp []byte, elemSize int) (int, error)

// Scratch returns tmp resliced to n bytes when its capacity allows,
// otherwise a freshly allocated buffer. Requests above limit fail with
// ErrScratchAlloc; a limit <= 0 means MaxScratch.
func Scratch(tmp []byte, n, limit int) ([]byte, error) {
	if cap(tmp) >= n {
		return tmp[:n], nil
	}
	if limit <= 0 {
		limit = MaxScratch
	}
	if n > limit {
		return nil, ErrScratchAlloc
	}
	return make([]byte, n), nil
}

// BitGroupElems returns the number of leading elements of a block of n
// elements that take part in a bit transpose: bit rows pack 8 elements per
// byte, so the count is rounded down to a multiple of 8.
func BitGroupElems(n int) int {
	return n - n%8
}
