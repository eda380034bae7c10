package avx2

import (
	"github.com/cwbudde/algo-blosc/internal/kernel"
	"github.com/cwbudde/algo-blosc/internal/kernel/swar"
)

const (
	// MaxBitElemSize is the widest element the bit kernels accept.
	MaxBitElemSize = 32

	// groupsPerStep is the number of 8-element bit groups handled per step.
	groupsPerStep = 4
)

// lanes holds, for every byte offset j of the element, one 64-bit word per
// group of the current step: byte r of lanes[j][q] is byte j of element r
// of group q.
type lanes [MaxBitElemSize][groupsPerStep]uint64

// BitShuffle transposes the leading whole bit groups without scratch space.
// Output is identical to generic.BitShuffle; tmp is unused.
func BitShuffle(dst, src, _ []byte, elemSize int) (int, error) {
	if elemSize > MaxBitElemSize {
		return 0, kernel.ErrUnsupported
	}
	size := len(src)
	nb := kernel.BitGroupElems(size / elemSize)
	stride := nb / 8

	var l lanes
	for g := 0; g < stride; g += groupsPerStep {
		groups := min(groupsPerStep, stride-g)
		for q := 0; q < groups; q++ {
			loadGroup(&l, q, src[(g+q)*8*elemSize:], elemSize)
		}
		for j := 0; j < elemSize; j++ {
			out := dst[j*8*stride+g:]
			for q := 0; q < groups; q++ {
				swar.BitTransposeRow(out[q:], l[j][q], stride)
			}
		}
	}
	nbyte := nb * elemSize
	copy(dst[nbyte:size], src[nbyte:])
	return size, nil
}

// BitUnshuffle is the inverse of BitShuffle.
func BitUnshuffle(dst, src, _ []byte, elemSize int) (int, error) {
	if elemSize > MaxBitElemSize {
		return 0, kernel.ErrUnsupported
	}
	size := len(src)
	nb := kernel.BitGroupElems(size / elemSize)
	stride := nb / 8

	var l lanes
	for g := 0; g < stride; g += groupsPerStep {
		groups := min(groupsPerStep, stride-g)
		for j := 0; j < elemSize; j++ {
			in := src[j*8*stride+g:]
			for q := 0; q < groups; q++ {
				l[j][q] = swar.GatherPlanes(in[q:], stride)
			}
		}
		for q := 0; q < groups; q++ {
			storeGroup(dst[(g+q)*8*elemSize:], &l, q, elemSize)
		}
	}
	nbyte := nb * elemSize
	copy(dst[nbyte:size], src[nbyte:])
	return size, nil
}

// loadGroup splits the eight elements at src into byte-offset words in lane q.
func loadGroup(l *lanes, q int, src []byte, elemSize int) {
	var m [8]uint64
	for c := 0; c < elemSize; c += 8 {
		w := min(8, elemSize-c)
		for r := 0; r < 8; r++ {
			m[r] = swar.Load(src[r*elemSize+c:], w)
		}
		swar.TransposeBytes8x8(&m)
		for k := 0; k < w; k++ {
			l[c+k][q] = m[k]
		}
	}
}

// storeGroup writes lane q back as eight elements at dst.
func storeGroup(dst []byte, l *lanes, q, elemSize int) {
	var m [8]uint64
	for c := 0; c < elemSize; c += 8 {
		w := min(8, elemSize-c)
		for k := 0; k < 8; k++ {
			if k < w {
				m[k] = l[c+k][q]
			} else {
				m[k] = 0
			}
		}
		swar.TransposeBytes8x8(&m)
		for r := 0; r < 8; r++ {
			swar.Store(dst[r*elemSize+c:], m[r], w)
		}
	}
}
