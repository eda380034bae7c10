package generic

import (
	"encoding/binary"

	"github.com/cwbudde/algo-blosc/internal/kernel"
	"github.com/cwbudde/algo-blosc/internal/kernel/swar"
)

// BitShuffle transposes the block at bit granularity. The leading
// nb = n - n%8 elements are rearranged so that bit e%8 of
// dst[(j*8+k)*(nb/8) + e/8] holds bit k of byte j of element e; the
// remaining elements and trailing bytes are copied verbatim.
//
// The transpose runs in three passes: a byte-element transpose into dst,
// an 8x8 bit transpose of every word into tmp, and a regrouping of the
// bit rows back into dst. tmp must hold nb*elemSize bytes or it is allocated.
func BitShuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	size := len(src)
	nb := kernel.BitGroupElems(size / elemSize)
	nbyte := nb * elemSize
	if nb > 0 {
		scratch, err := kernel.Scratch(tmp, nbyte, 0)
		if err != nil {
			return 0, err
		}
		transByteElem(dst[:nbyte], src[:nbyte], nb, elemSize)
		transBitByte(scratch, dst[:nbyte], nb, elemSize)
		transBitrowEight(dst[:nbyte], scratch, nb, elemSize)
	}
	copy(dst[nbyte:size], src[nbyte:])
	return size, nil
}

// BitUnshuffle is the exact inverse of BitShuffle.
func BitUnshuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	size := len(src)
	nb := kernel.BitGroupElems(size / elemSize)
	nbyte := nb * elemSize
	if nb > 0 {
		scratch, err := kernel.Scratch(tmp, nbyte, 0)
		if err != nil {
			return 0, err
		}
		transByteBitrow(scratch, src[:nbyte], nb, elemSize)
		shuffleBitEightElem(dst[:nbyte], scratch, nb, elemSize)
	}
	copy(dst[nbyte:size], src[nbyte:])
	return size, nil
}

// transByteElem writes byte j of element i to out[j*n+i].
func transByteElem(out, in []byte, n, elemSize int) {
	ShuffleElems(out, in, elemSize, n, 0)
}

// transBitByte bit-transposes every 64-bit word of in and spreads the
// eight result bytes across eight planes of len(in)/8 bytes.
func transBitByte(out, in []byte, n, elemSize int) {
	nbyteBitrow := n * elemSize / 8
	for ii := 0; ii < nbyteBitrow; ii++ {
		x := swar.TransposeBits8x8(binary.LittleEndian.Uint64(in[ii*8:]))
		for kk := 0; kk < 8; kk++ {
			out[kk*nbyteBitrow+ii] = byte(x >> (8 * kk))
		}
	}
}

// transBitrowEight regroups the planes produced by transBitByte so that the
// eight bit rows of each byte position are adjacent.
func transBitrowEight(out, in []byte, n, elemSize int) {
	nbyteRow := n / 8
	for ii := 0; ii < 8; ii++ {
		for jj := 0; jj < elemSize; jj++ {
			copy(out[(jj*8+ii)*nbyteRow:(jj*8+ii+1)*nbyteRow], in[(ii*elemSize+jj)*nbyteRow:])
		}
	}
}

// transByteBitrow gathers, for each group of eight elements, the eight bit
// row bytes of every byte position into one contiguous word.
func transByteBitrow(out, in []byte, n, elemSize int) {
	nbyteRow := n / 8
	for jj := 0; jj < elemSize; jj++ {
		for ii := 0; ii < nbyteRow; ii++ {
			for kk := 0; kk < 8; kk++ {
				out[ii*8*elemSize+jj*8+kk] = in[(jj*8+kk)*nbyteRow+ii]
			}
		}
	}
}

// shuffleBitEightElem bit-transposes the words built by transByteBitrow and
// writes each result byte to its element.
func shuffleBitEightElem(out, in []byte, n, elemSize int) {
	nbyte := n * elemSize
	for jj := 0; jj < 8*elemSize; jj += 8 {
		for ii := 0; ii+8*elemSize-1 < nbyte; ii += 8 * elemSize {
			x := swar.TransposeBits8x8(binary.LittleEndian.Uint64(in[ii+jj:]))
			for kk := 0; kk < 8; kk++ {
				out[ii+jj/8+kk*elemSize] = byte(x >> (8 * kk))
			}
		}
	}
}
