package sse2

import (
	"encoding/binary"

	"github.com/cwbudde/algo-blosc/internal/kernel"
	"github.com/cwbudde/algo-blosc/internal/kernel/swar"
)

// BitShuffle splits the leading whole bit groups into byte planes in tmp,
// then bit-transposes each plane straight into its eight bit rows in dst.
// Output is identical to generic.BitShuffle.
func BitShuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	size := len(src)
	nb := kernel.BitGroupElems(size / elemSize)
	nbyte := nb * elemSize
	if nb > 0 {
		planes, err := kernel.Scratch(tmp, nbyte, 0)
		if err != nil {
			return 0, err
		}
		shuffleElems(planes, src[:nbyte], elemSize, nb)

		stride := nb / 8
		for j := 0; j < elemSize; j++ {
			row := planes[j*nb : (j+1)*nb]
			out := dst[j*8*stride:]
			for g := 0; g < stride; g++ {
				swar.BitTransposeRow(out[g:], binary.LittleEndian.Uint64(row[g*8:]), stride)
			}
		}
	}
	copy(dst[nbyte:size], src[nbyte:])
	return size, nil
}

// BitUnshuffle gathers the bit rows back into byte planes in tmp and then
// unshuffles the planes into dst.
func BitUnshuffle(dst, src, tmp []byte, elemSize int) (int, error) {
	size := len(src)
	nb := kernel.BitGroupElems(size / elemSize)
	nbyte := nb * elemSize
	if nb > 0 {
		planes, err := kernel.Scratch(tmp, nbyte, 0)
		if err != nil {
			return 0, err
		}

		stride := nb / 8
		for j := 0; j < elemSize; j++ {
			row := planes[j*nb : (j+1)*nb]
			in := src[j*8*stride:]
			for g := 0; g < stride; g++ {
				binary.LittleEndian.PutUint64(row[g*8:], swar.GatherPlanes(in[g:], stride))
			}
		}
		unshuffleElems(dst[:nbyte], planes, elemSize, nb)
	}
	copy(dst[nbyte:size], src[nbyte:])
	return size, nil
}
