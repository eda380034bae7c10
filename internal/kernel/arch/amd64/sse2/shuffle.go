package sse2

import (
	"github.com/cwbudde/algo-blosc/internal/kernel/arch/generic"
	"github.com/cwbudde/algo-blosc/internal/kernel/swar"
)

// Shuffle is the tiled byte shuffle. Output is identical to generic.Shuffle.
func Shuffle(dst, src []byte, elemSize int) (int, error) {
	size := len(src)
	n := size / elemSize
	shuffleElems(dst, src, elemSize, n)
	copy(dst[n*elemSize:size], src[n*elemSize:])
	return size, nil
}

// Unshuffle is the tiled inverse of Shuffle.
func Unshuffle(dst, src []byte, elemSize int) (int, error) {
	size := len(src)
	n := size / elemSize
	unshuffleElems(dst, src, elemSize, n)
	copy(dst[n*elemSize:size], src[n*elemSize:])
	return size, nil
}

// StepElems is the number of elements moved per step: 2 tiles of
// swar.TileElems (16 bytes per stream store).
const StepElems = 2 * swar.TileElems

func shuffleElems(dst, src []byte, elemSize, n int) {
	var m [StepElems / swar.TileElems][8]uint64
	full := n - n%StepElems
	for i := 0; i < full; i += StepElems {
		swar.ShuffleTiles(dst, src, elemSize, n, i, m[:])
	}
	tiled := n - n%swar.TileElems
	for i := full; i < tiled; i += swar.TileElems {
		swar.ShuffleTile8(dst, src, elemSize, n, i)
	}
	generic.ShuffleElems(dst, src, elemSize, n, tiled)
}

func unshuffleElems(dst, src []byte, elemSize, n int) {
	var m [StepElems / swar.TileElems][8]uint64
	full := n - n%StepElems
	for i := 0; i < full; i += StepElems {
		swar.UnshuffleTiles(dst, src, elemSize, n, i, m[:])
	}
	tiled := n - n%swar.TileElems
	for i := full; i < tiled; i += swar.TileElems {
		swar.UnshuffleTile8(dst, src, elemSize, n, i)
	}
	generic.UnshuffleElems(dst, src, elemSize, n, tiled)
}
