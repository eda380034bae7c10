package generic

// Shuffle groups byte j of every element together: dst[j*n+i] = src[i*elemSize+j]
// for the n = len(src)/elemSize whole elements. Bytes past the last whole
// element are copied verbatim.
func Shuffle(dst, src []byte, elemSize int) (int, error) {
	size := len(src)
	n := size / elemSize
	ShuffleElems(dst, src, elemSize, n, 0)
	copy(dst[n*elemSize:size], src[n*elemSize:])
	return size, nil
}

// Unshuffle is the exact inverse of Shuffle for the same size and elemSize.
func Unshuffle(dst, src []byte, elemSize int) (int, error) {
	size := len(src)
	n := size / elemSize
	UnshuffleElems(dst, src, elemSize, n, 0)
	copy(dst[n*elemSize:size], src[n*elemSize:])
	return size, nil
}

// ShuffleElems transposes elements [start, n) of a block of n elements.
// Accelerated kernels use it to clean up the tail past their last full tile.
func ShuffleElems(dst, src []byte, elemSize, n, start int) {
	for j := 0; j < elemSize; j++ {
		row := dst[j*n : (j+1)*n]
		for i := start; i < n; i++ {
			row[i] = src[i*elemSize+j]
		}
	}
}

// UnshuffleElems gathers elements [start, n) back from the elemSize streams.
func UnshuffleElems(dst, src []byte, elemSize, n, start int) {
	for i := start; i < n; i++ {
		out := dst[i*elemSize : (i+1)*elemSize]
		for j := range out {
			out[j] = src[j*n+i]
		}
	}
}
