package filter

// byteDeltaStride returns the stream count: Meta, or the type size when
// Meta is 0.
func byteDeltaStride(p Params) int {
	if p.Meta != 0 {
		return int(p.Meta)
	}
	return p.TypeSize
}

// ByteDeltaForward splits the block into stride streams of len/stride bytes
// and stores each byte as the difference from the previous byte of its
// stream (mod 256). The first byte of a stream is stored as is; trailing
// bytes past the last whole stream are copied.
//
// Placed after a byte shuffle, each stream holds one byte position of every
// element, so slowly varying data turns into runs of small values.
func ByteDeltaForward(dst, src []byte, p Params) error {
	stride := byteDeltaStride(p)
	if stride < 1 {
		return ErrInvalidTypeSize
	}
	streamLen := len(src) / stride
	for s := 0; s < stride; s++ {
		in := src[s*streamLen : (s+1)*streamLen]
		out := dst[s*streamLen : (s+1)*streamLen]
		var prev byte
		for i, v := range in {
			out[i] = v - prev
			prev = v
		}
	}
	copy(dst[stride*streamLen:], src[stride*streamLen:])
	return nil
}

// ByteDeltaBackward undoes ByteDeltaForward with a running sum per stream.
func ByteDeltaBackward(dst, src []byte, p Params) error {
	stride := byteDeltaStride(p)
	if stride < 1 {
		return ErrInvalidTypeSize
	}
	streamLen := len(src) / stride
	for s := 0; s < stride; s++ {
		in := src[s*streamLen : (s+1)*streamLen]
		out := dst[s*streamLen : (s+1)*streamLen]
		var acc byte
		for i, d := range in {
			acc += d
			out[i] = acc
		}
	}
	copy(dst[stride*streamLen:], src[stride*streamLen:])
	return nil
}
