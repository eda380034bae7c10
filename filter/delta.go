package filter

import "encoding/binary"

// deltaWidth is the word size the delta filter XORs on.
func deltaWidth(typeSize int) int {
	switch {
	case typeSize == 1, typeSize == 2, typeSize == 4, typeSize == 8:
		return typeSize
	case typeSize%8 == 0:
		return 8
	default:
		return 1
	}
}

// DeltaForward XORs every word of src with the word before it. The first
// word and any bytes past the last whole word are copied.
func DeltaForward(dst, src []byte, p Params) error {
	w := deltaWidth(p.TypeSize)
	n := len(src) / w
	copy(dst, src)
	if n < 2 {
		return nil
	}
	switch w {
	case 1:
		for i := 1; i < n; i++ {
			dst[i] = src[i] ^ src[i-1]
		}
	case 2:
		le := binary.LittleEndian
		for i := 1; i < n; i++ {
			le.PutUint16(dst[2*i:], le.Uint16(src[2*i:])^le.Uint16(src[2*i-2:]))
		}
	case 4:
		le := binary.LittleEndian
		for i := 1; i < n; i++ {
			le.PutUint32(dst[4*i:], le.Uint32(src[4*i:])^le.Uint32(src[4*i-4:]))
		}
	case 8:
		le := binary.LittleEndian
		for i := 1; i < n; i++ {
			le.PutUint64(dst[8*i:], le.Uint64(src[8*i:])^le.Uint64(src[8*i-8:]))
		}
	}
	return nil
}

// DeltaBackward undoes DeltaForward with a running XOR.
func DeltaBackward(dst, src []byte, p Params) error {
	w := deltaWidth(p.TypeSize)
	n := len(src) / w
	copy(dst, src)
	// dst holds the restored prefix, so each word XORs with its decoded
	// predecessor.
	for i := 1; i < n; i++ {
		for k := 0; k < w; k++ {
			dst[i*w+k] ^= dst[(i-1)*w+k]
		}
	}
	return nil
}
