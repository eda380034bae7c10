package filter

import (
	"encoding/binary"
	"fmt"
)

// mantissaBits returns the IEEE 754 mantissa width for typeSize.
func mantissaBits(typeSize int) (int, error) {
	switch typeSize {
	case 4:
		return 23, nil
	case 8:
		return 52, nil
	default:
		return 0, fmt.Errorf("%w: truncprec needs 4 or 8, got %d", ErrInvalidTypeSize, typeSize)
	}
}

// TruncPrecForward zeroes low mantissa bits of float32 or float64 elements.
// Meta read as int8 is the number of mantissa bits kept when non-negative
// and the number removed when negative. At least one mantissa bit always
// survives so NaN and infinities keep their class. The transform is lossy.
func TruncPrecForward(dst, src []byte, p Params) error {
	mant, err := mantissaBits(p.TypeSize)
	if err != nil {
		return err
	}
	if len(src)%p.TypeSize != 0 {
		return fmt.Errorf("%w: block of %d bytes is not a multiple of %d", ErrInvalidTypeSize, len(src), p.TypeSize)
	}

	prec := int(int8(p.Meta))
	if prec > mant {
		return fmt.Errorf("%w: precision %d exceeds %d mantissa bits", ErrInvalidMeta, prec, mant)
	}
	zeroed := -prec
	if prec >= 0 {
		zeroed = mant - prec
	}
	if zeroed >= mant {
		return fmt.Errorf("%w: cannot remove %d of %d mantissa bits", ErrInvalidMeta, zeroed, mant)
	}

	le := binary.LittleEndian
	if p.TypeSize == 4 {
		mask := ^uint32(0) << zeroed
		for i := 0; i < len(src); i += 4 {
			le.PutUint32(dst[i:], le.Uint32(src[i:])&mask)
		}
		return nil
	}
	mask := ^uint64(0) << zeroed
	for i := 0; i < len(src); i += 8 {
		le.PutUint64(dst[i:], le.Uint64(src[i:])&mask)
	}
	return nil
}

// TruncPrecBackward copies: the dropped bits cannot be restored.
func TruncPrecBackward(dst, src []byte, _ Params) error {
	copy(dst, src)
	return nil
}
