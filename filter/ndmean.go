package filter

import (
	"encoding/binary"
	"fmt"
	"math"
)

// NDMeanForward reorders the block into cells like NDCellForward and
// replaces every element of a cell with the cell mean. Elements are float32
// (TypeSize 4) or float64 (TypeSize 8). The transform is lossy.
func NDMeanForward(dst, src []byte, p Params) error {
	if p.TypeSize != 4 && p.TypeSize != 8 {
		return fmt.Errorf("%w: ndmean needs 4 or 8, got %d", ErrInvalidTypeSize, p.TypeSize)
	}
	if err := NDCellForward(dst, src, p); err != nil {
		return err
	}

	g, err := newCellGrid(p, len(src))
	if err != nil {
		return err
	}
	ts := p.TypeSize
	pos := 0
	for _, count := range g.cellSizes() {
		cell := dst[pos : pos+count*ts]
		if ts == 4 {
			meanFloat32(cell)
		} else {
			meanFloat64(cell)
		}
		pos += len(cell)
	}
	return nil
}

// NDMeanBackward restores the row-major layout. The means stay.
func NDMeanBackward(dst, src []byte, p Params) error {
	if p.TypeSize != 4 && p.TypeSize != 8 {
		return fmt.Errorf("%w: ndmean needs 4 or 8, got %d", ErrInvalidTypeSize, p.TypeSize)
	}
	return NDCellBackward(dst, src, p)
}

func meanFloat32(cell []byte) {
	le := binary.LittleEndian
	n := len(cell) / 4
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(math.Float32frombits(le.Uint32(cell[4*i:])))
	}
	mean := math.Float32bits(float32(sum / float64(n)))
	for i := 0; i < n; i++ {
		le.PutUint32(cell[4*i:], mean)
	}
}

func meanFloat64(cell []byte) {
	le := binary.LittleEndian
	n := len(cell) / 8
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Float64frombits(le.Uint64(cell[8*i:]))
	}
	mean := math.Float64bits(sum / float64(n))
	for i := 0; i < n; i++ {
		le.PutUint64(cell[8*i:], mean)
	}
}
