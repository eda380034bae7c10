package filter

import "fmt"

// MaxDims is the largest block rank the N-dimensional filters accept.
const MaxDims = 8

// cellGrid describes how a block of shape is tiled by hypercubic cells of
// side cell.
type cellGrid struct {
	shape   []int
	strides []int // row-major element strides of shape
	grid    []int // number of cells along each dimension
	cell    int
}

func newCellGrid(p Params, nbytes int) (*cellGrid, error) {
	ndim := len(p.BlockShape)
	if ndim == 0 || ndim > MaxDims {
		return nil, fmt.Errorf("%w: rank %d", ErrBlockShape, ndim)
	}
	if p.Meta == 0 {
		return nil, fmt.Errorf("%w: cell side must be positive", ErrInvalidMeta)
	}
	if p.TypeSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTypeSize, p.TypeSize)
	}

	g := &cellGrid{
		shape:   p.BlockShape,
		strides: make([]int, ndim),
		grid:    make([]int, ndim),
		cell:    int(p.Meta),
	}
	elems := 1
	for i := ndim - 1; i >= 0; i-- {
		d := p.BlockShape[i]
		if d < 1 {
			return nil, fmt.Errorf("%w: dimension %d is %d", ErrBlockShape, i, d)
		}
		g.strides[i] = elems
		g.grid[i] = (d + g.cell - 1) / g.cell
		elems *= d
	}
	if elems*p.TypeSize != nbytes {
		return nil, fmt.Errorf("%w: shape %v of %d-byte elements does not cover %d bytes",
			ErrBlockShape, p.BlockShape, p.TypeSize, nbytes)
	}
	return g, nil
}

// visit calls fn for the runs of contiguous elements that make up each
// cell, cells in row-major order. A run starts at element offset off of the
// block and spans n elements along the last dimension. Edge cells are
// clipped to the block.
func (g *cellGrid) visit(fn func(off, n int)) {
	ndim := len(g.shape)
	c := make([]int, ndim)   // cell coordinates
	ext := make([]int, ndim) // cell extent, clipped
	r := make([]int, ndim-1) // row coordinates inside the cell

	for {
		for i := 0; i < ndim; i++ {
			ext[i] = min(g.cell, g.shape[i]-c[i]*g.cell)
		}
		clear(r)
		for {
			off := (c[ndim-1] * g.cell) * g.strides[ndim-1]
			for i := 0; i < ndim-1; i++ {
				off += (c[i]*g.cell + r[i]) * g.strides[i]
			}
			fn(off, ext[ndim-1])
			if !advance(r, ext[:ndim-1]) {
				break
			}
		}
		if !advance(c, g.grid) {
			return
		}
	}
}

// cellSizes returns the number of elements of each cell, in visit order.
func (g *cellGrid) cellSizes() []int {
	ncells := 1
	for _, n := range g.grid {
		ncells *= n
	}
	sizes := make([]int, 0, ncells)
	c := make([]int, len(g.shape))
	for {
		n := 1
		for i := range c {
			n *= min(g.cell, g.shape[i]-c[i]*g.cell)
		}
		sizes = append(sizes, n)
		if !advance(c, g.grid) {
			return sizes
		}
	}
}

// advance increments the row-major counter x bounded by lim and reports
// whether it has not wrapped around.
func advance(x, lim []int) bool {
	for i := len(x) - 1; i >= 0; i-- {
		x[i]++
		if x[i] < lim[i] {
			return true
		}
		x[i] = 0
	}
	return false
}

// NDCellForward reorders a block of BlockShape elements into cells of side
// Meta: cells follow each other in row-major order and the elements of a
// cell are stored row-major. Cells on the upper edges are clipped.
func NDCellForward(dst, src []byte, p Params) error {
	g, err := newCellGrid(p, len(src))
	if err != nil {
		return err
	}
	ts := p.TypeSize
	pos := 0
	g.visit(func(off, n int) {
		pos += copy(dst[pos:], src[off*ts:(off+n)*ts])
	})
	return nil
}

// NDCellBackward restores the row-major layout from cell order.
func NDCellBackward(dst, src []byte, p Params) error {
	g, err := newCellGrid(p, len(src))
	if err != nil {
		return err
	}
	ts := p.TypeSize
	pos := 0
	g.visit(func(off, n int) {
		pos += copy(dst[off*ts:(off+n)*ts], src[pos:])
	})
	return nil
}
