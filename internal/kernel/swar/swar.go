// Package swar holds the word-parallel (SIMD-within-a-register) primitives
// the accelerated kernels are built from: 8x8 byte and bit matrix transposes
// on little-endian 64-bit words, and 8-element shuffle tiles that kernels
// batch to their register width.
//
// A tile is a square 8x8 byte matrix: rows are eight consecutive elements,
// columns are eight consecutive byte offsets within those elements. Element
// sizes that are not a multiple of 8 are zero padded in the last column block;
// padded bytes are never stored.
package swar

import "encoding/binary"

// TileElems is the number of elements covered by one tile.
const TileElems = 8

// TransposeBytes8x8 transposes the byte matrix held in m, where m[r] byte c
// (little-endian) is row r, column c.
func TransposeBytes8x8(m *[8]uint64) {
	for k := 0; k < 8; k += 2 {
		swapBlocks(&m[k], &m[k+1], 8, 0x00FF00FF00FF00FF)
	}
	for _, k := range [4]int{0, 1, 4, 5} {
		swapBlocks(&m[k], &m[k+2], 16, 0x0000FFFF0000FFFF)
	}
	for k := 0; k < 4; k++ {
		swapBlocks(&m[k], &m[k+4], 32, 0x00000000FFFFFFFF)
	}
}

// swapBlocks exchanges the high blocks of a with the low blocks of b.
func swapBlocks(a, b *uint64, shift uint, mask uint64) {
	t := ((*a >> shift) ^ *b) & mask
	*b ^= t
	*a ^= t << shift
}

// TransposeBits8x8 transposes the 8x8 bit matrix held in x, where byte r
// is row r and bit c of that byte is column c.
func TransposeBits8x8(x uint64) uint64 {
	t := (x ^ (x >> 7)) & 0x00AA00AA00AA00AA
	x = x ^ t ^ (t << 7)
	t = (x ^ (x >> 14)) & 0x0000CCCC0000CCCC
	x = x ^ t ^ (t << 14)
	t = (x ^ (x >> 28)) & 0x00000000F0F0F0F0
	x = x ^ t ^ (t << 28)
	return x
}

// Load reads w (1..8) little-endian bytes from b.
func Load(b []byte, w int) uint64 {
	if w == 8 {
		return binary.LittleEndian.Uint64(b)
	}
	var x uint64
	for k := 0; k < w; k++ {
		x |= uint64(b[k]) << (8 * k)
	}
	return x
}

// Store writes the low w (1..8) bytes of x to b.
func Store(b []byte, x uint64, w int) {
	if w == 8 {
		binary.LittleEndian.PutUint64(b, x)
		return
	}
	for k := 0; k < w; k++ {
		b[k] = byte(x >> (8 * k))
	}
}

// ShuffleTile8 byte-transposes elements [i, i+8) of src into dst, where dst
// is laid out as elemSize streams of n bytes. i+8 must not exceed n.
func ShuffleTile8(dst, src []byte, elemSize, n, i int) {
	var m [1][8]uint64
	ShuffleTiles(dst, src, elemSize, n, i, m[:])
}

// UnshuffleTile8 is the inverse of ShuffleTile8: it gathers elements
// [i, i+8) back from the elemSize streams of src.
func UnshuffleTile8(dst, src []byte, elemSize, n, i int) {
	var m [1][8]uint64
	UnshuffleTiles(dst, src, elemSize, n, i, m[:])
}

// ShuffleTiles byte-transposes elements [i, i+8*len(m)) of src into dst
// with len(m) tiles in flight: each column block is loaded for every tile
// before any is stored, and every byte stream then receives 8*len(m)
// contiguous bytes. m is working storage. i+8*len(m) must not exceed n.
func ShuffleTiles(dst, src []byte, elemSize, n, i int, m [][8]uint64) {
	base := i * elemSize
	for c := 0; c < elemSize; c += 8 {
		w := min(8, elemSize-c)
		for t := range m {
			row := base + t*TileElems*elemSize + c
			for e := 0; e < 8; e++ {
				m[t][e] = Load(src[row+e*elemSize:], w)
			}
			TransposeBytes8x8(&m[t])
		}
		for r := 0; r < w; r++ {
			out := dst[(c+r)*n+i:]
			for t := range m {
				binary.LittleEndian.PutUint64(out[8*t:], m[t][r])
			}
		}
	}
}

// UnshuffleTiles is the inverse of ShuffleTiles.
func UnshuffleTiles(dst, src []byte, elemSize, n, i int, m [][8]uint64) {
	base := i * elemSize
	for c := 0; c < elemSize; c += 8 {
		w := min(8, elemSize-c)
		for r := 0; r < 8; r++ {
			if r >= w {
				for t := range m {
					m[t][r] = 0
				}
				continue
			}
			in := src[(c+r)*n+i:]
			for t := range m {
				m[t][r] = binary.LittleEndian.Uint64(in[8*t:])
			}
		}
		for t := range m {
			TransposeBytes8x8(&m[t])
			row := base + t*TileElems*elemSize + c
			for e := 0; e < 8; e++ {
				Store(dst[row+e*elemSize:], m[t][e], w)
			}
		}
	}
}

// BitTransposeRow bit-transposes one group of 8 bytes taken from a byte
// row and scatters the eight resulting bytes across bit planes: byte k of
// the result goes to dst[k*planeStride]. It returns the transposed word.
func BitTransposeRow(dst []byte, word uint64, planeStride int) uint64 {
	x := TransposeBits8x8(word)
	for k := 0; k < 8; k++ {
		dst[k*planeStride] = byte(x >> (8 * k))
	}
	return x
}

// GatherPlanes collects byte g of eight consecutive bit planes starting at
// src (planes are planeStride bytes apart) into one word and bit-transposes
// it back into eight element bytes.
func GatherPlanes(src []byte, planeStride int) uint64 {
	var x uint64
	for k := 0; k < 8; k++ {
		x |= uint64(src[k*planeStride]) << (8 * k)
	}
	return TransposeBits8x8(x)
}
