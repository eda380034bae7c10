// Package sse2 implements the transposition kernels tiled for 128-bit
// registers: byte shuffles move two 8-element tiles per step and the bit
// transposes fuse the byte-plane split with the 8x8 bit transpose.
//
// The kernels are written against the word-parallel primitives in package
// swar, so they build on every platform; only their registration is
// restricted to amd64.
package sse2
