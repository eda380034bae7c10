// Package avx2 implements the transposition kernels tiled for 256-bit
// registers. Byte shuffles move four 8-element tiles per step, so every
// byte stream receives 32 bytes per store. The bit transposes work on four
// bit groups at a time and keep every byte plane of the step in registers,
// so elements wider than MaxBitElemSize bytes are refused with
// kernel.ErrUnsupported.
package avx2
