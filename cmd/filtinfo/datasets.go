package main

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// datasets generate synthetic inputs of roughly size bytes.
var datasets = map[string]func(size int) []byte{
	"arange": arange,
	"mixed":  mixedInt32,
	"rand":   randomBytes,
}

// arange returns little-endian float64 values 0, 1, 2, ...
func arange(size int) []byte {
	out := make([]byte, size/8*8)
	for i := 0; i < len(out)/8; i++ {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(float64(i)))
	}
	return out
}

// mixedInt32 returns int32 values where every group of four starts with two
// large constants followed by two zeros.
func mixedInt32(size int) []byte {
	out := make([]byte, size/4*4)
	for i := 0; i+16 <= len(out); i += 16 {
		binary.LittleEndian.PutUint32(out[i:], 11111111)
		binary.LittleEndian.PutUint32(out[i+4:], 99999999)
	}
	return out
}

// randomBytes returns incompressible bytes from a fixed seed.
func randomBytes(size int) []byte {
	out := make([]byte, size)
	rng := rand.New(rand.NewSource(1))
	_, _ = rng.Read(out)
	return out
}
