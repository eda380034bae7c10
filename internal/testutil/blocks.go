package testutil

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// DeterministicBytes returns n pseudo-random bytes from a fixed seed.
func DeterministicBytes(seed int64, n int) []byte {
	out := make([]byte, n)
	rng := rand.New(rand.NewSource(seed))
	rng.Read(out)
	return out
}

// Ramp32 returns n little-endian uint32 values start, start+step, ...
func Ramp32(n int, start, step uint32) []byte {
	out := make([]byte, 4*n)
	v := start
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(out[4*i:], v)
		v += step
	}
	return out
}

// Arange64 returns n little-endian float64 values 0, 1, 2, ...
func Arange64(n int) []byte {
	out := make([]byte, 8*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(float64(i)))
	}
	return out
}

// Float32s encodes vals as little-endian float32 values.
func Float32s(vals ...float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// Float64s encodes vals as little-endian float64 values.
func Float64s(vals ...float64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}

// MixedInt32 returns n int32 values where every fourth pair repeats two
// large constants and the rest are zero.
func MixedInt32(n int) []byte {
	out := make([]byte, 4*n)
	for i := 0; i < n/4; i++ {
		binary.LittleEndian.PutUint32(out[16*i:], 11111111)
		binary.LittleEndian.PutUint32(out[16*i+4:], 99999999)
	}
	return out
}
