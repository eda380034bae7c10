// Package cpu provides CPU feature detection for shuffle kernel selection.
//
// This package detects the SIMD instruction set extensions (SSE2, AVX2, NEON)
// that the transposition kernels are tiled for, and caches the result so the
// capability profile is computed exactly once per process.
//
// Detection is performed lazily on the first call to DetectFeatures() and the
// result is cached for subsequent calls using sync.Once for thread-safety.
// Setting the ALGO_BLOSC_NO_SIMD environment variable forces the reference
// (generic) kernels regardless of the hardware.
package cpu

import (
	"os"
	"strconv"
	"sync"
)

// NoSIMDEnvVar names the environment variable that disables accelerated kernels.
const NoSIMDEnvVar = "ALGO_BLOSC_NO_SIMD"

// SIMDLevel represents a SIMD instruction set extension level.
// Levels are not strictly comparable across architectures (e.g., AVX2 vs NEON).
type SIMDLevel int

const (
	// SIMDNone indicates no SIMD optimization (pure Go reference kernels).
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 indicates x86-64 SSE2 (baseline for amd64).
	SIMDSSE2

	// SIMDAVX indicates x86-64 AVX.
	SIMDAVX

	// SIMDAVX2 indicates x86-64 AVX2 (256-bit integer operations).
	SIMDAVX2

	// SIMDAVX512 indicates x86-64 AVX-512.
	SIMDAVX512

	// SIMDNEON indicates ARM NEON / Advanced SIMD.
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes CPU capabilities relevant to kernel selection.
type Features struct {
	// x86/amd64 SIMD features
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool

	// ARM SIMD features
	HasNEON bool

	// ForceGeneric disables all accelerated kernels (testing, debugging,
	// or the ALGO_BLOSC_NO_SIMD environment variable).
	ForceGeneric bool

	// Architecture is runtime.GOARCH (e.g., "amd64", "arm64").
	Architecture string
}

var (
	// detectedFeatures holds the cached CPU features detected on this system.
	detectedFeatures Features

	// detectOnce ensures feature detection runs exactly once, thread-safely.
	detectOnce sync.Once

	// detectMutex serializes access to detectOnce/detectedFeatures.
	detectMutex sync.Mutex

	// forcedFeatures allows overriding actual hardware detection for testing.
	forcedFeatures *Features

	// forcedMutex protects forcedFeatures from concurrent access during testing.
	forcedMutex sync.RWMutex
)

// DetectFeatures returns the CPU features available on the current system.
//
// Detection is performed once on the first call and cached for subsequent calls.
// This function is thread-safe and can be called concurrently from multiple goroutines.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
		if NoSIMDEnv() {
			detectedFeatures.ForceGeneric = true
		}
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// NoSIMDEnv reports whether the ALGO_BLOSC_NO_SIMD environment variable is set.
// Any non-empty value counts as true unless it parses as a false boolean.
func NoSIMDEnv() bool {
	val := os.Getenv(NoSIMDEnvVar)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// HasAVX2 returns true if the CPU supports AVX2 instructions.
func HasAVX2() bool {
	return DetectFeatures().HasAVX2
}

// HasSSE2 returns true if the CPU supports SSE2 instructions.
func HasSSE2() bool {
	return DetectFeatures().HasSSE2
}

// HasNEON returns true if the CPU supports ARM NEON (Advanced SIMD) instructions.
func HasNEON() bool {
	return DetectFeatures().HasNEON
}

// SetForcedFeatures overrides CPU feature detection with the specified features.
// This is intended for testing purposes only.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears any forced features and the detection cache.
// This is intended for testing purposes.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}

// Supports returns true if the given CPU features support the specified SIMD level.
// The kernel registry uses it to decide which implementations are eligible.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX:
		return features.HasAVX
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDAVX512:
		return features.HasAVX512
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
