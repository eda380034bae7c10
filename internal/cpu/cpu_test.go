package cpu

import (
	"runtime"
	"testing"
)

func TestSupports(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		level    SIMDLevel
		want     bool
	}{
		{"none always supported", Features{}, SIMDNone, true},
		{"sse2 present", Features{HasSSE2: true}, SIMDSSE2, true},
		{"sse2 absent", Features{}, SIMDSSE2, false},
		{"avx2 present", Features{HasSSE2: true, HasAVX2: true}, SIMDAVX2, true},
		{"neon present", Features{HasNEON: true}, SIMDNEON, true},
		{"force generic hides avx2", Features{HasAVX2: true, ForceGeneric: true}, SIMDAVX2, false},
		{"force generic keeps none", Features{ForceGeneric: true}, SIMDNone, true},
		{"unknown level", Features{HasSSE2: true}, SIMDLevel(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supports(tt.features, tt.level); got != tt.want {
				t.Errorf("Supports(%+v, %s) = %v, want %v", tt.features, tt.level, got, tt.want)
			}
		})
	}
}

func TestSetForcedFeatures(t *testing.T) {
	SetForcedFeatures(Features{HasNEON: true, Architecture: "arm64"})
	defer ResetDetection()

	f := DetectFeatures()
	if !f.HasNEON || f.Architecture != "arm64" {
		t.Fatalf("forced features not returned: %+v", f)
	}
	if HasAVX2() {
		t.Error("HasAVX2 should be false with forced NEON features")
	}
}

func TestDetectFeaturesArchitecture(t *testing.T) {
	ResetDetection()
	defer ResetDetection()

	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Errorf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}
	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Error("SSE2 must be present on amd64")
	}
}

func TestNoSIMDEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"0", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv(NoSIMDEnvVar, tt.val)
			if got := NoSIMDEnv(); got != tt.want {
				t.Errorf("NoSIMDEnv() with %q = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestNoSIMDEnvForcesGeneric(t *testing.T) {
	t.Setenv(NoSIMDEnvVar, "1")
	ResetDetection()
	defer ResetDetection()

	if f := DetectFeatures(); !f.ForceGeneric {
		t.Errorf("ForceGeneric = false with %s set", NoSIMDEnvVar)
	}
}

func TestSIMDLevelString(t *testing.T) {
	if SIMDAVX2.String() != "AVX2" || SIMDNEON.String() != "NEON" || SIMDLevel(42).String() != "Unknown" {
		t.Error("unexpected SIMDLevel names")
	}
}
