package registry

import (
	"testing"

	"github.com/cwbudde/algo-blosc/internal/cpu"
)

func TestKernelRegistry_Register(t *testing.T) {
	reg := &KernelRegistry{}

	reg.Register(KernelEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Shuffle: func(dst, src []byte, elemSize int) (int, error) {
			return len(src), nil
		},
	})
	reg.Register(KernelEntry{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
	})

	entries := reg.ListEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestKernelRegistry_Lookup_Priority(t *testing.T) {
	reg := &KernelRegistry{}

	// Registration order differs from priority order on purpose.
	reg.Register(KernelEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(KernelEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})
	reg.Register(KernelEntry{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})

	tests := []struct {
		name     string
		features cpu.Features
		want     string
	}{
		{
			name:     "AVX2 available - select AVX2",
			features: cpu.Features{HasSSE2: true, HasAVX2: true},
			want:     "avx2",
		},
		{
			name:     "SSE2 only - select SSE2",
			features: cpu.Features{HasSSE2: true},
			want:     "sse2",
		},
		{
			name:     "No SIMD - select generic",
			features: cpu.Features{},
			want:     "generic",
		},
		{
			name:     "ForceGeneric - select generic",
			features: cpu.Features{HasSSE2: true, HasAVX2: true, ForceGeneric: true},
			want:     "generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := reg.Lookup(tt.features)
			if entry == nil {
				t.Fatal("Lookup returned nil")
			}
			if entry.Name != tt.want {
				t.Errorf("expected %q, got %q", tt.want, entry.Name)
			}
		})
	}
}

func TestKernelRegistry_LookupAll_Order(t *testing.T) {
	reg := &KernelRegistry{}
	reg.Register(KernelEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(KernelEntry{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})
	reg.Register(KernelEntry{Name: "neon", SIMDLevel: cpu.SIMDNEON, Priority: 15})
	reg.Register(KernelEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	tests := []struct {
		name     string
		features cpu.Features
		want     []string
	}{
		{"amd64 full", cpu.Features{HasSSE2: true, HasAVX2: true}, []string{"avx2", "sse2", "generic"}},
		{"arm64", cpu.Features{HasNEON: true}, []string{"neon", "generic"}},
		{"forced", cpu.Features{HasSSE2: true, HasAVX2: true, ForceGeneric: true}, []string{"generic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.LookupAll(tt.features)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Name != tt.want[i] {
					t.Errorf("entry %d: got %q, want %q", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}

func TestKernelRegistry_StableForEqualPriority(t *testing.T) {
	reg := &KernelRegistry{}
	reg.Register(KernelEntry{Name: "first", Priority: 5})
	reg.Register(KernelEntry{Name: "second", Priority: 5})

	got := reg.LookupAll(cpu.Features{})
	if len(got) != 2 || got[0].Name != "first" || got[1].Name != "second" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestKernelRegistry_LookupEmpty(t *testing.T) {
	reg := &KernelRegistry{}
	if entry := reg.Lookup(cpu.Features{}); entry != nil {
		t.Fatalf("expected nil, got %q", entry.Name)
	}
}

func TestKernelRegistry_Reset(t *testing.T) {
	reg := &KernelRegistry{}
	reg.Register(KernelEntry{Name: "generic"})
	reg.Reset()
	if n := len(reg.ListEntries()); n != 0 {
		t.Fatalf("expected empty registry after Reset, got %d entries", n)
	}
}
