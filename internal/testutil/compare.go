package testutil

import "testing"

// RequireBytesEqual fails t at the first differing byte between got and want.
func RequireBytesEqual(t *testing.T, got, want []byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if i := FirstDiff(got, want); i >= 0 {
		t.Fatalf("byte %d: got %#02x, want %#02x", i, got[i], want[i])
	}
}

// FirstDiff returns the index of the first differing byte, or -1 when the
// common prefix is identical and the lengths match.
func FirstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// Geometries returns the (size, elemSize) pairs used by the kernel
// equivalence tests: element sizes around every tile boundary and sizes that
// leave partial tiles, partial bit groups, and trailing bytes.
func Geometries() [][2]int {
	elemSizes := []int{1, 2, 3, 4, 5, 7, 8, 9, 12, 15, 16, 17, 24, 31, 32, 33, 40, 64, 255}
	elemCounts := []int{0, 1, 7, 8, 9, 15, 16, 17, 31, 32, 33, 63, 64, 65, 100, 257}
	var out [][2]int
	for _, es := range elemSizes {
		for _, n := range elemCounts {
			out = append(out, [2]int{n * es, es})
			out = append(out, [2]int{n*es + es/2, es})
		}
	}
	return out
}
