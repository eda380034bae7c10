//go:build !amd64 && !arm64

package cpu

import "runtime"

// detectFeaturesImpl reports no SIMD features on other architectures,
// so only the reference kernels are eligible.
func detectFeaturesImpl() Features {
	return Features{
		Architecture: runtime.GOARCH,
	}
}
