// Package block computes byte-level statistics of filtered blocks: moments,
// run structure and zeroth-order Shannon entropy. The entropy is the bound a
// pure entropy coder could reach, so comparing it before and after a filter
// pipeline shows how much the pipeline exposed to the compressor.
package block

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds byte statistics of one block.
type Stats struct {
	Length     int
	Mean       float64
	Variance   float64
	Min        byte
	Max        byte
	Zeros      int     // bytes equal to 0
	Distinct   int     // distinct byte values
	Runs       int     // maximal runs of equal bytes
	LongestRun int     // length of the longest run
	Entropy    float64 // bits per byte, 0..8
}

// Calculate computes all statistics in a single pass, using Welford's
// online algorithm for the variance.
func Calculate(b []byte) Stats {
	n := len(b)
	if n == 0 {
		return Stats{}
	}

	var (
		h      Histogram
		mean   float64
		m2     float64
		minVal = b[0]
		maxVal = b[0]
		runs   = 1
		run    = 1
		best   = 1
	)
	h.Update(b)

	for i, v := range b {
		x := float64(v)
		ni := float64(i + 1)
		delta := x - mean
		mean += delta / ni
		m2 += delta * (x - mean)

		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}

		if i == 0 {
			continue
		}
		if v == b[i-1] {
			run++
			best = max(best, run)
		} else {
			runs++
			run = 1
		}
	}

	distinct := 0
	for _, c := range h.counts {
		if c != 0 {
			distinct++
		}
	}

	return Stats{
		Length:     n,
		Mean:       mean,
		Variance:   m2 / float64(n),
		Min:        minVal,
		Max:        maxVal,
		Zeros:      int(h.counts[0]),
		Distinct:   distinct,
		Runs:       runs,
		LongestRun: best,
		Entropy:    h.Entropy(),
	}
}

// Entropy returns the zeroth-order Shannon entropy of b in bits per byte.
func Entropy(b []byte) float64 {
	var h Histogram
	h.Update(b)
	return h.Entropy()
}

// Histogram accumulates byte frequencies over any number of updates.
// The zero value is ready to use.
type Histogram struct {
	counts [256]uint64
	n      uint64
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{}
}

// Update adds the bytes of b.
func (h *Histogram) Update(b []byte) {
	for _, v := range b {
		h.counts[v]++
	}
	h.n += uint64(len(b))
}

// Len returns the number of bytes seen.
func (h *Histogram) Len() uint64 {
	return h.n
}

// Count returns how often v was seen.
func (h *Histogram) Count(v byte) uint64 {
	return h.counts[v]
}

// Reset clears the histogram.
func (h *Histogram) Reset() {
	*h = Histogram{}
}

// Entropy returns the Shannon entropy of the accumulated bytes in bits per
// byte: -sum(p * log2(p)) over the observed symbols.
func (h *Histogram) Entropy() float64 {
	if h.n == 0 {
		return 0
	}

	p := make([]float64, 0, len(h.counts))
	logp := make([]float64, 0, len(h.counts))
	total := float64(h.n)
	for _, c := range h.counts {
		if c == 0 {
			continue
		}
		pi := float64(c) / total
		p = append(p, pi)
		logp = append(logp, math.Log2(pi))
	}

	sum := vecmath.DotProduct(p, logp)
	if sum == 0 {
		return 0
	}
	return -sum
}

// Ratio returns how many bytes an ideal order-0 coder would need per input
// byte, as a fraction: Entropy / 8.
func (h *Histogram) Ratio() float64 {
	return h.Entropy() / 8
}
