// Package filter implements the block filter pipeline: an ordered list of up
// to MaxFilters reversible transforms applied to a block before it is handed
// to a compressor, and undone in reverse order after decompression.
//
// The byte and bit shuffle slots run on the transposition kernels selected
// by package shuffle. Every other slot is resolved through a Registry that
// maps filter identifiers to forward/backward function pairs. The built-in
// delta, truncation, byte-delta and N-dimensional cell filters are registered
// in DefaultRegistry; plugins add their own pairs before the first pipeline
// is built.
//
// A Pipeline never writes the caller's block. Forward and Backward return a
// freshly allocated result and use at most two private work buffers plus one
// bounded scratch buffer per call, so independent blocks can be filtered
// from any number of goroutines.
package filter
