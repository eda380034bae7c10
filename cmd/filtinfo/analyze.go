package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dchest/siphash"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-blosc/codec"
	"github.com/cwbudde/algo-blosc/filter"
	"github.com/cwbudde/algo-blosc/stats/block"
)

// Fixed fingerprint key; the hash only has to detect corruption.
const (
	hashK0 = 0x0706050403020100
	hashK1 = 0x0f0e0d0c0b0a0908
)

func fingerprint(b []byte) uint64 {
	return siphash.Hash(hashK0, hashK1, b)
}

// row is one line of the report: a pipeline applied to every block.
type row struct {
	Pipeline   string
	Lossy      bool
	Blocks     int
	Bytes      int64
	Compressed int64
	EntropyIn  float64 // bits per byte, averaged over all bytes
	EntropyOut float64
	Elapsed    time.Duration
}

// Ratio returns input bytes per compressed byte.
func (r row) Ratio() float64 {
	if r.Compressed == 0 {
		return 0
	}
	return float64(r.Bytes) / float64(r.Compressed)
}

type blockResult struct {
	compressed int
	entropyIn  float64
	entropyOut float64
	elapsed    time.Duration
}

// analyzeAll runs the unfiltered baseline followed by every pipeline of s.
func analyzeAll(ctx context.Context, data []byte, s settings) ([]row, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	blocks, err := splitBlocks(data, s)
	if err != nil {
		return nil, err
	}

	rows := make([]row, 0, len(s.Pipelines)+1)
	for _, desc := range append([]string{""}, s.Pipelines...) {
		cfg, err := filter.ParseConfig(desc)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", desc, err)
		}
		r, err := analyze(ctx, blocks, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", desc, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// splitBlocks cuts data into blocks of s.BlockSize bytes. With a block
// shape every block must match it exactly, so the block size follows the
// shape and a ragged tail is dropped.
func splitBlocks(data []byte, s settings) ([][]byte, error) {
	size := s.BlockSize
	if len(s.BlockShape) != 0 {
		size = s.TypeSize
		for _, d := range s.BlockShape {
			size *= d
		}
		data = data[:len(data)-len(data)%size]
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no complete block of %d bytes in input", size)
	}

	blocks := make([][]byte, 0, (len(data)+size-1)/size)
	for len(data) > 0 {
		n := min(size, len(data))
		blocks = append(blocks, data[:n])
		data = data[n:]
	}
	return blocks, nil
}

func analyze(ctx context.Context, blocks [][]byte, cfg filter.Config, s settings) (row, error) {
	var opts []filter.Option
	if len(s.BlockShape) != 0 {
		opts = append(opts, filter.WithBlockShape(s.BlockShape...))
	}
	p, err := filter.New(cfg, s.TypeSize, opts...)
	if err != nil {
		return row{}, err
	}
	c, err := codec.ByName(s.Codec)
	if err != nil {
		return row{}, err
	}
	lossy := isLossy(cfg)

	results := make([]blockResult, len(blocks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Workers))
	for i, b := range blocks {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := processBlock(p, c, b, lossy)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return row{}, err
	}

	r := row{Pipeline: cfg.String(), Lossy: lossy, Blocks: len(blocks)}
	if r.Pipeline == "" {
		r.Pipeline = "(none)"
	}
	for i, res := range results {
		n := float64(len(blocks[i]))
		r.Bytes += int64(len(blocks[i]))
		r.Compressed += int64(res.compressed)
		r.EntropyIn += res.entropyIn * n
		r.EntropyOut += res.entropyOut * n
		r.Elapsed += res.elapsed
	}
	if r.Bytes > 0 {
		r.EntropyIn /= float64(r.Bytes)
		r.EntropyOut /= float64(r.Bytes)
	}
	return r, nil
}

// processBlock filters, compresses and restores one block and checks each
// step against a fingerprint of its input.
func processBlock(p *filter.Pipeline, c codec.Codec, b []byte, lossy bool) (blockResult, error) {
	start := time.Now()
	filtered, err := p.Forward(b)
	if err != nil {
		return blockResult{}, err
	}
	packed := c.Compress(filtered, nil)
	elapsed := time.Since(start)

	unpacked := make([]byte, len(filtered))
	if err := c.Decompress(packed, unpacked); err != nil {
		return blockResult{}, fmt.Errorf("%s: %w", c.Name(), err)
	}
	if fingerprint(unpacked) != fingerprint(filtered) {
		return blockResult{}, fmt.Errorf("%s round trip corrupted the block", c.Name())
	}

	restored, err := p.Backward(unpacked)
	if err != nil {
		return blockResult{}, err
	}
	if len(restored) != len(b) {
		return blockResult{}, fmt.Errorf("restored %d bytes, want %d", len(restored), len(b))
	}
	if !lossy && fingerprint(restored) != fingerprint(b) {
		return blockResult{}, errors.New("backward pipeline did not restore the block")
	}

	return blockResult{
		compressed: len(packed),
		entropyIn:  block.Entropy(b),
		entropyOut: block.Entropy(filtered),
		elapsed:    elapsed,
	}, nil
}

// isLossy reports whether cfg discards information on the way forward.
func isLossy(cfg filter.Config) bool {
	for _, s := range cfg {
		if s.ID == filter.TruncPrec || s.ID == filter.NDMean {
			return true
		}
	}
	return false
}
