package filter

import (
	"fmt"

	"github.com/cwbudde/algo-blosc/internal/kernel"
)

// MaxTypeSize is the largest element size a pipeline accepts.
const MaxTypeSize = 255

// Slot is one pipeline stage: a filter identifier and its metadata.
// Meta 0 on Shuffle, BitShuffle and ByteDelta slots means the pipeline's
// type size.
type Slot struct {
	ID   ID    `json:"id"`
	Meta uint8 `json:"meta,omitempty"`
}

// Config is an ordered list of slots. Forward runs front to back; Backward
// runs back to front. NoFilter slots are skipped.
type Config []Slot

type stage struct {
	index int
	slot  Slot
	entry Entry
}

// Pipeline applies a validated Config to blocks of one type size.
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	cfg          Config
	typeSize     int
	stages       []stage
	transposer   Transposer
	blockShape   []int
	scratchLimit int
}

// New validates cfg against the registry and returns a pipeline for blocks
// of typeSize-byte elements. Every identifier is resolved up front, so an
// unknown id fails here rather than halfway through a block. The registry
// used is sealed.
func New(cfg Config, typeSize int, opts ...Option) (*Pipeline, error) {
	if len(cfg) > MaxFilters {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyFilters, len(cfg), MaxFilters)
	}
	if typeSize < 1 || typeSize > MaxTypeSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTypeSize, typeSize)
	}

	o := applyPipelineOptions(opts...)
	o.registry.Seal()

	p := &Pipeline{
		cfg:          append(Config(nil), cfg...),
		typeSize:     typeSize,
		transposer:   o.transposer,
		blockShape:   o.blockShape,
		scratchLimit: o.scratchLimit,
	}
	for i, s := range cfg {
		if s.ID == NoFilter {
			continue
		}
		st := stage{index: i, slot: s}
		if !s.ID.dispatched() {
			e, ok := o.registry.Lookup(s.ID)
			if !ok {
				return nil, fmt.Errorf("%w: %s in slot %d", ErrUnknownFilter, s.ID, i)
			}
			st.entry = e
		}
		p.stages = append(p.stages, st)
	}
	return p, nil
}

// Config returns a copy of the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return append(Config(nil), p.cfg...)
}

// TypeSize returns the element size the pipeline was built for.
func (p *Pipeline) TypeSize() int {
	return p.typeSize
}

// Forward applies every stage front to back and returns the filtered block.
// block is never modified.
func (p *Pipeline) Forward(block []byte) ([]byte, error) {
	return p.run(DirectionForward, block)
}

// Backward undoes Forward, applying the stages back to front.
func (p *Pipeline) Backward(block []byte) ([]byte, error) {
	return p.run(DirectionBackward, block)
}

func (p *Pipeline) run(dir Direction, block []byte) ([]byte, error) {
	var (
		bufs    [2][]byte
		scratch []byte
		cur     int
	)
	src := block
	for k := range p.stages {
		st := p.stages[k]
		if dir == DirectionBackward {
			st = p.stages[len(p.stages)-1-k]
		}
		if bufs[cur] == nil {
			bufs[cur] = make([]byte, len(block))
		}
		dst := bufs[cur]
		if err := p.apply(dir, st, dst, src, &scratch); err != nil {
			return nil, &StageError{Direction: dir, Stage: st.index, ID: st.slot.ID, Err: err}
		}
		src = dst
		cur ^= 1
	}
	if len(p.stages) == 0 {
		return append([]byte(nil), block...), nil
	}
	return src, nil
}

func (p *Pipeline) apply(dir Direction, st stage, dst, src []byte, scratch *[]byte) error {
	switch st.slot.ID {
	case Shuffle:
		es := p.elemSize(st.slot)
		var err error
		if dir == DirectionForward {
			_, err = p.transposer.Shuffle(dst, src, es)
		} else {
			_, err = p.transposer.Unshuffle(dst, src, es)
		}
		return err

	case BitShuffle:
		es := p.elemSize(st.slot)
		tmp, err := kernel.Scratch(*scratch, len(src), p.scratchLimit)
		if err != nil {
			return err
		}
		*scratch = tmp
		if dir == DirectionForward {
			_, err = p.transposer.BitShuffle(dst, src, tmp, es)
		} else {
			_, err = p.transposer.BitUnshuffle(dst, src, tmp, es)
		}
		return err
	}

	params := Params{TypeSize: p.typeSize, Meta: st.slot.Meta, BlockShape: p.blockShape}
	if dir == DirectionForward {
		return st.entry.Forward(dst, src, params)
	}
	return st.entry.Backward(dst, src, params)
}

func (p *Pipeline) elemSize(s Slot) int {
	if s.Meta == 0 {
		return p.typeSize
	}
	return int(s.Meta)
}

// Forward filters block with cfg using Global and the default kernels.
func Forward(cfg Config, typeSize int, block []byte) ([]byte, error) {
	p, err := New(cfg, typeSize)
	if err != nil {
		return nil, err
	}
	return p.Forward(block)
}

// Backward undoes Forward for the same cfg and typeSize.
func Backward(cfg Config, typeSize int, block []byte) ([]byte, error) {
	p, err := New(cfg, typeSize)
	if err != nil {
		return nil, err
	}
	return p.Backward(block)
}
