package filter

import (
	"slices"

	"github.com/cwbudde/algo-blosc/shuffle"
)

// Transposer is the set of kernels the shuffle slots run on.
// *shuffle.Dispatcher implements it.
type Transposer interface {
	Shuffle(dst, src []byte, elemSize int) (int, error)
	Unshuffle(dst, src []byte, elemSize int) (int, error)
	BitShuffle(dst, src, tmp []byte, elemSize int) (int, error)
	BitUnshuffle(dst, src, tmp []byte, elemSize int) (int, error)
}

type pipelineOptions struct {
	registry     *Registry
	transposer   Transposer
	blockShape   []int
	scratchLimit int
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		registry:   Global,
		transposer: shuffle.Default,
	}
}

// WithRegistry resolves registry-backed slots against r instead of Global.
func WithRegistry(r *Registry) Option {
	return func(o *pipelineOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithDispatcher runs the shuffle slots on t instead of shuffle.Default.
func WithDispatcher(t Transposer) Option {
	return func(o *pipelineOptions) {
		if t != nil {
			o.transposer = t
		}
	}
}

// WithBlockShape sets the N-dimensional block shape, in elements, passed to
// the filters. Required by NDCell and NDMean.
func WithBlockShape(shape ...int) Option {
	return func(o *pipelineOptions) {
		o.blockShape = slices.Clone(shape)
	}
}

// WithScratchLimit caps the scratch buffer a bit transpose may allocate.
// A limit <= 0 means no cap beyond kernel.MaxScratch.
func WithScratchLimit(limit int) Option {
	return func(o *pipelineOptions) {
		o.scratchLimit = limit
	}
}

func applyPipelineOptions(opts ...Option) pipelineOptions {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
