// SPDX-License-Identifier: MIT

package vis

import "github.com/katalvlaran/vlbimodel/model"

// Builder is a Fourier source able to tabulate a query set ahead of
// evaluation, as *ftcache.Cache does.
type Builder interface {
	model.FourierSource
	Build(m model.Model, u, v []float64) error
}

// Option configures an Evaluator.
type Option func(*options)

type options struct {
	src        model.FourierSource
	batchBuild bool
}

// WithSource supplies the Fourier source of numerical leaves. It panics on
// nil.
func WithSource(src model.FourierSource) Option {
	if src == nil {
		panic("vis: WithSource(nil)")
	}
	return func(o *options) { o.src = src }
}

// WithBatchBuild makes eager vectorized calls tabulate their whole query set
// in the source (which must be a Builder) before evaluating it, so every
// lookup is an exact table hit.
func WithBatchBuild() Option {
	return func(o *options) { o.batchBuild = true }
}

func gatherOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
