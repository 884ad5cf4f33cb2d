// SPDX-License-Identifier: MIT

package imaging

import "github.com/katalvlaran/vlbimodel/model"

// Option configures IntensityMap, NewSynthesizer and Synthesize.
type Option func(*options)

type options struct {
	src     model.FourierSource
	padding int // 0 ⇒ unpadded
}

// WithSource sets the Fourier source used for numerical leaves during
// synthesis. Panics on nil.
func WithSource(src model.FourierSource) Option {
	if src == nil {
		panic("imaging: WithSource(nil)")
	}
	return func(o *options) { o.src = src }
}

// WithPadding synthesizes on a field factor times wider than the output grid
// and crops the centre, so emission outside the field no longer wraps into
// it. It takes effect in NewSynthesizer and IntensityMap; Synthesize ignores
// it. Panics if factor < 1.
func WithPadding(factor int) Option {
	if factor < 1 {
		panic("imaging: WithPadding: factor must be >= 1")
	}
	return func(o *options) { o.padding = factor }
}

func gatherOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
