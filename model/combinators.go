// SPDX-License-Identifier: MIT

package model

import "fmt"

// Compile-time assertions for combinator conformance.
var (
	_ Combinator = (*SumNode)(nil)
	_ Combinator = (*ConvolveNode)(nil)
)

// flatten validates ms and splices the components of any node accepted by
// same into the result, preserving order.
func flatten(op string, ms []Model, same func(Model) ([]Model, bool)) ([]Model, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCombinator)
	}
	out := make([]Model, 0, len(ms))
	for i, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("%s: arg[%d]: %w", op, i, ErrNilModel)
		}
		if sub, ok := same(m); ok {
			out = append(out, sub...)
			continue
		}
		out = append(out, m)
	}

	return out, nil
}

// ---------- Sum ----------

// SumNode is the additive combination of its components.
type SumNode struct {
	ms     []Model
	traits Traits
	flux   float64
	extent float64
}

// Add returns the sum of ms. Nested sums are flattened, so the result holds
// every term in order; a single term is returned unwrapped.
// Complexity: O(T) for T flattened terms.
func Add(ms ...Model) (Model, error) {
	terms, err := flatten("Add", ms, func(m Model) ([]Model, bool) {
		if s, ok := m.(*SumNode); ok {
			return s.ms, true
		}
		return nil, false
	})
	if err != nil {
		return nil, err
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	s := &SumNode{ms: terms, traits: Traits{VisibilityAnalytic: true, ImageAnalytic: true}}
	for _, m := range terms {
		t := m.Traits()
		s.traits.VisibilityAnalytic = s.traits.VisibilityAnalytic && t.VisibilityAnalytic
		s.traits.ImageAnalytic = s.traits.ImageAnalytic && t.ImageAnalytic
		s.flux += m.Flux()
		s.extent = max(s.extent, m.RadialExtent())
	}

	return s, nil
}

// Components returns the summed terms in insertion order.
func (s *SumNode) Components() []Model { return append([]Model(nil), s.ms...) }

// Len returns the number of terms.
func (s *SumNode) Len() int { return len(s.ms) }

func (s *SumNode) Traits() Traits        { return s.traits }
func (s *SumNode) Flux() float64         { return s.flux }
func (s *SumNode) RadialExtent() float64 { return s.extent }

func (s *SumNode) Intensity(x, y float64) float64 {
	var sum float64
	for _, m := range s.ms {
		sum += m.Intensity(x, y)
	}
	return sum
}

func (s *SumNode) Visibility(u, v float64, src FourierSource) complex128 {
	var sum complex128
	for _, m := range s.ms {
		sum += m.Visibility(u, v, src)
	}
	return sum
}

// ---------- Convolution ----------

// ConvolveNode is the convolution of its components. Its visibility is the
// product of the component visibilities; it has no closed-form image.
type ConvolveNode struct {
	ms     []Model
	traits Traits
	flux   float64
	extent float64
}

// Convolve returns the convolution of ms, flattening nested convolutions.
// A single factor is returned unwrapped.
func Convolve(ms ...Model) (Model, error) {
	factors, err := flatten("Convolve", ms, func(m Model) ([]Model, bool) {
		if c, ok := m.(*ConvolveNode); ok {
			return c.ms, true
		}
		return nil, false
	})
	if err != nil {
		return nil, err
	}
	if len(factors) == 1 {
		return factors[0], nil
	}
	c := &ConvolveNode{ms: factors, traits: Traits{VisibilityAnalytic: true}, flux: 1}
	for _, m := range factors {
		c.traits.VisibilityAnalytic = c.traits.VisibilityAnalytic && m.Traits().VisibilityAnalytic
		c.flux *= m.Flux()
		c.extent += m.RadialExtent()
	}

	return c, nil
}

// Components returns the convolved factors in insertion order.
func (c *ConvolveNode) Components() []Model { return append([]Model(nil), c.ms...) }

// Len returns the number of factors.
func (c *ConvolveNode) Len() int { return len(c.ms) }

func (c *ConvolveNode) Traits() Traits        { return c.traits }
func (c *ConvolveNode) Flux() float64         { return c.flux }
func (c *ConvolveNode) RadialExtent() float64 { return c.extent }

// Intensity returns NaN; images of convolutions come from synthesis.
func (c *ConvolveNode) Intensity(float64, float64) float64 { return nan }

func (c *ConvolveNode) Visibility(u, v float64, src FourierSource) complex128 {
	prod := complex(1, 0)
	for _, m := range c.ms {
		prod *= m.Visibility(u, v, src)
	}
	return prod
}
