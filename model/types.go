// SPDX-License-Identifier: MIT

package model

import "github.com/katalvlaran/vlbimodel/grid"

// Traits are the capability flags every node resolves at construction.
//
//   - Primitive:          a leaf with its own formulas (false for modifiers and combinators).
//   - VisibilityAnalytic: the whole subtree has closed-form visibilities; when false
//     at least one leaf needs a FourierSource.
//   - ImageAnalytic:      Intensity is a closed form for the whole subtree; when false
//     images come from synthesis.
type Traits struct {
	Primitive          bool
	VisibilityAnalytic bool
	ImageAnalytic      bool
}

// Trait sets declared by the primitives in this package.
var (
	PrimitiveAnalytic       = Traits{Primitive: true, VisibilityAnalytic: true, ImageAnalytic: true}
	PrimitiveVisibilityOnly = Traits{Primitive: true, VisibilityAnalytic: true}
	PrimitiveNumerical      = Traits{Primitive: true, ImageAnalytic: true}
)

// Model is a node of a sky-brightness model tree. Implementations are
// immutable after construction and safe for concurrent evaluation.
type Model interface {
	// Traits reports the node's capability flags.
	Traits() Traits

	// Flux returns the total flux, V(0,0).
	Flux() float64

	// RadialExtent bounds the radius outside which intensity is negligible.
	RadialExtent() float64

	// Intensity returns I(x,y). Only meaningful when Traits().ImageAnalytic
	// holds; otherwise it returns NaN.
	Intensity(x, y float64) float64

	// Visibility returns V(u,v). Numerical leaves delegate to src; with a nil
	// src, or a frequency src cannot serve, the result is NaN.
	// Complexity: O(L) for L leaves under the node.
	Visibility(u, v float64, src FourierSource) complex128
}

// FourierSource supplies visibilities for primitives without a closed form.
// The frequency passed is the one the leaf sees after every enclosing
// modifier has transformed the query.
type FourierSource interface {
	NumericVisibility(leaf Model, u, v float64) complex128
}

// Modifier is a single-child node defined by coordinate maps and scales:
//
//	I(x,y) = ScaleImage(x,y)·child.I(TransformImage(x,y))
//	V(u,v) = ScaleUV(u,v)·child.V(TransformUV(u,v))
type Modifier interface {
	Model
	Child() Model
	TransformImage(x, y float64) (float64, float64)
	ScaleImage(x, y float64) float64
	TransformUV(u, v float64) (float64, float64)
	ScaleUV(u, v float64) complex128
}

// Combinator is a multi-child node. Components returns the children in
// insertion order; the slice is a copy.
type Combinator interface {
	Model
	Components() []Model
}

// Imaged is implemented by primitives whose data already is a pixel map. The
// numerical Fourier cache transforms that map directly instead of sampling
// Intensity.
type Imaged interface {
	Model
	Pixels() *grid.Map
}

// Must panics if err is non-nil and returns m otherwise. Use it for models
// built from literal parameters, like regexp.MustCompile.
func Must(m Model, err error) Model {
	if err != nil {
		panic(err)
	}
	return m
}
