// Package model represents sky-brightness models as immutable trees of
// primitives, modifiers and combinators.
//
// 🚀 What is a model?
//
//	A Model is a brightness distribution I(x,y) with Fourier transform
//	V(u,v) = ∫ I(x,y)·exp(+2πi(ux+vy)) dx dy. Trees are built from:
//	  • primitives:  Gaussian, Disk, Ring, MRing, ExtendedRing, Raster
//	  • modifiers:   Shift, Rotate, Stretch, Renormalize (and Negate)
//	  • combinators: Add (sum) and Convolve
//
// ✨ Capability traits:
//
//	Every node reports Traits{Primitive, VisibilityAnalytic, ImageAnalytic}.
//	Primitives declare them; modifiers inherit their child's analytic flags;
//	combinators AND their children's flags (a convolution is never
//	image-analytic). Evaluation is dispatched by each node's own
//	Visibility method, so the decision costs one interface call per node:
//	  • analytic primitive  → closed-form formula
//	  • numerical primitive → FourierSource.NumericVisibility (a cache)
//	  • composite           → transform / combine children
//
// ⚙️ Smart constructors:
//
//	Nodes are only built through constructors that keep trees shallow:
//	Shift of a Shift adds offsets, Rotate of a Rotate adds angles, Stretch of
//	a Stretch multiplies factors, Renormalize of a Renormalize multiplies
//	scales, and Add/Convolve flatten nested sums/convolutions into one
//	ordered component list.
//
//	ring := model.Must(model.Stretch(model.Ring{}, 20, 20))
//	blob := model.Must(model.Modify(model.Gaussian{},
//	    model.WithStretch(8.5, 8.5), model.WithShift(10, 0)))
//	sky := model.Must(model.Add(ring, blob))
//
// Errors:
//
//	Degenerate parameters fail at construction with ErrDegenerateTransform
//	or ErrInvalidParameter (class vlbimodel.ErrDomain); malformed trees fail
//	with ErrNilModel / ErrEmptyCombinator (class vlbimodel.ErrConfiguration).
package model
