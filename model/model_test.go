// Package model_test contains unit tests for primitives, modifiers and
// combinators of the model package.
package model_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/vlbimodel"
	"github.com/katalvlaran/vlbimodel/grid"
	"github.com/katalvlaran/vlbimodel/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uvSamples is a fixed set of query frequencies spanning several fringe spacings.
var uvSamples = [][2]float64{
	{0, 0}, {0.01, 0}, {0, -0.02}, {0.05, 0.03}, {-0.11, 0.07}, {0.3, -0.25}, {1.2, 0.4},
}

func requireCmplxNear(t *testing.T, want, got complex128, tol float64, msgAndArgs ...any) {
	t.Helper()
	require.LessOrEqual(t, cmplx.Abs(want-got), tol, msgAndArgs...)
}

// TestPrimitives_UnitFlux verifies V(0,0) equals Flux for every primitive.
func TestPrimitives_UnitFlux(t *testing.T) {
	mr, err := model.NewMRing([]float64{0.2, -0.1}, []float64{0.05, 0.3})
	require.NoError(t, err)
	for _, m := range []model.Model{model.Gaussian{}, model.Disk{}, model.Ring{}, mr} {
		requireCmplxNear(t, complex(m.Flux(), 0), m.Visibility(0, 0, nil), 1e-12, "%T", m)
		assert.True(t, m.Traits().Primitive, "%T must be primitive", m)
		assert.True(t, m.Traits().VisibilityAnalytic, "%T must be analytic", m)
	}
}

// TestGaussian_Formulas checks the closed forms against hand values.
func TestGaussian_Formulas(t *testing.T) {
	g := model.Gaussian{}
	assert.InDelta(t, 1/(2*math.Pi), g.Intensity(0, 0), 1e-15)
	assert.InDelta(t, math.Exp(-0.5)/(2*math.Pi), g.Intensity(0.6, 0.8), 1e-15)
	requireCmplxNear(t, complex(math.Exp(-2*math.Pi*math.Pi*0.01), 0), g.Visibility(0.06, 0.08, nil), 1e-15)
}

// TestDisk_Formulas checks disk intensity support and the first visibility null.
func TestDisk_Formulas(t *testing.T) {
	d := model.Disk{}
	assert.Equal(t, 1/math.Pi, d.Intensity(0.5, 0.5))
	assert.Zero(t, d.Intensity(0.8, 0.8))
	// First zero of J1 is at 3.8317; q = 3.8317/(2π).
	assert.InDelta(t, 0, real(d.Visibility(3.83170597/(2*math.Pi), 0, nil)), 1e-8)
	requireCmplxNear(t, 1, d.Visibility(1e-9, 0, nil), 1e-12, "small-q branch")
}

// TestRing_NoImage verifies the thin ring is visibility-only.
func TestRing_NoImage(t *testing.T) {
	r := model.Ring{}
	assert.False(t, r.Traits().ImageAnalytic)
	assert.True(t, math.IsNaN(r.Intensity(1, 0)))
	assert.InDelta(t, math.J0(2*math.Pi*0.5), real(r.Visibility(0.3, 0.4, nil)), 1e-15)
}

// TestMRing_Hermitian checks V(−u,−v) = conj V(u,v) for a real image and the
// zero-mode reduction to a plain ring.
func TestMRing_Hermitian(t *testing.T) {
	mr, err := model.NewMRing([]float64{0.25, 0.1, -0.05}, []float64{-0.2, 0.15, 0.02})
	require.NoError(t, err)
	assert.Equal(t, 3, mr.Modes())
	for _, uv := range uvSamples {
		a := mr.Visibility(uv[0], uv[1], nil)
		b := mr.Visibility(-uv[0], -uv[1], nil)
		requireCmplxNear(t, cmplx.Conj(a), b, 1e-12, "uv=%v", uv)
	}

	plain, err := model.NewMRing(nil, nil)
	require.NoError(t, err)
	for _, uv := range uvSamples {
		requireCmplxNear(t, model.Ring{}.Visibility(uv[0], uv[1], nil), plain.Visibility(uv[0], uv[1], nil), 1e-15)
	}

	_, err = model.NewMRing([]float64{1}, nil)
	require.ErrorIs(t, err, model.ErrLengthMismatch)
	_, err = model.NewMRing([]float64{math.NaN()}, []float64{0})
	require.ErrorIs(t, err, model.ErrInvalidParameter)
}

// TestMRing_DipoleDirection verifies the first cosine mode against the
// Jacobi–Anger expansion along the u axis.
func TestMRing_DipoleDirection(t *testing.T) {
	mr, err := model.NewMRing([]float64{0.3}, []float64{0})
	require.NoError(t, err)
	q := 0.2
	k := 2 * math.Pi * q
	want := complex(math.J0(k), 2*0.3*math.J1(k))
	requireCmplxNear(t, want, mr.Visibility(q, 0, nil), 1e-14)
}

// TestExtendedRing_Profile checks validation and that the radial profile holds unit flux.
func TestExtendedRing_Profile(t *testing.T) {
	_, err := model.NewExtendedRing(1)
	require.ErrorIs(t, err, model.ErrInvalidParameter)
	require.ErrorIs(t, err, vlbimodel.ErrDomain)

	er, err := model.NewExtendedRing(8)
	require.NoError(t, err)
	assert.Equal(t, model.PrimitiveNumerical, er.Traits())
	assert.Equal(t, 8.0, er.Shape())

	// Midpoint rule over r ∈ (0, 60]: ∫ 2πr·I(r) dr.
	const dr = 1e-3
	var sum float64
	for r := dr / 2; r < 60; r += dr {
		sum += 2 * math.Pi * r * er.Intensity(r, 0) * dr
	}
	assert.InDelta(t, 1, sum, 1e-4)
	assert.Greater(t, er.RadialExtent(), 1.5)
	assert.True(t, cmplx.IsNaN(er.Visibility(0.1, 0, nil)), "numerical leaf without a source is NaN")
}

// TestRaster_Intensity verifies pulse interpolation and flux of a pixel model.
func TestRaster_Intensity(t *testing.T) {
	g, err := grid.NewGrid(4, 4, 4, 4)
	require.NoError(t, err)
	m, err := grid.NewMap(g, grid.BoxPulse{})
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 0.75))
	require.NoError(t, m.Set(3, 0, 0.25))

	r, err := model.NewRaster(m)
	require.NoError(t, err)
	assert.True(t, r.Traits().ImageAnalytic)
	assert.False(t, r.Traits().VisibilityAnalytic)
	assert.Equal(t, 1.0, r.Flux())
	assert.InDelta(t, 0.75, r.Intensity(g.X(1), g.Y(2)), 1e-15, "box pulse returns pixel value / area")
	assert.InDelta(t, 0.25, r.Intensity(g.X(3)+0.2, g.Y(0)-0.3), 1e-15)
	assert.Zero(t, r.Intensity(g.X(0), g.Y(0)))
	assert.Same(t, m, r.Pixels())

	delta, err := grid.NewMap(g, nil)
	require.NoError(t, err)
	rd, err := model.NewRaster(delta)
	require.NoError(t, err)
	assert.False(t, rd.Traits().ImageAnalytic, "delta pulse has no continuous image")

	_, err = model.NewRaster(nil)
	require.ErrorIs(t, err, model.ErrNilModel)
}

// TestShift_Law verifies V(shift(m)) = exp(2πi(uΔx+vΔy))·V(m) and merging.
func TestShift_Law(t *testing.T) {
	base := model.Must(model.Stretch(model.Gaussian{}, 2, 3))
	dx, dy := 1.5, -0.7
	sh := model.Must(model.Shift(base, dx, dy))
	for _, uv := range uvSamples {
		u, v := uv[0], uv[1]
		want := cmplx.Exp(complex(0, 2*math.Pi*(u*dx+v*dy))) * base.Visibility(u, v, nil)
		requireCmplxNear(t, want, sh.Visibility(u, v, nil), 1e-14, "uv=%v", uv)
	}
	assert.InDelta(t, base.Intensity(0.3, 0.2), sh.Intensity(0.3+dx, 0.2+dy), 1e-15)

	twice := model.Must(model.Shift(sh, 0.5, 0.7))
	node, ok := twice.(*model.ShiftNode)
	require.True(t, ok)
	gx, gy := node.Offset()
	assert.InDelta(t, 2.0, gx, 1e-15)
	assert.InDelta(t, 0.0, gy, 1e-15)
	assert.Same(t, base, node.Child(), "shift of shift must not nest")
}

// TestRotate_Law checks rotation acts identically on image and uv and merges angles.
func TestRotate_Law(t *testing.T) {
	base := model.Must(model.Stretch(model.Gaussian{}, 3, 1))
	rot := model.Must(model.Rotate(base, math.Pi/2))
	// R(π/2) maps (u,v) to (−v,u).
	for _, uv := range uvSamples {
		requireCmplxNear(t, base.Visibility(-uv[1], uv[0], nil), rot.Visibility(uv[0], uv[1], nil), 1e-14)
	}
	assert.InDelta(t, base.Intensity(-0.4, 1.1), rot.Intensity(1.1, 0.4), 1e-15)

	a := model.Must(model.Rotate(model.Must(model.Rotate(base, 0.4)), 0.5))
	b := model.Must(model.Rotate(base, 0.9))
	node, ok := a.(*model.RotateNode)
	require.True(t, ok)
	assert.InDelta(t, 0.9, node.Angle(), 1e-14)
	assert.Same(t, base, node.Child())
	for _, uv := range uvSamples {
		requireCmplxNear(t, b.Visibility(uv[0], uv[1], nil), a.Visibility(uv[0], uv[1], nil), 1e-14)
	}

	_, err := model.Rotate(base, math.Inf(1))
	require.ErrorIs(t, err, model.ErrInvalidParameter)
}

// TestStretch_FluxAndLaw checks flux preservation, the similarity law and validation.
func TestStretch_FluxAndLaw(t *testing.T) {
	for _, ab := range [][2]float64{{1, 1}, {0.1, 5}, {20, 20}, {3, 0.25}} {
		s := model.Must(model.Stretch(model.Disk{}, ab[0], ab[1]))
		assert.InDelta(t, 1.0, s.Flux(), 1e-15)
		requireCmplxNear(t, model.Disk{}.Visibility(0.2*ab[0], 0.1*ab[1], nil), s.Visibility(0.2, 0.1, nil), 1e-15)
	}
	s := model.Must(model.Stretch(model.Gaussian{}, 2, 4))
	want := math.Exp(-(1.0/4+4.0/16)/2) / (2 * math.Pi * 8)
	assert.InDelta(t, want, s.Intensity(1, 2), 1e-15)

	s2 := model.Must(model.Stretch(s, 0.5, 2))
	node, ok := s2.(*model.StretchNode)
	require.True(t, ok)
	a, b := node.Factors()
	assert.Equal(t, [2]float64{1, 8}, [2]float64{a, b})

	for _, bad := range [][2]float64{{0, 1}, {1, -2}, {math.NaN(), 1}, {1, math.Inf(1)}} {
		_, err := model.Stretch(model.Gaussian{}, bad[0], bad[1])
		require.ErrorIs(t, err, model.ErrDegenerateTransform, "%v", bad)
		require.ErrorIs(t, err, vlbimodel.ErrDomain)
	}
}

// TestRenormalize_GroupLaw checks renorm(renorm(m,a),b) == renorm(m,a·b) and negation.
func TestRenormalize_GroupLaw(t *testing.T) {
	m := model.Must(model.Shift(model.Gaussian{}, 1, 0))
	ra := model.Must(model.Renormalize(m, 2.5))
	rab := model.Must(model.Renormalize(ra, -0.4))
	direct := model.Must(model.Renormalize(m, -1))

	node, ok := rab.(*model.RenormNode)
	require.True(t, ok)
	assert.InDelta(t, -1.0, node.Scale(), 1e-15)
	assert.Same(t, m, node.Child(), "renorm of renorm must not nest")
	assert.InDelta(t, -1.0, rab.Flux(), 1e-15)

	neg := model.Must(model.Negate(m))
	for _, uv := range uvSamples {
		u, v := uv[0], uv[1]
		requireCmplxNear(t, 2.5*m.Visibility(u, v, nil), ra.Visibility(u, v, nil), 1e-15)
		requireCmplxNear(t, direct.Visibility(u, v, nil), rab.Visibility(u, v, nil), 1e-15)
		requireCmplxNear(t, -m.Visibility(u, v, nil), neg.Visibility(u, v, nil), 1e-15)
	}
	assert.InDelta(t, -m.Intensity(1, 0), neg.Intensity(1, 0), 1e-15)
}

// TestModifier_TraitsFollowChild verifies modifiers copy the child's analytic flags.
func TestModifier_TraitsFollowChild(t *testing.T) {
	er, err := model.NewExtendedRing(4)
	require.NoError(t, err)
	for _, child := range []model.Model{model.Gaussian{}, model.Ring{}, er} {
		m := model.Must(model.Modify(child, model.WithShift(1, 1), model.WithRotation(0.3),
			model.WithStretch(2, 2), model.WithRenorm(0.5)))
		ct, mt := child.Traits(), m.Traits()
		assert.False(t, mt.Primitive)
		assert.Equal(t, ct.VisibilityAnalytic, mt.VisibilityAnalytic, "%T", child)
		assert.Equal(t, ct.ImageAnalytic, mt.ImageAnalytic, "%T", child)
	}
}

// TestModify_Order checks ops apply innermost first.
func TestModify_Order(t *testing.T) {
	m := model.Must(model.Modify(model.Gaussian{}, model.WithStretch(2, 1), model.WithShift(3, 0)))
	sh, ok := m.(*model.ShiftNode)
	require.True(t, ok, "last op is outermost")
	_, ok = sh.Child().(*model.StretchNode)
	require.True(t, ok)
	assert.InDelta(t, 5.0*2+3, m.RadialExtent(), 1e-12)

	_, err := model.Modify(model.Gaussian{}, model.WithStretch(0, 1))
	require.ErrorIs(t, err, model.ErrDegenerateTransform)
	_, err = model.Modify(nil)
	require.ErrorIs(t, err, model.ErrNilModel)
	_, err = model.Modify(model.Gaussian{}, nil)
	require.ErrorIs(t, err, model.ErrInvalidParameter)
}

// TestAdd_Flattening verifies components(sum(sum(a,b),c)) = [a,b,c].
func TestAdd_Flattening(t *testing.T) {
	a := model.Must(model.Shift(model.Gaussian{}, 1, 0))
	b := model.Must(model.Stretch(model.Disk{}, 2, 2))
	c := model.Must(model.Renormalize(model.Ring{}, 0.5))

	ab := model.Must(model.Add(a, b))
	abc := model.Must(model.Add(ab, c))
	sum, ok := abc.(*model.SumNode)
	require.True(t, ok)
	comps := sum.Components()
	require.Len(t, comps, 3)
	assert.Same(t, a, comps[0])
	assert.Same(t, b, comps[1])
	assert.Same(t, c, comps[2])

	// Flattening on the right as well.
	cab := model.Must(model.Add(c, ab)).(*model.SumNode).Components()
	require.Len(t, cab, 3)
	assert.Same(t, c, cab[0])
	assert.Same(t, a, cab[1])

	comps[0] = nil
	assert.NotNil(t, sum.Components()[0], "Components returns a copy")

	assert.InDelta(t, 2.5, abc.Flux(), 1e-15)
	assert.Equal(t, 6.0, abc.RadialExtent(), "max of component extents")
	assert.False(t, abc.Traits().ImageAnalytic, "ring has no image")
	assert.True(t, abc.Traits().VisibilityAnalytic)
	for _, uv := range uvSamples {
		u, v := uv[0], uv[1]
		want := a.Visibility(u, v, nil) + b.Visibility(u, v, nil) + c.Visibility(u, v, nil)
		requireCmplxNear(t, want, abc.Visibility(u, v, nil), 1e-14)
	}

	single := model.Must(model.Add(a))
	assert.Same(t, a, single)
	_, err := model.Add()
	require.ErrorIs(t, err, model.ErrEmptyCombinator)
	_, err = model.Add(a, nil)
	require.ErrorIs(t, err, model.ErrNilModel)
}

// TestConvolve_Theorem verifies V(m1∗m2) = V(m1)·V(m2) and flattening.
func TestConvolve_Theorem(t *testing.T) {
	m1 := model.Must(model.Stretch(model.Ring{}, 20, 20))
	m2 := model.Must(model.Stretch(model.Gaussian{}, 2, 2))
	m3 := model.Must(model.Shift(model.Disk{}, 1, 1))
	c := model.Must(model.Convolve(m1, m2))
	for _, uv := range uvSamples {
		u, v := uv[0]*0.05, uv[1]*0.05
		requireCmplxNear(t, m1.Visibility(u, v, nil)*m2.Visibility(u, v, nil), c.Visibility(u, v, nil), 1e-14)
	}
	assert.False(t, c.Traits().ImageAnalytic, "convolution has no closed-form image")
	assert.True(t, math.IsNaN(c.Intensity(0, 0)))
	assert.Equal(t, 30.0+10, c.RadialExtent())

	nested := model.Must(model.Convolve(c, m3)).(*model.ConvolveNode)
	require.Equal(t, 3, nested.Len())
	comps := nested.Components()
	assert.Same(t, m1, comps[0])
	assert.Same(t, m2, comps[1])
	assert.Same(t, m3, comps[2])

	_, err := model.Convolve()
	require.ErrorIs(t, err, model.ErrEmptyCombinator)
}

// TestCombinator_AnalyticIsConjunction verifies one numerical child makes the whole tree numerical.
func TestCombinator_AnalyticIsConjunction(t *testing.T) {
	er, err := model.NewExtendedRing(5)
	require.NoError(t, err)
	shifted := model.Must(model.Shift(er, 1, 0))
	sum := model.Must(model.Add(model.Gaussian{}, shifted))
	conv := model.Must(model.Convolve(model.Gaussian{}, shifted))
	assert.False(t, sum.Traits().VisibilityAnalytic)
	assert.True(t, sum.Traits().ImageAnalytic)
	assert.False(t, conv.Traits().VisibilityAnalytic)
	assert.True(t, cmplx.IsNaN(sum.Visibility(0.1, 0.1, nil)))
}

// TestCrescent verifies flux, validation and the hole.
func TestCrescent(t *testing.T) {
	cr, err := model.Crescent(5, 2, 1.5, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cr.Flux(), 1e-14)
	requireCmplxNear(t, 1, cr.Visibility(0, 0, nil), 1e-14)
	assert.InDelta(t, 0, cr.Intensity(1.5, 0), 1e-15, "hole is empty with floor=0")
	assert.Greater(t, cr.Intensity(-4, 0), 0.0)
	assert.True(t, cr.Traits().ImageAnalytic)

	_, err = model.Crescent(5, 2, 4, 0, 0)
	require.ErrorIs(t, err, model.ErrInvalidParameter)
	_, err = model.Crescent(2, 5, 0, 0, 0)
	require.ErrorIs(t, err, model.ErrInvalidParameter)
	_, err = model.Crescent(5, 2, 0, 0, 1.5)
	require.ErrorIs(t, err, model.ErrInvalidParameter)
}

// TestSmoothed builds a blurred ring and checks the width conversion.
func TestSmoothed(t *testing.T) {
	sigma := model.FWHMToSigma(4)
	assert.InDelta(t, 4/2.3548200450309493, sigma, 1e-12)
	ring := model.Must(model.Stretch(model.Ring{}, 20, 20))
	sm := model.Must(model.Smoothed(ring, sigma))
	u := 0.02
	want := math.J0(2*math.Pi*u*20) * math.Exp(-2*math.Pi*math.Pi*u*u*sigma*sigma)
	assert.InDelta(t, want, real(sm.Visibility(u, 0, nil)), 1e-14)

	_, err := model.Smoothed(ring, 0)
	require.ErrorIs(t, err, model.ErrDegenerateTransform)
}

// TestWalk_TransformsFrequencies verifies leaves see modifier-transformed frequencies.
func TestWalk_TransformsFrequencies(t *testing.T) {
	er, err := model.NewExtendedRing(3)
	require.NoError(t, err)
	stretched := model.Must(model.Stretch(er, 2, 3))
	tree := model.Must(model.Add(model.Gaussian{}, model.Must(model.Shift(stretched, 5, 5))))

	u := []float64{0.1, 0.2}
	v := []float64{0.3, -0.1}
	var leaves []model.Model
	var seen [][]float64
	model.Walk(tree, u, v, func(leaf model.Model, lu, lv []float64) {
		leaves = append(leaves, leaf)
		seen = append(seen, append(append([]float64(nil), lu...), lv...))
	})
	require.Len(t, leaves, 2)
	assert.Equal(t, model.Gaussian{}, leaves[0])
	assert.Same(t, er, leaves[1])
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3, -0.1}, seen[0], 1e-15)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.9, -0.3}, seen[1], 1e-15)
	assert.Equal(t, []float64{0.1, 0.2}, u, "input slices untouched")

	assert.Len(t, model.Leaves(tree), 2)
}

// TestMust panics on error.
func TestMust(t *testing.T) {
	assert.Panics(t, func() { model.Must(model.Stretch(model.Gaussian{}, 0, 0)) })
	assert.NotPanics(t, func() { model.Must(model.Shift(model.Gaussian{}, 0, 0)) })
}
