// Package imaging_test contains tests for image sampling and synthesis.
package imaging_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/vlbimodel/ftcache"
	"github.com/katalvlaran/vlbimodel/grid"
	"github.com/katalvlaran/vlbimodel/imaging"
	"github.com/katalvlaran/vlbimodel/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, n int, fov float64) grid.Grid {
	t.Helper()
	g, err := grid.NewGrid(n, n, fov, fov)
	require.NoError(t, err)
	return g
}

// TestIntensityMap_FluxConsistency checks Σ image ≈ flux for sampled models.
func TestIntensityMap_FluxConsistency(t *testing.T) {
	g := newGrid(t, 128, 40)
	models := []model.Model{
		model.Must(model.Stretch(model.Gaussian{}, 2, 2)),
		model.Must(model.Modify(model.Gaussian{}, model.WithStretch(1.5, 3), model.WithRotation(0.7), model.WithShift(2, -3))),
		model.Must(model.Add(
			model.Must(model.Renormalize(model.Must(model.Stretch(model.Gaussian{}, 2, 2)), 0.3)),
			model.Must(model.Renormalize(model.Must(model.Modify(model.Gaussian{}, model.WithStretch(1, 1), model.WithShift(-4, 4))), 0.7)),
		)),
	}
	for _, m := range models {
		img, err := imaging.IntensityMap(m, g)
		require.NoError(t, err)
		assert.InDelta(t, m.Flux(), img.Flux(), 1e-4*math.Abs(m.Flux()), "%T", m)
		assert.Nil(t, imaging.CheckFlux(m, img, 1e-4))
	}
}

// TestMoments checks centroid and covariance of a shifted, stretched Gaussian.
func TestMoments(t *testing.T) {
	g := newGrid(t, 160, 40)
	m := model.Must(model.Modify(model.Gaussian{}, model.WithStretch(2, 1.5), model.WithShift(3, -2)))
	img, err := imaging.IntensityMap(m, g)
	require.NoError(t, err)

	cx, cy := imaging.Centroid(img)
	assert.InDelta(t, 3.0, cx, 1e-6)
	assert.InDelta(t, -2.0, cy, 1e-6)

	cov := imaging.SecondMoment(img)
	assert.InDelta(t, 4.0, cov.At(0, 0), 1e-4)
	assert.InDelta(t, 2.25, cov.At(1, 1), 1e-4)
	assert.InDelta(t, 0.0, cov.At(0, 1), 1e-6)
}

// TestSynthesize_MatchesSampling compares synthesis with direct sampling for a
// model that is analytic in both domains.
func TestSynthesize_MatchesSampling(t *testing.T) {
	g := newGrid(t, 64, 40)
	m := model.Must(model.Modify(model.Gaussian{}, model.WithStretch(2, 2.5), model.WithShift(1.25, -0.5)))

	sampled, err := imaging.IntensityMap(m, g)
	require.NoError(t, err)

	s, err := imaging.NewSynthesizer(g)
	require.NoError(t, err)
	synth, err := grid.NewMap(g, nil)
	require.NoError(t, err)
	require.NoError(t, s.Synthesize(synth, m))

	assert.InDeltaSlice(t, sampled.Data(), synth.Data(), 1e-10)
	assert.InDelta(t, 1.0, synth.Flux(), 1e-12)
}

// TestSynthesize_Idempotent verifies repeated synthesis overwrites instead of accumulating.
func TestSynthesize_Idempotent(t *testing.T) {
	g := newGrid(t, 48, 60)
	ring := model.Must(model.Smoothed(model.Must(model.Stretch(model.Ring{}, 12, 12)), 1.5))
	s, err := imaging.NewSynthesizer(g)
	require.NoError(t, err)

	once, err := grid.NewMap(g, nil)
	require.NoError(t, err)
	require.NoError(t, s.Synthesize(once, ring))

	reused, err := grid.NewMap(g, nil)
	require.NoError(t, err)
	for i := range reused.Data() {
		reused.Data()[i] = 42 // stale content must not leak through
	}
	require.NoError(t, s.Synthesize(reused, ring))
	require.NoError(t, s.Synthesize(reused, ring))
	assert.Equal(t, once.Data(), reused.Data())
}

// TestIntensityMapInto_NonAnalyticImage checks the synthesis path is chosen
// for models without a closed-form image.
func TestIntensityMapInto_NonAnalyticImage(t *testing.T) {
	g := newGrid(t, 64, 64)
	ring := model.Must(model.Smoothed(model.Must(model.Stretch(model.Ring{}, 10, 10)), 2))
	img, err := imaging.IntensityMap(ring, g)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, img.Flux(), 1e-9)

	// Ring brightness peaks near r = 10 and is faint at the centre.
	centre, err := img.At(32, 32)
	require.NoError(t, err)
	edge, err := img.At(42, 32)
	require.NoError(t, err)
	assert.Greater(t, edge, 10*centre)
}

// TestIntensityMap_ThroughFourierCache synthesizes a model with numerical
// visibilities from a lazily filled cache and from one built at the
// synthesis frequencies; both must conserve flux and agree.
func TestIntensityMap_ThroughFourierCache(t *testing.T) {
	g := newGrid(t, 128, 120)
	er, err := model.NewExtendedRing(6)
	require.NoError(t, err)
	m := model.Must(model.Convolve(model.Must(model.Stretch(er, 10, 10)), model.Gaussian{}))
	require.False(t, m.Traits().VisibilityAnalytic)

	lazy := ftcache.New()
	fromLazy, err := imaging.IntensityMap(m, g, imaging.WithSource(lazy))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fromLazy.Flux(), 1e-3)
	assert.Equal(t, 1, lazy.Len())
	assert.Empty(t, lazy.Warnings())

	built := ftcache.New()
	u, v := imaging.FrequencyGrid(g)
	require.NoError(t, built.Build(m, u, v))
	fromBuilt, err := imaging.IntensityMap(m, g, imaging.WithSource(built))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fromBuilt.Flux(), 1e-3)
	assert.Empty(t, built.Warnings())

	// The lazy entry samples the ring at the default resolution, the built
	// one at the resolution its query set needs; images agree to
	// interpolation accuracy.
	assert.InDeltaSlice(t, fromLazy.Data(), fromBuilt.Data(), 1e-4)
}

// TestSynthesize_Padding verifies a padded synthesizer keeps emission that
// crosses the field edge from wrapping onto the opposite side.
func TestSynthesize_Padding(t *testing.T) {
	g := newGrid(t, 64, 20)
	// Half a sigma inside the right edge at x = 10.
	m := model.Must(model.Shift(model.Gaussian{}, 9.5, 0))
	sampled, err := imaging.IntensityMap(m, g)
	require.NoError(t, err)

	plain, err := imaging.NewSynthesizer(g)
	require.NoError(t, err)
	wrapped, err := grid.NewMap(g, nil)
	require.NoError(t, err)
	require.NoError(t, plain.Synthesize(wrapped, m))

	padded, err := imaging.NewSynthesizer(g, imaging.WithPadding(2))
	require.NoError(t, err)
	assert.Equal(t, g, padded.Grid())
	clean, err := grid.NewMap(g, nil)
	require.NoError(t, err)
	require.NoError(t, padded.Synthesize(clean, m))

	// Periodic synthesis conserves the total; the padded one truncates it
	// exactly like sampling does.
	assert.InDelta(t, 1.0, wrapped.Flux(), 1e-9)
	assert.Less(t, sampled.Flux(), 0.75)
	assert.InDelta(t, sampled.Flux(), clean.Flux(), 1e-9)
	assert.InDeltaSlice(t, sampled.Data(), clean.Data(), 1e-10)

	edgeSampled, err := sampled.At(0, 32)
	require.NoError(t, err)
	edgeWrapped, err := wrapped.At(0, 32)
	require.NoError(t, err)
	assert.Less(t, edgeSampled, 1e-12)
	assert.Greater(t, edgeWrapped, 1e-3)

	u, v := padded.FrequencyGrid()
	require.Len(t, u, 128*128)
	assert.InDelta(t, 1.0/40, u[1]-u[0], 1e-15)
	assert.Equal(t, v[0], v[127])
	pu, _ := plain.FrequencyGrid()
	gu, _ := imaging.FrequencyGrid(g)
	assert.Equal(t, gu, pu)

	assert.Panics(t, func() { imaging.WithPadding(0) })
}

// TestSynthesize_Errors covers validation of inputs.
func TestSynthesize_Errors(t *testing.T) {
	g := newGrid(t, 16, 10)
	s, err := imaging.NewSynthesizer(g)
	require.NoError(t, err)
	dst, err := grid.NewMap(g, nil)
	require.NoError(t, err)

	er, err := model.NewExtendedRing(4)
	require.NoError(t, err)
	conv := model.Must(model.Convolve(er, model.Gaussian{}))
	require.ErrorIs(t, s.Synthesize(dst, conv), imaging.ErrSourceRequired)
	require.ErrorIs(t, s.Synthesize(nil, conv), imaging.ErrNilMap)
	require.ErrorIs(t, s.Synthesize(dst, nil), imaging.ErrNilModel)

	other, err := grid.NewMap(newGrid(t, 8, 10), nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.Synthesize(other, model.Gaussian{}), imaging.ErrGridMismatch)

	assert.Panics(t, func() { imaging.WithSource(nil) })
}

// TestCheckFlux_Warns verifies a truncated image produces a diagnostic.
func TestCheckFlux_Warns(t *testing.T) {
	g := newGrid(t, 32, 10)
	m := model.Must(model.Stretch(model.Gaussian{}, 5, 5))
	img, err := imaging.IntensityMap(m, g)
	require.NoError(t, err)
	w := imaging.CheckFlux(m, img, 1e-3)
	require.NotNil(t, w)
	assert.Equal(t, "flux", w.Quantity)
	assert.Less(t, w.Got, 0.5)
}

// TestFrequencyGrid lists synthesis frequencies in row-major order.
func TestFrequencyGrid(t *testing.T) {
	g, err := grid.NewGrid(4, 2, 8, 4)
	require.NoError(t, err)
	u, v := imaging.FrequencyGrid(g)
	require.Len(t, u, 8)
	assert.Equal(t, []float64{-0.25, -0.125, 0, 0.125, -0.25, -0.125, 0, 0.125}, u)
	assert.Equal(t, []float64{-0.25, -0.25, -0.25, -0.25, 0, 0, 0, 0}, v)
}
