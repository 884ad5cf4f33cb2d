// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vlbimodel/grid"
)

// Compile-time assertions for the numerical primitives.
var (
	_ Model  = (*ExtendedRing)(nil)
	_ Model  = (*Raster)(nil)
	_ Imaged = (*Raster)(nil)
)

// ExtendedRing is a ring with an inverse-gamma radial profile of shape α and
// scale α−1, so the mean radius is 1 and the flux is 1:
//
//	I(r) = f(r)/(2πr),   f(r) = βᵅ/Γ(α)·r^(−α−1)·exp(−β/r),   β = α−1
//
// Large α gives a sharp ring, α → 1 a diffuse halo. The visibility has no
// closed form, so evaluation goes through a FourierSource.
type ExtendedRing struct {
	shape  float64
	logC   float64 // α·log β − log Γ(α)
	extent float64
}

// NewExtendedRing validates α > 1.
func NewExtendedRing(shape float64) (*ExtendedRing, error) {
	if !finite(shape) || shape <= 1 {
		return nil, fmt.Errorf("NewExtendedRing(%g): shape must be finite and > 1: %w", shape, ErrInvalidParameter)
	}
	beta := shape - 1
	lg, _ := math.Lgamma(shape)
	r := &ExtendedRing{shape: shape, logC: shape*math.Log(beta) - lg}
	// Radius beyond which the profile tail holds less than 1e-3 of the flux:
	// ∫_R^∞ f ≈ βᵅ/(Γ(α)·α·Rᵅ).
	r.extent = math.Max(1.5, math.Exp((r.logC-math.Log(shape)+3*math.Ln10)/shape))

	return r, nil
}

// Shape returns α.
func (r *ExtendedRing) Shape() float64 { return r.shape }

func (*ExtendedRing) Traits() Traits          { return PrimitiveNumerical }
func (*ExtendedRing) Flux() float64           { return 1 }
func (r *ExtendedRing) RadialExtent() float64 { return r.extent }

func (r *ExtendedRing) Intensity(x, y float64) float64 {
	rad := math.Hypot(x, y)
	if rad == 0 {
		return 0
	}
	beta := r.shape - 1
	logf := r.logC - (r.shape+1)*math.Log(rad) - beta/rad

	return math.Exp(logf) / (2 * math.Pi * rad)
}

func (r *ExtendedRing) Visibility(u, v float64, src FourierSource) complex128 {
	if src == nil {
		return cmplxNaN
	}
	return src.NumericVisibility(r, u, v)
}

// Raster is a pixel model: a caller-supplied flux map interpreted through its
// pulse. The visibility is the pixel DFT times the pulse transform, which
// the numerical Fourier cache evaluates with a transform plan.
//
// Raster keeps a reference to the map; callers must not mutate it while the
// model is in use.
type Raster struct {
	m *grid.Map
}

// NewRaster wraps m as a model.
func NewRaster(m *grid.Map) (*Raster, error) {
	if m == nil {
		return nil, fmt.Errorf("NewRaster: %w", ErrNilModel)
	}
	return &Raster{m: m}, nil
}

// Pixels implements Imaged.
func (r *Raster) Pixels() *grid.Map { return r.m }

// Traits reports a numerical primitive; the image is analytic only when the
// pulse has extent.
func (r *Raster) Traits() Traits {
	t := PrimitiveNumerical
	t.ImageAnalytic = r.m.Pulse().Support() > 0
	return t
}

func (r *Raster) Flux() float64 { return r.m.Flux() }

func (r *Raster) RadialExtent() float64 {
	g := r.m.Grid()
	return math.Hypot(g.FovX, g.FovY) / 2
}

// Intensity sums the pulse-weighted pixels around (x, y).
func (r *Raster) Intensity(x, y float64) float64 {
	p := r.m.Pulse()
	w := p.Support()
	if w == 0 {
		return nan
	}
	g := r.m.Grid()
	dx, dy := g.Dx(), g.Dy()
	// Fractional pixel coordinates of (x, y).
	fi := x/dx + float64(g.NX)/2 - 0.5
	fj := y/dy + float64(g.NY)/2 - 0.5
	i0, i1 := max(0, int(math.Ceil(fi-w))), min(g.NX-1, int(math.Floor(fi+w)))
	j0, j1 := max(0, int(math.Ceil(fj-w))), min(g.NY-1, int(math.Floor(fj+w)))
	data := r.m.Data()
	var sum float64
	for j := j0; j <= j1; j++ {
		ky := p.Kernel(fj - float64(j))
		if ky == 0 {
			continue
		}
		for i := i0; i <= i1; i++ {
			sum += data[j*g.NX+i] * p.Kernel(fi-float64(i)) * ky
		}
	}

	return sum / (dx * dy)
}

func (r *Raster) Visibility(u, v float64, src FourierSource) complex128 {
	if src == nil {
		return cmplxNaN
	}
	return src.NumericVisibility(r, u, v)
}

var cmplxNaN = complex(math.NaN(), math.NaN())
