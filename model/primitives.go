// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
)

// nan is the Intensity of nodes without a closed-form image.
var nan = math.NaN()

// Gaussian is the unit circular Gaussian: σ = 1, flux 1.
//
//	I(r) = exp(−r²/2)/(2π),   V(q) = exp(−2π²q²)
type Gaussian struct{}

// Compile-time assertions for the primitives in this file.
var (
	_ Model = Gaussian{}
	_ Model = Disk{}
	_ Model = Ring{}
	_ Model = (*MRing)(nil)
)

func (Gaussian) Traits() Traits        { return PrimitiveAnalytic }
func (Gaussian) Flux() float64         { return 1 }
func (Gaussian) RadialExtent() float64 { return 5 }

func (Gaussian) Intensity(x, y float64) float64 {
	return math.Exp(-(x*x+y*y)/2) / (2 * math.Pi)
}

func (Gaussian) Visibility(u, v float64, _ FourierSource) complex128 {
	return complex(math.Exp(-2*math.Pi*math.Pi*(u*u+v*v)), 0)
}

// Disk is the uniform unit disk: radius 1, flux 1.
//
//	I(r) = 1/π for r < 1,   V(q) = J₁(2πq)/(πq)
type Disk struct{}

func (Disk) Traits() Traits        { return PrimitiveAnalytic }
func (Disk) Flux() float64         { return 1 }
func (Disk) RadialExtent() float64 { return 1 }

func (Disk) Intensity(x, y float64) float64 {
	if x*x+y*y < 1 {
		return 1 / math.Pi
	}
	return 0
}

func (Disk) Visibility(u, v float64, _ FourierSource) complex128 {
	k := 2 * math.Pi * math.Hypot(u, v)
	if k < 1e-6 {
		return complex(1-k*k/8, 0)
	}
	return complex(2*math.J1(k)/k, 0)
}

// Ring is the infinitely thin unit ring: radius 1, flux 1. Its intensity is
// a delta on the circle, so only the visibility is closed form.
//
//	V(q) = J₀(2πq)
type Ring struct{}

func (Ring) Traits() Traits                     { return PrimitiveVisibilityOnly }
func (Ring) Flux() float64                      { return 1 }
func (Ring) RadialExtent() float64              { return 1.5 }
func (Ring) Intensity(float64, float64) float64 { return nan }

func (Ring) Visibility(u, v float64, _ FourierSource) complex128 {
	return complex(math.J0(2*math.Pi*math.Hypot(u, v)), 0)
}

// MRing is a thin unit ring whose brightness is modulated azimuthally:
//
//	I(r,θ) = δ(r−1)/(2π)·[1 + Σₙ 2(αₙ·cos nθ + βₙ·sin nθ)]
//	V(q,φ) = J₀(2πq) + Σₙ 2·iⁿ·Jₙ(2πq)·(αₙ·cos nφ + βₙ·sin nφ)
//
// with n = 1..len(α) and φ the position angle of (u,v). Flux is 1.
type MRing struct {
	alpha, beta []float64
}

// NewMRing builds an m-ring from cosine and sine mode amplitudes.
//
// Errors:
//   - ErrLengthMismatch if len(alpha) != len(beta).
//   - ErrInvalidParameter if any amplitude is non-finite.
func NewMRing(alpha, beta []float64) (*MRing, error) {
	if len(alpha) != len(beta) {
		return nil, fmt.Errorf("NewMRing: %d cosine vs %d sine modes: %w", len(alpha), len(beta), ErrLengthMismatch)
	}
	for i := range alpha {
		if !finite(alpha[i]) || !finite(beta[i]) {
			return nil, fmt.Errorf("NewMRing: mode %d: %w", i+1, ErrInvalidParameter)
		}
	}
	r := &MRing{alpha: make([]float64, len(alpha)), beta: make([]float64, len(beta))}
	copy(r.alpha, alpha)
	copy(r.beta, beta)

	return r, nil
}

// Modes returns the number of azimuthal modes.
func (r *MRing) Modes() int { return len(r.alpha) }

func (*MRing) Traits() Traits                     { return PrimitiveVisibilityOnly }
func (*MRing) Flux() float64                      { return 1 }
func (*MRing) RadialExtent() float64              { return 1.5 }
func (*MRing) Intensity(float64, float64) float64 { return nan }

func (r *MRing) Visibility(u, v float64, _ FourierSource) complex128 {
	k := 2 * math.Pi * math.Hypot(u, v)
	phi := math.Atan2(v, u)
	vis := complex(math.J0(k), 0)
	for i := range r.alpha {
		n := i + 1
		s, c := math.Sincos(float64(n) * phi)
		amp := 2 * math.Jn(n, k) * (r.alpha[i]*c + r.beta[i]*s)
		vis += iPow(n) * complex(amp, 0)
	}

	return vis
}

// iPow returns iⁿ for n ≥ 0.
func iPow(n int) complex128 {
	switch n % 4 {
	case 0:
		return 1
	case 1:
		return 1i
	case 2:
		return -1
	default:
		return -1i
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
