// SPDX-License-Identifier: MIT

package grid

import "math"

// Pulse is a separable pixel kernel. A Map with pulse κ represents the
// continuous image I(x,y) = Σ_p F_p·κ((x−x_p)/dx)·κ((y−y_p)/dy)/(dx·dy),
// whose Fourier transform is the pixel DFT times the pulse transform.
//
// Kernel and Transform are in pixel units: t = (x−x_p)/dx, q = u·dx.
// Kernels integrate to one.
type Pulse interface {
	// Kernel returns κ(t).
	Kernel(t float64) float64
	// Transform returns ∫ κ(t)·exp(2πi·q·t) dt (real, since κ is even).
	Transform(q float64) float64
	// Support returns the half-width of κ in pixels; zero for a delta.
	Support() float64
}

// DeltaPulse treats pixels as point samples. Its transform is identically
// one, so visibilities are plain pixel DFTs; its kernel has no extent and
// a Map carrying it has no closed-form continuous intensity.
type DeltaPulse struct{}

// Kernel returns zero; a delta has no pointwise value.
func (DeltaPulse) Kernel(float64) float64 { return 0 }

// Transform returns one.
func (DeltaPulse) Transform(float64) float64 { return 1 }

// Support returns zero.
func (DeltaPulse) Support() float64 { return 0 }

// BoxPulse is the top-hat pixel (nearest-neighbour image).
type BoxPulse struct{}

// Kernel returns 1 on |t| < 1/2.
func (BoxPulse) Kernel(t float64) float64 {
	if math.Abs(t) < 0.5 {
		return 1
	}
	return 0
}

// Transform returns sinc(q) = sin(πq)/(πq).
func (BoxPulse) Transform(q float64) float64 { return sinc(q) }

// Support returns 1/2.
func (BoxPulse) Support() float64 { return 0.5 }

// TrianglePulse is the linear-interpolation pixel (box ∗ box).
type TrianglePulse struct{}

// Kernel returns max(0, 1−|t|).
func (TrianglePulse) Kernel(t float64) float64 {
	a := math.Abs(t)
	if a < 1 {
		return 1 - a
	}
	return 0
}

// Transform returns sinc²(q).
func (TrianglePulse) Transform(q float64) float64 {
	s := sinc(q)
	return s * s
}

// Support returns 1.
func (TrianglePulse) Support() float64 { return 1 }

func sinc(q float64) float64 {
	if q == 0 {
		return 1
	}
	x := math.Pi * q
	return math.Sin(x) / x
}
