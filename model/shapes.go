// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
)

// Crescent is a uniform disk of radius rOut with a disk of radius rIn removed
// at offset (x0, y0) from the centre. floor ∈ [0,1] is the fraction of the
// surface brightness left inside the hole. Total flux is 1.
//
// The result is a sum of two renormalized, stretched disks, one of them
// shifted, so it stays analytic in both domains.
func Crescent(rOut, rIn, x0, y0, floor float64) (Model, error) {
	switch {
	case !finite(rOut) || !finite(rIn) || !finite(x0) || !finite(y0) || !finite(floor):
		return nil, fmt.Errorf("Crescent: %w", ErrInvalidParameter)
	case rIn <= 0 || rOut <= rIn:
		return nil, fmt.Errorf("Crescent: need 0 < rIn < rOut, got %g, %g: %w", rIn, rOut, ErrInvalidParameter)
	case math.Hypot(x0, y0)+rIn > rOut:
		return nil, fmt.Errorf("Crescent: inner disk leaves the outer disk: %w", ErrInvalidParameter)
	case floor < 0 || floor > 1:
		return nil, fmt.Errorf("Crescent: floor %g outside [0,1]: %w", floor, ErrInvalidParameter)
	}
	// Surface brightness b normalizes the flux: b·π(rOut² − (1−floor)·rIn²) = 1.
	b := 1 / (math.Pi * (rOut*rOut - (1-floor)*rIn*rIn))
	outer, err := Modify(Disk{}, WithStretch(rOut, rOut), WithRenorm(b*math.Pi*rOut*rOut))
	if err != nil {
		return nil, err
	}
	inner, err := Modify(Disk{}, WithStretch(rIn, rIn), WithShift(x0, y0), WithRenorm(-(1-floor)*b*math.Pi*rIn*rIn))
	if err != nil {
		return nil, err
	}

	return Add(outer, inner)
}

// Smoothed convolves m with a circular Gaussian of standard deviation sigma.
func Smoothed(m Model, sigma float64) (Model, error) {
	if m == nil {
		return nil, fmt.Errorf("Smoothed: %w", ErrNilModel)
	}
	g, err := Stretch(Gaussian{}, sigma, sigma)
	if err != nil {
		return nil, fmt.Errorf("Smoothed(σ=%g): %w", sigma, err)
	}

	return Convolve(m, g)
}

// FWHMToSigma converts a Gaussian full width at half maximum to σ.
func FWHMToSigma(fwhm float64) float64 {
	return fwhm / (2 * math.Sqrt(2*math.Ln2))
}
