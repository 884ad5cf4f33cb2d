// SPDX-License-Identifier: MIT

// Package vlbimodel: error classes shared by every subpackage.
//
// Each subpackage defines its own prefixed sentinels and wraps exactly one
// of the classes below, so callers may branch on the precise sentinel or on
// the broad class:
//
//	errors.Is(err, vis.ErrLengthMismatch)        // precise
//	errors.Is(err, vlbimodel.ErrConfiguration)   // class

package vlbimodel

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks caller errors in the shape of inputs: mismatched
	// array lengths, malformed design matrices, frequencies a cache cannot
	// serve. Fatal to the call, never retried.
	ErrConfiguration = errors.New("vlbimodel: configuration error")

	// ErrDomain marks parameters that produce degenerate transforms or
	// shapes (zero stretch, non-finite angle). Rejected at construction.
	ErrDomain = errors.New("vlbimodel: domain error")
)

// NumericalWarning is a non-fatal diagnostic: a transform or interpolation
// residual exceeded its expected tolerance. Evaluation still returns a
// best-effort result; the warning only informs the caller.
//
// It implements error so it can travel through error-typed channels and be
// matched with errors.As.
type NumericalWarning struct {
	Source   string  // component that produced the diagnostic, e.g. "ftcache"
	Quantity string  // what was compared, e.g. "flux"
	Got      float64 // observed value
	Want     float64 // reference value
	Tol      float64 // relative tolerance that was exceeded
}

// Error implements error.
func (w *NumericalWarning) Error() string {
	return fmt.Sprintf("%s: %s residual above tolerance: got %.6g, want %.6g (rtol %.1e)",
		w.Source, w.Quantity, w.Got, w.Want, w.Tol)
}

// Residual returns |Got-Want| relative to |Want| (absolute when Want is zero).
func (w *NumericalWarning) Residual() float64 {
	d := w.Got - w.Want
	if d < 0 {
		d = -d
	}
	den := w.Want
	if den < 0 {
		den = -den
	}
	if den == 0 {
		return d
	}
	return d / den
}
