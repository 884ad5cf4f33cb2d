// SPDX-License-Identifier: MIT
// Package imaging: sentinel error set.

package imaging

import (
	"fmt"

	"github.com/katalvlaran/vlbimodel"
)

var (
	// ErrNilModel is returned when a nil model is passed.
	ErrNilModel = fmt.Errorf("imaging: nil model: %w", vlbimodel.ErrConfiguration)

	// ErrNilMap is returned when a nil destination map is passed.
	ErrNilMap = fmt.Errorf("imaging: nil map: %w", vlbimodel.ErrConfiguration)

	// ErrGridMismatch is returned when a destination map does not match the
	// synthesizer's grid.
	ErrGridMismatch = fmt.Errorf("imaging: grid mismatch: %w", vlbimodel.ErrConfiguration)

	// ErrSourceRequired is returned when synthesis needs numerical
	// visibilities but no Fourier source was supplied.
	ErrSourceRequired = fmt.Errorf("imaging: model has numerical leaves and no Fourier source: %w", vlbimodel.ErrConfiguration)

	// ErrUnresolvedVisibility is returned when the Fourier source could not
	// serve a grid frequency (NaN visibility).
	ErrUnresolvedVisibility = fmt.Errorf("imaging: Fourier source cannot serve grid frequency: %w", vlbimodel.ErrConfiguration)
)
