// SPDX-License-Identifier: MIT
// Package model: sentinel error set.
// Constructors validate eagerly and return these sentinels; nothing is
// deferred to evaluation. Match with errors.Is.

package model

import (
	"fmt"

	"github.com/katalvlaran/vlbimodel"
)

var (
	// ErrDegenerateTransform is returned when modifier parameters collapse the
	// plane (zero, negative or non-finite stretch factors).
	ErrDegenerateTransform = fmt.Errorf("model: degenerate transform: %w", vlbimodel.ErrDomain)

	// ErrInvalidParameter is returned for non-finite or out-of-range shape and
	// modifier parameters.
	ErrInvalidParameter = fmt.Errorf("model: invalid parameter: %w", vlbimodel.ErrDomain)

	// ErrNilModel is returned when a nil Model is passed to a constructor.
	ErrNilModel = fmt.Errorf("model: nil model: %w", vlbimodel.ErrConfiguration)

	// ErrEmptyCombinator is returned when Add or Convolve receive no models.
	ErrEmptyCombinator = fmt.Errorf("model: combinator needs at least one model: %w", vlbimodel.ErrConfiguration)

	// ErrLengthMismatch is returned when paired parameter slices differ in length.
	ErrLengthMismatch = fmt.Errorf("model: parameter length mismatch: %w", vlbimodel.ErrConfiguration)
)
