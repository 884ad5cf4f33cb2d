// SPDX-License-Identifier: MIT
// Package vis: sentinel error set.

package vis

import (
	"fmt"

	"github.com/katalvlaran/vlbimodel"
)

var (
	// ErrNilModel is returned when New receives a nil model.
	ErrNilModel = fmt.Errorf("vis: nil model: %w", vlbimodel.ErrConfiguration)

	// ErrCacheRequired is returned when a tree has numerical leaves and no
	// Fourier source was supplied.
	ErrCacheRequired = fmt.Errorf("vis: model has numerical leaves and no Fourier source: %w", vlbimodel.ErrConfiguration)

	// ErrNoBuilder is returned when batch building is requested from a source
	// that cannot tabulate query sets.
	ErrNoBuilder = fmt.Errorf("vis: Fourier source cannot build query sets: %w", vlbimodel.ErrConfiguration)

	// ErrFrequencyNotCovered is returned when the Fourier source cannot serve
	// a requested frequency.
	ErrFrequencyNotCovered = fmt.Errorf("vis: frequency not covered by the Fourier source: %w", vlbimodel.ErrConfiguration)

	// ErrLengthMismatch is returned when paired coordinate arrays differ in
	// length or a visibility vector does not match a design.
	ErrLengthMismatch = fmt.Errorf("vis: length mismatch: %w", vlbimodel.ErrConfiguration)

	// ErrBadDesign is returned for malformed closure design matrices.
	ErrBadDesign = fmt.Errorf("vis: invalid closure design: %w", vlbimodel.ErrConfiguration)
)
