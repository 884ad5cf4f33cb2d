// SPDX-License-Identifier: MIT
// Package grid: sentinel error set.
// All constructors and accessors return these sentinels (possibly wrapped
// with call-site context via %w); tests match them with errors.Is.

package grid

import (
	"fmt"

	"github.com/katalvlaran/vlbimodel"
)

var (
	// ErrBadShape is returned when a grid dimension is non-positive.
	ErrBadShape = fmt.Errorf("grid: invalid shape: %w", vlbimodel.ErrConfiguration)

	// ErrBadFOV is returned when a field of view is non-positive or non-finite.
	ErrBadFOV = fmt.Errorf("grid: invalid field of view: %w", vlbimodel.ErrDomain)

	// ErrOutOfRange indicates a pixel index outside the grid.
	ErrOutOfRange = fmt.Errorf("grid: index out of range: %w", vlbimodel.ErrConfiguration)

	// ErrDimensionMismatch indicates a buffer whose length or shape does not
	// match the grid it is used with.
	ErrDimensionMismatch = fmt.Errorf("grid: dimension mismatch: %w", vlbimodel.ErrConfiguration)
)

// mapErrorf wraps an error with Map method context and pixel indices.
func mapErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Map.%s(%d,%d): %w", method, i, j, err)
}
