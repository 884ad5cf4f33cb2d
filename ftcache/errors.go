// SPDX-License-Identifier: MIT
// Package ftcache: sentinel error set.

package ftcache

import (
	"fmt"

	"github.com/katalvlaran/vlbimodel"
)

var (
	// ErrNilModel is returned when Build receives a nil model.
	ErrNilModel = fmt.Errorf("ftcache: nil model: %w", vlbimodel.ErrConfiguration)

	// ErrLengthMismatch is returned when u and v differ in length.
	ErrLengthMismatch = fmt.Errorf("ftcache: u/v length mismatch: %w", vlbimodel.ErrConfiguration)

	// ErrGridMismatch is returned when a plan executes on a map it was not
	// planned for.
	ErrGridMismatch = fmt.Errorf("ftcache: map does not match the planned grid: %w", vlbimodel.ErrConfiguration)

	// ErrNotNumerical is returned when an entry is requested for a leaf that
	// has an analytic visibility.
	ErrNotNumerical = fmt.Errorf("ftcache: leaf has an analytic visibility: %w", vlbimodel.ErrConfiguration)

	// ErrNoImage is returned for numerical leaves that neither expose pixels
	// nor have an analytic image to sample.
	ErrNoImage = fmt.Errorf("ftcache: leaf has no image to transform: %w", vlbimodel.ErrConfiguration)

	// ErrUncomparableLeaf is returned for leaves whose dynamic type cannot key
	// a map. Numerical primitives should be pointer types.
	ErrUncomparableLeaf = fmt.Errorf("ftcache: leaf type is not comparable: %w", vlbimodel.ErrConfiguration)
)
