// SPDX-License-Identifier: MIT

package model

import "fmt"

// Op is one step of a Modify pipeline. Ops wrap the smart constructors, so
// every merge rule applies.
type Op func(Model) (Model, error)

// WithShift returns an Op translating by (dx, dy).
func WithShift(dx, dy float64) Op {
	return func(m Model) (Model, error) { return Shift(m, dx, dy) }
}

// WithRotation returns an Op rotating by xi radians.
func WithRotation(xi float64) Op {
	return func(m Model) (Model, error) { return Rotate(m, xi) }
}

// WithStretch returns an Op stretching by (alpha, beta).
func WithStretch(alpha, beta float64) Op {
	return func(m Model) (Model, error) { return Stretch(m, alpha, beta) }
}

// WithRenorm returns an Op multiplying the brightness by f.
func WithRenorm(f float64) Op {
	return func(m Model) (Model, error) { return Renormalize(m, f) }
}

// Modify applies ops to m in order: the first op wraps m, the last is the
// outermost node.
//
//	Modify(Gaussian{}, WithStretch(2, 1), WithRotation(π/4), WithShift(3, 0))
//
// stretches, then rotates the stretched Gaussian, then shifts the result.
func Modify(m Model, ops ...Op) (Model, error) {
	if m == nil {
		return nil, fmt.Errorf("Modify: %w", ErrNilModel)
	}
	var err error
	for i, op := range ops {
		if op == nil {
			return nil, fmt.Errorf("Modify: op[%d] is nil: %w", i, ErrInvalidParameter)
		}
		if m, err = op(m); err != nil {
			return nil, fmt.Errorf("Modify: op[%d]: %w", i, err)
		}
	}

	return m, nil
}
