// SPDX-License-Identifier: MIT

package vis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Kind distinguishes what a ClosureDesign multiplies.
type Kind int

const (
	// PhaseClosure designs act on visibility phases; results are wrapped
	// into (−π, π].
	PhaseClosure Kind = iota
	// AmplitudeClosure designs act on log visibility amplitudes.
	AmplitudeClosure
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case PhaseClosure:
		return "phase"
	case AmplitudeClosure:
		return "amplitude"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Term references baseline Index of a visibility vector with orientation
// Sign: +1 uses V, −1 uses its conjugate (the reversed baseline).
type Term struct{ Index, Sign int }

// ClosureDesign is a fixed linear map from per-baseline phases or log
// amplitudes to closure quantities: one row per closure, one column per
// baseline. It is immutable.
type ClosureDesign struct {
	kind Kind
	d    *mat.Dense
}

// NewDesign validates and copies a caller-built design matrix.
//
// Errors:
//   - ErrBadDesign for a nil or empty matrix, non-finite entries, or an
//     unknown kind.
func NewDesign(kind Kind, d mat.Matrix) (*ClosureDesign, error) {
	if kind != PhaseClosure && kind != AmplitudeClosure {
		return nil, fmt.Errorf("NewDesign(%v): %w", kind, ErrBadDesign)
	}
	if d == nil {
		return nil, fmt.Errorf("NewDesign: nil matrix: %w", ErrBadDesign)
	}
	r, c := d.Dims()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("NewDesign: empty %dx%d matrix: %w", r, c, ErrBadDesign)
	}
	cp := mat.DenseCopyOf(d)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if x := cp.At(i, j); math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("NewDesign: entry (%d,%d)=%g: %w", i, j, x, ErrBadDesign)
			}
		}
	}

	return &ClosureDesign{kind: kind, d: cp}, nil
}

// PhaseDesign builds the closure-phase design of triangles over nBaselines
// baselines.
//
// Errors:
//   - ErrBadDesign if nBaselines <= 0, no triangles are given, or a term has
//     an index out of range or a sign other than ±1.
func PhaseDesign(nBaselines int, triangles [][3]Term) (*ClosureDesign, error) {
	if nBaselines <= 0 || len(triangles) == 0 {
		return nil, fmt.Errorf("PhaseDesign(%d, %d triangles): %w", nBaselines, len(triangles), ErrBadDesign)
	}
	d := mat.NewDense(len(triangles), nBaselines, nil)
	for i, tri := range triangles {
		for _, t := range tri {
			if t.Index < 0 || t.Index >= nBaselines || (t.Sign != 1 && t.Sign != -1) {
				return nil, fmt.Errorf("PhaseDesign: triangle %d term %+v: %w", i, t, ErrBadDesign)
			}
			d.Set(i, t.Index, d.At(i, t.Index)+float64(t.Sign))
		}
	}

	return &ClosureDesign{kind: PhaseClosure, d: d}, nil
}

// AmplitudeDesign builds the log-closure-amplitude design of quadrangles
// over nBaselines baselines: +1 for the first two indices, −1 for the last
// two.
//
// Errors:
//   - ErrBadDesign if nBaselines <= 0, no quadrangles are given, or an index
//     is out of range.
func AmplitudeDesign(nBaselines int, quadrangles [][4]int) (*ClosureDesign, error) {
	if nBaselines <= 0 || len(quadrangles) == 0 {
		return nil, fmt.Errorf("AmplitudeDesign(%d, %d quadrangles): %w", nBaselines, len(quadrangles), ErrBadDesign)
	}
	d := mat.NewDense(len(quadrangles), nBaselines, nil)
	for i, q := range quadrangles {
		for k, idx := range q {
			if idx < 0 || idx >= nBaselines {
				return nil, fmt.Errorf("AmplitudeDesign: quadrangle %d index %d: %w", i, idx, ErrBadDesign)
			}
			s := 1.0
			if k >= 2 {
				s = -1
			}
			d.Set(i, idx, d.At(i, idx)+s)
		}
	}

	return &ClosureDesign{kind: AmplitudeClosure, d: d}, nil
}

// Kind returns what the design multiplies.
func (c *ClosureDesign) Kind() Kind { return c.kind }

// Closures returns the number of rows.
func (c *ClosureDesign) Closures() int {
	r, _ := c.d.Dims()
	return r
}

// Baselines returns the number of columns.
func (c *ClosureDesign) Baselines() int {
	_, n := c.d.Dims()
	return n
}

// Matrix returns a read-only view of the design.
func (c *ClosureDesign) Matrix() mat.Matrix { return c.d }

// Apply maps one visibility per baseline to closure quantities.
// Stage 1 (Prepare): phase or log-amplitude of every visibility.
// Stage 2 (Execute): one dense mat-vec product.
// Stage 3 (Finalize): phases wrapped into (−π, π].
// Complexity: O(r·n) for r closures over n baselines.
//
// Errors:
//   - ErrLengthMismatch if len(vis) != Baselines().
func (c *ClosureDesign) Apply(vis []complex128) ([]float64, error) {
	r, n := c.d.Dims()
	if len(vis) != n {
		return nil, fmt.Errorf("ClosureDesign.Apply: len=%d, want %d: %w", len(vis), n, ErrLengthMismatch)
	}
	x := mat.NewVecDense(n, nil)
	for i, z := range vis {
		if c.kind == PhaseClosure {
			x.SetVec(i, cmplx.Phase(z))
		} else {
			x.SetVec(i, math.Log(cmplx.Abs(z)))
		}
	}
	y := mat.NewVecDense(r, nil)
	y.MulVec(c.d, x)
	out := make([]float64, r)
	for i := range out {
		out[i] = y.AtVec(i)
		if c.kind == PhaseClosure {
			out[i] = wrapPhase(out[i])
		}
	}

	return out, nil
}

// Closures evaluates V once at every baseline (u[k], v[k]) and applies d.
// This is the batched route for static topologies: one visibility per
// baseline however many closures share it.
// Complexity: O(n·L + r·n).
//
// Errors:
//   - ErrLengthMismatch if the arrays differ from each other or from d.
//   - ErrFrequencyNotCovered from the source.
func (e *Evaluator) Closures(d *ClosureDesign, u, v []float64) ([]float64, error) {
	if d == nil {
		return nil, fmt.Errorf("Closures: nil design: %w", ErrBadDesign)
	}
	if len(u) != len(v) || len(u) != d.Baselines() {
		return nil, fmt.Errorf("Closures: len(u)=%d, len(v)=%d, baselines=%d: %w",
			len(u), len(v), d.Baselines(), ErrLengthMismatch)
	}
	var zs []complex128
	if e.analytic {
		zs = make([]complex128, len(u))
		for i := range u {
			zs[i] = e.point(u[i], v[i])
		}
	} else {
		var err error
		if zs, err = e.batch(u, v); err != nil {
			return nil, fmt.Errorf("Closures: %w", err)
		}
	}

	return d.Apply(zs)
}
