// SPDX-License-Identifier: MIT

package vis

import (
	"fmt"
	"math/cmplx"
)

// Visibilities returns V over the paired arrays u and v.
// Stage 1 (Validate): paired lengths.
// Stage 2 (Execute): analytic trees return a lazy view; numerical trees are
// evaluated eagerly in one batch, after an optional Build.
// Complexity: O(1) to return plus O(L) per At when lazy; O(N·L) when eager.
//
// Errors:
//   - ErrLengthMismatch if len(u) != len(v).
//   - ErrFrequencyNotCovered (eager path) naming the first bad index.
func (e *Evaluator) Visibilities(u, v []float64) (View[complex128], error) {
	if len(u) != len(v) {
		return View[complex128]{}, fmt.Errorf("Visibilities: len(u)=%d, len(v)=%d: %w", len(u), len(v), ErrLengthMismatch)
	}
	if e.analytic {
		return lazyView(len(u), func(i int) complex128 { return e.point(u[i], v[i]) }), nil
	}
	zs, err := e.batch(u, v)
	if err != nil {
		return View[complex128]{}, fmt.Errorf("Visibilities: %w", err)
	}

	return sliceView(zs), nil
}

// Amplitudes returns |V| over the paired arrays u and v.
func (e *Evaluator) Amplitudes(u, v []float64) (View[float64], error) {
	zs, err := e.Visibilities(u, v)
	if err != nil {
		return View[float64]{}, err
	}
	if e.analytic {
		return lazyView(zs.Len(), func(i int) float64 { return cmplx.Abs(zs.at(i)) }), nil
	}
	out := make([]float64, zs.Len())
	for i := range out {
		out[i] = cmplx.Abs(zs.at(i))
	}

	return sliceView(out), nil
}

// Bispectra returns the bispectrum of every triangle.
func (e *Evaluator) Bispectra(ts []Triangle) (View[complex128], error) {
	if e.analytic {
		return lazyView(len(ts), func(i int) complex128 {
			t := &ts[i]
			return e.point(t[0].U, t[0].V) * e.point(t[1].U, t[1].V) * e.point(t[2].U, t[2].V)
		}), nil
	}
	zs, err := e.batchLegs(len(ts), 3, func(i, k int) Baseline { return ts[i][k] })
	if err != nil {
		return View[complex128]{}, fmt.Errorf("Bispectra: %w", err)
	}
	out := make([]complex128, len(ts))
	for i := range out {
		out[i] = zs[3*i] * zs[3*i+1] * zs[3*i+2]
	}

	return sliceView(out), nil
}

// ClosurePhases returns the closure phase of every triangle, in (−π, π].
func (e *Evaluator) ClosurePhases(ts []Triangle) (View[float64], error) {
	bs, err := e.Bispectra(ts)
	if err != nil {
		return View[float64]{}, err
	}
	if e.analytic {
		return lazyView(bs.Len(), func(i int) float64 { return closurePhase(bs.at(i)) }), nil
	}
	out := make([]float64, bs.Len())
	for i := range out {
		out[i] = closurePhase(bs.at(i))
	}

	return sliceView(out), nil
}

// LogClosureAmplitudes returns the log-closure amplitude of every
// quadrangle.
func (e *Evaluator) LogClosureAmplitudes(qs []Quadrangle) (View[float64], error) {
	if e.analytic {
		return lazyView(len(qs), func(i int) float64 {
			q := &qs[i]
			return logClosureAmp(e.point(q[0].U, q[0].V), e.point(q[1].U, q[1].V),
				e.point(q[2].U, q[2].V), e.point(q[3].U, q[3].V))
		}), nil
	}
	zs, err := e.batchLegs(len(qs), 4, func(i, k int) Baseline { return qs[i][k] })
	if err != nil {
		return View[float64]{}, fmt.Errorf("LogClosureAmplitudes: %w", err)
	}
	out := make([]float64, len(qs))
	for i := range out {
		out[i] = logClosureAmp(zs[4*i], zs[4*i+1], zs[4*i+2], zs[4*i+3])
	}

	return sliceView(out), nil
}

// batchLegs flattens n groups of k baselines and evaluates them at once.
func (e *Evaluator) batchLegs(n, k int, leg func(i, j int) Baseline) ([]complex128, error) {
	u := make([]float64, 0, n*k)
	v := make([]float64, 0, n*k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			bl := leg(i, j)
			u = append(u, bl.U)
			v = append(v, bl.V)
		}
	}
	return e.batch(u, v)
}

// batch evaluates numerical trees eagerly, tabulating the query set first
// when a builder is attached.
func (e *Evaluator) batch(u, v []float64) ([]complex128, error) {
	if e.builder != nil {
		if err := e.builder.Build(e.m, u, v); err != nil {
			return nil, err
		}
	}
	out := make([]complex128, len(u))
	for i := range u {
		z := e.point(u[i], v[i])
		if cmplx.IsNaN(z) {
			return nil, fmt.Errorf("index %d (%g,%g): %w", i, u[i], v[i], ErrFrequencyNotCovered)
		}
		out[i] = z
	}

	return out, nil
}
