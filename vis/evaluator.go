// SPDX-License-Identifier: MIT

package vis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/vlbimodel/model"
)

// Baseline is a point (u, v) of the Fourier plane.
type Baseline struct{ U, V float64 }

// Triangle is three baselines closing around a loop of stations; the
// bispectrum multiplies their visibilities in order.
type Triangle [3]Baseline

// Quadrangle is four baselines; the log-closure amplitude divides the
// product of the first two amplitudes by that of the last two.
type Quadrangle [4]Baseline

// Evaluator computes observables of one model tree.
//
// Evaluators are immutable. With WithBatchBuild, eager vectorized calls
// rebuild the source and must not run concurrently on a shared source;
// everything else is safe for concurrent use.
type Evaluator struct {
	m        model.Model
	src      model.FourierSource
	analytic bool
	builder  Builder // non-nil only with WithBatchBuild
}

// New binds m to its Fourier source.
//
// Errors:
//   - ErrNilModel if m is nil.
//   - ErrCacheRequired if m has numerical leaves and no source was given.
//   - ErrNoBuilder if WithBatchBuild is set and the source is no Builder.
func New(m model.Model, opts ...Option) (*Evaluator, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	o := gatherOptions(opts)
	e := &Evaluator{m: m, src: o.src, analytic: m.Traits().VisibilityAnalytic}
	if !e.analytic && e.src == nil {
		return nil, fmt.Errorf("vis.New(%T): %w", m, ErrCacheRequired)
	}
	if o.batchBuild && !e.analytic {
		b, ok := o.src.(Builder)
		if !ok {
			return nil, fmt.Errorf("vis.New(%T): %w", o.src, ErrNoBuilder)
		}
		e.builder = b
	}

	return e, nil
}

// Model returns the evaluated tree.
func (e *Evaluator) Model() model.Model { return e.m }

// Analytic reports whether every leaf has a closed-form visibility, in which
// case vectorized calls are lazy.
func (e *Evaluator) Analytic() bool { return e.analytic }

// point evaluates V without error checks.
func (e *Evaluator) point(u, v float64) complex128 { return e.m.Visibility(u, v, e.src) }

// Visibility returns V(u, v).
// Complexity: O(L) for L leaves; a numerical leaf costs one cache lookup
// (a map hit, or 16 interpolation taps).
//
// Errors:
//   - ErrFrequencyNotCovered if a numerical leaf cannot be served at (u, v).
func (e *Evaluator) Visibility(u, v float64) (complex128, error) {
	z := e.point(u, v)
	if !e.analytic && cmplx.IsNaN(z) {
		return z, fmt.Errorf("Visibility(%g,%g): %w", u, v, ErrFrequencyNotCovered)
	}
	return z, nil
}

// Amplitude returns |V(u, v)|.
func (e *Evaluator) Amplitude(u, v float64) (float64, error) {
	z, err := e.Visibility(u, v)
	return cmplx.Abs(z), err
}

// Bispectrum returns V₁·V₂·V₃ over t.
func (e *Evaluator) Bispectrum(t Triangle) (complex128, error) {
	b := complex(1, 0)
	for _, bl := range t {
		z, err := e.Visibility(bl.U, bl.V)
		if err != nil {
			return z, fmt.Errorf("Bispectrum: %w", err)
		}
		b *= z
	}
	return b, nil
}

// ClosurePhase returns arg of the bispectrum of t, in (−π, π].
func (e *Evaluator) ClosurePhase(t Triangle) (float64, error) {
	b, err := e.Bispectrum(t)
	if err != nil {
		return math.NaN(), err
	}
	return closurePhase(b), nil
}

// LogClosureAmplitude returns log(|V₁·V₂| / |V₃·V₄|) over q.
func (e *Evaluator) LogClosureAmplitude(q Quadrangle) (float64, error) {
	var z [4]complex128
	for i, bl := range q {
		var err error
		if z[i], err = e.Visibility(bl.U, bl.V); err != nil {
			return math.NaN(), fmt.Errorf("LogClosureAmplitude: %w", err)
		}
	}
	return logClosureAmp(z[0], z[1], z[2], z[3]), nil
}

func closurePhase(b complex128) float64 { return wrapPhase(cmplx.Phase(b)) }

func logClosureAmp(z1, z2, z3, z4 complex128) float64 {
	return math.Log(cmplx.Abs(z1) * cmplx.Abs(z2) / (cmplx.Abs(z3) * cmplx.Abs(z4)))
}

// wrapPhase maps p into (−π, π].
func wrapPhase(p float64) float64 {
	p = math.Remainder(p, 2*math.Pi)
	if p <= -math.Pi {
		p += 2 * math.Pi
	}
	return p
}
