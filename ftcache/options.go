// SPDX-License-Identifier: MIT

// Package ftcache: functional configuration for cache construction.
//   - Option setters validate eagerly and panic on nonsensical values
//     (programmer error); Build itself never panics.
//   - Defaults below are the single source of truth for zero-value behavior.

package ftcache

import (
	"math"

	"github.com/katalvlaran/vlbimodel/grid"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultResolution is the minimum pixel count per axis of sampled leaves.
	DefaultResolution = 128

	// MaxResolution caps the automatic resolution increase driven by the
	// highest query frequency.
	MaxResolution = 1024

	// DefaultPadding is the FFT zero-padding factor of the interpolant grid.
	// Padding refines the Fourier-grid spacing and so the interpolation error.
	DefaultPadding = 4

	// DefaultFluxTolerance is the relative flux residual above which Build
	// records a NumericalWarning.
	DefaultFluxTolerance = 1e-3

	// DefaultDFTThreshold is the N·P work bound under which Auto picks DFT.
	DefaultDFTThreshold = 1 << 22

	// nyquistMargin oversamples the highest query frequency when resolution
	// is raised automatically.
	nyquistMargin = 1.25
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPlannerNil = "ftcache: WithPlanner(nil)"
	panicFOVInvalid = "ftcache: WithFOV: fov must be finite and > 0"
	panicResolution = "ftcache: WithResolution: n must be > 0"
	panicPadding    = "ftcache: WithPadding: factor must be >= 1"
	panicPulseNil   = "ftcache: WithPulse(nil)"
	panicTolInvalid = "ftcache: WithFluxTolerance: rtol must be finite and >= 0"
)

// Option configures a Cache.
type Option func(*options)

type options struct {
	planner    Planner
	fov        float64 // 0 ⇒ 2·RadialExtent
	resolution int
	padding    int
	pulse      grid.Pulse
	fluxTol    float64
}

func defaultOptions() options {
	return options{
		planner:    Auto{},
		resolution: DefaultResolution,
		padding:    DefaultPadding,
		pulse:      grid.DeltaPulse{},
		fluxTol:    DefaultFluxTolerance,
	}
}

// WithPlanner selects the transform strategy for exact per-frequency values.
func WithPlanner(p Planner) Option {
	if p == nil {
		panic(panicPlannerNil)
	}
	return func(o *options) { o.planner = p }
}

// WithFOV fixes the field of view of sampled leaves instead of deriving it
// from their radial extent.
func WithFOV(fov float64) Option {
	if !(fov > 0) || math.IsInf(fov, 0) {
		panic(panicFOVInvalid)
	}
	return func(o *options) { o.fov = fov }
}

// WithResolution sets the minimum pixel count per axis of sampled leaves.
func WithResolution(n int) Option {
	if n <= 0 {
		panic(panicResolution)
	}
	return func(o *options) { o.resolution = n }
}

// WithPadding sets the FFT zero-padding factor of the interpolant grid.
func WithPadding(factor int) Option {
	if factor < 1 {
		panic(panicPadding)
	}
	return func(o *options) { o.padding = factor }
}

// WithPulse sets the pixel pulse applied to sampled leaves. Leaves exposing
// their own pixels keep their map's pulse.
func WithPulse(p grid.Pulse) Option {
	if p == nil {
		panic(panicPulseNil)
	}
	return func(o *options) { o.pulse = p }
}

// WithFluxTolerance sets the relative flux residual that triggers a
// NumericalWarning during Build.
func WithFluxTolerance(rtol float64) Option {
	if !(rtol >= 0) || math.IsInf(rtol, 0) {
		panic(panicTolInvalid)
	}
	return func(o *options) { o.fluxTol = rtol }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
