// Package vlbimodel builds radio-interferometric sky-brightness models and
// evaluates them in the visibility and image domains.
//
// What is inside?
//
//	A model is a tree of primitives (Gaussian, disk, rings, rasters),
//	modifiers (shift, rotate, stretch, renormalize) and combinators
//	(sum, convolution). Every node reports its capability traits, and
//	evaluation dispatches on them:
//		• analytic primitives use their closed-form visibility,
//		• numerical primitives go through a caller-owned Fourier cache,
//		• modifiers and combinators transform and combine child results.
//
// Under the hood, everything is organized under five subpackages:
//
//	grid/:    pixel grids, row-major intensity maps, pulses, centred 2-D FFT
//	model/:   the Model interface, traits, primitives, modifiers, combinators
//	imaging/: intensity-map sampling and inverse-FFT synthesis
//	ftcache/: DFT/FFT transform plans and the numerical Fourier cache
//	vis/:     visibilities, amplitudes, bispectra, closure quantities
//
// Quick example:
//
//	ring := model.Must(model.Stretch(model.Ring{}, 20, 20))
//	ev, _ := vis.New(ring)
//	amp, _ := ev.Amplitude(0.01, 0)
//
// The root package only carries what every subpackage shares: error
// classes, the NumericalWarning diagnostic and the logger.
package vlbimodel
