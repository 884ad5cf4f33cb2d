// Package vis is the public evaluation surface: visibilities and the
// observables derived from them, at single points or over whole arrays of
// baselines, triangles and quadrangles.
//
// An Evaluator binds a model tree to the Fourier source its numerical leaves
// need (typically an *ftcache.Cache). It is immutable and safe for
// concurrent use.
//
// Observables:
//
//	Visibility           V(u,v)
//	Amplitude            |V|
//	Bispectrum           V₁·V₂·V₃ around a closed triangle
//	ClosurePhase         arg(V₁·V₂·V₃) in (−π, π]
//	LogClosureAmplitude  log(|V₁·V₂| / |V₃·V₄|)
//
// Vectorized forms return a View: for analytic trees every element is
// computed on access and nothing is materialized; for trees with numerical
// leaves the whole batch is evaluated once (optionally after tabulating it
// in the source) and errors surface before any value is returned.
//
// A ClosureDesign turns one batched visibility vector into closure phases or
// log-closure amplitudes by a fixed matrix product, for static array
// topologies.
package vis
