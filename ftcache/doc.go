// Package ftcache computes and caches visibilities of primitives that have
// no closed-form Fourier transform.
//
// 🚀 What does the cache hold?
//
//	For every numerical leaf of a model tree (Traits.Primitive without
//	VisibilityAnalytic) a Cache entry stores:
//	  • the leaf's intensity map (its own pixels for model.Imaged leaves,
//	    otherwise Intensity sampled on a grid sized from RadialExtent),
//	  • exact visibilities at the frequencies the leaf sees for the query
//	    set given to Build, computed by a pluggable transform Plan,
//	  • a bicubic interpolant over a padded FFT of the map, serving any
//	    other frequency inside the grid in O(1).
//
// ✨ Plans are strategies:
//
//	DFT:   direct separable sum, O(N·P), exact at any frequency.
//	FFT:   padded FFT + interpolation, O(P·log P + N).
//	Auto:  DFT while N·P stays under a threshold, FFT beyond.
//
// ⚙️ Usage:
//
//	c := ftcache.New(ftcache.WithPlanner(ftcache.Auto{}))
//	if err := c.Build(sky, u, v); err != nil { ... }
//	ev, _ := vis.New(sky, vis.WithSource(c))
//
// Concurrency:
//
//	Lookups are lock-free reads of an immutable snapshot and are safe from
//	many goroutines. Build is a single-writer operation serialized by the
//	cache. Leaves never built are materialized on first lookup exactly once
//	(interpolant only), even under concurrent lookups.
//
// Lifetime:
//
//	A cache belongs to the caller. Entries are keyed by leaf identity
//	(numerical primitives are pointers); Build on a new frequency set
//	replaces the affected entries, Reset drops all of them.
package ftcache
