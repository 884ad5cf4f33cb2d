// SPDX-License-Identifier: MIT

package ftcache

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/vlbimodel"
	"github.com/katalvlaran/vlbimodel/grid"
	"github.com/katalvlaran/vlbimodel/imaging"
	"github.com/katalvlaran/vlbimodel/model"
	"gonum.org/v1/gonum/floats/scalar"
)

// Compile-time assertion: a Cache is the FourierSource of numerical leaves.
var _ model.FourierSource = (*Cache)(nil)

// Cache holds per-leaf Fourier data for numerical primitives.
//
// Reads go through an immutable snapshot swapped atomically by writers, so
// NumericVisibility never takes a lock on the hot path.
type Cache struct {
	o options

	mu       sync.Mutex // serializes writers; guards warnings
	snap     atomic.Pointer[table]
	warnings []vlbimodel.NumericalWarning
}

type table map[model.Model]*entry

type freq struct{ u, v float64 }

// entry is built exactly once, either by Build or by the first lookup.
type entry struct {
	leaf model.Model
	u, v []float64 // frequencies to tabulate exactly; nil for lazy entries

	once   sync.Once
	img    *grid.Map
	exact  map[freq]complex128
	interp *Interpolant
	plan   string
	err    error
	ready  atomic.Bool // set once a build succeeded
}

// New returns an empty cache configured by opts.
func New(opts ...Option) *Cache {
	c := &Cache{o: gatherOptions(opts)}
	c.snap.Store(&table{})
	return c
}

// Build prepares every numerical leaf of m for the query set (u, v): each
// leaf gets exact values at the frequencies it sees after its enclosing
// modifiers, plus an interpolant for everything else. Leaves already cached
// are rebuilt for the new query set. Analytic subtrees are skipped.
//
// Stage 1 (Gather): walk m, collecting each numerical leaf's frequencies.
// Stage 2 (Execute): per leaf, sample its image, transform the padded map
// into the interpolant and run the planner on the gathered frequencies.
// Stage 3 (Finalize): publish all entries in one snapshot swap.
// Complexity: per leaf O(p²·P·log(p²·P)) for P image pixels and padding p,
// plus the plan: O(N·P) for DFT, or one more padded FFT and O(N) for FFT.
//
// Errors:
//   - ErrNilModel, ErrLengthMismatch on malformed input.
//   - ErrNoImage, ErrUncomparableLeaf for leaves the cache cannot serve.
//   - grid errors when a leaf's derived grid is degenerate.
//
// On error the cache is left unchanged.
func (c *Cache) Build(m model.Model, u, v []float64) error {
	if m == nil {
		return ErrNilModel
	}
	if len(u) != len(v) {
		return fmt.Errorf("Cache.Build: len(u)=%d, len(v)=%d: %w", len(u), len(v), ErrLengthMismatch)
	}

	// Gather the frequencies of each numerical leaf across all its uses.
	var order []model.Model
	var bad error
	byKey := map[model.Model]*entry{}
	model.Walk(m, u, v, func(leaf model.Model, lu, lv []float64) {
		if bad != nil || leaf.Traits().VisibilityAnalytic {
			return
		}
		if !hashable(leaf) {
			bad = fmt.Errorf("Cache.Build(%T): %w", leaf, ErrUncomparableLeaf)
			return
		}
		e, ok := byKey[leaf]
		if !ok {
			e = &entry{leaf: leaf}
			byKey[leaf] = e
			order = append(order, leaf)
		}
		e.u = append(e.u, lu...)
		e.v = append(e.v, lv...)
	})
	if bad != nil {
		return bad
	}

	var warns []vlbimodel.NumericalWarning
	for _, leaf := range order {
		e := byKey[leaf]
		ws := c.materialize(e)
		if e.err != nil {
			return fmt.Errorf("Cache.Build(%T): %w", leaf, e.err)
		}
		warns = append(warns, ws...)
	}
	if len(order) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.snap.Load().clone()
	for _, leaf := range order {
		next[leaf] = byKey[leaf]
	}
	c.snap.Store(&next)
	c.warnings = append(c.warnings, warns...)

	return nil
}

// NumericVisibility implements model.FourierSource. It returns the exact
// tabulated value when (u, v) is a frequency the leaf saw during Build, the
// interpolated value inside the leaf's Fourier grid, and NaN otherwise.
// Leaves never built are materialized on first use (interpolant only).
// Complexity: O(1) lock-free once the entry exists.
func (c *Cache) NumericVisibility(leaf model.Model, u, v float64) complex128 {
	e, err := c.lookup(leaf)
	if err != nil || e.err != nil {
		return cmplxNaN
	}
	if val, ok := e.exact[freq{u, v}]; ok {
		return val
	}
	ip := e.interp.At(u, v)
	if math.IsNaN(real(ip)) {
		return ip
	}

	return ip * pulseFactor(e.img, u, v)
}

// Contains reports whether leaf has a successfully built entry. A lazy
// entry whose build failed stays in the table, so later lookups fail fast
// without retrying, but it is not reported here.
func (c *Cache) Contains(leaf model.Model) bool {
	if leaf == nil || !hashable(leaf) {
		return false
	}
	e, ok := (*c.snap.Load())[leaf]
	return ok && e.ready.Load()
}

// Len returns the number of leaves Contains reports.
func (c *Cache) Len() int {
	n := 0
	for _, e := range *c.snap.Load() {
		if e.ready.Load() {
			n++
		}
	}
	return n
}

// Image returns the intensity map the cache transformed for leaf, building
// the entry on demand.
func (c *Cache) Image(leaf model.Model) (*grid.Map, error) {
	e, err := c.lookup(leaf)
	if err != nil {
		return nil, fmt.Errorf("Cache.Image: %w", err)
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.img, nil
}

// Interpolant returns the Fourier-grid interpolant of leaf, building the
// entry on demand. The interpolant excludes the pulse transform.
func (c *Cache) Interpolant(leaf model.Model) (*Interpolant, error) {
	e, err := c.lookup(leaf)
	if err != nil {
		return nil, fmt.Errorf("Cache.Interpolant: %w", err)
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.interp, nil
}

// Warnings returns the numerical diagnostics recorded so far.
func (c *Cache) Warnings() []vlbimodel.NumericalWarning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]vlbimodel.NumericalWarning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Reset drops every entry and warning.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Store(&table{})
	c.warnings = nil
}

// lookup returns the materialized entry of leaf, creating a lazy one when
// absent. Leaves the cache can never serve are rejected without an entry.
func (c *Cache) lookup(leaf model.Model) (*entry, error) {
	switch {
	case leaf == nil:
		return nil, ErrNilModel
	case !hashable(leaf):
		return nil, fmt.Errorf("%T: %w", leaf, ErrUncomparableLeaf)
	case leaf.Traits().VisibilityAnalytic:
		return nil, fmt.Errorf("%T: %w", leaf, ErrNotNumerical)
	}
	e, ok := (*c.snap.Load())[leaf]
	if !ok {
		e = c.getOrCreate(leaf)
	}
	// Entries published by Build are already materialized; lazy ones are
	// built here by the first caller while the rest wait on once.
	if ws := c.materialize(e); len(ws) > 0 {
		c.mu.Lock()
		c.warnings = append(c.warnings, ws...)
		c.mu.Unlock()
	}

	return e, nil
}

// getOrCreate publishes a lazy entry for leaf unless another goroutine won
// the race.
func (c *Cache) getOrCreate(leaf model.Model) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.snap.Load()
	if e, ok := (*cur)[leaf]; ok {
		return e
	}
	e := &entry{leaf: leaf}
	next := cur.clone()
	next[leaf] = e
	c.snap.Store(&next)
	vlbimodel.Logger().Debug("ftcache: lazy entry", "leaf", fmt.Sprintf("%T", leaf))

	return e
}

// materialize builds e once and returns the warnings of that build (none
// for every later call).
func (c *Cache) materialize(e *entry) []vlbimodel.NumericalWarning {
	var ws []vlbimodel.NumericalWarning
	e.once.Do(func() { ws = c.build(e) })
	return ws
}

func (c *Cache) build(e *entry) []vlbimodel.NumericalWarning {
	var ws []vlbimodel.NumericalWarning
	leaf := e.leaf
	img, capped, err := c.image(leaf, e.u, e.v)
	if err != nil {
		e.err = err
		return nil
	}
	if capped != nil {
		ws = append(ws, *capped)
	}
	e.img = img
	g := img.Grid()

	// Interpolant over the padded Fourier grid.
	pg := g.Padded(c.o.padding)
	tr, err := grid.NewTransformer(pg.NX, pg.NY)
	if err != nil {
		e.err = err
		return nil
	}
	buf := make([]complex128, pg.Len())
	if err = padTransform(tr, buf, g, pg, img.Data()); err != nil {
		e.err = err
		return nil
	}
	e.interp = newInterpolant(pg, buf)

	// Exact values at the query set.
	if len(e.u) > 0 {
		plan, err := c.o.planner.Plan(g, e.u, e.v)
		if err != nil {
			e.err = err
			return nil
		}
		vals := make([]complex128, plan.Len())
		if err = plan.Execute(img, vals); err != nil {
			e.err = err
			return nil
		}
		e.exact = make(map[freq]complex128, len(vals))
		for k, val := range vals {
			if math.IsNaN(real(val)) {
				continue // left to the interpolant, which reports NaN too
			}
			e.exact[freq{e.u[k], e.v[k]}] = val * pulseFactor(img, e.u[k], e.v[k])
		}
		e.plan = plan.Name()
	}
	vlbimodel.Logger().Debug("ftcache: entry built",
		"leaf", fmt.Sprintf("%T", leaf), "grid", g.String(), "padded", pg.String(),
		"plan", e.plan, "frequencies", len(e.u))
	e.ready.Store(true)

	if w := c.checkFlux(leaf, img); w != nil {
		ws = append(ws, *w)
	}
	return ws
}

// image returns the map to transform: the leaf's own pixels when it has
// them, otherwise its intensity sampled on a grid covering RadialExtent with
// enough resolution for the highest query frequency. The warning is non-nil
// when that resolution exceeded MaxResolution and was capped.
func (c *Cache) image(leaf model.Model, u, v []float64) (*grid.Map, *vlbimodel.NumericalWarning, error) {
	if im, ok := leaf.(model.Imaged); ok {
		if px := im.Pixels(); px != nil {
			return px, nil, nil
		}
	}
	if !leaf.Traits().ImageAnalytic {
		return nil, nil, ErrNoImage
	}
	fov := c.o.fov
	if fov == 0 {
		fov = 2 * leaf.RadialExtent()
	}
	var capped *vlbimodel.NumericalWarning
	n := c.o.resolution
	if need := int(math.Ceil(2 * fov * maxAbs(u, v) * nyquistMargin)); need > n {
		n = min(need, MaxResolution)
		if need > MaxResolution {
			// Frequencies above the capped grid's Nyquist limit alias.
			capped = vlbimodel.Warn(&vlbimodel.NumericalWarning{
				Source: "ftcache", Quantity: "resolution",
				Got: float64(MaxResolution), Want: float64(need),
			})
		}
	}
	n += n % 2
	g, err := grid.NewGrid(n, n, fov, fov)
	if err != nil {
		return nil, nil, err
	}
	img, err := grid.NewMap(g, c.o.pulse)
	if err != nil {
		return nil, nil, err
	}
	if err = imaging.IntensityMapInto(img, leaf); err != nil {
		return nil, nil, err
	}

	return img, capped, nil
}

func (c *Cache) checkFlux(leaf model.Model, img *grid.Map) *vlbimodel.NumericalWarning {
	got, want := img.Flux(), leaf.Flux()
	if scalar.EqualWithinAbsOrRel(got, want, c.o.fluxTol, c.o.fluxTol) {
		return nil
	}

	return vlbimodel.Warn(&vlbimodel.NumericalWarning{
		Source: "ftcache", Quantity: "flux", Got: got, Want: want, Tol: c.o.fluxTol,
	})
}

func (t *table) clone() table {
	next := make(table, len(*t)+1)
	for k, e := range *t {
		next[k] = e
	}
	return next
}

// pulseFactor is the pulse transform of img's pixels at (u, v).
func pulseFactor(img *grid.Map, u, v float64) complex128 {
	p := img.Pulse()
	g := img.Grid()
	return complex(p.Transform(u*g.Dx())*p.Transform(v*g.Dy()), 0)
}

func maxAbs(u, v []float64) float64 {
	var m float64
	for i := range u {
		m = math.Max(m, math.Max(math.Abs(u[i]), math.Abs(v[i])))
	}
	return m
}

func hashable(m model.Model) bool { return reflect.TypeOf(m).Comparable() }

var cmplxNaN = complex(math.NaN(), math.NaN())
