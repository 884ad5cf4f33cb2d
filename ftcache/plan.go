// SPDX-License-Identifier: MIT

package ftcache

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vlbimodel"
	"github.com/katalvlaran/vlbimodel/grid"
)

// Plan evaluates the pixel Fourier sum
//
//	V_k = Σ_p F_p·exp(+2πi(u_k·x_p + v_k·y_p))
//
// of maps over one grid at one frequency set, both fixed when the plan is
// made. The pulse transform is not applied.
//
// Plans may keep scratch state and are not safe for concurrent use.
type Plan interface {
	// Name identifies the strategy in logs and warnings.
	Name() string

	// Len returns the number of planned frequencies.
	Len() int

	// Execute writes V_k for img into dst (len Len()).
	Execute(img *grid.Map, dst []complex128) error
}

// Planner makes plans; it is the injectable transform strategy of a Cache.
type Planner interface {
	Plan(g grid.Grid, u, v []float64) (Plan, error)
}

// Compile-time assertions.
var (
	_ Planner = DFT{}
	_ Planner = FFT{}
	_ Planner = Auto{}
	_ Plan    = (*dftPlan)(nil)
	_ Plan    = (*fftPlan)(nil)
)

// ---------- DFT ----------

// DFT plans direct separable sums: O(N·(nx+ny)) memory for the phasors and
// O(N·nx·ny) work per execution. Exact at any frequency.
type DFT struct{}

type dftPlan struct {
	g      grid.Grid
	n      int
	ex, ey []complex128 // n·NX and n·NY phasors
}

// Plan implements Planner.
func (DFT) Plan(g grid.Grid, u, v []float64) (Plan, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("DFT.Plan: len(u)=%d, len(v)=%d: %w", len(u), len(v), ErrLengthMismatch)
	}
	n := len(u)
	p := &dftPlan{g: g, n: n, ex: make([]complex128, n*g.NX), ey: make([]complex128, n*g.NY)}
	xs, ys := g.Xs(), g.Ys()
	for k := 0; k < n; k++ {
		ex := p.ex[k*g.NX : (k+1)*g.NX]
		for i, x := range xs {
			ex[i] = phasor(2 * math.Pi * u[k] * x)
		}
		ey := p.ey[k*g.NY : (k+1)*g.NY]
		for j, y := range ys {
			ey[j] = phasor(2 * math.Pi * v[k] * y)
		}
	}

	return p, nil
}

func (p *dftPlan) Name() string { return "dft" }
func (p *dftPlan) Len() int     { return p.n }

func (p *dftPlan) Execute(img *grid.Map, dst []complex128) error {
	if err := checkExecute("dftPlan", p.g, p.n, img, dst); err != nil {
		return err
	}
	g := p.g
	data := img.Data()
	for k := 0; k < p.n; k++ {
		ex := p.ex[k*g.NX : (k+1)*g.NX]
		ey := p.ey[k*g.NY : (k+1)*g.NY]
		var acc complex128
		for j := 0; j < g.NY; j++ {
			row := data[j*g.NX : (j+1)*g.NX]
			var r complex128
			for i, f := range row {
				if f != 0 {
					r += complex(f, 0) * ex[i]
				}
			}
			acc += r * ey[j]
		}
		dst[k] = acc
	}

	return nil
}

// ---------- FFT ----------

// FFT plans a zero-padded centred FFT of the map followed by bicubic
// interpolation at the planned frequencies: O(M·log M) work with M the
// padded pixel count, plus 16 taps per frequency. Frequencies outside the
// padded Fourier grid evaluate to NaN.
type FFT struct {
	// Padding is the zero-padding factor; 0 means DefaultPadding.
	Padding int
}

type fftPlan struct {
	g, pg  grid.Grid
	tr     *grid.Transformer
	buf    []complex128
	taps   []stencil
	inside []bool
}

// Plan implements Planner.
func (f FFT) Plan(g grid.Grid, u, v []float64) (Plan, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("FFT.Plan: len(u)=%d, len(v)=%d: %w", len(u), len(v), ErrLengthMismatch)
	}
	pad := f.Padding
	if pad <= 0 {
		pad = DefaultPadding
	}
	pg := g.Padded(pad)
	tr, err := grid.NewTransformer(pg.NX, pg.NY)
	if err != nil {
		return nil, err
	}
	p := &fftPlan{
		g:      g,
		pg:     pg,
		tr:     tr,
		buf:    make([]complex128, pg.Len()),
		taps:   make([]stencil, len(u)),
		inside: make([]bool, len(u)),
	}
	ip := &Interpolant{g: pg}
	for k := range u {
		p.taps[k], p.inside[k] = ip.stencil(u[k], v[k])
	}

	return p, nil
}

func (p *fftPlan) Name() string { return "fft" }
func (p *fftPlan) Len() int     { return len(p.taps) }

func (p *fftPlan) Execute(img *grid.Map, dst []complex128) error {
	if err := checkExecute("fftPlan", p.g, len(p.taps), img, dst); err != nil {
		return err
	}
	if err := padTransform(p.tr, p.buf, p.g, p.pg, img.Data()); err != nil {
		return err
	}
	for k, st := range p.taps {
		if !p.inside[k] {
			dst[k] = complex(math.NaN(), math.NaN())
			continue
		}
		dst[k] = interpolate(p.buf, p.pg.NX, st)
	}

	return nil
}

// padTransform embeds data (over g) at the centre of buf (over pg) and
// transforms it to the Fourier grid of pg.
func padTransform(tr *grid.Transformer, buf []complex128, g, pg grid.Grid, data []float64) error {
	clear(buf)
	ox, oy := (pg.NX-g.NX)/2, (pg.NY-g.NY)/2
	for j := 0; j < g.NY; j++ {
		src := data[j*g.NX : (j+1)*g.NX]
		dst := buf[(j+oy)*pg.NX+ox:]
		for i, f := range src {
			dst[i] = complex(f, 0)
		}
	}

	return tr.Transform(buf, grid.ImageToVisibility)
}

// ---------- Auto ----------

// Auto picks DFT while N·P stays at or below Threshold and FFT beyond it.
type Auto struct {
	// Threshold bounds N·P for the direct sum; 0 means DefaultDFTThreshold.
	Threshold int
	// Padding is forwarded to FFT.
	Padding int
}

// Plan implements Planner.
func (a Auto) Plan(g grid.Grid, u, v []float64) (Plan, error) {
	limit := a.Threshold
	if limit <= 0 {
		limit = DefaultDFTThreshold
	}
	work := len(u) * g.Len()
	var pl Planner = FFT{Padding: a.Padding}
	if work <= limit {
		pl = DFT{}
	}
	p, err := pl.Plan(g, u, v)
	if err != nil {
		return nil, err
	}
	vlbimodel.Logger().Debug("ftcache: plan selected",
		"plan", p.Name(), "frequencies", len(u), "pixels", g.Len(), "work", work)

	return p, nil
}

func checkExecute(op string, g grid.Grid, n int, img *grid.Map, dst []complex128) error {
	if img == nil || img.Grid() != g {
		return fmt.Errorf("%s.Execute: %w", op, ErrGridMismatch)
	}
	if len(dst) != n {
		return fmt.Errorf("%s.Execute: len(dst)=%d, want %d: %w", op, len(dst), n, ErrLengthMismatch)
	}
	return nil
}

func phasor(theta float64) complex128 {
	s, c := math.Sincos(theta)
	return complex(c, s)
}
