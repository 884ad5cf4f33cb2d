// SPDX-License-Identifier: MIT

package imaging

import (
	"math/cmplx"

	"github.com/katalvlaran/vlbimodel/grid"
	"github.com/katalvlaran/vlbimodel/model"
)

// Synthesizer recovers images from visibilities on a fixed grid via the
// centred inverse FFT. It owns the FFT plans and a complex scratch buffer.
// With WithPadding the transform runs on a wider field whose centre is the
// output grid.
//
// A Synthesizer is not safe for concurrent use; give each goroutine its own.
type Synthesizer struct {
	g   grid.Grid // output grid
	pg  grid.Grid // transform grid; g when unpadded
	tr  *grid.Transformer
	buf []complex128
}

// NewSynthesizer prepares synthesis on g. Only WithPadding is read from opts.
// Complexity: O(P) memory for P = pixels of the (padded) transform grid.
func NewSynthesizer(g grid.Grid, opts ...Option) (*Synthesizer, error) {
	if _, err := grid.NewGrid(g.NX, g.NY, g.FovX, g.FovY); err != nil {
		return nil, err
	}
	pg := g
	if o := gatherOptions(opts); o.padding > 1 {
		pg = g.Padded(o.padding)
	}
	tr, err := grid.NewTransformer(pg.NX, pg.NY)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{g: g, pg: pg, tr: tr, buf: make([]complex128, pg.Len())}, nil
}

// Grid returns the output grid.
func (s *Synthesizer) Grid() grid.Grid { return s.g }

// FrequencyGrid returns the Fourier-grid points Synthesize evaluates, in
// row-major order. Without padding it equals FrequencyGrid(s.Grid()).
func (s *Synthesizer) FrequencyGrid() (u, v []float64) { return FrequencyGrid(s.pg) }

// Synthesize overwrites dst with the image of m:
//
//  1. evaluate V(u_l, v_k) on the Fourier grid of the transform grid,
//  2. apply the centred inverse transform,
//  3. store Re(·)/P of the central output window as per-pixel flux.
//
// The grid, not the model, fixes the frequencies. Emission beyond the
// transform grid's field aliases; pad to push the wrap-around out of view.
//
// Complexity: O(P·E + P·log P) for P transform pixels and E the cost of one
// model visibility.
//
// Errors:
//   - ErrNilMap / ErrNilModel for nil arguments.
//   - ErrGridMismatch if dst was not built on the synthesizer's grid.
//   - ErrSourceRequired if m has numerical leaves and no WithSource was given.
//   - ErrUnresolvedVisibility if the source returned NaN for a grid frequency.
func (s *Synthesizer) Synthesize(dst *grid.Map, m model.Model, opts ...Option) error {
	if dst == nil {
		return ErrNilMap
	}
	if m == nil {
		return ErrNilModel
	}
	if dst.Grid() != s.g {
		return gridErrorf("Synthesizer.Synthesize", s.g, dst.Grid())
	}
	o := gatherOptions(opts)
	if !m.Traits().VisibilityAnalytic && o.src == nil {
		return ErrSourceRequired
	}

	pg := s.pg
	for k := 0; k < pg.NY; k++ {
		v := pg.V(k)
		for l := 0; l < pg.NX; l++ {
			vis := m.Visibility(pg.U(l), v, o.src)
			if cmplx.IsNaN(vis) {
				return ErrUnresolvedVisibility
			}
			s.buf[k*pg.NX+l] = vis
		}
	}
	if err := s.tr.Transform(s.buf, grid.VisibilityToImage); err != nil {
		return err
	}
	n := float64(pg.Len())
	offX, offY := (pg.NX-s.g.NX)/2, (pg.NY-s.g.NY)/2
	data := dst.Data()
	for j := 0; j < s.g.NY; j++ {
		src := s.buf[(j+offY)*pg.NX+offX:]
		row := data[j*s.g.NX : (j+1)*s.g.NX]
		for i := range row {
			row[i] = real(src[i]) / n
		}
	}

	return nil
}
