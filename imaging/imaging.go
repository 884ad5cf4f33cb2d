// SPDX-License-Identifier: MIT

package imaging

import (
	"fmt"

	"github.com/katalvlaran/vlbimodel/grid"
	"github.com/katalvlaran/vlbimodel/model"
)

// IntensityMap allocates a map over g and fills it from m.
func IntensityMap(m model.Model, g grid.Grid, opts ...Option) (*grid.Map, error) {
	dst, err := grid.NewMap(g, nil)
	if err != nil {
		return nil, err
	}
	if err = IntensityMapInto(dst, m, opts...); err != nil {
		return nil, err
	}

	return dst, nil
}

// IntensityMapInto overwrites dst with the image of m, sampling analytic
// images and synthesizing the rest. For repeated synthesis on one grid,
// keep a Synthesizer instead; this call builds a fresh one.
func IntensityMapInto(dst *grid.Map, m model.Model, opts ...Option) error {
	if dst == nil {
		return ErrNilMap
	}
	if m == nil {
		return ErrNilModel
	}
	if m.Traits().ImageAnalytic {
		sample(dst, m)
		return nil
	}
	s, err := NewSynthesizer(dst.Grid(), opts...)
	if err != nil {
		return err
	}

	return s.Synthesize(dst, m, opts...)
}

// sample writes I(x_i, y_j)·dx·dy into every pixel.
func sample(dst *grid.Map, m model.Model) {
	g := dst.Grid()
	area := g.Dx() * g.Dy()
	xs := g.Xs()
	data := dst.Data()
	for j := 0; j < g.NY; j++ {
		y := g.Y(j)
		row := data[j*g.NX : (j+1)*g.NX]
		for i, x := range xs {
			row[i] = m.Intensity(x, y) * area
		}
	}
}

// FrequencyGrid returns the Fourier-grid points unpadded synthesis on g
// evaluates, in row-major order. Build a Fourier cache at exactly these
// points to make synthesis of numerical models exact table lookups; padded
// synthesizers report theirs through Synthesizer.FrequencyGrid.
func FrequencyGrid(g grid.Grid) (u, v []float64) {
	u = make([]float64, 0, g.Len())
	v = make([]float64, 0, g.Len())
	for k := 0; k < g.NY; k++ {
		for l := 0; l < g.NX; l++ {
			u = append(u, g.U(l))
			v = append(v, g.V(k))
		}
	}
	return u, v
}

func gridErrorf(op string, want, got grid.Grid) error {
	return fmt.Errorf("%s: want %s, got %s: %w", op, want, got, ErrGridMismatch)
}
