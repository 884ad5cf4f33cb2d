// SPDX-License-Identifier: MIT

package imaging

import (
	"math"

	"github.com/katalvlaran/vlbimodel"
	"github.com/katalvlaran/vlbimodel/grid"
	"github.com/katalvlaran/vlbimodel/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Centroid returns the flux-weighted mean position of img. A zero-flux map
// yields NaN.
func Centroid(img *grid.Map) (x, y float64) {
	g := img.Grid()
	xs := g.Xs()
	data := img.Data()
	var sx, sy float64
	for j := 0; j < g.NY; j++ {
		row := data[j*g.NX : (j+1)*g.NX]
		sx += floats.Dot(row, xs)
		sy += floats.Sum(row) * g.Y(j)
	}
	f := img.Flux()

	return sx / f, sy / f
}

// SecondMoment returns the 2×2 flux-weighted covariance of img about its
// centroid: [[⟨x²⟩, ⟨xy⟩], [⟨xy⟩, ⟨y²⟩]].
func SecondMoment(img *grid.Map) *mat.SymDense {
	g := img.Grid()
	cx, cy := Centroid(img)
	data := img.Data()
	var sxx, sxy, syy float64
	for j := 0; j < g.NY; j++ {
		dy := g.Y(j) - cy
		for i := 0; i < g.NX; i++ {
			dx := g.X(i) - cx
			f := data[j*g.NX+i]
			sxx += f * dx * dx
			sxy += f * dx * dy
			syy += f * dy * dy
		}
	}
	f := img.Flux()

	return mat.NewSymDense(2, []float64{sxx / f, sxy / f, sxy / f, syy / f})
}

// CheckFlux compares Σ img with m.Flux(). It returns nil within rtol and a
// logged NumericalWarning otherwise; img itself stays usable either way.
func CheckFlux(m model.Model, img *grid.Map, rtol float64) *vlbimodel.NumericalWarning {
	got, want := img.Flux(), m.Flux()
	den := math.Abs(want)
	if den == 0 {
		den = 1
	}
	if math.Abs(got-want) <= rtol*den {
		return nil
	}

	return vlbimodel.Warn(&vlbimodel.NumericalWarning{
		Source: "imaging", Quantity: "flux", Got: got, Want: want, Tol: rtol,
	})
}
