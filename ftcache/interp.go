// SPDX-License-Identifier: MIT

package ftcache

import (
	"math"

	"github.com/katalvlaran/vlbimodel/grid"
)

// keysA is the free parameter of the Keys cubic convolution kernel; −1/2
// gives third-order accuracy on smooth data.
const keysA = -0.5

// keys evaluates the Keys cubic convolution kernel.
func keys(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t <= 1:
		return ((keysA+2)*t-(keysA+3))*t*t + 1
	case t < 2:
		return ((keysA*t-5*keysA)*t+8*keysA)*t - 4*keysA
	default:
		return 0
	}
}

// stencil is the 4×4 neighbourhood of a query frequency on a Fourier grid:
// base is the row-major offset of its lower-left node, wx and wy the kernel
// weights along each axis.
type stencil struct {
	base   int
	wx, wy [4]float64
}

// axisStencil locates f on an axis of n nodes spaced by step and starting at
// origin. ok is false when the four-node support leaves the axis.
func axisStencil(f, origin, step float64, n int) (i0 int, w [4]float64, ok bool) {
	pos := (f - origin) / step
	if math.IsNaN(pos) {
		return 0, w, false
	}
	fl := math.Floor(pos)
	i0 = int(fl) - 1
	if fl < 1 || i0+3 > n-1 {
		return 0, w, false
	}
	t := pos - fl
	w = [4]float64{keys(1 + t), keys(t), keys(1 - t), keys(2 - t)}

	return i0, w, true
}

// Interpolant serves visibilities between the nodes of a Fourier grid by
// bicubic convolution. Queries whose stencil leaves the grid yield NaN.
// An Interpolant is immutable and safe for concurrent use.
type Interpolant struct {
	g    grid.Grid
	data []complex128 // row-major, data[k*NX+l] = V(U(l), V(k))
}

// newInterpolant takes ownership of data.
func newInterpolant(g grid.Grid, data []complex128) *Interpolant {
	return &Interpolant{g: g, data: data}
}

// Grid returns the Fourier grid (as its image-plane dual) the interpolant
// is sampled on.
func (ip *Interpolant) Grid() grid.Grid { return ip.g }

// Covers reports whether (u, v) lies inside the interpolation support.
func (ip *Interpolant) Covers(u, v float64) bool {
	_, ok := ip.stencil(u, v)
	return ok
}

// At returns the interpolated visibility at (u, v), or NaN outside the grid.
// On grid nodes At returns the stored sample exactly.
func (ip *Interpolant) At(u, v float64) complex128 {
	st, ok := ip.stencil(u, v)
	if !ok {
		return complex(math.NaN(), math.NaN())
	}
	return ip.eval(st)
}

func (ip *Interpolant) stencil(u, v float64) (stencil, bool) {
	g := ip.g
	i0, wx, okx := axisStencil(u, g.U(0), g.Du(), g.NX)
	if !okx {
		return stencil{}, false
	}
	j0, wy, oky := axisStencil(v, g.V(0), g.Dv(), g.NY)
	if !oky {
		return stencil{}, false
	}

	return stencil{base: j0*g.NX + i0, wx: wx, wy: wy}, true
}

func (ip *Interpolant) eval(st stencil) complex128 {
	return interpolate(ip.data, ip.g.NX, st)
}

// interpolate applies st to a row-major array with row length nx.
func interpolate(data []complex128, nx int, st stencil) complex128 {
	var acc complex128
	for b := 0; b < 4; b++ {
		if st.wy[b] == 0 {
			continue
		}
		row := data[st.base+b*nx : st.base+b*nx+4]
		var r complex128
		for a, w := range st.wx {
			if w != 0 {
				r += row[a] * complex(w, 0)
			}
		}
		acc += r * complex(st.wy[b], 0)
	}

	return acc
}
