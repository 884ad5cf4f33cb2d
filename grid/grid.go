// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is an nx×ny pixelization of a fovx×fovy field centred on the origin.
// The zero value is not usable; build grids with NewGrid.
type Grid struct {
	NX, NY     int     // pixel counts along x and y
	FovX, FovY float64 // field of view along x and y (model units)
}

// NewGrid validates and returns a Grid.
//
// Errors:
//   - ErrBadShape if nx<=0 or ny<=0.
//   - ErrBadFOV if a field of view is non-positive or non-finite.
func NewGrid(nx, ny int, fovx, fovy float64) (Grid, error) {
	if nx <= 0 || ny <= 0 {
		return Grid{}, fmt.Errorf("NewGrid(%d,%d): %w", nx, ny, ErrBadShape)
	}
	if !(fovx > 0) || !(fovy > 0) || math.IsInf(fovx, 0) || math.IsInf(fovy, 0) {
		return Grid{}, fmt.Errorf("NewGrid(fov=%g,%g): %w", fovx, fovy, ErrBadFOV)
	}

	return Grid{NX: nx, NY: ny, FovX: fovx, FovY: fovy}, nil
}

// Len returns the number of pixels.
func (g Grid) Len() int { return g.NX * g.NY }

// Dx returns the pixel width.
func (g Grid) Dx() float64 { return g.FovX / float64(g.NX) }

// Dy returns the pixel height.
func (g Grid) Dy() float64 { return g.FovY / float64(g.NY) }

// X returns the x coordinate of pixel column i.
func (g Grid) X(i int) float64 {
	return (float64(i) - float64(g.NX)/2 + 0.5) * g.Dx()
}

// Y returns the y coordinate of pixel row j.
func (g Grid) Y(j int) float64 {
	return (float64(j) - float64(g.NY)/2 + 0.5) * g.Dy()
}

// Xs returns all pixel-centre x coordinates in column order.
func (g Grid) Xs() []float64 {
	if g.NX == 1 {
		return []float64{g.X(0)}
	}
	return floats.Span(make([]float64, g.NX), g.X(0), g.X(g.NX-1))
}

// Ys returns all pixel-centre y coordinates in row order.
func (g Grid) Ys() []float64 {
	if g.NY == 1 {
		return []float64{g.Y(0)}
	}
	return floats.Span(make([]float64, g.NY), g.Y(0), g.Y(g.NY-1))
}

// U returns the spatial frequency of Fourier-grid column k.
func (g Grid) U(k int) float64 {
	return (float64(k) - float64(g.NX)/2) / g.FovX
}

// V returns the spatial frequency of Fourier-grid row k.
func (g Grid) V(k int) float64 {
	return (float64(k) - float64(g.NY)/2) / g.FovY
}

// Du returns the Fourier-grid spacing along u.
func (g Grid) Du() float64 { return 1 / g.FovX }

// Dv returns the Fourier-grid spacing along v.
func (g Grid) Dv() float64 { return 1 / g.FovY }

// Index returns the row-major offset of pixel (i, j) or ErrOutOfRange.
func (g Grid) Index(i, j int) (int, error) {
	if i < 0 || i >= g.NX || j < 0 || j >= g.NY {
		return 0, ErrOutOfRange
	}
	return j*g.NX + i, nil
}

// Padded returns a grid with the same pixel size covering factor times the
// field of view. The padded pixel count is bumped by one when needed so that
// the original pixels embed at an integer offset with unchanged centres.
func (g Grid) Padded(factor int) Grid {
	if factor < 1 {
		factor = 1
	}
	nx := g.NX * factor
	if (nx-g.NX)%2 != 0 {
		nx++
	}
	ny := g.NY * factor
	if (ny-g.NY)%2 != 0 {
		ny++
	}

	return Grid{NX: nx, NY: ny, FovX: g.Dx() * float64(nx), FovY: g.Dy() * float64(ny)}
}

// String implements fmt.Stringer.
func (g Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, fov=%gx%g)", g.NX, g.NY, g.FovX, g.FovY)
}
