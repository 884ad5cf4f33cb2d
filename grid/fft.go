// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Direction selects which centred sum Transform evaluates.
type Direction int

const (
	// ImageToVisibility maps per-pixel flux at pixel centres to visibilities on
	// the Fourier grid: V(u_k) = Σ_p F_p·exp(+2πi·u_k·x_p).
	ImageToVisibility Direction = iota

	// VisibilityToImage maps Fourier-grid visibilities to per-pixel flux times
	// the pixel count: n·F_p = Σ_k V(u_k)·exp(−2πi·u_k·x_p).
	VisibilityToImage
)

// axisPlan holds the gonum FFT of one axis and the phase corrections that turn
// a plain DFT into the centred sum
//
//	out[a] = Σ_b in[b]·exp(s·2πi·(a − h + α)(b − h + β)/n),  h = n/2,
//
// via exp(s·2πi·ab/n) · pre[b] · post[a]. α and β are the half-pixel offsets
// of output and input indices.
type axisPlan struct {
	n    int
	fft  *fourier.CmplxFFT
	pre  [2][]complex128 // per Direction, indexed by input
	post [2][]complex128 // per Direction, indexed by output
}

func newAxisPlan(n int) *axisPlan {
	p := &axisPlan{n: n, fft: fourier.NewCmplxFFT(n)}
	for _, d := range []Direction{ImageToVisibility, VisibilityToImage} {
		s, alpha, beta := d.params()
		h := float64(n) / 2
		pre := make([]complex128, n)
		post := make([]complex128, n)
		c := s * 2 * math.Pi / float64(n)
		k0 := c * (alpha - h) * (beta - h)
		for i := 0; i < n; i++ {
			fi := float64(i)
			pre[i] = phasor(c * fi * (alpha - h))
			post[i] = phasor(c*fi*(beta-h) + k0)
		}
		p.pre[d] = pre
		p.post[d] = post
	}

	return p
}

// params returns (sign, α, β) for d.
func (d Direction) params() (float64, float64, float64) {
	if d == ImageToVisibility {
		return 1, 0, 0.5
	}
	return -1, 0.5, 0
}

// apply transforms buf (len n) in place.
func (p *axisPlan) apply(buf []complex128, d Direction) {
	pre, post := p.pre[d], p.post[d]
	for i := range buf {
		buf[i] *= pre[i]
	}
	if d == ImageToVisibility {
		p.fft.Sequence(buf, buf)
	} else {
		p.fft.Coefficients(buf, buf)
	}
	for i := range buf {
		buf[i] *= post[i]
	}
}

// Transformer evaluates centred 2-D Fourier sums on a fixed nx×ny layout by
// separable row and column FFTs. Plans and scratch are allocated once.
//
// A Transformer is not safe for concurrent use.
type Transformer struct {
	nx, ny int
	x, y   *axisPlan
	col    []complex128
}

// NewTransformer prepares FFT plans for an nx×ny layout.
func NewTransformer(nx, ny int) (*Transformer, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("NewTransformer(%d,%d): %w", nx, ny, ErrBadShape)
	}
	t := &Transformer{nx: nx, ny: ny, x: newAxisPlan(nx), col: make([]complex128, ny)}
	if ny == nx {
		t.y = t.x
	} else {
		t.y = newAxisPlan(ny)
	}

	return t, nil
}

// Shape returns (nx, ny).
func (t *Transformer) Shape() (int, int) { return t.nx, t.ny }

// Transform evaluates the centred sum selected by d in place on data, a
// row-major nx×ny array (data[j*nx+i]). The transform is unnormalized.
//
// Errors:
//   - ErrDimensionMismatch if len(data) != nx*ny.
func (t *Transformer) Transform(data []complex128, d Direction) error {
	if len(data) != t.nx*t.ny {
		return fmt.Errorf("Transformer.Transform: len=%d, want %d: %w", len(data), t.nx*t.ny, ErrDimensionMismatch)
	}
	for j := 0; j < t.ny; j++ {
		t.x.apply(data[j*t.nx:(j+1)*t.nx], d)
	}
	for i := 0; i < t.nx; i++ {
		for j := 0; j < t.ny; j++ {
			t.col[j] = data[j*t.nx+i]
		}
		t.y.apply(t.col, d)
		for j := 0; j < t.ny; j++ {
			data[j*t.nx+i] = t.col[j]
		}
	}

	return nil
}

func phasor(theta float64) complex128 {
	s, c := math.Sincos(theta)
	return complex(c, s)
}
