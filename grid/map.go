// SPDX-License-Identifier: MIT

// Package grid - Map storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major flux buffer with index j*nx + i.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Allow in-place reuse: Reset and Data let producers overwrite a caller-owned
//     buffer without reallocating.
//
// Complexity quicksheet:
//   - NewMap: O(nx*ny) zero-init; At/Set: O(1); Clone: O(nx*ny); Flux: O(nx*ny).

package grid

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// Map is a pixelized intensity map: per-pixel flux over a Grid plus the pulse
// that interprets it as a continuous image.
//   - data is a flat buffer of length nx*ny in row-major order (offset = j*nx + i).
//   - the sum of data is the total flux.
type Map struct {
	g     Grid      // pixel layout
	pulse Pulse     // pixel kernel; DeltaPulse when nil at construction
	data  []float64 // contiguous row-major storage (len == g.Len())
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Map)(nil)

// NewMap allocates a zero map over g. A nil pulse means DeltaPulse.
//
// Errors:
//   - ErrBadShape / ErrBadFOV if g was not built by NewGrid.
func NewMap(g Grid, pulse Pulse) (*Map, error) {
	if _, err := NewGrid(g.NX, g.NY, g.FovX, g.FovY); err != nil {
		return nil, err
	}
	if pulse == nil {
		pulse = DeltaPulse{}
	}

	return &Map{g: g, pulse: pulse, data: make([]float64, g.Len())}, nil
}

// NewMapFrom wraps data (not copied) as a map over g.
//
// Errors:
//   - ErrDimensionMismatch if len(data) != g.Len().
func NewMapFrom(g Grid, data []float64, pulse Pulse) (*Map, error) {
	m, err := NewMap(g, pulse)
	if err != nil {
		return nil, err
	}
	if len(data) != g.Len() {
		return nil, fmt.Errorf("NewMapFrom: len(data)=%d, want %d: %w", len(data), g.Len(), ErrDimensionMismatch)
	}
	m.data = data

	return m, nil
}

// Grid returns the pixel layout.
func (m *Map) Grid() Grid { return m.g }

// Pulse returns the pixel kernel.
func (m *Map) Pulse() Pulse { return m.pulse }

// Data returns the backing slice. Writes through it mutate the map.
func (m *Map) Data() []float64 { return m.data }

// At retrieves the flux of pixel (i, j).
func (m *Map) At(i, j int) (float64, error) {
	idx, err := m.g.Index(i, j)
	if err != nil {
		return 0, mapErrorf(ctxAt, i, j, err)
	}

	return m.data[idx], nil
}

// Set assigns the flux of pixel (i, j).
func (m *Map) Set(i, j int, v float64) error {
	idx, err := m.g.Index(i, j)
	if err != nil {
		return mapErrorf(ctxSet, i, j, err)
	}
	m.data[idx] = v

	return nil
}

// Reset zero-fills the map in place.
func (m *Map) Reset() {
	clear(m.data)
}

// Clone returns a deep copy; the pulse value is shared.
func (m *Map) Clone() *Map {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Map{g: m.g, pulse: m.pulse, data: cp}
}

// Flux returns the sum of all pixels.
func (m *Map) Flux() float64 {
	return floats.Sum(m.data)
}

// SameShape reports whether o has the same grid as m.
func (m *Map) SameShape(o *Map) bool {
	return o != nil && m.g == o.g
}

// String implements fmt.Stringer for easy debugging.
func (m *Map) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", m.g)
	for j := 0; j < m.g.NY; j++ {
		sb.WriteString("[")
		for i := 0; i < m.g.NX; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[j*m.g.NX+i])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
