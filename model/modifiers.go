// SPDX-License-Identifier: MIT

// Package model: modifier nodes. Each node owns one child and its transform
// parameters, and is produced only by the matching smart constructor, which
// merges with an outer node of the same kind instead of nesting.
//
// Laws (Fourier shift, similarity and rotation theorems):
//
//	Shift(Δx,Δy):  image x' = x−Δx;          V = exp(2πi(uΔx+vΔy))·V_child(u,v)
//	Rotate(ξ):     image and uv map by R(ξ); scales 1
//	Stretch(α,β):  image x' = x/α, y' = y/β, scale 1/(αβ);  uv (αu, βv), scale 1
//	Renorm(f):     identity maps;            both scales f

package model

import (
	"fmt"
	"math"
)

// Compile-time assertions for modifier conformance.
var (
	_ Modifier = (*ShiftNode)(nil)
	_ Modifier = (*RotateNode)(nil)
	_ Modifier = (*StretchNode)(nil)
	_ Modifier = (*RenormNode)(nil)
)

// modifierTraits derives a modifier's flags from its child.
func modifierTraits(child Model) Traits {
	t := child.Traits()
	t.Primitive = false
	return t
}

// modifiedIntensity and modifiedVisibility apply the generic modifier laws.
func modifiedIntensity(m Modifier, x, y float64) float64 {
	xp, yp := m.TransformImage(x, y)
	return m.ScaleImage(x, y) * m.Child().Intensity(xp, yp)
}

func modifiedVisibility(m Modifier, u, v float64, src FourierSource) complex128 {
	up, vp := m.TransformUV(u, v)
	return m.ScaleUV(u, v) * m.Child().Visibility(up, vp, src)
}

// ---------- Shift ----------

// ShiftNode translates its child by (Dx, Dy).
type ShiftNode struct {
	child  Model
	dx, dy float64
	traits Traits
}

// Shift translates m by (dx, dy). Shifting a ShiftNode adds the offsets.
func Shift(m Model, dx, dy float64) (Model, error) {
	if m == nil {
		return nil, fmt.Errorf("Shift: %w", ErrNilModel)
	}
	if !finite(dx) || !finite(dy) {
		return nil, fmt.Errorf("Shift(%g,%g): %w", dx, dy, ErrInvalidParameter)
	}
	if s, ok := m.(*ShiftNode); ok {
		return &ShiftNode{child: s.child, dx: s.dx + dx, dy: s.dy + dy, traits: s.traits}, nil
	}

	return &ShiftNode{child: m, dx: dx, dy: dy, traits: modifierTraits(m)}, nil
}

// Offset returns (Δx, Δy).
func (s *ShiftNode) Offset() (float64, float64) { return s.dx, s.dy }

func (s *ShiftNode) Child() Model          { return s.child }
func (s *ShiftNode) Traits() Traits        { return s.traits }
func (s *ShiftNode) Flux() float64         { return s.child.Flux() }
func (s *ShiftNode) RadialExtent() float64 { return s.child.RadialExtent() + math.Hypot(s.dx, s.dy) }

func (s *ShiftNode) TransformImage(x, y float64) (float64, float64) { return x - s.dx, y - s.dy }
func (s *ShiftNode) ScaleImage(float64, float64) float64            { return 1 }
func (s *ShiftNode) TransformUV(u, v float64) (float64, float64)    { return u, v }

func (s *ShiftNode) ScaleUV(u, v float64) complex128 {
	sn, cs := math.Sincos(2 * math.Pi * (u*s.dx + v*s.dy))
	return complex(cs, sn)
}

func (s *ShiftNode) Intensity(x, y float64) float64 { return modifiedIntensity(s, x, y) }

func (s *ShiftNode) Visibility(u, v float64, src FourierSource) complex128 {
	return modifiedVisibility(s, u, v, src)
}

// ---------- Rotate ----------

// RotateNode rotates its child by ξ, stored as (sin ξ, cos ξ).
type RotateNode struct {
	child  Model
	s, c   float64
	traits Traits
}

// Rotate rotates m by xi radians. Rotating a RotateNode composes the angles.
func Rotate(m Model, xi float64) (Model, error) {
	if m == nil {
		return nil, fmt.Errorf("Rotate: %w", ErrNilModel)
	}
	if !finite(xi) {
		return nil, fmt.Errorf("Rotate(%g): %w", xi, ErrInvalidParameter)
	}
	s, c := math.Sincos(xi)
	if r, ok := m.(*RotateNode); ok {
		// sin(a+b), cos(a+b) from the stored pairs; no angle recovery needed.
		return &RotateNode{child: r.child, s: r.s*c + r.c*s, c: r.c*c - r.s*s, traits: r.traits}, nil
	}

	return &RotateNode{child: m, s: s, c: c, traits: modifierTraits(m)}, nil
}

// Angle returns ξ in (−π, π].
func (r *RotateNode) Angle() float64 { return math.Atan2(r.s, r.c) }

func (r *RotateNode) Child() Model          { return r.child }
func (r *RotateNode) Traits() Traits        { return r.traits }
func (r *RotateNode) Flux() float64         { return r.child.Flux() }
func (r *RotateNode) RadialExtent() float64 { return r.child.RadialExtent() }

func (r *RotateNode) TransformImage(x, y float64) (float64, float64) {
	return r.c*x - r.s*y, r.s*x + r.c*y
}

func (r *RotateNode) ScaleImage(float64, float64) float64 { return 1 }

func (r *RotateNode) TransformUV(u, v float64) (float64, float64) {
	return r.c*u - r.s*v, r.s*u + r.c*v
}

func (r *RotateNode) ScaleUV(float64, float64) complex128 { return 1 }

func (r *RotateNode) Intensity(x, y float64) float64 { return modifiedIntensity(r, x, y) }

func (r *RotateNode) Visibility(u, v float64, src FourierSource) complex128 {
	return modifiedVisibility(r, u, v, src)
}

// ---------- Stretch ----------

// StretchNode scales its child by α along x and β along y, preserving flux.
type StretchNode struct {
	child  Model
	a, b   float64
	traits Traits
}

// Stretch scales m by (alpha, beta). Both factors must be finite and > 0.
// Stretching a StretchNode multiplies the factors.
func Stretch(m Model, alpha, beta float64) (Model, error) {
	if m == nil {
		return nil, fmt.Errorf("Stretch: %w", ErrNilModel)
	}
	if !finite(alpha) || !finite(beta) || alpha <= 0 || beta <= 0 {
		return nil, fmt.Errorf("Stretch(%g,%g): %w", alpha, beta, ErrDegenerateTransform)
	}
	if s, ok := m.(*StretchNode); ok {
		return &StretchNode{child: s.child, a: s.a * alpha, b: s.b * beta, traits: s.traits}, nil
	}

	return &StretchNode{child: m, a: alpha, b: beta, traits: modifierTraits(m)}, nil
}

// Factors returns (α, β).
func (s *StretchNode) Factors() (float64, float64) { return s.a, s.b }

func (s *StretchNode) Child() Model          { return s.child }
func (s *StretchNode) Traits() Traits        { return s.traits }
func (s *StretchNode) Flux() float64         { return s.child.Flux() }
func (s *StretchNode) RadialExtent() float64 { return s.child.RadialExtent() * math.Max(s.a, s.b) }

func (s *StretchNode) TransformImage(x, y float64) (float64, float64) { return x / s.a, y / s.b }
func (s *StretchNode) ScaleImage(float64, float64) float64            { return 1 / (s.a * s.b) }
func (s *StretchNode) TransformUV(u, v float64) (float64, float64)    { return u * s.a, v * s.b }
func (s *StretchNode) ScaleUV(float64, float64) complex128            { return 1 }

func (s *StretchNode) Intensity(x, y float64) float64 { return modifiedIntensity(s, x, y) }

func (s *StretchNode) Visibility(u, v float64, src FourierSource) complex128 {
	return modifiedVisibility(s, u, v, src)
}

// ---------- Renormalize ----------

// RenormNode multiplies its child's brightness by a constant factor.
type RenormNode struct {
	child  Model
	f      float64
	traits Traits
}

// Renormalize multiplies m by f. Renormalizing a RenormNode multiplies the
// factors, so the result never nests.
func Renormalize(m Model, f float64) (Model, error) {
	if m == nil {
		return nil, fmt.Errorf("Renormalize: %w", ErrNilModel)
	}
	if !finite(f) {
		return nil, fmt.Errorf("Renormalize(%g): %w", f, ErrInvalidParameter)
	}
	if r, ok := m.(*RenormNode); ok {
		return &RenormNode{child: r.child, f: r.f * f, traits: r.traits}, nil
	}

	return &RenormNode{child: m, f: f, traits: modifierTraits(m)}, nil
}

// Negate is Renormalize(m, −1).
func Negate(m Model) (Model, error) { return Renormalize(m, -1) }

// Scale returns f.
func (r *RenormNode) Scale() float64 { return r.f }

func (r *RenormNode) Child() Model          { return r.child }
func (r *RenormNode) Traits() Traits        { return r.traits }
func (r *RenormNode) Flux() float64         { return r.f * r.child.Flux() }
func (r *RenormNode) RadialExtent() float64 { return r.child.RadialExtent() }

func (r *RenormNode) TransformImage(x, y float64) (float64, float64) { return x, y }
func (r *RenormNode) ScaleImage(float64, float64) float64            { return r.f }
func (r *RenormNode) TransformUV(u, v float64) (float64, float64)    { return u, v }
func (r *RenormNode) ScaleUV(float64, float64) complex128            { return complex(r.f, 0) }

func (r *RenormNode) Intensity(x, y float64) float64 { return r.f * r.child.Intensity(x, y) }

func (r *RenormNode) Visibility(u, v float64, src FourierSource) complex128 {
	return complex(r.f, 0) * r.child.Visibility(u, v, src)
}
