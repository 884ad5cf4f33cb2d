// SPDX-License-Identifier: MIT

package model

// WalkFunc receives a primitive leaf and the frequencies it sees once every
// enclosing modifier has transformed the query set.
type WalkFunc func(leaf Model, u, v []float64)

// Walk visits every primitive of m in depth-first, insertion order. u and v
// must have equal length; they are never modified. Modifiers with identity
// uv maps pass the caller's slices through unchanged.
//
// Walk is meant for one-off preparation such as building a Fourier cache; it
// allocates per non-trivial modifier.
// Complexity: O(K·N) for K nodes and N = len(u).
func Walk(m Model, u, v []float64, fn WalkFunc) {
	switch n := m.(type) {
	case Combinator:
		for _, c := range n.Components() {
			Walk(c, u, v, fn)
		}
	case Modifier:
		if identityUV(n) {
			Walk(n.Child(), u, v, fn)
			return
		}
		up := make([]float64, len(u))
		vp := make([]float64, len(v))
		for i := range u {
			up[i], vp[i] = n.TransformUV(u[i], v[i])
		}
		Walk(n.Child(), up, vp, fn)
	default:
		fn(m, u, v)
	}
}

// Leaves returns the primitives of m in Walk order.
func Leaves(m Model) []Model {
	var out []Model
	Walk(m, nil, nil, func(leaf Model, _, _ []float64) { out = append(out, leaf) })
	return out
}

func identityUV(m Modifier) bool {
	switch m.(type) {
	case *ShiftNode, *RenormNode:
		return true
	}
	return false
}
