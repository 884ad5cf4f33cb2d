// SPDX-License-Identifier: MIT

package vis

import "iter"

// View is a read-only, restartable sequence of n results. Elements of lazy
// views are computed on every access; eager views index a backing slice.
// Views are safe for concurrent reads.
type View[T any] struct {
	n  int
	at func(int) T
}

func lazyView[T any](n int, at func(int) T) View[T] { return View[T]{n: n, at: at} }

func sliceView[T any](s []T) View[T] {
	return View[T]{n: len(s), at: func(i int) T { return s[i] }}
}

// Len returns the number of elements.
func (w View[T]) Len() int { return w.n }

// At returns element i. It panics when i is out of range.
func (w View[T]) At(i int) T {
	if i < 0 || i >= w.n {
		panic("vis: View.At index out of range")
	}
	return w.at(i)
}

// All iterates (index, value) pairs in order.
func (w View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < w.n; i++ {
			if !yield(i, w.at(i)) {
				return
			}
		}
	}
}

// AppendTo appends every element to dst and returns the extended slice.
func (w View[T]) AppendTo(dst []T) []T {
	for i := 0; i < w.n; i++ {
		dst = append(dst, w.at(i))
	}
	return dst
}

// Collect materializes the view.
func (w View[T]) Collect() []T { return w.AppendTo(make([]T, 0, w.n)) }
