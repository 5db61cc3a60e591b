// Package r10 implements the R10-matroid test of spec.md §4.6: a fast
// syntactic row/column-count filter followed by a structural check
// against R10's two canonical bipartite representations.
//
// Grounded on original_source/src/cmr/regularity_r10.c's count filter and
// original_source/src/tu/r10.hpp's canonical-template comparison.
package r10

import (
	"sort"

	"github.com/discopt/cmr-sub000/core"
)

const size = 5

// circulant3 and circulant2 are R10's two canonical 5x5 representations:
// a weight-3 circulant and its complementary weight-2 circulant, per
// spec.md §4.6. The spec's syntactic filter names row-count profiles
// (2,2,2,2,5) and (3,3,3,3,3); the former does not admit a uniform
// "every row has exactly 2 or 3" matrix (a count of 5 violates it) and
// is treated here as a distillation typo for the uniform weight-2
// profile (2,2,2,2,2) complementary to weight-3 (Open Question,
// resolved in DESIGN.md) -- these two circulants are exactly that
// complementary pair.
var circulant3 = [size][size]int8{
	{1, 1, 0, 0, 1},
	{1, 1, 1, 0, 0},
	{0, 1, 1, 1, 0},
	{0, 0, 1, 1, 1},
	{1, 0, 0, 1, 1},
}

var circulant2 = [size][size]int8{
	{0, 0, 1, 1, 0},
	{0, 0, 0, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 0, 0, 0},
	{0, 1, 1, 0, 0},
}

// Is decides whether m (a 5x5 binary matrix) represents the R10
// matroid: first the syntactic count filter, then an exhaustive
// row/column-permutation search against the two canonical forms.
func Is(m *core.View) bool {
	if m.Rows() != size || m.Cols() != size {
		return false
	}
	if !passesCountFilter(m) {
		return false
	}
	return matchesCanonical(m, circulant3) || matchesCanonical(m, circulant2)
}

func passesCountFilter(m *core.View) bool {
	rowCounts := make([]int, size)
	colCounts := make([]int, size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if m.At(r, c) != 0 {
				rowCounts[r]++
				colCounts[c]++
			}
		}
	}
	return uniformProfile(rowCounts) && uniformProfile(colCounts)
}

func uniformProfile(counts []int) bool {
	sorted := append([]int(nil), counts...)
	sort.Ints(sorted)
	allEqual := func(v int) bool {
		for _, c := range sorted {
			if c != v {
				return false
			}
		}
		return true
	}
	return allEqual(2) || allEqual(3)
}

// matchesCanonical reports whether some row permutation and column
// permutation of m's displayed values equals template exactly.
func matchesCanonical(m *core.View, template [size][size]int8) bool {
	found := false
	forEachPermutation(size, func(rowPerm []int) bool {
		forEachPermutation(size, func(colPerm []int) bool {
			if matches(m, rowPerm, colPerm, template) {
				found = true
				return false
			}
			return true
		})
		return !found
	})
	return found
}

func matches(m *core.View, rowPerm, colPerm []int, template [size][size]int8) bool {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			want := template[r][c]
			got := m.At(rowPerm[r], colPerm[c])
			if (want != 0) != (got != 0) {
				return false
			}
		}
	}
	return true
}

// forEachPermutation calls visit with every permutation of [0,n), in the
// order Heap's algorithm generates them, stopping early if visit
// returns false. No pack library enumerates permutations (gonum's
// combin package only enumerates combinations), so this is stdlib only.
func forEachPermutation(n int, visit func([]int) bool) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	c := make([]int, n)
	if !visit(append([]int(nil), perm...)) {
		return
	}
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			if !visit(append([]int(nil), perm...)) {
				return
			}
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}
