// Package violator implements spec.md §4.9's violator search: starting
// from the smallest irregular leaf a decomposition run turned up,
// iteratively drop one label at a time and re-test, keeping the drop
// whenever the reduced submatrix is still not totally unimodular, until
// no single-element drop helps further.
//
// Grounded on original_source/src/violator_search.hpp's
// find_smallest_irregular_minor (leaf/separator label-set recursion) and
// single_violator_strategy::search (the one-at-a-time drop loop), and on
// original_source/src/determinant.cpp for the fraction-free determinant
// fallback of spec.md §7's numeric-overflow handling -- ported to
// Bareiss elimination over int64 (the original used a float LU
// factorization, which spec.md §1's "no floating point" non-goal rules
// out) with explicit multiplication-overflow guards before every step.
package violator

import (
	"sort"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/coreerr"
	"github.com/discopt/cmr-sub000/decomposition"
	"gonum.org/v1/gonum/stat/combin"
)

// FindSmallestIrregularLeaf walks a decomposition tree and returns the
// label set (elements plus extra elements) of its smallest irregular
// leaf, or ok=false if the tree is fully regular.
func FindSmallestIrregularLeaf(node *decomposition.Node) (labels []int, ok bool) {
	switch node.Kind {
	case decomposition.KindRegularLeaf:
		return nil, false
	case decomposition.KindIrregularLeaf:
		out := append([]int{}, node.Labels...)
		out = append(out, node.ExtraLabels...)
		return out, true
	default:
		firstLabels, firstOK := FindSmallestIrregularLeaf(node.First)
		secondLabels, secondOK := FindSmallestIrregularLeaf(node.Second)
		switch {
		case !firstOK:
			return secondLabels, secondOK
		case !secondOK:
			return firstLabels, firstOK
		case len(firstLabels) < len(secondLabels):
			return firstLabels, true
		default:
			return secondLabels, true
		}
	}
}

// Search runs spec.md §4.9's iterative single-element drop on full (the
// original, standard-labeled -1..-h/+1..+w matrix), starting from
// labels (typically the smallest irregular leaf's set), and returns the
// smallest submatrix it could shrink to that is still not regular.
//
// At each round every way of dropping exactly one label is a tie for
// "try this next" -- spec.md §1 calls out permutation/enumeration
// combinators as diagnostic-only territory for exactly this kind of
// choice, so the n candidate drops are enumerated via
// gonum.org/v1/gonum/stat/combin's Combinations rather than a
// hand-rolled loop, and the first one that still isn't regular wins the
// round.
func Search(full *core.Matrix, labels []int) (coreerr.Submatrix, error) {
	working := append([]int{}, labels...)
	history := [][]int{append([]int{}, working...)}

	for len(working) > 2 {
		n := len(working)
		dropped := false
		for _, combo := range combin.Combinations(n, n-1) {
			reduced := make([]int, len(combo))
			for i, idx := range combo {
				reduced[i] = working[idx]
			}
			shrunk, regular, err := test(full, reduced)
			if err != nil {
				return coreerr.Submatrix{}, err
			}
			if !regular {
				working = shrunk
				history = append(history, append([]int{}, working...))
				dropped = true
				break
			}
		}
		if !dropped {
			break
		}
	}
	return confirmDeterminant(full, history)
}

// confirmDeterminant realizes spec.md §6 item 3's contract for the common
// case it can actually check directly -- a SQUARE witness's |det| >= 2 is
// confirmable numerically, not just via decomposition's non-regularity
// verdict -- together with spec.md §7's overflow fallback: "report and
// fall back to a smaller witness if possible; otherwise surface the
// overflow". history holds every witness Search's shrink loop confirmed
// non-regular, from the original (largest) to the final (smallest) one it
// settled on.
//
// A dropped label can be either a row or a column, so a witness need not
// stay square as it shrinks (the common `[I|A]` shape, e.g. spec.md §8
// scenario 1's 3x6, never is); original_source's violator_search.hpp
// itself never narrows a rectangular non-regular witness down to a square
// minor either, and decomposition's non-regularity verdict, not a
// determinant, is what actually proves a witness can't be totally
// unimodular (it doesn't pin down that a square witness's own determinant,
// as opposed to some smaller minor within it, is the one that is large).
// So Determinant is wired in here as a best-effort numeric confirmation,
// attempted smallest-square-candidate-first (both the one the contract
// prefers and the one least likely to overflow), widening through history
// only on overflow; the reported witness is always the smallest one Search
// found, regardless of which size's determinant actually confirmed it --
// confirmation only decides whether an overflow gets surfaced, never which
// witness is returned. Only overflow on every square candidate history
// contains is surfaced as an error, since it is the one failure mode
// spec.md §7 actually names; a witness with no square candidate in its
// history at all, or a square one whose determinant happens to fall in
// {-1,0,1}, is still reported as-is on the strength of decomposition's
// verdict alone.
func confirmDeterminant(full *core.Matrix, history [][]int) (coreerr.Submatrix, error) {
	var overflow error
	for i := len(history) - 1; i >= 0; i-- {
		candidate := history[i]
		rowLabels, colLabels := splitSortedLabels(candidate)
		if len(rowLabels) != len(colLabels) {
			continue
		}
		sub, _, err := buildSignedSubmatrix(full, candidate)
		if err != nil {
			return coreerr.Submatrix{}, err
		}
		if _, err := Determinant(sub); err != nil {
			overflow = err
			continue
		}
		overflow = nil
		break
	}
	if overflow != nil {
		return coreerr.Submatrix{}, overflow
	}
	return toSubmatrix(history[len(history)-1]), nil
}

// test builds the submatrix named by labels, re-runs the decomposition
// decision on it, and reports either that it became regular (the drop
// should not be kept) or the possibly-even-smaller label set of its own
// smallest irregular leaf (decomposition's recursive split can shrink
// further than the single dropped element did).
func test(full *core.Matrix, labels []int) ([]int, bool, error) {
	sub, handle, err := buildSubmatrix(full, labels)
	if err != nil {
		return nil, false, err
	}
	regular, node, err := decomposition.Decompose(core.NewView(sub), handle, nil, true)
	if err != nil {
		return nil, false, err
	}
	if regular {
		return labels, true, nil
	}
	if leafLabels, ok := FindSmallestIrregularLeaf(node); ok && len(leafLabels) < len(labels) {
		return leafLabels, false, nil
	}
	return labels, false, nil
}

// splitSortedLabels partitions labels into row labels and column labels
// (standard NewMatroidHandle numbering: row label -1-i, column label
// 1+j), each sorted into ascending original-index order.
func splitSortedLabels(labels []int) (rowLabels, colLabels []int) {
	for _, l := range labels {
		if l < 0 {
			rowLabels = append(rowLabels, l)
		} else if l > 0 {
			colLabels = append(colLabels, l)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rowLabels))) // -1 before -2 before -3 ...
	sort.Ints(colLabels)                              // 1 before 2 before 3 ...
	return rowLabels, colLabels
}

// buildSignedSubmatrix carves the actual signed entries of full (not just
// its binary support) at the rows/cols named by labels, for the Bareiss
// determinant confirmation in confirmDeterminant. full is already a
// validly-signed matrix by the time Search runs (tu.decomposeFull checks
// signing before ever calling Search), and Camion signing is hereditary:
// restricting a validly-signed matrix to any row/column subset is itself
// validly signed, so no re-signing step is needed here.
func buildSignedSubmatrix(full *core.Matrix, labels []int) (*core.Matrix, *core.MatroidHandle, error) {
	rowLabels, colLabels := splitSortedLabels(labels)

	m, err := core.NewMatrix(len(rowLabels), len(colLabels), core.DomainSigned)
	if err != nil {
		return nil, nil, err
	}
	for i, rl := range rowLabels {
		ri := -rl - 1
		for j, cl := range colLabels {
			cj := cl - 1
			if v := full.At(ri, cj); v != 0 {
				if err := m.Set(i, j, v); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return m, core.NewMatroidHandleWithLabels(rowLabels, colLabels), nil
}

// buildSubmatrix carves out the binary support of full at the rows/cols
// named by labels, in ascending original-index order, returning a fresh
// handle over the same labels.
func buildSubmatrix(full *core.Matrix, labels []int) (*core.Matrix, *core.MatroidHandle, error) {
	rowLabels, colLabels := splitSortedLabels(labels)

	m, err := core.NewMatrix(len(rowLabels), len(colLabels), core.DomainBinary)
	if err != nil {
		return nil, nil, err
	}
	for i, rl := range rowLabels {
		ri := -rl - 1
		for j, cl := range colLabels {
			cj := cl - 1
			if full.At(ri, cj) != 0 {
				if err := m.Set(i, j, 1); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return m, core.NewMatroidHandleWithLabels(rowLabels, colLabels), nil
}

// toSubmatrix converts a label set back to original-matrix row/column
// indices, per coreerr.Submatrix's coordinate convention.
func toSubmatrix(labels []int) coreerr.Submatrix {
	var rows, cols []int
	for _, l := range labels {
		if l < 0 {
			rows = append(rows, -l-1)
		} else if l > 0 {
			cols = append(cols, l-1)
		}
	}
	sort.Ints(rows)
	sort.Ints(cols)
	return coreerr.Submatrix{Rows: rows, Cols: cols}
}

// Determinant computes the determinant of a square signed matrix via
// Bareiss fraction-free Gaussian elimination over int64, per spec.md §7:
// the division at each step is always exact (a classical property of the
// Bareiss algorithm), so no rational or floating-point arithmetic is
// needed. Returns coreerr.InvariantBroken if an intermediate product
// would overflow int64; confirmDeterminant then moves on to the next
// larger square candidate in its history.
func Determinant(m *core.Matrix) (int64, error) {
	n := m.Rows()
	if m.Cols() != n {
		return 0, coreerr.Break("violator: determinant requires a square matrix")
	}
	if n == 0 {
		return 1, nil
	}

	a := make([][]int64, n)
	for i := range a {
		a[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			a[i][j] = int64(m.At(i, j))
		}
	}

	sign := int64(1)
	prev := int64(1)
	for k := 0; k < n-1; k++ {
		if a[k][k] == 0 {
			pivoted := false
			for i := k + 1; i < n; i++ {
				if a[i][k] != 0 {
					a[k], a[i] = a[i], a[k]
					sign = -sign
					pivoted = true
					break
				}
			}
			if !pivoted {
				return 0, nil
			}
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				left, err := mulOverflow(a[i][j], a[k][k])
				if err != nil {
					return 0, err
				}
				right, err := mulOverflow(a[i][k], a[k][j])
				if err != nil {
					return 0, err
				}
				a[i][j] = (left - right) / prev
			}
		}
		prev = a[k][k]
	}
	return sign * a[n-1][n-1], nil
}

func mulOverflow(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a {
		return 0, coreerr.BreakCause("violator: int64 overflow in Bareiss elimination", coreerr.ErrInvariantBroken)
	}
	return r, nil
}
