// Package wheel implements the wheel-minor search of spec.md §4.3: given
// a candidate 3-connected matroid, either expose the canonical W3 minor
// in the upper-left 3x3 block, or report a 1- or 2-separation.
//
// Grounded on original_source/apps/common/src/find_wheel_minor.hpp's nine
// numbered steps; the path-shortening pivot loop reuses bipartite.BFS and
// core.Pivot exactly as nestedminor's elaborate extension does.
package wheel

import (
	"sort"

	"github.com/discopt/cmr-sub000/bipartite"
	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/coreerr"
)

// SeparationKind distinguishes a 1-separation (direct sum) from a
// 2-separation.
type SeparationKind int

const (
	// Sep1 is a 1-separation: the matrix splits into a block-diagonal
	// direct sum with no shared rank.
	Sep1 SeparationKind = iota
	// Sep2 is a 2-separation: the two sides share rank 1 across the cut.
	Sep2
)

// Separation reports a 1- or 2-separation split, per spec.md §3
// "Separation": the split point (H1, W1) such that rows/cols [0,H1)x[0,W1)
// form one side, plus up to two witness positions outside that block.
type Separation struct {
	Kind      SeparationKind
	H1, W1    int
	Witnesses [][2]int
}

// Result is the outcome of a wheel-minor search: either NoSeparation is
// true (meaning the view's upper-left 3x3 block now displays the
// canonical W3 pattern), or Sep holds a 1-/2-separation witness.
type Result struct {
	NoSeparation bool
	Sep          Separation
}

// Find runs the search in place on v (permuting and pivoting it) and
// updates handle's labels to match every pivot performed.
func Find(v *core.View, handle *core.MatroidHandle) (Result, error) {
	if v.Rows() < 3 || v.Cols() < 3 {
		return Result{}, coreerr.Break("wheel: candidate matroid smaller than 3x3")
	}

	// Step 1: columns with a nonzero in row 0 come first.
	a := core.ReorderColsStableWithHandle(v, handle, 0, v.Cols(), func(c int) bool { return v.At(0, c) != 0 })
	if a == 0 {
		// Step 2: row 0 is entirely zero -- 1-separation at (1,0).
		return Result{Sep: Separation{Kind: Sep1, H1: 1, W1: 0}}, nil
	}

	// Step 3: rows below 0 with a 1 in column 0 come first.
	core.ReorderRowsStableWithHandle(v, handle, 1, v.Rows(), func(r int) bool { return v.At(r, 0) != 0 })
	bCount := countFirstColumn(v)

	if a == 1 {
		// Step 4: single leading column -- 1- or 2-separation.
		if bCount == 0 {
			return Result{Sep: Separation{Kind: Sep1, H1: 1, W1: 1}}, nil
		}
		return Result{Sep: Separation{Kind: Sep2, H1: 1, W1: 1, Witnesses: [][2]int{{0, 0}}}}, nil
	}
	if bCount == 0 {
		// Step 5: row 0 is the single row with a 1 in column 0 (and >=2
		// leading columns).
		return Result{Sep: Separation{Kind: Sep2, H1: 1, W1: 1, Witnesses: [][2]int{{1, 0}}}}, nil
	}

	// Step 6: complete the 2x2 all-ones block.
	if v.At(1, 1) == 0 {
		if err := core.Pivot(v, handle, 0, 0); err != nil {
			return Result{}, coreerr.BreakCause("wheel: pivot to complete 2x2 block failed", err)
		}
	}

	// Step 7: grow the block maximally.
	h, w := growBlock(v)

	// Step 8: BFS over the matrix with the block masked to zero.
	dims := bipartite.NewDims(v.Rows(), v.Cols())
	masked := v.WithModifier(func(row, col int, orig int8) int8 {
		if row < h && col < w {
			return 0
		}
		return orig
	})
	starts := make([]int, h)
	for r := 0; r < h; r++ {
		starts[r] = dims.RowNode(r)
	}
	ends := make([]int, w)
	for c := 0; c < w; c++ {
		ends[c] = dims.ColNode(c)
	}
	res := bipartite.BFS(masked, dims, starts, ends, false)
	if !res.Found {
		return Result{Sep: derive2Separation(v, handle, dims, res, h, w)}, nil
	}

	// Step 9: shorten the path and normalize the W3 triangle to (0,1,2).
	endNode := pickReachedEnd(res, dims, w)
	if err := shortenAndNormalize(v, handle, masked, dims, res, endNode, h, w); err != nil {
		return Result{}, err
	}
	return Result{NoSeparation: true}, nil
}

func countFirstColumn(v *core.View) int {
	count := 0
	for r := 1; r < v.Rows(); r++ {
		if v.At(r, 0) != 0 {
			count++
		} else {
			break
		}
	}
	return count
}

// growBlock extends the all-ones upper-left block maximally in both
// dimensions, per step 7.
func growBlock(v *core.View) (h, w int) {
	h, w = 2, 2
	for w < v.Cols() {
		allOnes := true
		for r := 0; r < h; r++ {
			if v.At(r, w) == 0 {
				allOnes = false
				break
			}
		}
		if !allOnes {
			break
		}
		w++
	}
	for h < v.Rows() {
		allOnes := true
		for c := 0; c < w; c++ {
			if v.At(h, c) == 0 {
				allOnes = false
				break
			}
		}
		if !allOnes {
			break
		}
		h++
	}
	return h, w
}

// derive2Separation builds the split from an unsuccessful masked BFS:
// unreached rows go to one side, reached columns to the other.
func derive2Separation(v *core.View, handle *core.MatroidHandle, dims bipartite.Dims, res bipartite.Result, h, w int) Separation {
	reachedRows := map[int]bool{}
	reachedCols := map[int]bool{}
	for r := 0; r < v.Rows(); r++ {
		if res.Nodes[dims.RowNode(r)].Distance >= 0 {
			reachedRows[r] = true
		}
	}
	for c := 0; c < v.Cols(); c++ {
		if res.Nodes[dims.ColNode(c)].Distance >= 0 {
			reachedCols[c] = true
		}
	}
	// Side 0: unreached rows plus the block's own rows; side 1 columns
	// analogous. Move unreached rows and non-block reached columns via
	// stable partition so the split is expressible as split=(H1,W1).
	unreachedRows := core.ReorderRowsStableWithHandle(v, handle, 0, v.Rows(), func(r int) bool { return !reachedRows[r] || r < h })
	reachedColsFront := core.ReorderColsStableWithHandle(v, handle, 0, v.Cols(), func(c int) bool { return reachedCols[c] || c < w })
	return Separation{Kind: Sep2, H1: unreachedRows, W1: v.Cols() - reachedColsFront}
}

func pickReachedEnd(res bipartite.Result, dims bipartite.Dims, w int) int {
	best := -1
	for c := 0; c < w; c++ {
		n := dims.ColNode(c)
		if res.Nodes[n].Distance < 0 {
			continue
		}
		if best < 0 || res.Nodes[n].Distance > res.Nodes[best].Distance {
			best = n
		}
	}
	return best
}

// shortenAndNormalize follows the BFS path from endNode back toward a
// start, pivoting at every second unmarked vertex to shorten it, then
// identifies and normalizes the canonical W3 triangle to indices (0,1,2)
// in both dimensions.
func shortenAndNormalize(v *core.View, handle *core.MatroidHandle, masked *core.View, dims bipartite.Dims, res bipartite.Result, endNode int, h, w int) error {
	if endNode < 0 {
		return coreerr.Break("wheel: masked BFS reported found but no column end was reached")
	}
	path := bipartite.Path(res.Nodes, endNode)

	// Path-shortening: pivot at every interior vertex whose distance is
	// even, >=2, and at least 2 less than the endpoint's distance.
	endDist := res.Nodes[endNode].Distance
	for _, node := range path {
		d := res.Nodes[node].Distance
		if d%2 != 0 || d < 2 || d > endDist-2 {
			continue
		}
		if dims.IsRow(node) {
			continue
		}
		// node is a column at even interior distance: pivot against its
		// predecessor row to shorten the path by two.
		predRow := res.Nodes[node].Predecessor
		if !dims.IsRow(predRow) {
			continue
		}
		r := dims.NodeToRow(predRow)
		c := dims.NodeToCol(node)
		if err := core.Pivot(v, handle, r, c); err != nil {
			return coreerr.BreakCause("wheel: path-shortening pivot failed", err)
		}
	}

	// After shortening, the W3 triangle sits among the block's first two
	// rows/columns plus the (now length <=2) path's remaining row/column.
	// Bring them to logical positions 0,1,2.
	rowSet := make([]int, 0, 3)
	colSet := make([]int, 0, 3)
	rowSet = append(rowSet, 0, 1)
	colSet = append(colSet, 0, 1)
	for _, node := range path {
		if dims.IsRow(node) {
			r := dims.NodeToRow(node)
			if r >= h {
				rowSet = append(rowSet, r)
			}
		} else {
			c := dims.NodeToCol(node)
			if c >= w {
				colSet = append(colSet, c)
			}
		}
	}
	sort.Ints(rowSet)
	sort.Ints(colSet)
	for i, r := range rowSet {
		if i < 3 && r != i {
			core.SwapRowsWithHandle(v, handle, i, r)
		}
	}
	for i, c := range colSet {
		if i < 3 && c != i {
			core.SwapColsWithHandle(v, handle, i, c)
		}
	}
	return nil
}
