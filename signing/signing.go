// Package signing implements the signing test/repair of spec.md §4.1: it
// decides whether a {-1,0,+1} matrix is already a signed version of its
// {0,1} support (Camion signing), or repairs it in place, processing
// columns left to right while growing an "already consistent" upper-left
// block and checking every new column against it via a bipartite BFS over
// that block.
//
// Grounded on original_source/src/signing.cpp's sign_matrix/check_sign,
// restructured from the C++ source's mutual recursion into an iterative,
// memoized walk (Go has no need for the template-recursion trick the
// original uses to stay generic over const/non-const matrices: Test and
// Repair are separate exported functions instead).
package signing

import (
	"sort"

	"github.com/discopt/cmr-sub000/bipartite"
	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/coreerr"
)

// Test decides whether m is already a signed version of its support. On
// success, returns (true, nil, nil). On failure, returns (false, witness,
// nil) where witness names a violating submatrix in m's original
// coordinates, per spec.md §7.
func Test(m *core.Matrix) (bool, *coreerr.Submatrix, error) {
	return run(m, false)
}

// Repair flips signs of entries of m in place until it is a signed
// version of its support, returning whether any change was made.
func Repair(m *core.Matrix) (bool, error) {
	ok, _, err := run(m, true)
	if err != nil {
		return false, err
	}
	return !ok, nil // run returns ok=true meaning "no change was necessary"
}

// run is the shared driver for Test (repair=false) and Repair
// (repair=true). For Test, ok=false means a violation was found and
// witness is populated. For Repair, ok=true means the matrix was already
// signed (Repair reports "no change"); ok=false means at least one sign
// was flipped.
func run(m *core.Matrix, repair bool) (ok bool, witness *coreerr.Submatrix, err error) {
	// Operate on whichever orientation has no more columns than rows,
	// matching original_source/src/signing.cpp's is_signed_matrix
	// transpose-if-cols>rows choice (affects only running time).
	v := core.NewView(m)
	if m.Cols() > m.Rows() {
		v = v.Transposed()
	}

	cols := v.Cols()
	handledRows := 0
	changedAny := false

	for handledCols := 0; handledCols < cols; handledCols++ {
		foundCol := findNonzeroColumn(v, handledCols, cols, 0, handledRows)
		if foundCol < 0 {
			// Disconnected: the already-handled block and the rest share
			// no nonzero entry yet. Find any nonzero column beyond
			// handledCols (over the UNPROCESSED rows) and extend.
			handledRows = extendDisconnected(v, handledRows, handledCols)
			continue
		}
		if foundCol != handledCols {
			v.SwapCols(handledCols, foundCol)
		}

		dims := bipartite.NewDims(handledRows, handledCols)
		zRows, start := collectZRows(v, handledRows, handledCols)
		if len(zRows) == 0 {
			// No handled row is nonzero in the new column: nothing to
			// check yet, just extend.
			handledRows = extendBlock(v, handledRows, handledCols)
			continue
		}

		starts := []int{dims.RowNode(start)}
		ends := make([]int, 0, len(zRows)-1)
		zSet := map[int]bool{start: true}
		for _, r := range zRows {
			if r == start {
				continue
			}
			ends = append(ends, dims.RowNode(r))
			zSet[r] = true
		}

		res := bipartite.BFS(v, dims, starts, ends, true)
		if !res.Found {
			return false, nil, coreerr.Break("signing: bipartite BFS did not reach all rows sharing the new column")
		}

		changes := map[int]bool{}
		sortedEnds := append([]int(nil), zRows...)
		sort.Ints(sortedEnds)
		for _, r := range sortedEnds {
			if r == start {
				continue
			}
			if _, done := changes[r]; done {
				continue
			}
			flip, cerr := computeChange(v, res.Nodes, dims, zSet, r, handledCols, changes)
			if cerr != nil {
				return false, nil, cerr
			}
			_ = flip
		}

		for _, r := range sortedEnds {
			if !changes[r] {
				continue
			}
			if !repair {
				w := reconstructViolator(v, res.Nodes, dims, zSet, r, handledCols)
				return false, &w, nil
			}
			changedAny = true
			pr, pc := v.Physical(r, handledCols)
			m.NegateSign(pr, pc)
		}

		handledRows = extendBlock(v, handledRows, handledCols)
	}

	if !repair {
		return true, nil, nil
	}
	return !changedAny, nil, nil
}

// findNonzeroColumn scans columns [colFirst,colBeyond) over rows
// [rowFirst,rowBeyond) for any nonzero entry, returning the first such
// column, or -1.
func findNonzeroColumn(v *core.View, colFirst, colBeyond, rowFirst, rowBeyond int) int {
	for c := colFirst; c < colBeyond; c++ {
		for r := rowFirst; r < rowBeyond; r++ {
			if v.At(r, c) != 0 {
				return c
			}
		}
	}
	return -1
}

// collectZRows returns the rows in [0,handledRows) nonzero in column
// handledCols, and designates the first one found as the BFS start row.
func collectZRows(v *core.View, handledRows, handledCols int) ([]int, int) {
	var rows []int
	for r := 0; r < handledRows; r++ {
		if v.At(r, handledCols) != 0 {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, -1
	}
	return rows, rows[0]
}

// computeChange is the iterative analogue of signing.cpp's check_sign: it
// computes, for row idx (a member of zSet), whether its entry in column
// col must flip so the cycle it closes with its nearest zSet ancestor in
// the BFS tree sums to 0 mod 4 rather than 2.
func computeChange(v *core.View, nodes []bipartite.Node, dims bipartite.Dims, zSet map[int]bool, idx, col int, changes map[int]bool) (bool, error) {
	if c, ok := changes[idx]; ok {
		return c, nil
	}
	rowNode := dims.RowNode(idx)
	if nodes[rowNode].Predecessor == rowNode {
		changes[idx] = false
		return false, nil
	}

	value := int(v.At(idx, col))
	last := rowNode
	index := nodes[last].Predecessor
	for !isZAncestor(dims, zSet, index) {
		r, c := dims.EdgeCoords(index, last)
		value += int(v.At(r, c))
		last = index
		index = nodes[index].Predecessor
	}
	// index is the nearest zSet ancestor; the edge from it to the last
	// intermediate node still needs to be folded in before closing the cycle.
	r, c := dims.EdgeCoords(index, last)
	value += int(v.At(r, c))
	ancestorRow := dims.NodeToRow(index)
	if _, done := changes[ancestorRow]; !done {
		if _, err := computeChange(v, nodes, dims, zSet, ancestorRow, col, changes); err != nil {
			return false, err
		}
	}
	value += int(v.At(ancestorRow, col))
	if changes[ancestorRow] {
		value += 2
	}

	mod := value % 4
	if mod < 0 {
		mod = -mod
	}
	if mod != 0 && mod != 2 {
		return false, coreerr.Break("signing: cycle sum modulo 4 was neither 0 nor 2")
	}
	result := mod == 2
	changes[idx] = result
	return result, nil
}

func isZAncestor(dims bipartite.Dims, zSet map[int]bool, node int) bool {
	return dims.IsRow(node) && zSet[dims.NodeToRow(node)]
}

// reconstructViolator walks the BFS path from the changed row back to its
// zSet ancestor, collecting rows and columns visited, plus the ancestor
// row and the new column, translating logical indices back to the
// matrix's original coordinates through v's permutations/transpose.
func reconstructViolator(v *core.View, nodes []bipartite.Node, dims bipartite.Dims, zSet map[int]bool, idx, col int) coreerr.Submatrix {
	rowSet := map[int]bool{}
	colSet := map[int]bool{}

	// addNode translates a single bipartite node's logical index back to a
	// physical matrix coordinate via RowAxis/ColAxis: under a transposed
	// view a "row" node actually names a base column (and vice versa), so
	// the axis to record into, not just the index, has to come out of the
	// translation.
	addNode := func(node int) {
		var isRow bool
		var phys int
		if dims.IsRow(node) {
			isRow, phys = v.RowAxis(dims.NodeToRow(node))
		} else {
			isRow, phys = v.ColAxis(dims.NodeToCol(node))
		}
		if isRow {
			rowSet[phys] = true
		} else {
			colSet[phys] = true
		}
	}

	node := dims.RowNode(idx)
	for {
		addNode(node)
		if isZAncestor(dims, zSet, node) && node != dims.RowNode(idx) {
			break
		}
		pred := nodes[node].Predecessor
		if pred == node {
			break
		}
		node = pred
		if isZAncestor(dims, zSet, node) {
			addNode(node)
			break
		}
	}
	if isRow, phys := v.ColAxis(col); isRow {
		rowSet[phys] = true
	} else {
		colSet[phys] = true
	}

	return coreerr.Submatrix{Rows: sortedKeys(rowSet), Cols: sortedKeys(colSet)}
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// extendBlock grows handledRows past handledCols: rows that reorder to
// the front (nonzero in the new column) come first per spec.md §4.1 step
// 5, using a stable sort so tie-breaking stays deterministic (spec.md §9
// open question 3).
func extendBlock(v *core.View, handledRows, handledCols int) int {
	v.ReorderRowsStable(handledRows, v.Rows(), func(r int) bool { return v.At(r, handledCols) != 0 })
	for handledRows < v.Rows() && v.At(handledRows, handledCols) != 0 {
		handledRows++
	}
	return handledRows
}

// extendDisconnected handles the "no nonzero column found yet" branch:
// scan forward for the first column with any nonzero among the
// unprocessed rows, then extend exactly as extendBlock does.
func extendDisconnected(v *core.View, handledRows, handledCols int) int {
	for c := handledCols; c < v.Cols(); c++ {
		hasNZ := false
		for r := handledRows; r < v.Rows(); r++ {
			if v.At(r, c) != 0 {
				hasNZ = true
				break
			}
		}
		if hasNZ {
			return extendBlock(v, handledRows, handledCols)
		}
	}
	return handledRows
}
