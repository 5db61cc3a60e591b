package core

// Modifier transforms a cell's original value into the value a consumer
// should see, given its (row, col) in the *view's* logical coordinates.
// Used to mask an already-processed upper-left block to zero for
// separation/BFS purposes, per spec.md §4.2's "virtual matrix" contract.
type Modifier func(row, col int, original int8) int8

// View is a thin logical window onto a Matrix: an optional row
// permutation, an optional column permutation, an optional transpose, and
// an optional cell Modifier. It never copies the backing data: a binary
// pivot writes into the backing Matrix in place, and a separation split
// copies each side into a fresh Matrix.
//
// This collapses the deep proxy-template tower of the C++ source
// (matrix_permuted/matrix_transposed/matrix_modified) into one Go value
// type with method dispatch, per spec.md §9's design note.
type View struct {
	base      *Matrix
	rowPerm   *Permutation // logical row -> base row
	colPerm   *Permutation // logical col -> base col
	transpose bool
	modifier  Modifier // nil means no masking
}

// NewView wraps a Matrix with identity permutations and no masking.
func NewView(m *Matrix) *View {
	return &View{base: m, rowPerm: IdentityPermutation(m.Rows()), colPerm: IdentityPermutation(m.Cols())}
}

// Rows returns the view's row count (post-transpose).
func (v *View) Rows() int {
	if v.transpose {
		return v.colPerm.Len()
	}
	return v.rowPerm.Len()
}

// Cols returns the view's column count (post-transpose).
func (v *View) Cols() int {
	if v.transpose {
		return v.rowPerm.Len()
	}
	return v.colPerm.Len()
}

// underlying maps view-logical (row,col) to base-matrix (row,col).
func (v *View) underlying(row, col int) (int, int) {
	if v.transpose {
		row, col = col, row
	}
	return v.rowPerm.At(row), v.colPerm.At(col)
}

// At returns the displayed value at logical (row, col), applying
// transposition, permutation indirection, and any modifier in that order.
func (v *View) At(row, col int) int8 {
	br, bc := v.underlying(row, col)
	val := v.base.At(br, bc)
	if v.modifier != nil {
		val = v.modifier(row, col, val)
	}
	return val
}

// Physical translates a logical (row, col) pair to the base matrix's
// physical (row, col), going through the exact same transpose/permutation
// mapping At uses. Any caller that needs a physical coordinate for a write
// (Flip, NegateSign) must go through this pair together, never translate
// one axis alone: under transpose, a logical row's physical counterpart is
// a base column and depends on the logical column, and vice versa, so a
// single-axis translation of just one of the two is not well-defined.
func (v *View) Physical(row, col int) (int, int) {
	return v.underlying(row, col)
}

// RowAxis translates a view-logical row index on its own, reporting which
// base axis it actually names: under transpose, a logical row corresponds
// to a base column (isRow=false), not a base row, since transposing swaps
// which permutation a bare row index is looked up in (see underlying).
// Used where only one coordinate of a node is known at a time (e.g. a
// single bipartite-graph node along a witness path), where Physical's
// joint (row,col) mapping isn't available.
func (v *View) RowAxis(logicalRow int) (isRow bool, physicalIndex int) {
	if v.transpose {
		return false, v.colPerm.At(logicalRow)
	}
	return true, v.rowPerm.At(logicalRow)
}

// ColAxis is RowAxis's column analogue.
func (v *View) ColAxis(logicalCol int) (isRow bool, physicalIndex int) {
	if v.transpose {
		return true, v.rowPerm.At(logicalCol)
	}
	return false, v.colPerm.At(logicalCol)
}

// SwapRows exchanges two logical row positions.
func (v *View) SwapRows(i, j int) {
	if v.transpose {
		v.colPerm.Swap(i, j)
		return
	}
	v.rowPerm.Swap(i, j)
}

// SwapCols exchanges two logical column positions.
func (v *View) SwapCols(i, j int) {
	if v.transpose {
		v.rowPerm.Swap(i, j)
		return
	}
	v.colPerm.Swap(i, j)
}

// ReorderRowsStable stably partitions logical row positions [lo,hi) so
// that rows satisfying keep (evaluated on the pre-reorder arrangement)
// come first, in original relative order. Returns how many rows were
// moved to the front. Used by signing §4.1 step 5 and wheel-minor search
// to bring newly-qualifying rows to the front of the unprocessed block.
func (v *View) ReorderRowsStable(lo, hi int, keep func(logicalRow int) bool) int {
	perm := v.rowPerm
	if v.transpose {
		perm = v.colPerm
	}
	return perm.StablePartition(lo, hi, func(pos, _ int) bool { return keep(pos) })
}

// ReorderColsStable is ReorderRowsStable's column analogue.
func (v *View) ReorderColsStable(lo, hi int, keep func(logicalCol int) bool) int {
	perm := v.colPerm
	if v.transpose {
		perm = v.rowPerm
	}
	return perm.StablePartition(lo, hi, func(pos, _ int) bool { return keep(pos) })
}

// ReorderRowsStableWithHandle snapshots keep against v before reordering,
// then applies the identical snapshot to both v and handle, so the
// handle's element labels stay attached to the rows/columns they name.
// Every wheel/nestedminor reorder that also carries a MatroidHandle must
// go through this pair (or SwapRowsWithHandle/SwapColsWithHandle) instead
// of calling View's reorder alone.
func ReorderRowsStableWithHandle(v *View, handle *MatroidHandle, lo, hi int, keep func(logicalRow int) bool) int {
	snap := make([]bool, hi-lo)
	for k := lo; k < hi; k++ {
		snap[k-lo] = keep(k)
	}
	n := v.ReorderRowsStable(lo, hi, func(pos int) bool { return snap[pos-lo] })
	handle.ReorderRowsStable(lo, hi, snap)
	return n
}

// ReorderColsStableWithHandle is ReorderRowsStableWithHandle's column
// analogue.
func ReorderColsStableWithHandle(v *View, handle *MatroidHandle, lo, hi int, keep func(logicalCol int) bool) int {
	snap := make([]bool, hi-lo)
	for k := lo; k < hi; k++ {
		snap[k-lo] = keep(k)
	}
	n := v.ReorderColsStable(lo, hi, func(pos int) bool { return snap[pos-lo] })
	handle.ReorderColsStable(lo, hi, snap)
	return n
}

// SwapRowsWithHandle swaps two logical rows in both v and handle in
// lockstep.
func SwapRowsWithHandle(v *View, handle *MatroidHandle, i, j int) {
	v.SwapRows(i, j)
	handle.SwapRows(i, j)
}

// SwapColsWithHandle is SwapRowsWithHandle's column analogue.
func SwapColsWithHandle(v *View, handle *MatroidHandle, i, j int) {
	v.SwapCols(i, j)
	handle.SwapCols(i, j)
}

// Transposed returns a new View over the same base and permutations with
// the transpose flag inverted; the base is shared, not copied.
func (v *View) Transposed() *View {
	cp := *v
	cp.transpose = !v.transpose
	return &cp
}

// WithModifier returns a new View sharing the same base/permutations but
// applying mod after any existing modifier (mod sees the already-modified
// value as "original").
func (v *View) WithModifier(mod Modifier) *View {
	cp := *v
	prior := v.modifier
	if prior == nil {
		cp.modifier = mod
	} else {
		cp.modifier = func(row, col int, original int8) int8 {
			return mod(row, col, prior(row, col, original))
		}
	}
	return &cp
}

// Materialize copies the view's displayed values into a fresh Matrix of
// the given domain.
func (v *View) Materialize(domain Domain) *Matrix {
	out, _ := NewMatrix(v.Rows(), v.Cols(), domain)
	for i := 0; i < v.Rows(); i++ {
		for j := 0; j < v.Cols(); j++ {
			out.data[i*out.c+j] = v.At(i, j)
		}
	}
	return out
}

// RowPermutation exposes the row permutation (identity if none applied),
// in view-local (pre-transpose) terms, for callers that need to track
// which logical rows moved where (e.g. signing's violator reconstruction).
func (v *View) RowPermutation() *Permutation { return v.rowPerm }

// ColPermutation exposes the column permutation analogously.
func (v *View) ColPermutation() *Permutation { return v.colPerm }

// IsTransposed reports whether this view swaps row/column roles.
func (v *View) IsTransposed() bool { return v.transpose }
