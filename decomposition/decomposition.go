// Package decomposition implements the recursive decomposition driver of
// spec.md §4.8: repeatedly search for a W3 minor, grow it into a
// nested-minor sequence, test the result for graphicness, cographicness
// and R10, and on failure enumerate a 3-separation to split and recurse.
//
// Grounded on original_source/src/matroid_decomposition.hpp/.cpp for the
// decomposed_matroid / decomposed_matroid_leaf / decomposed_matroid_separator
// tree shape (Node below mirrors all three in one type switched on Kind)
// and on original_source/apps/common/src/find_wheel_minor.hpp's outer
// driver loop for the step ordering. Progress is reported through
// decomplog, per spec.md §9's verbosity requirement.
package decomposition

import (
	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/decomplog"
	"github.com/discopt/cmr-sub000/graphic"
	"github.com/discopt/cmr-sub000/nestedminor"
	"github.com/discopt/cmr-sub000/r10"
	"github.com/discopt/cmr-sub000/separation"
	"github.com/discopt/cmr-sub000/wheel"
)

// NodeKind classifies one Node of the decomposition tree.
type NodeKind int

const (
	// KindRegularLeaf is a 3-connected regular component: graphic,
	// cographic, R10, or some combination (the planar case is both).
	KindRegularLeaf NodeKind = iota
	// KindIrregularLeaf is a 3-connected component that is none of the
	// above: the whole matroid is not regular.
	KindIrregularLeaf
	// KindSum1 is a 1-sum (direct sum) split.
	KindSum1
	// KindSum2 is a 2-sum split.
	KindSum2
	// KindSum3 is a 3-sum split.
	KindSum3
)

// Node is one node of a decomposition tree, mirroring
// original_source's decomposed_matroid hierarchy: a leaf carries its
// graphic/cographic/R10 classification directly, a sum node carries two
// children and is regular/graphic/cographic iff both children are.
type Node struct {
	Kind NodeKind

	Rows, Cols int
	// Labels and ExtraLabels are only populated when Decompose was run in
	// certificate (buildTree) mode; short-circuit mode leaves them nil
	// since no caller can observe them through a bool-only result.
	Labels      []int
	ExtraLabels []int

	Graphic   bool // meaningful only on KindRegularLeaf
	Cographic bool
	R10       bool

	First, Second *Node // populated only on KindSum1/2/3
}

// IsRegular reports whether this node (and everything below it) is
// regular, per original_source's decomposed_matroid::is_regular.
func (n *Node) IsRegular() bool {
	switch n.Kind {
	case KindIrregularLeaf:
		return false
	case KindRegularLeaf:
		return true
	default:
		return n.First.IsRegular() && n.Second.IsRegular()
	}
}

// IsGraphic reports whether every leaf below this node has a graph
// representation.
func (n *Node) IsGraphic() bool {
	switch n.Kind {
	case KindRegularLeaf:
		return n.Graphic
	case KindIrregularLeaf:
		return false
	default:
		return n.First.IsGraphic() && n.Second.IsGraphic()
	}
}

// IsCographic is IsGraphic's dual.
func (n *Node) IsCographic() bool {
	switch n.Kind {
	case KindRegularLeaf:
		return n.Cographic
	case KindIrregularLeaf:
		return false
	default:
		return n.First.IsCographic() && n.Second.IsCographic()
	}
}

// IsNetwork reports graphic-or-cographic, per original_source's
// decomposed_matroid::is_network.
func (n *Node) IsNetwork() bool { return n.IsGraphic() || n.IsCographic() }

// IsPlanar reports graphic-and-cographic, per original_source's
// decomposed_matroid::is_planar.
func (n *Node) IsPlanar() bool { return n.IsGraphic() && n.IsCographic() }

// Decompose runs spec.md §4.8's recursive driver on v/handle in place
// (every component function it calls permutes and pivots v, keeping
// handle in lockstep), returning whether the matroid is regular and, in
// certificate mode, the tree witnessing the classification.
//
// extraLabels seeds E, the set of "extra" elements the caller already
// knows were touched by pivots outside this call (nil for a fresh top
// level call). buildTree selects certificate mode (b = true: build a
// complete Node tree) over short-circuit mode (b = false: stop recursing
// into a second sum-child once the first is known irregular).
func Decompose(v *core.View, handle *core.MatroidHandle, extraLabels []int, buildTree bool) (bool, *Node, error) {
	marks := newMarkerSeq(handle.AllLabels())
	return decompose(v, handle, extraLabels, buildTree, marks)
}

func decompose(v *core.View, handle *core.MatroidHandle, extraLabels []int, buildTree bool, marks *markerSeq) (bool, *Node, error) {
	rows, cols := v.Rows(), v.Cols()

	// Base case: min(rows,cols) <= 2 is always regular (spec.md §4.8).
	// The general graphicness builder is scoped to a W3-rooted
	// nested-minor sequence (graphic.NewW3 needs a 3x3 start), so rather
	// than port original_source's separate 2xw/hx2 builder we record the
	// classification directly -- a network matrix this small is always
	// both graphic and cographic (Open Question, resolved in DESIGN.md).
	if rows <= 2 || cols <= 2 {
		decomplog.Leaf("small", rows, cols)
		return true, leaf(handle, extraLabels, true, true, false, buildTree), nil
	}

	wr, err := wheel.Find(v, handle)
	if err != nil {
		return false, nil, err
	}
	if !wr.NoSeparation {
		kind := "2-sum"
		if wr.Sep.Kind == wheel.Sep1 {
			kind = "1-sum"
		}
		return splitAndRecurse(v, handle, kind, wr.Sep.H1, wr.Sep.W1, extraLabels, buildTree, marks)
	}

	// The upper-left 3x3 block now holds the canonical W3 pattern. Grow
	// the nested-minor sequence to completion, recording each tag (for
	// the graphicness builder) and each growth boundary (for the
	// 3-separation enumeration's step list), splitting immediately if a
	// 2-separation turns up midway.
	var rowLabels, colLabels [3]int
	for i := 0; i < 3; i++ {
		rowLabels[i] = handle.RowLabel(i)
		colLabels[i] = handle.ColLabel(i)
	}

	h, w := 3, 3
	var tags []nestedminor.Tag
	steps := []separation.Step{{H: h, W: w}}
	for {
		ext, err := nestedminor.Extend(v, handle, h, w)
		if err != nil {
			return false, nil, err
		}
		if ext.Separation != nil {
			return splitAndRecurse(v, handle, "2-sum", ext.Separation.H1, ext.Separation.W1, extraLabels, buildTree, marks)
		}
		if ext.Done {
			break
		}
		tags = append(tags, *ext.Tag)
		h, w = ext.NewH, ext.NewW
		steps = append(steps, separation.Step{H: h, W: w})
	}

	support := buildSupport(v, handle)
	_, graphicOK := graphic.Build(rowLabels, colLabels, tags, support)

	tv, th := v.Transposed(), handle.Transposed()
	coSupport := buildSupport(tv, th)
	_, cographicOK := graphic.Build(colLabels, rowLabels, transposeTags(tags), coSupport)

	if graphicOK || cographicOK {
		isR10 := false
		if buildTree {
			isR10 = r10.Is(v)
		}
		decomplog.Leaf("network", rows, cols)
		return true, leaf(handle, extraLabels, graphicOK, cographicOK, isR10, buildTree), nil
	}

	if r10.Is(v) {
		decomplog.Leaf("R10", rows, cols)
		return true, leaf(handle, extraLabels, false, false, true, buildTree), nil
	}

	sepRes, err := separation.Find(v, handle, steps)
	if err != nil {
		return false, nil, err
	}
	if sepRes.Found {
		return splitAndRecurse(v, handle, "3-sum", sepRes.Sep.H1, sepRes.Sep.W1, extraLabels, buildTree, marks)
	}

	decomplog.Irregular(rows, cols)
	return false, leafIrregular(handle, extraLabels, buildTree), nil
}

func leaf(handle *core.MatroidHandle, extraLabels []int, graphicOK, cographicOK, isR10 bool, buildTree bool) *Node {
	n := &Node{
		Kind: KindRegularLeaf, Rows: handle.NumRows(), Cols: handle.NumCols(),
		Graphic: graphicOK, Cographic: cographicOK, R10: isR10,
	}
	if buildTree {
		n.Labels = append([]int{}, handle.AllLabels()...)
		n.ExtraLabels = append([]int{}, extraLabels...)
	}
	return n
}

func leafIrregular(handle *core.MatroidHandle, extraLabels []int, buildTree bool) *Node {
	n := &Node{Kind: KindIrregularLeaf, Rows: handle.NumRows(), Cols: handle.NumCols()}
	if buildTree {
		n.Labels = append([]int{}, handle.AllLabels()...)
		n.ExtraLabels = append([]int{}, extraLabels...)
	}
	return n
}

// buildSupport returns the support callback graphic.Build needs: given a
// label, the labels of the opposite dimension where that row/column is
// currently nonzero. It is evaluated lazily against the live view, so a
// tag whose connectivity was only established by a pivot performed
// during a *later* extension step sees the final, fully-pivoted picture
// rather than a frozen snapshot -- graphic.Build's own edgesByLabels
// lookup already discards any label not yet present as an edge, which in
// practice limits each call to the labels the tag sequence has placed so
// far (Open Question, resolved in DESIGN.md).
func buildSupport(v *core.View, handle *core.MatroidHandle) func(label int) []int {
	return func(label int) []int {
		for i := 0; i < handle.NumRows(); i++ {
			if handle.RowLabel(i) == label {
				var out []int
				for c := 0; c < handle.NumCols(); c++ {
					if v.At(i, c) != 0 {
						out = append(out, handle.ColLabel(c))
					}
				}
				return out
			}
		}
		for j := 0; j < handle.NumCols(); j++ {
			if handle.ColLabel(j) == label {
				var out []int
				for r := 0; r < handle.NumRows(); r++ {
					if v.At(r, j) != 0 {
						out = append(out, handle.RowLabel(r))
					}
				}
				return out
			}
		}
		return nil
	}
}

// transposeTag swaps one tag's row/column role, the same mapping
// nestedminor's own (unexported) transposeExtension applies, so the
// cographicness builder can replay the identical extension sequence on
// the transposed matroid without re-running nested-minor extension a
// second time.
func transposeTag(t nestedminor.Tag) nestedminor.Tag {
	t.RowLabels, t.ColLabels = t.ColLabels, t.RowLabels
	switch t.Kind {
	case nestedminor.TagOneRow:
		t.Kind = nestedminor.TagOneColumn
	case nestedminor.TagOneColumn:
		t.Kind = nestedminor.TagOneRow
	case nestedminor.TagTwoRowsOneColumn:
		t.Kind = nestedminor.TagOneRowTwoColumns
	case nestedminor.TagOneRowTwoColumns:
		t.Kind = nestedminor.TagTwoRowsOneColumn
	}
	return t
}

func transposeTags(tags []nestedminor.Tag) []nestedminor.Tag {
	out := make([]nestedminor.Tag, len(tags))
	for i, t := range tags {
		out[i] = transposeTag(t)
	}
	return out
}

// marker is one synthetic connecting element introduced by a 2-sum or
// 3-sum split: a fresh label shared between both children, carrying the
// rank-1 block's indicator vector on whichever side it is appended to.
type marker struct {
	label int
	vec   []int8
}

// markerSeq allocates fresh marker labels guaranteed not to collide with
// any label already in play, across the whole recursive decomposition
// (shared by pointer through every splitAndRecurse call).
//
// original_source's own marker-element bookkeeping lives in the
// graph-construction side of matroid_decomposition.cpp's sum composition,
// which is out of scope at this depth; minting a fresh monotonically
// increasing id (ignoring the row-negative/column-positive sign
// convention real elements follow) is a deliberate simplification,
// recorded in DESIGN.md.
type markerSeq struct{ next int }

func newMarkerSeq(labels []int) *markerSeq {
	max := 0
	for _, l := range labels {
		if l < 0 {
			l = -l
		}
		if l > max {
			max = l
		}
	}
	return &markerSeq{next: max + 1}
}

func (m *markerSeq) alloc() int {
	id := m.next
	m.next++
	return id
}

// rank1Vectors reads off the (assumed rank <= 1) block v[rowLo:rowHi,
// colLo:colHi] as its row and column indicator vectors: for a true rank-1
// binary block these are exactly the two factors of its outer product.
func rank1Vectors(v *core.View, rowLo, rowHi, colLo, colHi int) ([]int8, []int8, bool) {
	u := make([]int8, rowHi-rowLo)
	w := make([]int8, colHi-colLo)
	nonzero := false
	for r := rowLo; r < rowHi; r++ {
		for c := colLo; c < colHi; c++ {
			if v.At(r, c) != 0 {
				u[r-rowLo] = 1
				w[c-colLo] = 1
				nonzero = true
			}
		}
	}
	return u, w, nonzero
}

func labelsRange(handle *core.MatroidHandle, isRow bool, lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		if isRow {
			out = append(out, handle.RowLabel(i))
		} else {
			out = append(out, handle.ColLabel(i))
		}
	}
	return out
}

func filterLabels(extraLabels []int, rowLabels, colLabels []int) []int {
	keep := map[int]bool{}
	for _, l := range rowLabels {
		keep[l] = true
	}
	for _, l := range colLabels {
		keep[l] = true
	}
	var out []int
	for _, l := range extraLabels {
		if keep[l] {
			out = append(out, l)
		}
	}
	return out
}

func markerLabelsFor(a, b *marker) []int {
	var out []int
	if a != nil {
		out = append(out, a.label)
	}
	if b != nil {
		out = append(out, b.label)
	}
	return out
}

// assembleChild materializes one side of a split as its own matrix and
// handle: the base block plus, if non-nil, one appended marker column
// and/or one appended marker row. The marker row/column's own crossing
// cell (when both are present) is left at 0 -- a 3-sum's two markers are
// not known to interact further than the separate rank-1 blocks they
// each came from (documented simplification alongside markerSeq).
func assembleChild(v *core.View, rowLo, rowHi, colLo, colHi int, baseRowLabels, baseColLabels []int, extraCol, extraRow *marker) (*core.Matrix, *core.MatroidHandle, error) {
	rows := rowHi - rowLo
	cols := colHi - colLo
	totalRows, totalCols := rows, cols
	if extraRow != nil {
		totalRows++
	}
	if extraCol != nil {
		totalCols++
	}

	m, err := core.NewMatrix(totalRows, totalCols, core.DomainBinary)
	if err != nil {
		return nil, nil, err
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v.At(rowLo+r, colLo+c) != 0 {
				if err := m.Set(r, c, 1); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	if extraCol != nil {
		for r := 0; r < rows; r++ {
			if extraCol.vec[r] != 0 {
				if err := m.Set(r, cols, 1); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	if extraRow != nil {
		for c := 0; c < cols; c++ {
			if extraRow.vec[c] != 0 {
				if err := m.Set(rows, c, 1); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	rowLabels := append([]int{}, baseRowLabels...)
	colLabels := append([]int{}, baseColLabels...)
	if extraRow != nil {
		rowLabels = append(rowLabels, extraRow.label)
	}
	if extraCol != nil {
		colLabels = append(colLabels, extraCol.label)
	}
	return m, core.NewMatroidHandleWithLabels(rowLabels, colLabels), nil
}

// splitAndRecurse carves v (already normalized so side A occupies
// rows/cols [0,h1)x[0,w1)) into two children, recurses on each, and
// combines the results into a sum Node. In short-circuit mode (buildTree
// = false) it skips the second child entirely once the first is known
// irregular, per spec.md §4.8's "short-circuit mode".
func splitAndRecurse(v *core.View, handle *core.MatroidHandle, kind string, h1, w1 int, extraLabels []int, buildTree bool, marks *markerSeq) (bool, *Node, error) {
	rows, cols := v.Rows(), v.Cols()

	aRowLabels := labelsRange(handle, true, 0, h1)
	aColLabels := labelsRange(handle, false, 0, w1)
	bRowLabels := labelsRange(handle, true, h1, rows)
	bColLabels := labelsRange(handle, false, w1, cols)

	var extraColA, extraRowA, extraColB, extraRowB *marker
	if kind != "1-sum" {
		if uTR, wTR, trNZ := rank1Vectors(v, 0, h1, w1, cols); trNZ {
			id := marks.alloc()
			extraColA = &marker{label: id, vec: uTR}
			extraRowB = &marker{label: id, vec: wTR}
		}
		if uBL, wBL, blNZ := rank1Vectors(v, h1, rows, 0, w1); blNZ {
			id := marks.alloc()
			extraRowA = &marker{label: id, vec: wBL}
			extraColB = &marker{label: id, vec: uBL}
		}
	}

	matA, handleA, err := assembleChild(v, 0, h1, 0, w1, aRowLabels, aColLabels, extraColA, extraRowA)
	if err != nil {
		return false, nil, err
	}
	matB, handleB, err := assembleChild(v, h1, rows, w1, cols, bRowLabels, bColLabels, extraColB, extraRowB)
	if err != nil {
		return false, nil, err
	}

	// Extra-label propagation (spec.md §4.8): copied unchanged to both
	// children for every separation kind, 1-separations included; a freshly
	// minted marker is itself an "extra" element introduced by this split.
	extraA := append(append([]int{}, extraLabels...), markerLabelsFor(extraColA, extraRowA)...)
	extraB := append(append([]int{}, extraLabels...), markerLabelsFor(extraColB, extraRowB)...)

	decomplog.Split(kind, matA.Rows(), matA.Cols(), matB.Rows(), matB.Cols())

	regA, nodeA, err := decompose(core.NewView(matA), handleA, extraA, buildTree, marks)
	if err != nil {
		return false, nil, err
	}
	if !buildTree && !regA {
		return false, nil, nil
	}

	regB, nodeB, err := decompose(core.NewView(matB), handleB, extraB, buildTree, marks)
	if err != nil {
		return false, nil, err
	}

	var kindEnum NodeKind
	switch kind {
	case "1-sum":
		kindEnum = KindSum1
	case "2-sum":
		kindEnum = KindSum2
	default:
		kindEnum = KindSum3
	}
	node := &Node{Kind: kindEnum, Rows: rows, Cols: cols, First: nodeA, Second: nodeB}
	if buildTree {
		node.Labels = append([]int{}, handle.AllLabels()...)
		node.ExtraLabels = append([]int{}, extraLabels...)
	}
	return regA && regB, node, nil
}
