// Package bipartite provides the fixed row/column <-> node-index mapping
// used throughout the pipeline, and a shortest-path BFS over the
// bipartite graph whose edges are the nonzero entries of a (possibly
// modifier-masked) core.View.
//
// Grounded on original_source/src/bipartite_graph_bfs.hpp and
// original_source/src/cmr/matroid_internal.h's row/column index
// convention. BFS takes its start set, end set and reachAll flag as plain
// arguments and keeps its FIFO queue in an int slice.
package bipartite

// Dims is a pair (h, w) with the fixed mapping row r -> r, column
// c -> h+c, per spec.md §3 "Bipartite-graph dimensions".
type Dims struct {
	H, W int
}

// NewDims constructs the node-index mapping for an h x w matrix view.
func NewDims(h, w int) Dims { return Dims{H: h, W: w} }

// N is the total node count h+w.
func (d Dims) N() int { return d.H + d.W }

// RowNode maps row index r to its node index.
func (d Dims) RowNode(r int) int { return r }

// ColNode maps column index c to its node index.
func (d Dims) ColNode(c int) int { return d.H + c }

// IsRow reports whether node index idx denotes a row.
func (d Dims) IsRow(idx int) bool { return idx < d.H }

// NodeToRow converts a row-node index back to its row index. Precondition:
// IsRow(idx).
func (d Dims) NodeToRow(idx int) int { return idx }

// NodeToCol converts a column-node index back to its column index.
// Precondition: !IsRow(idx).
func (d Dims) NodeToCol(idx int) int { return idx - d.H }

// EdgeCoords converts an adjacent (row-node, col-node) pair — in either
// order — to (row, col) matrix coordinates.
func (d Dims) EdgeCoords(a, b int) (row, col int) {
	if d.IsRow(a) {
		return d.NodeToRow(a), d.NodeToCol(b)
	}
	return d.NodeToRow(b), d.NodeToCol(a)
}
