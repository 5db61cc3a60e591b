package bipartite

import "github.com/discopt/cmr-sub000/core"

// Unreached and RegisteredTarget are the two BFS sentinel distances of
// spec.md §3 "BFS node": -1 means the node was never reached, -2 means it
// was registered as an end node before the search started but has not
// been reached yet.
const (
	Unreached        = -1
	RegisteredTarget = -2
)

// Node pairs a BFS distance with the predecessor node index that
// discovered it. A start node is its own predecessor.
type Node struct {
	Distance    int
	Predecessor int
}

// Result is the BFS output: one Node per node index in [0, dims.N()), and
// whether the search goal was met.
type Result struct {
	Nodes []Node
	Found bool
}

// edgeAt reports whether the bipartite edge between node indices a and b
// (a row node and a column node, in either order) is present in v,
// consulting the view's modifier if any, per spec.md §4.2's "virtual
// matrix" contract: BFS must consult only the displayed value.
func edgeAt(v *core.View, dims Dims, a, b int) bool {
	row, col := dims.EdgeCoords(a, b)
	return v.At(row, col) != 0
}

// BFS runs a shortest-path breadth-first search on the bipartite graph
// whose edges are v's nonzero entries (row nodes vs. column nodes under
// dims), from the given start nodes. If reachAll, the search continues
// until every node in ends has been reached (Found reports whether it
// succeeded); otherwise it stops as soon as any single end node is
// reached. starts and ends may overlap.
//
// Grounded on original_source/src/bipartite_graph_bfs.hpp: start nodes
// begin at distance 0 with themselves as predecessor; end nodes are
// pre-registered at RegisteredTarget so a caller can distinguish "never
// targeted" from "targeted but not yet reached" if the search stops
// early. Once the queue is exhausted, every end node still unreached is
// reset to Unreached. Neighbors are enqueued in row-index order then column-index
// order (row nodes before column nodes, ascending within each), per
// spec.md §5's ordering guarantee.
func BFS(v *core.View, dims Dims, starts, ends []int, reachAll bool) Result {
	n := dims.N()
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = Node{Distance: Unreached, Predecessor: -1}
	}

	remaining := map[int]bool{}
	for _, e := range ends {
		nodes[e].Distance = RegisteredTarget
		remaining[e] = true
	}

	queue := make([]int, 0, n)
	visited := make([]bool, n)
	anyFound := false

	for _, s := range starts {
		if visited[s] {
			continue
		}
		visited[s] = true
		nodes[s].Distance = 0
		nodes[s].Predecessor = s
		queue = append(queue, s)
		if remaining[s] {
			delete(remaining, s)
			anyFound = true
		}
	}

	needed := len(remaining)
	goalMet := func() bool {
		if reachAll {
			return needed == 0
		}
		return anyFound
	}

	head := 0
	for head < len(queue) && !goalMet() {
		cur := queue[head]
		head++
		dist := nodes[cur].Distance

		// Neighbors: rows first (ascending), then columns (ascending),
		// matching spec.md §5's enqueue order.
		if dims.IsRow(cur) {
			for c := 0; c < dims.W; c++ {
				nb := dims.ColNode(c)
				if visited[nb] || !edgeAt(v, dims, cur, nb) {
					continue
				}
				visited[nb] = true
				nodes[nb].Distance = dist + 1
				nodes[nb].Predecessor = cur
				queue = append(queue, nb)
				if remaining[nb] {
					delete(remaining, nb)
					needed--
					anyFound = true
				}
			}
		} else {
			for r := 0; r < dims.H; r++ {
				nb := dims.RowNode(r)
				if visited[nb] || !edgeAt(v, dims, cur, nb) {
					continue
				}
				visited[nb] = true
				nodes[nb].Distance = dist + 1
				nodes[nb].Predecessor = cur
				queue = append(queue, nb)
				if remaining[nb] {
					delete(remaining, nb)
					needed--
					anyFound = true
				}
			}
		}
	}

	// An exhausted queue means every reachable node was visited: the end
	// nodes still pending are unreachable.
	if head >= len(queue) {
		for e := range remaining {
			nodes[e].Distance = Unreached
		}
	}

	return Result{Nodes: nodes, Found: goalMet()}
}

// Path walks predecessors from end back to its reaching start, inclusive,
// in start-to-end order. Precondition: nodes[end].Distance >= 0.
func Path(nodes []Node, end int) []int {
	var rev []int
	cur := end
	for {
		rev = append(rev, cur)
		pred := nodes[cur].Predecessor
		if pred == cur {
			break
		}
		cur = pred
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}
