// Package graphic implements the graphicness/cographicness builder of
// spec.md §4.5: given a matroid's nested-minor sequence (wheel.go's
// canonical W3 plus nestedminor's extension tags), either construct a
// graph whose cycle matroid is the matroid, labeling edges with the
// matroid element labels, or report "not graphic". Cographicness reuses
// the same builder on the transposed sequence.
//
// Grounded on lvlath/core.Graph's Vertex/Edge/adjacency-map shape
// (package core), stripped of its sync.RWMutex machinery: a Graph here
// is built and consumed entirely within one decomposition step and never
// crosses goroutines.
package graphic

import (
	"sort"

	"github.com/discopt/cmr-sub000/nestedminor"
)

// Edge is one labeled edge of the constructed graph: its two endpoint
// vertex ids and the matroid element label it represents. Exactly one
// edge exists per matroid element once the build succeeds.
type Edge struct {
	ID    int
	Label int
	U, V  int
}

// Graph is a simple labeled multigraph over sequential int vertex ids.
type Graph struct {
	nextVertex int
	nextEdge   int
	adj        map[int]map[int]int // vertex -> neighbor -> edge id
	edges      map[int]*Edge
	byLabel    map[int]*Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: map[int]map[int]int{}, edges: map[int]*Edge{}, byLabel: map[int]*Edge{}}
}

// AddVertex allocates and returns a fresh vertex id.
func (g *Graph) AddVertex() int {
	v := g.nextVertex
	g.nextVertex++
	g.adj[v] = map[int]int{}
	return v
}

// AddEdge inserts an edge labeled with a matroid element between u and v.
func (g *Graph) AddEdge(u, v, label int) *Edge {
	id := g.nextEdge
	g.nextEdge++
	e := &Edge{ID: id, Label: label, U: u, V: v}
	g.edges[id] = e
	g.byLabel[label] = e
	g.adj[u][v] = id
	g.adj[v][u] = id
	return e
}

// RemoveEdge deletes an edge by id; a no-op if it does not exist.
func (g *Graph) RemoveEdge(id int) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.adj[e.U], e.V)
	delete(g.adj[e.V], e.U)
	delete(g.edges, id)
	delete(g.byLabel, e.Label)
}

// Neighbors returns v's adjacent vertices in ascending order.
func (g *Graph) Neighbors(v int) []int {
	out := make([]int, 0, len(g.adj[v]))
	for nb := range g.adj[v] {
		out = append(out, nb)
	}
	sort.Ints(out)
	return out
}

// Degree reports how many edges touch v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// EdgeBetween returns the edge joining u and v, if any.
func (g *Graph) EdgeBetween(u, v int) (*Edge, bool) {
	id, ok := g.adj[u][v]
	if !ok {
		return nil, false
	}
	return g.edges[id], true
}

// EdgeByLabel returns the edge carrying the given matroid element label.
func (g *Graph) EdgeByLabel(label int) (*Edge, bool) {
	e, ok := g.byLabel[label]
	return e, ok
}

// Vertices returns every live vertex id in ascending order.
func (g *Graph) Vertices() []int {
	out := make([]int, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Edges returns every edge, ordered by insertion id.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewW3 builds the canonical wheel-of-3 graph of spec.md §4.5's
// initialization: a hub vertex, a 3-cycle rim, spokes labeled with the
// three initial row labels, rim edges labeled with the three initial
// column labels.
func NewW3(rowLabels, colLabels [3]int) *Graph {
	g := NewGraph()
	hub := g.AddVertex()
	var rim [3]int
	for i := range rim {
		rim[i] = g.AddVertex()
	}
	for i := 0; i < 3; i++ {
		g.AddEdge(hub, rim[i], rowLabels[i])
	}
	for i := 0; i < 3; i++ {
		g.AddEdge(rim[i], rim[(i+1)%3], colLabels[i])
	}
	return g
}

// Build replays a nested-minor tag sequence onto a freshly built W3
// graph, per spec.md §4.5's "per-extension step". It returns the
// constructed graph and true if every tag applied successfully, or false
// (with a partially built graph that must be discarded) at the first tag
// that could not be realized as a graph operation.
func Build(rowLabels, colLabels [3]int, tags []nestedminor.Tag, support func(label int) []int) (*Graph, bool) {
	g := NewW3(rowLabels, colLabels)
	for _, tag := range tags {
		if !applyTag(g, tag, support) {
			return g, false
		}
	}
	return g, true
}

// applyTag dispatches one nested-minor tag to its graph construction,
// per spec.md §4.5.
func applyTag(g *Graph, tag nestedminor.Tag, support func(label int) []int) bool {
	switch tag.Kind {
	case nestedminor.TagOneColumn:
		return extendOneColumn(g, support(tag.ColLabels[0]), tag.ColLabels[0])
	case nestedminor.TagOneRow:
		return extendOneRow(g, support(tag.RowLabels[0]), tag.RowLabels[0])
	case nestedminor.TagOneRowOneColumn:
		return extendComposite(g, tag.RowLabels, tag.ColLabels, support)
	case nestedminor.TagTwoRowsOneColumn:
		return extendComposite(g, tag.RowLabels, tag.ColLabels, support)
	case nestedminor.TagOneRowTwoColumns:
		return extendComposite(g, tag.RowLabels, tag.ColLabels, support)
	default:
		return false
	}
}

// extendOneColumn implements spec.md §4.5's OneColumn step: the labels
// of rows with a 1 in the new column must name existing edges forming a
// simple path; the new edge joins that path's two endpoints.
func extendOneColumn(g *Graph, rowLabels []int, newLabel int) bool {
	edges, ok := edgesByLabels(g, rowLabels)
	if !ok {
		return false
	}
	endpoints, ok := simplePathEndpoints(edges)
	if !ok {
		return false
	}
	g.AddEdge(endpoints[0], endpoints[1], newLabel)
	return true
}

// extendOneRow implements spec.md §4.5's OneRow step: try the star
// case, then the articulation-point case, then fail.
func extendOneRow(g *Graph, colLabels []int, newLabel int) bool {
	edges, ok := edgesByLabels(g, colLabels)
	if !ok {
		return false
	}
	if v, ok := starCenter(edges); ok {
		extendStar(g, edges, v, newLabel)
		return true
	}
	return extendArticulation(g, edges, newLabel)
}

// extendComposite handles the three combined tag kinds (OneRowOneColumn,
// TwoRowsOneColumn, OneRowTwoColumns) per spec.md §4.5: the minor edges
// parallel/unit to the new row(s)/column(s) must share a common
// endpoint, which is subdivided to attach the new element(s). The exact
// subdivision pattern these three kinds use is left underspecified by
// spec.md beyond "determined by the preceding nested-minor step"; this
// resolves the ambiguity (recorded in DESIGN.md) by requiring the union
// of the new row(s)' and column(s)' reference supports to identify a
// single common vertex, generalizing the plain OneRow star case to a
// mixed row/column frontier.
func extendComposite(g *Graph, rowLabels, colLabels []int, support func(label int) []int) bool {
	var refLabels []int
	refLabels = append(refLabels, rowLabels...)
	refLabels = append(refLabels, colLabels...)
	if len(refLabels) == 0 {
		return false
	}
	var all []int
	for _, lbl := range refLabels {
		all = append(all, support(lbl)...)
	}
	edges, ok := edgesByLabels(g, dedupeInts(all))
	if !ok || len(edges) == 0 {
		return false
	}
	v, ok := starCenter(edges)
	if !ok {
		return false
	}
	vp := g.AddVertex()
	for _, lbl := range refLabels {
		g.AddEdge(v, vp, lbl)
		v = vp
		vp = g.AddVertex()
	}
	return true
}

func dedupeInts(in []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func edgesByLabels(g *Graph, labels []int) ([]*Edge, bool) {
	out := make([]*Edge, 0, len(labels))
	for _, lbl := range labels {
		e, ok := g.EdgeByLabel(lbl)
		if !ok {
			return nil, false
		}
		out = append(out, e)
	}
	return out, true
}

// simplePathEndpoints reports whether edges form a simple path (every
// vertex degree <=2, exactly two degree-1 vertices, connected), and if
// so returns those two endpoints in ascending order.
func simplePathEndpoints(edges []*Edge) ([2]int, bool) {
	if len(edges) == 0 {
		return [2]int{}, false
	}
	degree := map[int]int{}
	adj := map[int][]int{}
	for _, e := range edges {
		degree[e.U]++
		degree[e.V]++
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	var ends []int
	for v, d := range degree {
		if d > 2 {
			return [2]int{}, false
		}
		if d == 1 {
			ends = append(ends, v)
		}
	}
	if len(ends) != 2 {
		return [2]int{}, false
	}
	if !connected(ends[0], adj, len(degree)) {
		return [2]int{}, false
	}
	sort.Ints(ends)
	return [2]int{ends[0], ends[1]}, true
}

func connected(start int, adj map[int][]int, total int) bool {
	visited := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range adj[v] {
			if !visited[nb] {
				visited[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return len(visited) == total
}

// starCenter reports whether edges all share a single common vertex,
// returning it.
func starCenter(edges []*Edge) (int, bool) {
	if len(edges) == 0 {
		return 0, false
	}
	candidates := map[int]bool{edges[0].U: true, edges[0].V: true}
	for _, e := range edges[1:] {
		next := map[int]bool{}
		if candidates[e.U] {
			next[e.U] = true
		}
		if candidates[e.V] {
			next[e.V] = true
		}
		candidates = next
		if len(candidates) == 0 {
			return 0, false
		}
	}
	out := -1
	for v := range candidates {
		if out == -1 || v < out {
			out = v
		}
	}
	return out, true
}

// extendStar implements spec.md §4.5's OneRow case 1: detach O's
// far endpoints onto a fresh vertex v', reconnect O's edges to v', and
// join v to v' with the new row's label.
func extendStar(g *Graph, edges []*Edge, v, newLabel int) {
	vp := g.AddVertex()
	for _, e := range edges {
		other := e.U
		if other == v {
			other = e.V
		}
		g.RemoveEdge(e.ID)
		g.AddEdge(vp, other, e.Label)
	}
	g.AddEdge(v, vp, newLabel)
}

// extendArticulation implements spec.md §4.5's OneRow case 2: find a
// vertex a, an endpoint of every edge in O, that is an articulation
// point of the graph with O's edges removed, and such that the
// components of G \ {a} \ O 2-color consistently under the auxiliary
// quotient graph joined by O's edges. If so, split a's O-incident edges
// by color onto a fresh vertex v' and join a to v' with the new label.
func extendArticulation(g *Graph, edges []*Edge, newLabel int) bool {
	removed := map[int]bool{}
	for _, e := range edges {
		removed[e.ID] = true
	}

	a, ok := uniqueCutVertex(g, removed, edges)
	if !ok {
		return false
	}

	comp := componentsWithout(g, removed, a)
	color, ok := colorQuotient(comp, edges, a)
	if !ok {
		return false
	}

	vp := g.AddVertex()
	for _, e := range edges {
		other := e.U
		if other == a {
			other = e.V
		}
		if color[comp[other]] != 1 {
			continue
		}
		g.RemoveEdge(e.ID)
		g.AddEdge(vp, other, e.Label)
	}
	g.AddEdge(a, vp, newLabel)
	return true
}

// uniqueCutVertex finds the single vertex that is an endpoint of every
// edge in O and an articulation point of G with O's edges removed.
func uniqueCutVertex(g *Graph, removed map[int]bool, edges []*Edge) (int, bool) {
	candidates := map[int]bool{edges[0].U: true, edges[0].V: true}
	for _, e := range edges[1:] {
		next := map[int]bool{}
		if candidates[e.U] {
			next[e.U] = true
		}
		if candidates[e.V] {
			next[e.V] = true
		}
		candidates = next
	}
	var found int
	count := 0
	for v := range candidates {
		if isArticulation(g, removed, v) {
			found = v
			count++
		}
	}
	if count != 1 {
		return 0, false
	}
	return found, true
}

// isArticulation reports whether removing v (and O's edges) disconnects
// the rest of the graph, by a DFS reachability count from any one
// remaining neighbor.
func isArticulation(g *Graph, removed map[int]bool, v int) bool {
	var start = -1
	for _, nb := range g.Neighbors(v) {
		id := g.adj[v][nb]
		if removed[id] {
			continue
		}
		start = nb
		break
	}
	if start == -1 {
		return false
	}
	total := 0
	for _, u := range g.Vertices() {
		if u != v {
			total++
		}
	}
	visited := map[int]bool{start: true, v: true}
	stack := []int{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range g.Neighbors(u) {
			id := g.adj[u][nb]
			if removed[id] || visited[nb] {
				continue
			}
			visited[nb] = true
			stack = append(stack, nb)
		}
	}
	return len(visited)-1 < total
}

// componentsWithout labels the connected components of G \ {v} \ O,
// mapping every other vertex to a component index.
func componentsWithout(g *Graph, removed map[int]bool, v int) map[int]int {
	comp := map[int]int{}
	next := 0
	for _, start := range g.Vertices() {
		if start == v {
			continue
		}
		if _, seen := comp[start]; seen {
			continue
		}
		next++
		comp[start] = next
		stack := []int{start}
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range g.Neighbors(u) {
				if nb == v {
					continue
				}
				id := g.adj[u][nb]
				if removed[id] {
					continue
				}
				if _, seen := comp[nb]; seen {
					continue
				}
				comp[nb] = next
				stack = append(stack, nb)
			}
		}
	}
	return comp
}

// colorQuotient 2-colors the quotient graph whose nodes are the
// components of G \ {a} \ O and whose edges are O's edges (each joining
// the components its two non-a-ish endpoints fall into, or a's own
// side). Returns false if the quotient graph is not bipartite.
func colorQuotient(comp map[int]int, edges []*Edge, a int) (map[int]int, bool) {
	adj := map[int]map[int]bool{}
	for _, e := range edges {
		u, v := e.U, e.V
		if u == a || v == a {
			continue
		}
		cu, cv := comp[u], comp[v]
		if cu == cv {
			continue
		}
		if adj[cu] == nil {
			adj[cu] = map[int]bool{}
		}
		if adj[cv] == nil {
			adj[cv] = map[int]bool{}
		}
		adj[cu][cv] = true
		adj[cv][cu] = true
	}
	color := map[int]int{}
	for c := range adj {
		if _, done := color[c]; done {
			continue
		}
		color[c] = 0
		queue := []int{c}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for nb := range adj[cur] {
				if col, seen := color[nb]; seen {
					if col == color[cur] {
						return nil, false
					}
					continue
				}
				color[nb] = 1 - color[cur]
				queue = append(queue, nb)
			}
		}
	}
	for _, c := range comp {
		if _, seen := color[c]; !seen {
			color[c] = 0
		}
	}
	return color, true
}
