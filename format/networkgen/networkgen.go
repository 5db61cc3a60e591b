// Package networkgen builds the unsigned {0,1} support of network
// matrices of random spanning trees, for use as deterministic test fixtures (spec.md §8
// scenario 3) -- not part of the core decision pipeline.
//
// Grounded on original_source/src/gen_network.hpp's
// network_matrix_generator (build a random spanning tree, then read off
// its path matrix), simplified here to the path-indicator matrix of a
// randomly rooted tree -- which is exactly the {0,1} support of a
// network matroid -- signed afterward by the core signing package's
// repair, rather than re-deriving gen_network.hpp's own BFS-tree-edge
// orientation convention by hand.
//
// Following lvlath/builder's stochastic-constructor convention
// (WithRand/ErrNeedRandSource), every entry point here takes an explicit
// *rand.Rand; none of this package reads the global math/rand state.
package networkgen

import (
	"errors"
	"math/rand"

	"github.com/discopt/cmr-sub000/core"
)

// ErrNeedRandSource indicates Generate was called with a nil *rand.Rand.
var ErrNeedRandSource = errors.New("networkgen: rng is required")

// ErrTooFewNodes indicates nodes < 2, too small to contain any edge.
var ErrTooFewNodes = errors.New("networkgen: need at least 2 nodes")

// Generate builds the (nodes-1) x (nodes-1) path-indicator matrix of a
// random tree rooted at node 0: row i is tree edge i (connecting node
// i+1 to a uniformly random earlier node), column j is node j+1's
// root path, and entry (i,j) is 1 iff edge i lies on that path. This is
// the {0,1} support of a network matroid -- a spanning tree of `nodes`
// nodes, matching spec.md §8 scenario 3 -- and is always graphic
// (callers should run it through signing.Repair/tu.Sign to obtain a
// genuinely TU-signed fixture; Generate itself only produces the
// unsigned support since the signing convention is orthogonal to the
// tree's shape).
func Generate(rng *rand.Rand, nodes int) (*core.Matrix, error) {
	if rng == nil {
		return nil, ErrNeedRandSource
	}
	if nodes < 2 {
		return nil, ErrTooFewNodes
	}

	n := nodes - 1
	parent := make([]int, nodes)
	parent[0] = -1
	for i := 1; i < nodes; i++ {
		parent[i] = rng.Intn(i)
	}

	m, err := core.NewMatrix(n, n, core.DomainSigned)
	if err != nil {
		return nil, err
	}
	for node := 1; node < nodes; node++ {
		col := node - 1
		for cur := node; cur != 0; cur = parent[cur] {
			row := cur - 1
			if err := m.Set(row, col, 1); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
