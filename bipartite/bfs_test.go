package bipartite_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/bipartite"
	"github.com/discopt/cmr-sub000/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wheel(t *testing.T) *core.Matrix {
	t.Helper()
	m, err := core.NewMatrix(3, 3, core.DomainBinary)
	require.NoError(t, err)
	rows := [][]int8{{1, 1, 0}, {1, 1, 1}, {0, 1, 1}}
	for i, row := range rows {
		for j, val := range row {
			require.NoError(t, m.Set(i, j, val))
		}
	}
	return m
}

func TestBFSReachesAllEnds(t *testing.T) {
	m := wheel(t)
	v := core.NewView(m)
	dims := bipartite.NewDims(3, 3)

	res := bipartite.BFS(v, dims, []int{dims.RowNode(0)}, []int{dims.ColNode(0), dims.ColNode(2)}, true)
	assert.True(t, res.Found)
	assert.Equal(t, 0, res.Nodes[dims.RowNode(0)].Distance)
	assert.GreaterOrEqual(t, res.Nodes[dims.ColNode(0)].Distance, 0)
	assert.GreaterOrEqual(t, res.Nodes[dims.ColNode(2)].Distance, 0)
}

func TestBFSUnreachableReportsMinusOne(t *testing.T) {
	m, err := core.NewMatrix(2, 2, core.DomainBinary)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	// row 1 / col 1 disconnected from row 0 / col 0
	v := core.NewView(m)
	dims := bipartite.NewDims(2, 2)

	res := bipartite.BFS(v, dims, []int{dims.RowNode(0)}, []int{dims.ColNode(1)}, true)
	assert.False(t, res.Found)
	assert.Equal(t, bipartite.Unreached, res.Nodes[dims.ColNode(1)].Distance)
}

func TestBFSModifierMasking(t *testing.T) {
	m := wheel(t)
	masked := core.NewView(m).WithModifier(func(row, col int, orig int8) int8 {
		if row == 0 || col == 0 {
			return 0
		}
		return orig
	})
	dims := bipartite.NewDims(3, 3)
	res := bipartite.BFS(masked, dims, []int{dims.RowNode(1)}, []int{dims.RowNode(0)}, false)
	assert.False(t, res.Found)
}

func TestPathWalksStartToEnd(t *testing.T) {
	m := wheel(t)
	v := core.NewView(m)
	dims := bipartite.NewDims(3, 3)
	res := bipartite.BFS(v, dims, []int{dims.RowNode(0)}, []int{dims.ColNode(2)}, true)
	require.True(t, res.Found)
	path := bipartite.Path(res.Nodes, dims.ColNode(2))
	assert.Equal(t, dims.RowNode(0), path[0])
	assert.Equal(t, dims.ColNode(2), path[len(path)-1])
}
