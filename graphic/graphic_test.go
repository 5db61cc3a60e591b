package graphic_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/graphic"
	"github.com/discopt/cmr-sub000/nestedminor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewW3HasSixLabeledEdges(t *testing.T) {
	g := graphic.NewW3([3]int{-1, -2, -3}, [3]int{1, 2, 3})
	edges := g.Edges()
	require.Len(t, edges, 6)
	labels := map[int]bool{}
	for _, e := range edges {
		labels[e.Label] = true
	}
	for _, want := range []int{-1, -2, -3, 1, 2, 3} {
		assert.True(t, labels[want], "missing label %d", want)
	}
	// four vertices: every vertex has degree 3 in W3.
	for _, v := range g.Vertices() {
		assert.Equal(t, 3, g.Degree(v))
	}
}

func TestBuildOneColumnExtendsAlongPath(t *testing.T) {
	// the two spokes labeled -1,-2 form a path through the hub; a new
	// column whose support is exactly those two rows should close a
	// triangle between their far endpoints.
	tags := []nestedminor.Tag{
		{Kind: nestedminor.TagOneColumn, ColLabels: []int{4}},
	}
	support := func(label int) []int {
		if label == 4 {
			return []int{-1, -2}
		}
		return nil
	}
	built, ok := graphic.Build([3]int{-1, -2, -3}, [3]int{1, 2, 3}, tags, support)
	require.True(t, ok)
	_, found := built.EdgeByLabel(4)
	assert.True(t, found)
}

func TestBuildOneColumnFailsOnNonPath(t *testing.T) {
	// the three spokes meet only at the hub, a star not a path.
	tags := []nestedminor.Tag{
		{Kind: nestedminor.TagOneColumn, ColLabels: []int{4}},
	}
	support := func(label int) []int { return []int{-1, -2, -3} }
	_, ok := graphic.Build([3]int{-1, -2, -3}, [3]int{1, 2, 3}, tags, support)
	assert.False(t, ok)
}

func TestBuildOneRowStarCase(t *testing.T) {
	// the three rim edges form a triangle (a cycle, not a star), so a
	// new row referencing all three columns should fail the star test
	// but still succeed via the articulation-point case since the hub
	// is not among them: exercise the simpler, unambiguous star case
	// instead by referencing the two rim edges (columns 1 and 2), which
	// share one rim vertex.
	tags := []nestedminor.Tag{
		{Kind: nestedminor.TagOneRow, RowLabels: []int{-4}},
	}
	support := func(label int) []int { return []int{1, 2} }
	built, ok := graphic.Build([3]int{-1, -2, -3}, [3]int{1, 2, 3}, tags, support)
	require.True(t, ok)
	_, found := built.EdgeByLabel(-4)
	assert.True(t, found)
}
