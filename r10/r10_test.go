package r10_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/r10"
	"github.com/stretchr/testify/require"
)

func buildMatrix(t *testing.T, rows [][]int8) *core.View {
	t.Helper()
	m, err := core.NewMatrix(len(rows), len(rows[0]), core.DomainBinary)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	return core.NewView(m)
}

func TestIsAcceptsCanonicalWeight3Circulant(t *testing.T) {
	v := buildMatrix(t, [][]int8{
		{1, 1, 0, 0, 1},
		{1, 1, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 1, 1},
		{1, 0, 0, 1, 1},
	})
	require.True(t, r10.Is(v))
}

func TestIsAcceptsRowPermutedCopy(t *testing.T) {
	// canonical weight-3 circulant with rows 0 and 1 swapped.
	v := buildMatrix(t, [][]int8{
		{1, 1, 1, 0, 0},
		{1, 1, 0, 0, 1},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 1, 1},
		{1, 0, 0, 1, 1},
	})
	require.True(t, r10.Is(v))
}

func TestIsRejectsWrongSize(t *testing.T) {
	v := buildMatrix(t, [][]int8{{1, 0}, {0, 1}})
	require.False(t, r10.Is(v))
}

func TestIsRejectsNonUniformRowWeights(t *testing.T) {
	v := buildMatrix(t, [][]int8{
		{1, 1, 1, 1, 1},
		{1, 1, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 1, 1},
		{1, 0, 0, 1, 1},
	})
	require.False(t, r10.Is(v))
}
