package violator_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/decomposition"
	"github.com/discopt/cmr-sub000/violator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSigned(t *testing.T, rows [][]int8) *core.Matrix {
	t.Helper()
	m, err := core.NewMatrix(len(rows), len(rows[0]), core.DomainSigned)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	return m
}

func TestDeterminant2x2KnownValue(t *testing.T) {
	m := buildSigned(t, [][]int8{{1, -1}, {1, 0}})
	det, err := violator.Determinant(m)
	require.NoError(t, err)
	assert.Equal(t, int64(1), det)
}

func TestDeterminantSingularMatrixIsZero(t *testing.T) {
	m := buildSigned(t, [][]int8{{1, 1}, {1, 1}})
	det, err := violator.Determinant(m)
	require.NoError(t, err)
	assert.Equal(t, int64(0), det)
}

func TestDeterminantRequiresSquare(t *testing.T) {
	m := buildSigned(t, [][]int8{{1, 1, 0}, {0, 1, 1}})
	_, err := violator.Determinant(m)
	assert.Error(t, err)
}

func TestFindSmallestIrregularLeafPicksSmallerSide(t *testing.T) {
	small := &decomposition.Node{Kind: decomposition.KindIrregularLeaf, Labels: []int{-1, -2, 1}}
	large := &decomposition.Node{Kind: decomposition.KindIrregularLeaf, Labels: []int{-1, -2, -3, 1, 2}}
	sum := &decomposition.Node{Kind: decomposition.KindSum2, First: large, Second: small}

	labels, ok := violator.FindSmallestIrregularLeaf(sum)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{-1, -2, 1}, labels)
}

func TestFindSmallestIrregularLeafFullyRegularReportsNotFound(t *testing.T) {
	regular := &decomposition.Node{Kind: decomposition.KindRegularLeaf, Graphic: true}
	_, ok := violator.FindSmallestIrregularLeaf(regular)
	assert.False(t, ok)
}

// A 6x6 identity matrix decomposes as a chain of 1-sums all the way down
// to the <=2 base case (see decomposition's own identity-chain test):
// every single-element drop along the way still leaves a regular
// submatrix, so Search must never accept a drop and must return the
// original full set unchanged.
func TestSearchNeverDropsWhenEverythingIsRegular(t *testing.T) {
	rows := make([][]int8, 6)
	for i := range rows {
		rows[i] = make([]int8, 6)
		rows[i][i] = 1
	}
	full := buildSigned(t, rows)
	handle := core.NewMatroidHandle(6, 6)
	labels := handle.AllLabels()

	sub, err := violator.Search(full, labels)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, sub.Rows)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, sub.Cols)
}
