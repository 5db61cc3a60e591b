package signing_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/signing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inconsistentSigned builds a 3x2 signed matrix whose (1,1) entry carries
// the wrong sign: the 2x2 minor of the first two rows/columns has
// determinant -2, and flipping (1,1) to +1 brings every 2x2 minor's
// determinant into {-1, 0, +1}: [[1,1],[1,-1],[0,1]].
func inconsistentSigned(t *testing.T) *core.Matrix {
	t.Helper()
	m, err := core.NewMatrix(3, 2, core.DomainSigned)
	require.NoError(t, err)
	entries := [][]int8{{1, 1}, {1, -1}, {0, 1}}
	for i, row := range entries {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	return m
}

func TestTestDetectsSignViolation(t *testing.T) {
	m := inconsistentSigned(t)
	ok, witness, err := signing.Test(m)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, witness)
	assert.Equal(t, []int{0, 1}, witness.Rows)
	assert.Equal(t, []int{0, 1}, witness.Cols)
}

func TestRepairFixesSignAndTestThenPasses(t *testing.T) {
	m := inconsistentSigned(t)
	changed, err := signing.Repair(m)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.EqualValues(t, 1, m.At(1, 1))

	ok, witness, err := signing.Test(m)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, witness)
}

func TestAlreadySignedMatrixPassesUnchanged(t *testing.T) {
	// A small path-graph incidence pattern: always correctly signed by
	// construction.
	m, err := core.NewMatrix(3, 2, core.DomainSigned)
	require.NoError(t, err)
	entries := [][]int8{{1, 0}, {-1, 1}, {0, -1}}
	for i, row := range entries {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	ok, witness, err := signing.Test(m)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, witness)

	changed, err := signing.Repair(m)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestDisconnectedBlockExtendsWithoutBFS(t *testing.T) {
	// Block-diagonal pattern: column 0 touches only row 0, column 1 only
	// row 1, so handledRows stays behind handledCols and the disconnected
	// branch must be exercised to catch up.
	m, err := core.NewMatrix(2, 2, core.DomainSigned)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 0))
	require.NoError(t, m.Set(1, 0, 0))
	require.NoError(t, m.Set(1, 1, 1))

	ok, witness, err := signing.Test(m)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, witness)
}
