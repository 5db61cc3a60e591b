package wheel_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicalW3(t *testing.T) *core.Matrix {
	t.Helper()
	m, err := core.NewMatrix(3, 3, core.DomainBinary)
	require.NoError(t, err)
	rows := [][]int8{{1, 1, 0}, {1, 1, 1}, {0, 1, 1}}
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	return m
}

func TestFindOnCanonicalW3ReportsNoSeparation(t *testing.T) {
	m := canonicalW3(t)
	v := core.NewView(m)
	handle := core.NewMatroidHandle(3, 3)

	res, err := wheel.Find(v, handle)
	require.NoError(t, err)
	assert.True(t, res.NoSeparation)
	// No separation was found on an already-3x3 matrix: the block itself
	// must still carry seven ones (the W3 pattern's nonzero count).
	ones := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if v.At(i, j) != 0 {
				ones++
			}
		}
	}
	assert.Equal(t, 7, ones)
}

func TestFindReportsOneSeparationOnZeroRow(t *testing.T) {
	m, err := core.NewMatrix(3, 3, core.DomainBinary)
	require.NoError(t, err)
	rows := [][]int8{{0, 0, 0}, {1, 1, 1}, {0, 1, 1}}
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	v := core.NewView(m)
	handle := core.NewMatroidHandle(3, 3)

	res, err := wheel.Find(v, handle)
	require.NoError(t, err)
	assert.False(t, res.NoSeparation)
	assert.Equal(t, wheel.Sep1, res.Sep.Kind)
	assert.Equal(t, 1, res.Sep.H1)
	assert.Equal(t, 0, res.Sep.W1)
}

func TestFindRejectsUndersizedMatrix(t *testing.T) {
	m, err := core.NewMatrix(2, 2, core.DomainBinary)
	require.NoError(t, err)
	v := core.NewView(m)
	handle := core.NewMatroidHandle(2, 2)

	_, err = wheel.Find(v, handle)
	assert.Error(t, err)
}
