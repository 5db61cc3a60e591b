package core_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wheelMatrix(t *testing.T) *core.Matrix {
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

func TestMatrixAtSet(t *testing.T) {
	m := wheelMatrix(t)
	assert.EqualValues(t, 1, m.At(1, 2))
	assert.EqualValues(t, 0, m.At(0, 2))

	err := m.Set(0, 0, 2)
	assert.ErrorIs(t, err, core.ErrBadEntry)

	_, err = m.TryAt(5, 0)
	assert.ErrorIs(t, err, core.ErrIndexOutOfBounds)
}

func TestMatrixSupportAndViolation(t *testing.T) {
	_, err := core.NewMatrix(1, 1, core.DomainSigned)
	require.NoError(t, err)
	// Set rejects out-of-domain values, so a matrix filled through Set
	// never reports a domain violation.
	raw, _ := core.NewMatrix(2, 2, core.DomainBinary)
	_ = raw
	m2, err := core.NewMatrix(2, 2, core.DomainSigned)
	require.NoError(t, err)
	require.NoError(t, m2.Set(0, 0, -1))
	require.NoError(t, m2.Set(0, 1, 1))
	require.NoError(t, m2.Set(1, 0, 0))
	require.NoError(t, m2.Set(1, 1, 1))
	sup := m2.Support()
	assert.EqualValues(t, 1, sup.At(0, 0))
	assert.EqualValues(t, 0, sup.At(1, 0))

	_, _, _, found := m2.FirstDomainViolation()
	assert.False(t, found)
}

func TestPermutationInverseCompose(t *testing.T) {
	p := core.IdentityPermutation(4)
	p.Swap(0, 3)
	p.Swap(1, 2)
	inv := p.Inverse()
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, inv.At(p.At(i)))
	}

	q := core.IdentityPermutation(4)
	q.Swap(0, 1)
	r := p.Compose(q)
	for i := 0; i < 4; i++ {
		assert.Equal(t, p.At(q.At(i)), r.At(i))
	}
}

func TestPermutationMoveToFront(t *testing.T) {
	p := core.IdentityPermutation(5)
	moved := p.MoveToFront(0, 5, func(u int) bool { return u%2 == 0 })
	assert.Equal(t, 3, moved)
	// evens (0,2,4) now occupy positions 0..2 in original relative order.
	assert.Equal(t, []int{0, 2, 4}, []int{p.At(0), p.At(1), p.At(2)})
}

func TestViewTransposeAndPermute(t *testing.T) {
	m := wheelMatrix(t)
	v := core.NewView(m)
	v.SwapRows(0, 2)
	assert.EqualValues(t, m.At(2, 0), v.At(0, 0))

	tv := v.Transposed()
	assert.Equal(t, v.Cols(), tv.Rows())
	assert.Equal(t, v.At(1, 2), tv.At(2, 1))
}

func TestViewModifierMasking(t *testing.T) {
	m := wheelMatrix(t)
	v := core.NewView(m).WithModifier(func(row, col int, orig int8) int8 {
		if row == 0 {
			return 0
		}
		return orig
	})
	assert.EqualValues(t, 0, v.At(0, 0))
	assert.EqualValues(t, m.At(1, 1), v.At(1, 1))
}

func TestMatroidHandlePivotSwapsLabels(t *testing.T) {
	m := wheelMatrix(t)
	handle := core.NewMatroidHandle(3, 3)
	v := core.NewView(m)

	rowLabelBefore := handle.RowLabel(0)
	colLabelBefore := handle.ColLabel(0)

	require.NoError(t, core.Pivot(v, handle, 0, 0))

	assert.Equal(t, colLabelBefore, handle.RowLabel(0))
	assert.Equal(t, rowLabelBefore, handle.ColLabel(0))
}

func TestPivotOnZeroRejected(t *testing.T) {
	m := wheelMatrix(t)
	handle := core.NewMatroidHandle(3, 3)
	v := core.NewView(m)
	err := core.Pivot(v, handle, 2, 0) // (2,0) is zero in the wheel block
	assert.ErrorIs(t, err, core.ErrPivotOnZero)
}
