package tu_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/tu"
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

// Boundary behavior: 0xn / nx0 matrices are vacuously TU (spec.md §8).
func TestIsTotallyUnimodularZeroDimensionIsVacuouslyTrue(t *testing.T) {
	m, err := core.NewMatrix(0, 3, core.DomainSigned)
	require.NoError(t, err)

	ok, err := tu.IsTotallyUnimodular(m)
	require.NoError(t, err)
	assert.True(t, ok)
}

// Boundary behavior: 1x1 [x] is TU iff x in {-1,0,+1} -- every value a
// DomainSigned Matrix can even hold, so this is always true.
func TestIsTotallyUnimodularSingleEntryMatchesDomain(t *testing.T) {
	for _, v := range []int8{-1, 0, 1} {
		m := buildSigned(t, [][]int8{{v}})
		ok, err := tu.IsTotallyUnimodular(m)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

// spec.md §8 scenario 4: a 3x3 matrix whose signs do not match Camion
// signing of its support (it's the cycle matrix of a 3-cycle signed
// inconsistently) is non-TU on signing grounds alone, before
// decomposition ever runs; the violator is the full matrix.
func TestIsTotallyUnimodularWithViolatorCatchesSigningFailure(t *testing.T) {
	m := buildSigned(t, [][]int8{
		{1, 1, 0},
		{1, 0, 1},
		{0, 1, 1},
	})

	ok, sub, err := tu.IsTotallyUnimodularWithViolator(m)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, sub)
	assert.ElementsMatch(t, []int{0, 1, 2}, sub.Rows)
	assert.ElementsMatch(t, []int{0, 1, 2}, sub.Cols)
}

// The same signing failure must also surface as an irregular leaf from
// the decomposition entry point (spec.md §6 item 2's contract: "on
// false, the tree contains an irregular leaf"), even though
// decomposition itself never ran.
func TestIsTotallyUnimodularWithDecompositionReportsIrregularLeafOnSigningFailure(t *testing.T) {
	m := buildSigned(t, [][]int8{
		{1, 1, 0},
		{1, 0, 1},
		{0, 1, 1},
	})

	ok, node, err := tu.IsTotallyUnimodularWithDecomposition(m)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, node)
	assert.False(t, node.IsRegular())
}

// spec.md §8 scenario 1 (W3): identity(3) next to the canonical wheel
// block, given here in its {0,1} support form and repaired into a valid
// signing first (Sign's own correctness is signing's responsibility, not
// retraced here) -- TU-ness depends only on the support's regularity, so
// whichever signing Sign settles on, the support is what wheel/graphic
// already hand-verify in isolation as a single W3 graphic leaf.
func TestIsTotallyUnimodularAcceptsW3Scenario(t *testing.T) {
	m := buildSigned(t, [][]int8{
		{1, 0, 0, 1, 1, 0},
		{0, 1, 0, 1, 1, 1},
		{0, 0, 1, 0, 1, 1},
	})
	_, err := tu.Sign(m)
	require.NoError(t, err)

	ok, err := tu.IsTotallyUnimodular(m)
	require.NoError(t, err)
	assert.True(t, ok)
}

// spec.md §8 scenario 2 (R10): the canonical weight-3 circulant, already
// hand-verified directly against r10.Is; repaired into a valid signing
// first for the same reason as the W3 scenario above.
func TestIsTotallyUnimodularAcceptsR10Scenario(t *testing.T) {
	m := buildSigned(t, [][]int8{
		{1, 1, 0, 0, 1},
		{1, 1, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 1, 1},
		{1, 0, 0, 1, 1},
	})
	_, err := tu.Sign(m)
	require.NoError(t, err)

	ok, err := tu.IsTotallyUnimodular(m)
	require.NoError(t, err)
	assert.True(t, ok)
}

// IsSigned/Sign round-trip: Sign is involutive on its own output
// (spec.md §8 quantified invariant).
func TestSignIsInvolutiveOnItsOwnOutput(t *testing.T) {
	m := buildSigned(t, [][]int8{
		{1, 1, 0},
		{1, 0, 1},
		{0, 1, 1},
	})

	changed, err := tu.Sign(m)
	require.NoError(t, err)
	assert.True(t, changed)

	signedOK, err := tu.IsSigned(m)
	require.NoError(t, err)
	assert.True(t, signedOK)

	changedAgain, err := tu.Sign(m)
	require.NoError(t, err)
	assert.False(t, changedAgain)
}
