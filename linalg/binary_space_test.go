package linalg_test

import (
	"testing"

	"github.com/discopt/cmr-sub000/linalg"
	"github.com/stretchr/testify/assert"
)

func TestSpaceRankAndContains(t *testing.T) {
	s := linalg.NewSpace(4)
	a := linalg.VectorFromInts([]int8{1, 0, 1, 0})
	b := linalg.VectorFromInts([]int8{0, 1, 0, 1})
	c := a.Xor(b)

	assert.True(t, s.Add(a))
	assert.True(t, s.Add(b))
	assert.False(t, s.Add(c)) // dependent: a xor b already spanned
	assert.Equal(t, 2, s.Rank())
	assert.True(t, s.Contains(c))

	d := linalg.VectorFromInts([]int8{1, 1, 0, 0})
	assert.False(t, s.Contains(d))
}

func TestRankHelper(t *testing.T) {
	vecs := []linalg.Vector{
		linalg.VectorFromInts([]int8{1, 0, 0}),
		linalg.VectorFromInts([]int8{0, 1, 0}),
		linalg.VectorFromInts([]int8{1, 1, 0}),
	}
	assert.Equal(t, 2, linalg.Rank(vecs))
}
