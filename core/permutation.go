package core

import "sort"

// Permutation is a bijection [0,n) -> [0,n) stored as an image array:
// image[i] is the underlying index currently displayed at logical
// position i. Grounded on original_source/apps/common/src/permutations.hpp.
type Permutation struct {
	image []int
}

// IdentityPermutation returns the identity permutation on [0,n).
func IdentityPermutation(n int) *Permutation {
	img := make([]int, n)
	for i := range img {
		img[i] = i
	}
	return &Permutation{image: img}
}

// Len returns the permutation's domain size.
func (p *Permutation) Len() int { return len(p.image) }

// At returns the underlying index displayed at logical position i.
func (p *Permutation) At(i int) int { return p.image[i] }

// Swap exchanges the images at logical positions i and j.
func (p *Permutation) Swap(i, j int) { p.image[i], p.image[j] = p.image[j], p.image[i] }

// Clone returns an independent copy.
func (p *Permutation) Clone() *Permutation {
	img := make([]int, len(p.image))
	copy(img, p.image)
	return &Permutation{image: img}
}

// Inverse returns the inverse permutation: q.At(p.At(i)) == i.
func (p *Permutation) Inverse() *Permutation {
	inv := make([]int, len(p.image))
	for i, v := range p.image {
		inv[v] = i
	}
	return &Permutation{image: inv}
}

// Compose returns the permutation r with r.At(i) == p.At(q.At(i)), i.e.
// applying q first, then p.
func (p *Permutation) Compose(q *Permutation) *Permutation {
	out := make([]int, len(p.image))
	for i := range out {
		out[i] = p.image[q.image[i]]
	}
	return &Permutation{image: out}
}

// PreSort reorders the permutation in place so the sequence it displays
// is non-decreasing under less, using a stable sort. Per spec.md §9 open
// question 3, stability is required so diagnostic output stays
// deterministic across ties.
func (p *Permutation) PreSort(less func(a, b int) bool) {
	sort.SliceStable(p.image, func(i, j int) bool {
		return less(p.image[i], p.image[j])
	})
}

// StablePartition stably partitions the range [lo, hi) of logical
// positions so that entries satisfying keep come first, in their original
// relative order, followed by the rest, also in their original relative
// order. keep receives both the logical position and the underlying index
// currently displayed there. Returns the count moved to the front. This
// realizes the "swap rows with a 1 in column c to the front" step used
// throughout signing and wheel-minor search.
func (p *Permutation) StablePartition(lo, hi int, keep func(logicalPos, underlyingIdx int) bool) int {
	buf := make([]int, 0, hi-lo)
	rest := make([]int, 0, hi-lo)
	for k := lo; k < hi; k++ {
		if keep(k, p.image[k]) {
			buf = append(buf, p.image[k])
		} else {
			rest = append(rest, p.image[k])
		}
	}
	copy(p.image[lo:], buf)
	copy(p.image[lo+len(buf):], rest)
	return len(buf)
}

// MoveToFront is StablePartition specialized to a predicate over the
// underlying index alone, the common case when the caller does not care
// about current logical position.
func (p *Permutation) MoveToFront(lo, hi int, pred func(underlyingIdx int) bool) int {
	return p.StablePartition(lo, hi, func(_, underlying int) bool { return pred(underlying) })
}
