// Package tu is the public entry point of the totally-unimodular decision
// pipeline: it wires signing, support extraction, and the decomposition
// driver together into the four operations spec.md §6 documents, over
// the data flow spec.md §2 names verbatim: "input matrix -> {-1,0,+1}
// check -> signing check -> take support -> decomposition driver -> ...".
//
// The {-1,0,+1} domain check is structurally enforced by core.Matrix
// itself (DomainSigned.Set rejects anything else), so by the time a
// *core.Matrix reaches this package the check has already happened at
// construction -- the format package is where an out-of-domain entry in
// untrusted text input gets caught and turned into the spec's "1x1
// violator" shape (see format's ParseDense/ParseSparse).
package tu

import (
	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/coreerr"
	"github.com/discopt/cmr-sub000/decomplog"
	"github.com/discopt/cmr-sub000/decomposition"
	"github.com/discopt/cmr-sub000/signing"
	"github.com/discopt/cmr-sub000/violator"
)

// IsTotallyUnimodular decides whether m is totally unimodular (spec.md §6
// item 1).
func IsTotallyUnimodular(m *core.Matrix) (bool, error) {
	regular, _, _, err := decomposeFull(m, false)
	return regular, err
}

// IsTotallyUnimodularWithDecomposition decides TU-ness and, on true,
// returns the full regular-decomposition certificate; on false, the
// returned tree contains an irregular leaf (spec.md §6 item 2).
func IsTotallyUnimodularWithDecomposition(m *core.Matrix) (bool, *decomposition.Node, error) {
	regular, node, signingWitness, err := decomposeFull(m, true)
	if err != nil {
		return false, nil, err
	}
	if !regular && node == nil {
		// Signing failed before decomposition ever started: the whole
		// matrix is itself the irregular witness.
		node = signingLeaf(signingWitness)
	}
	return regular, node, nil
}

// IsTotallyUnimodularWithViolator decides TU-ness and, on false, also
// returns a submatrix that is not totally unimodular (spec.md §6 item 3).
// The witness is not necessarily square, and a square witness's own
// determinant is not necessarily >= 2 in absolute value.
func IsTotallyUnimodularWithViolator(m *core.Matrix) (bool, *coreerr.Submatrix, error) {
	regular, node, signingWitness, err := decomposeFull(m, true)
	if err != nil {
		return false, nil, err
	}
	if regular {
		return true, nil, nil
	}
	if signingWitness != nil {
		return false, signingWitness, nil
	}

	leafLabels, ok := violator.FindSmallestIrregularLeaf(node)
	if !ok {
		return false, nil, coreerr.Break("tu: irregular decomposition produced no irregular leaf")
	}
	sub, err := violator.Search(m, leafLabels)
	if err != nil {
		return false, nil, err
	}
	return false, &sub, nil
}

// IsSigned reports whether m already equals a signed version of its
// support (spec.md §6 item 4, test mode).
func IsSigned(m *core.Matrix) (bool, error) {
	ok, _, err := signing.Test(m)
	return ok, err
}

// Sign repairs m in place into a signed version of its support,
// reporting whether any entry changed (spec.md §6 item 4, repair mode).
func Sign(m *core.Matrix) (bool, error) {
	return signing.Repair(m)
}

// decomposeFull runs the signing check and, if it passes, the
// decomposition driver over m's support. A failed signing check short
// circuits with its own witness (no decomposition tree is built) since
// an incorrectly signed matrix can never be TU regardless of what its
// support decomposes into.
func decomposeFull(m *core.Matrix, buildTree bool) (regular bool, node *decomposition.Node, signingWitness *coreerr.Submatrix, err error) {
	ok, witness, err := signing.Test(m)
	if err != nil {
		return false, nil, nil, err
	}
	if !ok {
		return false, nil, witness, nil
	}

	support := m.Support()
	handle := core.NewMatroidHandle(support.Rows(), support.Cols())
	decomplog.Step("decompose", map[string]interface{}{"rows": support.Rows(), "cols": support.Cols()})
	regular, node, err = decomposition.Decompose(core.NewView(support), handle, nil, buildTree)
	if err != nil {
		return false, nil, nil, err
	}
	return regular, node, nil, nil
}

// signingLeaf turns a signing-check witness into an irregular leaf so
// IsTotallyUnimodularWithDecomposition's contract ("on false, the tree
// contains an irregular leaf") holds even when decomposition never ran.
func signingLeaf(witness *coreerr.Submatrix) *decomposition.Node {
	labels := make([]int, 0, len(witness.Rows)+len(witness.Cols))
	for _, r := range witness.Rows {
		labels = append(labels, -(r + 1))
	}
	for _, c := range witness.Cols {
		labels = append(labels, c+1)
	}
	return &decomposition.Node{
		Kind:   decomposition.KindIrregularLeaf,
		Rows:   len(witness.Rows),
		Cols:   len(witness.Cols),
		Labels: labels,
	}
}
