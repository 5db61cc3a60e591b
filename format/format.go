// Package format implements the two text matrix formats of spec.md §6
// (dense and sparse); its subpackage networkgen generates the unsigned
// {0,1} support of network matrices for test fixtures (D.2). Parsing is an
// external-collaborator concern per spec.md §1: the core pipeline only
// ever sees an already-validated *core.Matrix.
//
// Grounded on original_source/src/tu/matrix.c's text grammar (first line
// of sizes, then the raw entries) and on lvlath/builder's fail-fast,
// sentinel-only validation style (ErrBadSize and friends).
package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/discopt/cmr-sub000/core"
	"github.com/discopt/cmr-sub000/coreerr"
)

// ErrBadSize indicates a malformed or negative H/W (or NNZ) header.
var ErrBadSize = fmt.Errorf("format: malformed size header")

// ErrDuplicateCoordinate indicates a sparse-format input named the same
// (row, col) coordinate twice (spec.md §6: "duplicate (row, col) entries
// are ill-formed input").
var ErrDuplicateCoordinate = fmt.Errorf("format: duplicate sparse coordinate")

// ParseDense reads spec.md §6's dense format: a first line "H W", then
// H*W whitespace-separated integers in row-major order. An entry outside
// {-1,0,+1} is reported as a *coreerr.DomainViolation, realizing spec.md
// §8 scenario 5's "violator is the 1x1 containing the bad entry" at the
// point where it's first observable, before a Matrix can even be built.
func ParseDense(r io.Reader) (*core.Matrix, error) {
	sc := newTokenScanner(r)

	h, err := sc.nextInt()
	if err != nil {
		return nil, fmt.Errorf("format: reading dense height: %w", ErrBadSize)
	}
	w, err := sc.nextInt()
	if err != nil {
		return nil, fmt.Errorf("format: reading dense width: %w", ErrBadSize)
	}
	if h < 0 || w < 0 {
		return nil, ErrBadSize
	}

	m, err := core.NewMatrix(h, w, core.DomainSigned)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			v, err := sc.nextInt()
			if err != nil {
				return nil, fmt.Errorf("format: reading dense entry (%d,%d): %w", i, j, err)
			}
			if v < -1 || v > 1 {
				return nil, &coreerr.DomainViolation{Row: i, Col: j, Value: v}
			}
			if err := m.Set(i, j, int8(v)); err != nil {
				return nil, fmt.Errorf("format: dense entry (%d,%d): %w", i, j, err)
			}
		}
	}
	return m, nil
}

// ParseSparse reads spec.md §6's sparse (coordinate) format: a first line
// "H W NNZ", then NNZ lines "row col value". Duplicate (row, col) pairs
// are rejected as ill-formed input.
func ParseSparse(r io.Reader) (*core.Matrix, error) {
	sc := newTokenScanner(r)

	h, err := sc.nextInt()
	if err != nil {
		return nil, fmt.Errorf("format: reading sparse height: %w", ErrBadSize)
	}
	w, err := sc.nextInt()
	if err != nil {
		return nil, fmt.Errorf("format: reading sparse width: %w", ErrBadSize)
	}
	nnz, err := sc.nextInt()
	if err != nil {
		return nil, fmt.Errorf("format: reading sparse nnz: %w", ErrBadSize)
	}
	if h < 0 || w < 0 || nnz < 0 {
		return nil, ErrBadSize
	}

	m, err := core.NewMatrix(h, w, core.DomainSigned)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	seen := make(map[[2]int]bool, nnz)
	for k := 0; k < nnz; k++ {
		row, err := sc.nextInt()
		if err != nil {
			return nil, fmt.Errorf("format: reading sparse entry %d row: %w", k, err)
		}
		col, err := sc.nextInt()
		if err != nil {
			return nil, fmt.Errorf("format: reading sparse entry %d col: %w", k, err)
		}
		val, err := sc.nextInt()
		if err != nil {
			return nil, fmt.Errorf("format: reading sparse entry %d value: %w", k, err)
		}

		coord := [2]int{row, col}
		if seen[coord] {
			return nil, fmt.Errorf("format: coordinate (%d,%d): %w", row, col, ErrDuplicateCoordinate)
		}
		seen[coord] = true

		if val < -1 || val > 1 {
			return nil, &coreerr.DomainViolation{Row: row, Col: col, Value: val}
		}
		if err := m.Set(row, col, int8(val)); err != nil {
			return nil, fmt.Errorf("format: sparse entry (%d,%d): %w", row, col, err)
		}
	}
	return m, nil
}

// WriteDense writes m in spec.md §6's dense format.
func WriteDense(w io.Writer, m *core.Matrix) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", m.Rows(), m.Cols()); err != nil {
		return err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			sep := " "
			if j == m.Cols()-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%d%s", m.At(i, j), sep); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSparse writes m in spec.md §6's sparse (coordinate) format,
// listing only the nonzero entries in row-major order.
func WriteSparse(w io.Writer, m *core.Matrix) error {
	var rows, cols, vals []int
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v := m.At(i, j); v != 0 {
				rows = append(rows, i)
				cols = append(cols, j)
				vals = append(vals, int(v))
			}
		}
	}
	if _, err := fmt.Fprintf(w, "%d %d %d\n", m.Rows(), m.Cols(), len(rows)); err != nil {
		return err
	}
	for k := range rows {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", rows[k], cols[k], vals[k]); err != nil {
			return err
		}
	}
	return nil
}

// tokenScanner pulls whitespace-separated integer tokens off a reader,
// following original_source/src/tu/matrix.c's simple whitespace-split
// grammar (no quoting, no comments).
type tokenScanner struct {
	sc *bufio.Scanner
}

func newTokenScanner(r io.Reader) *tokenScanner {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tokenScanner{sc: sc}
}

func (t *tokenScanner) nextInt() (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	var v int
	if _, err := fmt.Sscanf(t.sc.Text(), "%d", &v); err != nil {
		return 0, fmt.Errorf("format: %q is not an integer: %w", t.sc.Text(), err)
	}
	return v, nil
}
