package tile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyShape  = errors.New("tile: shape has no filled cells")
	ErrRaggedShape = errors.New("tile: shape rows differ in length")
)

// Shape is an immutable row-major binary matrix. The zero Shape has no cells.
type Shape struct {
	rows, cols int
	cells      []bool
}

// NewShape builds a shape from rows of 0/1 values. Any non-zero value counts
// as filled. The matrix must be rectangular and contain at least one filled
// cell.
func NewShape(matrix [][]int) (Shape, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return Shape{}, ErrEmptyShape
	}

	s := Shape{rows: len(matrix), cols: len(matrix[0])}
	s.cells = make([]bool, s.rows*s.cols)

	filled := 0
	for r, row := range matrix {
		if len(row) != s.cols {
			return Shape{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedShape, r, len(row), s.cols)
		}
		for c, v := range row {
			if v != 0 {
				s.cells[r*s.cols+c] = true
				filled++
			}
		}
	}

	if filled == 0 {
		return Shape{}, ErrEmptyShape
	}
	return s, nil
}

// MustShape is like NewShape but panics on error.
func MustShape(matrix [][]int) Shape {
	s, err := NewShape(matrix)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Shape) Rows() int { return s.rows }
func (s Shape) Cols() int { return s.cols }

// Filled reports whether the cell at column x, row y is set. Coordinates
// outside the matrix are empty.
func (s Shape) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return false
	}
	return s.cells[y*s.cols+x]
}

// Count returns the number of filled cells.
func (s Shape) Count() int {
	n := 0
	for _, v := range s.cells {
		if v {
			n++
		}
	}
	return n
}

// Rotate returns the matrix turned 90 degrees clockwise:
// new[col][rows-1-row] = old[row][col].
func (s Shape) Rotate() Shape {
	out := Shape{rows: s.cols, cols: s.rows, cells: make([]bool, len(s.cells))}
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			out.cells[c*out.cols+(s.rows-1-r)] = s.cells[r*s.cols+c]
		}
	}
	return out
}

// TrimEmpty drops trailing rows with no filled cell. At least one row is
// always kept.
func (s Shape) TrimEmpty() Shape {
	rows := s.rows
	for rows > 1 && s.rowEmpty(rows-1) {
		rows--
	}
	if rows == s.rows {
		return s
	}
	return Shape{rows: rows, cols: s.cols, cells: s.cells[:rows*s.cols:rows*s.cols]}
}

func (s Shape) rowEmpty(r int) bool {
	for _, v := range s.cells[r*s.cols : (r+1)*s.cols] {
		if v {
			return false
		}
	}
	return true
}

// Equal reports whether two shapes have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.rows != o.rows || s.cols != o.cols {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Matrix returns the shape as rows of 0/1.
func (s Shape) Matrix() [][]int {
	m := make([][]int, s.rows)
	for r := range m {
		m[r] = make([]int, s.cols)
		for c := range m[r] {
			if s.cells[r*s.cols+c] {
				m[r][c] = 1
			}
		}
	}
	return m
}

// String renders the shape with '#' for filled cells and '.' for empty ones,
// one line per row.
func (s Shape) String() string {
	var b strings.Builder
	for r := 0; r < s.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < s.cols; c++ {
			if s.cells[r*s.cols+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
