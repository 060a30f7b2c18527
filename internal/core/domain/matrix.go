package domain

import (
	"math"
	"strconv"
)

// Missing marks a cell whose development period has not been observed yet.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Matrix is a dense origin by development grid of values.
type Matrix struct {
	Rows   []string
	Cols   []string
	Values [][]float64
}

// NewMatrix returns a zero-filled matrix with the given labels.
func NewMatrix(rows, cols []string) *Matrix {
	values := make([][]float64, len(rows))
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Values: values}
}

// Filled returns a matrix with every cell set to v.
func Filled(rows, cols []string, v float64) *Matrix {
	m := NewMatrix(rows, cols)
	for _, row := range m.Values {
		for j := range row {
			row[j] = v
		}
	}
	return m
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i, row := range m.Values {
		copy(out.Values[i], row)
	}
	return out
}

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix) SameShape(o *Matrix) bool {
	return len(m.Rows) == len(o.Rows) && len(m.Cols) == len(o.Cols)
}

// FirstColumn returns a single-column matrix holding the first development column.
func (m *Matrix) FirstColumn() *Matrix {
	if len(m.Cols) == 0 {
		return m.Clone()
	}
	out := NewMatrix(m.Rows, m.Cols[:1])
	for i, row := range m.Values {
		out.Values[i][0] = row[0]
	}
	return out
}

// Records renders the values as CSV records. Missing cells become empty fields.
func (m *Matrix) Records() [][]string {
	out := make([][]string, len(m.Values))
	for i, row := range m.Values {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = FormatValue(v)
		}
		out[i] = rec
	}
	return out
}

// FormatValue renders a float in its shortest exact decimal form.
func FormatValue(v float64) string {
	if IsMissing(v) {
		return ""
	}
	if v == 0 {
		// Sign flips of zero cells must not leak "-0" into responses.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
