package domain

import "time"

// DataTable is one raw tabular dataset, read-only once built.
type DataTable struct {
	// Name is the file basename and the cache key.
	Name    string
	Path    string
	Header  []string
	Rows    [][]string
	Version time.Time
	index   map[string]int
}

// NewDataTable indexes header and wraps rows into a DataTable.
func NewDataTable(name, path string, header []string, rows [][]string, version time.Time) *DataTable {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return &DataTable{
		Name:    name,
		Path:    path,
		Header:  header,
		Rows:    rows,
		Version: version,
		index:   index,
	}
}

// Column returns the position of the named column.
func (t *DataTable) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of data rows.
func (t *DataTable) Len() int {
	return len(t.Rows)
}

// Cell returns the raw value at row r of column c, or "" for short rows.
func (t *DataTable) Cell(r, c int) string {
	row := t.Rows[r]
	if c >= len(row) {
		return ""
	}
	return row[c]
}
