package models

// Table is a rectangular, column-named block of text values. Every operation
// returns a new Table; the receiver and its rows are never modified.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Index returns the position of col, or -1.
func (t Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Select returns a table holding only cols, in the given order.
// table names the source in the returned SchemaRenameError.
func (t Table) Select(table string, cols []string) (Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = t.Index(c)
		if idx[i] < 0 {
			return Table{}, &SchemaRenameError{Table: table, Column: c}
		}
	}

	out := Table{
		Columns: append([]string(nil), cols...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		projected := make([]string, len(idx))
		for i, j := range idx {
			projected[i] = row[j]
		}
		out.Rows[r] = projected
	}
	return out, nil
}

// Rename returns a table whose columns are renamed per pairs (old → new).
// Every old name must be present.
func (t Table) Rename(table string, pairs []ColumnRename) (Table, error) {
	cols := append([]string(nil), t.Columns...)
	for _, p := range pairs {
		i := t.Index(p.From)
		if i < 0 {
			return Table{}, &SchemaRenameError{Table: table, Column: p.From}
		}
		cols[i] = p.To
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return Table{Columns: cols, Rows: rows}, nil
}

// ColumnRename maps a source column name to its normalized name.
type ColumnRename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Record returns row i as a column → value lookup.
func (t Table) Record(i int) map[string]string {
	rec := make(map[string]string, len(t.Columns))
	for j, c := range t.Columns {
		rec[c] = t.Rows[i][j]
	}
	return rec
}
