package datagrid

import "strings"

type filterResult struct {
	valid   bool
	version uint64
	term    string
	rows    []Row
	keys    []string
}

// Search sets the free-text filter term. The filtered view is recomputed from
// the full row set on demand, memoized on (rows version, term).
func (t *Table) Search(term string) {
	t.term = term
}

// Term returns the active search term.
func (t *Table) Term() string {
	return t.term
}

// FilteredRows returns the rows matching the current term. An empty term is
// the identity filter.
func (t *Table) FilteredRows() []Row {
	t.ensureFiltered()
	return t.filtered.rows
}

// FilteredKeys returns the key of every row in the filtered view, in display
// order.
func (t *Table) FilteredKeys() []string {
	t.ensureFiltered()
	return t.filtered.keys
}

func (t *Table) ensureFiltered() {
	if t.filtered.valid && t.filtered.version == t.version && t.filtered.term == t.term {
		return
	}
	rows := t.rows
	if t.term != "" {
		needle := strings.ToLower(t.term)
		rows = make([]Row, 0, len(t.rows))
		for i, row := range t.rows {
			if t.rowMatches(row, i, needle) {
				rows = append(rows, row)
			}
		}
	}
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = t.RowKey(row)
	}
	t.filtered = filterResult{
		valid:   true,
		version: t.version,
		term:    t.term,
		rows:    rows,
		keys:    keys,
	}
}

// rowMatches keeps a row iff any column's projected value contains the
// lowercased needle.
func (t *Table) rowMatches(row Row, index int, needle string) bool {
	for _, col := range t.columns {
		if strings.Contains(strings.ToLower(col.Cell(row, index)), needle) {
			return true
		}
	}
	return false
}
