package datagrid

import "sort"

// selectionSet tracks selected row keys for the lifetime of a table instance.
// Keys are only added or removed by explicit select actions; entries whose
// rows fall outside the active filter are retained until deselected.
type selectionSet struct {
	keys map[string]struct{}
}

func newSelectionSet() selectionSet {
	return selectionSet{keys: make(map[string]struct{})}
}

func (s selectionSet) has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s selectionSet) add(key string)    { s.keys[key] = struct{}{} }
func (s selectionSet) remove(key string) { delete(s.keys, key) }

func (s *selectionSet) replace(keys []string) {
	s.keys = make(map[string]struct{}, len(keys))
	for _, key := range keys {
		s.keys[key] = struct{}{}
	}
}

func (s selectionSet) keysSorted() []string {
	out := make([]string, 0, len(s.keys))
	for key := range s.keys {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Select adds or removes one row key and notifies the selection callback with
// the materialized rows from the filtered view.
func (t *Table) Select(key string, selected bool) {
	if selected {
		t.selection.add(key)
	} else {
		t.selection.remove(key)
	}
	t.notifySelection()
}

// SelectAll replaces the selection with every currently filtered key (true) or
// empties it (false). Rows outside the active filter are unaffected only in
// the sense that selecting all never reaches them; clearing drops everything.
func (t *Table) SelectAll(selected bool) {
	if selected {
		t.selection.replace(t.FilteredKeys())
	} else {
		t.selection.replace(nil)
	}
	t.notifySelection()
}

// Selected reports whether the key is currently selected.
func (t *Table) Selected(key string) bool {
	return t.selection.has(key)
}

// SelectedKeys returns the selection in sorted order, including keys whose
// rows are currently filtered out.
func (t *Table) SelectedKeys() []string {
	return t.selection.keysSorted()
}

// SelectedRows materializes selected rows from the currently filtered view, in
// display order. Selected keys outside the filter contribute nothing.
func (t *Table) SelectedRows() []Row {
	t.ensureFiltered()
	out := make([]Row, 0, len(t.selection.keys))
	for i, key := range t.filtered.keys {
		if t.selection.has(key) {
			out = append(out, t.filtered.rows[i])
		}
	}
	return out
}
