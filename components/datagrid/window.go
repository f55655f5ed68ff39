package datagrid

import "math"

// WindowRow is one mounted row view: the row itself, its index within the
// filtered view, and its pixel offset inside the scroll region.
type WindowRow struct {
	Row      Row
	Index    int
	Key      string
	Offset   float64
	Selected bool
}

// Window is the render-ready slice of the filtered view. Rows never exceeds
// Viewport.VisibleCount regardless of the total row count.
type Window struct {
	First       int
	Rows        []WindowRow
	Total       int
	TotalHeight float64
	Empty       bool
	EmptyText   string
}

// Scroll records the viewport scroll offset in pixels. Negative offsets clamp
// to zero.
func (t *Table) Scroll(offset float64) {
	if offset < 0 {
		offset = 0
	}
	t.offset = offset
}

// Offset returns the current scroll offset.
func (t *Table) Offset() float64 {
	return t.offset
}

// Window computes the mounted row views for the current scroll offset:
// first = floor(offset / rowHeight), then rows [first, first+visibleCount)
// positioned at index*rowHeight. A filtered-out-to-zero view yields an
// explicit empty state instead of an empty scroll region.
func (t *Table) Window() Window {
	rows := t.FilteredRows()
	keys := t.filtered.keys
	total := len(rows)
	height := t.viewport.RowHeight
	if total == 0 {
		return Window{Empty: true, EmptyText: t.emptyText}
	}

	first := 0
	if height > 0 {
		first = int(math.Floor(t.offset / height))
	}
	if first >= total {
		first = total - 1
	}
	if first < 0 {
		first = 0
	}
	count := t.viewport.VisibleCount()
	last := first + count
	if last > total {
		last = total
	}

	mounted := make([]WindowRow, 0, last-first)
	for i := first; i < last; i++ {
		mounted = append(mounted, WindowRow{
			Row:      rows[i],
			Index:    i,
			Key:      keys[i],
			Offset:   float64(i) * height,
			Selected: t.selection.has(keys[i]),
		})
	}
	return Window{
		First:       first,
		Rows:        mounted,
		Total:       total,
		TotalHeight: float64(total) * height,
	}
}
