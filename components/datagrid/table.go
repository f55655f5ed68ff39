package datagrid

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

const (
	defaultHeight    = 600
	defaultRowHeight = 48
	defaultOverscan  = 5
	defaultEmptyText = "No data matches the current filter"
)

// Table renders an arbitrarily large in-memory row set through a fixed-size
// window. Search text, selection and scroll offset live on the instance;
// construct one per mount and discard it on teardown.
type Table struct {
	columns  []Column
	rows     []Row
	version  uint64
	viewport Viewport

	keyColumn string
	keyFunc   KeyFunc

	term      string
	filtered  filterResult
	selection selectionSet
	offset    float64

	emptyText         string
	onRowClick        RowClickFunc
	onSelectionChange SelectionChangeFunc
}

// Option customizes table construction.
type Option func(*Table)

// WithViewport overrides the default scroll geometry.
func WithViewport(vp Viewport) Option {
	return func(t *Table) {
		t.viewport = vp
	}
}

// WithKeyColumn designates a column whose projected value keys each row.
func WithKeyColumn(id string) Option {
	return func(t *Table) {
		t.keyColumn = id
	}
}

// WithKeyFunc installs a caller-supplied row key derivation.
func WithKeyFunc(fn KeyFunc) Option {
	return func(t *Table) {
		t.keyFunc = fn
	}
}

// WithEmptyText replaces the message shown when filtering leaves no rows.
func WithEmptyText(text string) Option {
	return func(t *Table) {
		t.emptyText = text
	}
}

// WithOnRowClick registers the row interaction callback.
func WithOnRowClick(fn RowClickFunc) Option {
	return func(t *Table) {
		t.onRowClick = fn
	}
}

// WithOnSelectionChange registers the selection notification callback.
func WithOnSelectionChange(fn SelectionChangeFunc) Option {
	return func(t *Table) {
		t.onSelectionChange = fn
	}
}

// DefaultViewport returns the viewport applied when New receives no override.
func DefaultViewport() Viewport {
	return Viewport{
		Height:    defaultHeight,
		RowHeight: defaultRowHeight,
		Overscan:  defaultOverscan,
	}
}

// New builds a table for the given column layout.
func New(columns []Column, opts ...Option) *Table {
	t := &Table{
		columns:   append([]Column(nil), columns...),
		viewport:  DefaultViewport(),
		selection: newSelectionSet(),
		emptyText: defaultEmptyText,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetRows replaces the backing row set. Selection survives; keys that no
// longer resolve simply stop materializing.
func (t *Table) SetRows(rows []Row) {
	t.rows = rows
	t.version++
	t.filtered = filterResult{}
}

// Columns returns the display-ordered column descriptors.
func (t *Table) Columns() []Column {
	return t.columns
}

// Len reports the full (unfiltered) row count.
func (t *Table) Len() int {
	return len(t.rows)
}

// RowKey resolves the key for a row: caller function first, then the key
// column's projected value, then a composite hash of every projected cell.
func (t *Table) RowKey(row Row) string {
	if t.keyFunc != nil {
		return t.keyFunc(row)
	}
	if t.keyColumn != "" {
		return formatCell(row[t.keyColumn])
	}
	return compositeKey(t.columns, row)
}

// RowClicked dispatches the click callback for the filtered row at index.
func (t *Table) RowClicked(index int) {
	rows := t.FilteredRows()
	if index < 0 || index >= len(rows) {
		return
	}
	if t.onRowClick != nil {
		t.onRowClick(rows[index], index)
	}
}

func (t *Table) notifySelection() {
	if t.onSelectionChange == nil {
		return
	}
	t.onSelectionChange(t.selection.keysSorted(), t.SelectedRows())
}

// compositeKey hashes every projected cell so rows without a designated key
// column still get a stable identity.
func compositeKey(columns []Column, row Row) string {
	digest := xxhash.New()
	for _, col := range columns {
		_, _ = digest.WriteString(formatCell(row[col.ID]))
		_, _ = digest.Write([]byte{0})
	}
	var sum [8]byte
	out := digest.Sum(sum[:0])
	return hex.EncodeToString(out)
}
