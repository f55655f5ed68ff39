package datagrid

import (
	"fmt"
	"strconv"
	"time"
)

// Row is an ordered mapping from column ID to a primitive cell value. The grid
// never mutates rows; callers retain ownership.
type Row map[string]any

// Align controls horizontal cell alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// CellRenderer projects a row into display content for one column.
type CellRenderer func(row Row, index int) string

// Column describes how one row field is projected into a cell. Slice order is
// display order.
type Column struct {
	ID     string
	Label  string
	Width  int
	Align  Align
	Render CellRenderer
}

// KeyFunc derives a stable key for a logical row. Keys must be stable across
// re-renders or selection and windowing tracking breaks.
type KeyFunc func(row Row) string

// FileSink receives exported artifacts. Implementations decide where the bytes
// land (filesystem, HTTP response, object store).
type FileSink interface {
	Deliver(filename string, data []byte) error
}

// SinkFunc adapts a function to the FileSink interface.
type SinkFunc func(filename string, data []byte) error

// Deliver calls the wrapped function.
func (f SinkFunc) Deliver(filename string, data []byte) error {
	return f(filename, data)
}

// RowClickFunc is invoked on non-selection row interaction.
type RowClickFunc func(row Row, index int)

// SelectionChangeFunc receives the materialized selection from the currently
// filtered view.
type SelectionChangeFunc func(keys []string, rows []Row)

// Viewport describes the fixed-geometry scroll region. Row height is constant;
// variable-height content is out of scope.
type Viewport struct {
	Height    float64
	RowHeight float64
	Overscan  int
}

// VisibleCount returns the number of row views the viewport mounts at once.
func (v Viewport) VisibleCount() int {
	if v.RowHeight <= 0 || v.Height <= 0 {
		return v.Overscan
	}
	count := int(v.Height / v.RowHeight)
	if v.Height > float64(count)*v.RowHeight {
		count++
	}
	return count + v.Overscan
}

// Cell resolves the display text for this column, honoring a custom renderer.
func (c Column) Cell(row Row, index int) string {
	if c.Render != nil {
		return c.Render(row, index)
	}
	if row == nil {
		return ""
	}
	return formatCell(row[c.ID])
}

// formatCell stringifies primitives for display, filtering and export. Missing
// or unknown values degrade to the empty string rather than erroring.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
