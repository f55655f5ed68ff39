package datagrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []Column {
	return []Column{
		{ID: "id", Label: "ID"},
		{ID: "name", Label: "Template Name"},
		{ID: "score", Label: "Quality Score"},
	}
}

func testRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			"id":    fmt.Sprintf("tpl-%04d", i),
			"name":  fmt.Sprintf("Template %d", i),
			"score": float64(i%100) / 100,
		}
	}
	return rows
}

func TestWindowBoundHoldsForAnyRowCount(t *testing.T) {
	vp := Viewport{Height: 400, RowHeight: 48, Overscan: 3}
	// ceil(400/48) = 9, plus overscan.
	limit := 9 + 3
	require.Equal(t, limit, vp.VisibleCount())

	for _, n := range []int{0, 1, 5, 12, 100, 10000} {
		table := New(testColumns(), WithViewport(vp), WithKeyColumn("id"))
		table.SetRows(testRows(n))
		for _, offset := range []float64{0, 47, 48, 1000, 479999} {
			table.Scroll(offset)
			win := table.Window()
			assert.LessOrEqual(t, len(win.Rows), limit, "n=%d offset=%v", n, offset)
		}
	}
}

func TestWindowPositionsRowsByIndex(t *testing.T) {
	table := New(testColumns(), WithViewport(Viewport{Height: 100, RowHeight: 50, Overscan: 1}), WithKeyColumn("id"))
	table.SetRows(testRows(20))

	table.Scroll(125)
	win := table.Window()

	require.False(t, win.Empty)
	assert.Equal(t, 2, win.First) // floor(125 / 50)
	assert.Equal(t, 20, win.Total)
	assert.Equal(t, float64(20*50), win.TotalHeight)
	require.NotEmpty(t, win.Rows)
	for _, row := range win.Rows {
		assert.Equal(t, float64(row.Index)*50, row.Offset)
	}
	assert.Equal(t, 2, win.Rows[0].Index)
	assert.Equal(t, "tpl-0002", win.Rows[0].Key)
}

func TestWindowClampsPastTheEnd(t *testing.T) {
	table := New(testColumns(), WithViewport(Viewport{Height: 100, RowHeight: 50, Overscan: 2}), WithKeyColumn("id"))
	table.SetRows(testRows(5))

	table.Scroll(100000)
	win := table.Window()

	require.NotEmpty(t, win.Rows)
	assert.Equal(t, 4, win.First)
	last := win.Rows[len(win.Rows)-1]
	assert.Equal(t, 4, last.Index)
}

func TestWindowEmptyState(t *testing.T) {
	table := New(testColumns(), WithEmptyText("nothing here"))
	table.SetRows(testRows(10))
	table.Search("zz-no-match")

	win := table.Window()

	assert.True(t, win.Empty)
	assert.Equal(t, "nothing here", win.EmptyText)
	assert.Empty(t, win.Rows)
}

func TestNegativeScrollClampsToZero(t *testing.T) {
	table := New(testColumns())
	table.Scroll(-10)
	assert.Equal(t, float64(0), table.Offset())
}

func TestRowClickedDispatchesFilteredIndex(t *testing.T) {
	var clicked Row
	var clickedIndex int
	table := New(testColumns(),
		WithKeyColumn("id"),
		WithOnRowClick(func(row Row, index int) {
			clicked = row
			clickedIndex = index
		}),
	)
	table.SetRows(testRows(30))
	table.Search("Template 2")

	table.RowClicked(1)

	require.NotNil(t, clicked)
	assert.Equal(t, 1, clickedIndex)
	// Filter keeps Template 2, 20, 21, ... 29; index 1 is Template 20.
	assert.Equal(t, "Template 20", clicked["name"])

	clicked = nil
	table.RowClicked(99)
	assert.Nil(t, clicked, "out of range clicks are ignored")
}

func TestCompositeKeyIsStableAndDistinguishesRows(t *testing.T) {
	table := New(testColumns())
	rows := testRows(3)

	key := table.RowKey(rows[0])
	assert.Equal(t, key, table.RowKey(rows[0]))
	assert.NotEqual(t, key, table.RowKey(rows[1]))
	assert.NotEmpty(t, key)
}

func TestKeyFuncTakesPrecedence(t *testing.T) {
	table := New(testColumns(),
		WithKeyColumn("id"),
		WithKeyFunc(func(row Row) string { return "custom:" + formatCell(row["id"]) }),
	)
	assert.Equal(t, "custom:tpl-0000", table.RowKey(testRows(1)[0]))
}

func TestMissingFieldsRenderAsEmptyCells(t *testing.T) {
	table := New([]Column{{ID: "ghost", Label: "Ghost"}})
	table.SetRows([]Row{{"id": "x"}})

	win := table.Window()
	require.Len(t, win.Rows, 1)
	assert.Equal(t, "", table.Columns()[0].Cell(win.Rows[0].Row, 0))
}
