package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesAnyColumnCaseInsensitive(t *testing.T) {
	table := New(testColumns(), WithKeyColumn("id"))
	table.SetRows([]Row{
		{"id": "a", "name": "Welcome Email", "score": 0.9},
		{"id": "b", "name": "Churn Winback", "score": 0.4},
		{"id": "c", "name": "ONBOARDING", "score": 0.7},
	})

	table.Search("welcome")
	require.Len(t, table.FilteredRows(), 1)
	assert.Equal(t, "a", table.FilteredRows()[0]["id"])

	// Matches against any column, not just name.
	table.Search("0.4")
	require.Len(t, table.FilteredRows(), 1)
	assert.Equal(t, "b", table.FilteredRows()[0]["id"])

	table.Search("onboard")
	require.Len(t, table.FilteredRows(), 1)
	assert.Equal(t, "c", table.FilteredRows()[0]["id"])
}

func TestEmptyTermIsIdentity(t *testing.T) {
	table := New(testColumns(), WithKeyColumn("id"))
	rows := testRows(25)
	table.SetRows(rows)

	table.Search("")
	assert.Len(t, table.FilteredRows(), 25)

	table.Search("template")
	assert.Len(t, table.FilteredRows(), 25)

	table.Search("")
	assert.Len(t, table.FilteredRows(), 25)
}

func TestFilterUsesCustomRenderers(t *testing.T) {
	cols := []Column{{
		ID:    "status",
		Label: "Status",
		Render: func(row Row, _ int) string {
			if row["status"] == 1 {
				return "active"
			}
			return "archived"
		},
	}}
	table := New(cols)
	table.SetRows([]Row{{"status": 1}, {"status": 0}})

	table.Search("archived")
	require.Len(t, table.FilteredRows(), 1)
	assert.Equal(t, 0, table.FilteredRows()[0]["status"])
}

func TestFilterIsMemoizedOnTermAndRows(t *testing.T) {
	calls := 0
	cols := []Column{{
		ID:    "name",
		Label: "Name",
		Render: func(row Row, _ int) string {
			calls++
			return formatCell(row["name"])
		},
	}}
	table := New(cols)
	table.SetRows([]Row{{"name": "alpha"}, {"name": "beta"}})

	table.Search("alp")
	table.FilteredRows()
	after := calls
	require.Positive(t, after)

	// Same term, same rows: no recomputation.
	table.FilteredRows()
	table.Window()
	assert.Equal(t, after, calls)

	// New rows invalidate the memo.
	table.SetRows([]Row{{"name": "alpine"}})
	table.FilteredRows()
	assert.Greater(t, calls, after)
}
