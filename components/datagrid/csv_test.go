package datagrid

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	filename string
	data     []byte
}

func (s *captureSink) Deliver(filename string, data []byte) error {
	s.filename = filename
	s.data = data
	return nil
}

func TestExportCSVRoundTripsThroughStandardParser(t *testing.T) {
	table := New([]Column{
		{ID: "name", Label: "Name"},
		{ID: "note", Label: "Note"},
	}, WithKeyColumn("name"))
	table.SetRows([]Row{
		{"name": "plain", "note": "nothing special"},
		{"name": "comma", "note": "a,b,c"},
		{"name": "quote", "note": `she said "hi"`},
		{"name": "newline", "note": "line one\nline two"},
	})

	sink := &captureSink{}
	require.NoError(t, table.ExportCSV(sink, "templates.csv"))
	assert.Equal(t, "templates.csv", sink.filename)

	reader := csv.NewReader(strings.NewReader(string(sink.data)))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Name", "Note"}, records[0])
	assert.Equal(t, []string{"comma", "a,b,c"}, records[2])
	assert.Equal(t, []string{"quote", `she said "hi"`}, records[3])
	assert.Equal(t, []string{"newline", "line one\nline two"}, records[4])
}

func TestExportCSVQuotesEveryFieldAndUsesBareNewlines(t *testing.T) {
	table := New([]Column{{ID: "v", Label: "Value"}})
	table.SetRows([]Row{{"v": "a"}, {"v": "b"}})

	sink := &captureSink{}
	require.NoError(t, table.ExportCSV(sink, "out.csv"))

	text := string(sink.data)
	assert.Equal(t, "\"Value\"\n\"a\"\n\"b\"", text)
	assert.NotContains(t, text, "\r")
}

func TestExportCSVUsesFilteredRowsOnly(t *testing.T) {
	table := New(testColumns(), WithKeyColumn("id"))
	table.SetRows(testRows(50))
	table.Search("Template 4")

	sink := &captureSink{}
	require.NoError(t, table.ExportCSV(sink, "filtered.csv"))

	lines := strings.Split(string(sink.data), "\n")
	// Header + Template 4, 40..49.
	assert.Len(t, lines, 12)
}

func TestExportCSVRequiresSink(t *testing.T) {
	table := New(testColumns())
	assert.Error(t, table.ExportCSV(nil, "x.csv"))
}

func TestDirSinkWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	sink := DirSink{Dir: dir}

	require.NoError(t, sink.Deliver("export.csv", []byte("\"a\"")))

	data, err := os.ReadFile(filepath.Join(dir, "export.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\"", string(data))
}

func TestDirSinkStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	sink := DirSink{Dir: dir}

	require.NoError(t, sink.Deliver("../../escape.csv", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "escape.csv"))
	assert.NoError(t, err)
}

func TestEncodeCSVEscapesQuotesByDoubling(t *testing.T) {
	out := EncodeCSV([]string{`q"h`}, [][]string{{`""`}})
	assert.Equal(t, "\"q\"\"h\"\n\"\"\"\"\"\"", string(out))
}
