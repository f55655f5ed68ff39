package datagrid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportCSV serializes the currently filtered rows and delivers the bytes to
// the sink. Header fields are the column labels; every field is double-quote
// wrapped with inner quotes doubled, fields comma-joined, lines joined by a
// bare \n. The output round-trips through any standard CSV parser.
func (t *Table) ExportCSV(sink FileSink, filename string) error {
	if sink == nil {
		return fmt.Errorf("datagrid: export requires a file sink")
	}
	rows := t.FilteredRows()

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.Label
	}
	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, len(t.columns))
		for j, col := range t.columns {
			record[j] = col.Cell(row, i)
		}
		records[i] = record
	}

	return sink.Deliver(filename, EncodeCSV(header, records))
}

// EncodeCSV renders header + records with the grid's quoting contract:
// UTF-8, comma separators, \n line endings, all fields quoted.
func EncodeCSV(header []string, records [][]string) []byte {
	var b strings.Builder
	writeCSVLine(&b, header)
	for _, record := range records {
		b.WriteByte('\n')
		writeCSVLine(&b, record)
	}
	return []byte(b.String())
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}

// DirSink delivers exports into a directory on the local filesystem.
type DirSink struct {
	Dir string
}

// Deliver writes the artifact under the sink directory, creating it as needed.
func (s DirSink) Deliver(filename string, data []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("datagrid: create export dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("datagrid: write export %s: %w", path, err)
	}
	return nil
}
