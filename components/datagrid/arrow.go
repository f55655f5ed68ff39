package datagrid

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// FromArrowTable adapts an Arrow table into grid columns and rows so panels
// can sit directly on columnar datasets. Cell values keep their native Go
// types where a direct mapping exists; everything else arrives pre-formatted.
func FromArrowTable(table arrow.Table) ([]Column, []Row, error) {
	if table == nil {
		return nil, nil, fmt.Errorf("datagrid: arrow table is nil")
	}
	schema := table.Schema()
	columns := make([]Column, schema.NumFields())
	for i, field := range schema.Fields() {
		columns[i] = Column{ID: field.Name, Label: field.Name}
	}

	rows := make([]Row, 0, table.NumRows())
	reader := array.NewTableReader(table, table.NumRows())
	defer reader.Release()

	for reader.Next() {
		rec := reader.Record()
		for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
			row := make(Row, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				row[schema.Field(colIdx).Name] = arrowCell(col, rowIdx)
			}
			rows = append(rows, row)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, nil, fmt.Errorf("datagrid: read arrow table: %w", err)
	}
	return columns, rows, nil
}

func arrowCell(col arrow.Array, pos int) any {
	if col.IsNull(pos) {
		return nil
	}
	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)
	case arrow.BOOL:
		return col.(*array.Boolean).Value(pos)
	case arrow.INT8:
		return int64(col.(*array.Int8).Value(pos))
	case arrow.INT16:
		return int64(col.(*array.Int16).Value(pos))
	case arrow.INT32:
		return int64(col.(*array.Int32).Value(pos))
	case arrow.INT64:
		return col.(*array.Int64).Value(pos)
	case arrow.UINT8:
		return uint64(col.(*array.Uint8).Value(pos))
	case arrow.UINT16:
		return uint64(col.(*array.Uint16).Value(pos))
	case arrow.UINT32:
		return uint64(col.(*array.Uint32).Value(pos))
	case arrow.UINT64:
		return col.(*array.Uint64).Value(pos)
	case arrow.FLOAT32:
		return float64(col.(*array.Float32).Value(pos))
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos)
	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime()
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime()
	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return col.(*array.Timestamp).Value(pos).ToTime(unit)
	default:
		return col.ValueStr(pos)
	}
}
