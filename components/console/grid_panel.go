package console

import (
	"context"
	"fmt"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

// RowSource supplies columns and rows for a grid panel. Implementations may
// scope the result to the viewer (tenant, role).
type RowSource interface {
	Load(ctx context.Context, viewer ViewerContext) ([]datagrid.Column, []datagrid.Row, error)
}

// RowSourceFunc adapts a function to the RowSource interface.
type RowSourceFunc func(ctx context.Context, viewer ViewerContext) ([]datagrid.Column, []datagrid.Row, error)

// Load calls the wrapped function.
func (f RowSourceFunc) Load(ctx context.Context, viewer ViewerContext) ([]datagrid.Column, []datagrid.Row, error) {
	return f(ctx, viewer)
}

// GridPanelProvider renders a windowed, filterable data grid backed by a
// RowSource. It also serializes the filtered view to CSV on demand.
type GridPanelProvider struct {
	source    RowSource
	tableOpts []datagrid.Option
}

// GridPanelOption customizes the provider.
type GridPanelOption func(*GridPanelProvider)

// WithTableOptions forwards options to every table the provider builds.
func WithTableOptions(opts ...datagrid.Option) GridPanelOption {
	return func(p *GridPanelProvider) {
		p.tableOpts = append(p.tableOpts, opts...)
	}
}

// NewGridPanelProvider builds a grid provider for the given source.
func NewGridPanelProvider(source RowSource, options ...GridPanelOption) *GridPanelProvider {
	p := &GridPanelProvider{source: source}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Fetch builds the table for the instance configuration and returns the
// visible window plus grid metadata.
func (p *GridPanelProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	table, err := p.buildTable(ctx, meta)
	if err != nil {
		return nil, err
	}

	cfg := meta.Instance.Configuration
	if offset := float64Value(cfg["scroll_offset"]); offset > 0 {
		table.Scroll(offset)
	}

	win := table.Window()

	headers := make([]map[string]any, 0, len(table.Columns()))
	for _, col := range table.Columns() {
		headers = append(headers, map[string]any{
			"id":    col.ID,
			"label": col.Label,
			"width": col.Width,
			"align": col.Align.String(),
		})
	}

	rows := make([]map[string]any, 0, len(win.Rows))
	for _, wr := range win.Rows {
		cells := make([]string, len(table.Columns()))
		for j, col := range table.Columns() {
			cells[j] = col.Cell(wr.Row, wr.Index)
		}
		rows = append(rows, map[string]any{
			"key":      wr.Key,
			"index":    wr.Index,
			"offset":   wr.Offset,
			"selected": wr.Selected,
			"cells":    cells,
		})
	}

	return PanelData{
		"window":          win,
		"rows":            rows,
		"columns":         headers,
		"filter":          table.Term(),
		"total":           win.Total,
		"total_height":    win.TotalHeight,
		"export_filename": stringValue(cfg["export_filename"], "export.csv"),
	}, nil
}

// ExportCSV serializes the instance's filtered view through the sink.
func (p *GridPanelProvider) ExportCSV(ctx context.Context, meta PanelContext, sink datagrid.FileSink, filename string) error {
	table, err := p.buildTable(ctx, meta)
	if err != nil {
		return err
	}
	if filename == "" {
		filename = stringValue(meta.Instance.Configuration["export_filename"], "export.csv")
	}
	return table.ExportCSV(sink, filename)
}

func (p *GridPanelProvider) buildTable(ctx context.Context, meta PanelContext) (*datagrid.Table, error) {
	if p.source == nil {
		return nil, fmt.Errorf("console: grid panel requires a row source")
	}
	columns, rows, err := p.source.Load(ctx, meta.Viewer)
	if err != nil {
		return nil, fmt.Errorf("console: grid panel source: %w", err)
	}

	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}

	if selected := stringSliceValue(cfg["columns"]); len(selected) > 0 {
		columns = selectColumns(columns, selected)
	}

	opts := append([]datagrid.Option(nil), p.tableOpts...)
	vp := datagrid.Viewport{
		Height:    float64Value(cfg["viewport_height"]),
		RowHeight: float64Value(cfg["row_height"]),
	}
	if vp.Height > 0 || vp.RowHeight > 0 {
		// a partial config keeps the default for the missing dimension
		def := datagrid.DefaultViewport()
		if vp.Height <= 0 {
			vp.Height = def.Height
		}
		if vp.RowHeight <= 0 {
			vp.RowHeight = def.RowHeight
		}
		opts = append(opts, datagrid.WithViewport(vp))
	}

	table := datagrid.New(columns, opts...)
	table.SetRows(rows)
	if term := stringValue(cfg["filter"], ""); term != "" {
		table.Search(term)
	}
	return table, nil
}

func selectColumns(columns []datagrid.Column, ids []string) []datagrid.Column {
	byID := make(map[string]datagrid.Column, len(columns))
	for _, col := range columns {
		byID[col.ID] = col
	}
	out := make([]datagrid.Column, 0, len(ids))
	for _, id := range ids {
		if col, ok := byID[id]; ok {
			out = append(out, col)
		}
	}
	if len(out) == 0 {
		return columns
	}
	return out
}

// DemoTemplateSource serves a fixed template inventory, useful for seeds and
// local development.
type DemoTemplateSource struct {
	columns []datagrid.Column
	rows    []datagrid.Row
}

// NewDemoTemplateSource builds the built-in demo inventory.
func NewDemoTemplateSource() *DemoTemplateSource {
	columns := []datagrid.Column{
		{ID: "id", Label: "ID", Width: 120},
		{ID: "name", Label: "Name", Width: 240},
		{ID: "category", Label: "Category", Width: 140},
		{ID: "renders", Label: "Renders", Width: 100, Align: datagrid.AlignRight},
		{ID: "score", Label: "Quality", Width: 100, Align: datagrid.AlignRight},
	}
	names := []string{"Welcome Email", "Invoice", "Password Reset", "Weekly Digest", "Receipt", "Onboarding", "Churn Winback", "Renewal Notice"}
	categories := []string{"email", "billing", "email", "marketing", "billing", "email", "marketing", "billing"}
	rows := make([]datagrid.Row, len(names))
	for i, name := range names {
		rows[i] = datagrid.Row{
			"id":       fmt.Sprintf("tpl-%04d", i+1),
			"name":     name,
			"category": categories[i],
			"renders":  1200 - i*117,
			"score":    0.92 - float64(i)*0.045,
		}
	}
	return &DemoTemplateSource{columns: columns, rows: rows}
}

// Load returns copies of the demo columns and rows.
func (s *DemoTemplateSource) Load(_ context.Context, _ ViewerContext) ([]datagrid.Column, []datagrid.Row, error) {
	columns := make([]datagrid.Column, len(s.columns))
	copy(columns, s.columns)
	rows := make([]datagrid.Row, len(s.rows))
	copy(rows, s.rows)
	return columns, rows, nil
}
