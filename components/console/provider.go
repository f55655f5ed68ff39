package console

import (
	"context"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

// Provider fetches data required to render a panel instance.
type Provider interface {
	Fetch(ctx context.Context, meta PanelContext) (PanelData, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta PanelContext) (PanelData, error)

// Fetch calls the wrapped function.
func (f ProviderFunc) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	return f(ctx, meta)
}

// PanelContext contains the metadata needed by providers.
type PanelContext struct {
	Instance   PanelInstance
	Viewer     ViewerContext
	Translator TranslationService
}

// PanelData is an opaque payload passed to templates.
type PanelData map[string]any

// CSVExporter is implemented by providers whose panels can serialize their
// current view as CSV (grid panels).
type CSVExporter interface {
	ExportCSV(ctx context.Context, meta PanelContext, sink datagrid.FileSink, filename string) error
}
