package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-datagrid/components/console"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// ExportPanelInput requests a CSV snapshot of a grid panel's filtered view.
// Sink receives the encoded artifact and is not serialized.
type ExportPanelInput struct {
	Viewer   console.ViewerContext `json:"viewer"`
	PanelID  string                `json:"panel_id"`
	Filename string                `json:"filename"`
	Sink     datagrid.FileSink     `json:"-"`
}

type exportService interface {
	ExportPanel(ctx context.Context, viewer console.ViewerContext, panelID string, sink datagrid.FileSink, filename string) error
}

// ExportPanelCommand wraps Service.ExportPanel.
type ExportPanelCommand struct {
	service   exportService
	telemetry Telemetry
}

// NewExportPanelCommand creates the command.
func NewExportPanelCommand(service exportService, telemetry Telemetry) *ExportPanelCommand {
	return &ExportPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ExportPanelInput] = (*ExportPanelCommand)(nil)

// Execute exports the panel's current view.
func (c *ExportPanelCommand) Execute(ctx context.Context, msg ExportPanelInput) error {
	if c.service == nil {
		return errors.New("export command requires service")
	}
	if msg.Sink == nil {
		return errors.New("export command requires a file sink")
	}
	if err := c.service.ExportPanel(ctx, msg.Viewer, msg.PanelID, msg.Sink, msg.Filename); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.panel.export", map[string]any{
		"panel_id": msg.PanelID,
		"filename": msg.Filename,
	})
	return nil
}
