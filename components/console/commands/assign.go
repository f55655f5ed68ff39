package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-datagrid/components/console"
)

type assignService interface {
	AddPanel(ctx context.Context, input console.AddPanelInput) error
}

// AssignPanelCommand translates incoming requests into service calls and emits
// telemetry so operators can observe panel assignment activity.
type AssignPanelCommand struct {
	service   assignService
	telemetry Telemetry
}

// NewAssignPanelCommand creates a command instance.
func NewAssignPanelCommand(service assignService, telemetry Telemetry) *AssignPanelCommand {
	return &AssignPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[console.AddPanelInput] = (*AssignPanelCommand)(nil)

// Execute delegates to the console service.
func (c *AssignPanelCommand) Execute(ctx context.Context, msg console.AddPanelInput) error {
	if c.service == nil {
		return errors.New("assign command requires service")
	}
	if err := c.service.AddPanel(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.panel.assign", map[string]any{
		"definition_id": msg.DefinitionID,
		"area_code":     msg.AreaCode,
	})
	return nil
}
