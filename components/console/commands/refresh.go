package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-datagrid/components/console"
)

// RefreshPanelInput emits refresh notifications for a panel instance.
type RefreshPanelInput struct {
	Event console.PanelEvent
}

type refreshNotifier interface {
	NotifyPanelUpdated(ctx context.Context, event console.PanelEvent) error
}

// RefreshPanelCommand triggers refresh hooks without forcing transports.
type RefreshPanelCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshPanelCommand creates the command.
func NewRefreshPanelCommand(service refreshNotifier, telemetry Telemetry) *RefreshPanelCommand {
	return &RefreshPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshPanelInput] = (*RefreshPanelCommand)(nil)

// Execute notifies the console service's refresh hooks.
func (c *RefreshPanelCommand) Execute(ctx context.Context, msg RefreshPanelInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyPanelUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.panel.refresh", map[string]any{
		"area_code": msg.Event.AreaCode,
		"panel_id":  msg.Event.Instance.ID,
	})
	return nil
}
