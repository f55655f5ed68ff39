package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemovePanelInput identifies the panel instance to remove.
type RemovePanelInput struct {
	PanelID string `json:"panel_id"`
	ActorID string `json:"actor_id"`
}

type removeService interface {
	RemovePanel(ctx context.Context, panelID string) error
}

// RemovePanelCommand wraps Service.RemovePanel.
type RemovePanelCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemovePanelCommand builds a command instance.
func NewRemovePanelCommand(service removeService, telemetry Telemetry) *RemovePanelCommand {
	return &RemovePanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemovePanelInput] = (*RemovePanelCommand)(nil)

// Execute removes the panel.
func (c *RemovePanelCommand) Execute(ctx context.Context, msg RemovePanelInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if err := c.service.RemovePanel(ctx, msg.PanelID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.panel.remove", map[string]any{"panel_id": msg.PanelID})
	return nil
}
