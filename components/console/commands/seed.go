package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-datagrid/components/console"
)

// SeedConsoleInput controls bootstrap behavior.
type SeedConsoleInput struct {
	SeedLayout bool
}

// SeedConsoleCommand registers areas/definitions and optionally seeds layout.
type SeedConsoleCommand struct {
	store     console.PanelStore
	registry  console.ProviderRegistry
	service   *console.Service
	telemetry Telemetry
}

// NewSeedConsoleCommand wires dependencies.
func NewSeedConsoleCommand(store console.PanelStore, registry console.ProviderRegistry, service *console.Service, telemetry Telemetry) *SeedConsoleCommand {
	return &SeedConsoleCommand{
		store:     store,
		registry:  registry,
		service:   service,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedConsoleInput] = (*SeedConsoleCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedConsoleCommand) Execute(ctx context.Context, msg SeedConsoleInput) error {
	if c.store == nil {
		return errors.New("seed command requires panel store")
	}
	if err := console.RegisterAreas(ctx, c.store); err != nil {
		return err
	}
	if err := console.RegisterDefinitions(ctx, c.store, c.registry); err != nil {
		return err
	}
	if msg.SeedLayout && c.service != nil {
		if err := console.SeedLayout(ctx, c.service); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "console.seed", map[string]any{"seed_layout": msg.SeedLayout})
	return nil
}
