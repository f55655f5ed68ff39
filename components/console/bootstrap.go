package console

import (
	"context"
	"errors"
	"fmt"
)

// RegisterAreas ensures console panel areas exist in the store.
func RegisterAreas(ctx context.Context, store PanelStore) error {
	if store == nil {
		return errMissingPanelStore
	}
	for _, area := range DefaultAreaDefinitions() {
		if _, err := store.EnsureArea(ctx, area); err != nil {
			return fmt.Errorf("console: register area %s: %w", area.Code, err)
		}
	}
	return nil
}

// RegisterDefinitions registers built-in panel definitions with the store and
// optionally with a provider registry.
func RegisterDefinitions(ctx context.Context, store PanelStore, registry ProviderRegistry) error {
	if store == nil {
		return errMissingPanelStore
	}
	for _, def := range DefaultPanelDefinitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("console: register definition %s: %w", def.Code, err)
		}
		if registry != nil {
			if err := registry.RegisterDefinition(def); err != nil {
				return fmt.Errorf("console: register definition in registry %s: %w", def.Code, err)
			}
		}
	}
	return nil
}

// SeedLayout creates the starter panel assignments.
func SeedLayout(ctx context.Context, service *Service) error {
	if service == nil {
		return errors.New("console: service is required to seed layout")
	}
	var seedErr error
	for _, input := range DefaultSeedPanels() {
		if err := service.AddPanel(ctx, input); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
	}
	return seedErr
}
