package console

import (
	"context"
	"testing"
)

func TestRegisterAreasAndDefinitions(t *testing.T) {
	store := NewInMemoryPanelStore()
	registry := NewRegistry()
	ctx := context.Background()

	if err := RegisterAreas(ctx, store); err != nil {
		t.Fatalf("RegisterAreas returned error: %v", err)
	}
	if err := RegisterDefinitions(ctx, store, registry); err != nil {
		t.Fatalf("RegisterDefinitions returned error: %v", err)
	}

	created, err := store.EnsureArea(ctx, PanelAreaDefinition{Code: "console.area.main", Name: "Main"})
	if err != nil {
		t.Fatalf("EnsureArea returned error: %v", err)
	}
	if created {
		t.Fatal("expected main area to already exist after registration")
	}
	if _, ok := registry.Definition("console.panel.template_grid"); !ok {
		t.Fatal("expected grid definition registered")
	}
}

func TestRegisterAreasRequiresStore(t *testing.T) {
	if err := RegisterAreas(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil store")
	}
	if err := RegisterDefinitions(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestSeedLayoutCreatesStarterPanels(t *testing.T) {
	store := NewInMemoryPanelStore()
	service := NewService(Options{PanelStore: store})
	ctx := context.Background()

	if err := SeedLayout(ctx, service); err != nil {
		t.Fatalf("SeedLayout returned error: %v", err)
	}

	for _, area := range []string{"console.area.main", "console.area.sidebar", "console.area.footer"} {
		resolved, err := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: area})
		if err != nil {
			t.Fatalf("ResolveArea returned error: %v", err)
		}
		if len(resolved.Panels) == 0 {
			t.Fatalf("expected seeded panel in %s", area)
		}
	}
}

func TestSeedLayoutRequiresService(t *testing.T) {
	if err := SeedLayout(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}
