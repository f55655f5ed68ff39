package console

import (
	"context"
	"testing"
)

func mustCreate(t *testing.T, store *InMemoryPanelStore, definitionID string, vis PanelVisibility) PanelInstance {
	t.Helper()
	instance, err := store.CreateInstance(context.Background(), CreatePanelInstanceInput{
		DefinitionID: definitionID,
		Visibility:   vis,
	})
	if err != nil {
		t.Fatalf("CreateInstance returned error: %v", err)
	}
	return instance
}

func TestInMemoryStoreAssignAndResolve(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()

	first := mustCreate(t, store, "console.panel.metric_summary", PanelVisibility{})
	second := mustCreate(t, store, "console.panel.template_grid", PanelVisibility{})

	for _, inst := range []PanelInstance{first, second} {
		if err := store.AssignInstance(ctx, AssignPanelInput{AreaCode: "console.area.main", InstanceID: inst.ID}); err != nil {
			t.Fatalf("AssignInstance returned error: %v", err)
		}
	}

	resolved, err := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: "console.area.main"})
	if err != nil {
		t.Fatalf("ResolveArea returned error: %v", err)
	}
	if len(resolved.Panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(resolved.Panels))
	}
	if resolved.Panels[0].ID != first.ID || resolved.Panels[1].ID != second.ID {
		t.Fatalf("expected assignment order preserved, got %#v", resolved.Panels)
	}
}

func TestInMemoryStoreAssignAtPosition(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()

	first := mustCreate(t, store, "a", PanelVisibility{})
	second := mustCreate(t, store, "b", PanelVisibility{})
	third := mustCreate(t, store, "c", PanelVisibility{})

	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: first.ID})
	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: second.ID})

	pos := 0
	if err := store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: third.ID, Position: &pos}); err != nil {
		t.Fatalf("AssignInstance returned error: %v", err)
	}

	resolved, _ := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: "area"})
	if resolved.Panels[0].ID != third.ID {
		t.Fatalf("expected positioned panel first, got %#v", resolved.Panels)
	}
}

func TestInMemoryStoreRejectsUnknownInstance(t *testing.T) {
	store := NewInMemoryPanelStore()
	err := store.AssignInstance(context.Background(), AssignPanelInput{AreaCode: "area", InstanceID: "ghost"})
	if err == nil {
		t.Fatal("expected error for unknown instance")
	}
}

func TestInMemoryStoreReorderArea(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()

	first := mustCreate(t, store, "a", PanelVisibility{})
	second := mustCreate(t, store, "b", PanelVisibility{})
	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: first.ID})
	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: second.ID})

	if err := store.ReorderArea(ctx, ReorderAreaInput{AreaCode: "area", PanelIDs: []string{second.ID, first.ID}}); err != nil {
		t.Fatalf("ReorderArea returned error: %v", err)
	}
	resolved, _ := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: "area"})
	if resolved.Panels[0].ID != second.ID {
		t.Fatalf("expected reorder applied, got %#v", resolved.Panels)
	}
}

func TestInMemoryStoreDeleteRemovesAssignments(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()

	inst := mustCreate(t, store, "a", PanelVisibility{})
	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: inst.ID})

	if err := store.DeleteInstance(ctx, inst.ID); err != nil {
		t.Fatalf("DeleteInstance returned error: %v", err)
	}
	resolved, _ := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: "area"})
	if len(resolved.Panels) != 0 {
		t.Fatalf("expected empty area after delete, got %#v", resolved.Panels)
	}
}

func TestInMemoryStoreVisibilityRoles(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()

	open := mustCreate(t, store, "a", PanelVisibility{})
	restricted := mustCreate(t, store, "b", PanelVisibility{Roles: []string{"admin"}})
	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: open.ID})
	_ = store.AssignInstance(ctx, AssignPanelInput{AreaCode: "area", InstanceID: restricted.ID})

	anon, _ := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: "area"})
	if len(anon.Panels) != 1 || anon.Panels[0].ID != open.ID {
		t.Fatalf("expected restricted panel hidden, got %#v", anon.Panels)
	}

	admin, _ := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: "area", Audience: []string{"admin"}})
	if len(admin.Panels) != 2 {
		t.Fatalf("expected both panels for admin, got %#v", admin.Panels)
	}
}

func TestInMemoryStoreEnsureIdempotent(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()

	created, err := store.EnsureArea(ctx, PanelAreaDefinition{Code: "area", Name: "Area"})
	if err != nil || !created {
		t.Fatalf("expected first ensure to create, got created=%v err=%v", created, err)
	}
	created, err = store.EnsureArea(ctx, PanelAreaDefinition{Code: "area", Name: "Area"})
	if err != nil || created {
		t.Fatalf("expected second ensure to upsert, got created=%v err=%v", created, err)
	}
}
