package console

import (
	"context"
	"testing"
)

func TestPreferenceStoreRoundTrip(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	viewer := ViewerContext{UserID: "user-1"}

	err := store.SaveLayoutOverrides(ctx, viewer, LayoutOverrides{
		AreaOrder:    map[string][]string{"console.area.main": {"b", "a"}},
		HiddenPanels: map[string]bool{"c": true},
	})
	if err != nil {
		t.Fatalf("SaveLayoutOverrides returned error: %v", err)
	}

	overrides, err := store.LayoutOverrides(ctx, viewer)
	if err != nil {
		t.Fatalf("LayoutOverrides returned error: %v", err)
	}
	if got := overrides.AreaOrder["console.area.main"]; len(got) != 2 || got[0] != "b" {
		t.Fatalf("unexpected area order: %#v", got)
	}
	if !overrides.HiddenPanels["c"] {
		t.Fatalf("expected hidden panel retained, got %#v", overrides.HiddenPanels)
	}
}

func TestPreferenceStoreDefaultsForUnknownViewer(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	overrides, err := store.LayoutOverrides(context.Background(), ViewerContext{UserID: "missing"})
	if err != nil {
		t.Fatalf("LayoutOverrides returned error: %v", err)
	}
	if overrides.AreaOrder == nil || overrides.HiddenPanels == nil {
		t.Fatalf("expected initialized maps, got %#v", overrides)
	}
	if len(overrides.AreaOrder) != 0 || len(overrides.HiddenPanels) != 0 {
		t.Fatalf("expected empty defaults, got %#v", overrides)
	}
}

func TestPreferenceStoreRequiresUserID(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	err := store.SaveLayoutOverrides(context.Background(), ViewerContext{}, LayoutOverrides{})
	if err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestPreferenceStoreNormalizesNilMaps(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "user-2"}
	if err := store.SaveLayoutOverrides(context.Background(), viewer, LayoutOverrides{}); err != nil {
		t.Fatalf("SaveLayoutOverrides returned error: %v", err)
	}
	overrides, _ := store.LayoutOverrides(context.Background(), viewer)
	if overrides.AreaOrder == nil || overrides.HiddenPanels == nil {
		t.Fatalf("expected normalized maps, got %#v", overrides)
	}
}

func TestApplyOrderOverride(t *testing.T) {
	panels := []PanelInstance{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	ordered := applyOrderOverride(panels, []string{"c", "a"})
	if len(ordered) != 3 {
		t.Fatalf("expected all panels retained, got %d", len(ordered))
	}
	if ordered[0].ID != "c" || ordered[1].ID != "a" || ordered[2].ID != "b" {
		t.Fatalf("unexpected order: %#v", ordered)
	}
}

func TestApplyOrderOverrideIgnoresUnknownIDs(t *testing.T) {
	panels := []PanelInstance{{ID: "a"}}
	ordered := applyOrderOverride(panels, []string{"ghost", "a"})
	if len(ordered) != 1 || ordered[0].ID != "a" {
		t.Fatalf("unexpected order: %#v", ordered)
	}
}

func TestApplyHiddenFilter(t *testing.T) {
	panels := []PanelInstance{{ID: "a"}, {ID: "b"}}
	visible := applyHiddenFilter(panels, map[string]bool{"a": true})
	if len(visible) != 1 || visible[0].ID != "b" {
		t.Fatalf("unexpected visible set: %#v", visible)
	}
}
