package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	console "github.com/goliatone/go-datagrid/components/console"
	"github.com/goliatone/go-datagrid/components/console/commands"
)

type stubExecutor struct {
	assigned  []console.AddPanelInput
	removed   []commands.RemovePanelInput
	reorders  []commands.ReorderPanelsInput
	refreshes []commands.RefreshPanelInput
	failWith  error
}

func (s *stubExecutor) Assign(_ context.Context, input console.AddPanelInput) error {
	s.assigned = append(s.assigned, input)
	return s.failWith
}

func (s *stubExecutor) Remove(_ context.Context, input commands.RemovePanelInput) error {
	s.removed = append(s.removed, input)
	return s.failWith
}

func (s *stubExecutor) Reorder(_ context.Context, input commands.ReorderPanelsInput) error {
	s.reorders = append(s.reorders, input)
	return s.failWith
}

func (s *stubExecutor) Refresh(_ context.Context, input commands.RefreshPanelInput) error {
	s.refreshes = append(s.refreshes, input)
	return s.failWith
}

func (s *stubExecutor) Preferences(context.Context, commands.SaveLayoutPreferencesInput) error {
	return s.failWith
}

func (s *stubExecutor) Export(context.Context, commands.ExportPanelInput) error {
	return s.failWith
}

func TestHandleAssignPanel(t *testing.T) {
	api := &stubExecutor{}
	handlers := &Handlers{API: api}

	body := `{"DefinitionID":"console.panel.metric_summary","AreaCode":"console.area.sidebar","Configuration":{"metric":"renders"}}`
	req := httptest.NewRequest(http.MethodPost, "/console/panels", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.HandleAssignPanel(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(api.assigned) != 1 || api.assigned[0].DefinitionID != "console.panel.metric_summary" {
		t.Fatalf("expected assign call, got %#v", api.assigned)
	}
}

func TestHandleAssignPanelRejectsBadJSON(t *testing.T) {
	handlers := &Handlers{API: &stubExecutor{}}
	req := httptest.NewRequest(http.MethodPost, "/console/panels", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handlers.HandleAssignPanel(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAssignPanelReportsExecutorError(t *testing.T) {
	handlers := &Handlers{API: &stubExecutor{failWith: errors.New("boom")}}
	req := httptest.NewRequest(http.MethodPost, "/console/panels", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handlers.HandleAssignPanel(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHandleRemovePanel(t *testing.T) {
	api := &stubExecutor{}
	handlers := &Handlers{API: api}
	req := httptest.NewRequest(http.MethodDelete, "/console/panels/inst-1", nil)
	rec := httptest.NewRecorder()
	handlers.HandleRemovePanel(rec, req, "inst-1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(api.removed) != 1 || api.removed[0].PanelID != "inst-1" {
		t.Fatalf("expected remove call, got %#v", api.removed)
	}
}

func TestHandleReorderPanels(t *testing.T) {
	api := &stubExecutor{}
	handlers := &Handlers{API: api}
	body := `{"area_code":"console.area.main","panel_ids":["b","a"]}`
	req := httptest.NewRequest(http.MethodPost, "/console/panels/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.HandleReorderPanels(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(api.reorders) != 1 || api.reorders[0].PanelIDs[0] != "b" {
		t.Fatalf("expected reorder call, got %#v", api.reorders)
	}
}

func TestHandleRefreshPanel(t *testing.T) {
	api := &stubExecutor{}
	handlers := &Handlers{API: api}
	body := `{"Event":{"AreaCode":"console.area.main","Reason":"refresh"}}`
	req := httptest.NewRequest(http.MethodPost, "/console/panels/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.HandleRefreshPanel(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(api.refreshes) != 1 || api.refreshes[0].Event.Reason != "refresh" {
		t.Fatalf("expected refresh call, got %#v", api.refreshes)
	}
}

func TestCommandExecutorGuardsNilCommanders(t *testing.T) {
	executor := &CommandExecutor{}
	ctx := context.Background()
	if err := executor.Assign(ctx, console.AddPanelInput{}); err == nil {
		t.Fatal("expected error for missing assign commander")
	}
	if err := executor.Remove(ctx, commands.RemovePanelInput{}); err == nil {
		t.Fatal("expected error for missing remove commander")
	}
	if err := executor.Reorder(ctx, commands.ReorderPanelsInput{}); err == nil {
		t.Fatal("expected error for missing reorder commander")
	}
	if err := executor.Refresh(ctx, commands.RefreshPanelInput{}); err == nil {
		t.Fatal("expected error for missing refresh commander")
	}
	if err := executor.Preferences(ctx, commands.SaveLayoutPreferencesInput{}); err == nil {
		t.Fatal("expected error for missing preferences commander")
	}
	if err := executor.Export(ctx, commands.ExportPanelInput{}); err == nil {
		t.Fatal("expected error for missing export commander")
	}
}

func TestCommandExecutorDelegates(t *testing.T) {
	service := console.NewService(console.Options{PanelStore: console.NewInMemoryPanelStore()})
	executor := &CommandExecutor{
		ReorderCommander: commands.NewReorderPanelsCommand(service, nil),
	}
	err := executor.Reorder(context.Background(), commands.ReorderPanelsInput{
		AreaCode: "console.area.main",
		PanelIDs: []string{"a"},
	})
	if err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}
}
