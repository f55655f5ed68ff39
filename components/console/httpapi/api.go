package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-datagrid/components/console"
	"github.com/goliatone/go-datagrid/components/console/commands"
)

// Executor is the transport-facing surface of the console command layer.
// Routers call it without knowing which commands back each operation.
type Executor interface {
	Assign(ctx context.Context, input console.AddPanelInput) error
	Remove(ctx context.Context, input commands.RemovePanelInput) error
	Reorder(ctx context.Context, input commands.ReorderPanelsInput) error
	Refresh(ctx context.Context, input commands.RefreshPanelInput) error
	Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error
	Export(ctx context.Context, input commands.ExportPanelInput) error
}

// CommandExecutor adapts gocommand Commanders to the Executor interface.
type CommandExecutor struct {
	AssignCommander      gocommand.Commander[console.AddPanelInput]
	RemoveCommander      gocommand.Commander[commands.RemovePanelInput]
	ReorderCommander     gocommand.Commander[commands.ReorderPanelsInput]
	RefreshCommander     gocommand.Commander[commands.RefreshPanelInput]
	PreferencesCommander gocommand.Commander[commands.SaveLayoutPreferencesInput]
	ExportCommander      gocommand.Commander[commands.ExportPanelInput]
}

var _ Executor = (*CommandExecutor)(nil)

// Assign creates and places a panel.
func (e *CommandExecutor) Assign(ctx context.Context, input console.AddPanelInput) error {
	if e.AssignCommander == nil {
		return errors.New("httpapi: assign command not configured")
	}
	return e.AssignCommander.Execute(ctx, input)
}

// Remove deletes a panel instance.
func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemovePanelInput) error {
	if e.RemoveCommander == nil {
		return errors.New("httpapi: remove command not configured")
	}
	return e.RemoveCommander.Execute(ctx, input)
}

// Reorder applies a new panel ordering for an area.
func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderPanelsInput) error {
	if e.ReorderCommander == nil {
		return errors.New("httpapi: reorder command not configured")
	}
	return e.ReorderCommander.Execute(ctx, input)
}

// Refresh emits a refresh event for a panel.
func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshPanelInput) error {
	if e.RefreshCommander == nil {
		return errors.New("httpapi: refresh command not configured")
	}
	return e.RefreshCommander.Execute(ctx, input)
}

// Preferences persists viewer layout overrides.
func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error {
	if e.PreferencesCommander == nil {
		return errors.New("httpapi: preferences command not configured")
	}
	return e.PreferencesCommander.Execute(ctx, input)
}

// Export serializes a panel's current view as CSV.
func (e *CommandExecutor) Export(ctx context.Context, input commands.ExportPanelInput) error {
	if e.ExportCommander == nil {
		return errors.New("httpapi: export command not configured")
	}
	return e.ExportCommander.Execute(ctx, input)
}

// Handlers exposes net/http endpoints backed by shared commands, for
// applications that mount the console without go-router.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleAssignPanel(w http.ResponseWriter, r *http.Request) {
	var payload console.AddPanelInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Assign(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemovePanel(w http.ResponseWriter, r *http.Request, panelID string) {
	input := commands.RemovePanelInput{PanelID: panelID}
	if err := h.API.Remove(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorderPanels(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderPanelsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshPanel(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshPanelInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
