package console

import (
	"context"
	"time"
)

// PanelStore encapsulates persistence for console panel areas, definitions and
// instances. Implementations ensure thread safety and idempotency.
type PanelStore interface {
	EnsureArea(ctx context.Context, def PanelAreaDefinition) (bool, error)
	EnsureDefinition(ctx context.Context, def PanelDefinition) (bool, error)
	CreateInstance(ctx context.Context, input CreatePanelInstanceInput) (PanelInstance, error)
	DeleteInstance(ctx context.Context, instanceID string) error
	AssignInstance(ctx context.Context, input AssignPanelInput) error
	ReorderArea(ctx context.Context, input ReorderAreaInput) error
	ResolveArea(ctx context.Context, input ResolveAreaInput) (ResolvedArea, error)
}

// Authorizer determines if a viewer can see a panel instance.
type Authorizer interface {
	CanViewPanel(ctx context.Context, viewer ViewerContext, instance PanelInstance) bool
}

// PreferenceStore returns layout overrides per viewer.
type PreferenceStore interface {
	LayoutOverrides(ctx context.Context, viewer ViewerContext) (LayoutOverrides, error)
	SaveLayoutOverrides(ctx context.Context, viewer ViewerContext, overrides LayoutOverrides) error
}

// ProviderRegistry stores panel definitions/providers discoverable via hooks
// or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def PanelDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (PanelDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []PanelDefinition
}

// RefreshHook notifies transports (REST/WebSocket/SSE) about panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// PanelAreaDefinition models a console screen region.
type PanelAreaDefinition struct {
	Code        string
	Name        string
	Description string
}

// PanelDefinition describes a panel schema known to the console.
type PanelDefinition struct {
	Code        string
	Name        string
	Description string
	Schema      map[string]any
	Category    string
}

// PanelInstance is a configured panel placed in an area.
type PanelInstance struct {
	ID            string
	DefinitionID  string
	AreaCode      string
	Configuration map[string]any
	Metadata      map[string]any
}

// CreatePanelInstanceInput configures new instances.
type CreatePanelInstanceInput struct {
	DefinitionID  string
	Configuration map[string]any
	Visibility    PanelVisibility
	Metadata      map[string]any
}

// PanelVisibility defines runtime visibility constraints.
type PanelVisibility struct {
	Roles    []string
	StartAt  *time.Time
	EndAt    *time.Time
	Audience []string
}

// AddPanelInput creates a panel instance and places it in an area in one step.
type AddPanelInput struct {
	DefinitionID  string
	AreaCode      string
	Configuration map[string]any
	Metadata      map[string]any
	Visibility    PanelVisibility
	Position      *int
}

// AssignPanelInput associates a panel instance with an area.
type AssignPanelInput struct {
	AreaCode   string
	InstanceID string
	Position   *int
}

// ReorderAreaInput represents a new ordering for panels within an area.
type ReorderAreaInput struct {
	AreaCode string
	PanelIDs []string
}

// ResolveAreaInput requests panel instances for a given area and audience.
type ResolveAreaInput struct {
	AreaCode string
	Audience []string
	Locale   string
}

// ResolvedArea is a container for panels returned by the store.
type ResolvedArea struct {
	AreaCode string
	Panels   []PanelInstance
}

// LayoutOverrides captures per-viewer adjustments.
type LayoutOverrides struct {
	AreaOrder    map[string][]string
	HiddenPanels map[string]bool
}

// ViewerContext captures the active user/locale information needed to render
// console screens.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// Layout describes the resolved panel instances per console area.
type Layout struct {
	Areas map[string][]PanelInstance
}

// PanelEvent describes changes that transports might care about. Payload
// carries optional event data such as throttled live-series points.
type PanelEvent struct {
	AreaCode string
	Instance PanelInstance
	Reason   string
	Payload  map[string]any
}
