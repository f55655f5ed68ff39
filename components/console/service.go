package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

var defaultAreas = []string{
	"console.area.main",
	"console.area.sidebar",
	"console.area.footer",
}

var (
	errMissingPanelStore = errors.New("console: panel store not configured")
	errInvalidArea       = errors.New("console: area code is required")
	errInvalidDefinition = errors.New("console: definition id is required")
	errInvalidPanelID    = errors.New("console: panel id is required")
)

// Options configures the console Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	PanelStore      PanelStore
	Authorizer      Authorizer
	PreferenceStore PreferenceStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Translator      TranslationService
	Areas           []string
}

// Service orchestrates console panels across areas, providers and viewer
// preferences.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	return &Service{opts: opts}
}

// AddPanel creates a panel instance and assigns it to an area.
func (s *Service) AddPanel(ctx context.Context, input AddPanelInput) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if input.AreaCode == "" {
		return errInvalidArea
	}
	if input.DefinitionID == "" {
		return errInvalidDefinition
	}
	if err := s.validateConfiguration(input.DefinitionID, input.Configuration); err != nil {
		return err
	}
	instance, err := store.CreateInstance(ctx, CreatePanelInstanceInput{
		DefinitionID:  input.DefinitionID,
		Configuration: input.Configuration,
		Visibility:    input.Visibility,
		Metadata:      input.Metadata,
	})
	if err != nil {
		return err
	}
	if err := store.AssignInstance(ctx, AssignPanelInput{
		AreaCode:   input.AreaCode,
		InstanceID: instance.ID,
		Position:   input.Position,
	}); err != nil {
		return err
	}
	instance.AreaCode = input.AreaCode
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		AreaCode: input.AreaCode,
		Instance: instance,
		Reason:   "add",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.add", map[string]any{
		"area_code":     input.AreaCode,
		"definition_id": input.DefinitionID,
	})
	return nil
}

// RemovePanel deletes the panel instance.
func (s *Service) RemovePanel(ctx context.Context, panelID string) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if panelID == "" {
		return errInvalidPanelID
	}
	if err := store.DeleteInstance(ctx, panelID); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		Instance: PanelInstance{ID: panelID},
		Reason:   "delete",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.remove", map[string]any{"panel_id": panelID})
	return nil
}

// ReorderPanels changes panel ordering within an area.
func (s *Service) ReorderPanels(ctx context.Context, areaCode string, panelIDs []string) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if areaCode == "" {
		return errInvalidArea
	}
	if err := store.ReorderArea(ctx, ReorderAreaInput{
		AreaCode: areaCode,
		PanelIDs: panelIDs,
	}); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		AreaCode: areaCode,
		Reason:   "reorder",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.reorder", map[string]any{
		"area_code": areaCode,
		"count":     len(panelIDs),
	})
	return nil
}

// ConfigureLayout resolves panels for each console area respecting viewer
// preferences and authorization.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	store, err := s.panelStore()
	if err != nil {
		return Layout{}, err
	}
	overrides, err := s.opts.PreferenceStore.LayoutOverrides(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	layout := Layout{Areas: make(map[string][]PanelInstance)}
	for _, area := range s.areaList() {
		resolved, err := store.ResolveArea(ctx, ResolveAreaInput{
			AreaCode: area,
			Audience: viewer.Roles,
			Locale:   viewer.Locale,
		})
		if err != nil {
			return Layout{}, err
		}
		for i := range resolved.Panels {
			resolved.Panels[i].AreaCode = area
		}
		filtered := s.filterAuthorized(ctx, viewer, resolved.Panels)
		ordered := applyOrderOverride(filtered, overrides.AreaOrder[area])
		layout.Areas[area] = applyHiddenFilter(ordered, overrides.HiddenPanels)
	}
	s.recordTelemetry(ctx, "console.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
	})
	return layout, nil
}

// ResolveArea retrieves a single area layout for the viewer.
func (s *Service) ResolveArea(ctx context.Context, viewer ViewerContext, areaCode string) (ResolvedArea, error) {
	store, err := s.panelStore()
	if err != nil {
		return ResolvedArea{}, err
	}
	resolved, err := store.ResolveArea(ctx, ResolveAreaInput{
		AreaCode: areaCode,
		Audience: viewer.Roles,
		Locale:   viewer.Locale,
	})
	if err != nil {
		return ResolvedArea{}, err
	}
	for i := range resolved.Panels {
		resolved.Panels[i].AreaCode = areaCode
	}
	resolved.Panels = s.filterAuthorized(ctx, viewer, resolved.Panels)
	s.recordTelemetry(ctx, "console.area.resolve", map[string]any{
		"viewer":    viewer.UserID,
		"area_code": areaCode,
	})
	return resolved, nil
}

// ExportPanel serializes a grid panel's current view through the sink. The
// panel's provider must support CSV export.
func (s *Service) ExportPanel(ctx context.Context, viewer ViewerContext, panelID string, sink datagrid.FileSink, filename string) error {
	if panelID == "" {
		return errInvalidPanelID
	}
	instance, err := s.findInstance(ctx, viewer, panelID)
	if err != nil {
		return err
	}
	provider, ok := s.opts.Providers.Provider(instance.DefinitionID)
	if !ok || provider == nil {
		return fmt.Errorf("console: no provider for definition: %s", instance.DefinitionID)
	}
	exporter, ok := provider.(CSVExporter)
	if !ok {
		return fmt.Errorf("console: panel %s does not support export", panelID)
	}
	meta := PanelContext{
		Instance:   instance,
		Viewer:     viewer,
		Translator: s.opts.Translator,
	}
	if err := exporter.ExportCSV(ctx, meta, sink, filename); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.export", map[string]any{
		"panel_id": panelID,
		"filename": filename,
	})
	return nil
}

func (s *Service) findInstance(ctx context.Context, viewer ViewerContext, panelID string) (PanelInstance, error) {
	store, err := s.panelStore()
	if err != nil {
		return PanelInstance{}, err
	}
	for _, area := range s.areaList() {
		resolved, err := store.ResolveArea(ctx, ResolveAreaInput{
			AreaCode: area,
			Audience: viewer.Roles,
			Locale:   viewer.Locale,
		})
		if err != nil {
			return PanelInstance{}, err
		}
		for _, inst := range resolved.Panels {
			if inst.ID != panelID {
				continue
			}
			inst.AreaCode = area
			if !s.opts.Authorizer.CanViewPanel(ctx, viewer, inst) {
				return PanelInstance{}, fmt.Errorf("console: panel not visible to viewer: %s", panelID)
			}
			return inst, nil
		}
	}
	return PanelInstance{}, fmt.Errorf("console: unknown panel: %s", panelID)
}

// NotifyPanelUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyPanelUpdated(ctx context.Context, event PanelEvent) error {
	if err := s.opts.RefreshHook.PanelUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.event", map[string]any{
		"area_code": event.AreaCode,
		"panel_id":  event.Instance.ID,
		"reason":    event.Reason,
	})
	return nil
}

// SavePreferences persists per-viewer layout overrides.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, overrides LayoutOverrides) error {
	if viewer.UserID == "" {
		return errors.New("console: viewer context missing user id")
	}
	normalizeOverrides(&overrides)
	return s.opts.PreferenceStore.SaveLayoutOverrides(ctx, viewer, overrides)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) panelStore() (PanelStore, error) {
	if s.opts.PanelStore == nil {
		return nil, errMissingPanelStore
	}
	return s.opts.PanelStore, nil
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	if s.opts.ConfigValidator == nil || s.opts.Providers == nil {
		return nil
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) areaList() []string {
	if len(s.opts.Areas) > 0 {
		return s.opts.Areas
	}
	return defaultAreas
}

func (s *Service) filterAuthorized(ctx context.Context, viewer ViewerContext, panels []PanelInstance) []PanelInstance {
	if len(panels) == 0 {
		return panels
	}
	var filtered []PanelInstance
	for _, p := range panels {
		if s.opts.Authorizer.CanViewPanel(ctx, viewer, p) {
			filtered = append(filtered, p)
		}
	}
	return s.attachProviderData(ctx, viewer, filtered)
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, panels []PanelInstance) []PanelInstance {
	if len(panels) == 0 || s.opts.Providers == nil {
		return panels
	}
	enriched := make([]PanelInstance, len(panels))
	copy(enriched, panels)
	for i, inst := range enriched {
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		data, err := provider.Fetch(ctx, PanelContext{
			Instance:   inst,
			Viewer:     viewer,
			Translator: s.opts.Translator,
		})
		if err != nil {
			s.recordTelemetry(ctx, "console.panel.provider_error", map[string]any{
				"definition_id": inst.DefinitionID,
				"error":         err.Error(),
			})
			continue
		}
		if enriched[i].Metadata == nil {
			enriched[i].Metadata = map[string]any{}
		}
		enriched[i].Metadata["data"] = data
	}
	return enriched
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewPanel(context.Context, ViewerContext, PanelInstance) bool {
	return true
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error {
	return nil
}
