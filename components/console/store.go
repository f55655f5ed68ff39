package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// InMemoryPanelStore is a concurrency-safe PanelStore useful for tests, demos
// and single-process deployments.
type InMemoryPanelStore struct {
	mu          sync.Mutex
	areas       map[string]PanelAreaDefinition
	definitions map[string]PanelDefinition
	instances   map[string]PanelInstance
	visibility  map[string]PanelVisibility
	assignments map[string][]string
}

// NewInMemoryPanelStore creates an empty store.
func NewInMemoryPanelStore() *InMemoryPanelStore {
	return &InMemoryPanelStore{
		areas:       map[string]PanelAreaDefinition{},
		definitions: map[string]PanelDefinition{},
		instances:   map[string]PanelInstance{},
		visibility:  map[string]PanelVisibility{},
		assignments: map[string][]string{},
	}
}

// EnsureArea upserts the area and reports whether it was created.
func (s *InMemoryPanelStore) EnsureArea(_ context.Context, def PanelAreaDefinition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.areas[def.Code]
	s.areas[def.Code] = def
	return !exists, nil
}

// EnsureDefinition upserts the definition and reports whether it was created.
func (s *InMemoryPanelStore) EnsureDefinition(_ context.Context, def PanelDefinition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.definitions[def.Code]
	s.definitions[def.Code] = def
	return !exists, nil
}

// CreateInstance stores a new panel instance with a generated ID.
func (s *InMemoryPanelStore) CreateInstance(_ context.Context, input CreatePanelInstanceInput) (PanelInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.DefinitionID == "" {
		return PanelInstance{}, fmt.Errorf("console: definition id is required")
	}
	instance := PanelInstance{
		ID:            uuid.NewString(),
		DefinitionID:  input.DefinitionID,
		Configuration: input.Configuration,
		Metadata:      input.Metadata,
	}
	s.instances[instance.ID] = instance
	s.visibility[instance.ID] = input.Visibility
	return instance, nil
}

// DeleteInstance removes the instance and all of its area assignments.
func (s *InMemoryPanelStore) DeleteInstance(_ context.Context, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.instances, instanceID)
	delete(s.visibility, instanceID)
	for area, ids := range s.assignments {
		s.assignments[area] = dropID(ids, instanceID)
	}
	return nil
}

// AssignInstance places the instance in an area, honoring Position.
func (s *InMemoryPanelStore) AssignInstance(_ context.Context, input AssignPanelInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[input.InstanceID]; !ok {
		return fmt.Errorf("console: unknown panel instance: %s", input.InstanceID)
	}
	order := dropID(s.assignments[input.AreaCode], input.InstanceID)
	if input.Position != nil && *input.Position >= 0 && *input.Position <= len(order) {
		idx := *input.Position
		order = append(order[:idx], append([]string{input.InstanceID}, order[idx:]...)...)
	} else {
		order = append(order, input.InstanceID)
	}
	s.assignments[input.AreaCode] = order
	return nil
}

// ReorderArea replaces the ordering for an area.
func (s *InMemoryPanelStore) ReorderArea(_ context.Context, input ReorderAreaInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[input.AreaCode] = append([]string{}, input.PanelIDs...)
	return nil
}

// ResolveArea returns assigned instances in display order, filtered by the
// audience roles encoded in each instance's visibility.
func (s *InMemoryPanelStore) ResolveArea(_ context.Context, input ResolveAreaInput) (ResolvedArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.assignments[input.AreaCode]
	panels := make([]PanelInstance, 0, len(ids))
	for _, id := range ids {
		inst, ok := s.instances[id]
		if !ok {
			continue
		}
		if !audienceAllowed(s.visibility[id], input.Audience) {
			continue
		}
		panels = append(panels, inst)
	}
	return ResolvedArea{
		AreaCode: input.AreaCode,
		Panels:   panels,
	}, nil
}

func audienceAllowed(vis PanelVisibility, audience []string) bool {
	if len(vis.Roles) == 0 {
		return true
	}
	for _, role := range vis.Roles {
		for _, have := range audience {
			if role == have {
				return true
			}
		}
	}
	return false
}

func dropID(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
