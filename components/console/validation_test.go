package console

import (
	"strings"
	"testing"
)

func metricDefinition() PanelDefinition {
	return PanelDefinition{
		Code: "console.panel.metric_summary",
		Name: "Metric Summary",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"metric"},
			"properties": map[string]any{
				"metric": map[string]any{
					"type": "string",
					"enum": []string{"templates", "renders", "exports"},
				},
			},
		},
	}
}

func TestJSONSchemaValidatorAcceptsValidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(metricDefinition(), map[string]any{"metric": "renders"})
	if err != nil {
		t.Fatalf("expected valid configuration, got %v", err)
	}
}

func TestJSONSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(metricDefinition(), map[string]any{"metric": "unknown"})
	if err == nil {
		t.Fatal("expected enum violation")
	}
	if !strings.Contains(err.Error(), "console.panel.metric_summary") {
		t.Fatalf("error should name the panel code, got %v", err)
	}
}

func TestJSONSchemaValidatorRejectsMissingRequired(t *testing.T) {
	validator := NewJSONSchemaValidator()
	if err := validator.Validate(metricDefinition(), map[string]any{}); err == nil {
		t.Fatal("expected missing required field error")
	}
}

func TestJSONSchemaValidatorCachesCompiledSchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := metricDefinition()
	for i := 0; i < 3; i++ {
		if err := validator.Validate(def, map[string]any{"metric": "templates"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected one compiled schema, got %d", len(validator.compiled))
	}
}

func TestJSONSchemaValidatorSkipsEmptySchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := PanelDefinition{Code: "console.panel.free_form", Name: "Free Form"}
	if err := validator.Validate(def, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected empty schema to pass, got %v", err)
	}
}
