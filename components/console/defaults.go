package console

import (
	"context"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
)

var defaultAreaDefinitions = []PanelAreaDefinition{
	{Code: "console.area.main", Name: "Template Console (Main)", Description: "Primary analytics canvas"},
	{Code: "console.area.sidebar", Name: "Template Console (Sidebar)", Description: "Secondary panels"},
	{Code: "console.area.footer", Name: "Template Console (Footer)", Description: "Footer panels"},
}

var defaultPanelDefinitions = []PanelDefinition{
	{
		Code:        "console.panel.template_grid",
		Name:        "Template Grid",
		Description: "Scrollable, filterable template inventory with CSV export.",
		Category:    "grids",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"filter": map[string]any{
					"type": "string",
				},
				"columns": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"viewport_height": map[string]any{
					"type":    "integer",
					"minimum": 100,
					"default": 600,
				},
				"row_height": map[string]any{
					"type":    "integer",
					"minimum": 16,
					"default": 48,
				},
				"scroll_offset": map[string]any{
					"type":    "number",
					"minimum": 0,
					"default": 0,
				},
				"export_filename": map[string]any{
					"type":    "string",
					"default": "templates.csv",
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.metric_summary",
		Name:        "Metric Summary",
		Description: "Headline counters for the template catalog.",
		Category:    "stats",
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
	},
	{
		Code:        "console.panel.ab_test_results",
		Name:        "A/B Test Results",
		Description: "Variant performance for active template experiments.",
		Category:    "analytics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"experiment": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"confidence": map[string]any{
					"type":    "number",
					"minimum": 0,
					"maximum": 1,
					"default": 0.95,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.quality_scores",
		Name:        "Quality Scores",
		Description: "Rendering quality distribution per template.",
		Category:    "analytics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bucket_count": map[string]any{
					"type":    "integer",
					"minimum": 2,
					"maximum": 20,
					"default": 10,
				},
				"threshold": map[string]any{
					"type":    "number",
					"minimum": 0,
					"maximum": 1,
					"default": 0.6,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.usage_trend",
		Name:        "Usage Trend",
		Description: "Render volume over time, downsampled for display.",
		Category:    "analytics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lookback_days": map[string]any{
					"type":    "integer",
					"minimum": 7,
					"maximum": 180,
					"default": 30,
				},
				"max_points": map[string]any{
					"type":    "integer",
					"minimum": 2,
					"default": 120,
				},
				"sample_strategy": map[string]any{
					"type":    "string",
					"enum":    []string{"uniform", "adaptive", "time-based"},
					"default": "time-based",
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.bar_chart",
		Name:        "Bar Chart",
		Description: "Interactive bar chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "console.panel.line_chart",
		Name:        "Line Chart",
		Description: "Interactive line chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "console.panel.pie_chart",
		Name:        "Pie Chart",
		Description: "Interactive pie chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
	{
		Code:        "console.panel.scatter_chart",
		Name:        "Scatter Chart",
		Description: "Value-vs-value scatter visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "console.panel.gauge_chart",
		Name:        "Gauge Chart",
		Description: "Single-value gauge visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
}

func chartSeriesSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "data"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":    "string",
				"default": "Series",
			},
			"data": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"oneOf": []map[string]any{
						{"type": "number"},
						{
							"type":     "object",
							"required": []string{"value"},
							"properties": map[string]any{
								"name":  map[string]any{"type": "string"},
								"value": map[string]any{"type": "number"},
								"x":     map[string]any{"type": "number"},
								"y":     map[string]any{"type": "number"},
							},
						},
						{
							"type":     "object",
							"required": []string{"x", "y"},
							"properties": map[string]any{
								"name": map[string]any{"type": "string"},
								"x":    map[string]any{"type": "number"},
								"y":    map[string]any{"type": "number"},
							},
						},
						{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "number",
							},
						},
					},
				},
			},
		},
	}
}

func chartConfigSchema(includeAxis bool) map[string]any {
	props := map[string]any{
		"title": map[string]any{
			"type":    "string",
			"default": "Chart",
		},
		"subtitle": map[string]any{
			"type": "string",
		},
		"series": map[string]any{
			"type":     "array",
			"items":    chartSeriesSchema(),
			"minItems": 1,
		},
		"theme": map[string]any{
			"type": "string",
			"enum": []string{
				string(types.ThemeWesteros),
				string(types.ThemeWalden),
				string(types.ThemeWonderland),
				string(types.ThemeChalk),
			},
		},
		"dynamic": map[string]any{
			"type":    "boolean",
			"default": false,
		},
		"refresh_endpoint": map[string]any{
			"type": "string",
		},
		"max_points": map[string]any{
			"type":    "integer",
			"minimum": 2,
		},
		"sample_strategy": map[string]any{
			"type": "string",
			"enum": []string{"uniform", "adaptive", "time-based"},
		},
		"axis_key": map[string]any{
			"type": "string",
		},
	}
	if includeAxis {
		props["x_axis"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
			},
			"default": []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		}
	}
	return map[string]any{
		"type":       "object",
		"required":   []string{"series"},
		"properties": props,
	}
}

var defaultProviders = map[string]Provider{
	"console.panel.template_grid": NewGridPanelProvider(NewDemoTemplateSource()),
	"console.panel.metric_summary": ProviderFunc(func(ctx context.Context, meta PanelContext) (PanelData, error) {
		title := translateOrFallback(ctx, meta.Translator, "console.panel.metric_summary.data_title", meta.Viewer.Locale, "Templates", nil)
		return PanelData{
			"title":  title,
			"metric": meta.Instance.Configuration["metric"],
			"values": map[string]int{"templates": 412, "renders": 98210, "exports": 134},
		}, nil
	}),
	"console.panel.ab_test_results": NewABTestProvider(DemoABTestRepository{}),
	"console.panel.quality_scores":  NewQualityScoresProvider(DemoQualityRepository{}),
	"console.panel.usage_trend":     NewUsageTrendProvider(DemoUsageRepository{}),
}

var defaultSeedConfigs = []AddPanelInput{
	{
		DefinitionID:  "console.panel.template_grid",
		AreaCode:      "console.area.main",
		Configuration: map[string]any{"export_filename": "templates.csv"},
	},
	{
		DefinitionID:  "console.panel.metric_summary",
		AreaCode:      "console.area.sidebar",
		Configuration: map[string]any{"metric": "templates"},
	},
	{
		DefinitionID:  "console.panel.usage_trend",
		AreaCode:      "console.area.footer",
		Configuration: map[string]any{"lookback_days": 30},
	},
}

// DefaultAreaDefinitions returns copies of built-in area definitions.
func DefaultAreaDefinitions() []PanelAreaDefinition {
	out := make([]PanelAreaDefinition, len(defaultAreaDefinitions))
	copy(out, defaultAreaDefinitions)
	return out
}

// DefaultPanelDefinitions returns copies of built-in panel definitions.
func DefaultPanelDefinitions() []PanelDefinition {
	out := make([]PanelDefinition, len(defaultPanelDefinitions))
	copy(out, defaultPanelDefinitions)
	return out
}

// DefaultSeedPanels returns starter panel configurations.
func DefaultSeedPanels() []AddPanelInput {
	out := make([]AddPanelInput, len(defaultSeedConfigs))
	for i, cfg := range defaultSeedConfigs {
		copyCfg := cfg
		if cfg.Visibility.StartAt != nil {
			start := *cfg.Visibility.StartAt
			copyCfg.Visibility.StartAt = &start
		}
		if cfg.Visibility.EndAt != nil {
			end := *cfg.Visibility.EndAt
			copyCfg.Visibility.EndAt = &end
		}
		out[i] = copyCfg
	}
	return out
}

// DefaultPanelVisibility returns a permissive visibility configuration for seeds.
func DefaultPanelVisibility() PanelVisibility {
	now := time.Now().UTC()
	return PanelVisibility{
		StartAt: &now,
	}
}
