package console

import (
	"context"
	"errors"
	"io"
)

const defaultTemplateName = "console"

// ControllerOptions wires the controller's collaborators.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Template string
}

// Controller orchestrates HTTP handlers/routes for the console.
type Controller struct {
	service  *Service
	renderer Renderer
	template string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	template := opts.Template
	if template == "" {
		template = defaultTemplateName
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: template,
	}
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.service == nil {
		return Layout{}, nil
	}
	return c.service.ConfigureLayout(ctx, viewer)
}

// RenderTemplate resolves the layout and writes rendered HTML to out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("console: controller requires a renderer")
	}
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, templateContext(viewer, layout), out)
	return err
}

// LayoutPayload resolves the layout as a JSON-friendly payload for API
// consumers and client-side refreshes.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return templateContext(viewer, layout), nil
}

func templateContext(viewer ViewerContext, layout Layout) map[string]any {
	areas := make(map[string][]map[string]any, len(layout.Areas))
	for code, panels := range layout.Areas {
		views := make([]map[string]any, 0, len(panels))
		for _, panel := range panels {
			view := map[string]any{
				"id":            panel.ID,
				"definition_id": panel.DefinitionID,
				"area_code":     panel.AreaCode,
				"configuration": panel.Configuration,
			}
			if panel.Metadata != nil {
				if data, ok := panel.Metadata["data"]; ok {
					view["data"] = data
				}
			}
			views = append(views, view)
		}
		areas[code] = views
	}
	return map[string]any{
		"viewer": map[string]any{
			"user_id": viewer.UserID,
			"locale":  viewer.Locale,
		},
		"areas": areas,
	}
}
