package gorouter

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	console "github.com/goliatone/go-datagrid/components/console"
)

func TestRegisterRequiresRouter(t *testing.T) {
	err := Register(Config[*fiber.App]{
		Controller: &console.Controller{},
	})
	if err == nil {
		t.Fatal("expected error for missing router")
	}
}

func TestRegisterRequiresController(t *testing.T) {
	err := Register(Config[*fiber.App]{})
	if err == nil {
		t.Fatal("expected error for missing router and controller")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{})
	if routes.HTML != "/console" {
		t.Fatalf("unexpected HTML route: %s", routes.HTML)
	}
	if routes.PanelID != "/console/panels/:id" {
		t.Fatalf("unexpected panel route: %s", routes.PanelID)
	}
	if routes.Export != "/console/panels/:id/export" {
		t.Fatalf("unexpected export route: %s", routes.Export)
	}
	if routes.WebSocket != "/console/ws" {
		t.Fatalf("unexpected websocket route: %s", routes.WebSocket)
	}
}

func TestDefaultRouteConfigKeepsOverrides(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{HTML: "/dashboard", Export: "/dl/:id"})
	if routes.HTML != "/dashboard" {
		t.Fatalf("expected override kept, got %s", routes.HTML)
	}
	if routes.Export != "/dl/:id" {
		t.Fatalf("expected override kept, got %s", routes.Export)
	}
	if routes.Layout != "/console/_layout" {
		t.Fatalf("expected default filled, got %s", routes.Layout)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"en-US,en;q=0.9", "en-us"},
		{"fr;q=0.8, en;q=0.7", "fr"},
		{" , de", "de"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := parseAcceptLanguage(tc.header); got != tc.want {
			t.Fatalf("parseAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
