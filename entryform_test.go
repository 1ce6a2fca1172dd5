package entryform

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-entryform/components/locations"
	"github.com/goliatone/go-entryform/components/names"
	"github.com/goliatone/go-entryform/pkg/client"
	"github.com/goliatone/go-entryform/pkg/controller"
)

func TestLocalFactory_UsesMockedComponents(t *testing.T) {
	loc := locations.New(locations.WithLocations([]string{"USA", "Canada"}))
	nm, err := names.New(names.WithTakenNames([]string{"Bob"}))
	if err != nil {
		t.Fatalf("names: %v", err)
	}

	factory, err := LocalFactory(loc, nm, controller.WithDebounce(time.Hour))
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	ctrl, err := factory(context.Background())
	if err != nil {
		t.Fatalf("build controller: %v", err)
	}
	defer ctrl.Close()

	if diff := cmp.Diff([]string{"USA", "Canada"}, ctrl.State().Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	ctrl.OnNameChange("Bob")
	if err := ctrl.Settle(context.Background()); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if got := ctrl.State().Error; got != "The name is already taken" {
		t.Fatalf("expected taken message, got %q", got)
	}
}

func TestRemoteFactory_TalksToMockAPI(t *testing.T) {
	loc := locations.New(locations.WithLocations([]string{"Mexico"}))
	nm, err := names.New()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	mux := http.NewServeMux()
	if _, err := loc.RegisterRoutes(mux, "/"); err != nil {
		t.Fatalf("mount locations: %v", err)
	}
	if _, err := nm.RegisterRoutes(mux, "/"); err != nil {
		t.Fatalf("mount names: %v", err)
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	c, err := client.New(server.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	factory, err := RemoteFactory(c, controller.WithDebounce(time.Hour))
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	ctrl, err := factory(context.Background())
	if err != nil {
		t.Fatalf("build controller: %v", err)
	}
	defer ctrl.Close()

	if got := ctrl.State().Country; got != "Mexico" {
		t.Fatalf("expected Mexico selected, got %q", got)
	}
}

func TestFactories_RequireCollaborators(t *testing.T) {
	if _, err := LocalFactory(nil, nil); err == nil {
		t.Fatalf("expected error without components")
	}
	if _, err := RemoteFactory(nil); err == nil {
		t.Fatalf("expected error without client")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "page.tpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}
