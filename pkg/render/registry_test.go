package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type namedSurface string

func (s namedSurface) Name() string { return string(s) }

func (namedSurface) Run(context.Context, Factory) error { return nil }

func TestRegistry_RegisterGetList(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(namedSurface("tui"))
	r.MustRegister(namedSurface("prompt"))

	if diff := cmp.Diff([]string{"prompt", "tui"}, r.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !r.Has("tui") || r.Has("web") {
		t.Fatalf("unexpected Has results")
	}
	got, err := r.Get("prompt")
	if err != nil || got.Name() != "prompt" {
		t.Fatalf("expected prompt surface, got %v (%v)", got, err)
	}
	if _, err := r.Get("web"); err == nil {
		t.Fatalf("expected error for unknown surface")
	}
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Fatalf("expected error for nil surface")
	}
	if err := r.Register(namedSurface("")); err == nil {
		t.Fatalf("expected error for empty name")
	}
	r.MustRegister(namedSurface("tui"))
	if err := r.Register(namedSurface("tui")); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
