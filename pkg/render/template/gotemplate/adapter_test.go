package gotemplate

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"rows.tpl":       {Data: []byte("{% for row in table %}{{ row.name }}/{{ row.country }};{% endfor %}")},
		"escape.tpl":     {Data: []byte("{{ value }}")},
	}
	engine, err := New(append([]Option{WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)
	var sb strings.Builder

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada" || sb.String() != "Hello Ada" {
		t.Fatalf("unexpected output %q / %q", got, sb.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_StructDataUsesJSONTags(t *testing.T) {
	type row struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	}
	engine := newEngine(t)

	got, err := engine.RenderTemplate("rows", struct {
		Table []row `json:"table"`
	}{Table: []row{{"Alice", "USA"}, {"Bob", "Canada"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Alice/USA;Bob/Canada;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_AutoEscapes(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"value": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_RenderStringAndFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("entryform_test_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.Render("{{ name|entryform_test_shout }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}

	if err := engine.RegisterFilter("entryform_test_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestEngine_NumbersRenderVerbatim(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("{{ page.count }}/{{ delay }}", map[string]any{
		"page":  struct{ Count int `json:"count"` }{Count: 42},
		"delay": 600,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "42/600" {
		t.Fatalf("expected 42/600, got %q", got)
	}
}
