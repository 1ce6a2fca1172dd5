package web

import (
	"testing"

	theme "github.com/goliatone/go-theme"
)

func TestCSSVars_SortsAndDropsUnsafeTokens(t *testing.T) {
	got := cssVars(map[string]string{
		"brand":    "#123456",
		"--accent": "red",
		"evil":     "red;} body{display:none",
		"empty":    " ",
	})
	want := "--accent: red;--brand: #123456;"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestResolveTheme_MergesVariantTokens(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "text": "#000"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"text": "#fff"}},
		},
	}
	selection, err := NewManifestSelector(manifest).Select("acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	got := resolveTheme(selection)
	if got.CSSVars != "--brand: #123456;--text: #fff;" {
		t.Fatalf("unexpected css vars %q", got.CSSVars)
	}
	if got.Name != "acme" || got.Variant != "dark" {
		t.Fatalf("unexpected theme identity %+v", got)
	}
}

func TestManifestSelector_UnknownTheme(t *testing.T) {
	if _, err := NewManifestSelector(DefaultManifest()).Select("other", ""); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Alice":                 "Alice",
		" spaced ":              " spaced ",
		"<script>x</script>Bob": "Bob",
		"Tom & Jerry":           "Tom & Jerry",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitizeName(%q): expected %q, got %q", in, want, got)
		}
	}
}
