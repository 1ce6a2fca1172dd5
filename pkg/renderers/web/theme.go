package web

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultManifest is the stock light theme with a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "entryform",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#3b5bdb",
			"surface": "#ffffff",
			"text":    "#1f2933",
			"muted":   "#6b7280",
			"danger":  "#c92a2a",
			"border":  "#d0d5dd",
			"font":    "system-ui, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f3f4f6",
					"muted":   "#9ca3af",
					"border":  "#374151",
				},
			},
		},
	}
}

// ManifestSelector serves a single manifest as a theme.ThemeSelector.
type ManifestSelector struct {
	manifest *theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector wraps manifest.
func NewManifestSelector(manifest *theme.Manifest) *ManifestSelector {
	return &ManifestSelector{manifest: manifest}
}

// Select returns the manifest; an unknown variant is an error.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || s.manifest == nil {
		return nil, fmt.Errorf("web: no theme manifest configured")
	}
	if name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("web: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("web: theme %q has no variant %q", s.manifest.Name, variant)
		}
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}

type pageTheme struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	CSSVars string `json:"css_vars"`
}

// resolveTheme merges variant tokens over the base ones and renders them as
// CSS custom properties.
func resolveTheme(selection *theme.Selection) pageTheme {
	if selection == nil || selection.Manifest == nil {
		return pageTheme{}
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return pageTheme{
		Name:    selection.Theme,
		Variant: selection.Variant,
		CSSVars: cssVars(tokens),
	}
}

func cssVars(tokens map[string]string) string {
	keys := make([]string, 0, len(tokens))
	for key, value := range tokens {
		if !safeToken(key) || !safeToken(value) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimPrefix(strings.TrimSpace(key), "--")
		fmt.Fprintf(&b, "--%s: %s;", name, strings.TrimSpace(tokens[key]))
	}
	return b.String()
}

// safeToken rejects values that could break out of a declaration block.
func safeToken(s string) bool {
	return strings.TrimSpace(s) != "" && !strings.ContainsAny(s, ";{}<>\\\"'")
}
