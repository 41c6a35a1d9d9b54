package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeAssetStylesheet is the manifest asset key the renderer looks up to
// replace the built-in stylesheet.
const ThemeAssetStylesheet = "formwizard.stylesheet"

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type rendererTheme struct {
	Name    string   `json:"name,omitempty"`
	Variant string   `json:"variant,omitempty"`
	CSSVars []cssVar `json:"css_vars,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	vars := make([]cssVar, 0, len(keys))
	for _, key := range keys {
		vars = append(vars, cssVar{Name: key, Value: cfg.CSSVars[key]})
	}
	return rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: vars,
	}
}

// ConfigFromSelection flattens a theme selection into renderer config. Variant
// tokens, templates and asset files override the manifest's; every token is
// also exposed as a CSS custom property named "--<token>".
func ConfigFromSelection(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	prefix := ""
	files := map[string]string{}
	if m := sel.Manifest; m != nil {
		if cfg.Theme == "" {
			cfg.Theme = m.Name
		}
		mergeInto(cfg.Tokens, m.Tokens)
		mergeInto(cfg.Partials, m.Templates)
		mergeInto(files, m.Assets.Files)
		prefix = m.Assets.Prefix

		if variant, ok := m.Variants[sel.Variant]; ok {
			mergeInto(cfg.Tokens, variant.Tokens)
			mergeInto(cfg.Partials, variant.Templates)
			mergeInto(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		return joinURL(prefix, file)
	}
	return cfg
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func joinURL(prefix, path string) string {
	if prefix == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}
