package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	gotemplate "github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	landingTemplate = "landing.tpl"
	wizardTemplate  = "wizard.tpl"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheetURL    string
	lang             string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// layout.tpl, landing.tpl and wizard.tpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine. The engine must
// provide the plain, help_html and percent filters.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheetURL links an external stylesheet instead of inlining the
// embedded one. A theme asset named ThemeAssetStylesheet wins over both.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = strings.TrimSpace(url)
	}
}

// WithLang sets the document language attribute.
func WithLang(lang string) Option {
	return func(cfg *config) {
		cfg.lang = strings.TrimSpace(lang)
	}
}

// Renderer draws the landing and wizard pages as complete HTML documents.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	stylesheetURL string
	inlineCSS     string
	lang          string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs an HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), lang: "en"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.templateRenderer == nil {
		for _, name := range []string{"layout.tpl", landingTemplate, wizardTemplate} {
			if _, err := fs.Stat(cfg.templateFS, name); err != nil {
				return nil, fmt.Errorf("html renderer: template %q not found: %w", name, err)
			}
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithFilter("plain", filterPlain),
			gotemplate.WithFilter("help_html", filterHelpHTML),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		cfg.templateRenderer = engine
	}

	return &Renderer{
		templates:     cfg.templateRenderer,
		stylesheetURL: cfg.stylesheetURL,
		inlineCSS:     defaultStylesheet(),
		lang:          cfg.lang,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page selected by view.Page.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	action := strings.TrimSuffix(options.Action, "/")
	if action == "" {
		action = wizard.PathWizard
	}

	hidden := options.Hidden
	name := landingTemplate
	if view.Page == render.PageWizard {
		name = wizardTemplate
		hidden = render.MergeHiddenFields(hidden, render.StepField(view.Snapshot.Step))
	}

	stylesheet := r.stylesheetURL
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if resolved := strings.TrimSpace(options.Theme.AssetURL(ThemeAssetStylesheet)); resolved != "" {
			stylesheet = resolved
		}
	}

	data := map[string]any{
		"view":       view,
		"action":     action,
		"start":      wizard.PathWizard,
		"flash":      options.Flash,
		"hidden":     render.SortedHiddenFields(hidden),
		"theme":      buildThemeContext(options.Theme),
		"stylesheet": stylesheet,
		"inline_css": r.inlineCSS,
		"progress":   formatProgress(view.Snapshot.Progress),
		"lang":       r.lang,
	}

	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", view.Page, err)
	}
	return []byte(out), nil
}

func formatProgress(p float64) string {
	return strconv.FormatFloat(float64(int64(p*10+0.5))/10, 'f', -1, 64)
}
