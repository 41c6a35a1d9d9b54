package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none
// and its Accept header matches nothing.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithCatalog supplies the copy views are built from.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = cat
	}
}

// WithHTMLOptions configures the default HTML renderer. Ignored when a
// registry is injected.
func WithHTMLOptions(options ...html.Option) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, options...)
	}
}

// WithTheme sets the theme config passed to renderers when a request carries
// none.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithThemeSelector resolves name and variant through selector once, when the
// orchestrator is built.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithDecorators registers view decorators, run in order.
func WithDecorators(decorators ...Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator renders wizard views. Defaults cover the common case: the
// embedded catalog and a registry holding the html, json and text renderers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	catalog         *catalog.Catalog
	htmlOptions     []html.Option
	theme           *theme.RendererConfig
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	decorators      []Decorator
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Setup errors
// are reported by Err and by every Render call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Controller is the wizard to draw. Nil renders the landing page.
	Controller *wizard.Controller

	// Renderer names the renderer to use. When empty the Accept list decides,
	// then the default renderer.
	Renderer string

	// Accept lists the media types the client takes, most preferred first.
	Accept []string

	// RenderOptions carries per-request data such as the flash message.
	RenderOptions render.RenderOptions
}

// Result is a rendered page.
type Result struct {
	Body        []byte
	ContentType string
	Renderer    string
}

// Err reports a setup failure, such as an unknown theme.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Catalog returns the catalog views are built from.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Theme returns the resolved theme config, nil when unthemed.
func (o *Orchestrator) Theme() *theme.RendererConfig {
	return o.theme
}

// View builds and decorates the view for req without rendering it.
func (o *Orchestrator) View(ctx context.Context, req Request) (render.View, error) {
	if err := o.initialiseErr; err != nil {
		return render.View{}, err
	}
	view := render.NewLandingView(o.catalog)
	if req.Controller != nil {
		view = render.NewWizardView(req.Controller, o.catalog)
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(ctx, &view); err != nil {
			return render.View{}, fmt.Errorf("orchestrator: decorate view: %w", err)
		}
	}
	return view, nil
}

// Render builds the view for req and renders it.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	view, err := o.View(ctx, req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer, req.Accept)
	if err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		opts.Theme = o.theme
	}
	body, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Result{Body: body, ContentType: renderer.ContentType(), Renderer: renderer.Name()}, nil
}

func (o *Orchestrator) rendererFor(name string, accept []string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return renderer, nil
	}
	renderer, err := o.registry.Negotiate(o.defaultRenderer, accept...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.catalog = cat
	}

	if o.registry == nil {
		registry, err := DefaultRegistry(o.htmlOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}

	if o.themeSelector != nil && o.themeName != "" {
		sel, err := o.themeSelector.Select(o.themeName, o.themeVariant)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: select theme %q: %w", o.themeName, err)
			return
		}
		o.theme = html.ConfigFromSelection(sel)
	}
}

// DefaultRegistry returns a registry holding the html, json and text
// renderers.
func DefaultRegistry(htmlOptions ...html.Option) (*render.Registry, error) {
	page, err := html.New(htmlOptions...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	for _, r := range []render.Renderer{
		page,
		render.JSONRenderer{Indent: true},
		tui.TextRenderer{Theme: tui.DefaultTheme},
	} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
