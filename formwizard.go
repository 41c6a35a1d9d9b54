// Package formwizard is the entry point for embedding the registration wizard:
// it builds controllers bound to a catalog and renders them through the
// default orchestrator.
//
// A minimal server-side render:
//
//	ctrl := formwizard.NewController(nil)
//	page, err := formwizard.Render(ctx, ctrl, "html")
package formwizard

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// NewOrchestrator exposes the orchestrator constructor at the root package.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewController returns a controller using cat's messages. A nil catalog
// keeps the built-in messages.
func NewController(cat *catalog.Catalog, options ...wizard.Option) *wizard.Controller {
	if cat == nil {
		return wizard.New(options...)
	}
	opts := append([]wizard.Option{wizard.WithMessages(cat.MessageSet())}, options...)
	return wizard.New(opts...)
}

// Render draws c with the named renderer ("html", "json" or "text"). A nil
// controller renders the landing page.
func Render(ctx context.Context, c *wizard.Controller, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	res, err := orchestrator.New(options...).Render(ctx, orchestrator.Request{
		Controller: c,
		Renderer:   rendererName,
	})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}
