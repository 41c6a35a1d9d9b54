package render

import (
	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Page selects which view a renderer draws.
type Page string

const (
	PageLanding Page = "landing"
	PageWizard  Page = "wizard"
)

// FieldView joins a field's presentation with its current value and error.
type FieldView struct {
	catalog.Field
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// View is everything a renderer needs to draw one page. It is built from a
// controller snapshot, so credentials are already masked.
type View struct {
	Page     Page            `json:"page"`
	Title    string          `json:"title"`
	Landing  catalog.Landing `json:"landing"`
	Snapshot wizard.Snapshot `json:"snapshot"`
	Step     catalog.Step    `json:"step"`
	Fields   []FieldView     `json:"fields"`
}

// NewLandingView describes the home page.
func NewLandingView(cat *catalog.Catalog) View {
	return View{
		Page:    PageLanding,
		Title:   cat.Title,
		Landing: cat.Landing,
	}
}

// NewWizardView describes the current step of c.
func NewWizardView(c *wizard.Controller, cat *catalog.Catalog) View {
	snap := c.Snapshot()
	step, _ := cat.Step(snap.Step)

	fields := make([]FieldView, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		presentation, ok := cat.Field(f)
		if !ok {
			presentation = catalog.Field{Field: f, Label: string(f), Input: catalog.InputText}
		}
		value := snap.Data.Value(f)
		if f.Secret() {
			value = ""
		}
		fields = append(fields, FieldView{
			Field: presentation,
			Value: value,
			Error: snap.Errors.Get(f),
		})
	}

	return View{
		Page:     PageWizard,
		Title:    cat.Title,
		Landing:  cat.Landing,
		Snapshot: snap,
		Step:     step,
		Fields:   fields,
	}
}
