package html_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newRenderer(t *testing.T, options ...html.Option) *html.Renderer {
	t.Helper()
	r, err := html.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderString(t *testing.T, r *html.Renderer, view render.View, options render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), view, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, doc string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(doc, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, doc)
		}
	}
}

func TestRenderer_Landing(t *testing.T) {
	r := newRenderer(t)
	cat := catalog.MustDefault()

	doc := renderString(t, r, render.NewLandingView(cat), render.RenderOptions{})
	assertContains(t, doc,
		"<h1>Welcome to DINOSPACE</h1>",
		`href="/test"`,
		"Start the test",
		"<style>",
	)
	if r.ContentType() != "text/html; charset=utf-8" || r.Name() != "html" {
		t.Fatalf("unexpected renderer identity %s %s", r.Name(), r.ContentType())
	}
}

func TestRenderer_WizardStepWithErrors(t *testing.T) {
	r := newRenderer(t)
	cat := catalog.MustDefault()
	c := wizard.New()
	if err := c.Set(wizard.FieldAge, "70"); err != nil {
		t.Fatalf("set age: %v", err)
	}
	c.NextStep()

	doc := renderString(t, r, render.NewWizardView(c, cat), render.RenderOptions{
		Hidden: map[string]string{"_csrf": "tok"},
	})
	assertContains(t, doc,
		"Step 1 of 8",
		`action="/test/next"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="step" value="1">`,
		`name="age" type="number" value="70"`,
		c.Messages().AgeOutOfRange,
		c.Messages().NameRequired,
		`<option value="female">Female</option>`,
		`data-only-letters pattern="[A-Za-zÁÉÍÓÚáéíóúÑñ\s]*"`,
		`document.querySelectorAll("input[data-only-letters]")`,
		">Next</button>",
	)
	if strings.Contains(doc, "/test/prev") {
		t.Fatalf("first step must not offer a back button")
	}
}

func TestRenderer_FinalStepHidesCredentials(t *testing.T) {
	r := newRenderer(t)
	cat := catalog.MustDefault()
	c := wizard.New()
	testsupport.AdvanceTo(t, c, wizard.LastStep)
	testsupport.AnswerStep(t, c)

	doc := renderString(t, r, render.NewWizardView(c, cat), render.RenderOptions{Flash: "hello"})
	assertContains(t, doc,
		"Step 8 of 8",
		`formaction="/test/submit"`,
		`formaction="/test/prev"`,
		`type="password" value=""`,
		`<div class="fw-flash" role="status">hello</div>`,
	)
	if strings.Contains(doc, testsupport.ValidPassword) {
		t.Fatalf("password echoed into HTML")
	}
}

func TestRenderer_SelectKeepsChosenOption(t *testing.T) {
	r := newRenderer(t)
	cat := catalog.MustDefault()
	c := wizard.New()
	testsupport.AdvanceTo(t, c, 4)
	if err := c.Set(wizard.FieldEmotionalState, "calm"); err != nil {
		t.Fatalf("set: %v", err)
	}

	doc := renderString(t, r, render.NewWizardView(c, cat), render.RenderOptions{Action: "/wizard/"})
	assertContains(t, doc,
		`<option value="calm" selected>Calm</option>`,
		`action="/wizard/next"`,
		`value="50"`,
	)
}

func TestRenderer_ThemeVariablesAndStylesheet(t *testing.T) {
	r := newRenderer(t)
	cfg := html.ConfigFromSelection(&theme.Selection{
		Theme:   "dino",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "dino",
			Version: "1.0.0",
			Tokens:  map[string]string{"fw-accent": "#00aa55"},
			Assets: theme.Assets{
				Prefix: "/assets/themes/dino",
				Files:  map[string]string{html.ThemeAssetStylesheet: "dino.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"fw-surface": "#111111"}},
			},
		},
	})

	doc := renderString(t, r, render.NewLandingView(catalog.MustDefault()), render.RenderOptions{Theme: cfg})
	assertContains(t, doc,
		`<link rel="stylesheet" href="/assets/themes/dino/dino.css">`,
		"--fw-accent: #00aa55;",
		"--fw-surface: #111111;",
		"fw-theme-dino fw-variant-dark",
	)
}

func TestRenderer_SanitisesCatalogCopy(t *testing.T) {
	r := newRenderer(t)
	cat := catalog.MustDefault()
	cat.Steps[0].Fields[0].Label = `Full <script>alert(1)</script>name`
	cat.Steps[0].Fields[0].Help = `Letters <em>only</em><img src=x onerror=alert(1)>`

	doc := renderString(t, r, render.NewWizardView(wizard.New(), cat), render.RenderOptions{})
	if strings.Contains(doc, "<script>") || strings.Contains(doc, "onerror") {
		t.Fatalf("unsanitised copy in output\n%s", doc)
	}
	assertContains(t, doc, "Letters <em>only</em>")
}

func TestNew_RejectsIncompleteTemplates(t *testing.T) {
	if _, err := html.New(html.WithTemplatesDir(t.TempDir())); err == nil {
		t.Fatalf("expected missing template error")
	}
}
