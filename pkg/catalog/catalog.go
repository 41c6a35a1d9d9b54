package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

//go:embed default.yaml
var defaultCatalog []byte

// InputKind selects the control used to collect a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputEmail    InputKind = "email"
	InputSelect   InputKind = "select"
	InputPassword InputKind = "password"
)

func (k InputKind) valid() bool {
	switch k {
	case InputText, InputNumber, InputEmail, InputSelect, InputPassword:
		return true
	default:
		return false
	}
}

// Option is one entry of a select input.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Field describes how a wizard field is presented.
type Field struct {
	Field       wizard.Field `yaml:"field" json:"field"`
	Label       string       `yaml:"label" json:"label"`
	Input       InputKind    `yaml:"input" json:"input"`
	Placeholder string       `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Help        string       `yaml:"help,omitempty" json:"help,omitempty"`
	Options     []Option     `yaml:"options,omitempty" json:"options,omitempty"`
}

// OptionLabel returns the label for value, falling back to value itself.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// HasOption reports whether value is one of the field's options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Step groups the presentation of one wizard step.
type Step struct {
	Number      int     `yaml:"number" json:"number"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field `yaml:"fields" json:"fields"`
}

// Landing is the copy shown on the home view.
type Landing struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
	CTA   string `yaml:"cta" json:"cta"`
}

// Catalog is the presentation layer's description of the wizard. It never
// changes which fields a step requires; that lives in the wizard step table.
type Catalog struct {
	Title    string          `yaml:"title" json:"title"`
	Landing  Landing         `yaml:"landing" json:"landing"`
	Steps    []Step          `yaml:"steps" json:"steps"`
	Messages wizard.Messages `yaml:"messages,omitempty" json:"messages,omitempty"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// MustDefault panics if the embedded catalog is broken.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads and validates a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML catalog. Unknown keys are rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog against the wizard step table.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	if len(c.Steps) != wizard.LastStep {
		fail("want %d steps, got %d", wizard.LastStep, len(c.Steps))
	}

	for i, step := range c.Steps {
		want := wizard.StepFor(i + 1)
		if step.Number != want.Number {
			fail("step %d: numbered %d", i+1, step.Number)
			continue
		}
		if strings.TrimSpace(step.Title) == "" {
			fail("step %d: title is required", step.Number)
		}
		if len(step.Fields) != len(want.Fields) {
			fail("step %d: want fields %v, got %d entries", step.Number, want.Fields, len(step.Fields))
			continue
		}
		for j, field := range step.Fields {
			if field.Field != want.Fields[j] {
				fail("step %d: field %d is %q, want %q", step.Number, j, field.Field, want.Fields[j])
			}
			if !field.Input.valid() {
				fail("step %d: field %s: unknown input %q", step.Number, field.Field, field.Input)
			}
			if strings.TrimSpace(field.Label) == "" {
				fail("step %d: field %s: label is required", step.Number, field.Field)
			}
			if field.Input == InputSelect && len(field.Options) == 0 {
				fail("step %d: field %s: select needs options", step.Number, field.Field)
			}
			seen := make(map[string]struct{}, len(field.Options))
			for _, opt := range field.Options {
				if opt.Value == "" {
					fail("step %d: field %s: option value is required", step.Number, field.Field)
					continue
				}
				if _, dup := seen[opt.Value]; dup {
					fail("step %d: field %s: duplicate option %q", step.Number, field.Field, opt.Value)
				}
				seen[opt.Value] = struct{}{}
			}
		}
	}

	for field := range c.Messages.SelectionRequired {
		if !field.Known() {
			fail("messages: unknown field %q", field)
		}
	}

	return errors.Join(errs...)
}

// Step returns the presentation of step n.
func (c *Catalog) Step(n int) (Step, bool) {
	for _, step := range c.Steps {
		if step.Number == n {
			return step, true
		}
	}
	return Step{}, false
}

// Field returns the presentation of f.
func (c *Catalog) Field(f wizard.Field) (Field, bool) {
	step, ok := c.Step(wizard.StepOf(f))
	if !ok {
		return Field{}, false
	}
	for _, field := range step.Fields {
		if field.Field == f {
			return field, true
		}
	}
	return Field{}, false
}

// CheckValue rejects a value for a select field that is not one of its
// options. Empty values clear the answer and are always accepted, as are
// values of free-text fields.
func (c *Catalog) CheckValue(f wizard.Field, value string) error {
	field, ok := c.Field(f)
	if !ok || field.Input != InputSelect || value == "" || field.HasOption(value) {
		return nil
	}
	return fmt.Errorf("%w: %q for %s", ErrUnknownOption, value, f)
}

// MessageSet returns the catalog messages layered over the wizard defaults.
func (c *Catalog) MessageSet() wizard.Messages {
	return c.Messages.Merge(wizard.DefaultMessages())
}
