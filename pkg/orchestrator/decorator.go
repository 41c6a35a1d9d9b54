package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Decorator adjusts a view after it is built and before it is rendered.
type Decorator interface {
	Decorate(ctx context.Context, view *render.View) error
}

// DecoratorFunc adapts plain functions to the Decorator interface.
type DecoratorFunc func(ctx context.Context, view *render.View) error

// Decorate executes the wrapped function when non-nil.
func (fn DecoratorFunc) Decorate(ctx context.Context, view *render.View) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, view)
}

// JSONPresetDecorator applies copy overrides loaded from a JSON document:
//
//	{
//	  "title": "Dino check-in",
//	  "steps": {"1": {"title": "Hello", "description": "Tell us who you are"}},
//	  "fields": {"name": {"label": "Your name", "placeholder": "Rex", "help": "Letters only"}}
//	}
type JSONPresetDecorator struct {
	document presetDocument
}

type presetDocument struct {
	Title  string                `json:"title"`
	Steps  map[string]stepPatch  `json:"steps"`
	Fields map[string]fieldPatch `json:"fields"`
}

type stepPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type fieldPatch struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Help        string `json:"help"`
}

// NewJSONPresetDecorator constructs a decorator from raw JSON bytes. Every
// field key must name a wizard field.
func NewJSONPresetDecorator(data []byte) (*JSONPresetDecorator, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset decorator: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset decorator: parse document: %w", err)
	}
	for key := range document.Fields {
		if !wizard.Field(key).Known() {
			return nil, fmt.Errorf("json preset decorator: %w: %q", wizard.ErrUnknownField, key)
		}
	}
	return &JSONPresetDecorator{document: document}, nil
}

// NewJSONPresetDecoratorFromFS loads a preset document from fsys.
func NewJSONPresetDecoratorFromFS(fsys fs.FS, path string) (*JSONPresetDecorator, error) {
	if fsys == nil {
		return nil, errors.New("json preset decorator: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset decorator: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset decorator: read %s: %w", path, err)
	}
	return NewJSONPresetDecorator(data)
}

// Decorate applies the patches to view.
func (d *JSONPresetDecorator) Decorate(ctx context.Context, view *render.View) error {
	if view == nil {
		return errors.New("json preset decorator: view is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if d.document.Title != "" {
		view.Title = d.document.Title
	}
	if view.Page != render.PageWizard {
		return nil
	}

	if patch, ok := d.document.Steps[fmt.Sprint(view.Snapshot.Step)]; ok {
		if patch.Title != "" {
			view.Step.Title = patch.Title
		}
		if patch.Description != "" {
			view.Step.Description = patch.Description
		}
	}
	for i := range view.Fields {
		patch, ok := d.document.Fields[string(view.Fields[i].Field.Field)]
		if !ok {
			continue
		}
		applyFieldPatch(&view.Fields[i], patch)
	}
	return nil
}

func applyFieldPatch(field *render.FieldView, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Help != "" {
		field.Help = patch.Help
	}
}
