package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
)

const barWidth = 20

// TextRenderer draws a View as plain text. The session prints it before each
// step and the web shell serves it to clients asking for text/plain.
type TextRenderer struct {
	Theme Theme
}

var _ render.Renderer = TextRenderer{}

// Name reports the renderer identifier.
func (TextRenderer) Name() string { return "text" }

// ContentType reports text/plain.
func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the landing copy or the current step with values and errors.
// Credentials are never printed.
func (r TextRenderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	if options.Flash != "" {
		b.WriteString(r.Theme.SuccessPrefix + options.Flash + "\n\n")
	}

	if view.Page != render.PageWizard {
		fmt.Fprintf(&b, "%s\n\n%s\n", view.Landing.Title, view.Landing.Body)
		return []byte(b.String()), nil
	}

	snap := view.Snapshot
	fmt.Fprintf(&b, "%s\nStep %d of %d · %s\n%s %s%%\n",
		view.Title, snap.Step, snap.Steps, view.Step.Title,
		progressBar(snap.Progress), strconv.FormatFloat(snap.Progress, 'f', -1, 64))

	for _, field := range view.Fields {
		value := field.Value
		switch {
		case field.Field.Field.Secret():
			value = ""
			if snap.Data.Value(field.Field.Field) != "" {
				value = "(set)"
			}
		case len(field.Options) > 0 && value != "":
			value = field.OptionLabel(value)
		}
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "  %s: %s\n", field.Label, value)
		if field.Error != "" {
			fmt.Fprintf(&b, "    %s%s\n", r.Theme.ErrorPrefix, field.Error)
		}
	}
	return []byte(b.String()), nil
}

func progressBar(p float64) string {
	filled := int(p / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}
