package render

import (
	"context"
	"encoding/json"
)

// JSONRenderer serialises the View as-is. The web shell's API uses it.
type JSONRenderer struct {
	Indent bool
}

// Name reports the renderer identifier.
func (JSONRenderer) Name() string { return "json" }

// ContentType reports application/json.
func (JSONRenderer) ContentType() string { return "application/json" }

// Render encodes view; options are ignored.
func (r JSONRenderer) Render(ctx context.Context, view View, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Indent {
		return json.MarshalIndent(view, "", "  ")
	}
	return json.Marshal(view)
}
