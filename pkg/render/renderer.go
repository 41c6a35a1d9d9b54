package render

import (
	"context"
)

// Renderer converts a wizard View into a byte representation (HTML, text,
// JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}
