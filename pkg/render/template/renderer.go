package template

import (
	"io"
)

// TemplateRenderer is the engine seam HTML renderers draw through. Data is
// exposed to templates by its JSON field names.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
