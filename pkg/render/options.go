package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching controller state.
type RenderOptions struct {
	// Action is the base path forms post to (defaults to /test).
	Action string
	// Flash is a one-off message shown above the step, e.g. the submission
	// acknowledgement.
	Flash string
	// Hidden carries extra hidden inputs (session hints, CSRF tokens) merged
	// with the ones the renderer emits itself.
	Hidden map[string]string
	// Theme supplies tokens, CSS variables and asset URLs resolved through
	// go-theme. Nil renders with the built-in styles.
	Theme *theme.RendererConfig
}
