// Package orchestrator turns wizard state into rendered output: it builds the
// view for a controller, runs view decorators, resolves the theme and picks a
// renderer by name or by Accept header.
package orchestrator
