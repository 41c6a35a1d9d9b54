package wizard

import (
	"context"

	"github.com/rs/zerolog"
)

// Router navigates between named views.
type Router interface {
	Navigate(path string)
}

// RouterFunc adapts a function into a Router.
type RouterFunc func(path string)

// Navigate calls fn.
func (fn RouterFunc) Navigate(path string) {
	fn(path)
}

// Submitter receives the collected record once the final step validates.
type Submitter interface {
	Submit(ctx context.Context, data FormData) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, data FormData) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, data FormData) error {
	return fn(ctx, data)
}

// LogSubmitter reports submissions through a zerolog logger with credentials
// masked.
type LogSubmitter struct {
	Logger zerolog.Logger
}

// Submit logs the record at info level.
func (s LogSubmitter) Submit(_ context.Context, data FormData) error {
	s.Logger.Info().Object("form", data).Msg("form submitted")
	return nil
}

type nopRouter struct{}

func (nopRouter) Navigate(string) {}
