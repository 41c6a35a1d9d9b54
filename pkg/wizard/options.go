package wizard

import "github.com/rs/zerolog"

// Option configures a Controller.
type Option func(*Controller)

// WithRouter sets the collaborator used by GoToHome.
func WithRouter(router Router) Option {
	return func(c *Controller) {
		if router != nil {
			c.router = router
		}
	}
}

// WithSubmitter sets the collaborator that receives the submitted record.
// Defaults to a LogSubmitter on the controller logger.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		if submitter != nil {
			c.submitter = submitter
		}
	}
}

// WithMessages overrides validation messages. Blank entries keep the
// defaults.
func WithMessages(msgs Messages) Option {
	return func(c *Controller) {
		c.messages = msgs.Merge(DefaultMessages())
	}
}

// WithLogger attaches a logger for navigation and submission events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithData seeds the record, e.g. when resuming a session.
func WithData(data FormData) Option {
	return func(c *Controller) {
		c.data = data.Clone()
	}
}
