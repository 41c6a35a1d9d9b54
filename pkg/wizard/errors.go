package wizard

import "errors"

var (
	// ErrUnknownField is returned when a write targets a field the wizard does
	// not collect.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrInvalidAge is returned when an age value cannot be parsed as an
	// integer.
	ErrInvalidAge = errors.New("wizard: age must be a whole number")
	// ErrNotFinalStep is returned when Submit is called before the last step.
	ErrNotFinalStep = errors.New("wizard: submit is only available on the final step")
	// ErrAlreadySubmitted is returned when Submit is called after a successful
	// submission.
	ErrAlreadySubmitted = errors.New("wizard: form already submitted")
)
