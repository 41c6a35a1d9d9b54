// Package wizard implements the registration wizard controller: an eight step,
// forward-gated state machine over a single FormData record with a parallel
// FormErrors map of human-readable validation messages.
//
// Renderers bind to the controller's read accessors (Step, Data, Errors,
// Progress, Snapshot) and call its operations in response to user events (Set,
// OnFieldChange, NextStep, PrevStep, Submit, OnlyLetters, OnPaste). The
// controller is not safe for concurrent use; callers that share one across
// goroutines must serialise access.
//
// The step table in steps.go is the single source for both the progress
// computation and the step-gate validation pass. Validators are plain
// functions over a (FormData, FormErrors) pair so they can be exercised
// without a controller.
package wizard
