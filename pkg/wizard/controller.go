package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Controller owns the wizard state for one session.
type Controller struct {
	step      int
	data      FormData
	errs      FormErrors
	messages  Messages
	router    Router
	submitter Submitter
	logger    zerolog.Logger
	submitted bool
}

// New returns a controller positioned on the first step with an empty record.
func New(options ...Option) *Controller {
	c := &Controller{
		step:     FirstStep,
		errs:     make(FormErrors),
		messages: DefaultMessages(),
		router:   nopRouter{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = LogSubmitter{Logger: c.logger}
	}
	return c
}

// Step returns the current step, in [FirstStep, LastStep].
func (c *Controller) Step() int {
	return c.step
}

// Data returns a copy of the record.
func (c *Controller) Data() FormData {
	return c.data.Clone()
}

// Errors returns a copy of the non-empty error messages.
func (c *Controller) Errors() FormErrors {
	return c.errs.Clone()
}

// Error returns the current message for f.
func (c *Controller) Error(f Field) string {
	return c.errs.Get(f)
}

// Messages returns the active message set.
func (c *Controller) Messages() Messages {
	return c.messages
}

// Submitted reports whether the record has been handed to the submitter.
func (c *Controller) Submitted() bool {
	return c.submitted
}

// Progress returns the completion percentage in [0, 100].
func (c *Controller) Progress() float64 {
	return Progress(c.step, c.data)
}

// Set writes a raw value coming from the rendering layer. The field's error is
// cleared, even when the value is rejected, and for fields with a live
// validator re-evaluated. Names are
// filtered through the same allow-list as keystrokes; an empty age unsets it.
func (c *Controller) Set(f Field, raw string) error {
	if !f.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if f == FieldAge {
		c.OnFieldChange(FieldAge)
		age, err := parseAge(raw)
		if err != nil {
			return err
		}
		c.SetAge(age)
		return nil
	}
	if f == FieldName {
		raw = SanitizeName(raw)
	}
	c.data.setText(f, raw)
	c.OnFieldChange(f)
	c.validateLive(f)
	return nil
}

// SetAge stores age (nil unsets it) and runs the live age check.
func (c *Controller) SetAge(age *int) {
	if age == nil {
		c.data.Age = nil
	} else {
		v := *age
		c.data.Age = &v
	}
	c.OnFieldChange(FieldAge)
	c.ValidateAge()
}

func parseAge(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAge, raw)
	}
	return &age, nil
}

func (c *Controller) validateLive(f Field) {
	switch f {
	case FieldEmail:
		c.ValidateEmail()
	case FieldPassword:
		c.ValidatePassword()
	case FieldConfirmPassword:
		c.ValidateConfirmPassword()
	}
}

// ValidateAge runs the live age check.
func (c *Controller) ValidateAge() {
	ValidateAge(c.data, c.errs, c.messages)
}

// ValidateEmail runs the live email check.
func (c *Controller) ValidateEmail() {
	ValidateEmail(c.data, c.errs, c.messages)
}

// ValidatePassword runs the live password check, cascading to the
// confirmation when one is present.
func (c *Controller) ValidatePassword() {
	ValidatePassword(c.data, c.errs, c.messages)
}

// ValidateConfirmPassword runs the live confirmation check.
func (c *Controller) ValidateConfirmPassword() {
	ValidateConfirmPassword(c.data, c.errs, c.messages)
}

// ValidateCurrentStep runs the step gate for the current step.
func (c *Controller) ValidateCurrentStep() bool {
	return ValidateStep(c.step, c.data, c.errs, c.messages)
}

// ClearError blanks the message for f.
func (c *Controller) ClearError(f Field) {
	c.errs.Clear(f)
}

// OnFieldChange is called whenever a field is edited.
func (c *Controller) OnFieldChange(f Field) {
	c.ClearError(f)
}

// NextStep advances when the current step validates and is not the last one.
func (c *Controller) NextStep() bool {
	if !c.ValidateCurrentStep() || c.step >= LastStep {
		return false
	}
	c.step++
	c.logger.Debug().Int("step", c.step).Msg("wizard advanced")
	return true
}

// PrevStep moves back one step without validating.
func (c *Controller) PrevStep() bool {
	if c.step <= FirstStep {
		return false
	}
	c.step--
	c.logger.Debug().Int("step", c.step).Msg("wizard moved back")
	return true
}

// Submit validates the final step and hands a copy of the record to the
// submitter. An invalid step returns (false, nil) and leaves the step where it
// is, with the gate messages in place.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	if c.submitted {
		return false, ErrAlreadySubmitted
	}
	if c.step != LastStep {
		return false, ErrNotFinalStep
	}
	if !c.ValidateCurrentStep() {
		return false, nil
	}
	if err := c.submitter.Submit(ctx, c.data.Clone()); err != nil {
		return false, fmt.Errorf("wizard: submit: %w", err)
	}
	c.submitted = true
	return true, nil
}

// SuccessMessage is the acknowledgement shown after a submission.
func (c *Controller) SuccessMessage() string {
	return c.messages.Submitted
}

// OnlyLetters is the keystroke filter for the name input; false means the key
// must be rejected.
func (c *Controller) OnlyLetters(key string) bool {
	return KeyAllowed(key)
}

// OnPaste appends the allowed characters of text to the name. Pasting is an
// edit, so the name error is cleared.
func (c *Controller) OnPaste(text string) {
	c.data.Name += SanitizeName(text)
	c.OnFieldChange(FieldName)
}

// GoToHome asks the router to show the landing view.
func (c *Controller) GoToHome() {
	c.router.Navigate(PathHome)
}

// Snapshot is a read-only view of the controller for renderers. Credentials
// are masked.
type Snapshot struct {
	Step      int        `json:"step"`
	Steps     int        `json:"steps"`
	Progress  float64    `json:"progress"`
	Fields    []Field    `json:"fields"`
	Data      FormData   `json:"data"`
	Errors    FormErrors `json:"errors"`
	CanGoBack bool       `json:"can_go_back"`
	IsFinal   bool       `json:"is_final"`
	Submitted bool       `json:"submitted"`
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Step:      c.step,
		Steps:     LastStep,
		Progress:  c.Progress(),
		Fields:    StepFor(c.step).Fields,
		Data:      c.data.Redacted(),
		Errors:    c.errs.Clone(),
		CanGoBack: c.step > FirstStep,
		IsFinal:   c.step == LastStep,
		Submitted: c.submitted,
	}
}
