package wizard_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type recordingSubmitter struct {
	calls []wizard.FormData
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, data wizard.FormData) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, data)
	return nil
}

func mustSet(t *testing.T, c *wizard.Controller, f wizard.Field, value string) {
	t.Helper()
	if err := c.Set(f, value); err != nil {
		t.Fatalf("set %s: %v", f, err)
	}
}

func mustNext(t *testing.T, c *wizard.Controller) {
	t.Helper()
	from := c.Step()
	if !c.NextStep() {
		t.Fatalf("next from step %d refused: %v", from, c.Errors())
	}
}

// fillToFinalStep completes steps 1-7 with minimal valid data.
func fillToFinalStep(t *testing.T, c *wizard.Controller) {
	t.Helper()
	mustSet(t, c, wizard.FieldName, "Ana Pérez")
	mustSet(t, c, wizard.FieldAge, "30")
	mustSet(t, c, wizard.FieldGender, "female")
	mustNext(t, c)
	mustSet(t, c, wizard.FieldEmail, "ana@example.com")
	mustNext(t, c)
	mustSet(t, c, wizard.FieldCycle, "3")
	mustNext(t, c)
	mustSet(t, c, wizard.FieldEmotionalState, "calm")
	mustNext(t, c)
	mustSet(t, c, wizard.FieldSleepHours, "7-8")
	mustNext(t, c)
	mustSet(t, c, wizard.FieldActivity, "sports")
	mustNext(t, c)
	mustSet(t, c, wizard.FieldMotivation, "high")
	mustNext(t, c)
	if c.Step() != wizard.LastStep {
		t.Fatalf("expected final step, got %d", c.Step())
	}
}

func TestController_NewStartsEmpty(t *testing.T) {
	c := wizard.New()
	if c.Step() != 1 {
		t.Fatalf("want step 1, got %d", c.Step())
	}
	if diff := cmp.Diff(wizard.FormData{}, c.Data()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if len(c.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", c.Errors())
	}
	if c.Progress() != 0 {
		t.Fatalf("want 0 progress, got %v", c.Progress())
	}
}

func TestController_NextStepBlockedByMissingName(t *testing.T) {
	c := wizard.New()
	mustSet(t, c, wizard.FieldAge, "30")
	mustSet(t, c, wizard.FieldGender, "F")

	if c.NextStep() {
		t.Fatalf("next should be refused without a name")
	}
	if c.Step() != 1 {
		t.Fatalf("step should stay at 1, got %d", c.Step())
	}
	want := wizard.FormErrors{wizard.FieldName: c.Messages().NameRequired}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestController_BlankNameIsMissing(t *testing.T) {
	c := wizard.New()
	mustSet(t, c, wizard.FieldName, "   ")
	mustSet(t, c, wizard.FieldAge, "30")
	mustSet(t, c, wizard.FieldGender, "F")
	if c.NextStep() {
		t.Fatalf("whitespace-only name must not pass")
	}
}

func TestController_PrevStepNeverValidates(t *testing.T) {
	c := wizard.New()
	fillToFinalStep(t, c)
	for c.Step() > 5 {
		c.PrevStep()
	}

	mustSet(t, c, wizard.FieldSleepHours, "")
	before := c.Errors()
	if !c.PrevStep() {
		t.Fatalf("prev from step 5 should succeed")
	}
	if c.Step() != 4 {
		t.Fatalf("want step 4, got %d", c.Step())
	}
	if diff := cmp.Diff(before, c.Errors()); diff != "" {
		t.Fatalf("prev must not touch errors (-before +after):\n%s", diff)
	}
}

func TestController_BoundariesAreSelfLoops(t *testing.T) {
	c := wizard.New()
	if c.PrevStep() {
		t.Fatalf("prev at step 1 should be a no-op")
	}
	if c.Step() != 1 {
		t.Fatalf("step moved below 1")
	}

	fillToFinalStep(t, c)
	mustSet(t, c, wizard.FieldPassword, "Abcdef1")
	mustSet(t, c, wizard.FieldConfirmPassword, "Abcdef1")
	if c.NextStep() {
		t.Fatalf("next at the final step should be a no-op")
	}
	if c.Step() != wizard.LastStep {
		t.Fatalf("step moved past the final step")
	}
}

func TestController_EditingClearsFieldError(t *testing.T) {
	c := wizard.New()
	c.NextStep()
	if c.Error(wizard.FieldName) == "" {
		t.Fatalf("expected name error after refused next")
	}

	c.OnFieldChange(wizard.FieldName)
	if got := c.Error(wizard.FieldName); got != "" {
		t.Fatalf("edit should clear the name error, got %q", got)
	}
	if c.Error(wizard.FieldAge) == "" {
		t.Fatalf("other errors must stay")
	}

	mustSet(t, c, wizard.FieldGender, "")
	if got := c.Error(wizard.FieldGender); got != "" {
		t.Fatalf("writing an invalid value still clears the stale error, got %q", got)
	}
}

func TestController_SetRunsLiveValidators(t *testing.T) {
	c := wizard.New()
	msgs := c.Messages()

	mustSet(t, c, wizard.FieldAge, "16")
	if got := c.Error(wizard.FieldAge); got != msgs.AgeTooYoung {
		t.Fatalf("want %q, got %q", msgs.AgeTooYoung, got)
	}
	mustSet(t, c, wizard.FieldAge, "")
	if c.Data().Age != nil {
		t.Fatalf("empty age should unset")
	}
	if got := c.Error(wizard.FieldAge); got != "" {
		t.Fatalf("unset age has no live error, got %q", got)
	}

	mustSet(t, c, wizard.FieldEmail, "abc")
	if got := c.Error(wizard.FieldEmail); got != msgs.EmailFormat {
		t.Fatalf("want %q, got %q", msgs.EmailFormat, got)
	}

	mustSet(t, c, wizard.FieldConfirmPassword, "Abcdef1")
	mustSet(t, c, wizard.FieldPassword, "Abcdef2")
	if got := c.Error(wizard.FieldConfirmPassword); got != msgs.PasswordMismatch {
		t.Fatalf("password change should cascade, got %q", got)
	}
	mustSet(t, c, wizard.FieldPassword, "Abcdef1")
	if got := c.Error(wizard.FieldConfirmPassword); got != "" {
		t.Fatalf("matching password should clear confirmation, got %q", got)
	}
}

func TestController_SetRejectsBadInput(t *testing.T) {
	c := wizard.New()
	if err := c.Set(wizard.Field("nickname"), "x"); !errors.Is(err, wizard.ErrUnknownField) {
		t.Fatalf("want ErrUnknownField, got %v", err)
	}
	if c.ValidateCurrentStep() {
		t.Fatalf("empty first step should fail the gate")
	}
	if c.Error(wizard.FieldAge) == "" {
		t.Fatalf("expected an age message from the gate")
	}
	if err := c.Set(wizard.FieldAge, "thirty"); !errors.Is(err, wizard.ErrInvalidAge) {
		t.Fatalf("want ErrInvalidAge, got %v", err)
	}
	if c.Data().Age != nil {
		t.Fatalf("invalid age must not be stored")
	}
	if got := c.Error(wizard.FieldAge); got != "" {
		t.Fatalf("editing age must clear its message even when rejected, got %q", got)
	}
}

func TestController_SetFiltersName(t *testing.T) {
	c := wizard.New()
	mustSet(t, c, wizard.FieldName, "Iñigo 2nd")
	if got := c.Data().Name; got != "Iñigo nd" {
		t.Fatalf("want filtered name, got %q", got)
	}
}

func TestController_OnPasteAppendsFilteredText(t *testing.T) {
	c := wizard.New()
	mustSet(t, c, wizard.FieldName, "Ana")
	c.NextStep()
	mustSet(t, c, wizard.FieldName, "")
	c.NextStep()
	if c.Error(wizard.FieldName) == "" {
		t.Fatalf("expected name error")
	}

	c.OnPaste("María-José 99")
	if got := c.Data().Name; got != "MaríaJosé " {
		t.Fatalf("want appended filtered text, got %q", got)
	}
	c.OnPaste(" López")
	if got := c.Data().Name; got != "MaríaJosé  López" {
		t.Fatalf("paste must append, got %q", got)
	}
	if got := c.Error(wizard.FieldName); got != "" {
		t.Fatalf("paste should clear the name error, got %q", got)
	}
}

func TestController_OnlyLetters(t *testing.T) {
	c := wizard.New()
	if !c.OnlyLetters("á") || c.OnlyLetters("7") {
		t.Fatalf("unexpected keystroke filtering")
	}
}

func TestController_GoToHome(t *testing.T) {
	var visited []string
	c := wizard.New(wizard.WithRouter(wizard.RouterFunc(func(path string) {
		visited = append(visited, path)
	})))
	c.GoToHome()
	if diff := cmp.Diff([]string{"/"}, visited); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SubmitEndToEnd(t *testing.T) {
	sub := &recordingSubmitter{}
	c := wizard.New(wizard.WithSubmitter(sub))
	fillToFinalStep(t, c)

	mustSet(t, c, wizard.FieldPassword, "Abcdef1")
	mustSet(t, c, wizard.FieldConfirmPassword, "Abcdef1")

	ok, err := c.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v errors=%v", ok, err, c.Errors())
	}
	if len(c.Errors()) != 0 {
		t.Fatalf("expected no errors after submit, got %v", c.Errors())
	}
	if len(sub.calls) != 1 {
		t.Fatalf("want exactly one submission, got %d", len(sub.calls))
	}

	age := 30
	want := wizard.FormData{
		Name:            "Ana Pérez",
		Age:             &age,
		Gender:          "female",
		Email:           "ana@example.com",
		Cycle:           "3",
		EmotionalState:  "calm",
		SleepHours:      "7-8",
		Activity:        "sports",
		Motivation:      "high",
		Password:        "Abcdef1",
		ConfirmPassword: "Abcdef1",
	}
	if diff := cmp.Diff(want, sub.calls[0]); diff != "" {
		t.Fatalf("submitted data mismatch (-want +got):\n%s", diff)
	}
	if c.Progress() != 100 {
		t.Fatalf("want 100 progress, got %v", c.Progress())
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, wizard.ErrAlreadySubmitted) {
		t.Fatalf("second submit: want ErrAlreadySubmitted, got %v", err)
	}
	if len(sub.calls) != 1 {
		t.Fatalf("submission must be reported once, got %d", len(sub.calls))
	}
}

func TestController_SubmitInvalidIsSilent(t *testing.T) {
	sub := &recordingSubmitter{}
	c := wizard.New(wizard.WithSubmitter(sub))
	fillToFinalStep(t, c)
	mustSet(t, c, wizard.FieldPassword, "Abcdef1")
	mustSet(t, c, wizard.FieldConfirmPassword, "abcdef1")

	ok, err := c.Submit(context.Background())
	if ok || err != nil {
		t.Fatalf("want (false, nil), got (%v, %v)", ok, err)
	}
	if c.Step() != wizard.LastStep || c.Submitted() || len(sub.calls) != 0 {
		t.Fatalf("invalid submit must not change state")
	}
	if c.Error(wizard.FieldConfirmPassword) == "" {
		t.Fatalf("expected mismatch message to be displayed")
	}
}

func TestController_SubmitGuards(t *testing.T) {
	c := wizard.New()
	if _, err := c.Submit(context.Background()); !errors.Is(err, wizard.ErrNotFinalStep) {
		t.Fatalf("want ErrNotFinalStep, got %v", err)
	}

	boom := errors.New("boom")
	c = wizard.New(wizard.WithSubmitter(&recordingSubmitter{err: boom}))
	fillToFinalStep(t, c)
	mustSet(t, c, wizard.FieldPassword, "Abcdef1")
	mustSet(t, c, wizard.FieldConfirmPassword, "Abcdef1")
	if _, err := c.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want submitter error, got %v", err)
	}
	if c.Submitted() {
		t.Fatalf("failed submission must not mark the form submitted")
	}
}

func TestController_SnapshotMasksCredentials(t *testing.T) {
	c := wizard.New()
	fillToFinalStep(t, c)
	mustSet(t, c, wizard.FieldPassword, "Abcdef1")

	snap := c.Snapshot()
	if snap.Data.Password == "Abcdef1" || !strings.Contains(snap.Data.Password, "*") {
		t.Fatalf("password leaked into snapshot: %q", snap.Data.Password)
	}
	if !snap.IsFinal || !snap.CanGoBack || snap.Steps != wizard.LastStep {
		t.Fatalf("unexpected flags: %+v", snap)
	}
	if diff := cmp.Diff([]wizard.Field{wizard.FieldPassword, wizard.FieldConfirmPassword}, snap.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if c.Data().Password != "Abcdef1" {
		t.Fatalf("snapshot must not mutate the record")
	}
}

func TestController_WithMessagesOverridesSubset(t *testing.T) {
	c := wizard.New(wizard.WithMessages(wizard.Messages{NameRequired: "El nombre es obligatorio"}))
	c.NextStep()
	if got := c.Error(wizard.FieldName); got != "El nombre es obligatorio" {
		t.Fatalf("want override, got %q", got)
	}
	if got := c.Error(wizard.FieldAge); got != wizard.DefaultMessages().AgeRequired {
		t.Fatalf("want default for non-overridden message, got %q", got)
	}
}
