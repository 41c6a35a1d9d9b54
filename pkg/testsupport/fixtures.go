package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ValidAnswers holds a value for every non-secret field that passes both the
// live checks and the step gates.
var ValidAnswers = map[wizard.Field]string{
	wizard.FieldName:           "Ana Lucia",
	wizard.FieldAge:            "20",
	wizard.FieldGender:         "female",
	wizard.FieldEmail:          "ana@example.com",
	wizard.FieldCycle:          "3",
	wizard.FieldEmotionalState: "calm",
	wizard.FieldSleepHours:     "7-8",
	wizard.FieldActivity:       "moderate",
	wizard.FieldMotivation:     "high",
}

// ValidPassword satisfies every password rule.
const ValidPassword = "Dino2024"

// AnswerStep fills every field of the controller's current step with a valid
// value. Credentials use ValidPassword.
func AnswerStep(t testing.TB, c *wizard.Controller) {
	t.Helper()
	for _, f := range wizard.StepFor(c.Step()).Fields {
		value := ValidAnswers[f]
		if f.Secret() {
			value = ValidPassword
		}
		if err := c.Set(f, value); err != nil {
			t.Fatalf("set %s: %v", f, err)
		}
	}
}

// AdvanceTo answers and advances c until it sits on step.
func AdvanceTo(t testing.TB, c *wizard.Controller, step int) {
	t.Helper()
	for c.Step() < step {
		AnswerStep(t, c)
		if !c.NextStep() {
			t.Fatalf("could not leave step %d: %v", c.Step(), c.Errors())
		}
	}
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
