package wizard

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int { return &v }

func TestValidateAge_Live(t *testing.T) {
	msgs := DefaultMessages()
	cases := []struct {
		name string
		age  *int
		want string
	}{
		{name: "unset", age: nil, want: ""},
		{name: "16", age: intPtr(16), want: msgs.AgeTooYoung},
		{name: "17", age: intPtr(17), want: ""},
		{name: "65", age: intPtr(65), want: ""},
		{name: "66", age: intPtr(66), want: msgs.AgeTooOld},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := FormErrors{FieldAge: "stale"}
			ValidateAge(FormData{Age: tc.age}, errs, msgs)
			if got := errs.Get(FieldAge); got != tc.want {
				t.Fatalf("age error: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidateStep_AgeGate(t *testing.T) {
	msgs := DefaultMessages()
	base := FormData{Name: "Ana", Gender: "female"}
	cases := []struct {
		name string
		age  *int
		want string
	}{
		{name: "unset is required", age: nil, want: msgs.AgeRequired},
		{name: "zero is out of range", age: intPtr(0), want: msgs.AgeOutOfRange},
		{name: "16", age: intPtr(16), want: msgs.AgeOutOfRange},
		{name: "17", age: intPtr(17), want: ""},
		{name: "65", age: intPtr(65), want: ""},
		{name: "66", age: intPtr(66), want: msgs.AgeOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := base
			data.Age = tc.age
			errs := make(FormErrors)
			valid := ValidateStep(1, data, errs, msgs)
			if got := errs.Get(FieldAge); got != tc.want {
				t.Fatalf("age error: want %q, got %q", tc.want, got)
			}
			if valid != (tc.want == "") {
				t.Fatalf("step validity: want %v, got %v", tc.want == "", valid)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	msgs := DefaultMessages()

	errs := make(FormErrors)
	ValidateEmail(FormData{Email: "a@b.c"}, errs, msgs)
	if got := errs.Get(FieldEmail); got != "" {
		t.Fatalf("a@b.c should pass, got %q", got)
	}

	ValidateEmail(FormData{Email: "abc"}, errs, msgs)
	if got := errs.Get(FieldEmail); got != msgs.EmailFormat {
		t.Fatalf("abc should fail with format error, got %q", got)
	}

	ValidateEmail(FormData{}, errs, msgs)
	if got := errs.Get(FieldEmail); got != "" {
		t.Fatalf("empty email should clear live error, got %q", got)
	}

	if ValidateStep(2, FormData{}, errs, msgs) {
		t.Fatalf("empty email must fail the step gate")
	}
	if got := errs.Get(FieldEmail); got != msgs.EmailRequired {
		t.Fatalf("want required message, got %q", got)
	}

	if ValidateStep(2, FormData{Email: "user@@mail"}, errs, msgs) {
		t.Fatalf("malformed email must fail the step gate")
	}
	if got := errs.Get(FieldEmail); got != msgs.EmailInvalid {
		t.Fatalf("want invalid message, got %q", got)
	}
}

func TestValidatePassword_Order(t *testing.T) {
	msgs := DefaultMessages()
	cases := []struct {
		password string
		want     string
	}{
		{password: "", want: ""},
		{password: "Ab", want: msgs.PasswordTooShort},
		{password: "abc123", want: msgs.PasswordUppercase},
		{password: "Abcdef", want: msgs.PasswordDigit},
		{password: "Abcdef1", want: ""},
		{password: "ñañañ", want: msgs.PasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			errs := make(FormErrors)
			ValidatePassword(FormData{Password: tc.password}, errs, msgs)
			if got := errs.Get(FieldPassword); got != tc.want {
				t.Fatalf("password %q: want %q, got %q", tc.password, tc.want, got)
			}
		})
	}
}

func TestValidatePassword_CascadesToConfirmation(t *testing.T) {
	msgs := DefaultMessages()
	errs := make(FormErrors)

	data := FormData{Password: "Abcdef1", ConfirmPassword: "Abcdef1"}
	ValidatePassword(data, errs, msgs)
	if got := errs.Get(FieldConfirmPassword); got != "" {
		t.Fatalf("matching confirmation should be clear, got %q", got)
	}

	data.Password = "Abcdef2"
	ValidatePassword(data, errs, msgs)
	if got := errs.Get(FieldConfirmPassword); got != msgs.PasswordMismatch {
		t.Fatalf("password change should re-check confirmation, got %q", got)
	}

	errs = make(FormErrors)
	ValidatePassword(FormData{Password: "Abcdef1"}, errs, msgs)
	if _, touched := errs[FieldConfirmPassword]; touched {
		t.Fatalf("confirmation must not be evaluated while empty")
	}

	errs = FormErrors{FieldConfirmPassword: "kept"}
	ValidatePassword(FormData{ConfirmPassword: "Abcdef1"}, errs, msgs)
	if got := errs.Get(FieldConfirmPassword); got != "kept" {
		t.Fatalf("clearing the password must not re-check the confirmation, got %q", got)
	}
	if got := errs.Get(FieldPassword); got != "" {
		t.Fatalf("empty password should carry no message, got %q", got)
	}
}

func TestValidateConfirmPassword(t *testing.T) {
	msgs := DefaultMessages()
	errs := make(FormErrors)

	ValidateConfirmPassword(FormData{Password: "Abcdef1", ConfirmPassword: "Abcdef1"}, errs, msgs)
	if got := errs.Get(FieldConfirmPassword); got != "" {
		t.Fatalf("want no error, got %q", got)
	}
	ValidateConfirmPassword(FormData{Password: "Abcdef1", ConfirmPassword: "abcdef1"}, errs, msgs)
	if got := errs.Get(FieldConfirmPassword); got != msgs.PasswordMismatch {
		t.Fatalf("want mismatch, got %q", got)
	}
	ValidateConfirmPassword(FormData{Password: "Abcdef1"}, errs, msgs)
	if got := errs.Get(FieldConfirmPassword); got != "" {
		t.Fatalf("empty confirmation should clear, got %q", got)
	}
}

func TestValidateStep_FinalStepRunsPasswordValidators(t *testing.T) {
	msgs := DefaultMessages()
	cases := []struct {
		name  string
		data  FormData
		valid bool
		want  FormErrors
	}{
		{
			name:  "empty credentials leave no message",
			data:  FormData{},
			valid: true,
			want:  FormErrors{},
		},
		{
			name:  "weak password",
			data:  FormData{Password: "abc", ConfirmPassword: "abc"},
			valid: false,
			want:  FormErrors{FieldPassword: msgs.PasswordTooShort},
		},
		{
			name:  "mismatched confirmation",
			data:  FormData{Password: "Abcdef1", ConfirmPassword: "Abcdef2"},
			valid: false,
			want:  FormErrors{FieldConfirmPassword: msgs.PasswordMismatch},
		},
		{
			name:  "strong matching passwords",
			data:  FormData{Password: "Abcdef1", ConfirmPassword: "Abcdef1"},
			valid: true,
			want:  FormErrors{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := FormErrors{FieldPassword: "stale", FieldConfirmPassword: "stale"}
			if got := ValidateStep(LastStep, tc.data, errs, msgs); got != tc.valid {
				t.Fatalf("want valid=%v, got %v (errors %v)", tc.valid, got, errs.Clone())
			}
			if diff := cmp.Diff(tc.want, errs.Clone()); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateStep_OnlyTouchesCurrentStepFields(t *testing.T) {
	msgs := DefaultMessages()
	errs := FormErrors{FieldName: "kept"}
	ValidateStep(3, FormData{}, errs, msgs)
	want := FormErrors{
		FieldName:  "kept",
		FieldCycle: msgs.SelectionRequired[FieldCycle],
	}
	if diff := cmp.Diff(want, errs.Clone()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateStep_SelectionSteps(t *testing.T) {
	msgs := DefaultMessages()
	for step := 3; step <= 7; step++ {
		field := StepFor(step).Fields[0]
		errs := make(FormErrors)
		if ValidateStep(step, FormData{}, errs, msgs) {
			t.Fatalf("step %d: empty selection should fail", step)
		}
		if errs.Get(field) == "" {
			t.Fatalf("step %d: expected message for %s", step, field)
		}

		var data FormData
		data.setText(field, "picked")
		if !ValidateStep(step, data, errs, msgs) {
			t.Fatalf("step %d: selection should pass, errors %v", step, errs.Clone())
		}
	}
}

func TestStepTable_CoversEveryFieldOnce(t *testing.T) {
	seen := make(map[Field]int)
	for _, spec := range Steps() {
		for _, f := range spec.Fields {
			seen[f]++
		}
	}
	for _, f := range Fields() {
		if seen[f] != 1 {
			t.Fatalf("field %s appears %d times in the step table", f, seen[f])
		}
	}
	wantCounts := []int{3, 1, 1, 1, 1, 1, 1, 2}
	for i, spec := range Steps() {
		if len(spec.Fields) != wantCounts[i] {
			t.Fatalf("step %d: want %d fields, got %d", spec.Number, wantCounts[i], len(spec.Fields))
		}
	}
}

func TestProgress_BoundedAndMonotonic(t *testing.T) {
	for step := FirstStep; step <= LastStep; step++ {
		var data FormData
		prev := Progress(step, data)
		if prev < 0 || prev > 100 {
			t.Fatalf("step %d: progress %v out of range", step, prev)
		}
		for _, f := range StepFor(step).Fields {
			if f == FieldAge {
				data.Age = intPtr(30)
			} else {
				data.setText(f, "x")
			}
			got := Progress(step, data)
			if got < prev {
				t.Fatalf("step %d: progress decreased from %v to %v", step, prev, got)
			}
			if got > 100 {
				t.Fatalf("step %d: progress %v above 100", step, got)
			}
			prev = got
		}
		if want := float64(step) * 100 / LastStep; prev != want {
			t.Fatalf("step %d complete: want %v, got %v", step, want, prev)
		}
	}
}

func TestProgress_PartialFirstStep(t *testing.T) {
	got := Progress(1, FormData{Name: "Ana"})
	want := 100.0 / 8 / 3
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("want %v, got %v", want, got)
	}
	if Progress(1, FormData{}) != 0 {
		t.Fatalf("empty first step should be 0")
	}
}
