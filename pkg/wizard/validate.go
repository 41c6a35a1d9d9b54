package wizard

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Age bounds, inclusive.
const (
	MinAge = 17
	MaxAge = 65
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	digitPattern     = regexp.MustCompile(`[0-9]`)
)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateAge is the live age check. An unset age is not an error here; the
// step gate reports it as required.
func ValidateAge(data FormData, errs FormErrors, msgs Messages) {
	switch {
	case data.Age == nil:
		errs.Clear(FieldAge)
	case *data.Age < MinAge:
		errs.Set(FieldAge, msgs.AgeTooYoung)
	case *data.Age > MaxAge:
		errs.Set(FieldAge, msgs.AgeTooOld)
	default:
		errs.Clear(FieldAge)
	}
}

// ValidateEmail is the live email check. Empty input is not an error.
func ValidateEmail(data FormData, errs FormErrors, msgs Messages) {
	if data.Email == "" || ValidEmail(data.Email) {
		errs.Clear(FieldEmail)
		return
	}
	errs.Set(FieldEmail, msgs.EmailFormat)
}

// ValidatePassword is the live password check: length, then an uppercase
// letter, then a digit. An empty password clears its message and stops
// there; otherwise a confirmation already present is re-validated against
// the new password.
func ValidatePassword(data FormData, errs FormErrors, msgs Messages) {
	errs.Set(FieldPassword, passwordProblem(data.Password, msgs))
	if data.Password == "" {
		return
	}
	if data.ConfirmPassword != "" {
		ValidateConfirmPassword(data, errs, msgs)
	}
}

// ValidateConfirmPassword is the live confirmation check. Empty input is not
// an error.
func ValidateConfirmPassword(data FormData, errs FormErrors, msgs Messages) {
	errs.Set(FieldConfirmPassword, confirmProblem(data, msgs))
}

func passwordProblem(p string, msgs Messages) string {
	switch {
	case p == "":
		return ""
	case utf8.RuneCountInString(p) < MinPasswordLength:
		return msgs.PasswordTooShort
	case !uppercasePattern.MatchString(p):
		return msgs.PasswordUppercase
	case !digitPattern.MatchString(p):
		return msgs.PasswordDigit
	default:
		return ""
	}
}

func confirmProblem(data FormData, msgs Messages) string {
	if data.ConfirmPassword == "" || data.ConfirmPassword == data.Password {
		return ""
	}
	return msgs.PasswordMismatch
}

// gateRule returns the step-gate message for one field, "" when it passes.
func gateRule(f Field, data FormData, msgs Messages) string {
	switch f {
	case FieldName:
		if strings.TrimSpace(data.Name) == "" {
			return msgs.NameRequired
		}
	case FieldAge:
		if data.Age == nil {
			return msgs.AgeRequired
		}
		if *data.Age < MinAge || *data.Age > MaxAge {
			return msgs.AgeOutOfRange
		}
	case FieldGender:
		if data.Gender == "" {
			return msgs.GenderRequired
		}
	case FieldEmail:
		if data.Email == "" {
			return msgs.EmailRequired
		}
		if !ValidEmail(data.Email) {
			return msgs.EmailInvalid
		}
	case FieldPassword:
		return passwordProblem(data.Password, msgs)
	case FieldConfirmPassword:
		return confirmProblem(data, msgs)
	default:
		if data.text(f) == "" {
			return msgs.selectionRequired(f)
		}
	}
	return ""
}

// ValidateStep runs the step-gate rules for every field of step, writing each
// field's message (or clearing it) into errs. Fields of other steps are left
// untouched. It reports whether the step may be left going forward.
func ValidateStep(step int, data FormData, errs FormErrors, msgs Messages) bool {
	valid := true
	for _, f := range StepFor(step).Fields {
		msg := gateRule(f, data, msgs)
		errs.Set(f, msg)
		if msg != "" {
			valid = false
		}
	}
	return valid
}
