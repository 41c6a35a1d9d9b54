package wizard

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
)

// Field identifies a FormData entry. Values double as the keys used by
// FormErrors, the catalog, and the web shell's form posts.
type Field string

const (
	FieldName            Field = "name"
	FieldAge             Field = "age"
	FieldGender          Field = "gender"
	FieldEmail           Field = "email"
	FieldCycle           Field = "cycle"
	FieldEmotionalState  Field = "emotional_state"
	FieldSleepHours      Field = "sleep_hours"
	FieldActivity        Field = "activity"
	FieldMotivation      Field = "motivation"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirm_password"
)

var allFields = []Field{
	FieldName,
	FieldAge,
	FieldGender,
	FieldEmail,
	FieldCycle,
	FieldEmotionalState,
	FieldSleepHours,
	FieldActivity,
	FieldMotivation,
	FieldPassword,
	FieldConfirmPassword,
}

// Fields returns every field in display order.
func Fields() []Field {
	return append([]Field(nil), allFields...)
}

// Known reports whether f is one of the wizard fields.
func (f Field) Known() bool {
	for _, candidate := range allFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// Secret reports whether the field holds credential material that must not be
// echoed back or logged.
func (f Field) Secret() bool {
	return f == FieldPassword || f == FieldConfirmPassword
}

// FormData holds all user input collected by the wizard.
type FormData struct {
	Name            string `json:"name"`
	Age             *int   `json:"age"`
	Gender          string `json:"gender"`
	Email           string `json:"email"`
	Cycle           string `json:"cycle"`
	EmotionalState  string `json:"emotional_state"`
	SleepHours      string `json:"sleep_hours"`
	Activity        string `json:"activity"`
	Motivation      string `json:"motivation"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Clone returns a deep copy; the age pointer is not shared.
func (d FormData) Clone() FormData {
	out := d
	if d.Age != nil {
		age := *d.Age
		out.Age = &age
	}
	return out
}

// Redacted returns a copy with credential fields masked.
func (d FormData) Redacted() FormData {
	out := d.Clone()
	if out.Password != "" {
		out.Password = redactedValue
	}
	if out.ConfirmPassword != "" {
		out.ConfirmPassword = redactedValue
	}
	return out
}

const redactedValue = "********"

// Filled reports whether the field counts as completed for progress purposes.
func (d FormData) Filled(f Field) bool {
	if f == FieldAge {
		return d.Age != nil
	}
	return d.text(f) != ""
}

// text returns the string value of a text or choice field. Age is not a text
// field and always yields "".
func (d FormData) text(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldGender:
		return d.Gender
	case FieldEmail:
		return d.Email
	case FieldCycle:
		return d.Cycle
	case FieldEmotionalState:
		return d.EmotionalState
	case FieldSleepHours:
		return d.SleepHours
	case FieldActivity:
		return d.Activity
	case FieldMotivation:
		return d.Motivation
	case FieldPassword:
		return d.Password
	case FieldConfirmPassword:
		return d.ConfirmPassword
	default:
		return ""
	}
}

func (d *FormData) setText(f Field, value string) bool {
	switch f {
	case FieldName:
		d.Name = value
	case FieldGender:
		d.Gender = value
	case FieldEmail:
		d.Email = value
	case FieldCycle:
		d.Cycle = value
	case FieldEmotionalState:
		d.EmotionalState = value
	case FieldSleepHours:
		d.SleepHours = value
	case FieldActivity:
		d.Activity = value
	case FieldMotivation:
		d.Motivation = value
	case FieldPassword:
		d.Password = value
	case FieldConfirmPassword:
		d.ConfirmPassword = value
	default:
		return false
	}
	return true
}

// Value returns the field value as the rendering layer displays it. A nil age
// yields "".
func (d FormData) Value(f Field) string {
	if f == FieldAge {
		if d.Age == nil {
			return ""
		}
		return strconv.Itoa(*d.Age)
	}
	return d.text(f)
}

// MarshalZerologObject logs the record with credentials masked.
func (d FormData) MarshalZerologObject(e *zerolog.Event) {
	r := d.Redacted()
	e.Str("name", r.Name)
	if r.Age != nil {
		e.Int("age", *r.Age)
	} else {
		e.Interface("age", nil)
	}
	e.Str("gender", r.Gender).
		Str("email", r.Email).
		Str("cycle", r.Cycle).
		Str("emotional_state", r.EmotionalState).
		Str("sleep_hours", r.SleepHours).
		Str("activity", r.Activity).
		Str("motivation", r.Motivation).
		Str("password", r.Password).
		Str("confirm_password", r.ConfirmPassword)
}

// FormErrors maps fields to their current validation message. An empty string
// or a missing key means the field has no error.
type FormErrors map[Field]string

// Get returns the message for f, or "".
func (e FormErrors) Get(f Field) string {
	if e == nil {
		return ""
	}
	return e[f]
}

// Set stores msg for f.
func (e FormErrors) Set(f Field, msg string) {
	e[f] = msg
}

// Clear blanks the message for f.
func (e FormErrors) Clear(f Field) {
	e[f] = ""
}

// Any reports whether at least one field carries a message.
func (e FormErrors) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Clone copies the map, dropping blank entries.
func (e FormErrors) Clone() FormErrors {
	out := make(FormErrors, len(e))
	for field, msg := range e {
		if msg == "" {
			continue
		}
		out[field] = msg
	}
	return out
}

// MarshalJSON emits only non-empty messages.
func (e FormErrors) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(e))
	for field, msg := range e {
		if msg != "" {
			out[string(field)] = msg
		}
	}
	return json.Marshal(out)
}
