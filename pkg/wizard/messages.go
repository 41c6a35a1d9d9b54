package wizard

// Messages is the fixed set of user-visible validation messages. Zero fields
// fall back to the defaults, so callers may override a subset.
type Messages struct {
	NameRequired      string           `yaml:"name_required" json:"name_required"`
	AgeRequired       string           `yaml:"age_required" json:"age_required"`
	AgeOutOfRange     string           `yaml:"age_out_of_range" json:"age_out_of_range"`
	AgeTooYoung       string           `yaml:"age_too_young" json:"age_too_young"`
	AgeTooOld         string           `yaml:"age_too_old" json:"age_too_old"`
	GenderRequired    string           `yaml:"gender_required" json:"gender_required"`
	EmailRequired     string           `yaml:"email_required" json:"email_required"`
	EmailInvalid      string           `yaml:"email_invalid" json:"email_invalid"`
	EmailFormat       string           `yaml:"email_format" json:"email_format"`
	SelectionRequired map[Field]string `yaml:"selection_required" json:"selection_required"`
	PasswordTooShort  string           `yaml:"password_too_short" json:"password_too_short"`
	PasswordUppercase string           `yaml:"password_uppercase" json:"password_uppercase"`
	PasswordDigit     string           `yaml:"password_digit" json:"password_digit"`
	PasswordMismatch  string           `yaml:"password_mismatch" json:"password_mismatch"`
	Submitted         string           `yaml:"submitted" json:"submitted"`
}

// DefaultMessages returns the built-in message set.
func DefaultMessages() Messages {
	return Messages{
		NameRequired:   "Name is required",
		AgeRequired:    "Age is required",
		AgeOutOfRange:  "Age must be between 17 and 65",
		AgeTooYoung:    "You must be at least 17 years old",
		AgeTooOld:      "You must be under 66 years old",
		GenderRequired: "Select a gender",
		EmailRequired:  "Email is required",
		EmailInvalid:   "Invalid email",
		EmailFormat:    "Invalid email format. Example: user@email.com",
		SelectionRequired: map[Field]string{
			FieldCycle:          "Select a cycle",
			FieldEmotionalState: "Select an emotional state",
			FieldSleepHours:     "Select an option",
			FieldActivity:       "Select an option",
			FieldMotivation:     "Select an option",
		},
		PasswordTooShort:  "Password must be at least 6 characters",
		PasswordUppercase: "Password must include at least one uppercase letter",
		PasswordDigit:     "Password must include at least one number",
		PasswordMismatch:  "Passwords do not match",
		Submitted:         "Welcome to DINOSPACE!",
	}
}

// Merge returns m with every blank entry filled from base.
func (m Messages) Merge(base Messages) Messages {
	out := base
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&out.NameRequired, m.NameRequired)
	pick(&out.AgeRequired, m.AgeRequired)
	pick(&out.AgeOutOfRange, m.AgeOutOfRange)
	pick(&out.AgeTooYoung, m.AgeTooYoung)
	pick(&out.AgeTooOld, m.AgeTooOld)
	pick(&out.GenderRequired, m.GenderRequired)
	pick(&out.EmailRequired, m.EmailRequired)
	pick(&out.EmailInvalid, m.EmailInvalid)
	pick(&out.EmailFormat, m.EmailFormat)
	pick(&out.PasswordTooShort, m.PasswordTooShort)
	pick(&out.PasswordUppercase, m.PasswordUppercase)
	pick(&out.PasswordDigit, m.PasswordDigit)
	pick(&out.PasswordMismatch, m.PasswordMismatch)
	pick(&out.Submitted, m.Submitted)

	out.SelectionRequired = make(map[Field]string, len(base.SelectionRequired))
	for field, msg := range base.SelectionRequired {
		out.SelectionRequired[field] = msg
	}
	for field, msg := range m.SelectionRequired {
		if msg != "" {
			out.SelectionRequired[field] = msg
		}
	}
	return out
}

func (m Messages) selectionRequired(f Field) string {
	if msg := m.SelectionRequired[f]; msg != "" {
		return msg
	}
	return "Select an option"
}
