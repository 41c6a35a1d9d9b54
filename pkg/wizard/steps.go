package wizard

// Step bounds.
const (
	FirstStep = 1
	LastStep  = 8
)

// Route paths the controller hands to its Router.
const (
	PathHome   = "/"
	PathWizard = "/test"
)

// StepSpec lists the required fields of one wizard step. The number of fields
// is the step's "total" in the progress computation and the same list drives
// the step-gate validation pass.
type StepSpec struct {
	Number int
	Fields []Field
}

var stepTable = [LastStep]StepSpec{
	{Number: 1, Fields: []Field{FieldName, FieldAge, FieldGender}},
	{Number: 2, Fields: []Field{FieldEmail}},
	{Number: 3, Fields: []Field{FieldCycle}},
	{Number: 4, Fields: []Field{FieldEmotionalState}},
	{Number: 5, Fields: []Field{FieldSleepHours}},
	{Number: 6, Fields: []Field{FieldActivity}},
	{Number: 7, Fields: []Field{FieldMotivation}},
	{Number: 8, Fields: []Field{FieldPassword, FieldConfirmPassword}},
}

// Steps returns a copy of the step table.
func Steps() []StepSpec {
	out := make([]StepSpec, len(stepTable))
	for i, spec := range stepTable {
		out[i] = StepSpec{Number: spec.Number, Fields: append([]Field(nil), spec.Fields...)}
	}
	return out
}

// StepFor returns the spec for step n. Out of range steps yield a zero spec.
func StepFor(n int) StepSpec {
	if n < FirstStep || n > LastStep {
		return StepSpec{}
	}
	spec := stepTable[n-1]
	return StepSpec{Number: spec.Number, Fields: append([]Field(nil), spec.Fields...)}
}

// StepOf returns the step a field belongs to, or 0.
func StepOf(f Field) int {
	for _, spec := range stepTable {
		for _, candidate := range spec.Fields {
			if candidate == f {
				return spec.Number
			}
		}
	}
	return 0
}

// Progress computes the completion percentage for step given data: whole
// prior steps plus the filled fraction of the current step, capped at 100.
func Progress(step int, data FormData) float64 {
	if step < FirstStep {
		return 0
	}
	if step > LastStep {
		return 100
	}
	fields := stepTable[step-1].Fields
	total := len(fields)
	if total == 0 {
		total = 1
	}
	completed := 0
	for _, f := range fields {
		if data.Filled(f) {
			completed++
		}
	}
	share := 100.0 / float64(LastStep)
	base := float64(step-1) * share
	pct := base + float64(completed)/float64(total)*share
	if pct > 100 {
		return 100
	}
	return pct
}
