package interview

import "strings"

// FieldKind decides which validation path a field takes. Structured kinds are
// checked by deterministic rules; subjective kinds are judged by the model for
// plausibility. Structured rules take precedence when both could apply.
type FieldKind string

const (
	KindName       FieldKind = "name"
	KindEmail      FieldKind = "email"
	KindPhone      FieldKind = "phone"
	KindYears      FieldKind = "years"
	KindSubjective FieldKind = "subjective"
)

// MaskHint tells the presentation layer how to redact a field for display.
// The stored value always stays unredacted within the session.
type MaskHint string

const (
	MaskNone  MaskHint = "none"
	MaskEmail MaskHint = "email"
	MaskPhone MaskHint = "phone"
)

// Field names of the required candidate data, in collection order.
const (
	FieldFullName  = "full_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldYears     = "years_experience"
	FieldPosition  = "desired_position"
	FieldLocation  = "location"
	FieldTechStack = "tech_stack"
)

// Field describes one data-collection step.
type Field struct {
	Name string
	// Label is the human-facing name, also used in plausibility prompts.
	Label    string
	Kind     FieldKind
	Mask     MaskHint
	Prompt   string
	ErrorMsg string
}

// DataSteps is the ordered list of required fields. The prompts and error
// copy follow the original assistant script.
var DataSteps = []Field{
	{
		Name:     FieldFullName,
		Label:    "Full Name",
		Kind:     KindName,
		Mask:     MaskNone,
		Prompt:   "What's your full name?",
		ErrorMsg: "Please provide your complete full name (first and last name).",
	},
	{
		Name:     FieldEmail,
		Label:    "Email Address",
		Kind:     KindEmail,
		Mask:     MaskEmail,
		Prompt:   "Could you please share your email address?",
		ErrorMsg: "Please provide a valid email address.",
	},
	{
		Name:     FieldPhone,
		Label:    "Phone Number",
		Kind:     KindPhone,
		Mask:     MaskPhone,
		Prompt:   "What's your phone number?",
		ErrorMsg: "Please provide a valid phone number with at least 10 digits.",
	},
	{
		Name:     FieldYears,
		Label:    "Years of Experience",
		Kind:     KindYears,
		Mask:     MaskNone,
		Prompt:   "How many years of professional experience do you have?",
		ErrorMsg: "Please provide your experience in years (e.g., 2, 3.5, 0 for fresher).",
	},
	{
		Name:     FieldPosition,
		Label:    "Job Position",
		Kind:     KindSubjective,
		Mask:     MaskNone,
		Prompt:   "What position are you interested in applying for?",
		ErrorMsg: "Please provide a valid and clear job position.",
	},
	{
		Name:     FieldLocation,
		Label:    "Work Location",
		Kind:     KindSubjective,
		Mask:     MaskNone,
		Prompt:   "What's your preferred work location? (or are you open to remote work?)",
		ErrorMsg: "Please provide a valid location or specify 'remote'.",
	},
	{
		Name:     FieldTechStack,
		Label:    "Technology Stack",
		Kind:     KindSubjective,
		Mask:     MaskNone,
		Prompt:   "What programming languages, frameworks, and technologies are you proficient in?",
		ErrorMsg: "Please list the technical skills you are proficient in.",
	},
}

// FieldIndex returns the position of the named field in DataSteps, or -1.
func FieldIndex(name string) int {
	for i, f := range DataSteps {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// matchField finds a data step mentioned in the utterance, by field name or by
// a word of its label. Used when the candidate asks to change something.
func matchField(input string) (int, bool) {
	lower := strings.ToLower(input)
	words := splitWords(lower)
	for i, f := range DataSteps {
		if strings.Contains(lower, strings.ReplaceAll(f.Name, "_", " ")) {
			return i, true
		}
		for _, labelWord := range splitWords(strings.ToLower(f.Label)) {
			if labelWord == "of" {
				continue
			}
			for _, w := range words {
				if w == labelWord {
					return i, true
				}
			}
		}
	}
	return 0, false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', '.', '!', '?', ';', ':':
			return true
		}
		return false
	})
}
