package interview

import "strings"

// FieldView is one collected field as exposed to the presentation layer: the
// raw value plus the mask hint, so masking is consistent regardless of
// renderer.
type FieldView struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Value   string   `json:"value"`
	Mask    MaskHint `json:"mask"`
	Warning bool     `json:"warning,omitempty"`
}

// QuestionProgress summarizes the technical assessment progress.
type QuestionProgress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// DisplayState is a read-only projection of the session for rendering.
type DisplayState struct {
	SessionID  string           `json:"session_id"`
	Phase      Phase            `json:"phase"`
	Fields     []FieldView      `json:"fields"`
	Progress   QuestionProgress `json:"progress"`
	Terminated bool             `json:"terminated"`
}

// Display builds the presentation projection for the session's current state.
// Only collected fields appear, in collection order.
func (s *Session) Display() DisplayState {
	fields := make([]FieldView, 0, len(s.Candidate))
	for _, step := range DataSteps {
		value, ok := s.Candidate[step.Name]
		if !ok {
			continue
		}
		fields = append(fields, FieldView{
			Name:    step.Name,
			Label:   step.Label,
			Value:   value,
			Mask:    step.Mask,
			Warning: s.Warnings[step.Name],
		})
	}

	progress := QuestionProgress{Total: len(s.Questions)}
	if s.QuestionIndex >= 0 {
		progress.Answered = s.QuestionIndex
	}

	return DisplayState{
		SessionID:  s.ID,
		Phase:      s.Phase,
		Fields:     fields,
		Progress:   progress,
		Terminated: s.Terminated,
	}
}

// Mask redacts a value for display according to the hint. Email keeps the
// first two characters of the local part plus the domain, phone keeps the
// last three digits. The stored value stays unredacted within the session.
func Mask(hint MaskHint, value string) string {
	switch hint {
	case MaskEmail:
		return maskEmail(value)
	case MaskPhone:
		return maskPhone(value)
	default:
		return value
	}
}

func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return value
	}
	local := []rune(value[:at])
	keep := 2
	if len(local) < keep {
		keep = len(local)
	}
	return string(local[:keep]) + "**" + value[at:]
}

func maskPhone(value string) string {
	digits := keepDigits(value)
	if len(digits) <= 3 {
		return digits
	}
	return strings.Repeat("*", len(digits)-3) + digits[len(digits)-3:]
}
