package interview

import (
	"time"

	"github.com/google/uuid"
)

// Phase is a named stage of the guided conversation.
type Phase string

const (
	PhaseGreeting        Phase = "greeting"
	PhaseCollectingData  Phase = "collecting_data"
	PhaseConfirmingData  Phase = "confirming_data"
	PhaseTechnicalQA     Phase = "technical_qa"
	PhaseConcluded       Phase = "concluded"
	PhaseTerminatedEarly Phase = "terminated_early"
)

// Terminal reports whether the phase accepts no further conversation.
func (p Phase) Terminal() bool {
	return p == PhaseConcluded || p == PhaseTerminatedEarly
}

// Speaker identifies who produced a history turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is a single utterance in the session history.
type Turn struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// Candidate maps a field name to its validated value. A field is present only
// after the validator accepted it (or the bounded-retry policy admitted it
// with a warning, tracked separately on the session).
type Candidate map[string]string

// Question is one technical question generated for the session. Questions are
// frozen once generated; regeneration never occurs mid-session.
type Question struct {
	Text       string `json:"text"`
	Topic      string `json:"topic"`
	Difficulty Tier   `json:"difficulty"`
}

// Verdict is the qualitative tier of an evaluated answer.
type Verdict string

const (
	VerdictStrong   Verdict = "strong"
	VerdictAdequate Verdict = "adequate"
	VerdictWeak     Verdict = "weak"
	// VerdictUnscored is the neutral fallback used when the model output
	// cannot be parsed. The conversation proceeds regardless.
	VerdictUnscored Verdict = "unscored"
)

// Evaluation is the structured feedback for one answered question.
type Evaluation struct {
	QuestionIndex int     `json:"question_index"`
	Verdict       Verdict `json:"verdict"`
	Feedback      string  `json:"feedback"`
	Explanation   string  `json:"explanation"`
}

// Session is the single mutable unit of state for one conversation. It is
// mutated exclusively by the Orchestrator, one turn at a time.
type Session struct {
	ID        string    `json:"id"`
	Phase     Phase     `json:"phase"`
	Candidate Candidate `json:"candidate"`
	// Warnings flags fields admitted without a strict validation pass
	// (gateway fallback or retry bound exhausted).
	Warnings map[string]bool `json:"warnings,omitempty"`
	// DataStep is the cursor into the ordered data-collection fields.
	DataStep int `json:"data_step"`
	// FieldRetries counts consecutive failed attempts for the current field.
	FieldRetries int `json:"field_retries"`
	Questions    []Question `json:"questions,omitempty"`
	// QuestionIndex is -1 until questions are generated.
	QuestionIndex int          `json:"question_index"`
	Answers       []string     `json:"answers,omitempty"`
	Evaluations   []Evaluation `json:"evaluations,omitempty"`
	History       []Turn       `json:"history"`
	// Terminated is monotonic: once true, never false.
	Terminated bool      `json:"terminated"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSession creates a fresh session in the greeting phase.
func NewSession() *Session {
	return &Session{
		ID:            uuid.New().String(),
		Phase:         PhaseGreeting,
		Candidate:     make(Candidate),
		Warnings:      make(map[string]bool),
		QuestionIndex: -1,
		CreatedAt:     time.Now(),
	}
}

func (s *Session) record(speaker Speaker, text string) {
	s.History = append(s.History, Turn{Speaker: speaker, Text: text, At: time.Now()})
}

// FirstName returns the candidate's first name, or a friendly placeholder
// before the name is collected.
func (s *Session) FirstName() string {
	name := s.Candidate[FieldFullName]
	if name == "" {
		return "there"
	}
	parts := splitWords(name)
	if len(parts) == 0 {
		return "there"
	}
	return parts[0]
}
