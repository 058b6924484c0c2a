package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/talentscout/screener/internal/ai"
)

// stubCompleter routes every Complete call through fn.
type stubCompleter struct {
	fn    func(system, user string, format ai.ResponseFormat) (string, error)
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, system, user string, format ai.ResponseFormat) (string, error) {
	s.calls++
	if s.fn == nil {
		return "", &ai.GatewayError{Op: "stub", Err: errors.New("no handler")}
	}
	return s.fn(system, user, format)
}

func gatewayDown() *stubCompleter {
	return &stubCompleter{fn: func(_, _ string, _ ai.ResponseFormat) (string, error) {
		return "", &ai.GatewayError{Op: "stub", Err: errors.New("timeout")}
	}}
}

const fiveQuestionsJSON = `[
	{"topic": "Python", "question": "What are Python generators useful for?"},
	{"topic": "Python", "question": "How does the GIL affect concurrency?"},
	{"topic": "Django", "question": "What problem does Django middleware solve?"},
	{"topic": "Django", "question": "How does the Django ORM map models to tables?"},
	{"topic": "Python", "question": "When would you prefer composition over inheritance?"}
]`

// scriptedModel answers like a well-behaved model for every subroutine, so
// orchestrator tests can walk a full conversation.
func scriptedModel() *stubCompleter {
	return &stubCompleter{fn: func(system, user string, _ ai.ResponseFormat) (string, error) {
		switch {
		case strings.Contains(system, "Greet the candidate"):
			return "Welcome! I'm Maya, let's get you set up.", nil
		case strings.Contains(system, "Thank the candidate"):
			return "Thanks for your time, the team will be in touch soon.", nil
		case strings.Contains(user, "data validation assistant"):
			return `{"plausible": true, "normalized": "` + plausibilityEcho(user) + `"}`, nil
		case strings.Contains(user, "Generate exactly 5 technical"):
			return fiveQuestionsJSON, nil
		case strings.Contains(user, "expert technical interviewer"):
			return `{"verdict": "adequate", "feedback": "Nice try!", "explanation": "Here's a breakdown: details."}`, nil
		default:
			return "", &ai.GatewayError{Op: "stub", Err: errors.New("unexpected prompt")}
		}
	}}
}

// plausibilityEcho extracts the quoted candidate value from the plausibility
// prompt so the stub can return it as the normalized value.
func plausibilityEcho(prompt string) string {
	start := strings.Index(prompt, "\n\"")
	if start == -1 {
		return "value"
	}
	rest := prompt[start+2:]
	end := strings.Index(rest, "\"")
	if end == -1 {
		return "value"
	}
	return rest[:end]
}

// collectAll walks a session through greeting and the seven data steps using
// valid answers, leaving it in the confirmation phase.
func collectAll(o *Orchestrator, s *Session) {
	ctx := context.Background()
	inputs := []string{
		"hello",
		"Jane Doe",
		"jane.doe@example.com",
		"+1 (555) 123-4567",
		"3",
		"Backend Engineer",
		"Berlin",
		"Python, Django",
	}
	for _, input := range inputs {
		o.HandleTurn(ctx, s, input)
	}
}
