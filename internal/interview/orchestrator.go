package interview

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

// exitKeywords terminate the session early from any non-terminal phase.
// Matched case-insensitively against whole words of the utterance.
var exitKeywords = []string{
	"bye", "goodbye", "exit", "quit", "end", "stop", "finish", "done", "thanks", "thank you",
}

var affirmativeWords = []string{"yes", "yep", "yeah", "correct", "confirm", "proceed", "ok", "okay"}

var changeWords = []string{"no", "change", "edit", "update", "fix", "wrong", "incorrect", "modify", "redo"}

const (
	defaultMaxFieldRetries = 5

	fallbackGreeting = "Hello! I'm Maya, your TalentScout hiring assistant. I'll gather a " +
		"few details about you, ask some technical questions matched to your skills, and " +
		"then explain the next steps."

	fallbackConclusion = "Thank you so much for your time! You did great. Your information " +
		"is recorded and our team will review it; you'll hear back within 2-3 business days. " +
		"Best of luck!"

	closedMessage = "This session has ended. Thank you for chatting with Maya! Please start " +
		"a new session to continue."
)

// Orchestrator owns the conversation state machine. It dispatches each user
// utterance to the handler for the session's current phase and decides phase
// transitions. A handler either fully commits its transition and data
// mutation, or leaves the prior state untouched and re-prompts.
type Orchestrator struct {
	completer ai.Completer
	validator *FieldValidator
	generator *QuestionGenerator
	evaluator *AnswerEvaluator
	logger    *zap.Logger

	maxFieldRetries int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxFieldRetries bounds consecutive failed attempts for a single field.
// After the bound the raw value is admitted with a warning flag so the
// candidate is never stuck. Zero or negative keeps the default.
func WithMaxFieldRetries(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxFieldRetries = n
		}
	}
}

// New creates an Orchestrator with its three model-backed subroutines wired
// to the same completer.
func New(completer ai.Completer, log *zap.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}

	o := &Orchestrator{
		completer:       completer,
		validator:       NewFieldValidator(completer, log),
		generator:       NewQuestionGenerator(completer, log),
		evaluator:       NewAnswerEvaluator(completer, log),
		logger:          log,
		maxFieldRetries: defaultMaxFieldRetries,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HandleTurn processes one user utterance, mutates the session accordingly
// and returns the assistant's reply plus the display projection. Input for a
// session already in a terminal state is a no-op answered with a closing
// message.
func (o *Orchestrator) HandleTurn(ctx context.Context, s *Session, input string) (string, DisplayState) {
	input = strings.TrimSpace(input)

	if s.Phase.Terminal() {
		return closedMessage, s.Display()
	}

	from := s.Phase
	s.record(SpeakerUser, input)

	var reply string
	if matchesExitKeyword(input) {
		reply = fmt.Sprintf("Thank you for your time! Best of luck, %s!", s.FirstName())
		s.Phase = PhaseTerminatedEarly
		s.Terminated = true
	} else {
		switch s.Phase {
		case PhaseGreeting:
			reply = o.handleGreeting(ctx, s, input)
		case PhaseCollectingData:
			reply = o.handleCollecting(ctx, s, input)
		case PhaseConfirmingData:
			reply = o.handleConfirming(ctx, s, input)
		case PhaseTechnicalQA:
			reply = o.handleTechnicalQA(ctx, s, input)
		}
	}

	s.record(SpeakerAssistant, reply)

	if from != s.Phase {
		o.logger.Debug("phase transition",
			zap.String("session_id", s.ID),
			zap.String("from", string(from)),
			zap.String("to", string(s.Phase)),
		)
	}

	return reply, s.Display()
}

func (o *Orchestrator) handleGreeting(ctx context.Context, s *Session, input string) string {
	if input == "" {
		input = "Hello!"
	}

	greeting, err := o.completer.Complete(ctx, greetingInstruction, input, ai.FormatText)
	if err != nil {
		o.logger.Warn("greeting generation unavailable, using fallback copy", zap.Error(err))
		greeting = fallbackGreeting
	}

	s.Phase = PhaseCollectingData
	return greeting + "\n\nTo begin, " + lowerFirst(DataSteps[0].Prompt)
}

func (o *Orchestrator) handleCollecting(ctx context.Context, s *Session, input string) string {
	field := DataSteps[s.DataStep]

	result := o.validator.Validate(ctx, field, input)
	if !result.Valid {
		s.FieldRetries++
		if s.FieldRetries < o.maxFieldRetries {
			return fmt.Sprintf("I need a bit more clarity, %s. %s Could you please try again?",
				s.FirstName(), result.Reason)
		}

		// Retry bound reached: admit the raw value with a warning rather
		// than blocking the candidate indefinitely.
		o.logger.Warn("field retry bound reached, admitting value with warning",
			zap.String("session_id", s.ID),
			zap.String("field", field.Name),
			zap.Int("attempts", s.FieldRetries),
		)
		result = ValidationResult{Valid: true, Normalized: strings.TrimSpace(input), Warning: true}
	}

	return o.storeFieldAndAdvance(s, field, result)
}

func (o *Orchestrator) storeFieldAndAdvance(s *Session, field Field, result ValidationResult) string {
	s.Candidate[field.Name] = result.Normalized
	if result.Warning {
		s.Warnings[field.Name] = true
	}
	s.FieldRetries = 0
	s.DataStep++

	ack := acknowledgment(s, field)

	if s.DataStep >= len(DataSteps) {
		s.Phase = PhaseConfirmingData
		return joinSentences(ack, confirmationSummary(s))
	}

	return joinSentences(ack, "Next, "+lowerFirst(DataSteps[s.DataStep].Prompt))
}

func (o *Orchestrator) handleConfirming(ctx context.Context, s *Session, input string) string {
	words := splitWords(strings.ToLower(input))

	// Precedence: a change request beats an affirmative so a mixed
	// "yes, but change my email" never slips past the correction.
	if containsAny(words, changeWords) {
		idx, named := matchField(input)
		if !named {
			idx = 0
		}
		s.Phase = PhaseCollectingData
		s.DataStep = idx
		s.FieldRetries = 0
		return fmt.Sprintf("No problem, %s! %s", s.FirstName(), DataSteps[idx].Prompt)
	}

	if containsAny(words, affirmativeWords) {
		// Questions are frozen per session: re-confirming after a change
		// round never regenerates them.
		if s.Questions == nil {
			stack := SplitStack(s.Candidate[FieldTechStack])
			s.Questions = o.generator.Generate(ctx, stack, s.experienceYears())
		}
		if s.QuestionIndex < 0 {
			s.QuestionIndex = 0
		}
		s.Phase = PhaseTechnicalQA

		return fmt.Sprintf("%s! You're familiar with %s, which is a great combination for %s. "+
			"Next, I'll ask you some technical questions to assess your skills. Please answer "+
			"them one by one. Here's your first question:\n\nQuestion %d: %s",
			s.FirstName(),
			s.Candidate[FieldTechStack],
			s.Candidate[FieldPosition],
			s.QuestionIndex+1,
			s.Questions[s.QuestionIndex].Text,
		)
	}

	return fmt.Sprintf("I need a quick confirmation, %s: please reply 'yes' to continue, "+
		"or tell me which field to change (for example, 'change my email').", s.FirstName())
}

func (o *Orchestrator) handleTechnicalQA(ctx context.Context, s *Session, input string) string {
	idx := s.QuestionIndex
	question := s.Questions[idx]

	eval := o.evaluator.Evaluate(ctx, idx, question, input, s.FirstName(), TierFor(s.experienceYears()))

	s.Answers = append(s.Answers, input)
	s.Evaluations = append(s.Evaluations, eval)
	s.QuestionIndex++

	reply := eval.Feedback
	if eval.Explanation != "" {
		reply += "\n\n" + eval.Explanation
	}

	if s.QuestionIndex < len(s.Questions) {
		return fmt.Sprintf("%s\n\n---\n\nReady for the next one, %s?\n\nQuestion %d: %s",
			reply, s.FirstName(), s.QuestionIndex+1, s.Questions[s.QuestionIndex].Text)
	}

	conclusion, err := o.completer.Complete(ctx, conclusionInstruction,
		fmt.Sprintf("%s has just completed all technical questions.", s.FirstName()), ai.FormatText)
	if err != nil {
		o.logger.Warn("conclusion generation unavailable, using fallback copy", zap.Error(err))
		conclusion = fallbackConclusion
	}

	s.Phase = PhaseConcluded
	return fmt.Sprintf("%s\n\n---\n\nFantastic, %s! You've completed all the technical "+
		"questions. %s", reply, s.FirstName(), conclusion)
}

func (s *Session) experienceYears() float64 {
	years, err := strconv.ParseFloat(s.Candidate[FieldYears], 64)
	if err != nil {
		return 0
	}
	return years
}

func acknowledgment(s *Session, field Field) string {
	first := s.FirstName()
	switch field.Name {
	case FieldFullName:
		return fmt.Sprintf("Hi %s! Thanks for sharing your full name.", first)
	case FieldEmail:
		return fmt.Sprintf("Got it, %s! Your email address is %s.", first, s.Candidate[FieldEmail])
	case FieldPhone:
		return fmt.Sprintf("%s! Your phone number is noted.", first)
	case FieldYears:
		return fmt.Sprintf("%s! %s", first, experienceRemark(s.experienceYears()))
	case FieldPosition:
		return fmt.Sprintf("%s! You're interested in a %s position. That's great!",
			first, s.Candidate[FieldPosition])
	case FieldLocation:
		return fmt.Sprintf("%s! You're looking for a %s opportunity in %s. Got it!",
			first, s.Candidate[FieldPosition], s.Candidate[FieldLocation])
	default:
		return ""
	}
}

func experienceRemark(years float64) string {
	value := strconv.FormatFloat(years, 'f', -1, 64)
	switch {
	case years == 0:
		return "With 0 years of experience, you're just starting out!"
	case years < 2:
		return fmt.Sprintf("With %s years of experience, that's a great start!", value)
	case years < 5:
		return fmt.Sprintf("With %s years of experience, you're building a solid foundation!", value)
	default:
		return fmt.Sprintf("With %s years of experience, you have significant expertise!", value)
	}
}

func confirmationSummary(s *Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Alright, %s! We've gathered all your information. Does this look correct?\n\n", s.FirstName())
	for _, step := range DataSteps {
		if value, ok := s.Candidate[step.Name]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", step.Label, value)
		}
	}
	b.WriteString("\nPlease type 'yes' to confirm or tell me what to change.")
	return b.String()
}

// SplitStack turns the free-text tech stack answer into the set of declared
// technology names.
func SplitStack(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})

	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		for _, sub := range strings.Split(part, " and ") {
			if sub = strings.TrimSpace(sub); sub != "" {
				stack = append(stack, sub)
			}
		}
	}
	return stack
}

func matchesExitKeyword(input string) bool {
	lower := strings.ToLower(input)
	words := splitWords(lower)
	for _, keyword := range exitKeywords {
		if strings.Contains(keyword, " ") {
			if strings.Contains(lower, keyword) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == keyword {
				return true
			}
		}
	}
	return false
}

func containsAny(words []string, vocabulary []string) bool {
	for _, w := range words {
		for _, v := range vocabulary {
			if w == v {
				return true
			}
		}
	}
	return false
}

func joinSentences(parts ...string) string {
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			joined = append(joined, p)
		}
	}
	return strings.Join(joined, " ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToLower(string(runes[0])) + string(runes[1:])
}
