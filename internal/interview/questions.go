package interview

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

// Tier is the coarse experience bucket used to calibrate question difficulty.
type Tier string

const (
	TierEntry  Tier = "entry"
	TierMid    Tier = "mid"
	TierSenior Tier = "senior"
)

// Description returns the tier phrasing used in prompts.
func (t Tier) Description() string {
	switch t {
	case TierEntry:
		return "entry-level"
	case TierSenior:
		return "senior-level"
	default:
		return "mid-level"
	}
}

// TierFor buckets declared years of experience. Lower bounds are inclusive:
// entry <2, mid [2,5), senior >=5.
func TierFor(years float64) Tier {
	switch {
	case years < 2:
		return TierEntry
	case years < 5:
		return TierMid
	default:
		return TierSenior
	}
}

const (
	questionsWanted = 5
	fallbackSize    = 3
)

var fallbackBank = map[Tier][]string{
	TierEntry: {
		"Tell me about a project you've built and what you learned from it.",
		"How do you approach debugging when your code doesn't behave as expected?",
		"How do you stay updated with new technologies and best practices?",
	},
	TierMid: {
		"Tell me about a challenging project you've worked on and how you handled it.",
		"What coding best practices do you follow, and why do they matter?",
		"Describe your experience with version control and code review workflows.",
	},
	TierSenior: {
		"Tell me about an architectural decision you made and the trade-offs involved.",
		"How do you approach mentoring and raising the technical bar on a team?",
		"Describe how you evaluate and introduce new technologies into a codebase.",
	},
}

// QuestionGenerator produces the technical question list for a session.
type QuestionGenerator struct {
	completer ai.Completer
	logger    *zap.Logger
}

// NewQuestionGenerator creates a generator backed by the given completer.
func NewQuestionGenerator(completer ai.Completer, log *zap.Logger) *QuestionGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuestionGenerator{completer: completer, logger: log}
}

// Generate returns 3 to 5 questions for the declared stack and experience.
// It never fails: any gateway or parse problem yields the deterministic
// fallback bank for the tier.
func (g *QuestionGenerator) Generate(ctx context.Context, stack []string, years float64) []Question {
	tier := TierFor(years)

	cleaned := make([]string, 0, len(stack))
	for _, item := range stack {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		g.logger.Warn("empty tech stack, using fallback question bank", zap.String("tier", string(tier)))
		return fallbackQuestions(tier)
	}

	raw, err := g.completer.Complete(ctx, "", buildQuestionsPrompt(tier, cleaned), ai.FormatJSON)
	if err != nil {
		g.logger.Warn("question generation unavailable, using fallback bank",
			zap.String("tier", string(tier)),
			zap.Error(err),
		)
		return fallbackQuestions(tier)
	}

	questions, ok := parseQuestions(raw, tier)
	if !ok {
		g.logger.Warn("unparseable question list, using fallback bank",
			zap.String("tier", string(tier)),
			zap.Int("parsed", len(questions)),
		)
		return fallbackQuestions(tier)
	}

	return questions
}

func parseQuestions(raw string, tier Tier) ([]Question, bool) {
	var items []struct {
		Topic    string `json:"topic"`
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &items); err != nil {
		return nil, false
	}

	questions := make([]Question, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Question)
		if text == "" {
			continue
		}
		questions = append(questions, Question{
			Text:       text,
			Topic:      strings.TrimSpace(item.Topic),
			Difficulty: tier,
		})
	}

	if len(questions) != questionsWanted {
		return questions, false
	}
	return questions, true
}

func fallbackQuestions(tier Tier) []Question {
	bank := fallbackBank[tier]
	questions := make([]Question, 0, fallbackSize)
	for _, text := range bank[:fallbackSize] {
		questions = append(questions, Question{Text: text, Topic: "general", Difficulty: tier})
	}
	return questions
}
