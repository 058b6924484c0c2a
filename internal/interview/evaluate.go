package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

// AnswerEvaluator scores free-text answers to technical questions.
type AnswerEvaluator struct {
	completer ai.Completer
	logger    *zap.Logger
}

// NewAnswerEvaluator creates an evaluator backed by the given completer.
func NewAnswerEvaluator(completer ai.Completer, log *zap.Logger) *AnswerEvaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnswerEvaluator{completer: completer, logger: log}
}

// Evaluate asks the model to assess the answer and returns structured
// feedback. It never fails: any gateway or parse problem yields a neutral
// unscored evaluation so the conversation can proceed to the next question.
func (e *AnswerEvaluator) Evaluate(ctx context.Context, questionIndex int, q Question, answer, candidateName string, tier Tier) Evaluation {
	raw, err := e.completer.Complete(ctx, "", buildEvaluationPrompt(q, answer, candidateName, tier), ai.FormatJSON)
	if err != nil {
		e.logger.Warn("answer evaluation unavailable, returning unscored",
			zap.Int("question_index", questionIndex),
			zap.Error(err),
		)
		return neutralEvaluation(questionIndex, candidateName)
	}

	eval, ok := parseEvaluation(raw)
	if !ok {
		e.logger.Warn("unparseable evaluation response, returning unscored",
			zap.Int("question_index", questionIndex),
		)
		return neutralEvaluation(questionIndex, candidateName)
	}

	eval.QuestionIndex = questionIndex
	if eval.Feedback == "" {
		eval.Feedback = fmt.Sprintf("Thanks for your answer, %s!", candidateName)
	}
	return eval
}

// parseEvaluation decodes the model reply leniently: the JSON is unmarshalled
// into a generic map first and then weakly decoded, so string/number type
// drift in the model output does not discard an otherwise usable verdict.
func parseEvaluation(raw string) (Evaluation, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &data); err != nil {
		return Evaluation{}, false
	}

	var decoded struct {
		Verdict     string `mapstructure:"verdict"`
		Feedback    string `mapstructure:"feedback"`
		Explanation string `mapstructure:"explanation"`
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return Evaluation{}, false
	}
	if err := decoder.Decode(data); err != nil {
		return Evaluation{}, false
	}

	verdict := Verdict(strings.ToLower(strings.TrimSpace(decoded.Verdict)))
	switch verdict {
	case VerdictStrong, VerdictAdequate, VerdictWeak:
	default:
		return Evaluation{}, false
	}

	return Evaluation{
		Verdict:     verdict,
		Feedback:    strings.TrimSpace(decoded.Feedback),
		Explanation: strings.TrimSpace(decoded.Explanation),
	}, true
}

func neutralEvaluation(questionIndex int, candidateName string) Evaluation {
	return Evaluation{
		QuestionIndex: questionIndex,
		Verdict:       VerdictUnscored,
		Feedback:      fmt.Sprintf("Great, thank you for your response, %s!", candidateName),
		Explanation:   "Let's move on to the next question.",
	}
}
