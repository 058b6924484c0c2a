package interview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentscout/screener/internal/ai"
)

var sampleQuestion = Question{
	Text:       "What problem does Django middleware solve?",
	Topic:      "Django",
	Difficulty: TierMid,
}

func TestEvaluateParsesVerdict(t *testing.T) {
	completer := &stubCompleter{fn: func(_, user string, format ai.ResponseFormat) (string, error) {
		assert.Equal(t, ai.FormatJSON, format)
		assert.Contains(t, user, sampleQuestion.Text)
		assert.Contains(t, user, "Jane")
		return `{"verdict": "strong", "feedback": "Great answer, Jane!", "explanation": "Here's a breakdown: middleware wraps requests."}`, nil
	}}

	e := NewAnswerEvaluator(completer, nil)
	eval := e.Evaluate(context.Background(), 2, sampleQuestion, "it wraps request processing", "Jane", TierMid)

	assert.Equal(t, 2, eval.QuestionIndex)
	assert.Equal(t, VerdictStrong, eval.Verdict)
	assert.Equal(t, "Great answer, Jane!", eval.Feedback)
	assert.Contains(t, eval.Explanation, "breakdown")
}

func TestEvaluateHandlesFencedJSON(t *testing.T) {
	completer := &stubCompleter{fn: func(_, _ string, _ ai.ResponseFormat) (string, error) {
		return "```json\n{\"verdict\": \"Weak\", \"feedback\": \"No worries, Jane.\", \"explanation\": \"x\"}\n```", nil
	}}

	e := NewAnswerEvaluator(completer, nil)
	eval := e.Evaluate(context.Background(), 0, sampleQuestion, "idk", "Jane", TierMid)

	assert.Equal(t, VerdictWeak, eval.Verdict)
}

func TestEvaluateMalformedOutputIsUnscored(t *testing.T) {
	completer := &stubCompleter{fn: func(_, _ string, _ ai.ResponseFormat) (string, error) {
		return "that was a decent answer I suppose", nil
	}}

	e := NewAnswerEvaluator(completer, nil)
	eval := e.Evaluate(context.Background(), 1, sampleQuestion, "something", "Jane", TierMid)

	assert.Equal(t, VerdictUnscored, eval.Verdict)
	require.NotEmpty(t, eval.Feedback)
	assert.Contains(t, eval.Feedback, "Jane")
}

func TestEvaluateUnknownVerdictIsUnscored(t *testing.T) {
	completer := &stubCompleter{fn: func(_, _ string, _ ai.ResponseFormat) (string, error) {
		return `{"verdict": "fantastic", "feedback": "wow", "explanation": "x"}`, nil
	}}

	e := NewAnswerEvaluator(completer, nil)
	eval := e.Evaluate(context.Background(), 0, sampleQuestion, "answer", "Jane", TierMid)

	assert.Equal(t, VerdictUnscored, eval.Verdict)
}

func TestEvaluateGatewayFailureIsUnscored(t *testing.T) {
	e := NewAnswerEvaluator(gatewayDown(), nil)
	eval := e.Evaluate(context.Background(), 3, sampleQuestion, "answer", "Jane", TierMid)

	assert.Equal(t, VerdictUnscored, eval.Verdict)
	assert.Equal(t, 3, eval.QuestionIndex)
}

func TestEvaluateWeaklyTypedFields(t *testing.T) {
	// Models sometimes emit numbers or booleans where strings were asked for.
	completer := &stubCompleter{fn: func(_, _ string, _ ai.ResponseFormat) (string, error) {
		return `{"verdict": "adequate", "feedback": 42, "explanation": true}`, nil
	}}

	e := NewAnswerEvaluator(completer, nil)
	eval := e.Evaluate(context.Background(), 0, sampleQuestion, "answer", "Jane", TierMid)

	assert.Equal(t, VerdictAdequate, eval.Verdict)
	assert.Equal(t, "42", eval.Feedback)
}
