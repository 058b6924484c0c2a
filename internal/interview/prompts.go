package interview

import (
	"strings"

	_ "embed"
)

//go:embed prompts/plausibility.md
var plausibilityTemplate string

//go:embed prompts/questions.md
var questionsTemplate string

//go:embed prompts/evaluation.md
var evaluationTemplate string

const personaPrompt = "You are Maya, a friendly, warm, and professional hiring assistant " +
	"for TalentScout. You are encouraging, empathetic, and make candidates feel " +
	"comfortable and valued. Always address the candidate by their name if you know it."

const greetingInstruction = personaPrompt + " Greet the candidate warmly, introduce " +
	"yourself, and explain the process: information gathering, technical questions, " +
	"and next steps. Keep it to a few sentences."

const conclusionInstruction = personaPrompt + " Thank the candidate warmly for their " +
	"time. Let them know they did great, their information is recorded, the team will " +
	"review it, and they'll hear back in 2-3 business days. End on an encouraging note."

func buildPlausibilityPrompt(label, value string) string {
	prompt := strings.ReplaceAll(plausibilityTemplate, "{{FIELD_LABEL}}", label)
	return strings.ReplaceAll(prompt, "{{VALUE}}", value)
}

func buildQuestionsPrompt(tier Tier, stack []string) string {
	prompt := strings.ReplaceAll(questionsTemplate, "{{TIER}}", tier.Description())
	return strings.ReplaceAll(prompt, "{{TECH_STACK}}", strings.Join(stack, ", "))
}

func buildEvaluationPrompt(q Question, answer, candidateName string, tier Tier) string {
	prompt := strings.ReplaceAll(evaluationTemplate, "{{CANDIDATE_NAME}}", candidateName)
	prompt = strings.ReplaceAll(prompt, "{{TIER}}", tier.Description())
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", q.Text)
	return strings.ReplaceAll(prompt, "{{ANSWER}}", answer)
}
