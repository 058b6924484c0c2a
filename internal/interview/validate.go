package interview

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

// ValidationResult is the transient outcome of a single validation call.
type ValidationResult struct {
	Valid      bool
	Normalized string
	Reason     string
	// Warning marks a value admitted without a strict pass: the model
	// gateway failed or returned something unparseable, and availability
	// wins over strict correctness.
	Warning bool
}

// FieldValidator validates one collected field at a time. Structured fields
// use deterministic rules, subjective fields are judged by the model for
// plausibility. Structured rules take precedence for their kinds even when a
// value would also survive a plausibility check.
type FieldValidator struct {
	completer ai.Completer
	checker   *validator.Validate
	logger    *zap.Logger
}

// NewFieldValidator creates a validator backed by the given completer.
func NewFieldValidator(completer ai.Completer, log *zap.Logger) *FieldValidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &FieldValidator{
		completer: completer,
		checker:   validator.New(),
		logger:    log,
	}
}

// Validate checks raw against the field's rules and returns the result. It
// never returns an error: a gateway failure on a subjective field degrades to
// accept-with-warning so the candidate is never blocked.
func (v *FieldValidator) Validate(ctx context.Context, field Field, raw string) ValidationResult {
	value := strings.TrimSpace(raw)

	switch field.Kind {
	case KindName:
		return validateFullName(value, field)
	case KindEmail:
		return v.validateEmail(value, field)
	case KindPhone:
		return validatePhone(value, field)
	case KindYears:
		return validateYears(value, field)
	case KindSubjective:
		return v.validatePlausible(ctx, field, value)
	default:
		if value == "" {
			return ValidationResult{Reason: field.ErrorMsg}
		}
		return ValidationResult{Valid: true, Normalized: value}
	}
}

func validateFullName(value string, field Field) ValidationResult {
	parts := strings.Fields(value)
	if len(parts) < 2 {
		return ValidationResult{Reason: field.ErrorMsg}
	}
	for _, part := range parts {
		cleaned := strings.NewReplacer("-", "", "'", "").Replace(part)
		if cleaned == "" {
			return ValidationResult{Reason: field.ErrorMsg}
		}
		for _, r := range cleaned {
			if !unicode.IsLetter(r) {
				return ValidationResult{Reason: field.ErrorMsg}
			}
		}
	}
	return ValidationResult{Valid: true, Normalized: strings.Join(parts, " ")}
}

func (v *FieldValidator) validateEmail(value string, field Field) ValidationResult {
	value = strings.Trim(value, " \t\r\n.,;:!?")
	if err := v.checker.Var(value, "required,email"); err != nil {
		return ValidationResult{Reason: field.ErrorMsg}
	}
	return ValidationResult{Valid: true, Normalized: value}
}

func validatePhone(value string, field Field) ValidationResult {
	digits := keepDigits(value)
	if len(digits) < 10 {
		return ValidationResult{Reason: field.ErrorMsg}
	}
	return ValidationResult{Valid: true, Normalized: digits}
}

func validateYears(value string, field Field) ValidationResult {
	value = strings.Trim(value, " \t\r\n.,;:!?")
	years, err := strconv.ParseFloat(value, 64)
	if err != nil || years < 0 || years > 50 {
		return ValidationResult{Reason: field.ErrorMsg}
	}
	return ValidationResult{Valid: true, Normalized: strconv.FormatFloat(years, 'f', -1, 64)}
}

func (v *FieldValidator) validatePlausible(ctx context.Context, field Field, value string) ValidationResult {
	if value == "" {
		return ValidationResult{Reason: field.ErrorMsg}
	}

	raw, err := v.completer.Complete(ctx, "", buildPlausibilityPrompt(field.Label, value), ai.FormatJSON)
	if err != nil {
		v.logger.Warn("plausibility check unavailable, accepting value as-is",
			zap.String("field", field.Name),
			zap.Error(err),
		)
		return ValidationResult{Valid: true, Normalized: value, Warning: true}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &data); err != nil {
		v.logger.Warn("unparseable plausibility response, accepting value as-is",
			zap.String("field", field.Name),
			zap.Error(err),
		)
		return ValidationResult{Valid: true, Normalized: value, Warning: true}
	}

	if !coerceBool(data["plausible"]) {
		return ValidationResult{Reason: field.ErrorMsg}
	}

	normalized := coerceString(data["normalized"])
	if normalized == "" {
		normalized = value
	}
	return ValidationResult{Valid: true, Normalized: normalized}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
