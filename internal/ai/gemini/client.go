package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second

	defaultMaxLogLength = 200
)

// contentCaller is the slice of the genai client the gateway depends on,
// narrowed so tests can substitute a deterministic double.
type contentCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gateway implements ai.Completer against the Gemini API. A single call is
// bounded by the configured timeout; there are no retries here, callers own
// their fallback policy.
type Gateway struct {
	models    contentCaller
	model     string
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// Config carries the Gemini-specific settings of the gateway.
type Config struct {
	Model        string
	Timeout      time.Duration
	MaxLogLength int
}

// New creates a Gateway backed by the Gemini API.
func New(ctx context.Context, apiKey string, cfg Config, log *zap.Logger) (*Gateway, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Gateway{
		models:    client.Models,
		model:     model,
		timeout:   timeout,
		maxLogLen: maxLogLen,
		logger:    logger.WithModel(log, "gemini", model),
	}, nil
}

// Complete implements ai.Completer.
func (g *Gateway) Complete(ctx context.Context, system, user string, format ai.ResponseFormat) (string, error) {
	if g == nil || g.models == nil {
		return "", &ai.GatewayError{Op: "complete", Err: errors.New("gateway is not initialized")}
	}

	user = strings.TrimSpace(user)
	if user == "" {
		return "", &ai.GatewayError{Op: "complete", Err: errors.New("user prompt must not be empty")}
	}

	config := &genai.GenerateContentConfig{}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if format == ai.FormatJSON {
		config.ResponseMIMEType = "application/json"
	}

	g.logger.Debug("gemini request",
		zap.String("format", string(format)),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", logger.TruncateForLog(user, g.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.models.GenerateContent(callCtx, g.model, genai.Text(user), config)
	if err != nil {
		return "", &ai.GatewayError{Op: "generate content", Err: err}
	}

	output := collectText(resp)
	if output == "" {
		return "", &ai.GatewayError{Op: "generate content", Err: errors.New("empty response")}
	}

	g.logger.Debug("gemini response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

// Model returns the configured model identifier.
func (g *Gateway) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
