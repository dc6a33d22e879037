package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/service"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

const (
	// Body excerpt embedded in the prompt is capped to bound token cost.
	maxContentChars = 2000

	evaluationMaxTokens   = 300
	evaluationTemperature = 0.1

	// Confidence reported when the model's reply was not valid JSON and the
	// answer had to be recovered heuristically.
	heuristicConfidence = 0.5
)

const defaultModel = "gpt-4o-mini"

// chatCompleter is the slice of the OpenAI client the evaluator needs.
// Satisfied by *openai.Client and by fakes in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// Evaluator decides whether a natural-language condition holds for an email
// by asking an OpenAI-compatible chat backend. Transport failures surface as
// errors; malformed replies are normalized into a well-typed result.
type Evaluator struct {
	client  chatCompleter
	model   string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

func NewEvaluator(cfg Config, appLogger *logger.Logger) *Evaluator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	} else if cfg.Provider == ProviderDeepSeek {
		clientConfig.BaseURL = "https://api.deepseek.com/v1"
	}

	model := cfg.Model
	if model == "" {
		if cfg.Provider == ProviderDeepSeek {
			model = "deepseek-chat"
		} else {
			model = defaultModel
		}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:        "ai-backend",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			appLogger.Warnf("circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	}

	return &Evaluator{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
		logger:  appLogger,
	}
}

// EvaluateCondition asks the backend whether the condition holds for the
// email. The returned result always carries a boolean and a confidence in
// [0,1]; only failures to reach the backend at all produce an error.
func (e *Evaluator) EvaluateCondition(ctx context.Context, condition string, email *model.EmailMessage) (*service.ConditionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := buildConditionPrompt(condition, email)

	raw, err := e.cb.Execute(func() (interface{}, error) {
		return e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       e.model,
			Temperature: evaluationTemperature,
			MaxTokens:   evaluationMaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("ai backend request failed: %w", err)
	}

	resp := raw.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		// Reached the backend but got nothing usable.
		return invalidFormatResult(), nil
	}

	return parseEvaluation(resp.Choices[0].Message.Content), nil
}

func buildConditionPrompt(condition string, email *model.EmailMessage) string {
	content := email.BodyContent
	if content == "" {
		content = email.BodyPreview
	}
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	return fmt.Sprintf(`You are an email classification assistant. Determine whether the following condition is true for the email below.

Condition: %s

Email:
Subject: %s
From: %s <%s>
Importance: %s
Content: %s

Respond with only a single JSON object in this exact format:
{"meetsCondition": true or false, "confidence": 0.0 to 1.0, "reasoning": "brief explanation"}`,
		condition, email.Subject, email.SenderName, email.SenderEmail, email.Importance, content)
}

type evaluationPayload struct {
	MeetsCondition *bool   `json:"meetsCondition"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

// parseEvaluation normalizes whatever text the model returned into a
// well-typed result. Invalid JSON falls back to an affirmative-token
// heuristic; a parsed object missing the boolean is coerced to a negative
// result. It never fails.
func parseEvaluation(content string) *service.ConditionResult {
	payload := evaluationPayload{}
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		lowered := strings.ToLower(content)
		return &service.ConditionResult{
			MeetsCondition: strings.Contains(lowered, "true") || strings.Contains(lowered, "yes"),
			Confidence:     heuristicConfidence,
			Reasoning:      "heuristic evaluation of unstructured model output",
		}
	}

	if payload.MeetsCondition == nil {
		return invalidFormatResult()
	}

	reasoning := payload.Reasoning
	if reasoning == "" {
		reasoning = "no reasoning provided"
	}

	return &service.ConditionResult{
		MeetsCondition: *payload.MeetsCondition,
		Confidence:     clamp01(payload.Confidence),
		Reasoning:      reasoning,
	}
}

func invalidFormatResult() *service.ConditionResult {
	return &service.ConditionResult{
		MeetsCondition: false,
		Confidence:     0.0,
		Reasoning:      "invalid response format",
	}
}

// extractJSON strips markdown fences and surrounding prose, keeping the
// first top-level JSON object found.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
