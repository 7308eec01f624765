// Package llm wraps the generative text endpoint. Complete never returns a
// Go error: every failure is folded into a tagged Result so the dialogue
// engine can pick the right user-facing apology without seeing exceptions.
package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/circuitbreaker"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Outcome tags a completion result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNetworkError
	OutcomeBadStatus
	OutcomeMalformedResponse
	OutcomeInternalError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeBadStatus:
		return "bad_status"
	case OutcomeMalformedResponse:
		return "malformed_response"
	default:
		return "internal_error"
	}
}

// Result is the outcome of one completion call. Text is set only on success;
// StatusCode only for OutcomeBadStatus.
type Result struct {
	Outcome    Outcome
	Text       string
	StatusCode int
	Err        error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
}

// NewClient builds a client for any OpenAI-compatible endpoint; the default
// configuration points it at Gemini's compatibility surface.
func NewClient(apiKey, baseURL, model string, temperature float32, maxTokens, timeoutSec int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if timeoutSec <= 0 {
		timeoutSec = 30
	}

	cb := circuitbreaker.New("llm", circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
		Logger:           logger.GetLogger(),
	})

	logger.Info("LLM client initialized",
		zap.String("model", model),
		zap.String("base_url", cfg.BaseURL),
	)

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     time.Duration(timeoutSec) * time.Second,
		cb:          cb,
	}
}

// Complete issues one synchronous completion for the prompt. There is no
// retry: a failed call degrades the current response and nothing else.
func (c *Client) Complete(ctx context.Context, prompt string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp openai.ChatCompletionResponse

	err := c.cb.Execute(func() error {
		var err error
		resp, err = c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		})
		return err
	})

	if err != nil {
		result := classifyError(err)
		logger.Error("LLM completion failed",
			zap.String("outcome", result.Outcome.String()),
			zap.Int("status", result.StatusCode),
			zap.Error(err),
		)
		return result
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logger.Error("LLM response had no content")
		return Result{Outcome: OutcomeMalformedResponse}
	}

	logger.Debug("LLM completion generated",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return Result{Outcome: OutcomeSuccess, Text: resp.Choices[0].Message.Content}
}

// classifyError sorts a transport error into the failure taxonomy. Timeouts,
// refused connections, and an open circuit all count as network errors; a
// parsed non-2xx API response keeps its status code.
func classifyError(err error) Result {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return Result{Outcome: OutcomeBadStatus, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return Result{Outcome: OutcomeBadStatus, StatusCode: reqErr.HTTPStatusCode, Err: err}
		}
		return Result{Outcome: OutcomeNetworkError, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return Result{Outcome: OutcomeNetworkError, Err: err}
	}

	return Result{Outcome: OutcomeInternalError, Err: err}
}
