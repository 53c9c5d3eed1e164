package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xiaot623/adgenie/internal/adapter/llm"
	"github.com/xiaot623/adgenie/internal/config"
	"github.com/xiaot623/adgenie/internal/domain"
	"github.com/xiaot623/adgenie/internal/metrics"
)

// DefaultAIReply is used when the external service answers without a reply.
const DefaultAIReply = "Lo siento, la IA no pudo generar una respuesta válida."

var (
	// ErrNotConfigured marks the absence of external-service configuration.
	ErrNotConfigured = errors.New("external classifier not configured")
	// ErrMalformedOutput marks a completion that is not the expected JSON object.
	ErrMalformedOutput = errors.New("malformed classifier output")
)

// External is an optional classification capability backed by a remote service.
type External interface {
	Classify(ctx context.Context, message string) ExternalResult
}

// ExternalStatus is the outcome of one external attempt.
type ExternalStatus int

const (
	ExternalSucceeded ExternalStatus = iota
	ExternalFailed
)

// ExternalResult is either a reply/context payload or a failure reason.
type ExternalResult struct {
	Status  ExternalStatus
	Reply   string
	Context string
	Reason  error
}

// Succeeded reports whether the result carries a payload.
func (r ExternalResult) Succeeded() bool {
	return r.Status == ExternalSucceeded
}

func externalSucceeded(reply, label string) ExternalResult {
	return ExternalResult{Status: ExternalSucceeded, Reply: reply, Context: label}
}

func externalFailed(reason error) ExternalResult {
	return ExternalResult{Status: ExternalFailed, Reason: reason}
}

// Unconfigured stands in for the external service when no endpoint or credential is set.
type Unconfigured struct{}

// Classify always fails with ErrNotConfigured.
func (Unconfigured) Classify(context.Context, string) ExternalResult {
	return externalFailed(ErrNotConfigured)
}

// LLMClassifier asks a chat-completion model for a JSON {"reply", "context"} object.
type LLMClassifier struct {
	client  llm.LLMClient
	model   string
	timeout time.Duration
}

// NewLLMClassifier creates an external classifier. A zero timeout leaves the
// call bounded only by ctx and the client.
func NewLLMClassifier(client llm.LLMClient, model string, timeout time.Duration) *LLMClassifier {
	return &LLMClassifier{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// Classify makes exactly one call to the model.
func (c *LLMClassifier) Classify(ctx context.Context, message string) ExternalResult {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: c.model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: SystemPrompt},
			{Role: llm.RoleUser, Content: message},
		},
		ResponseFormat: llm.JSONObject,
	})
	metrics.ExternalLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return externalFailed(fmt.Errorf("external call: %w", err))
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return externalFailed(fmt.Errorf("%w: no choices", ErrMalformedOutput))
	}

	reply, label, err := parseVerdict(resp.Content())
	if err != nil {
		return externalFailed(err)
	}
	return externalSucceeded(reply, label)
}

// parseVerdict decodes the model output. Missing or null fields take their defaults;
// any other shape is malformed.
func parseVerdict(content string) (string, string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if payload == nil {
		return "", "", fmt.Errorf("%w: null payload", ErrMalformedOutput)
	}

	reply, err := stringField(payload, "reply", DefaultAIReply)
	if err != nil {
		return "", "", err
	}
	label, err := stringField(payload, "context", domain.ContextDefaultProcessing)
	if err != nil {
		return "", "", err
	}
	return reply, label, nil
}

func stringField(payload map[string]json.RawMessage, key, def string) (string, error) {
	raw, ok := payload[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return def, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedOutput, key)
	}
	return s, nil
}

// NewExternal builds the external classifier from configuration. Without an
// endpoint and credential (and outside mock mode) it returns Unconfigured.
func NewExternal(cfg *config.Config) (External, error) {
	if !cfg.ExternalConfigured() {
		return Unconfigured{}, nil
	}
	client, err := llm.NewLLMClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMClassifier(client, cfg.AzureDeployment, cfg.LLMTimeout), nil
}
