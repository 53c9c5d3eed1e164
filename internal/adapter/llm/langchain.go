package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainClient adapts a langchaingo model to LLMClient.
type LangChainClient struct {
	model llms.Model
	name  string
}

// NewLangChainClient wraps an existing langchaingo model.
func NewLangChainClient(model llms.Model, name string) *LangChainClient {
	return &LangChainClient{model: model, name: name}
}

// NewLangChainOpenAI builds a langchaingo OpenAI model. style selects Azure or
// OpenAI-compatible addressing.
func NewLangChainOpenAI(style, baseURL, apiKey, model, apiVersion string) (*LangChainClient, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if style == StyleAzure {
		opts = append(opts,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithAPIVersion(apiVersion),
		)
	}

	m, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchain openai model: %w", err)
	}
	return NewLangChainClient(m, model), nil
}

// CreateChatCompletion translates the request to langchaingo message content.
func (c *LangChainClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, llms.TextParts(messageType(msg.Role), msg.Content))
	}

	var options []llms.CallOption
	if req.WantsJSON() {
		options = append(options, llms.WithJSONMode())
	}
	if req.Temperature != nil {
		options = append(options, llms.WithTemperature(*req.Temperature))
	}
	if req.MaxTokens != nil {
		options = append(options, llms.WithMaxTokens(*req.MaxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("langchain generate content: %w", err)
	}

	model := req.Model
	if model == "" {
		model = c.name
	}
	result := &ChatCompletionResponse{
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
	}
	for i, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		result.Choices = append(result.Choices, Choice{
			Index:        i,
			Message:      &ChatMessage{Role: RoleAssistant, Content: choice.Content},
			FinishReason: choice.StopReason,
		})
	}
	return result, nil
}

func messageType(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
