// Package llm provides an abstraction for chat-completion API clients.
package llm

import "context"

// LLMClient defines the interface for LLM API operations.
type LLMClient interface {
	// CreateChatCompletion sends a chat completion request (non-streaming).
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure the clients implement LLMClient.
var (
	_ LLMClient = (*Client)(nil)
	_ LLMClient = (*MockClient)(nil)
	_ LLMClient = (*LangChainClient)(nil)
)
