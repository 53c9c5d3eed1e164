package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API styles understood by Client.
const (
	StyleOpenAI = "openai"
	StyleAzure  = "azure"
)

// Client is an HTTP chat-completions client for OpenAI-compatible and Azure OpenAI endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	style      string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a client for an OpenAI-compatible endpoint using bearer auth.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		style:   StyleOpenAI,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewAzureClient creates a client for an Azure OpenAI resource. The request model
// is used as the deployment name.
func NewAzureClient(endpoint, apiKey, apiVersion string, timeout time.Duration) *Client {
	c := NewClient(endpoint, apiKey, timeout)
	c.style = StyleAzure
	c.apiVersion = apiVersion
	return c
}

// CreateChatCompletion sends a chat completion request (non-streaming).
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL(req.Model), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return nil, fmt.Errorf("LLM API error [%d]: %s (type: %s)", resp.StatusCode, errResp.Error.Message, errResp.Error.Type)
		}
		return nil, fmt.Errorf("LLM API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

func (c *Client) completionsURL(model string) string {
	if c.style == StyleAzure {
		u := c.baseURL + "/openai/deployments/" + url.PathEscape(model) + "/chat/completions"
		if c.apiVersion != "" {
			u += "?api-version=" + url.QueryEscape(c.apiVersion)
		}
		return u
	}
	return c.baseURL + "/v1/chat/completions"
}

// setHeaders sets common request headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey == "" {
		return
	}
	if c.style == StyleAzure {
		req.Header.Set("api-key", c.apiKey)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
