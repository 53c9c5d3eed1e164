package domain

// ChatMessageRequest is the body of POST /chat/message.
// Pointers distinguish a missing field from an empty string.
type ChatMessageRequest struct {
	Message   *string `json:"message"`
	SessionID *string `json:"session_id"`
}

// ChatMessageResponse is the reply returned to the chat client.
type ChatMessageResponse struct {
	Reply string `json:"reply"`
}

// MetricsSummary aggregates stored interactions.
type MetricsSummary struct {
	TotalInteractions   int64            `json:"total_interactions"`
	ContextDistribution map[string]int64 `json:"context_distribution"`
}

// ChatHistoryResponse lists the stored interactions of one session.
type ChatHistoryResponse struct {
	SessionID    string            `json:"session_id"`
	Interactions []ChatInteraction `json:"interactions"`
}

// ServiceStatus is returned by GET /metrics/status.
type ServiceStatus struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	TotalUsers int64  `json:"total_users"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// ErrorDetail is the body of a failed request.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is returned with 422 when a request body fails validation.
type ValidationErrorResponse struct {
	Detail []ValidationError `json:"detail"`
}
