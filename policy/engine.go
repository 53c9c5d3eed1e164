// Package policy evaluates Rego policies with OPA.
package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// ErrUndefined is returned when the policy produces no value for the query.
var ErrUndefined = errors.New("policy decision undefined")

// Engine is a prepared OPA query over a single Rego module.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles module and prepares query for evaluation.
func NewEngine(ctx context.Context, moduleName, module, query string) (*Engine, error) {
	r := rego.New(
		rego.Query(query),
		rego.Module(moduleName, module),
	)

	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: prepared}, nil
}

// Decide evaluates the query against input and returns its string value.
func (e *Engine) Decide(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "", ErrUndefined
	}

	val := results[0].Expressions[0].Value
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("policy returned %T, want string", val)
	}
	return s, nil
}

// NewFallbackEngine prepares the keyword routing policy used when the external
// classifier is unavailable. Input: {"text": <lower-cased message>}.
func NewFallbackEngine(ctx context.Context) (*Engine, error) {
	return NewEngine(ctx, "chat_fallback.rego", FallbackPolicy, FallbackQuery)
}

// FallbackQuery selects the context label from FallbackPolicy.
const FallbackQuery = "data.chat_fallback.label"

// FallbackPolicy routes a message to a context label by keyword. Rules are tried
// in order and the first match wins.
const FallbackPolicy = `
package chat_fallback

marketing_keywords := ["optimizar", "ctr", "cpc", "campaña", "métricas"]

tech_keywords := ["python", "fastapi", "react", "vite", "azure"]

off_topic_keywords := ["capital", "tiempo", "edad", "quién eres"]

mentions(keywords) {
	some i
	contains(input.text, keywords[i])
}

default label = "DEFAULT_PROCESSING"

label = "MARKETING_OPTIMIZATION" {
	mentions(marketing_keywords)
} else = "TECH_STACK" {
	mentions(tech_keywords)
} else = "GENERAL_INQUIRY" {
	mentions(off_topic_keywords)
}
`
