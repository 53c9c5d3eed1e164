// Package classifier turns a chat message into a reply and a context label.
//
// An optional external classifier is tried first; when it is unconfigured or its
// single attempt fails, the deterministic keyword fallback answers instead.
package classifier

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/metrics"
)

// Source identifies which path produced a Result.
type Source string

const (
	SourceExternal Source = "external"
	SourceFallback Source = "fallback"
)

// Result is the outcome of classifying one message.
type Result struct {
	Reply   string
	Context string
	Source  Source
	// Reason explains why the external path was not used. Empty for SourceExternal.
	Reason string
}

// Classifier classifies chat messages.
type Classifier struct {
	external External
	fallback *Fallback
}

// New creates a classifier. A nil external is treated as Unconfigured.
func New(external External, fallback *Fallback) *Classifier {
	if external == nil {
		external = Unconfigured{}
	}
	return &Classifier{
		external: external,
		fallback: fallback,
	}
}

// Classify never fails: it always returns a usable reply and context label.
func (c *Classifier) Classify(ctx context.Context, message string) Result {
	logger := zerolog.Ctx(ctx)

	ext := c.external.Classify(ctx, message)
	if ext.Succeeded() {
		metrics.ClassifierOutcomes.WithLabelValues(string(SourceExternal)).Inc()
		return Result{
			Reply:   ext.Reply,
			Context: ext.Context,
			Source:  SourceExternal,
		}
	}

	if errors.Is(ext.Reason, ErrNotConfigured) {
		logger.Debug().Msg("external classifier not configured, using fallback rules")
	} else {
		logger.Warn().Err(ext.Reason).Msg("external classifier failed, using fallback rules")
	}

	reply, label := c.fallback.Classify(ctx, message)
	metrics.ClassifierOutcomes.WithLabelValues(string(SourceFallback)).Inc()

	result := Result{
		Reply:   reply,
		Context: label,
		Source:  SourceFallback,
	}
	if ext.Reason != nil {
		result.Reason = ext.Reason.Error()
	}
	return result
}
