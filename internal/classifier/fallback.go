package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/domain"
	"github.com/xiaot623/adgenie/policy"
)

// Fixed fallback replies.
const (
	MarketingReply      = "¡Excelente! Hemos detectado una consulta sobre optimización de campañas. Estamos listos para analizar sus métricas."
	TechStackReply      = "Claro, nuestra pila tecnológica está basada en Python/FastAPI y React/Vite, todo escalado en Azure."
	GeneralInquiryReply = "Soy AdGenie, tu asistente de campañas. Mi foco es el marketing digital. ¿En qué puedo ayudar?"
	defaultReplyFormat  = "He recibido tu solicitud: '%s'. Estoy buscando la mejor decisión de un experto. ¡Gracias por usar AdGenie!"
)

// Fallback is the deterministic keyword classifier. Its routing rules live in
// the chat_fallback Rego policy.
type Fallback struct {
	engine *policy.Engine
}

// NewFallback creates a fallback classifier over a prepared policy engine.
func NewFallback(engine *policy.Engine) *Fallback {
	return &Fallback{engine: engine}
}

// NewDefaultFallback prepares the built-in keyword policy.
func NewDefaultFallback(ctx context.Context) (*Fallback, error) {
	engine, err := policy.NewFallbackEngine(ctx)
	if err != nil {
		return nil, err
	}
	return NewFallback(engine), nil
}

// Classify returns the reply and label for message. The result depends only on
// the lower-cased text.
func (f *Fallback) Classify(ctx context.Context, message string) (string, string) {
	// Request cancellation must not change the answer.
	label, err := f.engine.Decide(context.WithoutCancel(ctx), map[string]interface{}{
		"text": strings.ToLower(message),
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("fallback policy evaluation failed")
		label = domain.ContextDefaultProcessing
	}
	return FallbackReply(label, message), label
}

// FallbackReply returns the fixed reply for label. Unknown labels get the echo reply.
func FallbackReply(label, message string) string {
	switch label {
	case domain.ContextMarketingOptimization:
		return MarketingReply
	case domain.ContextTechStack:
		return TechStackReply
	case domain.ContextGeneralInquiry:
		return GeneralInquiryReply
	default:
		return fmt.Sprintf(defaultReplyFormat, message)
	}
}
