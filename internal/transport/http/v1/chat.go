package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/domain"
)

const chatErrorDetail = "Error interno del servidor al procesar la solicitud de chat."

// SendMessage runs one chat exchange.
// POST /chat/message
func (h *Handler) SendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	req, verrs, err := bindChatMessage(c)
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, domain.ValidationErrorResponse{Detail: verrs})
	}

	resp, err := h.service.SendMessage(ctx, *req.SessionID, *req.Message)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("chat exchange failed")
		return c.JSON(http.StatusInternalServerError, domain.ErrorDetail{Detail: chatErrorDetail})
	}

	return c.JSON(http.StatusOK, resp)
}

// Ping reports that the chat routes are mounted.
// GET /chat/ping
func (h *Handler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Chat router online"})
}

// GetHistory lists the stored interactions of a session.
// GET /chat/history/:session_id
func (h *Handler) GetHistory(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	ctx := c.Request().Context()

	history, err := h.service.GetHistory(ctx, sessionID, limit)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("session_id", sessionID).Msg("failed to load chat history")
		return c.JSON(http.StatusInternalServerError, domain.ErrorDetail{Detail: "Error interno del servidor al obtener el historial."})
	}

	return c.JSON(http.StatusOK, history)
}

// bindChatMessage binds a chat request body. Both fields must be present JSON
// strings; empty strings are valid.
// Oversized bodies surface as the body limit's 413.
func bindChatMessage(c echo.Context) (*domain.ChatMessageRequest, []domain.ValidationError, error) {
	var req domain.ChatMessageRequest
	if err := c.Bind(&req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge {
			return nil, nil, err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return nil, []domain.ValidationError{{
					Loc:  []string{"body"},
					Msg:  "Input should be a valid dictionary or object to extract fields from",
					Type: "model_attributes_type",
				}}, nil
			}
			return nil, []domain.ValidationError{{
				Loc:  []string{"body", typeErr.Field},
				Msg:  "Input should be a valid string",
				Type: "string_type",
			}}, nil
		}
		return nil, []domain.ValidationError{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}, nil
	}

	var verrs []domain.ValidationError
	if req.Message == nil {
		verrs = append(verrs, missingField("message"))
	}
	if req.SessionID == nil {
		verrs = append(verrs, missingField("session_id"))
	}
	if len(verrs) > 0 {
		return nil, verrs, nil
	}
	return &req, nil, nil
}

func missingField(name string) domain.ValidationError {
	return domain.ValidationError{
		Loc:  []string{"body", name},
		Msg:  "Field required",
		Type: "missing",
	}
}
