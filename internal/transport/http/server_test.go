package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/adgenie/internal/classifier"
	"github.com/xiaot623/adgenie/internal/config"
	"github.com/xiaot623/adgenie/internal/service"
	"github.com/xiaot623/adgenie/tests/helpers"
)

const testOrigin = "http://localhost:5173"

func newTestServer(t *testing.T, logs *bytes.Buffer) *echo.Echo {
	t.Helper()
	fallback, err := classifier.NewDefaultFallback(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{CORSOrigin: testOrigin}
	svc := service.New(helpers.NewTestSQLiteStore(t), classifier.New(nil, fallback))
	return NewServer(svc, cfg, zerolog.New(logs))
}

func TestServerChatRoundTrip(t *testing.T) {
	var logs bytes.Buffer
	e := newTestServer(t, &logs)

	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"message":"fastapi","session_id":"abc"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"`+classifier.TechStackReply+`"}`, rec.Body.String())

	requestID := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, requestID)
	assert.Contains(t, logs.String(), `"request_id":"`+requestID+`"`)
	assert.Contains(t, logs.String(), `"uri":"/chat/message"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_interactions":2,"context_distribution":{"TECH_STACK":2}}`, rec.Body.String())
}

func TestServerCORS(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/chat/message", nil)
		req.Header.Set(echo.HeaderOrigin, testOrigin)
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		req.Header.Set(echo.HeaderAccessControlRequestHeaders, "Content-Type, X-Custom")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
		assert.Equal(t, "Content-Type, X-Custom", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderOrigin, "http://evil.example")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

func TestServerPrometheusEndpoint(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/chat/ping", nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adgenie_http_requests_total")
	assert.Contains(t, rec.Body.String(), `path="/chat/ping"`)
}

func TestServerNotFound(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerRecoversPanics(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})
	e.GET("/panic", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `adgenie_http_requests_total{method="GET",path="/panic",status="500"}`)
}

func TestServerRejectsOversizedBody(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})

	message := strings.Repeat("a", 128*1024)
	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"message":"`+message+`","session_id":"abc"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/summary", nil))
	assert.JSONEq(t, `{"total_interactions":0,"context_distribution":{}}`, rec.Body.String())
}

func TestServerOversizedBodyWithoutContentLength(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})

	message := strings.Repeat("a", 128*1024)
	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"message":"`+message+`","session_id":"abc"}`))
	req.ContentLength = -1
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
