package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/adgenie/internal/domain"
)

func TestGetSummaryEmpty(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/metrics/summary", nil), rec)
	if err := h.GetSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(raw["total_interactions"]) != "0" || string(raw["context_distribution"]) != "{}" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetSummaryAfterExchanges(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	bodies := []string{
		`{"message":"optimizar mi cpc","session_id":"a"}`,
		`{"message":"¿Usan React?","session_id":"b"}`,
		`{"message":"Hola","session_id":"a"}`,
	}
	for _, b := range bodies {
		if rec := postMessage(t, h, b); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/metrics/summary", nil), rec)
	if err := h.GetSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp domain.MetricsSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalInteractions != 6 {
		t.Fatalf("expected 6 interactions, got %d", resp.TotalInteractions)
	}
	want := map[string]int64{
		domain.ContextMarketingOptimization: 2,
		domain.ContextTechStack:             2,
		domain.ContextDefaultProcessing:     2,
	}
	if len(resp.ContextDistribution) != len(want) {
		t.Fatalf("unexpected distribution: %+v", resp.ContextDistribution)
	}
	for k, v := range want {
		if resp.ContextDistribution[k] != v {
			t.Fatalf("distribution[%s] = %d, want %d", k, resp.ContextDistribution[k], v)
		}
	}
}

func TestGetSummaryStoreFailure(t *testing.T) {
	e := echo.New()
	h := newHandlerWithStore(t, brokenStore{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/metrics/summary", nil), rec)
	if err := h.GetSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestGetStatus(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)
	postMessage(t, h, `{"message":"hola","session_id":"a"}`)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/metrics/status", nil), rec)
	if err := h.GetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp domain.ServiceStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "OK" || resp.TotalUsers != 1 || resp.Uptime == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
