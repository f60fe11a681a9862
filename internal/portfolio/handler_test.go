package portfolio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
	"github.com/HIMANSHUIPE/HSClassification/internal/hscode"
	"github.com/HIMANSHUIPE/HSClassification/internal/portfolio"
)

type mockSystem struct {
	analyzeFn func(ctx context.Context, company string) (*classifier.Portfolio, error)
}

func (m *mockSystem) Handler() *portfolio.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Analyze(ctx context.Context, company string) (*classifier.Portfolio, error) {
	return m.analyzeFn(ctx, company)
}

func newTestHandler(sys portfolio.System) *portfolio.Handler {
	return portfolio.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *portfolio.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func samplePortfolio() *classifier.Portfolio {
	return &classifier.Portfolio{
		Company:   "Junifer Networks",
		Industry:  "Telecommunications equipment",
		RiskLevel: classifier.RiskMedium,
		Products: []classifier.Product{
			{
				ProductName: "Network router",
				Category:    "Networking equipment",
				HSCode:      "8517.62.00",
				Chapter:     "85 - Electrical machinery",
				Description: "Apparatus for the reception and transmission of data",
				Confidence:  80,
				IsDualUse:   true,
				Reasoning:   "Carrier-grade routers may fall under encryption controls.",
				Links:       hscode.ReferenceLinks("8517.62.00"),
			},
		},
	}
}

func TestHandlerAnalyze(t *testing.T) {
	t.Run("returns portfolio analysis", func(t *testing.T) {
		var captured string
		sys := &mockSystem{
			analyzeFn: func(_ context.Context, company string) (*classifier.Portfolio, error) {
				captured = company
				return samplePortfolio(), nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(portfolio.AnalyzeRequest{Company: "Junifer Networks"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/portfolio/analyze", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured != "Junifer Networks" {
			t.Errorf("company = %q, want Junifer Networks", captured)
		}

		var got classifier.Portfolio
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.RiskLevel != classifier.RiskMedium {
			t.Errorf("risk_level = %q, want Medium", got.RiskLevel)
		}
		if len(got.Products) != 1 {
			t.Fatalf("products = %d, want 1", len(got.Products))
		}
		if got.Products[0].Links.Portal == "" {
			t.Error("product links missing from response")
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/portfolio/analyze", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("empty company returns 400", func(t *testing.T) {
		sys := &mockSystem{
			analyzeFn: func(_ context.Context, _ string) (*classifier.Portfolio, error) {
				return nil, classifier.ErrEmptyCompany
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/portfolio/analyze", bytes.NewReader([]byte(`{"company":""}`)))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("pipeline failure returns 502", func(t *testing.T) {
		sys := &mockSystem{
			analyzeFn: func(_ context.Context, _ string) (*classifier.Portfolio, error) {
				return nil, classifier.ErrEmptyPortfolio
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/portfolio/analyze", bytes.NewReader([]byte(`{"company":"Acme"}`)))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})

	t.Run("missing credentials return 503", func(t *testing.T) {
		sys := &mockSystem{
			analyzeFn: func(_ context.Context, _ string) (*classifier.Portfolio, error) {
				return nil, completion.ErrNotConfigured
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/portfolio/analyze", bytes.NewReader([]byte(`{"company":"Acme"}`)))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestHandlerRoutes(t *testing.T) {
	sys := &mockSystem{}
	group := newTestHandler(sys).Routes()

	if group.Prefix != "/portfolio" {
		t.Errorf("prefix = %q, want /portfolio", group.Prefix)
	}
	if len(group.Routes) != 1 {
		t.Fatalf("route count = %d, want 1", len(group.Routes))
	}
	if r := group.Routes[0]; r.Method != "POST" || r.Pattern != "/analyze" {
		t.Errorf("route = %s %s, want POST /analyze", r.Method, r.Pattern)
	}
}
