package portfolio

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/HIMANSHUIPE/HSClassification/pkg/handlers"
	"github.com/HIMANSHUIPE/HSClassification/pkg/routes"
)

// AnalyzeRequest carries the company name for portfolio analysis.
type AnalyzeRequest struct {
	Company string `json:"company"`
}

// Handler provides HTTP endpoints for portfolio analysis.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "portfolio"),
	}
}

// Routes returns the route group definition for portfolio endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/portfolio",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/analyze", Handler: h.Analyze},
		},
	}
}

// Analyze infers a company's likely product portfolio from a JSON request body.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Analyze(r.Context(), req.Company)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
