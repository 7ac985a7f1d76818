package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

// metricsService defines the minimal interface needed by MetricsHandler.
type metricsService interface {
	Workflow(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.WorkflowMetrics, error)
	EditFeedback(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.EditFeedback, error)
}

// MetricsHandler serves the workflow metrics REST endpoints.
type MetricsHandler struct {
	svc metricsService
	log *slog.Logger
}

// NewMetricsHandler creates a MetricsHandler.
func NewMetricsHandler(svc metricsService, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{svc: svc, log: logger.With("handler", "metrics")}
}

// Workflow handles GET /workspaces/{workspaceID}/metrics/workflow.
// Optional ?start= and ?end= query params (RFC 3339) bound the window.
func (h *MetricsHandler) Workflow(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	window, ok := parseWindow(w, r)
	if !ok {
		return
	}

	metrics, err := h.svc.Workflow(r.Context(), workspaceID, window)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// EditFeedback handles GET /workspaces/{workspaceID}/metrics/edit-feedback.
func (h *MetricsHandler) EditFeedback(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	window, ok := parseWindow(w, r)
	if !ok {
		return
	}

	feedback, err := h.svc.EditFeedback(r.Context(), workspaceID, window)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, feedback)
}

// parseWindow reads the optional start/end RFC 3339 query params. A
// malformed timestamp writes a 400 and returns false.
func parseWindow(w http.ResponseWriter, r *http.Request) (domain.MetricsWindow, bool) {
	var window domain.MetricsWindow

	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start timestamp")
			return window, false
		}
		window.Start = &t
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end timestamp")
			return window, false
		}
		window.End = &t
	}

	return window, true
}
