package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/service/settings"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	GetApproval(ctx context.Context, workspaceID uuid.UUID) (domain.ApprovalSettings, error)
	UpdateApproval(ctx context.Context, input settings.UpdateApprovalInput) (domain.ApprovalSettings, error)
}

// SettingsHandler serves the workspace settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

// updateApprovalRequest is a partial update. Omitted fields keep their
// current effective value; clearEscalationTimeout removes the timeout.
type updateApprovalRequest struct {
	RequireApproval           *bool    `json:"requireApproval,omitempty"`
	ApproverRoles             []string `json:"approverRoles,omitempty"`
	AutoApproveHighConfidence *bool    `json:"autoApproveHighConfidence,omitempty"`
	AutoApproveThreshold      *float64 `json:"autoApproveThreshold,omitempty"`
	NotifyApprovers           *bool    `json:"notifyApprovers,omitempty"`
	EscalationTimeoutHours    *int     `json:"escalationTimeoutHours,omitempty"`
	ClearEscalationTimeout    bool     `json:"clearEscalationTimeout,omitempty"`
}

type approvalSettingsResponse struct {
	RequireApproval           bool     `json:"requireApproval"`
	ApproverRoles             []string `json:"approverRoles"`
	AutoApproveHighConfidence bool     `json:"autoApproveHighConfidence"`
	AutoApproveThreshold      float64  `json:"autoApproveThreshold"`
	NotifyApprovers           bool     `json:"notifyApprovers"`
	EscalationTimeoutHours    *int     `json:"escalationTimeoutHours"`
}

// GetApproval handles GET /workspaces/{workspaceID}/settings/approval.
// The response is always the fully resolved policy, never a partial blob.
func (h *SettingsHandler) GetApproval(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}

	resolved, err := h.svc.GetApproval(r.Context(), workspaceID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toApprovalSettingsResponse(resolved))
}

// UpdateApproval handles PATCH /workspaces/{workspaceID}/settings/approval.
func (h *SettingsHandler) UpdateApproval(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}

	var req updateApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.ApprovalSettingsPatch{
		RequireApproval:           req.RequireApproval,
		AutoApproveHighConfidence: req.AutoApproveHighConfidence,
		AutoApproveThreshold:      req.AutoApproveThreshold,
		NotifyApprovers:           req.NotifyApprovers,
		EscalationTimeoutHours:    req.EscalationTimeoutHours,
		ClearEscalationTimeout:    req.ClearEscalationTimeout,
	}
	for _, role := range req.ApproverRoles {
		patch.ApproverRoles = append(patch.ApproverRoles, domain.WorkspaceRole(role))
	}

	updated, err := h.svc.UpdateApproval(r.Context(), settings.UpdateApprovalInput{
		WorkspaceID: workspaceID,
		Patch:       patch,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toApprovalSettingsResponse(updated))
}

func toApprovalSettingsResponse(s domain.ApprovalSettings) approvalSettingsResponse {
	roles := make([]string, 0, len(s.ApproverRoles))
	for _, r := range s.ApproverRoles {
		roles = append(roles, r.String())
	}
	return approvalSettingsResponse{
		RequireApproval:           s.RequireApproval,
		ApproverRoles:             roles,
		AutoApproveHighConfidence: s.AutoApproveHighConfidence,
		AutoApproveThreshold:      s.AutoApproveThreshold,
		NotifyApprovers:           s.NotifyApprovers,
		EscalationTimeoutHours:    s.EscalationTimeoutHours,
	}
}
