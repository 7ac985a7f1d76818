package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/service/drafts"
)

// draftService defines the minimal interface needed by DraftHandler.
type draftService interface {
	Generate(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error)
	Regenerate(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error)
	Save(ctx context.Context, input drafts.SaveInput) ([]*domain.Draft, error)
	ListByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error)
	GetWithHistory(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.DraftWithHistory, error)
	Edit(ctx context.Context, input drafts.EditInput) (*drafts.EditResult, error)
	Approve(ctx context.Context, input drafts.ApproveInput) (*drafts.ReviewResult, error)
	Reject(ctx context.Context, input drafts.RejectInput) (*drafts.ReviewResult, error)
	MarkSent(ctx context.Context, input drafts.MarkSentInput) (*drafts.ReviewResult, error)
	MarkFailed(ctx context.Context, input drafts.MarkFailedInput) (*drafts.ReviewResult, error)
}

// DraftHandler serves the draft workflow REST endpoints.
type DraftHandler struct {
	svc draftService
	log *slog.Logger
}

// NewDraftHandler creates a DraftHandler.
func NewDraftHandler(svc draftService, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{svc: svc, log: logger.With("handler", "draft")}
}

type generateRequest struct {
	NumDrafts          int     `json:"numDrafts"`
	CustomInstructions *string `json:"customInstructions,omitempty"`
}

type draftPayloadRequest struct {
	Content         string             `json:"content"`
	ConfidenceScore float64            `json:"confidenceScore"`
	IsPreferred     bool               `json:"isPreferred"`
	Reason          string             `json:"reason,omitempty"`
	Hashtags        []string           `json:"hashtags,omitempty"`
	Mentions        []string           `json:"mentions,omitempty"`
	ToneMatch       map[string]float64 `json:"toneMatch,omitempty"`
}

type saveRequest struct {
	Drafts []draftPayloadRequest `json:"drafts"`
}

type editRequest struct {
	Content        string  `json:"content"`
	ChangesSummary *string `json:"changesSummary,omitempty"`
}

type approveRequest struct {
	Note *string `json:"note,omitempty"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type markFailedRequest struct {
	ErrorMessage string `json:"errorMessage"`
}

type draftResponse struct {
	ID              string               `json:"id"`
	WorkspaceID     string               `json:"workspaceId"`
	InboxItemID     string               `json:"inboxItemId"`
	Content         string               `json:"content"`
	ConfidenceScore float64              `json:"confidenceScore"`
	IsPreferred     bool                 `json:"isPreferred"`
	Reason          string               `json:"reason,omitempty"`
	Status          string               `json:"status"`
	Metadata        domain.DraftMetadata `json:"metadata"`
	ReviewedByID    *string              `json:"reviewedById,omitempty"`
	ReviewedAt      *time.Time           `json:"reviewedAt,omitempty"`
	SentAt          *time.Time           `json:"sentAt,omitempty"`
	ErrorMessage    *string              `json:"errorMessage,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type messageAnalysisResponse struct {
	Sentiment string   `json:"sentiment,omitempty"`
	Intent    string   `json:"intent,omitempty"`
	Topics    []string `json:"topics,omitempty"`
	Language  string   `json:"language,omitempty"`
}

type generateResponse struct {
	InboxItemID     string                   `json:"inboxItemId"`
	Drafts          []draftResponse          `json:"drafts"`
	HasBrandProfile bool                     `json:"hasBrandProfile"`
	MessageAnalysis *messageAnalysisResponse `json:"messageAnalysis,omitempty"`
	GeneratedAt     time.Time                `json:"generatedAt"`
}

type editHistoryResponse struct {
	ID              string    `json:"id"`
	DraftID         string    `json:"draftId"`
	OriginalContent string    `json:"originalContent"`
	EditedContent   string    `json:"editedContent"`
	EditType        string    `json:"editType"`
	EditDistance    int       `json:"editDistance"`
	ChangesSummary  *string   `json:"changesSummary,omitempty"`
	EditedByID      string    `json:"editedById"`
	CreatedAt       time.Time `json:"createdAt"`
}

type performerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type auditLogResponse struct {
	ID            string             `json:"id"`
	DraftID       string             `json:"draftId"`
	Action        string             `json:"action"`
	PerformedByID string             `json:"performedById"`
	Performer     *performerResponse `json:"performer,omitempty"`
	Details       map[string]any     `json:"details,omitempty"`
	IPAddress     *string            `json:"ipAddress,omitempty"`
	UserAgent     *string            `json:"userAgent,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type draftWithHistoryResponse struct {
	Draft       draftResponse         `json:"draft"`
	EditHistory []editHistoryResponse `json:"editHistory"`
	AuditLog    []auditLogResponse    `json:"auditLog"`
}

type reviewResponse struct {
	Draft draftResponse    `json:"draft"`
	Audit auditLogResponse `json:"audit"`
}

type editResponse struct {
	Draft draftResponse       `json:"draft"`
	Edit  editHistoryResponse `json:"edit"`
	Audit auditLogResponse    `json:"audit"`
}

// Generate handles POST /workspaces/{workspaceID}/inbox-items/{inboxItemID}/drafts/generate.
func (h *DraftHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.svc.Generate)
}

// Regenerate handles POST /workspaces/{workspaceID}/inbox-items/{inboxItemID}/drafts/regenerate.
func (h *DraftHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.svc.Regenerate)
}

func (h *DraftHandler) generate(
	w http.ResponseWriter,
	r *http.Request,
	call func(context.Context, drafts.GenerateInput) (*drafts.GenerateResult, error),
) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	inboxItemID, ok := pathUUID(w, r, "inboxItemID")
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := call(r.Context(), drafts.GenerateInput{
		WorkspaceID:        workspaceID,
		InboxItemID:        inboxItemID,
		NumDrafts:          req.NumDrafts,
		CustomInstructions: req.CustomInstructions,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toGenerateResponse(result))
}

// Save handles POST /workspaces/{workspaceID}/inbox-items/{inboxItemID}/drafts.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	inboxItemID, ok := pathUUID(w, r, "inboxItemID")
	if !ok {
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payloads := make([]drafts.DraftPayload, 0, len(req.Drafts))
	for _, d := range req.Drafts {
		payloads = append(payloads, drafts.DraftPayload{
			Content:         d.Content,
			ConfidenceScore: d.ConfidenceScore,
			IsPreferred:     d.IsPreferred,
			Reason:          d.Reason,
			Hashtags:        d.Hashtags,
			Mentions:        d.Mentions,
			ToneMatch:       d.ToneMatch,
		})
	}

	saved, err := h.svc.Save(r.Context(), drafts.SaveInput{
		WorkspaceID: workspaceID,
		InboxItemID: inboxItemID,
		Drafts:      payloads,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDraftResponses(saved))
}

// List handles GET /workspaces/{workspaceID}/inbox-items/{inboxItemID}/drafts.
func (h *DraftHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	inboxItemID, ok := pathUUID(w, r, "inboxItemID")
	if !ok {
		return
	}

	list, err := h.svc.ListByInboxItem(r.Context(), workspaceID, inboxItemID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDraftResponses(list))
}

// Get handles GET /workspaces/{workspaceID}/drafts/{draftID}.
// The response includes the full edit history and audit trail.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	draftID, ok := pathUUID(w, r, "draftID")
	if !ok {
		return
	}

	result, err := h.svc.GetWithHistory(r.Context(), workspaceID, draftID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	edits := make([]editHistoryResponse, 0, len(result.EditHistory))
	for _, e := range result.EditHistory {
		edits = append(edits, toEditHistoryResponse(e))
	}
	audits := make([]auditLogResponse, 0, len(result.AuditLog))
	for _, a := range result.AuditLog {
		audits = append(audits, toAuditLogResponse(a))
	}

	writeJSON(w, http.StatusOK, draftWithHistoryResponse{
		Draft:       toDraftResponse(result.Draft),
		EditHistory: edits,
		AuditLog:    audits,
	})
}

// Edit handles PATCH /workspaces/{workspaceID}/drafts/{draftID}.
func (h *DraftHandler) Edit(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	draftID, ok := pathUUID(w, r, "draftID")
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Edit(r.Context(), drafts.EditInput{
		WorkspaceID:    workspaceID,
		DraftID:        draftID,
		Content:        req.Content,
		ChangesSummary: req.ChangesSummary,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, editResponse{
		Draft: toDraftResponse(result.Draft),
		Edit:  toEditHistoryResponse(result.Edit),
		Audit: toAuditLogResponse(result.Audit),
	})
}

// Approve handles POST /workspaces/{workspaceID}/drafts/{draftID}/approve.
func (h *DraftHandler) Approve(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	draftID, ok := pathUUID(w, r, "draftID")
	if !ok {
		return
	}

	var req approveRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Approve(r.Context(), drafts.ApproveInput{
		WorkspaceID: workspaceID,
		DraftID:     draftID,
		Note:        req.Note,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponse(result))
}

// Reject handles POST /workspaces/{workspaceID}/drafts/{draftID}/reject.
func (h *DraftHandler) Reject(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	draftID, ok := pathUUID(w, r, "draftID")
	if !ok {
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Reject(r.Context(), drafts.RejectInput{
		WorkspaceID: workspaceID,
		DraftID:     draftID,
		Reason:      req.Reason,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponse(result))
}

// MarkSent handles POST /workspaces/{workspaceID}/drafts/{draftID}/sent.
func (h *DraftHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	draftID, ok := pathUUID(w, r, "draftID")
	if !ok {
		return
	}

	result, err := h.svc.MarkSent(r.Context(), drafts.MarkSentInput{
		WorkspaceID: workspaceID,
		DraftID:     draftID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponse(result))
}

// MarkFailed handles POST /workspaces/{workspaceID}/drafts/{draftID}/failed.
func (h *DraftHandler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}
	draftID, ok := pathUUID(w, r, "draftID")
	if !ok {
		return
	}

	var req markFailedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.MarkFailed(r.Context(), drafts.MarkFailedInput{
		WorkspaceID:  workspaceID,
		DraftID:      draftID,
		ErrorMessage: req.ErrorMessage,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponse(result))
}

// decodeOptionalBody decodes a JSON body when one is present. An empty body
// leaves the target at its zero value.
func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func toDraftResponse(d *domain.Draft) draftResponse {
	resp := draftResponse{
		ID:              d.ID.String(),
		WorkspaceID:     d.WorkspaceID.String(),
		InboxItemID:     d.InboxItemID.String(),
		Content:         d.Content,
		ConfidenceScore: d.ConfidenceScore,
		IsPreferred:     d.IsPreferred,
		Reason:          d.Reason,
		Status:          d.Status.String(),
		Metadata:        d.Metadata,
		ReviewedAt:      d.ReviewedAt,
		SentAt:          d.SentAt,
		ErrorMessage:    d.ErrorMessage,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.ReviewedByID != nil {
		s := d.ReviewedByID.String()
		resp.ReviewedByID = &s
	}
	return resp
}

func toDraftResponses(list []*domain.Draft) []draftResponse {
	out := make([]draftResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDraftResponse(d))
	}
	return out
}

func toGenerateResponse(result *drafts.GenerateResult) generateResponse {
	resp := generateResponse{
		InboxItemID:     result.InboxItemID.String(),
		Drafts:          toDraftResponses(result.Drafts),
		HasBrandProfile: result.HasBrandProfile,
		GeneratedAt:     result.GeneratedAt,
	}
	if result.MessageAnalysis != nil {
		resp.MessageAnalysis = &messageAnalysisResponse{
			Sentiment: result.MessageAnalysis.Sentiment,
			Intent:    result.MessageAnalysis.Intent,
			Topics:    result.MessageAnalysis.Topics,
			Language:  result.MessageAnalysis.Language,
		}
	}
	return resp
}

func toEditHistoryResponse(e *domain.EditHistoryRecord) editHistoryResponse {
	return editHistoryResponse{
		ID:              e.ID.String(),
		DraftID:         e.DraftID.String(),
		OriginalContent: e.OriginalContent,
		EditedContent:   e.EditedContent,
		EditType:        e.EditType.String(),
		EditDistance:    e.EditDistance,
		ChangesSummary:  e.ChangesSummary,
		EditedByID:      e.EditedByID.String(),
		CreatedAt:       e.CreatedAt,
	}
}

func toAuditLogResponse(a *domain.AuditLogRecord) auditLogResponse {
	resp := auditLogResponse{
		ID:            a.ID.String(),
		DraftID:       a.DraftID.String(),
		Action:        a.Action.String(),
		PerformedByID: a.PerformedByID.String(),
		Details:       a.Details,
		IPAddress:     a.IPAddress,
		UserAgent:     a.UserAgent,
		CreatedAt:     a.CreatedAt,
	}
	if a.Performer != nil {
		resp.Performer = &performerResponse{
			ID:    a.Performer.ID.String(),
			Name:  a.Performer.Name,
			Email: a.Performer.Email,
		}
	}
	return resp
}

func toReviewResponse(result *drafts.ReviewResult) reviewResponse {
	return reviewResponse{
		Draft: toDraftResponse(result.Draft),
		Audit: toAuditLogResponse(result.Audit),
	}
}
