package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/service/drafts"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRouter wires the draft mock into the real route table so path
// wildcards resolve the same way they do in production.
func testRouter(svc *draftServiceMock) *http.ServeMux {
	log := testLogger()
	return NewRouter(
		NewHealthHandler(&dbPingerMock{}, "test"),
		NewDraftHandler(svc, log),
		NewSettingsHandler(&settingsServiceMock{}, log),
		NewMetricsHandler(&metricsServiceMock{}, log),
		NewUserHandler(&userGetterMock{}, log),
	)
}

func fixtureDraft(workspaceID, inboxItemID uuid.UUID) *domain.Draft {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Draft{
		ID:              uuid.New(),
		WorkspaceID:     workspaceID,
		InboxItemID:     inboxItemID,
		Content:         "Thanks for reaching out! We'll take a look.",
		ConfidenceScore: 0.82,
		IsPreferred:     true,
		Status:          domain.DraftStatusPending,
		Metadata: domain.DraftMetadata{
			CharacterCount:       43,
			PlatformLimit:        280,
			WithinCharacterLimit: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func fixtureAudit(draftID uuid.UUID, action domain.AuditAction) *domain.AuditLogRecord {
	return &domain.AuditLogRecord{
		ID:            uuid.New(),
		DraftID:       draftID,
		Action:        action,
		PerformedByID: uuid.New(),
		CreatedAt:     time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestDraftHandler_Generate_Success(t *testing.T) {
	workspaceID := uuid.New()
	inboxItemID := uuid.New()
	var gotInput drafts.GenerateInput

	svc := &draftServiceMock{
		GenerateFunc: func(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error) {
			gotInput = input
			return &drafts.GenerateResult{
				InboxItemID: inboxItemID,
				Drafts:      []*domain.Draft{fixtureDraft(workspaceID, inboxItemID)},
				GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/inbox-items/%s/drafts/generate", workspaceID, inboxItemID)
	rec := doJSON(t, mux, http.MethodPost, path, generateRequest{NumDrafts: 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.WorkspaceID != workspaceID {
		t.Errorf("workspace ID not carried: got %s", gotInput.WorkspaceID)
	}
	if gotInput.InboxItemID != inboxItemID {
		t.Errorf("inbox item ID not carried: got %s", gotInput.InboxItemID)
	}
	if gotInput.NumDrafts != 3 {
		t.Errorf("numDrafts = %d, want 3", gotInput.NumDrafts)
	}

	var resp generateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(resp.Drafts))
	}
	if resp.Drafts[0].Status != "PENDING" {
		t.Errorf("status = %q, want PENDING", resp.Drafts[0].Status)
	}
	if !resp.Drafts[0].Metadata.WithinCharacterLimit {
		t.Error("expected withinCharacterLimit true")
	}
}

func TestDraftHandler_Generate_BadWorkspaceID(t *testing.T) {
	mux := testRouter(&draftServiceMock{})

	path := fmt.Sprintf("/api/v1/workspaces/not-a-uuid/inbox-items/%s/drafts/generate", uuid.New())
	rec := doJSON(t, mux, http.MethodPost, path, generateRequest{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDraftHandler_Generate_BadBody(t *testing.T) {
	mux := testRouter(&draftServiceMock{})

	path := fmt.Sprintf("/api/v1/workspaces/%s/inbox-items/%s/drafts/generate", uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDraftHandler_Save_Created(t *testing.T) {
	workspaceID := uuid.New()
	inboxItemID := uuid.New()
	var gotInput drafts.SaveInput

	svc := &draftServiceMock{
		SaveFunc: func(ctx context.Context, input drafts.SaveInput) ([]*domain.Draft, error) {
			gotInput = input
			return []*domain.Draft{fixtureDraft(workspaceID, inboxItemID)}, nil
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/inbox-items/%s/drafts", workspaceID, inboxItemID)
	rec := doJSON(t, mux, http.MethodPost, path, saveRequest{
		Drafts: []draftPayloadRequest{
			{Content: "Hello!", ConfidenceScore: 0.9, IsPreferred: true},
			{Content: "Hi there!", ConfidenceScore: 0.7},
		},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotInput.Drafts) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(gotInput.Drafts))
	}
	if !gotInput.Drafts[0].IsPreferred {
		t.Error("preferred flag lost in decode")
	}
}

func TestDraftHandler_Edit_ValidationError(t *testing.T) {
	svc := &draftServiceMock{
		EditFunc: func(ctx context.Context, input drafts.EditInput) (*drafts.EditResult, error) {
			return nil, domain.NewValidationError("content", "required")
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s", uuid.New(), uuid.New())
	rec := doJSON(t, mux, http.MethodPatch, path, editRequest{Content: ""})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "content" {
		t.Errorf("expected content field error, got %+v", resp.Fields)
	}
}

func TestDraftHandler_Edit_Success(t *testing.T) {
	workspaceID := uuid.New()
	draft := fixtureDraft(workspaceID, uuid.New())

	svc := &draftServiceMock{
		EditFunc: func(ctx context.Context, input drafts.EditInput) (*drafts.EditResult, error) {
			return &drafts.EditResult{
				Draft: draft,
				Edit: &domain.EditHistoryRecord{
					ID:           uuid.New(),
					DraftID:      draft.ID,
					EditType:     domain.EditTypeMinorTweak,
					EditDistance: 4,
					EditedByID:   uuid.New(),
				},
				Audit: fixtureAudit(draft.ID, domain.AuditActionEdited),
			}, nil
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s", workspaceID, draft.ID)
	rec := doJSON(t, mux, http.MethodPatch, path, editRequest{Content: "Thanks for reaching out! We'll look."})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp editResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Edit.EditType != "MINOR_TWEAK" {
		t.Errorf("editType = %q, want MINOR_TWEAK", resp.Edit.EditType)
	}
	if resp.Audit.Action != "EDITED" {
		t.Errorf("audit action = %q, want EDITED", resp.Audit.Action)
	}
}

func TestDraftHandler_Approve_Forbidden(t *testing.T) {
	svc := &draftServiceMock{
		ApproveFunc: func(ctx context.Context, input drafts.ApproveInput) (*drafts.ReviewResult, error) {
			return nil, fmt.Errorf("role MEMBER may not approve: %w", domain.ErrForbidden)
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s/approve", uuid.New(), uuid.New())
	rec := doJSON(t, mux, http.MethodPost, path, nil)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestDraftHandler_Approve_EmptyBodyAllowed(t *testing.T) {
	workspaceID := uuid.New()
	draft := fixtureDraft(workspaceID, uuid.New())
	draft.Status = domain.DraftStatusApproved

	svc := &draftServiceMock{
		ApproveFunc: func(ctx context.Context, input drafts.ApproveInput) (*drafts.ReviewResult, error) {
			if input.Note != nil {
				t.Errorf("expected nil note for empty body, got %q", *input.Note)
			}
			return &drafts.ReviewResult{
				Draft: draft,
				Audit: fixtureAudit(draft.ID, domain.AuditActionApproved),
			}, nil
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s/approve", workspaceID, draft.ID)
	rec := doJSON(t, mux, http.MethodPost, path, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp reviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Draft.Status != "APPROVED" {
		t.Errorf("status = %q, want APPROVED", resp.Draft.Status)
	}
}

func TestDraftHandler_Reject_Conflict(t *testing.T) {
	draftID := uuid.New()
	svc := &draftServiceMock{
		RejectFunc: func(ctx context.Context, input drafts.RejectInput) (*drafts.ReviewResult, error) {
			return nil, domain.NewInvalidTransitionError(draftID, domain.DraftStatusSent, domain.AuditActionRejected)
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s/reject", uuid.New(), draftID)
	rec := doJSON(t, mux, http.MethodPost, path, rejectRequest{Reason: "wrong tone"})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected the transition message in the error body")
	}
}

func TestDraftHandler_Get_NotFound(t *testing.T) {
	svc := &draftServiceMock{
		GetWithHistoryFunc: func(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.DraftWithHistory, error) {
			return nil, domain.ErrNotFound
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s", uuid.New(), uuid.New())
	rec := doJSON(t, mux, http.MethodGet, path, nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestDraftHandler_Get_AssemblesHistory(t *testing.T) {
	workspaceID := uuid.New()
	draft := fixtureDraft(workspaceID, uuid.New())

	svc := &draftServiceMock{
		GetWithHistoryFunc: func(ctx context.Context, wsID, draftID uuid.UUID) (*domain.DraftWithHistory, error) {
			return &domain.DraftWithHistory{
				Draft: draft,
				EditHistory: []*domain.EditHistoryRecord{
					{ID: uuid.New(), DraftID: draft.ID, EditType: domain.EditTypeToneAdjustment, EditedByID: uuid.New()},
				},
				AuditLog: []*domain.AuditLogRecord{
					fixtureAudit(draft.ID, domain.AuditActionCreated),
					fixtureAudit(draft.ID, domain.AuditActionEdited),
				},
			}, nil
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s", workspaceID, draft.ID)
	rec := doJSON(t, mux, http.MethodGet, path, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp draftWithHistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.EditHistory) != 1 {
		t.Errorf("expected 1 edit record, got %d", len(resp.EditHistory))
	}
	if len(resp.AuditLog) != 2 {
		t.Errorf("expected 2 audit records, got %d", len(resp.AuditLog))
	}
}

func TestDraftHandler_MarkSent_Success(t *testing.T) {
	workspaceID := uuid.New()
	draft := fixtureDraft(workspaceID, uuid.New())
	draft.Status = domain.DraftStatusSent

	svc := &draftServiceMock{
		MarkSentFunc: func(ctx context.Context, input drafts.MarkSentInput) (*drafts.ReviewResult, error) {
			return &drafts.ReviewResult{
				Draft: draft,
				Audit: fixtureAudit(draft.ID, domain.AuditActionSent),
			}, nil
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s/sent", workspaceID, draft.ID)
	rec := doJSON(t, mux, http.MethodPost, path, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDraftHandler_MarkFailed_RequiresMessage(t *testing.T) {
	svc := &draftServiceMock{
		MarkFailedFunc: func(ctx context.Context, input drafts.MarkFailedInput) (*drafts.ReviewResult, error) {
			return nil, domain.NewValidationError("error_message", "required")
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/drafts/%s/failed", uuid.New(), uuid.New())
	rec := doJSON(t, mux, http.MethodPost, path, markFailedRequest{})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestDraftHandler_List_Unauthorized(t *testing.T) {
	svc := &draftServiceMock{
		ListByInboxItemFunc: func(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	mux := testRouter(svc)

	path := fmt.Sprintf("/api/v1/workspaces/%s/inbox-items/%s/drafts", uuid.New(), uuid.New())
	rec := doJSON(t, mux, http.MethodGet, path, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
