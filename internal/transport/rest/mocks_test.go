package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/service/drafts"
	"github.com/replyflow/replyflow-backend/internal/service/settings"
)

type draftServiceMock struct {
	GenerateFunc        func(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error)
	RegenerateFunc      func(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error)
	SaveFunc            func(ctx context.Context, input drafts.SaveInput) ([]*domain.Draft, error)
	ListByInboxItemFunc func(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error)
	GetWithHistoryFunc  func(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.DraftWithHistory, error)
	EditFunc            func(ctx context.Context, input drafts.EditInput) (*drafts.EditResult, error)
	ApproveFunc         func(ctx context.Context, input drafts.ApproveInput) (*drafts.ReviewResult, error)
	RejectFunc          func(ctx context.Context, input drafts.RejectInput) (*drafts.ReviewResult, error)
	MarkSentFunc        func(ctx context.Context, input drafts.MarkSentInput) (*drafts.ReviewResult, error)
	MarkFailedFunc      func(ctx context.Context, input drafts.MarkFailedInput) (*drafts.ReviewResult, error)
}

func (m *draftServiceMock) Generate(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error) {
	return m.GenerateFunc(ctx, input)
}

func (m *draftServiceMock) Regenerate(ctx context.Context, input drafts.GenerateInput) (*drafts.GenerateResult, error) {
	return m.RegenerateFunc(ctx, input)
}

func (m *draftServiceMock) Save(ctx context.Context, input drafts.SaveInput) ([]*domain.Draft, error) {
	return m.SaveFunc(ctx, input)
}

func (m *draftServiceMock) ListByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
	return m.ListByInboxItemFunc(ctx, workspaceID, inboxItemID)
}

func (m *draftServiceMock) GetWithHistory(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.DraftWithHistory, error) {
	return m.GetWithHistoryFunc(ctx, workspaceID, draftID)
}

func (m *draftServiceMock) Edit(ctx context.Context, input drafts.EditInput) (*drafts.EditResult, error) {
	return m.EditFunc(ctx, input)
}

func (m *draftServiceMock) Approve(ctx context.Context, input drafts.ApproveInput) (*drafts.ReviewResult, error) {
	return m.ApproveFunc(ctx, input)
}

func (m *draftServiceMock) Reject(ctx context.Context, input drafts.RejectInput) (*drafts.ReviewResult, error) {
	return m.RejectFunc(ctx, input)
}

func (m *draftServiceMock) MarkSent(ctx context.Context, input drafts.MarkSentInput) (*drafts.ReviewResult, error) {
	return m.MarkSentFunc(ctx, input)
}

func (m *draftServiceMock) MarkFailed(ctx context.Context, input drafts.MarkFailedInput) (*drafts.ReviewResult, error) {
	return m.MarkFailedFunc(ctx, input)
}

type userGetterMock struct {
	GetByIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *userGetterMock) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, userID)
}

type settingsServiceMock struct {
	GetApprovalFunc    func(ctx context.Context, workspaceID uuid.UUID) (domain.ApprovalSettings, error)
	UpdateApprovalFunc func(ctx context.Context, input settings.UpdateApprovalInput) (domain.ApprovalSettings, error)
}

func (m *settingsServiceMock) GetApproval(ctx context.Context, workspaceID uuid.UUID) (domain.ApprovalSettings, error) {
	return m.GetApprovalFunc(ctx, workspaceID)
}

func (m *settingsServiceMock) UpdateApproval(ctx context.Context, input settings.UpdateApprovalInput) (domain.ApprovalSettings, error) {
	return m.UpdateApprovalFunc(ctx, input)
}

type metricsServiceMock struct {
	WorkflowFunc     func(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.WorkflowMetrics, error)
	EditFeedbackFunc func(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.EditFeedback, error)
}

func (m *metricsServiceMock) Workflow(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.WorkflowMetrics, error) {
	return m.WorkflowFunc(ctx, workspaceID, window)
}

func (m *metricsServiceMock) EditFeedback(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.EditFeedback, error) {
	return m.EditFeedbackFunc(ctx, workspaceID, window)
}
