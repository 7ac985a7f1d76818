// Package metrics aggregates approval-workflow health statistics and the
// edit-feedback signal exposed for model training.
package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/pkg/ctxutil"
)

type draftStatsRepo interface {
	CountByStatus(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (domain.DraftStatusCounts, error)
	AverageApprovalMinutes(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (float64, error)
}

type editStatsRepo interface {
	Stats(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (draftsWithEdits, totalEdits int, err error)
	GroupByType(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) ([]domain.EditTypeAggregate, error)
}

type workspaceRepo interface {
	GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error)
}

// Service computes workflow metrics. Everything is derived on demand from
// the accumulated draft, edit, and audit records; nothing is cached in
// process.
type Service struct {
	drafts    draftStatsRepo
	edits     editStatsRepo
	workspace workspaceRepo
	log       *slog.Logger
}

// NewService creates a new metrics service.
func NewService(log *slog.Logger, drafts draftStatsRepo, edits editStatsRepo, workspace workspaceRepo) *Service {
	return &Service{
		drafts:    drafts,
		edits:     edits,
		workspace: workspace,
		log:       log.With("service", "metrics"),
	}
}

func (s *Service) requireMember(ctx context.Context, workspaceID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if _, err := s.workspace.GetMemberRole(ctx, workspaceID, userID); err != nil {
		return fmt.Errorf("get member role: %w", err)
	}
	return nil
}

// Workflow computes the approval-pipeline statistics for a workspace over
// an optional [start, end) window.
//
// Empty populations degrade to defined values: rates over zero reviewed
// drafts are 0, and the send success rate is 100 when nothing was sent or
// failed, treating the absence of failure as success.
func (s *Service) Workflow(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.WorkflowMetrics, error) {
	if err := s.requireMember(ctx, workspaceID); err != nil {
		return nil, err
	}

	counts, err := s.drafts.CountByStatus(ctx, workspaceID, window)
	if err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}

	avgApproval, err := s.drafts.AverageApprovalMinutes(ctx, workspaceID, window)
	if err != nil {
		return nil, fmt.Errorf("average approval time: %w", err)
	}

	draftsWithEdits, totalEdits, err := s.edits.Stats(ctx, workspaceID, window)
	if err != nil {
		return nil, fmt.Errorf("edit stats: %w", err)
	}

	m := &domain.WorkflowMetrics{
		TotalDrafts:         counts.Total,
		AverageApprovalTime: avgApproval,
		SendSuccessRate:     100,
	}

	if counts.Reviewed > 0 {
		m.ApprovalRate = percent(counts.Approved+counts.Sent, counts.Reviewed)
		m.RejectionRate = percent(counts.Rejected, counts.Reviewed)
	}

	if counts.Total > 0 {
		m.EditBeforeApprovalRate = percent(draftsWithEdits, counts.Total)
		m.AverageEditsPerDraft = float64(totalEdits) / float64(counts.Total)
	}

	if attempts := counts.Sent + counts.Failed; attempts > 0 {
		m.SendSuccessRate = percent(counts.Sent, attempts)
	}

	return m, nil
}

// EditFeedback returns the labeled edit signal for a workspace: per-type
// aggregates with mean edit distance plus the overall edit rate.
func (s *Service) EditFeedback(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (*domain.EditFeedback, error) {
	if err := s.requireMember(ctx, workspaceID); err != nil {
		return nil, err
	}

	counts, err := s.drafts.CountByStatus(ctx, workspaceID, window)
	if err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}

	_, totalEdits, err := s.edits.Stats(ctx, workspaceID, window)
	if err != nil {
		return nil, fmt.Errorf("edit stats: %w", err)
	}

	byType, err := s.edits.GroupByType(ctx, workspaceID, window)
	if err != nil {
		return nil, fmt.Errorf("group edits: %w", err)
	}

	fb := &domain.EditFeedback{
		TotalDrafts: counts.Total,
		TotalEdits:  totalEdits,
		ByType:      byType,
	}
	if counts.Total > 0 {
		fb.EditRate = float64(totalEdits) / float64(counts.Total)
	}

	return fb, nil
}

func percent(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}
