package drafts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

// auditListLimit caps how many audit rows GetWithHistory returns per draft.
const auditListLimit = 50

// ListByInboxItem returns the drafts generated for one inbox item, the
// preferred draft first, then by descending confidence.
func (s *Service) ListByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
	if _, _, err := s.memberRole(ctx, workspaceID); err != nil {
		return nil, err
	}

	if inboxItemID == uuid.Nil {
		return nil, domain.NewValidationError("inbox_item_id", "required")
	}

	drafts, err := s.drafts.ListByInboxItem(ctx, workspaceID, inboxItemID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	return drafts, nil
}

// GetWithHistory returns a draft with its full paper trail: every edit in
// reverse chronological order and the most recent audit rows.
func (s *Service) GetWithHistory(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.DraftWithHistory, error) {
	if _, _, err := s.memberRole(ctx, workspaceID); err != nil {
		return nil, err
	}

	if draftID == uuid.Nil {
		return nil, domain.NewValidationError("draft_id", "required")
	}

	draft, err := s.drafts.GetByID(ctx, workspaceID, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	edits, err := s.edits.ListByDraft(ctx, draft.ID)
	if err != nil {
		return nil, fmt.Errorf("list edit history: %w", err)
	}

	auditLog, err := s.audit.ListByDraft(ctx, draft.ID, auditListLimit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}

	return &domain.DraftWithHistory{
		Draft:       draft,
		EditHistory: edits,
		AuditLog:    auditLog,
	}, nil
}
