package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

// Approve moves a PENDING draft to APPROVED. The caller's role must be in
// the workspace's approver list. The status change and the APPROVED audit
// row commit together; a concurrent reviewer loses with a conflict naming
// the status the draft actually has.
func (s *Service) Approve(ctx context.Context, input ApproveInput) (*ReviewResult, error) {
	userID, role, err := s.memberRole(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.approvalSettings(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if !settings.AllowsRole(role) {
		return nil, fmt.Errorf("role %s cannot approve drafts: %w", role, domain.ErrForbidden)
	}

	now := time.Now().UTC()
	result := &ReviewResult{}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		draft, err := s.drafts.GetByIDForUpdate(txCtx, input.WorkspaceID, input.DraftID)
		if err != nil {
			return fmt.Errorf("get draft: %w", err)
		}

		if !draft.Status.CanTransitionTo(domain.DraftStatusApproved) {
			return domain.NewInvalidTransitionError(draft.ID, draft.Status, domain.AuditActionApproved)
		}

		approved, err := s.drafts.Review(txCtx, draft.ID, domain.DraftStatusApproved, userID, now)
		if err != nil {
			return fmt.Errorf("approve draft: %w", err)
		}

		details := map[string]any{}
		if input.Note != nil {
			details["note"] = *input.Note
		}

		audit, err := s.audit.Create(txCtx, newAuditRecord(txCtx, draft.ID, domain.AuditActionApproved, userID, details, now))
		if err != nil {
			return fmt.Errorf("audit approval: %w", err)
		}

		result.Draft = approved
		result.Audit = audit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "draft approved",
		slog.String("user_id", userID.String()),
		slog.String("draft_id", input.DraftID.String()),
	)

	return result, nil
}
