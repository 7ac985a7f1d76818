package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

// Reject moves a PENDING draft to REJECTED with a mandatory reason. The
// caller's role must be in the workspace's approver list. REJECTED is
// terminal; a new draft must be generated to retry.
func (s *Service) Reject(ctx context.Context, input RejectInput) (*ReviewResult, error) {
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
		return nil, fmt.Errorf("role %s cannot reject drafts: %w", role, domain.ErrForbidden)
	}

	now := time.Now().UTC()
	result := &ReviewResult{}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		draft, err := s.drafts.GetByIDForUpdate(txCtx, input.WorkspaceID, input.DraftID)
		if err != nil {
			return fmt.Errorf("get draft: %w", err)
		}

		if !draft.Status.CanTransitionTo(domain.DraftStatusRejected) {
			return domain.NewInvalidTransitionError(draft.ID, draft.Status, domain.AuditActionRejected)
		}

		rejected, err := s.drafts.Review(txCtx, draft.ID, domain.DraftStatusRejected, userID, now)
		if err != nil {
			return fmt.Errorf("reject draft: %w", err)
		}

		audit, err := s.audit.Create(txCtx, newAuditRecord(txCtx, draft.ID, domain.AuditActionRejected, userID, map[string]any{
			"reason": input.Reason,
		}, now))
		if err != nil {
			return fmt.Errorf("audit rejection: %w", err)
		}

		result.Draft = rejected
		result.Audit = audit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "draft rejected",
		slog.String("user_id", userID.String()),
		slog.String("draft_id", input.DraftID.String()),
	)

	return result, nil
}
