package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

// MarkSent records that an approved draft's reply went out. The draft
// flips to SENT, the linked inbox item flips to REPLIED, and the SENT
// audit row is written, all in one transaction. Only an APPROVED draft
// can be sent, and only by a caller in the workspace's approver list.
func (s *Service) MarkSent(ctx context.Context, input MarkSentInput) (*ReviewResult, error) {
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
		return nil, fmt.Errorf("role %s cannot mark drafts sent: %w", role, domain.ErrForbidden)
	}

	now := time.Now().UTC()
	result := &ReviewResult{}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		draft, err := s.drafts.GetByIDForUpdate(txCtx, input.WorkspaceID, input.DraftID)
		if err != nil {
			return fmt.Errorf("get draft: %w", err)
		}

		if draft.Status != domain.DraftStatusApproved {
			return &domain.InvalidTransitionError{
				DraftID:  draft.ID,
				Current:  draft.Status,
				Action:   domain.AuditActionSent,
				Required: domain.DraftStatusApproved,
			}
		}

		sent, err := s.drafts.MarkSent(txCtx, draft.ID, now)
		if err != nil {
			return fmt.Errorf("mark draft sent: %w", err)
		}

		if err := s.inbox.MarkReplied(txCtx, draft.InboxItemID, now); err != nil {
			return fmt.Errorf("mark inbox item replied: %w", err)
		}

		audit, err := s.audit.Create(txCtx, newAuditRecord(txCtx, draft.ID, domain.AuditActionSent, userID, map[string]any{}, now))
		if err != nil {
			return fmt.Errorf("audit send: %w", err)
		}

		result.Draft = sent
		result.Audit = audit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "draft sent",
		slog.String("user_id", userID.String()),
		slog.String("draft_id", input.DraftID.String()),
	)

	return result, nil
}

// MarkFailed records a failed send attempt with its error message. Any
// non-terminal draft can fail; a draft that is already REJECTED, SENT, or
// FAILED cannot. Like the other review-side transitions, the caller must
// be in the workspace's approver list.
func (s *Service) MarkFailed(ctx context.Context, input MarkFailedInput) (*ReviewResult, error) {
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
		return nil, fmt.Errorf("role %s cannot mark drafts failed: %w", role, domain.ErrForbidden)
	}

	now := time.Now().UTC()
	result := &ReviewResult{}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		draft, err := s.drafts.GetByIDForUpdate(txCtx, input.WorkspaceID, input.DraftID)
		if err != nil {
			return fmt.Errorf("get draft: %w", err)
		}

		if draft.Status.IsTerminal() {
			return domain.NewInvalidTransitionError(draft.ID, draft.Status, domain.AuditActionSendFailed)
		}

		failed, err := s.drafts.MarkFailed(txCtx, draft.ID, input.ErrorMessage, now)
		if err != nil {
			return fmt.Errorf("mark draft failed: %w", err)
		}

		audit, err := s.audit.Create(txCtx, newAuditRecord(txCtx, draft.ID, domain.AuditActionSendFailed, userID, map[string]any{
			"errorMessage": input.ErrorMessage,
		}, now))
		if err != nil {
			return fmt.Errorf("audit send failure: %w", err)
		}

		result.Draft = failed
		result.Audit = audit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WarnContext(ctx, "draft send failed",
		slog.String("user_id", userID.String()),
		slog.String("draft_id", input.DraftID.String()),
		slog.String("error_message", input.ErrorMessage),
	)

	return result, nil
}
