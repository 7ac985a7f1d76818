package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

const supersededReason = "superseded by regeneration"

// Save persists a generated batch of drafts for one inbox item. Everything
// happens in a single transaction: still-pending drafts from an earlier
// batch are rejected as superseded, the new drafts are inserted with one
// CREATED audit row each, and the preferred draft is auto-approved when the
// workspace policy allows it.
func (s *Service) Save(ctx context.Context, input SaveInput) ([]*domain.Draft, error) {
	userID, _, err := s.memberRole(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.inbox.GetByID(ctx, input.WorkspaceID, input.InboxItemID)
	if err != nil {
		return nil, fmt.Errorf("get inbox item: %w", err)
	}

	settings, err := s.approvalSettings(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	drafts, err := postProcess(input.WorkspaceID, item.ID, item.Platform, input.Drafts, now)
	if err != nil {
		return nil, err
	}

	saved := make([]*domain.Draft, 0, len(drafts))
	superseded := 0
	autoApproved := false

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stale, err := s.drafts.ListPendingByInboxItem(txCtx, input.WorkspaceID, item.ID)
		if err != nil {
			return fmt.Errorf("list pending drafts: %w", err)
		}

		for _, old := range stale {
			if _, err := s.drafts.Review(txCtx, old.ID, domain.DraftStatusRejected, userID, now); err != nil {
				return fmt.Errorf("supersede draft: %w", err)
			}
			rec := newAuditRecord(txCtx, old.ID, domain.AuditActionRejected, userID, map[string]any{
				"reason": supersededReason,
			}, now)
			if _, err := s.audit.Create(txCtx, rec); err != nil {
				return fmt.Errorf("audit superseded draft: %w", err)
			}
			superseded++
		}

		for _, d := range drafts {
			created, err := s.drafts.Create(txCtx, d)
			if err != nil {
				return fmt.Errorf("create draft: %w", err)
			}

			rec := newAuditRecord(txCtx, created.ID, domain.AuditActionCreated, userID, map[string]any{
				"confidenceScore": created.ConfidenceScore,
				"isPreferred":     created.IsPreferred,
			}, now)
			if _, err := s.audit.Create(txCtx, rec); err != nil {
				return fmt.Errorf("audit created draft: %w", err)
			}

			if created.IsPreferred && autoApprovable(settings, created.ConfidenceScore) {
				approved, err := s.drafts.Review(txCtx, created.ID, domain.DraftStatusApproved, userID, now)
				if err != nil {
					return fmt.Errorf("auto-approve draft: %w", err)
				}
				rec := newAuditRecord(txCtx, created.ID, domain.AuditActionApproved, userID, map[string]any{
					"autoApproved":    true,
					"confidenceScore": created.ConfidenceScore,
				}, now)
				if _, err := s.audit.Create(txCtx, rec); err != nil {
					return fmt.Errorf("audit auto-approval: %w", err)
				}
				created = approved
				autoApproved = true
			}

			saved = append(saved, created)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "drafts saved",
		slog.String("user_id", userID.String()),
		slog.String("workspace_id", input.WorkspaceID.String()),
		slog.String("inbox_item_id", item.ID.String()),
		slog.Int("saved", len(saved)),
		slog.Int("superseded", superseded),
		slog.Bool("auto_approved", autoApproved),
	)

	return saved, nil
}

// autoApprovable reports whether the workspace policy lets a preferred
// draft skip human review. With approval not required at all, every
// preferred draft qualifies; otherwise only a high-confidence one does,
// and only when the workspace opted in.
func autoApprovable(settings domain.ApprovalSettings, confidence float64) bool {
	if !settings.RequireApproval {
		return true
	}
	return settings.AutoApproveHighConfidence && confidence >= settings.AutoApproveThreshold
}
