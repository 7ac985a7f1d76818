package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/editclassify"
)

// Edit replaces the content of a pending draft. The previous content, the
// Levenshtein distance, and the classified edit type are recorded in the
// edit history; the draft row, the history row, and the EDITED audit row
// are written in one transaction.
//
// Only PENDING drafts are editable. Approve first, and the content is
// frozen.
func (s *Service) Edit(ctx context.Context, input EditInput) (*EditResult, error) {
	userID, _, err := s.memberRole(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &EditResult{}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		draft, err := s.drafts.GetByIDForUpdate(txCtx, input.WorkspaceID, input.DraftID)
		if err != nil {
			return fmt.Errorf("get draft: %w", err)
		}

		if draft.Status != domain.DraftStatusPending {
			return domain.NewInvalidTransitionError(draft.ID, draft.Status, domain.AuditActionEdited)
		}

		distance := editclassify.Distance(draft.Content, input.Content)
		editType := editclassify.Classify(draft.Content, input.Content, distance)

		edit, err := s.edits.Create(txCtx, &domain.EditHistoryRecord{
			ID:              uuid.New(),
			DraftID:         draft.ID,
			OriginalContent: draft.Content,
			EditedContent:   input.Content,
			EditType:        editType,
			EditDistance:    distance,
			ChangesSummary:  input.ChangesSummary,
			EditedByID:      userID,
			CreatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("create edit record: %w", err)
		}

		updated, err := s.drafts.UpdateContent(txCtx, draft.ID, input.Content, editedMetadata(draft.Metadata, input.Content), now)
		if err != nil {
			return fmt.Errorf("update draft content: %w", err)
		}

		details := map[string]any{
			"editType":     editType.String(),
			"editDistance": distance,
		}
		if input.ChangesSummary != nil {
			details["changesSummary"] = *input.ChangesSummary
		}

		audit, err := s.audit.Create(txCtx, newAuditRecord(txCtx, draft.ID, domain.AuditActionEdited, userID, details, now))
		if err != nil {
			return fmt.Errorf("audit edit: %w", err)
		}

		result.Draft = updated
		result.Edit = edit
		result.Audit = audit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "draft edited",
		slog.String("user_id", userID.String()),
		slog.String("draft_id", input.DraftID.String()),
		slog.String("edit_type", result.Edit.EditType.String()),
		slog.Int("edit_distance", result.Edit.EditDistance),
	)

	return result, nil
}
