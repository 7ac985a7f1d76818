package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

// GetApproval returns the workspace's effective approval policy: stored
// overrides merged field by field onto the defaults. A workspace that
// never stored overrides gets the full default record.
func (s *Service) GetApproval(ctx context.Context, workspaceID uuid.UUID) (domain.ApprovalSettings, error) {
	if _, _, err := s.memberRole(ctx, workspaceID); err != nil {
		return domain.ApprovalSettings{}, err
	}

	ws, err := s.workspace.GetByID(ctx, workspaceID)
	if err != nil {
		return domain.ApprovalSettings{}, fmt.Errorf("get workspace: %w", err)
	}

	raw, _ := ws.Settings[domain.SettingsKeyApproval].(map[string]any)
	return domain.ResolveApprovalSettings(raw), nil
}

// UpdateApprovalInput holds a partial approval-settings update. Nil patch
// fields leave the current effective value untouched.
type UpdateApprovalInput struct {
	WorkspaceID uuid.UUID
	Patch       domain.ApprovalSettingsPatch
}

// Validate checks the identifying fields. The resulting settings record is
// validated separately after the patch is applied.
func (i UpdateApprovalInput) Validate() error {
	if i.WorkspaceID == uuid.Nil {
		return domain.NewValidationError("workspace_id", "required")
	}
	return nil
}

// UpdateApproval applies a partial update to the workspace's approval
// policy. Only owners and admins may change it. The patch is applied to
// the current effective settings under a row lock, so concurrent updates
// serialize instead of clobbering each other. Other keys in the workspace
// settings blob are preserved.
func (s *Service) UpdateApproval(ctx context.Context, input UpdateApprovalInput) (domain.ApprovalSettings, error) {
	userID, role, err := s.memberRole(ctx, input.WorkspaceID)
	if err != nil {
		return domain.ApprovalSettings{}, err
	}
	if role == domain.WorkspaceRoleMember {
		return domain.ApprovalSettings{}, fmt.Errorf("role %s cannot change approval settings: %w", role, domain.ErrForbidden)
	}

	if err := input.Validate(); err != nil {
		return domain.ApprovalSettings{}, err
	}

	var effective domain.ApprovalSettings

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		blob, err := s.workspace.GetSettingsForUpdate(txCtx, input.WorkspaceID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}
		if blob == nil {
			blob = map[string]any{}
		}

		raw, _ := blob[domain.SettingsKeyApproval].(map[string]any)
		effective = domain.ResolveApprovalSettings(raw).Apply(input.Patch)

		if err := effective.Validate(); err != nil {
			return err
		}

		blob[domain.SettingsKeyApproval] = effective.ToMap()

		if err := s.workspace.SaveSettings(txCtx, input.WorkspaceID, blob, time.Now().UTC()); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.ApprovalSettings{}, err
	}

	s.log.InfoContext(ctx, "approval settings updated",
		slog.String("user_id", userID.String()),
		slog.String("workspace_id", input.WorkspaceID.String()),
		slog.Bool("require_approval", effective.RequireApproval),
		slog.Bool("auto_approve_high_confidence", effective.AutoApproveHighConfidence),
	)

	return effective, nil
}
