// Package settings manages per-workspace approval policy: stored partial
// overrides resolved against system defaults on every read.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/pkg/ctxutil"
)

type workspaceRepo interface {
	GetByID(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error)
	GetSettingsForUpdate(ctx context.Context, workspaceID uuid.UUID) (map[string]any, error)
	SaveSettings(ctx context.Context, workspaceID uuid.UUID, settings map[string]any, now time.Time) error
	GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements approval-settings reads and updates.
type Service struct {
	workspace workspaceRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new settings service.
func NewService(log *slog.Logger, workspace workspaceRepo, tx txManager) *Service {
	return &Service{
		workspace: workspace,
		tx:        tx,
		log:       log.With("service", "settings"),
	}
}

// memberRole authenticates the caller and confirms workspace membership.
func (s *Service) memberRole(ctx context.Context, workspaceID uuid.UUID) (uuid.UUID, domain.WorkspaceRole, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, "", domain.ErrUnauthorized
	}

	role, err := s.workspace.GetMemberRole(ctx, workspaceID, userID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("get member role: %w", err)
	}

	return userID, role, nil
}
