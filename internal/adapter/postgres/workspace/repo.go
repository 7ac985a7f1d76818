// Package workspace implements the Workspace repository using PostgreSQL.
// Besides basic reads it owns the settings JSONB blob and the membership
// role lookup.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/replyflow/replyflow-backend/internal/adapter/postgres"
	"github.com/replyflow/replyflow-backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides workspace persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new workspace repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a workspace by primary key.
func (r *Repo) GetByID(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("id", "name", "settings", "created_at", "updated_at").
		From("workspaces").
		Where(sq.Eq{"id": workspaceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build workspace select: %w", err)
	}

	ws, err := scanWorkspace(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "workspace", workspaceID)
	}

	return ws, nil
}

// GetSettingsForUpdate returns the workspace's raw settings blob under a
// row lock. Must be called inside a transaction; the settings update path
// uses it so concurrent updates to different sub-keys cannot drop each
// other's writes.
func (r *Repo) GetSettingsForUpdate(ctx context.Context, workspaceID uuid.UUID) (map[string]any, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("settings").
		From("workspaces").
		Where(sq.Eq{"id": workspaceID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build settings select: %w", err)
	}

	var raw []byte
	if err := q.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return nil, postgres.MapError(err, "workspace", workspaceID)
	}

	return decodeSettings(workspaceID, raw)
}

// SaveSettings replaces the workspace's settings blob.
func (r *Repo) SaveSettings(ctx context.Context, workspaceID uuid.UUID, settings map[string]any, now time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("workspace %s marshal settings: %w", workspaceID, err)
	}

	sql, args, err := qb.Update("workspaces").
		Set("settings", blob).
		Set("updated_at", now).
		Where(sq.Eq{"id": workspaceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build settings update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "workspace", workspaceID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", workspaceID, domain.ErrNotFound)
	}

	return nil
}

// GetMemberRole returns the user's role inside the workspace.
// Returns domain.ErrForbidden when the user is not a member.
func (r *Repo) GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("role").
		From("workspace_members").
		Where(sq.Eq{"workspace_id": workspaceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build member role select: %w", err)
	}

	var role string
	if err := q.QueryRow(ctx, sql, args...).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("workspace %s user %s: %w", workspaceID, userID, domain.ErrForbidden)
		}
		return "", postgres.MapError(err, "workspace_member", userID)
	}

	return domain.WorkspaceRole(role), nil
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var (
		ws  domain.Workspace
		raw []byte
	)

	err := row.Scan(&ws.ID, &ws.Name, &raw, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, err
	}

	settings, err := decodeSettings(ws.ID, raw)
	if err != nil {
		return nil, err
	}
	ws.Settings = settings

	return &ws, nil
}

// decodeSettings unmarshals the JSONB blob; NULL and empty blobs yield nil.
func decodeSettings(workspaceID uuid.UUID, raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	settings := make(map[string]any)
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("workspace %s unmarshal settings: %w", workspaceID, err)
	}
	return settings, nil
}
