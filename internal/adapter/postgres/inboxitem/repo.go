// Package inboxitem implements the InboxItem repository using PostgreSQL.
package inboxitem

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/replyflow/replyflow-backend/internal/adapter/postgres"
	"github.com/replyflow/replyflow-backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var itemColumns = []string{
	"id", "workspace_id", "platform", "sender_name", "text", "status",
	"received_at", "replied_at", "created_at",
}

// Repo provides inbox-item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new inbox-item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns an inbox item scoped to a workspace.
// Returns domain.ErrNotFound if the item does not exist or belongs to
// another workspace.
func (r *Repo) GetByID(ctx context.Context, workspaceID, itemID uuid.UUID) (*domain.InboxItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(itemColumns...).
		From("inbox_items").
		Where(sq.Eq{"id": itemID, "workspace_id": workspaceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inbox item select: %w", err)
	}

	item, err := scanItem(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "inbox_item", itemID)
	}

	return item, nil
}

// MarkReplied flips the item to REPLIED and records the reply time.
// Called inside the markSent transaction so the draft and its inbox item
// change state together.
func (r *Repo) MarkReplied(ctx context.Context, itemID uuid.UUID, now time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Update("inbox_items").
		Set("status", domain.InboxItemStatusReplied).
		Set("replied_at", now).
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build inbox item update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "inbox_item", itemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inbox_item %s: %w", itemID, domain.ErrNotFound)
	}

	return nil
}

func scanItem(row pgx.Row) (*domain.InboxItem, error) {
	var (
		item      domain.InboxItem
		platform  string
		status    string
		repliedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&item.ID, &item.WorkspaceID, &platform, &item.SenderName, &item.Text,
		&status, &item.ReceivedAt, &repliedAt, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Platform = domain.Platform(platform)
	item.Status = domain.InboxItemStatus(status)
	if repliedAt.Valid {
		t := repliedAt.Time
		item.RepliedAt = &t
	}

	return &item, nil
}
