// Package draft implements the Draft repository using PostgreSQL.
// It provides lifecycle writes for reply drafts plus the count/aggregate
// reads the metrics layer needs.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/replyflow/replyflow-backend/internal/adapter/postgres"
	"github.com/replyflow/replyflow-backend/internal/domain"
)

// qb builds queries with PostgreSQL $n placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var draftColumns = []string{
	"id", "workspace_id", "inbox_item_id", "content", "confidence_score",
	"is_preferred", "reason", "status", "metadata", "reviewed_by_id",
	"reviewed_at", "sent_at", "error_message", "created_at", "updated_at",
}

// Repo provides draft persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new draft repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a draft by primary key scoped to a workspace.
// Returns domain.ErrNotFound if the draft does not exist or belongs to
// another workspace.
func (r *Repo) GetByID(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error) {
	return r.get(ctx, workspaceID, draftID, false)
}

// GetByIDForUpdate returns a draft by primary key and takes a row lock
// (SELECT ... FOR UPDATE). Must be called inside a transaction; racing
// reviewers serialize on the lock and the loser sees the winner's status.
func (r *Repo) GetByIDForUpdate(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error) {
	return r.get(ctx, workspaceID, draftID, true)
}

func (r *Repo) get(ctx context.Context, workspaceID, draftID uuid.UUID, forUpdate bool) (*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := qb.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"id": draftID, "workspace_id": workspaceID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft select: %w", err)
	}

	d, err := scanDraft(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "draft", draftID)
	}

	return d, nil
}

// ListByInboxItem returns all drafts generated for an inbox item, preferred
// first, then by confidence descending, then creation order.
func (r *Repo) ListByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"workspace_id": workspaceID, "inbox_item_id": inboxItemID}).
		OrderBy("is_preferred DESC", "confidence_score DESC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft list: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	return collectDrafts(rows)
}

// ListPendingByInboxItem returns the still-PENDING drafts for an inbox item.
// Used to supersede a stale batch when drafts are regenerated.
func (r *Repo) ListPendingByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{
			"workspace_id":  workspaceID,
			"inbox_item_id": inboxItemID,
			"status":        domain.DraftStatusPending,
		}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending draft list: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending drafts: %w", err)
	}
	defer rows.Close()

	return collectDrafts(rows)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new draft and returns the persisted domain.Draft.
func (r *Repo) Create(ctx context.Context, d *domain.Draft) (*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	metadata, err := json.Marshal(d.Metadata)
	if err != nil {
		return nil, fmt.Errorf("draft marshal metadata: %w", err)
	}

	sql, args, err := qb.Insert("drafts").
		Columns("id", "workspace_id", "inbox_item_id", "content", "confidence_score",
			"is_preferred", "reason", "status", "metadata", "created_at", "updated_at").
		Values(d.ID, d.WorkspaceID, d.InboxItemID, d.Content, d.ConfidenceScore,
			d.IsPreferred, d.Reason, d.Status, metadata, d.CreatedAt, d.UpdatedAt).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft insert: %w", err)
	}

	created, err := scanDraft(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "draft", d.ID)
	}

	return created, nil
}

// UpdateContent replaces the content of a draft along with its recomputed
// metadata. The status is untouched; the caller enforces the PENDING
// precondition before calling.
func (r *Repo) UpdateContent(ctx context.Context, draftID uuid.UUID, content string, metadata domain.DraftMetadata, now time.Time) (*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("draft marshal metadata: %w", err)
	}

	sql, args, err := qb.Update("drafts").
		Set("content", content).
		Set("metadata", metadataJSON).
		Set("updated_at", now).
		Where(sq.Eq{"id": draftID}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft content update: %w", err)
	}

	d, err := scanDraft(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "draft", draftID)
	}

	return d, nil
}

// Review sets the review outcome (APPROVED or REJECTED) together with the
// reviewer attribution.
func (r *Repo) Review(ctx context.Context, draftID uuid.UUID, status domain.DraftStatus, reviewerID uuid.UUID, now time.Time) (*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Update("drafts").
		Set("status", status).
		Set("reviewed_by_id", reviewerID).
		Set("reviewed_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"id": draftID}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft review update: %w", err)
	}

	d, err := scanDraft(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "draft", draftID)
	}

	return d, nil
}

// MarkSent flips an approved draft to SENT and records the send time.
func (r *Repo) MarkSent(ctx context.Context, draftID uuid.UUID, now time.Time) (*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Update("drafts").
		Set("status", domain.DraftStatusSent).
		Set("sent_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"id": draftID}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft sent update: %w", err)
	}

	d, err := scanDraft(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "draft", draftID)
	}

	return d, nil
}

// MarkFailed flips a draft to FAILED and records the error message.
func (r *Repo) MarkFailed(ctx context.Context, draftID uuid.UUID, errorMessage string, now time.Time) (*domain.Draft, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Update("drafts").
		Set("status", domain.DraftStatusFailed).
		Set("error_message", errorMessage).
		Set("updated_at", now).
		Where(sq.Eq{"id": draftID}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build draft failed update: %w", err)
	}

	d, err := scanDraft(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "draft", draftID)
	}

	return d, nil
}

// ---------------------------------------------------------------------------
// Aggregate reads (metrics)
// ---------------------------------------------------------------------------

// CountByStatus returns per-status draft counts for a workspace, optionally
// limited to drafts created inside the window.
func (r *Repo) CountByStatus(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (domain.DraftStatusCounts, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := qb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'PENDING')",
		"COUNT(*) FILTER (WHERE status = 'APPROVED')",
		"COUNT(*) FILTER (WHERE status = 'REJECTED')",
		"COUNT(*) FILTER (WHERE status = 'SENT')",
		"COUNT(*) FILTER (WHERE status = 'FAILED')",
		"COUNT(*) FILTER (WHERE reviewed_at IS NOT NULL)",
	).
		From("drafts").
		Where(sq.Eq{"workspace_id": workspaceID})
	builder = applyWindow(builder, "created_at", window)

	sql, args, err := builder.ToSql()
	if err != nil {
		return domain.DraftStatusCounts{}, fmt.Errorf("build draft status counts: %w", err)
	}

	var c domain.DraftStatusCounts
	err = q.QueryRow(ctx, sql, args...).Scan(
		&c.Total, &c.Pending, &c.Approved, &c.Rejected, &c.Sent, &c.Failed, &c.Reviewed,
	)
	if err != nil {
		return domain.DraftStatusCounts{}, fmt.Errorf("count drafts by status: %w", err)
	}

	return c, nil
}

// AverageApprovalMinutes returns the mean (reviewed_at - created_at) in
// minutes over reviewed drafts in the window. Returns 0 when none were
// reviewed.
func (r *Repo) AverageApprovalMinutes(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (float64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := qb.Select(
		"COALESCE(AVG(EXTRACT(EPOCH FROM (reviewed_at - created_at)) / 60), 0)",
	).
		From("drafts").
		Where(sq.Eq{"workspace_id": workspaceID}).
		Where("reviewed_at IS NOT NULL")
	builder = applyWindow(builder, "created_at", window)

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build avg approval time: %w", err)
	}

	var minutes float64
	if err := q.QueryRow(ctx, sql, args...).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("avg approval time: %w", err)
	}

	return minutes, nil
}

// applyWindow adds the half-open [start, end) filter on column.
func applyWindow(builder sq.SelectBuilder, column string, window domain.MetricsWindow) sq.SelectBuilder {
	if window.Start != nil {
		builder = builder.Where(sq.GtOrEq{column: *window.Start})
	}
	if window.End != nil {
		builder = builder.Where(sq.Lt{column: *window.End})
	}
	return builder
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func returningColumns() string {
	cols := ""
	for i, c := range draftColumns {
		if i > 0 {
			cols += ", "
		}
		cols += c
	}
	return cols
}

// scanDraft scans one draft row in draftColumns order.
func scanDraft(row pgx.Row) (*domain.Draft, error) {
	var (
		d          domain.Draft
		status     string
		metadata   []byte
		reviewedBy pgtype.UUID
		reviewedAt pgtype.Timestamptz
		sentAt     pgtype.Timestamptz
		errMsg     pgtype.Text
	)

	err := row.Scan(
		&d.ID, &d.WorkspaceID, &d.InboxItemID, &d.Content, &d.ConfidenceScore,
		&d.IsPreferred, &d.Reason, &status, &metadata, &reviewedBy,
		&reviewedAt, &sentAt, &errMsg, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Status = domain.DraftStatus(status)

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &d.Metadata); err != nil {
			return nil, fmt.Errorf("draft %s unmarshal metadata: %w", d.ID, err)
		}
	}
	if reviewedBy.Valid {
		id := uuid.UUID(reviewedBy.Bytes)
		d.ReviewedByID = &id
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		d.ReviewedAt = &t
	}
	if sentAt.Valid {
		t := sentAt.Time
		d.SentAt = &t
	}
	if errMsg.Valid {
		s := errMsg.String
		d.ErrorMessage = &s
	}

	return &d, nil
}

// collectDrafts drains rows into a slice.
func collectDrafts(rows pgx.Rows) ([]*domain.Draft, error) {
	var drafts []*domain.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drafts: %w", err)
	}
	return drafts, nil
}
