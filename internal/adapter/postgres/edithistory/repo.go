// Package edithistory implements the EditHistory repository using
// PostgreSQL. One row is appended per human content edit; the rows double
// as the raw material for the ML-feedback aggregation.
package edithistory

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/replyflow/replyflow-backend/internal/adapter/postgres"
	"github.com/replyflow/replyflow-backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var editColumns = []string{
	"id", "draft_id", "original_content", "edited_content", "edit_type",
	"edit_distance", "changes_summary", "edited_by_id", "created_at",
}

// Repo provides edit-history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new edit-history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create appends an edit-history record and returns the persisted row.
func (r *Repo) Create(ctx context.Context, rec *domain.EditHistoryRecord) (*domain.EditHistoryRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Insert("draft_edit_history").
		Columns(editColumns...).
		Values(rec.ID, rec.DraftID, rec.OriginalContent, rec.EditedContent,
			rec.EditType, rec.EditDistance, rec.ChangesSummary, rec.EditedByID,
			rec.CreatedAt).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edit history insert: %w", err)
	}

	created, err := scanRecord(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "edit_history", rec.ID)
	}

	return created, nil
}

// ListByDraft returns a draft's edits, newest first.
func (r *Repo) ListByDraft(ctx context.Context, draftID uuid.UUID) ([]*domain.EditHistoryRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(editColumns...).
		From("draft_edit_history").
		Where(sq.Eq{"draft_id": draftID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edit history list: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list edit history: %w", err)
	}
	defer rows.Close()

	var records []*domain.EditHistoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan edit history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edit history: %w", err)
	}

	return records, nil
}

// Stats returns how many distinct drafts in the window have at least one
// edit, and the total number of edits. The window filters on the draft's
// creation time so the numbers line up with the draft counts.
func (r *Repo) Stats(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) (draftsWithEdits, totalEdits int, err error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := qb.Select(
		"COUNT(DISTINCT h.draft_id)",
		"COUNT(*)",
	).
		From("draft_edit_history h").
		Join("drafts d ON d.id = h.draft_id").
		Where(sq.Eq{"d.workspace_id": workspaceID})
	builder = applyWindow(builder, "d.created_at", window)

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build edit stats: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&draftsWithEdits, &totalEdits); err != nil {
		return 0, 0, fmt.Errorf("edit stats: %w", err)
	}

	return draftsWithEdits, totalEdits, nil
}

// GroupByType returns per-EditType counts and mean edit distances for a
// workspace/window, largest group first.
func (r *Repo) GroupByType(ctx context.Context, workspaceID uuid.UUID, window domain.MetricsWindow) ([]domain.EditTypeAggregate, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := qb.Select(
		"h.edit_type",
		"COUNT(*)",
		"AVG(h.edit_distance)",
	).
		From("draft_edit_history h").
		Join("drafts d ON d.id = h.draft_id").
		Where(sq.Eq{"d.workspace_id": workspaceID}).
		GroupBy("h.edit_type").
		OrderBy("COUNT(*) DESC")
	builder = applyWindow(builder, "d.created_at", window)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edit type groups: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("group edits by type: %w", err)
	}
	defer rows.Close()

	var aggs []domain.EditTypeAggregate
	for rows.Next() {
		var (
			agg      domain.EditTypeAggregate
			editType string
		)
		if err := rows.Scan(&editType, &agg.Count, &agg.AvgEditDistance); err != nil {
			return nil, fmt.Errorf("scan edit type group: %w", err)
		}
		agg.EditType = domain.EditType(editType)
		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edit type groups: %w", err)
	}

	return aggs, nil
}

func applyWindow(builder sq.SelectBuilder, column string, window domain.MetricsWindow) sq.SelectBuilder {
	if window.Start != nil {
		builder = builder.Where(sq.GtOrEq{column: *window.Start})
	}
	if window.End != nil {
		builder = builder.Where(sq.Lt{column: *window.End})
	}
	return builder
}

func columnList() string {
	cols := ""
	for i, c := range editColumns {
		if i > 0 {
			cols += ", "
		}
		cols += c
	}
	return cols
}

func scanRecord(row pgx.Row) (*domain.EditHistoryRecord, error) {
	var (
		rec      domain.EditHistoryRecord
		editType string
		summary  pgtype.Text
	)

	err := row.Scan(
		&rec.ID, &rec.DraftID, &rec.OriginalContent, &rec.EditedContent,
		&editType, &rec.EditDistance, &summary, &rec.EditedByID, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.EditType = domain.EditType(editType)
	if summary.Valid {
		s := summary.String
		rec.ChangesSummary = &s
	}

	return &rec, nil
}
