// Package audit implements the draft audit-log repository using PostgreSQL.
// The log is append-only: this package exposes no update or delete
// operations, and none exist anywhere else in the codebase.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/replyflow/replyflow-backend/internal/adapter/postgres"
	"github.com/replyflow/replyflow-backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DefaultListLimit caps audit trail reads when the caller does not specify
// a limit.
const DefaultListLimit = 50

// Repo provides audit-log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create appends an audit record and returns the persisted row with the
// performer's display identity resolved from the users table.
func (r *Repo) Create(ctx context.Context, rec *domain.AuditLogRecord) (*domain.AuditLogRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	details, err := json.Marshal(rec.Details)
	if err != nil {
		return nil, fmt.Errorf("audit_log marshal details: %w", err)
	}

	sql, args, err := qb.Insert("draft_audit_logs").
		Columns("id", "draft_id", "action", "performed_by_id", "details",
			"ip_address", "user_agent", "created_at").
		Values(rec.ID, rec.DraftID, rec.Action, rec.PerformedByID, details,
			rec.IPAddress, rec.UserAgent, rec.CreatedAt).
		Suffix("RETURNING id, draft_id, action, performed_by_id, details, ip_address, user_agent, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit insert: %w", err)
	}

	created, err := scanRecord(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "audit_log", rec.ID)
	}

	if err := r.resolvePerformer(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}

// ListByDraft returns a draft's audit trail ordered newest-first, with each
// record's performer identity resolved. limit <= 0 falls back to
// DefaultListLimit.
func (r *Repo) ListByDraft(ctx context.Context, draftID uuid.UUID, limit int) ([]*domain.AuditLogRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if limit <= 0 {
		limit = DefaultListLimit
	}

	sql, args, err := qb.Select(
		"l.id", "l.draft_id", "l.action", "l.performed_by_id", "l.details",
		"l.ip_address", "l.user_agent", "l.created_at",
		"u.name", "u.email",
	).
		From("draft_audit_logs l").
		LeftJoin("users u ON u.id = l.performed_by_id").
		Where(sq.Eq{"l.draft_id": draftID}).
		OrderBy("l.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit list: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit_logs: %w", err)
	}
	defer rows.Close()

	var records []*domain.AuditLogRecord
	for rows.Next() {
		rec, err := scanRecordWithPerformer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit_log: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit_logs: %w", err)
	}

	return records, nil
}

// resolvePerformer fills rec.Performer from the users table. A missing user
// row (deleted account) leaves Performer nil rather than failing the append.
func (r *Repo) resolvePerformer(ctx context.Context, rec *domain.AuditLogRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select("name", "email").
		From("users").
		Where(sq.Eq{"id": rec.PerformedByID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build performer select: %w", err)
	}

	var name, email string
	if err := q.QueryRow(ctx, sql, args...).Scan(&name, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("resolve performer %s: %w", rec.PerformedByID, err)
	}

	rec.Performer = &domain.UserIdentity{ID: rec.PerformedByID, Name: name, Email: email}
	return nil
}

func scanRecord(row pgx.Row) (*domain.AuditLogRecord, error) {
	var (
		rec       domain.AuditLogRecord
		action    string
		details   []byte
		ipAddress pgtype.Text
		userAgent pgtype.Text
	)

	err := row.Scan(
		&rec.ID, &rec.DraftID, &action, &rec.PerformedByID, &details,
		&ipAddress, &userAgent, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fillRecord(&rec, action, details, ipAddress, userAgent); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecordWithPerformer(row pgx.Row) (*domain.AuditLogRecord, error) {
	var (
		rec       domain.AuditLogRecord
		action    string
		details   []byte
		ipAddress pgtype.Text
		userAgent pgtype.Text
		name      pgtype.Text
		email     pgtype.Text
	)

	err := row.Scan(
		&rec.ID, &rec.DraftID, &action, &rec.PerformedByID, &details,
		&ipAddress, &userAgent, &rec.CreatedAt,
		&name, &email,
	)
	if err != nil {
		return nil, err
	}

	if err := fillRecord(&rec, action, details, ipAddress, userAgent); err != nil {
		return nil, err
	}
	if name.Valid {
		rec.Performer = &domain.UserIdentity{
			ID:    rec.PerformedByID,
			Name:  name.String,
			Email: email.String,
		}
	}

	return &rec, nil
}

func fillRecord(rec *domain.AuditLogRecord, action string, details []byte, ipAddress, userAgent pgtype.Text) error {
	rec.Action = domain.AuditAction(action)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			return fmt.Errorf("audit_log %s unmarshal details: %w", rec.ID, err)
		}
	}
	if ipAddress.Valid {
		s := ipAddress.String
		rec.IPAddress = &s
	}
	if userAgent.Valid {
		s := userAgent.String
		rec.UserAgent = &s
	}
	return nil
}
