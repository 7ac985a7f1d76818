// Package drafts implements the reply-draft approval workflow: generating
// candidates, the PENDING/APPROVED/REJECTED/SENT/FAILED state machine, edit
// tracking, and the append-only audit trail.
package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/provider"
	"github.com/replyflow/replyflow-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type draftRepo interface {
	GetByID(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error)
	GetByIDForUpdate(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error)
	ListByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error)
	ListPendingByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error)
	Create(ctx context.Context, d *domain.Draft) (*domain.Draft, error)
	UpdateContent(ctx context.Context, draftID uuid.UUID, content string, metadata domain.DraftMetadata, now time.Time) (*domain.Draft, error)
	Review(ctx context.Context, draftID uuid.UUID, status domain.DraftStatus, reviewerID uuid.UUID, now time.Time) (*domain.Draft, error)
	MarkSent(ctx context.Context, draftID uuid.UUID, now time.Time) (*domain.Draft, error)
	MarkFailed(ctx context.Context, draftID uuid.UUID, errorMessage string, now time.Time) (*domain.Draft, error)
}

type editHistoryRepo interface {
	Create(ctx context.Context, rec *domain.EditHistoryRecord) (*domain.EditHistoryRecord, error)
	ListByDraft(ctx context.Context, draftID uuid.UUID) ([]*domain.EditHistoryRecord, error)
}

type auditRepo interface {
	Create(ctx context.Context, rec *domain.AuditLogRecord) (*domain.AuditLogRecord, error)
	ListByDraft(ctx context.Context, draftID uuid.UUID, limit int) ([]*domain.AuditLogRecord, error)
}

type inboxRepo interface {
	GetByID(ctx context.Context, workspaceID, itemID uuid.UUID) (*domain.InboxItem, error)
	MarkReplied(ctx context.Context, itemID uuid.UUID, now time.Time) error
}

type workspaceRepo interface {
	GetByID(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error)
	GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error)
}

type generator interface {
	Generate(ctx context.Context, req provider.GenerationRequest) (*provider.GenerationResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the draft workflow business logic.
type Service struct {
	drafts    draftRepo
	edits     editHistoryRepo
	audit     auditRepo
	inbox     inboxRepo
	workspace workspaceRepo
	gen       generator
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new drafts service.
func NewService(
	log *slog.Logger,
	drafts draftRepo,
	edits editHistoryRepo,
	audit auditRepo,
	inbox inboxRepo,
	workspace workspaceRepo,
	gen generator,
	tx txManager,
) *Service {
	return &Service{
		drafts:    drafts,
		edits:     edits,
		audit:     audit,
		inbox:     inbox,
		workspace: workspace,
		gen:       gen,
		tx:        tx,
		log:       log.With("service", "drafts"),
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

// approvalSettings loads the workspace and resolves its effective approval
// policy (stored overrides merged onto defaults).
func (s *Service) approvalSettings(ctx context.Context, workspaceID uuid.UUID) (domain.ApprovalSettings, error) {
	ws, err := s.workspace.GetByID(ctx, workspaceID)
	if err != nil {
		return domain.ApprovalSettings{}, fmt.Errorf("get workspace: %w", err)
	}

	raw, _ := ws.Settings[domain.SettingsKeyApproval].(map[string]any)
	return domain.ResolveApprovalSettings(raw), nil
}

// newAuditRecord builds an audit row for one action, attaching the caller's
// client info when the transport layer recorded it. The repository inserts
// created_at explicitly, so the timestamp must be set here.
func newAuditRecord(ctx context.Context, draftID uuid.UUID, action domain.AuditAction, performedBy uuid.UUID, details map[string]any, now time.Time) *domain.AuditLogRecord {
	rec := &domain.AuditLogRecord{
		ID:            uuid.New(),
		DraftID:       draftID,
		Action:        action,
		PerformedByID: performedBy,
		Details:       details,
		CreatedAt:     now,
	}

	info := ctxutil.ClientInfoFromCtx(ctx)
	if info.IPAddress != "" {
		ip := info.IPAddress
		rec.IPAddress = &ip
	}
	if info.UserAgent != "" {
		ua := info.UserAgent
		rec.UserAgent = &ua
	}

	return rec
}
