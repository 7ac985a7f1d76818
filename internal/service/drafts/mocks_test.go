package drafts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/provider"
)

var _ draftRepo = &draftRepoMock{}

type draftRepoMock struct {
	GetByIDFunc                func(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error)
	GetByIDForUpdateFunc       func(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error)
	ListByInboxItemFunc        func(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error)
	ListPendingByInboxItemFunc func(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error)
	CreateFunc                 func(ctx context.Context, d *domain.Draft) (*domain.Draft, error)
	UpdateContentFunc          func(ctx context.Context, draftID uuid.UUID, content string, metadata domain.DraftMetadata, now time.Time) (*domain.Draft, error)
	ReviewFunc                 func(ctx context.Context, draftID uuid.UUID, status domain.DraftStatus, reviewerID uuid.UUID, now time.Time) (*domain.Draft, error)
	MarkSentFunc               func(ctx context.Context, draftID uuid.UUID, now time.Time) (*domain.Draft, error)
	MarkFailedFunc             func(ctx context.Context, draftID uuid.UUID, errorMessage string, now time.Time) (*domain.Draft, error)

	calls struct {
		Create []struct {
			Draft *domain.Draft
		}
		Review []struct {
			DraftID    uuid.UUID
			Status     domain.DraftStatus
			ReviewerID uuid.UUID
		}
		UpdateContent []struct {
			DraftID  uuid.UUID
			Content  string
			Metadata domain.DraftMetadata
		}
		MarkSent []struct {
			DraftID uuid.UUID
		}
		MarkFailed []struct {
			DraftID      uuid.UUID
			ErrorMessage string
		}
	}
	mu sync.Mutex
}

func (mock *draftRepoMock) GetByID(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error) {
	if mock.GetByIDFunc == nil {
		panic("draftRepoMock.GetByIDFunc: method is nil but draftRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, workspaceID, draftID)
}

func (mock *draftRepoMock) GetByIDForUpdate(ctx context.Context, workspaceID, draftID uuid.UUID) (*domain.Draft, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("draftRepoMock.GetByIDForUpdateFunc: method is nil but draftRepo.GetByIDForUpdate was just called")
	}
	return mock.GetByIDForUpdateFunc(ctx, workspaceID, draftID)
}

func (mock *draftRepoMock) ListByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
	if mock.ListByInboxItemFunc == nil {
		panic("draftRepoMock.ListByInboxItemFunc: method is nil but draftRepo.ListByInboxItem was just called")
	}
	return mock.ListByInboxItemFunc(ctx, workspaceID, inboxItemID)
}

func (mock *draftRepoMock) ListPendingByInboxItem(ctx context.Context, workspaceID, inboxItemID uuid.UUID) ([]*domain.Draft, error) {
	if mock.ListPendingByInboxItemFunc == nil {
		panic("draftRepoMock.ListPendingByInboxItemFunc: method is nil but draftRepo.ListPendingByInboxItem was just called")
	}
	return mock.ListPendingByInboxItemFunc(ctx, workspaceID, inboxItemID)
}

func (mock *draftRepoMock) Create(ctx context.Context, d *domain.Draft) (*domain.Draft, error) {
	if mock.CreateFunc == nil {
		panic("draftRepoMock.CreateFunc: method is nil but draftRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Draft *domain.Draft
	}{Draft: d})
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *draftRepoMock) CreateCalls() []struct {
	Draft *domain.Draft
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.Create
}

func (mock *draftRepoMock) UpdateContent(ctx context.Context, draftID uuid.UUID, content string, metadata domain.DraftMetadata, now time.Time) (*domain.Draft, error) {
	if mock.UpdateContentFunc == nil {
		panic("draftRepoMock.UpdateContentFunc: method is nil but draftRepo.UpdateContent was just called")
	}
	mock.mu.Lock()
	mock.calls.UpdateContent = append(mock.calls.UpdateContent, struct {
		DraftID  uuid.UUID
		Content  string
		Metadata domain.DraftMetadata
	}{DraftID: draftID, Content: content, Metadata: metadata})
	mock.mu.Unlock()
	return mock.UpdateContentFunc(ctx, draftID, content, metadata, now)
}

func (mock *draftRepoMock) UpdateContentCalls() []struct {
	DraftID  uuid.UUID
	Content  string
	Metadata domain.DraftMetadata
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.UpdateContent
}

func (mock *draftRepoMock) Review(ctx context.Context, draftID uuid.UUID, status domain.DraftStatus, reviewerID uuid.UUID, now time.Time) (*domain.Draft, error) {
	if mock.ReviewFunc == nil {
		panic("draftRepoMock.ReviewFunc: method is nil but draftRepo.Review was just called")
	}
	mock.mu.Lock()
	mock.calls.Review = append(mock.calls.Review, struct {
		DraftID    uuid.UUID
		Status     domain.DraftStatus
		ReviewerID uuid.UUID
	}{DraftID: draftID, Status: status, ReviewerID: reviewerID})
	mock.mu.Unlock()
	return mock.ReviewFunc(ctx, draftID, status, reviewerID, now)
}

func (mock *draftRepoMock) ReviewCalls() []struct {
	DraftID    uuid.UUID
	Status     domain.DraftStatus
	ReviewerID uuid.UUID
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.Review
}

func (mock *draftRepoMock) MarkSent(ctx context.Context, draftID uuid.UUID, now time.Time) (*domain.Draft, error) {
	if mock.MarkSentFunc == nil {
		panic("draftRepoMock.MarkSentFunc: method is nil but draftRepo.MarkSent was just called")
	}
	mock.mu.Lock()
	mock.calls.MarkSent = append(mock.calls.MarkSent, struct {
		DraftID uuid.UUID
	}{DraftID: draftID})
	mock.mu.Unlock()
	return mock.MarkSentFunc(ctx, draftID, now)
}

func (mock *draftRepoMock) MarkSentCalls() []struct {
	DraftID uuid.UUID
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.MarkSent
}

func (mock *draftRepoMock) MarkFailed(ctx context.Context, draftID uuid.UUID, errorMessage string, now time.Time) (*domain.Draft, error) {
	if mock.MarkFailedFunc == nil {
		panic("draftRepoMock.MarkFailedFunc: method is nil but draftRepo.MarkFailed was just called")
	}
	mock.mu.Lock()
	mock.calls.MarkFailed = append(mock.calls.MarkFailed, struct {
		DraftID      uuid.UUID
		ErrorMessage string
	}{DraftID: draftID, ErrorMessage: errorMessage})
	mock.mu.Unlock()
	return mock.MarkFailedFunc(ctx, draftID, errorMessage, now)
}

func (mock *draftRepoMock) MarkFailedCalls() []struct {
	DraftID      uuid.UUID
	ErrorMessage string
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.MarkFailed
}

var _ editHistoryRepo = &editHistoryRepoMock{}

type editHistoryRepoMock struct {
	CreateFunc      func(ctx context.Context, rec *domain.EditHistoryRecord) (*domain.EditHistoryRecord, error)
	ListByDraftFunc func(ctx context.Context, draftID uuid.UUID) ([]*domain.EditHistoryRecord, error)

	calls struct {
		Create []struct {
			Record *domain.EditHistoryRecord
		}
	}
	mu sync.Mutex
}

func (mock *editHistoryRepoMock) Create(ctx context.Context, rec *domain.EditHistoryRecord) (*domain.EditHistoryRecord, error) {
	if mock.CreateFunc == nil {
		panic("editHistoryRepoMock.CreateFunc: method is nil but editHistoryRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Record *domain.EditHistoryRecord
	}{Record: rec})
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *editHistoryRepoMock) CreateCalls() []struct {
	Record *domain.EditHistoryRecord
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.Create
}

func (mock *editHistoryRepoMock) ListByDraft(ctx context.Context, draftID uuid.UUID) ([]*domain.EditHistoryRecord, error) {
	if mock.ListByDraftFunc == nil {
		panic("editHistoryRepoMock.ListByDraftFunc: method is nil but editHistoryRepo.ListByDraft was just called")
	}
	return mock.ListByDraftFunc(ctx, draftID)
}

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	CreateFunc      func(ctx context.Context, rec *domain.AuditLogRecord) (*domain.AuditLogRecord, error)
	ListByDraftFunc func(ctx context.Context, draftID uuid.UUID, limit int) ([]*domain.AuditLogRecord, error)

	calls struct {
		Create []struct {
			Record *domain.AuditLogRecord
		}
	}
	mu sync.Mutex
}

func (mock *auditRepoMock) Create(ctx context.Context, rec *domain.AuditLogRecord) (*domain.AuditLogRecord, error) {
	if mock.CreateFunc == nil {
		panic("auditRepoMock.CreateFunc: method is nil but auditRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Record *domain.AuditLogRecord
	}{Record: rec})
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *auditRepoMock) CreateCalls() []struct {
	Record *domain.AuditLogRecord
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.Create
}

func (mock *auditRepoMock) ListByDraft(ctx context.Context, draftID uuid.UUID, limit int) ([]*domain.AuditLogRecord, error) {
	if mock.ListByDraftFunc == nil {
		panic("auditRepoMock.ListByDraftFunc: method is nil but auditRepo.ListByDraft was just called")
	}
	return mock.ListByDraftFunc(ctx, draftID, limit)
}

var _ inboxRepo = &inboxRepoMock{}

type inboxRepoMock struct {
	GetByIDFunc     func(ctx context.Context, workspaceID, itemID uuid.UUID) (*domain.InboxItem, error)
	MarkRepliedFunc func(ctx context.Context, itemID uuid.UUID, now time.Time) error

	calls struct {
		MarkReplied []struct {
			ItemID uuid.UUID
		}
	}
	mu sync.Mutex
}

func (mock *inboxRepoMock) GetByID(ctx context.Context, workspaceID, itemID uuid.UUID) (*domain.InboxItem, error) {
	if mock.GetByIDFunc == nil {
		panic("inboxRepoMock.GetByIDFunc: method is nil but inboxRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, workspaceID, itemID)
}

func (mock *inboxRepoMock) MarkReplied(ctx context.Context, itemID uuid.UUID, now time.Time) error {
	if mock.MarkRepliedFunc == nil {
		panic("inboxRepoMock.MarkRepliedFunc: method is nil but inboxRepo.MarkReplied was just called")
	}
	mock.mu.Lock()
	mock.calls.MarkReplied = append(mock.calls.MarkReplied, struct {
		ItemID uuid.UUID
	}{ItemID: itemID})
	mock.mu.Unlock()
	return mock.MarkRepliedFunc(ctx, itemID, now)
}

func (mock *inboxRepoMock) MarkRepliedCalls() []struct {
	ItemID uuid.UUID
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.MarkReplied
}

var _ workspaceRepo = &workspaceRepoMock{}

type workspaceRepoMock struct {
	GetByIDFunc       func(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error)
	GetMemberRoleFunc func(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error)
}

func (mock *workspaceRepoMock) GetByID(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error) {
	if mock.GetByIDFunc == nil {
		panic("workspaceRepoMock.GetByIDFunc: method is nil but workspaceRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, workspaceID)
}

func (mock *workspaceRepoMock) GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (domain.WorkspaceRole, error) {
	if mock.GetMemberRoleFunc == nil {
		panic("workspaceRepoMock.GetMemberRoleFunc: method is nil but workspaceRepo.GetMemberRole was just called")
	}
	return mock.GetMemberRoleFunc(ctx, workspaceID, userID)
}

var _ generator = &generatorMock{}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, req provider.GenerationRequest) (*provider.GenerationResult, error)

	calls struct {
		Generate []struct {
			Request provider.GenerationRequest
		}
	}
	mu sync.Mutex
}

func (mock *generatorMock) Generate(ctx context.Context, req provider.GenerationRequest) (*provider.GenerationResult, error) {
	if mock.GenerateFunc == nil {
		panic("generatorMock.GenerateFunc: method is nil but generator.Generate was just called")
	}
	mock.mu.Lock()
	mock.calls.Generate = append(mock.calls.Generate, struct {
		Request provider.GenerationRequest
	}{Request: req})
	mock.mu.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *generatorMock) GenerateCalls() []struct {
	Request provider.GenerationRequest
} {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.Generate
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the transaction body directly on the given context.
type txManagerMock struct{}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
