package drafts

import (
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/provider"
)

// GenerateResult is the post-processed output of one generation call.
// The drafts are not yet persisted; Save persists a batch.
type GenerateResult struct {
	InboxItemID     uuid.UUID
	Drafts          []*domain.Draft
	HasBrandProfile bool
	MessageAnalysis *provider.MessageAnalysis
	GeneratedAt     time.Time
}

// ReviewResult bundles a state-changed draft with the audit row the change
// produced.
type ReviewResult struct {
	Draft *domain.Draft
	Audit *domain.AuditLogRecord
}

// EditResult bundles the updated draft with its classified edit record and
// the audit row.
type EditResult struct {
	Draft *domain.Draft
	Edit  *domain.EditHistoryRecord
	Audit *domain.AuditLogRecord
}
