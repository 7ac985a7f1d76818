package domain

import (
	"time"

	"github.com/google/uuid"
)

// DraftMetadata carries platform-aware annotations computed by
// post-processing plus the generator's per-draft signals.
type DraftMetadata struct {
	Hashtags             []string           `json:"hashtags,omitempty"`
	Mentions             []string           `json:"mentions,omitempty"`
	ToneMatch            map[string]float64 `json:"toneMatch,omitempty"`
	CharacterCount       int                `json:"characterCount"`
	PlatformLimit        int                `json:"platformLimit"`
	WithinCharacterLimit bool               `json:"withinCharacterLimit"`
}

// Draft is one AI-produced candidate reply awaiting or having completed review.
type Draft struct {
	ID              uuid.UUID
	WorkspaceID     uuid.UUID
	InboxItemID     uuid.UUID
	Content         string
	ConfidenceScore float64
	IsPreferred     bool
	Reason          string
	Status          DraftStatus
	Metadata        DraftMetadata
	ReviewedByID    *uuid.UUID
	ReviewedAt      *time.Time
	SentAt          *time.Time
	ErrorMessage    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsReviewed reports whether a human (or auto-approval) has signed off on
// or rejected the draft.
func (d *Draft) IsReviewed() bool {
	return d.ReviewedAt != nil
}

// EditHistoryRecord captures one human content edit on a pending draft.
type EditHistoryRecord struct {
	ID              uuid.UUID
	DraftID         uuid.UUID
	OriginalContent string
	EditedContent   string
	EditType        EditType
	EditDistance    int
	ChangesSummary  *string
	EditedByID      uuid.UUID
	CreatedAt       time.Time
}

// AuditLogRecord is one append-only row describing a mutating action on a
// draft. Records are never updated or deleted after creation.
type AuditLogRecord struct {
	ID            uuid.UUID
	DraftID       uuid.UUID
	Action        AuditAction
	PerformedByID uuid.UUID
	Details       map[string]any
	IPAddress     *string
	UserAgent     *string
	CreatedAt     time.Time

	// Performer is the resolved display identity of PerformedByID.
	// Filled on read paths; nil when the user row is gone.
	Performer *UserIdentity
}

// DraftWithHistory bundles a draft with its full paper trail.
type DraftWithHistory struct {
	Draft       *Draft
	EditHistory []*EditHistoryRecord
	AuditLog    []*AuditLogRecord
}
