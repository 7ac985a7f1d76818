package drafts

import (
	"strings"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

const (
	// MinDraftCount and MaxDraftCount bound how many candidates one
	// generation call may request. Out-of-range values are clamped, not
	// rejected.
	MinDraftCount = 1
	MaxDraftCount = 5

	// DefaultDraftCount applies when the caller does not ask for a
	// specific number of candidates.
	DefaultDraftCount = 3

	maxContentLength = 10000
	maxReasonLength  = 2000
)

// GenerateInput holds the parameters for generating reply drafts.
type GenerateInput struct {
	WorkspaceID        uuid.UUID
	InboxItemID        uuid.UUID
	NumDrafts          int
	CustomInstructions *string
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.InboxItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "inbox_item_id", Message: "required"})
	}
	if i.CustomInstructions != nil && len(*i.CustomInstructions) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "custom_instructions", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// clampedCount returns the requested draft count clamped to [1, 5], with
// zero meaning "use the default".
func (i GenerateInput) clampedCount() int {
	n := i.NumDrafts
	if n == 0 {
		n = DefaultDraftCount
	}
	if n < MinDraftCount {
		return MinDraftCount
	}
	if n > MaxDraftCount {
		return MaxDraftCount
	}
	return n
}

// DraftPayload is one generated candidate submitted for persistence.
type DraftPayload struct {
	Content         string
	ConfidenceScore float64
	IsPreferred     bool
	Reason          string
	Hashtags        []string
	Mentions        []string
	ToneMatch       map[string]float64
}

// SaveInput holds a batch of generated drafts to persist for one inbox item.
type SaveInput struct {
	WorkspaceID uuid.UUID
	InboxItemID uuid.UUID
	Drafts      []DraftPayload
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.InboxItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "inbox_item_id", Message: "required"})
	}
	if len(i.Drafts) == 0 {
		errs = append(errs, domain.FieldError{Field: "drafts", Message: "required"})
	}
	if len(i.Drafts) > MaxDraftCount {
		errs = append(errs, domain.FieldError{Field: "drafts", Message: "max 5 drafts"})
	}

	for _, d := range i.Drafts {
		if strings.TrimSpace(d.Content) == "" {
			errs = append(errs, domain.FieldError{Field: "drafts.content", Message: "required"})
			break
		}
	}
	for _, d := range i.Drafts {
		if d.ConfidenceScore < 0 || d.ConfidenceScore > 1 {
			errs = append(errs, domain.FieldError{Field: "drafts.confidence_score", Message: "must be between 0 and 1"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// EditInput holds the parameters for editing a pending draft's content.
type EditInput struct {
	WorkspaceID    uuid.UUID
	DraftID        uuid.UUID
	Content        string
	ChangesSummary *string
}

// Validate checks all fields and collects all errors.
func (i EditInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.DraftID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "draft_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > maxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 10000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ApproveInput holds the parameters for approving a pending draft.
type ApproveInput struct {
	WorkspaceID uuid.UUID
	DraftID     uuid.UUID
	Note        *string
}

// Validate checks all fields and collects all errors.
func (i ApproveInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.DraftID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "draft_id", Message: "required"})
	}
	if i.Note != nil && len(*i.Note) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RejectInput holds the parameters for rejecting a pending draft.
// A reason is mandatory.
type RejectInput struct {
	WorkspaceID uuid.UUID
	DraftID     uuid.UUID
	Reason      string
}

// Validate checks all fields and collects all errors.
func (i RejectInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.DraftID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "draft_id", Message: "required"})
	}

	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(reason) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MarkSentInput holds the parameters for recording a successful send.
type MarkSentInput struct {
	WorkspaceID uuid.UUID
	DraftID     uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i MarkSentInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.DraftID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "draft_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MarkFailedInput holds the parameters for recording a failed send.
// The error message is mandatory.
type MarkFailedInput struct {
	WorkspaceID  uuid.UUID
	DraftID      uuid.UUID
	ErrorMessage string
}

// Validate checks all fields and collects all errors.
func (i MarkFailedInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkspaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "workspace_id", Message: "required"})
	}
	if i.DraftID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "draft_id", Message: "required"})
	}
	if strings.TrimSpace(i.ErrorMessage) == "" {
		errs = append(errs, domain.FieldError{Field: "error_message", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
