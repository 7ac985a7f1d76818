package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is a tenant: one brand's inbox, drafts, and settings.
// Settings is a free-form JSONB blob; the approval sub-document lives under
// SettingsKeyApproval and is read/written only through the settings service.
type Workspace struct {
	ID        uuid.UUID
	Name      string
	Settings  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SettingsKeyApproval is the workspace settings blob key holding the
// approval sub-document.
const SettingsKeyApproval = "approval"

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	Role        WorkspaceRole
	CreatedAt   time.Time
}

// User is an account that reviews, edits, and sends drafts.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserIdentity is the minimal display identity attached to audit records.
type UserIdentity struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Identity returns the user's display identity.
func (u *User) Identity() *UserIdentity {
	return &UserIdentity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// InboxItem is one incoming social-media message awaiting a reply.
type InboxItem struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Platform    Platform
	SenderName  string
	Text        string
	Status      InboxItemStatus
	ReceivedAt  time.Time
	RepliedAt   *time.Time
	CreatedAt   time.Time
}
