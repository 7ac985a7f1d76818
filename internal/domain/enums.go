package domain

// DraftStatus represents where a reply draft sits in the approval pipeline.
type DraftStatus string

const (
	DraftStatusPending  DraftStatus = "PENDING"
	DraftStatusApproved DraftStatus = "APPROVED"
	DraftStatusRejected DraftStatus = "REJECTED"
	DraftStatusSent     DraftStatus = "SENT"
	DraftStatusFailed   DraftStatus = "FAILED"
)

func (s DraftStatus) String() string { return string(s) }

func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusPending, DraftStatusApproved, DraftStatusRejected,
		DraftStatusSent, DraftStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s DraftStatus) IsTerminal() bool {
	switch s {
	case DraftStatusRejected, DraftStatusSent, DraftStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from s
// to target. PENDING → {APPROVED, REJECTED, FAILED};
// APPROVED → {SENT, FAILED}; terminal states allow nothing.
func (s DraftStatus) CanTransitionTo(target DraftStatus) bool {
	switch s {
	case DraftStatusPending:
		return target == DraftStatusApproved || target == DraftStatusRejected ||
			target == DraftStatusFailed
	case DraftStatusApproved:
		return target == DraftStatusSent || target == DraftStatusFailed
	}
	return false
}

// EditType classifies a human edit for the ML feedback signal.
type EditType string

const (
	EditTypeMinorTweak         EditType = "MINOR_TWEAK"
	EditTypeToneAdjustment     EditType = "TONE_ADJUSTMENT"
	EditTypeContentRevision    EditType = "CONTENT_REVISION"
	EditTypeCompleteRewrite    EditType = "COMPLETE_REWRITE"
	EditTypePlatformFormatting EditType = "PLATFORM_FORMATTING"
)

func (t EditType) String() string { return string(t) }

func (t EditType) IsValid() bool {
	switch t {
	case EditTypeMinorTweak, EditTypeToneAdjustment, EditTypeContentRevision,
		EditTypeCompleteRewrite, EditTypePlatformFormatting:
		return true
	}
	return false
}

// AuditAction represents the kind of draft mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreated    AuditAction = "CREATED"
	AuditActionEdited     AuditAction = "EDITED"
	AuditActionApproved   AuditAction = "APPROVED"
	AuditActionRejected   AuditAction = "REJECTED"
	AuditActionSent       AuditAction = "SENT"
	AuditActionSendFailed AuditAction = "SEND_FAILED"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreated, AuditActionEdited, AuditActionApproved,
		AuditActionRejected, AuditActionSent, AuditActionSendFailed:
		return true
	}
	return false
}

// Platform identifies the social network an inbox message came from.
type Platform string

const (
	PlatformTwitter   Platform = "TWITTER"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformLinkedIn  Platform = "LINKEDIN"
	PlatformTikTok    Platform = "TIKTOK"
)

func (p Platform) String() string { return string(p) }

func (p Platform) IsValid() bool {
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformFacebook,
		PlatformLinkedIn, PlatformTikTok:
		return true
	}
	return false
}

// DefaultCharacterLimit is used for platforms without a known limit.
const DefaultCharacterLimit = 5000

// CharacterLimit returns the platform's maximum reply length in characters.
func (p Platform) CharacterLimit() int {
	switch p {
	case PlatformTwitter:
		return 280
	case PlatformInstagram:
		return 2200
	case PlatformFacebook:
		return 63206
	case PlatformLinkedIn:
		return 3000
	case PlatformTikTok:
		return 2200
	}
	return DefaultCharacterLimit
}

// InboxItemStatus represents the reply state of an inbox message.
type InboxItemStatus string

const (
	InboxItemStatusOpen    InboxItemStatus = "OPEN"
	InboxItemStatusReplied InboxItemStatus = "REPLIED"
)

func (s InboxItemStatus) String() string { return string(s) }

func (s InboxItemStatus) IsValid() bool {
	switch s {
	case InboxItemStatusOpen, InboxItemStatusReplied:
		return true
	}
	return false
}

// WorkspaceRole represents a member's authorization level inside a workspace.
type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "OWNER"
	WorkspaceRoleAdmin  WorkspaceRole = "ADMIN"
	WorkspaceRoleMember WorkspaceRole = "MEMBER"
)

func (r WorkspaceRole) String() string { return string(r) }

func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleAdmin, WorkspaceRoleMember:
		return true
	}
	return false
}
