package provider

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRequest describes one call to the draft generator: the inbox
// message to reply to plus how many candidates to produce.
type GenerationRequest struct {
	WorkspaceID        uuid.UUID
	InboxItemID        uuid.UUID
	Platform           string
	SenderName         string
	MessageText        string
	NumDrafts          int
	CustomInstructions *string
}

// GenerationResult is the structured result from a draft generator provider.
type GenerationResult struct {
	InboxItemID     uuid.UUID
	Drafts          []DraftCandidate
	HasBrandProfile bool
	MessageAnalysis *MessageAnalysis
	GeneratedAt     time.Time
}

// DraftCandidate is one raw reply candidate before post-processing.
type DraftCandidate struct {
	Content         string
	ConfidenceScore float64
	IsPreferred     bool
	Reason          string
	Hashtags        []string
	Mentions        []string
	ToneMatch       map[string]float64
}

// MessageAnalysis is the generator's read of the incoming message.
type MessageAnalysis struct {
	Sentiment string
	Intent    string
	Topics    []string
	Language  string
}
