package drafts

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/internal/editclassify"
)

// postProcess normalizes raw generator candidates into PENDING draft
// records for one inbox item: platform-aware character accounting and a
// guaranteed single preferred draft.
//
// Structural validation is all-or-nothing. A batch with no candidates, an
// empty content, or an out-of-range confidence score is rejected wholesale.
func postProcess(workspaceID, inboxItemID uuid.UUID, platform domain.Platform, payloads []DraftPayload, now time.Time) ([]*domain.Draft, error) {
	if len(payloads) == 0 {
		return nil, domain.NewValidationError("drafts", "required")
	}

	limit := platform.CharacterLimit()
	drafts := make([]*domain.Draft, 0, len(payloads))

	for _, p := range payloads {
		if strings.TrimSpace(p.Content) == "" {
			return nil, domain.NewValidationError("drafts.content", "required")
		}
		if p.ConfidenceScore < 0 || p.ConfidenceScore > 1 {
			return nil, domain.NewValidationError("drafts.confidence_score", "must be between 0 and 1")
		}

		count := utf8.RuneCountInString(p.Content)

		hashtags := p.Hashtags
		if hashtags == nil {
			hashtags = editclassify.ExtractHashtags(p.Content)
		}
		mentions := p.Mentions
		if mentions == nil {
			mentions = editclassify.ExtractMentions(p.Content)
		}

		drafts = append(drafts, &domain.Draft{
			ID:              uuid.New(),
			WorkspaceID:     workspaceID,
			InboxItemID:     inboxItemID,
			Content:         p.Content,
			ConfidenceScore: p.ConfidenceScore,
			IsPreferred:     p.IsPreferred,
			Reason:          p.Reason,
			Status:          domain.DraftStatusPending,
			Metadata: domain.DraftMetadata{
				Hashtags:             hashtags,
				Mentions:             mentions,
				ToneMatch:            p.ToneMatch,
				CharacterCount:       count,
				PlatformLimit:        limit,
				WithinCharacterLimit: count <= limit,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	markExactlyOnePreferred(drafts)

	return drafts, nil
}

// markExactlyOnePreferred enforces the single-preferred invariant. The
// first draft the generator marked wins; if it marked none, the highest
// confidence score wins, ties broken by first occurrence.
func markExactlyOnePreferred(drafts []*domain.Draft) {
	preferred := -1
	for i, d := range drafts {
		if d.IsPreferred {
			preferred = i
			break
		}
	}

	if preferred == -1 {
		best := 0
		for i := 1; i < len(drafts); i++ {
			if drafts[i].ConfidenceScore > drafts[best].ConfidenceScore {
				best = i
			}
		}
		preferred = best
	}

	for i, d := range drafts {
		d.IsPreferred = i == preferred
	}
}

// editedMetadata recomputes the content-derived metadata fields after a
// human edit, keeping the generator's tone-match scores.
func editedMetadata(prev domain.DraftMetadata, content string) domain.DraftMetadata {
	count := utf8.RuneCountInString(content)
	limit := prev.PlatformLimit
	if limit == 0 {
		limit = domain.DefaultCharacterLimit
	}

	return domain.DraftMetadata{
		Hashtags:             editclassify.ExtractHashtags(content),
		Mentions:             editclassify.ExtractMentions(content),
		ToneMatch:            prev.ToneMatch,
		CharacterCount:       count,
		PlatformLimit:        limit,
		WithinCharacterLimit: count <= limit,
	}
}
