package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/replyflow/replyflow-backend/internal/provider"
)

// Generate asks the draft generator for reply candidates to one inbox
// message and post-processes them into PENDING draft records. Nothing is
// persisted; call Save with the batch the caller wants to keep.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	userID, _, err := s.memberRole(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.inbox.GetByID(ctx, input.WorkspaceID, input.InboxItemID)
	if err != nil {
		return nil, fmt.Errorf("get inbox item: %w", err)
	}

	count := input.clampedCount()

	result, err := s.gen.Generate(ctx, provider.GenerationRequest{
		WorkspaceID:        input.WorkspaceID,
		InboxItemID:        item.ID,
		Platform:           item.Platform.String(),
		SenderName:         item.SenderName,
		MessageText:        item.Text,
		NumDrafts:          count,
		CustomInstructions: input.CustomInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("generate drafts: %w", err)
	}

	payloads := make([]DraftPayload, 0, len(result.Drafts))
	for _, c := range result.Drafts {
		payloads = append(payloads, DraftPayload{
			Content:         c.Content,
			ConfidenceScore: c.ConfidenceScore,
			IsPreferred:     c.IsPreferred,
			Reason:          c.Reason,
			Hashtags:        c.Hashtags,
			Mentions:        c.Mentions,
			ToneMatch:       c.ToneMatch,
		})
	}

	drafts, err := postProcess(input.WorkspaceID, item.ID, item.Platform, payloads, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "drafts generated",
		slog.String("user_id", userID.String()),
		slog.String("workspace_id", input.WorkspaceID.String()),
		slog.String("inbox_item_id", item.ID.String()),
		slog.Int("requested", count),
		slog.Int("returned", len(drafts)),
		slog.Bool("has_brand_profile", result.HasBrandProfile),
	)

	return &GenerateResult{
		InboxItemID:     item.ID,
		Drafts:          drafts,
		HasBrandProfile: result.HasBrandProfile,
		MessageAnalysis: result.MessageAnalysis,
		GeneratedAt:     result.GeneratedAt,
	}, nil
}

// Regenerate is Generate for an inbox item that already has drafts. The
// fresh batch replaces the old one at save time: Save rejects the still
// pending drafts as superseded in the same transaction.
func (s *Service) Regenerate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	return s.Generate(ctx, input)
}
