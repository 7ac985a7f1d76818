// Package draftgen is the HTTP client for the reply-draft generator service.
package draftgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/provider"
)

const draftsPath = "/v1/drafts"

// Provider calls the draft generator over HTTP.
// Generation is treated as a single opaque call: no retries, the caller
// decides whether to ask again.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider.
// Parameters come from config.GeneratorConfig: BaseURL, APIKey, Timeout.
func NewProvider(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "draftgen"),
	}
}

// Generate asks the generator for reply candidates to one inbox message.
// Returns an error on transport failure, a non-200 status, or a response
// that does not decode.
func (p *Provider) Generate(ctx context.Context, genReq provider.GenerationRequest) (*provider.GenerationResult, error) {
	payload := apiRequest{
		WorkspaceID:        genReq.WorkspaceID.String(),
		InboxItemID:        genReq.InboxItemID.String(),
		Platform:           genReq.Platform,
		SenderName:         genReq.SenderName,
		MessageText:        genReq.MessageText,
		NumDrafts:          genReq.NumDrafts,
		CustomInstructions: genReq.CustomInstructions,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("draftgen: encode request: %w", err)
	}

	p.log.DebugContext(ctx, "draftgen request",
		slog.String("inbox_item_id", payload.InboxItemID),
		slog.Int("num_drafts", payload.NumDrafts),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+draftsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("draftgen: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "draftgen request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("draftgen: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("draftgen: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if uerr := json.Unmarshal(respBody, &errResp); uerr == nil && errResp.Error != "" {
			p.log.ErrorContext(ctx, "draftgen error response",
				slog.Int("status", resp.StatusCode),
				slog.String("error", errResp.Error),
			)
			return nil, fmt.Errorf("draftgen: generator error: %s", errResp.Error)
		}
		p.log.ErrorContext(ctx, "draftgen error response", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("draftgen: unexpected status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("draftgen: decode json: %w", err)
	}

	result, err := mapAPIResponse(&apiResp)
	if err != nil {
		return nil, err
	}

	p.log.DebugContext(ctx, "draftgen response",
		slog.String("inbox_item_id", payload.InboxItemID),
		slog.Int("drafts", len(result.Drafts)),
		slog.Bool("has_brand_profile", result.HasBrandProfile),
	)

	return result, nil
}

// mapAPIResponse converts the wire envelope into a provider.GenerationResult.
func mapAPIResponse(resp *apiResponse) (*provider.GenerationResult, error) {
	itemID, err := uuid.Parse(resp.InboxItemID)
	if err != nil {
		return nil, fmt.Errorf("draftgen: invalid inboxItemId %q: %w", resp.InboxItemID, err)
	}

	generatedAt := time.Now().UTC()
	if resp.GeneratedAt != "" {
		t, err := time.Parse(time.RFC3339, resp.GeneratedAt)
		if err != nil {
			return nil, fmt.Errorf("draftgen: invalid generatedAt %q: %w", resp.GeneratedAt, err)
		}
		generatedAt = t
	}

	result := &provider.GenerationResult{
		InboxItemID:     itemID,
		Drafts:          make([]provider.DraftCandidate, 0, len(resp.Drafts)),
		HasBrandProfile: resp.HasBrandProfile,
		GeneratedAt:     generatedAt,
	}

	for _, d := range resp.Drafts {
		result.Drafts = append(result.Drafts, provider.DraftCandidate{
			Content:         d.Content,
			ConfidenceScore: d.ConfidenceScore,
			IsPreferred:     d.IsPreferred,
			Reason:          d.Reason,
			Hashtags:        d.Hashtags,
			Mentions:        d.Mentions,
			ToneMatch:       d.ToneMatch,
		})
	}

	if resp.MessageAnalysis != nil {
		result.MessageAnalysis = &provider.MessageAnalysis{
			Sentiment: resp.MessageAnalysis.Sentiment,
			Intent:    resp.MessageAnalysis.Intent,
			Topics:    resp.MessageAnalysis.Topics,
			Language:  resp.MessageAnalysis.Language,
		}
	}

	return result, nil
}
