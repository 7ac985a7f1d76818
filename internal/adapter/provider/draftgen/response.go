package draftgen

// apiRequest is the JSON body sent to the generator's /v1/drafts endpoint.
type apiRequest struct {
	WorkspaceID        string  `json:"workspaceId"`
	InboxItemID        string  `json:"inboxItemId"`
	Platform           string  `json:"platform"`
	SenderName         string  `json:"senderName"`
	MessageText        string  `json:"messageText"`
	NumDrafts          int     `json:"numDrafts"`
	CustomInstructions *string `json:"customInstructions,omitempty"`
}

// apiResponse is the generator's reply envelope.
type apiResponse struct {
	InboxItemID     string       `json:"inboxItemId"`
	Drafts          []apiDraft   `json:"drafts"`
	HasBrandProfile bool         `json:"hasBrandProfile"`
	MessageAnalysis *apiAnalysis `json:"messageAnalysis"`
	GeneratedAt     string       `json:"generatedAt"`
}

// apiDraft is one raw candidate as the generator emits it.
type apiDraft struct {
	Content         string             `json:"content"`
	ConfidenceScore float64            `json:"confidenceScore"`
	IsPreferred     bool               `json:"isPreferred"`
	Reason          string             `json:"reason"`
	Hashtags        []string           `json:"hashtags"`
	Mentions        []string           `json:"mentions"`
	ToneMatch       map[string]float64 `json:"toneMatch"`
}

// apiAnalysis is the generator's analysis of the incoming message.
type apiAnalysis struct {
	Sentiment string   `json:"sentiment"`
	Intent    string   `json:"intent"`
	Topics    []string `json:"topics"`
	Language  string   `json:"language"`
}

// apiError is the generator's error response format.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
