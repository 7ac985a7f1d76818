package domain

import "time"

// MetricsWindow is an optional half-open [Start, End) time filter.
// Nil endpoints leave that side unbounded.
type MetricsWindow struct {
	Start *time.Time
	End   *time.Time
}

// DraftStatusCounts holds per-status draft counts for a workspace/window.
type DraftStatusCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
	Sent     int
	Failed   int

	// Reviewed counts drafts with a non-null reviewed_at. Status buckets
	// cannot recover this number: a FAILED draft may have been killed
	// straight from PENDING without ever being reviewed.
	Reviewed int
}

// WorkflowMetrics are the approval-pipeline health statistics.
// Rates are percentages. Zero reviewed/total counts yield 0 rates, except
// SendSuccessRate which is 100 when there were no send attempts at all.
type WorkflowMetrics struct {
	TotalDrafts            int     `json:"totalDrafts"`
	AverageApprovalTime    float64 `json:"averageApprovalTimeMinutes"`
	ApprovalRate           float64 `json:"approvalRate"`
	RejectionRate          float64 `json:"rejectionRate"`
	EditBeforeApprovalRate float64 `json:"editBeforeApprovalRate"`
	AverageEditsPerDraft   float64 `json:"averageEditsPerDraft"`
	SendSuccessRate        float64 `json:"sendSuccessRate"`
}

// EditTypeAggregate summarizes the edits of one EditType in a window.
type EditTypeAggregate struct {
	EditType        EditType `json:"editType"`
	Count           int      `json:"count"`
	AvgEditDistance float64  `json:"avgEditDistance"`
}

// EditFeedback is the labeled ML-feedback signal exposed for downstream
// model training: the per-type edit aggregates plus the overall edit rate.
type EditFeedback struct {
	TotalDrafts int                 `json:"totalDrafts"`
	TotalEdits  int                 `json:"totalEdits"`
	EditRate    float64             `json:"editRate"`
	ByType      []EditTypeAggregate `json:"byType"`
}
