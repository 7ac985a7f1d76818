package rest

import "net/http"

// NewRouter builds the API route table. Auth and the rest of the
// middleware chain are applied by the caller around the returned mux.
func NewRouter(
	health *HealthHandler,
	draft *DraftHandler,
	settings *SettingsHandler,
	metrics *MetricsHandler,
	user *UserHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	mux.HandleFunc("GET /api/v1/me", user.Me)

	const ws = "/api/v1/workspaces/{workspaceID}"

	mux.HandleFunc("POST "+ws+"/inbox-items/{inboxItemID}/drafts/generate", draft.Generate)
	mux.HandleFunc("POST "+ws+"/inbox-items/{inboxItemID}/drafts/regenerate", draft.Regenerate)
	mux.HandleFunc("POST "+ws+"/inbox-items/{inboxItemID}/drafts", draft.Save)
	mux.HandleFunc("GET "+ws+"/inbox-items/{inboxItemID}/drafts", draft.List)

	mux.HandleFunc("GET "+ws+"/drafts/{draftID}", draft.Get)
	mux.HandleFunc("PATCH "+ws+"/drafts/{draftID}", draft.Edit)
	mux.HandleFunc("POST "+ws+"/drafts/{draftID}/approve", draft.Approve)
	mux.HandleFunc("POST "+ws+"/drafts/{draftID}/reject", draft.Reject)
	mux.HandleFunc("POST "+ws+"/drafts/{draftID}/sent", draft.MarkSent)
	mux.HandleFunc("POST "+ws+"/drafts/{draftID}/failed", draft.MarkFailed)

	mux.HandleFunc("GET "+ws+"/settings/approval", settings.GetApproval)
	mux.HandleFunc("PATCH "+ws+"/settings/approval", settings.UpdateApproval)

	mux.HandleFunc("GET "+ws+"/metrics/workflow", metrics.Workflow)
	mux.HandleFunc("GET "+ws+"/metrics/edit-feedback", metrics.EditFeedback)

	return mux
}
