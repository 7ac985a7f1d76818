package domain

// ApprovalSettings is the per-workspace policy governing whether and how
// drafts require human sign-off before sending.
type ApprovalSettings struct {
	RequireApproval           bool            `json:"requireApproval"`
	ApproverRoles             []WorkspaceRole `json:"approverRoles"`
	AutoApproveHighConfidence bool            `json:"autoApproveHighConfidence"`
	AutoApproveThreshold      float64         `json:"autoApproveThreshold"`
	NotifyApprovers           bool            `json:"notifyApprovers"`
	EscalationTimeoutHours    *int            `json:"escalationTimeoutHours"`
}

// ApprovalSettingsPatch is a partial update. Nil fields are left untouched.
type ApprovalSettingsPatch struct {
	RequireApproval           *bool
	ApproverRoles             []WorkspaceRole
	AutoApproveHighConfidence *bool
	AutoApproveThreshold      *float64
	NotifyApprovers           *bool
	EscalationTimeoutHours    *int
	ClearEscalationTimeout    bool
}

// DefaultApprovalSettings returns the system defaults that apply until a
// workspace stores overrides.
func DefaultApprovalSettings() ApprovalSettings {
	timeout := 24
	return ApprovalSettings{
		RequireApproval:           true,
		ApproverRoles:             []WorkspaceRole{WorkspaceRoleOwner, WorkspaceRoleAdmin},
		AutoApproveHighConfidence: false,
		AutoApproveThreshold:      0.95,
		NotifyApprovers:           true,
		EscalationTimeoutHours:    &timeout,
	}
}

// ResolveApprovalSettings merges a stored partial record onto the defaults,
// field by field. A nil raw blob (workspace never stored overrides) yields
// the full default record. The merge is shallow: each present field wins
// wholesale, absent fields fall back to the default.
func ResolveApprovalSettings(raw map[string]any) ApprovalSettings {
	settings := DefaultApprovalSettings()
	if raw == nil {
		return settings
	}

	if v, ok := raw["requireApproval"].(bool); ok {
		settings.RequireApproval = v
	}
	if v, ok := raw["approverRoles"].([]any); ok {
		roles := make([]WorkspaceRole, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok && WorkspaceRole(s).IsValid() {
				roles = append(roles, WorkspaceRole(s))
			}
		}
		if len(roles) > 0 {
			settings.ApproverRoles = roles
		}
	}
	if v, ok := raw["autoApproveHighConfidence"].(bool); ok {
		settings.AutoApproveHighConfidence = v
	}
	if v, ok := toFloat(raw["autoApproveThreshold"]); ok {
		settings.AutoApproveThreshold = v
	}
	if v, ok := raw["notifyApprovers"].(bool); ok {
		settings.NotifyApprovers = v
	}
	if v, present := raw["escalationTimeoutHours"]; present {
		if v == nil {
			settings.EscalationTimeoutHours = nil
		} else if f, ok := toFloat(v); ok {
			hours := int(f)
			settings.EscalationTimeoutHours = &hours
		}
	}

	return settings
}

// Apply merges the patch onto s and returns the result. Nil patch fields
// keep the current effective value.
func (s ApprovalSettings) Apply(patch ApprovalSettingsPatch) ApprovalSettings {
	merged := s

	if patch.RequireApproval != nil {
		merged.RequireApproval = *patch.RequireApproval
	}
	if patch.ApproverRoles != nil {
		merged.ApproverRoles = patch.ApproverRoles
	}
	if patch.AutoApproveHighConfidence != nil {
		merged.AutoApproveHighConfidence = *patch.AutoApproveHighConfidence
	}
	if patch.AutoApproveThreshold != nil {
		merged.AutoApproveThreshold = *patch.AutoApproveThreshold
	}
	if patch.NotifyApprovers != nil {
		merged.NotifyApprovers = *patch.NotifyApprovers
	}
	if patch.ClearEscalationTimeout {
		merged.EscalationTimeoutHours = nil
	} else if patch.EscalationTimeoutHours != nil {
		merged.EscalationTimeoutHours = patch.EscalationTimeoutHours
	}

	return merged
}

// ToMap converts the settings to the JSON shape stored in the workspace
// settings blob under SettingsKeyApproval.
func (s ApprovalSettings) ToMap() map[string]any {
	roles := make([]any, len(s.ApproverRoles))
	for i, r := range s.ApproverRoles {
		roles[i] = string(r)
	}

	m := map[string]any{
		"requireApproval":           s.RequireApproval,
		"approverRoles":             roles,
		"autoApproveHighConfidence": s.AutoApproveHighConfidence,
		"autoApproveThreshold":      s.AutoApproveThreshold,
		"notifyApprovers":           s.NotifyApprovers,
	}
	if s.EscalationTimeoutHours != nil {
		m["escalationTimeoutHours"] = *s.EscalationTimeoutHours
	} else {
		m["escalationTimeoutHours"] = nil
	}
	return m
}

// AllowsRole reports whether a member with the given role may approve,
// reject, or send drafts under these settings.
func (s ApprovalSettings) AllowsRole(role WorkspaceRole) bool {
	for _, r := range s.ApproverRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Validate checks value ranges on a fully merged record.
func (s ApprovalSettings) Validate() error {
	var errs []FieldError

	if s.AutoApproveThreshold < 0 || s.AutoApproveThreshold > 1 {
		errs = append(errs, FieldError{Field: "autoApproveThreshold", Message: "must be between 0 and 1"})
	}
	if len(s.ApproverRoles) == 0 {
		errs = append(errs, FieldError{Field: "approverRoles", Message: "required (at least 1 role)"})
	}
	for _, r := range s.ApproverRoles {
		if !r.IsValid() {
			errs = append(errs, FieldError{Field: "approverRoles", Message: "unknown role " + string(r)})
		}
	}
	if s.EscalationTimeoutHours != nil && *s.EscalationTimeoutHours <= 0 {
		errs = append(errs, FieldError{Field: "escalationTimeoutHours", Message: "must be > 0"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// toFloat accepts the numeric types JSON decoding can produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
