package update_company_policy

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
}
