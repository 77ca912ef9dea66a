package dto

// LockStatusResponse POST /check-lock-status 响应
type LockStatusResponse struct {
	IsLocked          bool    `json:"is_locked"`
	FinalApprovedAt   *string `json:"final_approved_at"`
	CollegeCode       string  `json:"college_code"`
	CollegeName       string  `json:"college_name"`
	PaymentStatus     *string `json:"payment_status"`
	PaymentUploadedAt *string `json:"payment_uploaded_at"`
	PaymentRemarks    *string `json:"payment_remarks"`
}

// EventResponse POST /get-events 中的一项
type EventResponse struct {
	EventID                   int64  `json:"event_id"`
	EventCode                 string `json:"event_code"`
	EventName                 string `json:"event_name"`
	EventType                 string `json:"event_type"`
	Category                  string `json:"category,omitempty"`
	MaxGroupsPerCollege       int    `json:"max_groups_per_college"`
	MaxParticipantsPerCollege int    `json:"max_participants_per_college"`
	MaxAccompanistsPerCollege int    `json:"max_accompanists_per_college"`
	CurrentParticipants       int64  `json:"current_participants"`
	CurrentAccompanists       int64  `json:"current_accompanists"`
}
