package attendance

import "time"

// OverrideRequest is a manager patch. Nil fields are left unchanged; the
// Clear flags unset a timestamp.
type OverrideRequest struct {
	Status        *string    `json:"status"`
	SubStatus     *string    `json:"sub_status"`
	CheckInTime   *time.Time `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time"`
	ClosedReason  *string    `json:"closed_reason"`
	ClearCheckIn  bool       `json:"clear_check_in"`
	ClearCheckOut bool       `json:"clear_check_out"`
}

type RecordResponse struct {
	ID               string     `json:"id"`
	StudentID        string     `json:"student_id"`
	Date             string     `json:"date"`
	Status           string     `json:"status"`
	SubStatus        string     `json:"sub_status"`
	ReportedBy       string     `json:"reported_by"`
	CheckInTime      *time.Time `json:"check_in_time"`
	CheckOutTime     *time.Time `json:"check_out_time"`
	ClosedReason     string     `json:"closed_reason"`
	OverrideLocked   bool       `json:"override_locked"`
	OverrideLockedAt *time.Time `json:"override_locked_at"`
}

type SummaryResponse struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Late     int            `json:"late"`
	Locked   int            `json:"locked"`
}
