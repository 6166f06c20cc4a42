package claim

type ListRequest struct {
	Status    string `form:"status"`
	Month     string `form:"month"`
	StudentID string `form:"student_id"`
	Reason    string `form:"reason"`
}

type ClaimResponse struct {
	ID         string   `json:"id"`
	StudentID  string   `json:"student_id"`
	Reason     string   `json:"reason"`
	Status     string   `json:"status"`
	Period     string   `json:"period"`
	DateOpened string   `json:"date_opened"`
	NotifiedTo []string `json:"notified_to"`
	Count      int      `json:"count"`
	Threshold  int      `json:"threshold"`
	ClosedAt   *string  `json:"closed_at"`
}

// EvaluationResult reports one EvaluateMonth pass. Created holds only the
// claims opened by this pass.
type EvaluationResult struct {
	Period    string          `json:"period"`
	Evaluated int             `json:"evaluated"`
	Created   []ClaimResponse `json:"created"`
	Existing  int             `json:"existing"`
	Failed    int             `json:"failed"`
}
