package permanentabsence

type CreatePermanentAbsenceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Weekday   string `json:"weekday" binding:"required"`
	Reason    string `json:"reason" binding:"max=255"`
}

type PermanentAbsenceResponse struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	Weekday   string `json:"weekday"`
	Reason    string `json:"reason"`
}

// ResolveResult counts what one ResolveForDate pass did to the roster.
type ResolveResult struct {
	Date      string `json:"date"`
	SchoolDay bool   `json:"school_day"`
	Created   int    `json:"created"`
	Applied   int    `json:"applied"`
	Unchanged int    `json:"unchanged"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}
