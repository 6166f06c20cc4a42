package settings

type UpdateSettingsRequest struct {
	LatenessThresholdDefault  *int    `json:"lateness_threshold_default" binding:"omitempty,min=0"`
	YomLoBaLiThresholdDefault *int    `json:"yom_lo_ba_li_threshold_default" binding:"omitempty,min=1"`
	ManagerName               *string `json:"manager_name" binding:"omitempty,max=100"`
	ManagerPhone              *string `json:"manager_phone" binding:"omitempty,max=30"`
	CourtChairName            *string `json:"court_chair_name" binding:"omitempty,max=100"`
	CourtChairPhone           *string `json:"court_chair_phone" binding:"omitempty,max=30"`
}

type SettingsResponse struct {
	LatenessThresholdDefault  int    `json:"lateness_threshold_default"`
	YomLoBaLiThresholdDefault int    `json:"yom_lo_ba_li_threshold_default"`
	ManagerName               string `json:"manager_name"`
	ManagerPhone              string `json:"manager_phone"`
	CourtChairName            string `json:"court_chair_name"`
	CourtChairPhone           string `json:"court_chair_phone"`
}

type UpsertOverrideRequest struct {
	StudentID          string `json:"student_id" binding:"required,uuid"`
	YearMonth          string `json:"year_month" binding:"required"`
	LatenessThreshold  *int   `json:"lateness_threshold" binding:"omitempty,min=0"`
	YomLoBaLiThreshold *int   `json:"yom_lo_ba_li_threshold" binding:"omitempty,min=1"`
}

type OverrideResponse struct {
	ID                 string `json:"id"`
	StudentID          string `json:"student_id"`
	YearMonth          string `json:"year_month"`
	LatenessThreshold  *int   `json:"lateness_threshold"`
	YomLoBaLiThreshold *int   `json:"yom_lo_ba_li_threshold"`
}
