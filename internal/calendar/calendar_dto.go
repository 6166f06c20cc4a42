package calendar

type CreateHolidayRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required,max=200"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type SchoolDayResponse struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	SchoolDay bool   `json:"school_day"`
}
