package student

type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,max=30"`
	FirstName     string `json:"first_name" binding:"required,max=100"`
	LastName      string `json:"last_name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"omitempty,max=30"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

type StudentResponse struct {
	ID            string `json:"id"`
	StudentNumber string `json:"student_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone,omitempty"`
	Status        string `json:"status"`
}
