package dto

type CreateApplicationRequest struct {
	JobID       string `json:"job_id" binding:"required,uuid"`
	CVID        string `json:"cv_id" binding:"required,uuid"`
	CoverLetter string `json:"cover_letter"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListRecruiterApplicationsRequest struct {
	JobID string `form:"job_id"`
}

type ApplicationDTO struct {
	ID           string `json:"id"`
	JobID        string `json:"job_id"`
	ApplicantUID string `json:"applicant_uid"`
	CVID         string `json:"cv_id"`
	CoverLetter  string `json:"cover_letter,omitempty"`
	Status       string `json:"status"`
	AppliedAt    string `json:"applied_at"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
}
