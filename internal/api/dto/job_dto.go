package dto

type CreateJobRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	CompanyName     string `json:"company_name" binding:"required"`
	Location        string `json:"location" binding:"required"`
	JobType         string `json:"job_type" binding:"required,oneof=full-time part-time contract internship"`
	SalaryMin       *int64 `json:"salary_min"`
	SalaryMax       *int64 `json:"salary_max"`
	ExperienceLevel string `json:"experience_level" binding:"omitempty,oneof=entry mid senior executive"`
	Industry        string `json:"industry"`
	Requirements    string `json:"requirements"`
	Benefits        string `json:"benefits"`
}

type UpdateJobRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	CompanyName     *string `json:"company_name"`
	Location        *string `json:"location"`
	JobType         *string `json:"job_type" binding:"omitempty,oneof=full-time part-time contract internship"`
	SalaryMin       *int64  `json:"salary_min"`
	SalaryMax       *int64  `json:"salary_max"`
	ExperienceLevel *string `json:"experience_level" binding:"omitempty,oneof=entry mid senior executive"`
	Industry        *string `json:"industry"`
	Requirements    *string `json:"requirements"`
	Benefits        *string `json:"benefits"`
	IsActive        *bool   `json:"is_active"`
}

type SearchJobsRequest struct {
	Query           string `form:"query"`
	Location        string `form:"location"`
	JobType         string `form:"job_type"`
	SalaryMin       int64  `form:"salary_min"`
	SalaryMax       int64  `form:"salary_max"`
	ExperienceLevel string `form:"experience_level"`
	Industry        string `form:"industry"`
	Page            int    `form:"page"`
	Limit           int    `form:"limit"`
}

type JobDTO struct {
	ID              string `json:"id"`
	RecruiterUID    string `json:"recruiter_uid"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"location"`
	JobType         string `json:"job_type"`
	SalaryMin       *int64 `json:"salary_min,omitempty"`
	SalaryMax       *int64 `json:"salary_max,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	Industry        string `json:"industry,omitempty"`
	Requirements    string `json:"requirements,omitempty"`
	Benefits        string `json:"benefits,omitempty"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type SearchJobsResponse struct {
	Jobs       []JobDTO   `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
