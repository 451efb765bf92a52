package dto

type CreateProfileRequest struct {
	UserType        string `json:"user_type" binding:"required,oneof=job_seeker recruiter"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	CompanyName     string `json:"company_name"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url"`
}

type UpdateProfileRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Phone           *string `json:"phone"`
	Location        *string `json:"location"`
	CompanyName     *string `json:"company_name"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type ProfileDTO struct {
	FirebaseUID     string `json:"firebase_uid"`
	UserType        string `json:"user_type"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Location        string `json:"location,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
	Bio             string `json:"bio,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type SaveJobRequest struct {
	JobID string `json:"job_id" binding:"required,uuid"`
}

type SavedJobDTO struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	CreatedAt string `json:"created_at"`
}
