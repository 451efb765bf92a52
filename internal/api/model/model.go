package model

import (
	"database/sql"
	"time"
)

type UserProfile struct {
	FirebaseUID     string         `db:"firebase_uid"`
	UserType        string         `db:"user_type"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	Email           string         `db:"email"`
	Phone           sql.NullString `db:"phone"`
	Location        sql.NullString `db:"location"`
	CompanyName     sql.NullString `db:"company_name"`
	Bio             sql.NullString `db:"bio"`
	ProfileImageURL sql.NullString `db:"profile_image_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type JobPosting struct {
	ID              string         `db:"id"`
	RecruiterUID    string         `db:"recruiter_uid"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	CompanyName     string         `db:"company_name"`
	Location        string         `db:"location"`
	JobType         string         `db:"job_type"`
	SalaryMin       sql.NullInt64  `db:"salary_min"`
	SalaryMax       sql.NullInt64  `db:"salary_max"`
	ExperienceLevel sql.NullString `db:"experience_level"`
	Industry        sql.NullString `db:"industry"`
	Requirements    sql.NullString `db:"requirements"`
	Benefits        sql.NullString `db:"benefits"`
	IsActive        bool           `db:"is_active"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type CV struct {
	ID        string        `db:"id"`
	UserUID   string        `db:"user_uid"`
	FileName  string        `db:"file_name"`
	FileURL   string        `db:"file_url"`
	FileSize  sql.NullInt64 `db:"file_size"`
	IsPrimary bool          `db:"is_primary"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type Application struct {
	ID           string         `db:"id"`
	JobID        string         `db:"job_id"`
	ApplicantUID string         `db:"applicant_uid"`
	CVID         string         `db:"cv_id"`
	CoverLetter  sql.NullString `db:"cover_letter"`
	Status       string         `db:"status"`
	AppliedAt    time.Time      `db:"applied_at"`
	ReviewedAt   sql.NullTime   `db:"reviewed_at"`
}

// ApplicationWithJob is an application row joined with its job posting,
// carrying everything a status transition and its notification need.
type ApplicationWithJob struct {
	Application
	JobTitle     string `db:"job_title"`
	RecruiterUID string `db:"recruiter_uid"`
}

type Notification struct {
	ID                   string         `db:"id"`
	UserUID              string         `db:"user_uid"`
	Title                string         `db:"title"`
	Message              string         `db:"message"`
	Type                 string         `db:"type"`
	RelatedJobID         sql.NullString `db:"related_job_id"`
	RelatedApplicationID sql.NullString `db:"related_application_id"`
	IsRead               bool           `db:"is_read"`
	CreatedAt            time.Time      `db:"created_at"`
}

type DeviceToken struct {
	ID         string    `db:"id"`
	UserUID    string    `db:"user_uid"`
	FCMToken   string    `db:"fcm_token"`
	DeviceID   string    `db:"device_id"`
	DeviceType string    `db:"device_type"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type SavedJob struct {
	ID        string    `db:"id"`
	UserUID   string    `db:"user_uid"`
	JobID     string    `db:"job_id"`
	CreatedAt time.Time `db:"created_at"`
}
