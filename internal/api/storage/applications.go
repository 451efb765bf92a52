package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, applicant_uid, cv_id,
			cover_letter, status, applied_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		app.ID,
		app.JobID,
		app.ApplicantUID,
		app.CVID,
		app.CoverLetter,
		app.Status,
		app.AppliedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (s *Storage) HasApplication(ctx context.Context, jobID, applicantUID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE job_id = $1 AND applicant_uid = $2
		)
	`

	if err := s.db.GetContext(ctx, &exists, query, jobID, applicantUID); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// GetApplicationWithJob fetches an application joined with its job posting's
// title and owning recruiter. This is the single read a status transition needs.
func (s *Storage) GetApplicationWithJob(ctx context.Context, applicationID string) (*model.ApplicationWithJob, error) {
	var app model.ApplicationWithJob
	query := `
		SELECT
			a.id, a.job_id, a.applicant_uid, a.cv_id,
			a.cover_letter, a.status, a.applied_at, a.reviewed_at,
			j.title AS job_title, j.recruiter_uid
		FROM applications a
		JOIN job_postings j ON j.id = a.job_id
		WHERE a.id = $1
	`

	if err := s.db.GetContext(ctx, &app, query, applicationID); err != nil {
		return nil, mapNotFound(err)
	}

	return &app, nil
}

func (s *Storage) UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, reviewedAt time.Time) error {
	query := `
		UPDATE applications
		SET status = $1,
		    reviewed_at = $2
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, string(status), reviewedAt, applicationID)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (s *Storage) ListUserApplications(ctx context.Context, applicantUID string) ([]model.Application, error) {
	query := `
		SELECT id, job_id, applicant_uid, cv_id, cover_letter, status, applied_at, reviewed_at
		FROM applications
		WHERE applicant_uid = $1
		ORDER BY applied_at DESC
	`

	var apps []model.Application
	if err := s.db.SelectContext(ctx, &apps, query, applicantUID); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

func (s *Storage) ListRecruiterApplications(ctx context.Context, recruiterUID, jobID string) ([]model.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_uid, a.cv_id, a.cover_letter, a.status, a.applied_at, a.reviewed_at
		FROM applications a
		JOIN job_postings j ON j.id = a.job_id
		WHERE j.recruiter_uid = $1
	`
	args := []interface{}{recruiterUID}

	if jobID != "" {
		query += " AND a.job_id = $2"
		args = append(args, jobID)
	}

	query += " ORDER BY a.applied_at DESC"

	var apps []model.Application
	if err := s.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list recruiter applications: %w", err)
	}

	return apps, nil
}
