package storage

import (
	"context"
	"fmt"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

func (s *Storage) ListSavedJobs(ctx context.Context, userUID string) ([]model.SavedJob, error) {
	query := `
		SELECT id, user_uid, job_id, created_at
		FROM saved_jobs
		WHERE user_uid = $1
		ORDER BY created_at DESC
	`

	var saved []model.SavedJob
	if err := s.db.SelectContext(ctx, &saved, query, userUID); err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}

	return saved, nil
}

func (s *Storage) SaveJob(ctx context.Context, saved *model.SavedJob) error {
	query := `
		INSERT INTO saved_jobs (id, user_uid, job_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, saved.ID, saved.UserUID, saved.JobID, saved.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to save job: %w", err)
	}

	return nil
}

func (s *Storage) UnsaveJob(ctx context.Context, userUID, jobID string) error {
	query := `DELETE FROM saved_jobs WHERE user_uid = $1 AND job_id = $2`

	res, err := s.db.ExecContext(ctx, query, userUID, jobID)
	if err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
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

func (s *Storage) IsJobSaved(ctx context.Context, userUID, jobID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM saved_jobs WHERE user_uid = $1 AND job_id = $2
		)
	`

	if err := s.db.GetContext(ctx, &exists, query, userUID, jobID); err != nil {
		return false, fmt.Errorf("failed to check saved job: %w", err)
	}

	return exists, nil
}
