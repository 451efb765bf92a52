package storage

import (
	"context"
	"fmt"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

func (s *Storage) ListCVs(ctx context.Context, userUID string) ([]model.CV, error) {
	query := `
		SELECT id, user_uid, file_name, file_url, file_size, is_primary, created_at, updated_at
		FROM cvs
		WHERE user_uid = $1
		ORDER BY created_at DESC
	`

	var cvs []model.CV
	if err := s.db.SelectContext(ctx, &cvs, query, userUID); err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}

	return cvs, nil
}

func (s *Storage) GetCVByID(ctx context.Context, cvID string) (*model.CV, error) {
	var cv model.CV
	query := `
		SELECT id, user_uid, file_name, file_url, file_size, is_primary, created_at, updated_at
		FROM cvs
		WHERE id = $1
	`

	if err := s.db.GetContext(ctx, &cv, query, cvID); err != nil {
		return nil, mapNotFound(err)
	}

	return &cv, nil
}

func (s *Storage) CreateCV(ctx context.Context, cv *model.CV) error {
	query := `
		INSERT INTO cvs (id, user_uid, file_name, file_url, file_size, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		cv.ID,
		cv.UserUID,
		cv.FileName,
		cv.FileURL,
		cv.FileSize,
		cv.IsPrimary,
		cv.CreatedAt,
		cv.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}

	return nil
}

func (s *Storage) UpdateCV(ctx context.Context, cv *model.CV, userUID string) error {
	query := `
		UPDATE cvs
		SET file_name = $1, is_primary = $2, updated_at = $3
		WHERE id = $4 AND user_uid = $5
	`

	res, err := s.db.ExecContext(ctx, query, cv.FileName, cv.IsPrimary, cv.UpdatedAt, cv.ID, userUID)
	if err != nil {
		return fmt.Errorf("failed to update cv: %w", err)
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

// ClearPrimaryCV unsets the primary flag on all of a user's CVs, used before
// promoting another one.
func (s *Storage) ClearPrimaryCV(ctx context.Context, userUID string) error {
	query := `UPDATE cvs SET is_primary = FALSE WHERE user_uid = $1 AND is_primary = TRUE`

	if _, err := s.db.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("failed to clear primary cv: %w", err)
	}

	return nil
}

func (s *Storage) DeleteCV(ctx context.Context, cvID, userUID string) error {
	query := `DELETE FROM cvs WHERE id = $1 AND user_uid = $2`

	res, err := s.db.ExecContext(ctx, query, cvID, userUID)
	if err != nil {
		return fmt.Errorf("failed to delete cv: %w", err)
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

// CVLinkedToRecruiter reports whether the CV is attached to an application
// for a job owned by the recruiter. This backs recruiter-via-application
// access to CVs they did not upload.
func (s *Storage) CVLinkedToRecruiter(ctx context.Context, cvID, recruiterUID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM applications a
			JOIN job_postings j ON j.id = a.job_id
			WHERE a.cv_id = $1 AND j.recruiter_uid = $2
		)
	`

	if err := s.db.GetContext(ctx, &exists, query, cvID, recruiterUID); err != nil {
		return false, fmt.Errorf("failed to check cv linkage: %w", err)
	}

	return exists, nil
}
