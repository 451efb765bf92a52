package storage

import (
	"context"
	"fmt"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

func (s *Storage) GetProfile(ctx context.Context, firebaseUID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	query := `
		SELECT firebase_uid, user_type, first_name, last_name, email, phone,
		       location, company_name, bio, profile_image_url, created_at, updated_at
		FROM user_profiles
		WHERE firebase_uid = $1
	`

	if err := s.db.GetContext(ctx, &profile, query, firebaseUID); err != nil {
		return nil, mapNotFound(err)
	}

	return &profile, nil
}

func (s *Storage) CreateProfile(ctx context.Context, p *model.UserProfile) error {
	query := `
		INSERT INTO user_profiles (
			firebase_uid, user_type, first_name, last_name, email, phone,
			location, company_name, bio, profile_image_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		p.FirebaseUID,
		p.UserType,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		p.Location,
		p.CompanyName,
		p.Bio,
		p.ProfileImageURL,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (s *Storage) UpdateProfile(ctx context.Context, p *model.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET first_name = $1, last_name = $2, phone = $3, location = $4,
		    company_name = $5, bio = $6, profile_image_url = $7, updated_at = $8
		WHERE firebase_uid = $9
	`

	res, err := s.db.ExecContext(
		ctx,
		query,
		p.FirstName,
		p.LastName,
		p.Phone,
		p.Location,
		p.CompanyName,
		p.Bio,
		p.ProfileImageURL,
		p.UpdatedAt,
		p.FirebaseUID,
	)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
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
