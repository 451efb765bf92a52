package storage

import (
	"context"
	"fmt"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"

	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

type JobFilter struct {
	Query           string
	Location        string
	JobType         string
	SalaryMin       int64
	SalaryMax       int64
	ExperienceLevel string
	Industry        string
	Page            int
	Limit           int
}

func (s *Storage) SearchJobs(ctx context.Context, filter JobFilter) ([]model.JobPosting, int, error) {
	where := " WHERE is_active = TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Query != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR company_name ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Query+"%")
		argIdx++
	}

	if filter.Location != "" {
		where += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}

	if filter.JobType != "" {
		where += fmt.Sprintf(" AND job_type = $%d", argIdx)
		args = append(args, filter.JobType)
		argIdx++
	}

	if filter.SalaryMin > 0 {
		where += fmt.Sprintf(" AND salary_max >= $%d", argIdx)
		args = append(args, filter.SalaryMin)
		argIdx++
	}

	if filter.SalaryMax > 0 {
		where += fmt.Sprintf(" AND salary_min <= $%d", argIdx)
		args = append(args, filter.SalaryMax)
		argIdx++
	}

	if filter.ExperienceLevel != "" {
		where += fmt.Sprintf(" AND experience_level = $%d", argIdx)
		args = append(args, filter.ExperienceLevel)
		argIdx++
	}

	if filter.Industry != "" {
		where += fmt.Sprintf(" AND industry ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Industry+"%")
		argIdx++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM job_postings" + where
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `
		SELECT id, recruiter_uid, title, description, company_name, location, job_type,
		       salary_min, salary_max, experience_level, industry, requirements, benefits,
		       is_active, created_at, updated_at
		FROM job_postings` + where

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var jobs []model.JobPosting
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}

	return jobs, total, nil
}

func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.JobPosting, error) {
	var job model.JobPosting
	query := `
		SELECT id, recruiter_uid, title, description, company_name, location, job_type,
		       salary_min, salary_max, experience_level, industry, requirements, benefits,
		       is_active, created_at, updated_at
		FROM job_postings
		WHERE id = $1
	`

	if err := s.db.GetContext(ctx, &job, query, jobID); err != nil {
		return nil, mapNotFound(err)
	}

	return &job, nil
}

// GetActiveJobByID returns the job only while it accepts applications.
func (s *Storage) GetActiveJobByID(ctx context.Context, jobID string) (*model.JobPosting, error) {
	var job model.JobPosting
	query := `
		SELECT id, recruiter_uid, title, description, company_name, location, job_type,
		       salary_min, salary_max, experience_level, industry, requirements, benefits,
		       is_active, created_at, updated_at
		FROM job_postings
		WHERE id = $1 AND is_active = TRUE
	`

	if err := s.db.GetContext(ctx, &job, query, jobID); err != nil {
		return nil, mapNotFound(err)
	}

	return &job, nil
}

func (s *Storage) CreateJob(ctx context.Context, job *model.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			id, recruiter_uid, title, description, company_name, location, job_type,
			salary_min, salary_max, experience_level, industry, requirements, benefits,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.ID,
		job.RecruiterUID,
		job.Title,
		job.Description,
		job.CompanyName,
		job.Location,
		job.JobType,
		job.SalaryMin,
		job.SalaryMax,
		job.ExperienceLevel,
		job.Industry,
		job.Requirements,
		job.Benefits,
		job.IsActive,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// UpdateJob persists a job owned by recruiterUID. Ownership is enforced in the
// predicate so a non-owner update reports NOT_FOUND rather than leaking rows.
func (s *Storage) UpdateJob(ctx context.Context, job *model.JobPosting, recruiterUID string) error {
	query := `
		UPDATE job_postings
		SET title = $1, description = $2, company_name = $3, location = $4, job_type = $5,
		    salary_min = $6, salary_max = $7, experience_level = $8, industry = $9,
		    requirements = $10, benefits = $11, is_active = $12, updated_at = $13
		WHERE id = $14 AND recruiter_uid = $15
	`

	res, err := s.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Description,
		job.CompanyName,
		job.Location,
		job.JobType,
		job.SalaryMin,
		job.SalaryMax,
		job.ExperienceLevel,
		job.Industry,
		job.Requirements,
		job.Benefits,
		job.IsActive,
		job.UpdatedAt,
		job.ID,
		recruiterUID,
	)

	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
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

func (s *Storage) DeleteJob(ctx context.Context, jobID, recruiterUID string) error {
	query := `DELETE FROM job_postings WHERE id = $1 AND recruiter_uid = $2`

	res, err := s.db.ExecContext(ctx, query, jobID, recruiterUID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
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
