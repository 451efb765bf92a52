package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStorageWithDB(sqlx.NewDb(db, "postgres")), mock
}

func TestStorage_CreateApplication(t *testing.T) {
	t.Run("inserts the row", func(t *testing.T) {
		st, mock := newMockStorage(t)

		app := &model.Application{
			ID:           "app-1",
			JobID:        "job-1",
			ApplicantUID: "seeker-1",
			CVID:         "cv-1",
			Status:       "pending",
			AppliedAt:    time.Now(),
		}

		mock.ExpectExec(`INSERT INTO applications`).
			WithArgs(app.ID, app.JobID, app.ApplicantUID, app.CVID, app.CoverLetter, app.Status, app.AppliedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := st.CreateApplication(context.Background(), app)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectExec(`INSERT INTO applications`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := st.CreateApplication(context.Background(), &model.Application{ID: "app-1"})

		assert.ErrorIs(t, err, domain.ErrDuplicate)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_HasApplication(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("job-1", "seeker-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := st.HasApplication(context.Background(), "job-1", "seeker-1")

	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_GetApplicationWithJob(t *testing.T) {
	t.Run("joins the job title and recruiter", func(t *testing.T) {
		st, mock := newMockStorage(t)

		appliedAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{
			"id", "job_id", "applicant_uid", "cv_id",
			"cover_letter", "status", "applied_at", "reviewed_at",
			"job_title", "recruiter_uid",
		}).AddRow(
			"app-1", "job-1", "seeker-1", "cv-1",
			nil, "pending", appliedAt, nil,
			"Backend Engineer", "recruiter-1",
		)

		mock.ExpectQuery(`SELECT[\s\S]+FROM applications a[\s\S]+JOIN job_postings j`).
			WithArgs("app-1").
			WillReturnRows(rows)

		app, err := st.GetApplicationWithJob(context.Background(), "app-1")

		require.NoError(t, err)
		assert.Equal(t, "app-1", app.ID)
		assert.Equal(t, "Backend Engineer", app.JobTitle)
		assert.Equal(t, "recruiter-1", app.RecruiterUID)
		assert.False(t, app.ReviewedAt.Valid)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectQuery(`SELECT[\s\S]+FROM applications a`).
			WithArgs("app-404").
			WillReturnError(sql.ErrNoRows)

		_, err := st.GetApplicationWithJob(context.Background(), "app-404")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_UpdateApplicationStatus(t *testing.T) {
	t.Run("updates status and reviewed_at", func(t *testing.T) {
		st, mock := newMockStorage(t)

		reviewedAt := time.Now()
		mock.ExpectExec(`UPDATE applications`).
			WithArgs("shortlisted", reviewedAt, "app-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := st.UpdateApplicationStatus(context.Background(), "app-1", domain.StatusShortlisted, reviewedAt)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectExec(`UPDATE applications`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.UpdateApplicationStatus(context.Background(), "app-404", domain.StatusShortlisted, time.Now())

		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_ListRecruiterApplications(t *testing.T) {
	t.Run("filters by job when job id is given", func(t *testing.T) {
		st, mock := newMockStorage(t)

		rows := sqlmock.NewRows([]string{
			"id", "job_id", "applicant_uid", "cv_id", "cover_letter", "status", "applied_at", "reviewed_at",
		}).AddRow("app-1", "job-1", "seeker-1", "cv-1", nil, "pending", time.Now(), nil)

		mock.ExpectQuery(`FROM applications a[\s\S]+JOIN job_postings j[\s\S]+AND a\.job_id = \$2`).
			WithArgs("recruiter-1", "job-1").
			WillReturnRows(rows)

		apps, err := st.ListRecruiterApplications(context.Background(), "recruiter-1", "job-1")

		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "app-1", apps[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lists across all jobs without a filter", func(t *testing.T) {
		st, mock := newMockStorage(t)

		rows := sqlmock.NewRows([]string{
			"id", "job_id", "applicant_uid", "cv_id", "cover_letter", "status", "applied_at", "reviewed_at",
		}).
			AddRow("app-1", "job-1", "seeker-1", "cv-1", nil, "pending", time.Now(), nil).
			AddRow("app-2", "job-2", "seeker-2", "cv-2", nil, "reviewed", time.Now(), nil)

		mock.ExpectQuery(`FROM applications a[\s\S]+JOIN job_postings j`).
			WithArgs("recruiter-1").
			WillReturnRows(rows)

		apps, err := st.ListRecruiterApplications(context.Background(), "recruiter-1", "")

		require.NoError(t, err)
		assert.Len(t, apps, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
