package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/handler"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileColumns = []string{
	"firebase_uid", "user_type", "first_name", "last_name", "email", "phone",
	"location", "company_name", "bio", "profile_image_url", "created_at", "updated_at",
}

func newMockStorage(t *testing.T) (*storage.Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return storage.NewStorageWithDB(sqlx.NewDb(db, "postgres")), mock
}

func profileRow(uid, userType string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(profileColumns).
		AddRow(uid, userType, "Ada", "Lovelace", "ada@example.com",
			nil, nil, nil, nil, nil, now, now)
}

// withIdentity stands in for RequireAuth with an already verified caller.
func withIdentity(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handler.CtxIdentityKey, &domain.Identity{SubjectID: uid, Email: uid + "@example.com"})
		c.Next()
	}
}

func setupRoleRouter(st *storage.Storage, pre gin.HandlerFunc, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	group := r.Group("/")
	if pre != nil {
		group.Use(pre)
	}
	group.Use(RequireRole(logger, st, roles...))
	group.GET("/protected", func(c *gin.Context) {
		caller, _ := handler.CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"uid": caller.SubjectID, "role": string(caller.Role)})
	})
	return r
}

func TestRequireRole(t *testing.T) {
	t.Run("resolves the caller and passes an allowed role", func(t *testing.T) {
		st, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT firebase_uid, user_type[\s\S]+FROM user_profiles`).
			WithArgs("recruiter-1").
			WillReturnRows(profileRow("recruiter-1", "recruiter"))

		r := setupRoleRouter(st, withIdentity("recruiter-1"), domain.RoleRecruiter)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"recruiter"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile is not found, not a denial", func(t *testing.T) {
		st, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT firebase_uid, user_type[\s\S]+FROM user_profiles`).
			WithArgs("unregistered-1").
			WillReturnRows(sqlmock.NewRows(profileColumns))

		r := setupRoleRouter(st, withIdentity("unregistered-1"), domain.RoleRecruiter)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User profile not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		st, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT firebase_uid, user_type[\s\S]+FROM user_profiles`).
			WithArgs("seeker-1").
			WillReturnRows(profileRow("seeker-1", "job_seeker"))

		r := setupRoleRouter(st, withIdentity("seeker-1"), domain.RoleRecruiter)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied for this role")
	})

	t.Run("any registered profile passes with no roles listed", func(t *testing.T) {
		st, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT firebase_uid, user_type[\s\S]+FROM user_profiles`).
			WithArgs("seeker-1").
			WillReturnRows(profileRow("seeker-1", "job_seeker"))

		r := setupRoleRouter(st, withIdentity("seeker-1"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		st, _ := newMockStorage(t)

		r := setupRoleRouter(st, nil, domain.RoleRecruiter)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown stored role is an internal error", func(t *testing.T) {
		st, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT firebase_uid, user_type[\s\S]+FROM user_profiles`).
			WithArgs("weird-1").
			WillReturnRows(profileRow("weird-1", "superuser"))

		r := setupRoleRouter(st, withIdentity("weird-1"), domain.RoleRecruiter)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
