package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/application"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJobID = "11111111-1111-1111-1111-111111111111"
	testCVID  = "22222222-2222-2222-2222-222222222222"
	testAppID = "33333333-3333-3333-3333-333333333333"
)

type fakeApplicationService struct {
	submitApp  *model.Application
	submitErr  error
	submitUID  string
	submitIn   application.SubmitInput
	transApp   *model.ApplicationWithJob
	transErr   error
	transTo    domain.ApplicationStatus
	withdrawn  *model.ApplicationWithJob
	withdrawEr error
}

func (f *fakeApplicationService) Submit(ctx context.Context, applicantUID string, in application.SubmitInput) (*model.Application, error) {
	f.submitUID = applicantUID
	f.submitIn = in
	return f.submitApp, f.submitErr
}

func (f *fakeApplicationService) Transition(ctx context.Context, applicationID, recruiterUID string, newStatus domain.ApplicationStatus) (*model.ApplicationWithJob, error) {
	f.transTo = newStatus
	return f.transApp, f.transErr
}

func (f *fakeApplicationService) Withdraw(ctx context.Context, applicationID, applicantUID string) (*model.ApplicationWithJob, error) {
	return f.withdrawn, f.withdrawEr
}

func testDeps(apps ApplicationService) *Dependencies {
	return &Dependencies{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Applications: apps,
	}
}

// withCaller injects the caller the role middleware would have resolved.
func withCaller(caller domain.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxCallerKey, caller)
		c.Next()
	}
}

func seekerCaller() domain.Caller {
	return domain.Caller{SubjectID: "seeker-1", Role: domain.RoleJobSeeker}
}

func recruiterCaller() domain.Caller {
	return domain.Caller{SubjectID: "recruiter-1", Role: domain.RoleRecruiter}
}

func setupApplicationRouter(apps ApplicationService, caller domain.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewApplicationHandler(testDeps(apps))

	r := gin.New()
	r.POST("/applications", withCaller(caller), h.Submit)
	r.PATCH("/applications/:id/status", withCaller(caller), h.UpdateStatus)
	r.DELETE("/applications/:id", withCaller(caller), h.Withdraw)
	return r
}

func TestApplicationHandler_Submit(t *testing.T) {
	t.Run("creates the application", func(t *testing.T) {
		svc := &fakeApplicationService{
			submitApp: &model.Application{
				ID:           testAppID,
				JobID:        testJobID,
				ApplicantUID: "seeker-1",
				CVID:         testCVID,
				Status:       "pending",
				AppliedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		}
		r := setupApplicationRouter(svc, seekerCaller())

		body := `{"job_id":"` + testJobID + `","cv_id":"` + testCVID + `","cover_letter":"Hello"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "seeker-1", svc.submitUID)
		assert.Equal(t, "Hello", svc.submitIn.CoverLetter)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testAppID, resp["id"])
		assert.Equal(t, "pending", resp["status"])
	})

	t.Run("rejects a malformed job id", func(t *testing.T) {
		svc := &fakeApplicationService{}
		r := setupApplicationRouter(svc, seekerCaller())

		body := `{"job_id":"not-a-uuid","cv_id":"` + testCVID + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate application maps to conflict", func(t *testing.T) {
		svc := &fakeApplicationService{submitErr: domain.ErrDuplicate}
		r := setupApplicationRouter(svc, seekerCaller())

		body := `{"job_id":"` + testJobID + `","cv_id":"` + testCVID + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("closed job maps to not found", func(t *testing.T) {
		svc := &fakeApplicationService{submitErr: domain.ErrNotFound}
		r := setupApplicationRouter(svc, seekerCaller())

		body := `{"job_id":"` + testJobID + `","cv_id":"` + testCVID + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	transitioned := &model.ApplicationWithJob{
		Application: model.Application{
			ID:           testAppID,
			JobID:        testJobID,
			ApplicantUID: "seeker-1",
			CVID:         testCVID,
			Status:       "shortlisted",
			AppliedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		JobTitle:     "Backend Engineer",
		RecruiterUID: "recruiter-1",
	}

	t.Run("transitions the application", func(t *testing.T) {
		svc := &fakeApplicationService{transApp: transitioned}
		r := setupApplicationRouter(svc, recruiterCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+testAppID+"/status",
			strings.NewReader(`{"status":"shortlisted"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.StatusShortlisted, svc.transTo)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "shortlisted", resp["status"])
	})

	t.Run("unknown status value is a bad request", func(t *testing.T) {
		svc := &fakeApplicationService{}
		r := setupApplicationRouter(svc, recruiterCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+testAppID+"/status",
			strings.NewReader(`{"status":"on_hold"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-uuid id is a bad request", func(t *testing.T) {
		svc := &fakeApplicationService{}
		r := setupApplicationRouter(svc, recruiterCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/applications/abc/status",
			strings.NewReader(`{"status":"shortlisted"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("foreign application maps to forbidden", func(t *testing.T) {
		svc := &fakeApplicationService{transErr: domain.ErrForbidden}
		r := setupApplicationRouter(svc, recruiterCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+testAppID+"/status",
			strings.NewReader(`{"status":"shortlisted"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("terminal application maps to conflict", func(t *testing.T) {
		svc := &fakeApplicationService{transErr: domain.ErrTerminalStatus}
		r := setupApplicationRouter(svc, recruiterCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+testAppID+"/status",
			strings.NewReader(`{"status":"accepted"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestApplicationHandler_Withdraw(t *testing.T) {
	t.Run("withdraws the application", func(t *testing.T) {
		svc := &fakeApplicationService{
			withdrawn: &model.ApplicationWithJob{
				Application: model.Application{
					ID:           testAppID,
					JobID:        testJobID,
					ApplicantUID: "seeker-1",
					CVID:         testCVID,
					Status:       "withdrawn",
					AppliedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				},
				JobTitle:     "Backend Engineer",
				RecruiterUID: "recruiter-1",
			},
		}
		r := setupApplicationRouter(svc, seekerCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/applications/"+testAppID, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "withdrawn", resp["status"])
	})

	t.Run("already terminal maps to conflict", func(t *testing.T) {
		svc := &fakeApplicationService{withdrawEr: domain.ErrTerminalStatus}
		r := setupApplicationRouter(svc, seekerCaller())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/applications/"+testAppID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing caller is unauthorized", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		h := NewApplicationHandler(testDeps(&fakeApplicationService{}))
		r := gin.New()
		r.DELETE("/applications/:id", h.Withdraw)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/applications/"+testAppID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
