package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/access"
	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/dto"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/careerconnect/careerconnect-be/internal/application"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApplicationHandler handles application-related HTTP requests
type ApplicationHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
	apps    ApplicationService
	guard   *access.Guard
}

// NewApplicationHandler creates a new ApplicationHandler instance
func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
		apps:    deps.Applications,
		guard:   deps.Guard,
	}
}

// Submit handles POST /api/v1/applications
// Submits a job application on behalf of the authenticated job seeker.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	app, err := h.apps.Submit(c.Request.Context(), caller.SubjectID, application.SubmitInput{
		JobID:       req.JobID,
		CVID:        req.CVID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toApplicationDTO(app))
}

// UpdateStatus handles PATCH /api/v1/applications/:id/status
// Transitions an application's status on behalf of the job's owning recruiter.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	applicationID := c.Param("id")
	if _, err := uuid.Parse(applicationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	app, err := h.apps.Transition(c.Request.Context(), applicationID, caller.SubjectID, status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationDTO(&app.Application))
}

// Withdraw handles DELETE /api/v1/applications/:id
// Withdraws the caller's own application.
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	applicationID := c.Param("id")
	if _, err := uuid.Parse(applicationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	app, err := h.apps.Withdraw(c.Request.Context(), applicationID, caller.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationDTO(&app.Application))
}

// ListMine handles GET /api/v1/applications/me
// Lists the authenticated job seeker's applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	apps, err := h.storage.ListUserApplications(c.Request.Context(), caller.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationDTOs(apps))
}

// ListForRecruiter handles GET /api/v1/applications/received
// Lists applications across the recruiter's jobs, optionally filtered by job.
func (h *ApplicationHandler) ListForRecruiter(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListRecruiterApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	apps, err := h.storage.ListRecruiterApplications(c.Request.Context(), caller.SubjectID, req.JobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationDTOs(apps))
}

// Get handles GET /api/v1/applications/:id
// Returns one application to its applicant or the job's owning recruiter.
func (h *ApplicationHandler) Get(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	applicationID := c.Param("id")
	if _, err := uuid.Parse(applicationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	app, err := h.storage.GetApplicationWithJob(c.Request.Context(), applicationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res := access.ApplicationResource(app.ID, app.ApplicantUID, app.RecruiterUID)
	decision, err := h.guard.Authorize(c.Request.Context(), caller, res, access.ActionView)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	c.JSON(http.StatusOK, toApplicationDTO(&app.Application))
}

func toApplicationDTO(app *model.Application) dto.ApplicationDTO {
	out := dto.ApplicationDTO{
		ID:           app.ID,
		JobID:        app.JobID,
		ApplicantUID: app.ApplicantUID,
		CVID:         app.CVID,
		Status:       app.Status,
		AppliedAt:    app.AppliedAt.Format(time.RFC3339),
	}
	if app.CoverLetter.Valid {
		out.CoverLetter = app.CoverLetter.String
	}
	if app.ReviewedAt.Valid {
		out.ReviewedAt = app.ReviewedAt.Time.Format(time.RFC3339)
	}
	return out
}

func toApplicationDTOs(apps []model.Application) []dto.ApplicationDTO {
	out := make([]dto.ApplicationDTO, len(apps))
	for i := range apps {
		out[i] = toApplicationDTO(&apps[i])
	}
	return out
}
