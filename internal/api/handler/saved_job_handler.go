package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/dto"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SavedJobHandler handles saved job HTTP requests
type SavedJobHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

// NewSavedJobHandler creates a new SavedJobHandler instance
func NewSavedJobHandler(deps *Dependencies) *SavedJobHandler {
	return &SavedJobHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// List handles GET /api/v1/saved-jobs
func (h *SavedJobHandler) List(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	saved, err := h.storage.ListSavedJobs(c.Request.Context(), caller.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.SavedJobDTO, len(saved))
	for i, s := range saved {
		out[i] = dto.SavedJobDTO{
			ID:        s.ID,
			JobID:     s.JobID,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, out)
}

// Save handles POST /api/v1/saved-jobs
func (h *SavedJobHandler) Save(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Only active postings can be saved.
	if _, err := h.storage.GetActiveJobByID(c.Request.Context(), req.JobID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	saved := model.SavedJob{
		ID:        uuid.New().String(),
		UserUID:   caller.SubjectID,
		JobID:     req.JobID,
		CreatedAt: time.Now(),
	}

	if err := h.storage.SaveJob(c.Request.Context(), &saved); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SavedJobDTO{
		ID:        saved.ID,
		JobID:     saved.JobID,
		CreatedAt: saved.CreatedAt.Format(time.RFC3339),
	})
}

// Unsave handles DELETE /api/v1/saved-jobs/:jobId
func (h *SavedJobHandler) Unsave(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID := c.Param("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId must be a valid UUID"})
		return
	}

	if err := h.storage.UnsaveJob(c.Request.Context(), caller.SubjectID, jobID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Check handles GET /api/v1/saved-jobs/:jobId
func (h *SavedJobHandler) Check(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID := c.Param("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId must be a valid UUID"})
		return
	}

	saved, err := h.storage.IsJobSaved(c.Request.Context(), caller.SubjectID, jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "saved": saved})
}
