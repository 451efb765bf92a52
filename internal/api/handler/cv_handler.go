package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/access"
	"github.com/careerconnect/careerconnect-be/internal/api/dto"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CVHandler handles CV HTTP requests
type CVHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
	guard   *access.Guard
}

// NewCVHandler creates a new CVHandler instance
func NewCVHandler(deps *Dependencies) *CVHandler {
	return &CVHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
		guard:   deps.Guard,
	}
}

// List handles GET /api/v1/cvs
func (h *CVHandler) List(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cvs, err := h.storage.ListCVs(c.Request.Context(), caller.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.CVDTO, len(cvs))
	for i := range cvs {
		out[i] = toCVDTO(&cvs[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/v1/cvs/:id
// Owner access always; recruiters only through an application linking this CV
// to one of their jobs.
func (h *CVHandler) Get(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cvID := c.Param("id")
	if _, err := uuid.Parse(cvID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	cv, err := h.storage.GetCVByID(c.Request.Context(), cvID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	decision, err := h.guard.Authorize(c.Request.Context(), caller, access.CVResource(cv.ID, cv.UserUID), access.ActionView)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	c.JSON(http.StatusOK, toCVDTO(cv))
}

// Create handles POST /api/v1/cvs
func (h *CVHandler) Create(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.IsPrimary {
		if err := h.storage.ClearPrimaryCV(c.Request.Context(), caller.SubjectID); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	now := time.Now()
	cv := model.CV{
		ID:        uuid.New().String(),
		UserUID:   caller.SubjectID,
		FileName:  req.FileName,
		FileURL:   req.FileURL,
		IsPrimary: req.IsPrimary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.FileSize != nil {
		cv.FileSize = sql.NullInt64{Int64: *req.FileSize, Valid: true}
	}

	if err := h.storage.CreateCV(c.Request.Context(), &cv); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toCVDTO(&cv))
}

// Update handles PUT /api/v1/cvs/:id
func (h *CVHandler) Update(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cvID := c.Param("id")
	if _, err := uuid.Parse(cvID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req dto.UpdateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cv, err := h.storage.GetCVByID(c.Request.Context(), cvID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cv.UserUID != caller.SubjectID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if req.FileName != nil {
		cv.FileName = *req.FileName
	}
	if req.IsPrimary != nil {
		if *req.IsPrimary && !cv.IsPrimary {
			if err := h.storage.ClearPrimaryCV(c.Request.Context(), caller.SubjectID); err != nil {
				respondError(c, h.logger, err)
				return
			}
		}
		cv.IsPrimary = *req.IsPrimary
	}
	cv.UpdatedAt = time.Now()

	if err := h.storage.UpdateCV(c.Request.Context(), cv, caller.SubjectID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCVDTO(cv))
}

// Delete handles DELETE /api/v1/cvs/:id
func (h *CVHandler) Delete(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cvID := c.Param("id")
	if _, err := uuid.Parse(cvID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.storage.DeleteCV(c.Request.Context(), cvID, caller.SubjectID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toCVDTO(cv *model.CV) dto.CVDTO {
	out := dto.CVDTO{
		ID:        cv.ID,
		UserUID:   cv.UserUID,
		FileName:  cv.FileName,
		FileURL:   cv.FileURL,
		IsPrimary: cv.IsPrimary,
		CreatedAt: cv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cv.UpdatedAt.Format(time.RFC3339),
	}
	if cv.FileSize.Valid {
		v := cv.FileSize.Int64
		out.FileSize = &v
	}
	return out
}
