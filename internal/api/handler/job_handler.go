package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/dto"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobHandler handles job posting HTTP requests
type JobHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// Search handles GET /api/v1/jobs
// Public search over active job postings with filtering and pagination.
func (h *JobHandler) Search(c *gin.Context) {
	var req dto.SearchJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	jobs, total, err := h.storage.SearchJobs(c.Request.Context(), storage.JobFilter{
		Query:           req.Query,
		Location:        req.Location,
		JobType:         req.JobType,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		ExperienceLevel: req.ExperienceLevel,
		Industry:        req.Industry,
		Page:            req.Page,
		Limit:           req.Limit,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	jobDTOs := make([]dto.JobDTO, len(jobs))
	for i := range jobs {
		jobDTOs[i] = toJobDTO(&jobs[i])
	}

	totalPages := (total + req.Limit - 1) / req.Limit

	c.JSON(http.StatusOK, dto.SearchJobsResponse{
		Jobs: jobDTOs,
		Pagination: dto.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Get handles GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	job, err := h.storage.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// Create handles POST /api/v1/jobs (recruiter only)
func (h *JobHandler) Create(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	job := model.JobPosting{
		ID:           uuid.New().String(),
		RecruiterUID: caller.SubjectID,
		Title:        req.Title,
		Description:  req.Description,
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		JobType:      req.JobType,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.SalaryMin != nil {
		job.SalaryMin = sql.NullInt64{Int64: *req.SalaryMin, Valid: true}
	}
	if req.SalaryMax != nil {
		job.SalaryMax = sql.NullInt64{Int64: *req.SalaryMax, Valid: true}
	}
	job.ExperienceLevel = nullString(req.ExperienceLevel)
	job.Industry = nullString(req.Industry)
	job.Requirements = nullString(req.Requirements)
	job.Benefits = nullString(req.Benefits)

	if err := h.storage.CreateJob(c.Request.Context(), &job); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toJobDTO(&job))
}

// Update handles PUT /api/v1/jobs/:id (recruiter only, own jobs)
func (h *JobHandler) Update(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job, err := h.storage.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if job.RecruiterUID != caller.SubjectID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	applyJobUpdate(job, &req)
	job.UpdatedAt = time.Now()

	if err := h.storage.UpdateJob(c.Request.Context(), job, caller.SubjectID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(job))
}

// Delete handles DELETE /api/v1/jobs/:id (recruiter only, own jobs)
func (h *JobHandler) Delete(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.storage.DeleteJob(c.Request.Context(), jobID, caller.SubjectID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func applyJobUpdate(job *model.JobPosting, req *dto.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.CompanyName != nil {
		job.CompanyName = *req.CompanyName
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.SalaryMin != nil {
		job.SalaryMin = sql.NullInt64{Int64: *req.SalaryMin, Valid: true}
	}
	if req.SalaryMax != nil {
		job.SalaryMax = sql.NullInt64{Int64: *req.SalaryMax, Valid: true}
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = nullString(*req.ExperienceLevel)
	}
	if req.Industry != nil {
		job.Industry = nullString(*req.Industry)
	}
	if req.Requirements != nil {
		job.Requirements = nullString(*req.Requirements)
	}
	if req.Benefits != nil {
		job.Benefits = nullString(*req.Benefits)
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
}

func toJobDTO(job *model.JobPosting) dto.JobDTO {
	out := dto.JobDTO{
		ID:           job.ID,
		RecruiterUID: job.RecruiterUID,
		Title:        job.Title,
		Description:  job.Description,
		CompanyName:  job.CompanyName,
		Location:     job.Location,
		JobType:      job.JobType,
		IsActive:     job.IsActive,
		CreatedAt:    job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    job.UpdatedAt.Format(time.RFC3339),
	}
	if job.SalaryMin.Valid {
		v := job.SalaryMin.Int64
		out.SalaryMin = &v
	}
	if job.SalaryMax.Valid {
		v := job.SalaryMax.Int64
		out.SalaryMax = &v
	}
	out.ExperienceLevel = job.ExperienceLevel.String
	out.Industry = job.Industry.String
	out.Requirements = job.Requirements.String
	out.Benefits = job.Benefits.String
	return out
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
