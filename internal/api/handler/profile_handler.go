package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/dto"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(deps *Dependencies) *ProfileHandler {
	return &ProfileHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// Get handles GET /api/v1/profiles/me
//
// Profile routes sit behind token verification only, not role resolution,
// because a freshly signed-up user has no profile row yet.
func (h *ProfileHandler) Get(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.storage.GetProfile(c.Request.Context(), ident.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toProfileDTO(profile))
}

// Create handles POST /api/v1/profiles/me
func (h *ProfileHandler) Create(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	profile := model.UserProfile{
		FirebaseUID:     ident.SubjectID,
		UserType:        req.UserType,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           ident.Email,
		Phone:           nullString(req.Phone),
		Location:        nullString(req.Location),
		CompanyName:     nullString(req.CompanyName),
		Bio:             nullString(req.Bio),
		ProfileImageURL: nullString(req.ProfileImageURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.storage.CreateProfile(c.Request.Context(), &profile); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toProfileDTO(&profile))
}

// Update handles PUT /api/v1/profiles/me
func (h *ProfileHandler) Update(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.storage.GetProfile(c.Request.Context(), ident.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	applyProfileUpdate(profile, &req)
	profile.UpdatedAt = time.Now()

	if err := h.storage.UpdateProfile(c.Request.Context(), profile); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toProfileDTO(profile))
}

func applyProfileUpdate(p *model.UserProfile, req *dto.UpdateProfileRequest) {
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Phone != nil {
		p.Phone = nullString(*req.Phone)
	}
	if req.Location != nil {
		p.Location = nullString(*req.Location)
	}
	if req.CompanyName != nil {
		p.CompanyName = nullString(*req.CompanyName)
	}
	if req.Bio != nil {
		p.Bio = nullString(*req.Bio)
	}
	if req.ProfileImageURL != nil {
		p.ProfileImageURL = nullString(*req.ProfileImageURL)
	}
}

func toProfileDTO(p *model.UserProfile) dto.ProfileDTO {
	return dto.ProfileDTO{
		FirebaseUID:     p.FirebaseUID,
		UserType:        p.UserType,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone.String,
		Location:        p.Location.String,
		CompanyName:     p.CompanyName.String,
		Bio:             p.Bio.String,
		ProfileImageURL: p.ProfileImageURL.String,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}
