package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/careerconnect/careerconnect-be/internal/access"
	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/careerconnect/careerconnect-be/internal/application"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxIdentityKey = "identity"
	CtxCallerKey   = "caller"
)

// ApplicationService is the state machine surface handlers drive.
type ApplicationService interface {
	Submit(ctx context.Context, applicantUID string, in application.SubmitInput) (*model.Application, error)
	Transition(ctx context.Context, applicationID, recruiterUID string, newStatus domain.ApplicationStatus) (*model.ApplicationWithJob, error)
	Withdraw(ctx context.Context, applicationID, applicantUID string) (*model.ApplicationWithJob, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	Storage      *storage.Storage
	Applications ApplicationService
	Guard        *access.Guard
}

// IdentityFrom returns the verified identity set by the auth middleware.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*domain.Identity)
	return ident, ok
}

// CallerFrom returns the role-resolved caller set by the role middleware.
func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(CtxCallerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}

// respondError maps domain errors onto HTTP status codes. Anything unmapped
// is an internal error and gets logged with its cause.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case errors.Is(err, domain.ErrTerminalStatus):
		c.JSON(http.StatusConflict, gin.H{"error": "Application status can no longer change"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application status"})
	default:
		logger.Error("Request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
