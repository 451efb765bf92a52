package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/dto"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// NotificationHandler handles notification and device token HTTP requests
type NotificationHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(deps *Dependencies) *NotificationHandler {
	return &NotificationHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if req.Limit <= 0 {
		req.Limit = defaultNotificationLimit
	}
	if req.Limit > maxNotificationLimit {
		req.Limit = maxNotificationLimit
	}

	cursor, err := DecodeNotificationCursor(req.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
		return
	}

	notifications, err := h.storage.ListNotifications(c.Request.Context(), storage.NotificationFilter{
		UserUID:    caller.SubjectID,
		UnreadOnly: req.UnreadOnly,
		Limit:      req.Limit,
		Cursor:     cursor,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.ListNotificationsResponse{}
	if len(notifications) > req.Limit {
		notifications = notifications[:req.Limit]
		last := notifications[len(notifications)-1]
		resp.NextCursor = EncodeNotificationCursor(&storage.NotificationCursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	resp.Notifications = make([]dto.NotificationDTO, len(notifications))
	for i := range notifications {
		resp.Notifications[i] = toNotificationDTO(&notifications[i])
	}

	c.JSON(http.StatusOK, resp)
}

// MarkRead handles PATCH /api/v1/notifications/:id
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notificationID := c.Param("id")
	if _, err := uuid.Parse(notificationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.storage.MarkNotificationRead(c.Request.Context(), notificationID, caller.SubjectID, *req.IsRead); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": notificationID, "is_read": *req.IsRead})
}

// MarkAllRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.storage.MarkAllNotificationsRead(c.Request.Context(), caller.SubjectID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	count, err := h.storage.UnreadNotificationCount(c.Request.Context(), caller.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// RegisterDeviceToken handles POST /api/v1/notifications/fcm-tokens
func (h *NotificationHandler) RegisterDeviceToken(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	deviceType, ok := domain.ParseDeviceType(req.DeviceType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_type must be android, ios or web"})
		return
	}

	token := model.DeviceToken{
		ID:         uuid.New().String(),
		UserUID:    caller.SubjectID,
		FCMToken:   req.FCMToken,
		DeviceID:   req.DeviceID,
		DeviceType: string(deviceType),
		IsActive:   true,
		CreatedAt:  time.Now(),
	}

	if err := h.storage.UpsertDeviceToken(c.Request.Context(), &token); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
}

// ListDeviceTokens handles GET /api/v1/notifications/fcm-tokens
func (h *NotificationHandler) ListDeviceTokens(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tokens, err := h.storage.ListUserDeviceTokens(c.Request.Context(), caller.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.DeviceTokenDTO, len(tokens))
	for i, t := range tokens {
		out[i] = dto.DeviceTokenDTO{
			ID:         t.ID,
			DeviceID:   t.DeviceID,
			DeviceType: t.DeviceType,
			IsActive:   t.IsActive,
			CreatedAt:  t.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, out)
}

// RemoveDeviceToken handles DELETE /api/v1/notifications/fcm-tokens
func (h *NotificationHandler) RemoveDeviceToken(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.storage.DeactivateToken(c.Request.Context(), caller.SubjectID, req.FCMToken); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toNotificationDTO(n *model.Notification) dto.NotificationDTO {
	out := dto.NotificationDTO{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedJobID.Valid {
		out.RelatedJobID = n.RelatedJobID.String
	}
	if n.RelatedApplicationID.Valid {
		out.RelatedApplicationID = n.RelatedApplicationID.String
	}
	return out
}
