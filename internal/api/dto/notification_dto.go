package dto

type ListNotificationsRequest struct {
	Limit      int    `form:"limit"`
	Cursor     string `form:"cursor"`
	UnreadOnly bool   `form:"unread_only"`
}

type ListNotificationsResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	NextCursor    string            `json:"next_cursor,omitempty"`
}

type NotificationDTO struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Message              string `json:"message"`
	Type                 string `json:"type"`
	RelatedJobID         string `json:"related_job_id,omitempty"`
	RelatedApplicationID string `json:"related_application_id,omitempty"`
	IsRead               bool   `json:"is_read"`
	CreatedAt            string `json:"created_at"`
}

type MarkReadRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type RegisterDeviceTokenRequest struct {
	FCMToken   string `json:"fcm_token" binding:"required"`
	DeviceID   string `json:"device_id" binding:"required"`
	DeviceType string `json:"device_type"`
}

type DeviceTokenDTO struct {
	ID         string `json:"id"`
	DeviceID   string `json:"device_id"`
	DeviceType string `json:"device_type"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
