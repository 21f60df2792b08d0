package notification

import "time"

const MarkAllReadMessage = "All notifications marked as read."

type UpdateNotificationRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
