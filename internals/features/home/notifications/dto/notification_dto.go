package dto

import (
	"medaid_backend/internals/features/home/notifications/model"

	"github.com/google/uuid"
)

// ================== RESPONSE ==================
type NotificationResponse struct {
	NotificationID          uuid.UUID  `json:"notification_id"`
	NotificationType        string     `json:"notification_type"`
	NotificationTitle       string     `json:"notification_title"`
	NotificationMessage     string     `json:"notification_message"`
	NotificationRelatedID   *uuid.UUID `json:"notification_related_id,omitempty"`
	NotificationRelatedType *string    `json:"notification_related_type,omitempty"`
	NotificationIsRead      bool       `json:"notification_is_read"`
	NotificationReadAt      *string    `json:"notification_read_at,omitempty"`
	NotificationCreatedAt   string     `json:"notification_created_at"`
}

type NotificationListMeta struct {
	UnreadCount int64 `json:"unread_count"`
}

// ================ CONVERSION =================
func ToNotificationResponse(m *model.NotificationModel) NotificationResponse {
	var readAt *string
	if m.NotificationReadAt != nil {
		formatted := m.NotificationReadAt.Format("2006-01-02 15:04:05")
		readAt = &formatted
	}
	return NotificationResponse{
		NotificationID:          m.NotificationID,
		NotificationType:        m.NotificationType,
		NotificationTitle:       m.NotificationTitle,
		NotificationMessage:     m.NotificationMessage,
		NotificationRelatedID:   m.NotificationRelatedID,
		NotificationRelatedType: m.NotificationRelatedType,
		NotificationIsRead:      m.NotificationIsRead,
		NotificationReadAt:      readAt,
		NotificationCreatedAt:   m.NotificationCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(models))
	for i := range models {
		result = append(result, ToNotificationResponse(&models[i]))
	}
	return result
}
