package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationCaseApproved          = "case_approved"
	NotificationCaseRejected          = "case_rejected"
	NotificationCaseVolunteerRejected = "case_volunteer_rejected"
	NotificationVolunteerAssigned     = "volunteer_assigned"
	NotificationDonationReceived      = "donation_received"
)

type NotificationModel struct {
	NotificationID          uuid.UUID  `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID      uuid.UUID  `gorm:"column:notification_user_id;type:uuid;not null;index:idx_notification_user" json:"notification_user_id"`
	NotificationUserModel   string     `gorm:"column:notification_user_model;type:varchar(20);not null;index:idx_notification_user" json:"notification_user_model"`
	NotificationType        string     `gorm:"column:notification_type;type:varchar(40);not null" json:"notification_type"`
	NotificationTitle       string     `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage     string     `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationRelatedID   *uuid.UUID `gorm:"column:notification_related_id;type:uuid" json:"notification_related_id,omitempty"`
	NotificationRelatedType *string    `gorm:"column:notification_related_type;type:varchar(30)" json:"notification_related_type,omitempty"`
	NotificationIsRead      bool       `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationReadAt      *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
	NotificationCreatedAt   time.Time  `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
