package repository

import (
	"context"
	"time"

	"medaid_backend/internals/features/home/notifications/model"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, userModel string, unreadOnly bool, offset, limit int) ([]model.NotificationModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_user_model = ?", userID, userModel)
	if unreadOnly {
		q = q.Where("notification_is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "failed to count notifications")
	}

	var rows []model.NotificationModel
	if err := q.Order("notification_created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "failed to list notifications")
	}
	return rows, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID, userModel string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_user_model = ? AND notification_is_read = ?", userID, userModel, false).
		Count(&n).Error
	if err != nil {
		return 0, apperr.FromDB(err, "failed to count notifications")
	}
	return n, nil
}

// MarkRead only touches notifications owned by the caller.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID, userModel string) error {
	res := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ? AND notification_user_model = ?", id, userID, userModel).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": time.Now(),
		})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "failed to update notification")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, userModel string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_user_model = ? AND notification_is_read = ?", userID, userModel, false).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": time.Now(),
		})
	if res.Error != nil {
		return 0, apperr.FromDB(res.Error, "failed to update notifications")
	}
	return res.RowsAffected, nil
}
