package service

import (
	"context"
	"log"

	"medaid_backend/internals/features/home/notifications/model"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, n *model.NotificationModel) error
}

type Notice struct {
	UserID      uuid.UUID
	UserModel   string
	Type        string
	Title       string
	Message     string
	RelatedID   *uuid.UUID
	RelatedType string
}

// Notifier persists in-app notifications. Delivery is fire-and-forget: a failed
// write is logged and never reported back to the caller.
type Notifier struct {
	store Store
}

func NewNotifier(store Store) *Notifier {
	return &Notifier{store: store}
}

func (n *Notifier) Notify(ctx context.Context, in Notice) {
	if n == nil || n.store == nil {
		return
	}
	row := &model.NotificationModel{
		NotificationUserID:    in.UserID,
		NotificationUserModel: in.UserModel,
		NotificationType:      in.Type,
		NotificationTitle:     in.Title,
		NotificationMessage:   in.Message,
		NotificationRelatedID: in.RelatedID,
	}
	if in.RelatedType != "" {
		rt := in.RelatedType
		row.NotificationRelatedType = &rt
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] notification panic user=%s type=%s: %v", in.UserID, in.Type, r)
		}
	}()
	if err := n.store.Create(ctx, row); err != nil {
		log.Printf("[WARN] notification not saved user=%s model=%s type=%s: %v", in.UserID, in.UserModel, in.Type, err)
	}
}
