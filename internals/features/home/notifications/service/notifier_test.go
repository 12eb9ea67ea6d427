package service

import (
	"context"
	"errors"
	"testing"

	"medaid_backend/internals/features/home/notifications/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	rows []*model.NotificationModel
	err  error
}

func (s *recordingStore) Create(_ context.Context, n *model.NotificationModel) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, n)
	return nil
}

type panickingStore struct{}

func (panickingStore) Create(context.Context, *model.NotificationModel) error { panic("boom") }

func TestNotifier_Persists(t *testing.T) {
	store := &recordingStore{}
	related := uuid.New()
	user := uuid.New()

	NewNotifier(store).Notify(context.Background(), Notice{
		UserID:      user,
		UserModel:   "needy",
		Type:        model.NotificationCaseApproved,
		Title:       "Case approved",
		Message:     "Your case has been approved",
		RelatedID:   &related,
		RelatedType: "case",
	})

	require.Len(t, store.rows, 1)
	got := store.rows[0]
	assert.Equal(t, user, got.NotificationUserID)
	assert.Equal(t, "needy", got.NotificationUserModel)
	assert.Equal(t, model.NotificationCaseApproved, got.NotificationType)
	require.NotNil(t, got.NotificationRelatedType)
	assert.Equal(t, "case", *got.NotificationRelatedType)
}

func TestNotifier_SwallowsFailures(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNotifier(&recordingStore{err: errors.New("db down")}).Notify(context.Background(), Notice{UserID: uuid.New()})
		NewNotifier(panickingStore{}).Notify(context.Background(), Notice{UserID: uuid.New()})
		var nilNotifier *Notifier
		nilNotifier.Notify(context.Background(), Notice{})
	})
}
