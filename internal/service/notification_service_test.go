package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/team-service/internal/config"
)

func TestNotifyDisabledSkipsDelivery(t *testing.T) {
	notifications := &notificationRepoMock{}
	queue := &queueMock{}

	notifier := NewNotificationService(nil, notifications, queue, zap.NewNop(),
		config.NotificationConfig{QueueKey: "notifications:outbound", Enabled: false})

	notifier.Notify(context.Background(), "u1", "title", "body")

	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyEnqueuesEvenWhenPersistFails(t *testing.T) {
	notifications := &notificationRepoMock{}
	notifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("store down"))
	queue := &queueMock{}
	queue.On("Enqueue", mock.Anything, "notifications:outbound", mock.Anything).Return(nil)

	notifier := NewNotificationService(nil, notifications, queue, zap.NewNop(),
		config.NotificationConfig{QueueKey: "notifications:outbound", Enabled: true})

	notifier.Notify(context.Background(), "u1", "title", "body")
	queue.AssertExpectations(t)
}
