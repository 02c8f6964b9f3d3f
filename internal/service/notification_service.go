package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/team-service/internal/config"
	"github.com/spec-kit/team-service/internal/domain"
	"github.com/spec-kit/team-service/internal/events"
	"github.com/spec-kit/team-service/internal/repository"
)

// NotificationQueue is the outbound delivery channel consumed by the
// external notifier.
type NotificationQueue interface {
	Enqueue(ctx context.Context, key string, payload []byte) error
}

// NotificationService turns membership events into per-user notifications.
// Everything here is best-effort: a failed write or enqueue is logged and
// never surfaces to the operation that published the event.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	queue         NotificationQueue
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(
	dispatcher events.Dispatcher,
	notifications repository.NotificationRepository,
	queue NotificationQueue,
	logger *zap.Logger,
	cfg config.NotificationConfig,
) *NotificationService {
	return &NotificationService{
		dispatcher:    dispatcher,
		notifications: notifications,
		queue:         queue,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to membership events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTeamCreated, n.handleTeamCreated)
	n.dispatcher.Subscribe(events.EventMemberAdded, n.handleMemberAdded)
	n.dispatcher.Subscribe(events.EventMemberRemoved, n.handleMemberRemoved)
}

func (n *NotificationService) handleTeamCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TeamCreated", zap.String("team_id", event.TeamID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMemberAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MembershipPayload)
	if !ok {
		return nil
	}
	n.logger.Info("MemberAdded", zap.String("team_id", event.TeamID), zap.String("user_id", payload.UserID))
	n.Notify(ctx, payload.UserID,
		fmt.Sprintf("Welcome to %s", payload.TeamName),
		"You have been added to a team by its admin")
	return nil
}

func (n *NotificationService) handleMemberRemoved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MembershipPayload)
	if !ok {
		return nil
	}
	n.logger.Info("MemberRemoved", zap.String("team_id", event.TeamID), zap.String("user_id", payload.UserID))
	n.Notify(ctx, payload.UserID,
		fmt.Sprintf("You have been expelled from %s", payload.TeamName),
		"You have been expelled from this team by its admin, you will no longer have access to its tasks")
	return nil
}

// Notify records a notification and enqueues it for delivery. Failures
// are logged and swallowed.
func (n *NotificationService) Notify(ctx context.Context, userID, title, body string) {
	if !n.cfg.Enabled {
		return
	}

	notification := &domain.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if n.notifications != nil {
		if err := n.notifications.Create(ctx, notification); err != nil {
			n.logger.Warn("failed to persist notification",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	if n.queue == nil {
		return
	}
	payload, err := json.Marshal(queueEnvelope{
		UserID: userID,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		n.logger.Warn("failed to encode notification", zap.Error(err))
		return
	}
	if err := n.queue.Enqueue(ctx, n.cfg.QueueKey, payload); err != nil {
		n.logger.Warn("failed to enqueue notification",
			zap.String("user_id", userID), zap.Error(err))
	}
}

type queueEnvelope struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
