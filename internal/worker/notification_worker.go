package worker

import (
	"github.com/spec-kit/team-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to
// membership events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
