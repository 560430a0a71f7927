package worker

import (
	"github.com/gemline/repair-service/internal/service"
)

// StartNotificationWorker registers status-change notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
