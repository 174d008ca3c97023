package worker

import (
	"github.com/fixworks/repairdesk/internal/service"
)

// StartActivityWorker registers activity handlers on the dispatcher.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
