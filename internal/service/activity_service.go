package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fixworks/repairdesk/internal/events"
)

// ActivityService records domain events: every event is logged, and when a
// stream publisher is configured the event is appended to the Redis activity
// stream for external consumers.
type ActivityService struct {
	dispatcher events.Dispatcher
	stream     *events.StreamPublisher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, stream *events.StreamPublisher, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		stream:     stream,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handle)
	a.dispatcher.Subscribe(events.EventTicketStatusChanged, a.handle)
	a.dispatcher.Subscribe(events.EventRoleAssigned, a.handle)
}

func (a *ActivityService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info("activity",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("actor", string(event.Actor)),
		zap.Any("payload", event.Payload))

	if a.stream == nil {
		return nil
	}
	if err := a.stream.Publish(ctx, event); err != nil {
		a.logger.Warn("activity stream publish failed", zap.Error(err))
	}
	return nil
}
