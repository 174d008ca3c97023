package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher appends events to a Redis stream so external consumers
// (dashboards, notifiers) can tail shop activity.
type StreamPublisher struct {
	client *redis.Client
	stream string
}

// NewStreamPublisher builds a publisher for the given stream.
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream}
}

// Publish appends the event to the stream.
func (p *StreamPublisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"event_id": event.ID,
			"type":     string(event.Type),
			"actor":    string(event.Actor),
			"at":       event.Timestamp.UTC().Format(time.RFC3339Nano),
			"payload":  string(payload),
		},
	}).Err()
}
