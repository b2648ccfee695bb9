package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/pubsub"

	"social-manager/infrastructure/logger"
)

// PublishEvent is emitted after a dispatch run finishes for a script.
type PublishEvent struct {
	ScriptID   string    `json:"script_id"`
	Published  int       `json:"published"`
	Failed     int       `json:"failed"`
	OccurredAt time.Time `json:"occurred_at"`
}

type IPublishEvents interface {
	DispatchCompleted(ctx context.Context, event PublishEvent) error
}

// Notifier publishes lifecycle events to a Pub/Sub topic. A nil client makes
// every emit a no-op, so deployments without Pub/Sub need no special casing.
type Notifier struct {
	client *pubsub.Client
	topic  string
}

func NewNotifier(client *pubsub.Client, topic string) IPublishEvents {
	return &Notifier{client: client, topic: topic}
}

// NewPubSubClient connects to Pub/Sub for the given project. An empty project
// id or a failed connection yields nil, which disables event emission.
func NewPubSubClient(ctx context.Context, projectID string) *pubsub.Client {
	if projectID == "" {
		logger.GetLogger().Info("pubsub project id not set; publish events disabled")
		return nil
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("pubsub unavailable; publish events disabled")
		return nil
	}
	return client
}

func (n *Notifier) DispatchCompleted(ctx context.Context, event PublishEvent) error {
	if n.client == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := n.client.Topic(n.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		if topic, err = n.client.CreateTopic(ctx, n.topic); err != nil {
			return err
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().
		WithField("server_id", serverID).
		WithField("script_id", event.ScriptID).
		Info("publish event emitted")
	return nil
}
