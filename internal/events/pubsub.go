package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

const publishTimeout = 10 * time.Second

// PubSubForwarder mirrors bus events onto a Google Cloud Pub/Sub topic so that
// other services can follow task activity.
type PubSubForwarder struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubForwarder connects to projectID and checks that topicName exists.
func NewPubSubForwarder(ctx context.Context, projectID, topicName, credentialsFile string) (*PubSubForwarder, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	topic := client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to check topic %s: %w", topicName, err)
	}
	if !exists {
		client.Close()
		return nil, fmt.Errorf("topic %s does not exist", topicName)
	}

	log.Printf("[PubSub] Forwarding events to topic %s", topicName)
	return &PubSubForwarder{client: client, topic: topic}, nil
}

// Attach subscribes the forwarder to every event type on bus.
func (f *PubSubForwarder) Attach(bus *Bus) {
	bus.SubscribeAll(f.forward)
}

func (f *PubSubForwarder) forward(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[PubSub] Failed to encode event %s: %v", event.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	result := f.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type":         string(event.Type),
			"workspace_id": event.WorkspaceID,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		log.Printf("[PubSub] Failed to publish %s (%s): %v", event.Type, event.ID, err)
	}
}

// Close flushes pending messages and releases the client.
func (f *PubSubForwarder) Close() error {
	f.topic.Stop()
	return f.client.Close()
}
