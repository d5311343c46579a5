package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// maxMulticastTokens is the FCM limit on tokens per multicast message.
const maxMulticastTokens = 500

// Client sends reminder pushes through Firebase Cloud Messaging
type Client struct {
	messagingClient *messaging.Client
}

// NewClient builds a client from a service account file, or from application
// default credentials when credentialsFile is empty
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	log.Println("[FCM] Messaging client ready")
	return &Client{messagingClient: messagingClient}, nil
}

// NotificationData is one push payload. Data values must be strings.
type NotificationData struct {
	Title       string
	Body        string
	Data        map[string]string
	ClickAction string
}

// SendToDevices sends a push notification to multiple device tokens in
// batches of at most 500. It returns the tokens FCM reports as unregistered
// or malformed; transient per-token failures are only logged.
func (c *Client) SendToDevices(ctx context.Context, tokens []string, notification NotificationData) ([]string, error) {
	var stale []string
	for _, batch := range Batches(tokens, maxMulticastTokens) {
		rejected, err := c.sendBatch(ctx, batch, notification)
		if err != nil {
			return stale, err
		}
		stale = append(stale, rejected...)
	}
	return stale, nil
}

func (c *Client) sendBatch(ctx context.Context, tokens []string, notification NotificationData) ([]string, error) {
	webpush := &messaging.WebpushConfig{
		Headers: map[string]string{"Urgency": "high"},
		Notification: &messaging.WebpushNotification{
			Title: notification.Title,
			Body:  notification.Body,
			Icon:  "/icon-192.svg",
			Tag:   notification.Data["reminder_id"],
		},
	}
	if notification.ClickAction != "" {
		webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: notification.ClickAction}
	}

	batch, err := c.messagingClient.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: notification.Title, Body: notification.Body},
		Data:         notification.Data,
		Android:      &messaging.AndroidConfig{Priority: "high"},
		Webpush:      webpush,
	})
	if err != nil {
		return nil, fmt.Errorf("send multicast to %d devices: %w", len(tokens), err)
	}

	log.Printf("[FCM] Multicast to %d devices: %d delivered, %d failed", len(tokens), batch.SuccessCount, batch.FailureCount)

	var stale []string
	for i, res := range batch.Responses {
		if res.Success {
			continue
		}
		log.Printf("[FCM] Delivery to %s failed: %v", Mask(tokens[i]), res.Error)
		if IsStaleToken(res.Error) {
			stale = append(stale, tokens[i])
		}
	}
	return stale, nil
}

// IsStaleToken reports whether err means the token will never work again.
func IsStaleToken(err error) bool {
	return messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err)
}

// Batches splits tokens into consecutive chunks of at most size.
func Batches(tokens []string, size int) [][]string {
	var out [][]string
	for len(tokens) > 0 {
		n := size
		if len(tokens) < n {
			n = len(tokens)
		}
		out = append(out, tokens[:n])
		tokens = tokens[n:]
	}
	return out
}

// Mask shortens a device token for logs.
func Mask(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:12] + "..."
}
