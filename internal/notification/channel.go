// Package notification delivers triggered reminders to the task owner.
package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	authdomain "taskflow-backend/internal/auth/domain"
	reminderdomain "taskflow-backend/internal/reminder/domain"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
	"taskflow-backend/pkg/fcm"
)

// Channel delivers one reminder. Implementations must honour ctx's deadline.
type Channel interface {
	Send(ctx context.Context, reminder reminderdomain.Reminder, task taskdomain.Task) error
}

// TokenStore is the subset of the device token repository a push channel needs.
type TokenStore interface {
	GetTokensByUserID(ctx context.Context, userID shared.UserID) ([]authdomain.FCMToken, error)
	DeleteToken(ctx context.Context, token string) error
}

// Sender sends one notification to many devices and returns the tokens that
// were rejected. *fcm.Client implements it.
type Sender interface {
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) ([]string, error)
}

// FCMChannel pushes reminders to every registered device of the task owner.
type FCMChannel struct {
	tokens TokenStore
	sender Sender
}

// NewFCMChannel creates a new FCMChannel
func NewFCMChannel(tokens TokenStore, sender Sender) *FCMChannel {
	return &FCMChannel{tokens: tokens, sender: sender}
}

func (ch *FCMChannel) Send(ctx context.Context, reminder reminderdomain.Reminder, task taskdomain.Task) error {
	tokens, err := ch.tokens.GetTokensByUserID(ctx, task.OwnerUserID)
	if err != nil {
		return fmt.Errorf("load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		log.Printf("[FCM] No devices for user %s, reminder %s not pushed", task.OwnerUserID, reminder.ID)
		return nil
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failed, err := ch.sender.SendToDevices(ctx, tokenStrings, BuildReminderNotification(reminder, task))
	if err != nil {
		return err
	}

	// Cleanup rejected tokens
	for _, token := range failed {
		if err := ch.tokens.DeleteToken(ctx, token); err != nil {
			log.Printf("[FCM] Failed to delete rejected token: %v", err)
		}
	}
	return nil
}

// BuildReminderNotification renders the push payload for a reminder.
func BuildReminderNotification(reminder reminderdomain.Reminder, task taskdomain.Task) fcm.NotificationData {
	body := "You have a task waiting"
	if task.Notes != nil {
		body = *task.Notes
	}
	if task.DueAt != nil {
		body = fmt.Sprintf("%s\nDue %s", body, task.DueAt.UTC().Format("Mon 2 Jan 15:04 MST"))
	}

	return fcm.NotificationData{
		Title: "Reminder: " + task.Title,
		Body:  body,
		Data: map[string]string{
			"type":         "task_reminder",
			"task_id":      string(task.ID),
			"reminder_id":  string(reminder.ID),
			"remind_at":    reminder.RemindAt.UTC().Format(time.RFC3339),
			"click_action": "/tasks/" + string(task.ID),
		},
		ClickAction: "/tasks/" + string(task.ID),
	}
}

// LogChannel writes reminders to the process log. It stands in for push
// delivery when Firebase is not configured.
type LogChannel struct{}

func (LogChannel) Send(_ context.Context, reminder reminderdomain.Reminder, task taskdomain.Task) error {
	log.Printf("[Notification] Reminder %s for task %q (owner %s)", reminder.ID, task.Title, task.OwnerUserID)
	return nil
}
