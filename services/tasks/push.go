package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeNotificationPush = "notification:push"

// PushPayload carries everything the worker needs to deliver one push.
type PushPayload struct {
	NotificationID string `json:"notificationId"`
	RecipientID    string `json:"recipientId"`
	RecipientType  string `json:"recipientType"`
	Title          string `json:"title"`
	Message        string `json:"message"`
}

// NewPushTask builds the asynq task for a queued notification push.
func NewPushTask(payload PushPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationPush, b, asynq.MaxRetry(3)), nil
}
