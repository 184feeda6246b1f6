package notification

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	notificationRepo "festivo/database/repository/notification"
	"festivo/models"
	"festivo/services/tasks"
	"festivo/utils"
)

// NotificationService stores in-app notifications and queues their push
// delivery. Send is fire-and-forget from the caller's perspective: a queue or
// push failure is logged and never propagated, so a notification problem can
// never fail the operation that emitted it.
type NotificationService interface {
	Send(ctx context.Context, recipientID, recipientType, title, message, notifType string, metadata map[string]string) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipientID, recipientType string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Queue *asynq.Client
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, queue *asynq.Client) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Queue: queue}
}

func (s *DefaultNotificationService) Send(ctx context.Context, recipientID, recipientType, title, message, notifType string, metadata map[string]string) (*models.Notification, error) {
	logger := utils.GetLogger()

	n := &models.Notification{
		RecipientID:   recipientID,
		RecipientType: recipientType,
		Title:         title,
		Message:       message,
		Type:          notifType,
		Metadata:      metadata,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.Queue != nil {
		task, err := tasks.NewPushTask(tasks.PushPayload{
			NotificationID: n.ID,
			RecipientID:    recipientID,
			RecipientType:  recipientType,
			Title:          title,
			Message:        message,
		})
		if err == nil {
			_, err = s.Queue.EnqueueContext(ctx, task)
		}
		if err != nil {
			logger.Warn("failed to enqueue notification push",
				zap.String("notificationId", n.ID), zap.Error(err))
		}
	}

	return n, nil
}

func (s *DefaultNotificationService) ListForRecipient(ctx context.Context, recipientID, recipientType string) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(ctx, recipientID, recipientType)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.Repo.MarkRead(ctx, id, recipientID)
}
