package cron

import (
	"context"
	"encoding/json"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"festivo/config"
	customerRepo "festivo/database/repository/customer"
	vendorRepo "festivo/database/repository/vendor"
	"festivo/models"
	"festivo/services/tasks"
	"festivo/utils"
)

// InitPushWorker runs the notification push worker in the background. It
// drains the queue written by the notification service and delivers each
// payload over FCM. Delivery is best-effort: a missing device token drops the
// push without retrying.
func InitPushWorker(customers customerRepo.CustomerRepository, vendors vendorRepo.VendorRepository) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationPush, handlePushTask(customers, vendors))

	go func() {
		logger.Info("starting notification push worker")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("push worker failed to start",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("push worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handlePushTask(customers customerRepo.CustomerRepository, vendors vendorRepo.VendorRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("push task has invalid payload", zap.Error(err))
			return err
		}

		if utils.FCMClient == nil {
			logger.Debug("push delivery disabled, dropping task",
				zap.String("notificationId", p.NotificationID))
			return nil
		}

		token, err := deviceToken(ctx, customers, vendors, p.RecipientType, p.RecipientID)
		if err != nil {
			logger.Warn("failed to resolve push recipient",
				zap.String("recipientId", p.RecipientID), zap.Error(err))
			return err
		}
		if token == "" {
			logger.Debug("recipient has no device token, dropping push",
				zap.String("recipientId", p.RecipientID))
			return nil
		}

		_, err = utils.FCMClient.Send(ctx, &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: p.Title,
				Body:  p.Message,
			},
			Data: map[string]string{
				"notificationId": p.NotificationID,
			},
		})
		if err != nil {
			logger.Warn("push delivery failed",
				zap.String("notificationId", p.NotificationID), zap.Error(err))
		}
		return err
	}
}

func deviceToken(ctx context.Context, customers customerRepo.CustomerRepository, vendors vendorRepo.VendorRepository, recipientType, recipientID string) (string, error) {
	switch recipientType {
	case models.RecipientCustomer:
		c, err := customers.GetByID(ctx, recipientID)
		if err != nil {
			return "", err
		}
		return c.FCMToken, nil
	case models.RecipientVendor:
		v, err := vendors.GetByID(ctx, recipientID)
		if err != nil {
			return "", err
		}
		return v.FCMToken, nil
	}
	return "", nil
}
