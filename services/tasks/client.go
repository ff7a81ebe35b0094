package tasks

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"spritz/config"
	"spritz/models"
)

var client *asynq.Client

// InitTaskClient creates the shared asynq client for enqueueing reminders.
func InitTaskClient() {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}

// EnqueueReminder schedules a reminder push at fireAt.
func EnqueueReminder(payload models.ReminderPayload, fireAt time.Time) error {
	if client == nil {
		return fmt.Errorf("task client not initialized")
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
