package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"glowdesk/config"
	"glowdesk/models"
	"glowdesk/services/notification"
	"glowdesk/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// Periodic job types.
const (
	TypeLowStockScan   = "jobs:low-stock"
	TypeBirthdayScan   = "jobs:birthdays"
	TypeDailySummaries = "jobs:daily-summary"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewTaskClient creates the shared asynq client used to enqueue reminders.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitWorker runs the async worker and the periodic scheduler in background.
func InitWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))
	mux.HandleFunc(TypeLowStockScan, handlePerTenantJob(notifSvc, notifSvc.SendLowStockAlerts))
	mux.HandleFunc(TypeBirthdayScan, func(ctx context.Context, _ *asynq.Task) error {
		return notifSvc.SendBirthdayMessages(ctx)
	})
	mux.HandleFunc(TypeDailySummaries, handlePerTenantJob(notifSvc, notifSvc.SendDailySalesSummary))

	go monitorRedisConnection()
	go startScheduler()

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// startScheduler registers the daily jobs: low stock at 09:00, birthdays at
// 10:00 and sales summaries at 21:00.
func startScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)

	entries := map[string]string{
		"0 9 * * *":  TypeLowStockScan,
		"0 10 * * *": TypeBirthdayScan,
		"0 21 * * *": TypeDailySummaries,
	}
	for spec, taskType := range entries {
		if _, err := scheduler.Register(spec, asynq.NewTask(taskType, nil)); err != nil {
			log.Printf("[Scheduler] ❌ Failed to register %s: %v", taskType, err)
		}
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[Scheduler] ❌ Scheduler stopped: %v", err)
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] ⏰ Sending reminder for appointment %s to %s", p.AppointmentID, p.Phone)

		if err := notifSvc.SendAppointmentReminder(ctx, p); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// handlePerTenantJob fans a job out across every tenant.
func handlePerTenantJob(notifSvc notification.NotificationService, job func(context.Context, string) error) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		ids, err := notifSvc.TenantIDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := job(ctx, id); err != nil {
				log.Printf("[Jobs] ❌ Job failed for tenant %s: %v", id, err)
			}
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
