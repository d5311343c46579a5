package main

import (
	"context"
	"log"
	"os"

	api "taskflow-backend/cmd/api"
	authRepo "taskflow-backend/internal/auth/repository"
	"taskflow-backend/internal/events"
	"taskflow-backend/internal/notification"
	reminderRepo "taskflow-backend/internal/reminder/repository"
	"taskflow-backend/internal/reminder/scheduler"
	"taskflow-backend/internal/shared"
	taskRepo "taskflow-backend/internal/task/repository"
	"taskflow-backend/pkg/config"
	"taskflow-backend/pkg/database"
	"taskflow-backend/pkg/fcm"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const scanLeaseKey = "taskflow:reminder-scan"

func main() {
	// Load configuration
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(api.Models()...); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Event bus, optionally forwarded to Pub/Sub
	bus := events.NewBus()
	var forwarder *events.PubSubForwarder
	if cfg.GoogleProjectID != "" {
		forwarder, err = events.NewPubSubForwarder(ctx, cfg.GoogleProjectID, cfg.EventsTopic, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("[WARN] Pub/Sub forwarding disabled: %v", err)
		} else {
			forwarder.Attach(bus)
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID not configured, events stay in process")
	}

	clock := shared.SystemClock{}
	usecases := api.NewUsecases(db, cfg, bus, clock)

	// Reminder scheduler
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderRepo.NewGormReminderRepository(db),
		taskRepo.NewGormTaskRepository(db),
		newChannel(ctx, cfg, db),
		bus,
		clock,
		scheduler.Config{Interval: cfg.ReminderScanInterval, SendTimeout: cfg.ReminderSendTimeout},
	)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Redis unreachable at %s, scans use the in-process guard only: %v", cfg.RedisAddr, err)
			redisClient.Close()
			redisClient = nil
		} else {
			reminderScheduler.SetLease(scheduler.NewRedisLease(redisClient, scanLeaseKey, cfg.ScanLeaseTTL))
		}
	}
	reminderScheduler.Start(ctx)

	// Initialize HTTP handler and start server
	handler := api.NewHandler(usecases)
	go func() {
		if err := handler.Start(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Stop order: no new requests, no new scans, flush events, then close clients.
	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"application": func(ctx context.Context) error {
			if err := handler.Shutdown(ctx); err != nil {
				log.Printf("[WARN] HTTP server shutdown: %v", err)
			}
			reminderScheduler.Stop()
			bus.Wait()
			if forwarder != nil {
				if err := forwarder.Close(); err != nil {
					log.Printf("[WARN] Pub/Sub forwarder close: %v", err)
				}
			}
			if redisClient != nil {
				return redisClient.Close()
			}
			return nil
		},
	})

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	cancel()
	os.Exit(exitCode)
}

// newChannel picks push delivery when Firebase is configured and falls back
// to logging reminders.
func newChannel(ctx context.Context, cfg *config.Config, db *gorm.DB) notification.Channel {
	if cfg.FirebaseCredentials == "" {
		log.Printf("[WARN] FIREBASE_CREDENTIALS not configured, reminders are only logged")
		return notification.LogChannel{}
	}

	fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials)
	if err != nil {
		log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		return notification.LogChannel{}
	}
	return notification.NewFCMChannel(authRepo.NewFCMTokenRepository(db), fcmClient)
}
