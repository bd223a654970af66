// File: cron/worker.go
package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"slotsmith/config"
	appttypeRepo "slotsmith/database/repository/appttype"
	"slotsmith/services/drivetime"
)

const TypeDriveTimeRefresh = "drivetime:refresh"

// InitDriveTimeWorker runs a background worker that periodically re-warms
// the drive-time cache for home-to-appointment routes, so entries expiring
// mid-day do not push a live Distance Matrix call into a visitor's slot
// query.
func InitDriveTimeWorker(types appttypeRepo.AppointmentTypeRepository, drive *drivetime.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDriveTimeRefresh, handleDriveTimeRefresh(types, drive))

	go func() {
		log.Println("[DriveTimeWorker] Starting async worker...")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DriveTimeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[DriveTimeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 12h", asynq.NewTask(TypeDriveTimeRefresh, nil)); err != nil {
		log.Printf("[DriveTimeWorker] Failed to register refresh schedule: %v", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[DriveTimeWorker] Scheduler stopped: %v", err)
		}
	}()
}

func handleDriveTimeRefresh(types appttypeRepo.AppointmentTypeRepository, drive *drivetime.Service) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		home := config.AppConfig.HomeAddress
		if home == "" {
			return nil
		}

		active, err := types.ListActive(ctx)
		if err != nil {
			log.Printf("[DriveTimeRefresh] Failed to list appointment types: %v", err)
			return err
		}

		for _, at := range active {
			if !at.RequiresDriveTime || at.Location == "" {
				continue
			}
			if _, err := drive.MinutesBetween(ctx, home, at.Location); err != nil {
				log.Printf("[DriveTimeRefresh] Failed to warm route %s -> %s: %v", home, at.Location, err)
			}
		}
		return nil
	}
}
