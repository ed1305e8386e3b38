package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voluntree/config"
	"voluntree/services/carpool"
	"voluntree/services/tasks"

	"github.com/hibiken/asynq"
)

// InitCarpoolWorker runs the async worker consuming carpool attachment tasks
// in the background.
func InitCarpoolWorker(carpoolSvc carpool.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCarpoolAttach, handleCarpoolAttach(carpoolSvc))

	go func() {
		log.Println("[CarpoolWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CarpoolWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CarpoolWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCarpoolAttach(carpoolSvc carpool.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CarpoolAttachPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CarpoolWorker] invalid payload: %v", err)
			return err
		}

		if err := carpoolSvc.Attach(ctx, p.OpportunityID, p.Source); err != nil {
			log.Printf("[CarpoolWorker] attach failed for %s (%s): %v", p.OpportunityID, p.Source, err)
			return err
		}
		return nil
	}
}
