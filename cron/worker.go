package cron

import (
	"context"
	"encoding/json"
	"log"

	"lexdraft/config"
	"lexdraft/services/document"
	"lexdraft/services/tasks"
	"lexdraft/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEmbedWorker runs the background re-embedding worker.
func InitEmbedWorker(docSvc document.DocumentService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmbedQueue,
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
	mux.HandleFunc(tasks.TypeReembedDocument, handleReembedTask(docSvc))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("embed worker failed: %v", err)
		}
	}()
}

func handleReembedTask(docSvc document.DocumentService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.ReembedPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		if err := docSvc.Reembed(ctx, payload.DocumentID); err != nil {
			utils.GetLogger().Error("reembed task failed",
				zap.String("document", payload.DocumentID), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("reembed task done", zap.String("document", payload.DocumentID))
		return nil
	}
}
