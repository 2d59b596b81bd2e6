package tasks

import (
	"encoding/json"
	"fmt"

	"lexdraft/config"

	"github.com/hibiken/asynq"
)

const TypeReembedDocument = "document:reembed"

// ReembedPayload identifies the document to re-embed.
type ReembedPayload struct {
	DocumentID string `json:"document_id"`
}

// NewReembedTask builds the asynq task for re-embedding one document.
// Embedding calls fail transiently, so the task retries a few times before
// giving up.
func NewReembedTask(payload ReembedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReembedDocument, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}

var client *asynq.Client

// InitClient initializes the shared asynq client for enqueuing tasks.
func InitClient() {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmbedQueue,
	})
}

// EnqueueReembed schedules a document for background re-embedding.
func EnqueueReembed(documentID string) error {
	if client == nil {
		return fmt.Errorf("task client not initialized")
	}
	task, opts, err := NewReembedTask(ReembedPayload{DocumentID: documentID})
	if err != nil {
		return fmt.Errorf("failed to build reembed task: %w", err)
	}
	if _, err := client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reembed task: %w", err)
	}
	return nil
}
