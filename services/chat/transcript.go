// File: services/chat/transcript.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexdraft/models"

	"github.com/go-redis/redis/v8"
)

const (
	transcriptPrefix = "chat:turns:"
	seqPrefix        = "chat:seq:"
)

// TranscriptStore keeps the ordered user/bot exchange history of a chat
// session. A sequence number is reserved when a submission is accepted, and
// the finished turn lands at that number, so history reads in submission
// order no matter which in-flight response resolves first.
type TranscriptStore interface {
	// NextSeq atomically reserves the next sequence number for a session.
	NextSeq(ctx context.Context, sessionID string) (int64, error)
	// Append stores a completed turn under its reserved sequence number.
	Append(ctx context.Context, sessionID string, turn models.ChatTurn) error
	// History returns every stored turn ordered by sequence number.
	History(ctx context.Context, sessionID string) ([]models.ChatTurn, error)
	// Clear drops a session's transcript.
	Clear(ctx context.Context, sessionID string) error
}

// RedisTranscriptStore implements TranscriptStore on a Redis sorted set keyed
// by sequence number.
type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTranscriptStore(client *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	return &RedisTranscriptStore{client: client, ttl: ttl}
}

func (s *RedisTranscriptStore) NextSeq(ctx context.Context, sessionID string) (int64, error) {
	key := seqPrefix + sessionID
	seq, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to reserve sequence number: %w", err)
	}
	s.client.Expire(ctx, key, s.ttl)
	return seq, nil
}

func (s *RedisTranscriptStore) Append(ctx context.Context, sessionID string, turn models.ChatTurn) error {
	key := transcriptPrefix + sessionID
	b, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal chat turn: %w", err)
	}
	if err := s.client.ZAdd(ctx, key, &redis.Z{
		Score:  float64(turn.Seq),
		Member: b,
	}).Err(); err != nil {
		return fmt.Errorf("failed to append chat turn: %w", err)
	}
	s.client.Expire(ctx, key, s.ttl)
	return nil
}

func (s *RedisTranscriptStore) History(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	key := transcriptPrefix + sessionID
	raw, err := s.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	turns := make([]models.ChatTurn, 0, len(raw))
	for _, entry := range raw {
		var turn models.ChatTurn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			return nil, fmt.Errorf("failed to decode chat turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisTranscriptStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, transcriptPrefix+sessionID, seqPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}
