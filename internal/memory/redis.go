package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/logger"
	"github.com/redis/go-redis/v9"
)

// window memory kept in a redis list per conversation
type Redis struct {
	client      *redis.Client
	maxMessages int
	ttl         time.Duration
}

// connects to redis and returns a memory store
func NewRedis(redisURL string, maxMessages int, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis")

	return NewRedisWithClient(client, maxMessages, ttl), nil
}

func NewRedisWithClient(client *redis.Client, maxMessages int, ttl time.Duration) *Redis {
	if maxMessages <= 0 {
		maxMessages = defaultMaxMessages
	}

	return &Redis{
		client:      client,
		maxMessages: maxMessages,
		ttl:         ttl,
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Messages(ctx context.Context, conversationID string) ([]llm.Message, error) {
	key := fmt.Sprintf(keyConversation, conversationID)

	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read messages from redis: %w", err)
	}

	messages := make([]llm.Message, 0, len(raw))

	for _, item := range raw {
		var msg llm.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			logger.Warn("skipping corrupt chat memory entry", "conversation_id", conversationID, "error", err)
			continue
		}

		messages = append(messages, msg)
	}

	// an odd window can trim a user message away from its answer
	return fromUserTurn(messages), nil
}

// appends messages, trims the list to the window and refreshes the expiry
func (r *Redis) Add(ctx context.Context, conversationID string, messages ...llm.Message) error {
	if len(messages) == 0 {
		return nil
	}

	key := fmt.Sprintf(keyConversation, conversationID)

	values := make([]any, 0, len(messages))
	for _, msg := range messages {
		msgJSON, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}

		values = append(values, msgJSON)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-r.maxMessages), -1)

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add messages to redis: %w", err)
	}

	return nil
}

func (r *Redis) Clear(ctx context.Context, conversationID string) error {
	if err := r.client.Del(ctx, fmt.Sprintf(keyConversation, conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to clear messages in redis: %w", err)
	}

	return nil
}
