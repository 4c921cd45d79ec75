package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mesika/account-service/internal/config"
)

// Queue is the broker interface for notification jobs. Durability is the
// broker's concern; the service only submits and consumes.
type Queue interface {
	Enqueue(ctx context.Context, job *Job) error
	// Dequeue blocks up to the configured timeout and returns nil when no
	// job arrived in time.
	Dequeue(ctx context.Context) (*Job, error)
	Close() error
}

type redisQueue struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

func NewRedisQueue(cfg *config.NotifyConfig) (Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	timeout := cfg.DequeueTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &redisQueue{
		client:  client,
		key:     cfg.QueueKey,
		timeout: timeout,
	}, nil
}

func (q *redisQueue) Enqueue(ctx context.Context, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

func (q *redisQueue) Dequeue(ctx context.Context) (*Job, error) {
	res, err := q.client.BRPop(ctx, q.timeout, q.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}

	// BRPop returns [key, value]
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &job, nil
}

func (q *redisQueue) Close() error {
	return q.client.Close()
}
