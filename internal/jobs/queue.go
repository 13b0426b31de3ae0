package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const DefaultPopTimeout = 5 * time.Second

// Queue is a FIFO of jobs kept in a redis list.
type Queue struct {
	redisClient *redis.Client
	name        string
	popTimeout  time.Duration
}

func NewQueue(redisClient *redis.Client, name string, popTimeout time.Duration) *Queue {
	if popTimeout <= 0 {
		popTimeout = DefaultPopTimeout
	}
	return &Queue{
		redisClient: redisClient,
		name:        name,
		popTimeout:  popTimeout,
	}
}

func (q *Queue) Name() string {
	return q.name
}

func (q *Queue) Push(ctx context.Context, job Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	jobJson, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.redisClient.RPush(ctx, q.name, string(jobJson)).Err(); err != nil {
		return fmt.Errorf("push job of video [%s]: %w", job.VideoID, err)
	}
	return nil
}

// Pop blocks until a job is available or the pop timeout passes. A nil job
// with a nil error means the queue stayed empty. Malformed messages are
// removed from the queue and reported with ErrInvalidJob.
func (q *Queue) Pop(ctx context.Context) (*Job, error) {
	res, err := q.redisClient.BLPop(ctx, q.popTimeout, q.name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop job: %w", err)
	}
	// BLPOP replies with [list name, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("pop job: unexpected reply length %d", len(res))
	}
	return ParseJob([]byte(res[1]))
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.redisClient.LLen(ctx, q.name).Result()
}
