package scheduler

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// RedisOpt builds the asynq connection options from config.
func RedisOpt(cfg config.SchedulerConfig) (asynq.RedisConnOpt, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

// Client enqueues scheduled jobs. Nil-safe: a nil Client silently drops
// schedule requests, so the API keeps working without redis configured.
type Client struct {
	client *asynq.Client
	queue  string
	log    *logger.Logger
}

// NewClient creates a scheduler client from config.
func NewClient(cfg config.SchedulerConfig, log *logger.Logger) (*Client, error) {
	opt, err := RedisOpt(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: asynq.NewClient(opt),
		queue:  cfg.GetAsynqQueueName(),
		log:    log,
	}, nil
}

// ScheduleFollowUpReminder enqueues a reminder to fire at the given time.
// Past times enqueue for immediate processing.
func (c *Client) ScheduleFollowUpReminder(taskID uuid.UUID, at time.Time) error {
	if c == nil {
		return nil
	}

	task, err := NewFollowUpReminderTask(taskID)
	if err != nil {
		return err
	}

	opts := []asynq.Option{asynq.Queue(c.queue)}
	if at.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(at))
	}

	info, err := c.client.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue follow-up reminder: %w", err)
	}

	c.log.Info("follow-up reminder scheduled",
		"task_id", taskID,
		"asynq_id", info.ID,
		"process_at", at,
	)
	return nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
