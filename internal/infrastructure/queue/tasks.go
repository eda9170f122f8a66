package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names shared between the API (producer) and cmd/worker (consumer).
const (
	TypeSendVerificationEmail = "email:verification"
	TypeSendRecoveryEmail     = "email:recovery"
	TypeCleanupExpiredOTPs    = "auth:cleanup_expired_otps"
)

// OTPEmailPayload is the payload for both email task types.
type OTPEmailPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Code      string `json:"code"`
	ExpiresIn string `json:"expiresIn"`
}

// Client wraps the asynq client used by the API to enqueue email jobs.
// Email delivery is asynchronous so a slow SMTP server never blocks signup.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) EnqueueVerificationEmail(payload OTPEmailPayload) error {
	return c.enqueue(TypeSendVerificationEmail, payload)
}

func (c *Client) EnqueueRecoveryEmail(payload OTPEmailPayload) error {
	return c.enqueue(TypeSendRecoveryEmail, payload)
}

func (c *Client) enqueue(taskType string, payload OTPEmailPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data, asynq.MaxRetry(3), asynq.Queue("emails"))
	if _, err := c.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
