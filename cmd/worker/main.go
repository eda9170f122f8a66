package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"pharmacy-backend/internal/config"
	"pharmacy-backend/internal/domains/user"
	"pharmacy-backend/internal/infrastructure/database"
	"pharmacy-backend/internal/infrastructure/email"
	"pharmacy-backend/internal/infrastructure/queue"
	"pharmacy-backend/pkg/logger"
)

// The worker consumes the email queue and runs the periodic OTP cleanup.
// It shares the redis instance and database with the API but runs as a
// separate process.
func main() {
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		logger.Error("failed to load database config", err)
		os.Exit(1)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(context.Background()); err != nil {
		logger.Error("failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	otpRepo := user.NewPostgresOTPRepository(db.Pool)
	emailService := email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails":  5,
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeSendVerificationEmail, handleOTPEmail(emailService.SendVerificationEmail))
	mux.HandleFunc(queue.TypeSendRecoveryEmail, handleOTPEmail(emailService.SendPasswordRecoveryEmail))
	mux.HandleFunc(queue.TypeCleanupExpiredOTPs, func(ctx context.Context, t *asynq.Task) error {
		removed, err := otpRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("cleanup expired otps: %w", err)
		}
		logger.Info("expired otps removed", map[string]interface{}{"count": removed})
		return nil
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(queue.TypeCleanupExpiredOTPs, nil)); err != nil {
		logger.Error("failed to register otp cleanup schedule", err)
		os.Exit(1)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("scheduler stopped", err)
		}
	}()

	logger.Info("starting worker", map[string]interface{}{"redis": cfg.Redis.Host})
	if err := srv.Run(mux); err != nil {
		logger.Error("worker stopped", err)
		os.Exit(1)
	}
}

// handleOTPEmail adapts an email sender into an asynq handler.
func handleOTPEmail(send func(context.Context, email.OTPEmailData) error) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload queue.OTPEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
		}

		data := email.OTPEmailData{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			Code:      payload.Code,
			ExpiresIn: payload.ExpiresIn,
		}
		if err := send(ctx, data); err != nil {
			return fmt.Errorf("send %s to %s: %w", t.Type(), payload.Email, err)
		}

		logger.Info("email task processed", map[string]interface{}{
			"type":  t.Type(),
			"email": payload.Email,
		})
		return nil
	}
}
