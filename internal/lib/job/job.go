// Package job runs LightBnB background work on Asynq, a Redis-backed queue.
//
// The JobService enqueues tasks through an asynq.Client and processes them
// with an asynq.Server. Handlers are registered in Start.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// WelcomeSender delivers the welcome email. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
}

// JobService holds the Asynq client (enqueue side) and server (worker side).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
	sender WelcomeSender
}

// NewJobService creates a JobService against the configured Redis.
// Workers are split across queues 6:3:1 (critical, default, low).
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: &asynqLogger{logger: logger},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// SetWelcomeSender installs the email sender used by the welcome handler.
// Without one, welcome tasks are acknowledged and skipped.
func (j *JobService) SetWelcomeSender(sender WelcomeSender) {
	j.sender = sender
}

// Mux returns the task routing table.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the worker pool in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks, then closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) {
	l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...any) {
	l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...any) {
	l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...any) {
	l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...))
}
