package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to, name string
	err      error
}

func (s *recordingSender) SendWelcomeEmail(_ context.Context, to, name string) error {
	s.to, s.name = to, name
	return s.err
}

func newTestService(sender WelcomeSender) *JobService {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	if sender != nil {
		j.SetWelcomeSender(sender)
	}
	return j
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("a@x.com", "A")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "a@x.com", Name: "A"}, p)
}

func TestHandleWelcomeEmailTask_Sends(t *testing.T) {
	sender := &recordingSender{}
	j := newTestService(sender)

	task, _ := NewWelcomeEmailTask("a@x.com", "A")
	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))

	assert.Equal(t, "a@x.com", sender.to)
	assert.Equal(t, "A", sender.name)
}

func TestHandleWelcomeEmailTask_PropagatesSendFailure(t *testing.T) {
	sendErr := errors.New("resend: 500")
	j := newTestService(&recordingSender{err: sendErr})

	task, _ := NewWelcomeEmailTask("a@x.com", "A")
	assert.ErrorIs(t, j.handleWelcomeEmailTask(context.Background(), task), sendErr)
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestService(&recordingSender{})

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTask_NoSender(t *testing.T) {
	j := newTestService(nil)

	task, _ := NewWelcomeEmailTask("a@x.com", "A")
	assert.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
}
