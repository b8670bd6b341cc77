package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedChannel(channel string) (Logger, *test.Hook) {
	logrusLogger, hook := test.NewNullLogger()
	return NewWithLogrus(logrusLogger, channel), hook
}

func TestChannelField(t *testing.T) {
	log, hook := newCapturedChannel(ChannelAudit)

	log.Info(context.Background(), "CREATE_TASK", map[string]interface{}{
		"user":  "alice",
		"title": "Buy milk",
	})

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "CREATE_TASK", entry.Message)
	assert.Equal(t, ChannelAudit, entry.Data["channel"])
	assert.Equal(t, "alice", entry.Data["user"])
}

func TestWarnLevel(t *testing.T) {
	log, hook := newCapturedChannel(ChannelTechnical)

	log.Warn(context.Background(), "Unauthorized task update attempt", map[string]interface{}{
		"user":    "bob",
		"task_id": "task-1",
	})

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCorrelationIDFromContext(t *testing.T) {
	log, hook := newCapturedChannel(ChannelTechnical)

	ctx := ContextWithCorrelationID(context.Background(), "corr-123")
	log.Info(ctx, "Request handled", nil)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "corr-123", hook.LastEntry().Data["correlation_id"])
}

func TestWithFields(t *testing.T) {
	log, hook := newCapturedChannel(ChannelTechnical)

	log.WithFields(map[string]interface{}{"user": "alice"}).
		Info(context.Background(), "Task created", map[string]interface{}{"task_id": "task-1"})

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "alice", entry.Data["user"])
	assert.Equal(t, "task-1", entry.Data["task_id"])
}
