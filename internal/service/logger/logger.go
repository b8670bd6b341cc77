package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger interface for structured logging. The task use case receives two
// instances: one for the technical channel and one for the audit channel.
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Debug(ctx context.Context, message string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// Config configuration for a log channel
type Config struct {
	Level   string
	Format  string // json or text
	Channel string // technical or audit
}

const (
	ChannelTechnical = "technical"
	ChannelAudit     = "audit"
)

// channelLogger implements Logger with logrus
type channelLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

// New creates a named log channel writing to stdout.
func New(config Config) Logger {
	logrusLogger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrusLogger.SetLevel(level)

	if config.Format == "json" {
		logrusLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		// key=value lines
		logrusLogger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}

	logrusLogger.SetOutput(os.Stdout)

	return NewWithLogrus(logrusLogger, config.Channel)
}

// NewWithLogrus wraps an existing logrus logger as a named channel. Tests
// use this with a logrus test hook to capture emitted entries.
func NewWithLogrus(logrusLogger *logrus.Logger, channel string) Logger {
	return &channelLogger{
		logger: logrusLogger,
		fields: map[string]interface{}{
			"channel": channel,
		},
	}
}

func (l *channelLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).Info(message)
}

func (l *channelLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	entry := l.entry(ctx, fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func (l *channelLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).Warn(message)
}

func (l *channelLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).Debug(message)
}

// WithFields creates a new logger with additional base fields
func (l *channelLogger) WithFields(fields map[string]interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &channelLogger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *channelLogger) entry(ctx context.Context, fields map[string]interface{}) *logrus.Entry {
	all := logrus.Fields{}
	for k, v := range l.fields {
		all[k] = v
	}
	for k, v := range fields {
		all[k] = v
	}
	if correlationID, ok := ctx.Value(correlationIDKey{}).(string); ok && correlationID != "" {
		all["correlation_id"] = correlationID
	}
	return l.logger.WithFields(all)
}

type correlationIDKey struct{}

// ContextWithCorrelationID attaches a correlation ID so every log line
// emitted during the request carries it.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}
