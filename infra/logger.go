package infra

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tnqbao/gau-storage-gateway/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// LoggerClient is the process-wide structured logger. It bridges slog onto the
// OpenTelemetry log pipeline, so records carry trace context and ship through
// the OTLP exporter configured in telemetry.go.
type LoggerClient struct {
	logger *slog.Logger
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	return &LoggerClient{
		logger: otelslog.NewLogger(cfg.Grafana.ServiceName),
	}
}

// NewLoggerClient builds a logger outside the Infra lifecycle; handy in tests
// where no exporter is configured (records go to the no-op global provider).
func NewLoggerClient(name string) *LoggerClient {
	return &LoggerClient{logger: otelslog.NewLogger(name)}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	if err != nil {
		l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...), slog.String("error", err.Error()))
		return
	}
	l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}
