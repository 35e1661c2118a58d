package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGloudLogger
	}
}

type structuredLogger struct {
	componentName string
	logger        *zap.Logger
}

func newGloudLogger(componentName string) Logger {
	// Field names as expected by Cloud Logging so entries are parsed as structured payloads
	config := zap.NewProductionConfig()
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.LevelKey = "severity"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	config.DisableStacktrace = true
	config.Sampling = nil

	base, err := config.Build()
	if err != nil {
		base = zap.NewNop()
	}

	return structuredLogger{
		componentName: componentName,
		logger:        base.With(zap.String("component", componentName)),
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{
		zap.Any("logging.googleapis.com/labels", map[string]string{"aggregate": traceLabel}),
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}
	if requestUID := mycontext.RequestUIDFromContext(ctx); requestUID != "" {
		fields = append(fields, zap.String("request", requestUID))
	}

	msg := l.componentName + ":" + fmt.Sprintf(format, a...)

	switch severity {
	case SeverityDebug:
		l.logger.Debug(msg, fields...)
	case SeverityWarn:
		l.logger.Warn(msg, fields...)
	case SeverityError:
		l.logger.Error(msg, fields...)
	default:
		l.logger.Info(msg, fields...)
	}
}
