package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
	sugar         *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	if os.Getenv("LOG_LEVEL") == "INFO" {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	base, err := config.Build()
	if err != nil {
		base = zap.NewNop()
	}

	return standardLogger{
		componentName: componentName,
		sugar:         base.Named(componentName).Sugar(),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	keysAndValues := []any{}
	if traceLabel != "" {
		keysAndValues = append(keysAndValues, "aggregate", traceLabel)
	}
	if requestUID := mycontext.RequestUIDFromContext(ctx); requestUID != "" {
		keysAndValues = append(keysAndValues, "request", requestUID)
	}

	msg := fmt.Sprintf(format, a...)

	switch severity {
	case SeverityDebug:
		l.sugar.Debugw(msg, keysAndValues...)
	case SeverityWarn:
		l.sugar.Warnw(msg, keysAndValues...)
	case SeverityError:
		l.sugar.Errorw(msg, keysAndValues...)
	default:
		l.sugar.Infow(msg, keysAndValues...)
	}
}
