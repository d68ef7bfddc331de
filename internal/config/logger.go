package config

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName пишется в каждую запись лога полем service.
const ServiceName = "bookfinder"

// NewLogger: debug - человекочитаемый консольный вывод, иначе JSON для сборщика логов.
// opts передаются в zap как есть (в тестах так подменяется core).
func NewLogger(cfg LogConfig, opts ...zap.Option) (*zap.Logger, error) {
	level := parseLogLevel(cfg.Level)

	zcfg := jsonLogConfig()
	if level == zapcore.DebugLevel {
		zcfg = consoleLogConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build(opts...)
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", ServiceName)), nil
}

func jsonLogConfig() zap.Config {
	c := zap.NewProductionConfig()
	c.EncoderConfig.TimeKey = "timestamp"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return c
}

func consoleLogConfig() zap.Config {
	c := zap.NewDevelopmentConfig()
	c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	c.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return c
}

// неизвестный уровень - info, чтобы опечатка в LOG_LEVEL не роняла сервис
func parseLogLevel(level string) zapcore.Level {
	s := strings.ToLower(strings.TrimSpace(level))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil || s == "" {
		return zapcore.InfoLevel
	}
	switch lvl {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return lvl
	}
	return zapcore.InfoLevel
}
