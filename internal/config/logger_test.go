package config

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"  debug ", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"Warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		// panic/fatal из конфига не принимаем
		{"fatal", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		infoOn  bool
		errorOn bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, true},
		{"", false, true, true},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			logger, err := NewLogger(LogConfig{Level: tt.level})
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			defer logger.Sync()

			core := logger.Core()
			if got := core.Enabled(zapcore.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
			if got := core.Enabled(zapcore.InfoLevel); got != tt.infoOn {
				t.Errorf("info enabled = %v, want %v", got, tt.infoOn)
			}
			if got := core.Enabled(zapcore.ErrorLevel); got != tt.errorOn {
				t.Errorf("error enabled = %v, want %v", got, tt.errorOn)
			}
		})
	}
}

func TestNewLogger_TagsServiceName(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)

	logger, err := NewLogger(LogConfig{Level: "info"}, zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return obs
	}))
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("search completed", zap.Int("results", 3))

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["service"] != "bookfinder" {
		t.Errorf("service = %v, want bookfinder", fields["service"])
	}
	if fields["results"] != int64(3) {
		t.Errorf("results = %v, want 3", fields["results"])
	}
}
