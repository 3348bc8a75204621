package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 按日志级别构建 zap logger。
// development=true 时输出彩色 console 格式并带调用栈，否则输出 JSON。
func New(level string, development bool) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !development

	return cfg.Build()
}

// NewOrNop 构建失败时回落到 no-op logger，保证调用方永远拿到可用实例。
func NewOrNop(level string, development bool) *zap.Logger {
	logger, err := New(level, development)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
