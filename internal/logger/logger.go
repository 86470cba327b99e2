// Package logger sets up the process-wide zap logger.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds a console or JSON logger at the given level and installs it as
// the zap global. When file is set, JSON lines are also written to a rotated
// log file. The returned logger should be synced on exit.
func Setup(level, format, file string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, err
	}

	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	var logger *zap.Logger
	if file != "" {
		rotated := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		var stdoutEnc zapcore.Encoder
		if strings.EqualFold(format, "json") {
			stdoutEnc = zapcore.NewJSONEncoder(cfg.EncoderConfig)
		} else {
			stdoutEnc = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		}
		core := zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotated), cfg.Level),
			zapcore.NewCore(stdoutEnc, zapcore.AddSync(os.Stdout), cfg.Level),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = cfg.Build(zap.AddCaller())
		if err != nil {
			return nil, err
		}
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// WithComponent returns the global logger tagged with a component field.
func WithComponent(component string) *zap.Logger {
	return zap.L().With(zap.String("component", component))
}
