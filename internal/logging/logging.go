package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-vfx-engine/internal/config"
)

// New builds the process logger from cfg and installs it as the zap global.
func New(cfg config.Config) (*zap.SugaredLogger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch cfg.LogLevel {
	case "debug":
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info", "":
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zc.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	zc.EncoderConfig.TimeKey = ""
	zc.EncoderConfig.StacktraceKey = ""
	if !cfg.LogShowCaller {
		zc.EncoderConfig.CallerKey = ""
	}
	if cfg.LogFile != "" {
		zc.OutputPaths = []string{cfg.LogFile}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger.Sugar(), nil
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log
}
