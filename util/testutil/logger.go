package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger makes a named console logger for tests. With debug == false
// only Info and above comes through
func NewLogger(debug bool, name string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		panic(err)
	}
	if name != "" {
		log = log.Named(name)
	}
	return log.Sugar()
}
