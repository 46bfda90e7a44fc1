package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a sugared zap logger writing to stdout and, when logpath is set,
// to a rotated file
func NewLogger(l string, logpath string) *zap.SugaredLogger {
	level := zap.NewAtomicLevelAt(zapLevel(l))

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			level,
		),
	}

	if logpath != "" {
		rotator := &lumberjack.Logger{
			Filename:   logpath,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}

		cores = append(
			cores,
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level),
		)
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return logger.Sugar()
}

// NewNoopLogger returns a logger discarding every entry
func NewNoopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func zapLevel(l string) zapcore.Level {
	switch strings.ToLower(l) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warning", "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.ErrorLevel
	}
}
