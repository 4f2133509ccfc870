package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options logging options
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	File       string // Optional log file, rotated by lumberjack
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// Init build the global logger. Safe to call once at startup.
func Init(opts Options) error {
	level := parseLevel(opts.Level)

	var encoderCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if opts.File != "" {
		writer := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(writer), level))
	}

	base = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	sugar = base.WithOptions(zap.AddCallerSkip(1)).Sugar()

	// stdlib log output (gin recovery, third-party packages) goes through zap too
	zap.RedirectStdLog(base)
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L structured logger for call sites that want typed fields
func L() *zap.Logger {
	return base
}

func Debugf(template string, args ...interface{}) {
	sugar.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	sugar.Fatalf(template, args...)
}

// Sync flush buffered entries
func Sync() {
	_ = base.Sync()
}
