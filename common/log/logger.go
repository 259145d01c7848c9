// Package log defines the unified logging interface used across
// keysort. Structured logging via zap keeps schema-build and encode
// failures queryable in production without scattering fmt.Printf
// calls through the core.
package log

import (
	"log"
	"os"
	"sync"

	"github.com/turtacn/keysort/common/constants"
	"github.com/turtacn/keysort/common/types/enum"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface all keysort packages log through.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field) // Fatal logs and then calls os.Exit(1).
	With(fields ...zap.Field) Logger       // Creates a child logger with added fields.
	SetLevel(level enum.LogLevel)          // Sets the minimum logging level.
}

type keysortLogger struct {
	zapLogger *zap.Logger
	atom      zap.AtomicLevel
	mu        sync.RWMutex
}

var globalLogger *keysortLogger
var once sync.Once

// InitLogger initializes the global logger instance. It should be
// called once at process startup. If logFilePath is empty, logs go to
// os.Stdout only. If level fails to parse, constants.DefaultLogLevel
// is used instead.
func InitLogger(logFilePath string, level string) {
	once.Do(func() {
		parsedLevel, err := enum.ParseLogLevel(level)
		if err != nil {
			log.Printf("failed to parse log level %q, using default %q", level, constants.DefaultLogLevel)
			parsedLevel, _ = enum.ParseLogLevel(constants.DefaultLogLevel)
		}
		atom := zap.NewAtomicLevelAt(toZapLevel(parsedLevel))

		consoleEncoderCfg := zap.NewDevelopmentEncoderConfig()
		consoleEncoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderCfg), zapcore.AddSync(os.Stdout), atom)

		cores := []zapcore.Core{consoleCore}

		if logFilePath != "" {
			fileEncoderCfg := zap.NewProductionEncoderConfig()
			fileEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
			fileEncoder := zapcore.NewJSONEncoder(fileEncoderCfg)
			fileWriter := zapcore.AddSync(&lumberjack.Logger{
				Filename:   logFilePath,
				MaxSize:    constants.LogFileMaxSizeMB,
				MaxBackups: constants.LogFileMaxBackups,
				MaxAge:     constants.LogFileMaxAgeDays,
				Compress:   true,
			})
			cores = append(cores, zapcore.NewCore(fileEncoder, fileWriter, atom))
		}

		zapLogger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
		globalLogger = &keysortLogger{zapLogger: zapLogger, atom: atom}
		zap.ReplaceGlobals(zapLogger)
	})
}

// GetLogger returns the global Logger. Before InitLogger runs it
// returns a no-op logger so packages can log unconditionally without
// nil checks.
func GetLogger() Logger {
	if globalLogger == nil {
		return &noOpLogger{}
	}
	return globalLogger
}

func toZapLevel(level enum.LogLevel) zapcore.Level {
	switch level {
	case enum.LogLevelDebug:
		return zapcore.DebugLevel
	case enum.LogLevelInfo:
		return zapcore.InfoLevel
	case enum.LogLevelWarn:
		return zapcore.WarnLevel
	case enum.LogLevelError:
		return zapcore.ErrorLevel
	case enum.LogLevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *keysortLogger) Debug(msg string, fields ...zap.Field) { l.zapLogger.Debug(msg, fields...) }
func (l *keysortLogger) Info(msg string, fields ...zap.Field)  { l.zapLogger.Info(msg, fields...) }
func (l *keysortLogger) Warn(msg string, fields ...zap.Field)  { l.zapLogger.Warn(msg, fields...) }
func (l *keysortLogger) Error(msg string, fields ...zap.Field) { l.zapLogger.Error(msg, fields...) }
func (l *keysortLogger) Fatal(msg string, fields ...zap.Field) { l.zapLogger.Fatal(msg, fields...) }

func (l *keysortLogger) With(fields ...zap.Field) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &keysortLogger{zapLogger: l.zapLogger.With(fields...), atom: l.atom}
}

func (l *keysortLogger) SetLevel(level enum.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.atom.SetLevel(toZapLevel(level))
}

// noOpLogger discards everything; used before InitLogger is called.
type noOpLogger struct{}

func (*noOpLogger) Debug(msg string, fields ...zap.Field) {}
func (*noOpLogger) Info(msg string, fields ...zap.Field)  {}
func (*noOpLogger) Warn(msg string, fields ...zap.Field)  {}
func (*noOpLogger) Error(msg string, fields ...zap.Field) {}
func (*noOpLogger) Fatal(msg string, fields ...zap.Field) { os.Exit(1) }
func (l *noOpLogger) With(fields ...zap.Field) Logger     { return l }
func (*noOpLogger) SetLevel(level enum.LogLevel)          {}
