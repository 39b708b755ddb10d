package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	base   *zap.Logger
	logger *zap.Logger
	Logger *zap.SugaredLogger
)

func init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.CallerKey = "logger_name"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	Replace(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
}

// Replace swaps the package logger, e.g. for zaptest or zap.NewNop in tests.
func Replace(l *zap.Logger) {
	base = l
	logger = l
	Logger = l.Sugar()
}

// SetName tags every entry with logName. Calling it again replaces the previous name.
func SetName(name string) {
	logger = base.With(zap.String("logName", name))
	Logger = logger.Sugar()
}

// SetLevel changes the minimum enabled level ("debug", "info", "warn", "error").
// Unknown values keep the current level.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		Warnf("Unknown log level %q, keeping %s", name, level.Level())
		return
	}
	level.SetLevel(l)
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Sync()
}

// Info logs a message at InfoLevel with the fields passed at the log site.
func Info(message string, fields ...zap.Field) {
	logger.Info(message, fields...)
}

func Debug(message string, fields ...zap.Field) {
	logger.Debug(message, fields...)
}

func Warn(message string, fields ...zap.Field) {
	logger.Warn(message, fields...)
}

func Warnf(message string, args ...any) {
	Logger.Warnf(message, args...)
}

// Error logs a message at ErrorLevel with the fields passed at the log site.
func Error(message string, fields ...zap.Field) {
	logger.Error(message, fields...)
}

func Errorf(message string, args ...any) {
	Logger.Errorf(message, args...)
}

// Fatal logs at FatalLevel and then calls os.Exit(1).
func Fatal(message string, fields ...zap.Field) {
	logger.Fatal(message, fields...)
}

func Fatalf(message string, args ...any) {
	Logger.Fatalf(message, args...)
}
