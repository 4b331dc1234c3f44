package logger

import (
	"os"
	"sync"
)

var (
	// Global logger instance as handed out to callers
	globalBase *Logger
	// globalLogger is globalBase reporting the caller of the package functions
	globalLogger *Logger
	globalMu     sync.RWMutex
)

func init() {
	// Initialize with default configuration
	SetGlobalLogger(NewDefault())

	// Configure from environment variables
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure sets level and format of the global logger; unknown or empty values are ignored
func Configure(level, format string) {
	l := GetGlobalLogger()
	if level != "" {
		if lvl, ok := ParseLevel(level); ok {
			l.SetLevel(lvl)
		}
	}
	if format != "" {
		if f, ok := ParseFormat(format); ok {
			l.SetFormat(f)
		}
	}
	SetGlobalLogger(l)
}

// withSkip returns a copy that reports callers one or more frames further up
func (l *Logger) withSkip(extra int) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c := &Logger{
		level:     l.level,
		format:    l.format,
		output:    l.output,
		component: l.component,
		skip:      l.skip + extra,
	}
	c.build()
	return c
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalBase
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	skipped := logger.withSkip(1)
	globalMu.Lock()
	defer globalMu.Unlock()
	globalBase = logger
	globalLogger = skipped
}

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Global convenience functions that use the global logger

// Debug logs a debug message using the global logger
func Debug(message string, fields ...map[string]interface{}) {
	global().Debug(message, fields...)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	global().Info(message, fields...)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...map[string]interface{}) {
	global().Warn(message, fields...)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...map[string]interface{}) {
	global().Error(message, err, fields...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...map[string]interface{}) {
	global().Fatal(message, err, fields...)
}

// Debugf logs a formatted debug message using the global logger
func Debugf(format string, args ...interface{}) {
	global().Debugf(format, args...)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	global().Infof(format, args...)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	global().Warnf(format, args...)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...interface{}) {
	global().Errorf(format, args...)
}

// Fatalf logs a formatted fatal message using the global logger and exits
func Fatalf(format string, args ...interface{}) {
	global().Fatalf(format, args...)
}
