package logger

import "github.com/hashicorp/go-retryablehttp"

// leveledLogger adapts our Logger to retryablehttp's logging interface
type leveledLogger struct {
	logger *Logger
}

// GetLeveledLogger returns a retryablehttp-compatible logger
func (l *Logger) GetLeveledLogger() retryablehttp.LeveledLogger {
	return &leveledLogger{logger: l}
}

func (t *leveledLogger) Debug(msg string, keyvals ...interface{}) {
	t.logger.Debugw(msg, keyvals...)
}

func (t *leveledLogger) Info(msg string, keyvals ...interface{}) {
	t.logger.Infow(msg, keyvals...)
}

func (t *leveledLogger) Warn(msg string, keyvals ...interface{}) {
	t.logger.Warnw(msg, keyvals...)
}

func (t *leveledLogger) Error(msg string, keyvals ...interface{}) {
	t.logger.Errorw(msg, keyvals...)
}
