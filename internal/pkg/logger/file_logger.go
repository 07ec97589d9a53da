package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// FileLogger logs JSON lines to a size-rotated file.
type FileLogger struct {
	slogLogger
	writer *lumberjack.Logger
}

// NewFileLogger creates a new file logger with rotation settings.
// maxSize is in megabytes and maxAge in days.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) *FileLogger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})
	return &FileLogger{slogLogger: newSlogLogger(handler), writer: writer}
}

// Close closes the current log file.
func (l *FileLogger) Close() error {
	return l.writer.Close()
}
