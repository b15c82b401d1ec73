package logger

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes structured JSON log lines to a rotating file. It is built
// once at startup and passed explicitly to every component; Close releases
// the file handle at exit.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

func New(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := slog.NewJSONHandler(fileWriter, opts)
	return &Logger{
		Logger: slog.New(handler),
		file:   fileWriter,
	}, nil
}

func (l *Logger) Close() error {
	return l.file.Close()
}
