package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir         = "logs"
	fileBufferSize = 32 * 1024
	consoleBuffer  = 1000
)

// NewLogger builds the JSON logger shared by every component. Entries are
// written asynchronously to logs/<name>.log and mirrored to stdout.
func NewLogger(name string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))

	if name == "" {
		name = "api"
	}
	logFile := filepath.Clean(filepath.Join(logDir, name+".log"))
	if !strings.HasPrefix(logFile, logDir+string(filepath.Separator)) {
		log.Fatalf("Invalid log file path: must be in logs directory")
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		log.Fatalf("Failed to create logs directory: %v", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, fileBufferSize)
	if err != nil {
		log.Fatalf("Failed to initialize async log writer: %v", err)
	}
	logger.SetOutput(asyncWriter)
	logger.AddHook(NewAsyncConsoleHook(consoleBuffer))

	return logger
}

func levelFromEnv(level string) logrus.Level {
	if strings.EqualFold(level, "debug") {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
