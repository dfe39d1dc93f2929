package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures logrus for the whole process. Output goes to the
// file named by LOG_FILE, falling back to stdout when it cannot be opened.
func InitLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logFilePath := os.Getenv("LOG_FILE")
	if logFilePath == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
		logrus.SetOutput(os.Stdout)
		return
	}
	logrus.SetOutput(logFile)

	logrus.Info("Logger initialized")
}
