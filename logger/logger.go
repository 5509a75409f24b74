package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. An empty or unwritable logFile
// falls back to stdout.
func Init(level, logFile string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(openOutput(logFile))

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	logrus.Info("Logger initialized")
}

func openOutput(logFilePath string) io.Writer {
	if logFilePath == "" {
		return os.Stdout
	}
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
		return os.Stdout
	}
	return logFile
}
