package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the shared logger. Level comes from LOG_LEVEL and
// defaults to info; entries carry a "path" field identifying the component
// that wrote them.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
