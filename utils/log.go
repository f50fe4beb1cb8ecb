package utils

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewLogger creates the engine logger. Every entry carries the session id
// so the output of separate runs can be told apart.
func NewLogger(cfg LogConfiguration, output io.Writer) (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "log level"), ErrInvalidConfiguration)
	}

	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger.WithField("session", uuid.New().String()), nil
}
