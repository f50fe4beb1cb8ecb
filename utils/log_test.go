package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewLogger(LogConfiguration{Level: "warn"}, buf)
	if err != nil {
		t.Fatal(err)
	}

	if log.Logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", log.Logger.GetLevel())
	}

	log.Info("hidden")
	log.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("info entry should be filtered")
	}
	if !strings.Contains(output, "shown") || !strings.Contains(output, "session=") {
		t.Errorf("expected warn entry with session field, got %q", output)
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger(LogConfiguration{Level: "loud"}, &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}
