package sl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veles-works/ems-console/internal/lib/logger/sl"
)

func TestErr(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer // buffer for log capturing
	// Create slog.Logger, which writes in logBuf
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	errAttr := sl.Err(assert.AnError)
	testLogger.Warn("expected result:", errAttr)

	loggedOutput := logBuf.String()

	assert.Contains(t, loggedOutput, assert.AnError.Error())
}
