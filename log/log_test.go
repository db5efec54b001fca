package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	require.NoError(t, SetLevel("warn"))
	defer SetLevel("debug")

	Info("hidden")
	Warn("visible, count:", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "visible, count:3")
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	assert.Error(t, SetLevel("loud"))
}
