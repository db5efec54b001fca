package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOptions struct {
	Goroutines int
	LogLevel   string
	Emulate    bool `json:"emulate"`
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Goroutines": 4, "LogLevel": "warn", "emulate": true}`), 0o644))

	var options testOptions
	require.NoError(t, LoadOptionsFile(path, &options))
	assert.Equal(t, testOptions{Goroutines: 4, LogLevel: "warn", Emulate: true}, options)

	require.NoError(t, os.WriteFile(path, []byte(`{"Goroutines": `), 0o644))
	assert.Error(t, LoadOptionsFile(path, &options))

	err := LoadOptionsFile(filepath.Join(dir, "missing.json"), &options)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { AssertErrIsNil(nil) })
	assert.Panics(t, func() { AssertErrIsNil(errors.New("boom")) })
	assert.PanicsWithValue(t, "bad", func() { AssertTrue(false, "bad") })
}
