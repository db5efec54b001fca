package markstressd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soloos/sdatomic"
	"soloos/sdatomic/harrislist"
)

func TestMarkStressD(t *testing.T) {
	iterations := 2000
	if testing.Short() {
		iterations = 100
	}

	for _, emulate := range []bool{false, true} {
		var (
			markstressdIns MARKSTRESSD
			snapshotPath   = filepath.Join(t.TempDir(), "list.snapshot")
		)
		require.NoError(t, markstressdIns.Init(Options{
			Goroutines:     4,
			Iterations:     iterations,
			KeyRange:       64,
			EmulateLocking: emulate,
			SnapshotPath:   snapshotPath,
			LogLevel:       "warn",
		}))
		require.NoError(t, markstressdIns.Start())

		report := markstressdIns.Report()
		assert.Equal(t, int64(4*iterations), report.Counter)
		assert.Equal(t, report.Counter, report.CASSuccesses)
		assert.GreaterOrEqual(t, report.CASAttempts, report.CASSuccesses)
		assert.Equal(t, !emulate, report.LockFree)

		data, err := os.ReadFile(snapshotPath)
		require.NoError(t, err)
		restored, err := harrislist.Restore(data)
		require.NoError(t, err)
		assert.Equal(t, report.ListLen, restored.Len())
	}
}

func TestMarkStressDDefaults(t *testing.T) {
	var options Options
	options.setDefaults()
	assert.Equal(t, DefaultGoroutines, options.Goroutines)
	assert.Equal(t, DefaultIterations, options.Iterations)
	assert.Equal(t, int64(DefaultKeyRange), options.KeyRange)
}

func TestMarkStressDInvalidOptions(t *testing.T) {
	var markstressdIns MARKSTRESSD
	err := markstressdIns.Init(Options{Goroutines: -1})
	assert.ErrorIs(t, err, sdatomic.ErrInvalidArgument)

	err = markstressdIns.Init(Options{KeyRange: math.MaxInt64})
	assert.ErrorIs(t, err, sdatomic.ErrInvalidArgument)

	err = markstressdIns.Init(Options{KeyRange: math.MaxInt64 - 1, Goroutines: 1, Iterations: 10})
	assert.NoError(t, err)
	assert.NoError(t, markstressdIns.Start())

	err = markstressdIns.Init(Options{LogLevel: "loud"})
	assert.Error(t, err)
}
