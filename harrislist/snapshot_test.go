package harrislist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	l := NewList()
	for _, k := range []int64{40, -7, 3, 1 << 40} {
		l.Add(k)
	}
	l.Remove(3)

	restored, err := Restore(l.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, []int64{-7, 40, 1 << 40}, restored.Keys())
	assert.Equal(t, 3, restored.Len())
}

func TestSnapshotEmpty(t *testing.T) {
	restored, err := Restore(NewList().Snapshot())
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Len())
}

func TestRestoreCorrupt(t *testing.T) {
	_, err := Restore([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	_, err = Restore([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	l := NewList()
	l.Add(1)
	data := l.Snapshot()
	_, err = Restore(data[:len(data)-8])
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}
