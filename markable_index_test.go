package sdatomic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkableIndex(t *testing.T) {
	for _, mode := range testModes {
		t.Run(mode.name, func(t *testing.T) {
			var p MarkableIndex
			require.NoError(t, p.Init(42, nil, mode.options))

			index, mark := p.Get()
			assert.Equal(t, uint64(42), index)
			assert.False(t, mark)

			assert.True(t, p.CompareAndSet(42, 99, false, true))
			assert.Equal(t, uint64(99), p.GetIndex())
			assert.True(t, p.IsMarked())

			assert.False(t, p.CompareAndSet(42, 7, false, true))
			assert.False(t, p.WeakCompareAndSet(99, 7, false, true))
			index, mark = p.Get()
			assert.Equal(t, uint64(99), index)
			assert.True(t, mark)

			assert.True(t, p.AttemptMark(true, false))
			assert.False(t, p.AttemptMark(true, false))
			assert.Equal(t, uint64(99), p.GetIndex())

			p.Set(MaxMarkableIndex, true)
			index, mark = p.Get()
			assert.Equal(t, MaxMarkableIndex, index)
			assert.True(t, mark)
			assert.Equal(t, "sdatomic.MarkableIndex(9223372036854775807, true)", p.String())
		})
	}
}

func TestMarkableIndexInvalid(t *testing.T) {
	_, err := NewMarkableIndex(MaxMarkableIndex+1, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var p MarkableIndex
	assert.ErrorIs(t, p.Init(1, "no", Options{}), ErrInvalidArgument)
	assert.Equal(t, uint64(0), p.GetIndex())

	q, err := NewMarkableIndex(1, false)
	require.NoError(t, err)
	assert.Panics(t, func() { q.Set(MaxMarkableIndex+1, false) })
	assert.Panics(t, func() { q.CompareAndSet(1, MaxMarkableIndex+1, false, false) })
	assert.False(t, q.CompareAndSet(MaxMarkableIndex+1, 2, false, false))
	assert.Equal(t, uint64(1), q.GetIndex())
}

func TestMarkableIndexRace(t *testing.T) {
	const P = 8
	N := 10000
	if testing.Short() {
		N /= 100
	}

	for _, mode := range testModes {
		t.Run(mode.name, func(t *testing.T) {
			var (
				p  MarkableIndex
				wg sync.WaitGroup
			)
			require.NoError(t, p.Init(0, false, mode.options))
			for i := 0; i < P; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < N; j++ {
						for {
							index, mark := p.Get()
							if p.CompareAndSet(index, index+1, mark, !mark) {
								break
							}
						}
					}
				}()
			}
			wg.Wait()

			index, mark := p.Get()
			assert.Equal(t, uint64(P*N), index)
			assert.Equal(t, (P*N)%2 == 1, mark)
		})
	}
}
