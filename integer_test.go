package sdatomic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteger(t *testing.T) {
	for _, mode := range testModes {
		t.Run(mode.name, func(t *testing.T) {
			var p Integer
			p.Init(5, mode.options)
			assert.Equal(t, int64(5), p.Get())

			assert.Equal(t, int64(6), p.Increment())
			assert.Equal(t, int64(5), p.Decrement())
			assert.Equal(t, int64(15), p.Add(10))

			assert.False(t, p.CompareAndSet(5, 1))
			assert.True(t, p.CompareAndSet(15, 1))
			assert.True(t, p.WeakCompareAndSet(1, 2))
			assert.Equal(t, int64(2), p.GetAndSet(-3))
			p.Set(7)
			assert.Equal(t, "sdatomic.Integer(7)", p.String())
		})
	}
}

func TestIntegerConcurrentAdd(t *testing.T) {
	const P = 8
	N := 100000
	if testing.Short() {
		N /= 100
	}

	for _, mode := range testModes {
		t.Run(mode.name, func(t *testing.T) {
			var (
				p  Integer
				wg sync.WaitGroup
			)
			p.Init(0, mode.options)
			for i := 0; i < P; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < N; j++ {
						p.Increment()
						for {
							v := p.Get()
							if p.WeakCompareAndSet(v, v+1) {
								break
							}
						}
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, int64(2*P*N), p.Get())
		})
	}
}
