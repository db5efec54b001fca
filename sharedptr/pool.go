package sharedptr

import (
	"sync"
	"sync/atomic"
)

type PoolInvokePrepareNew[T any] func(p *SharedPointer[T])
type PoolInvokeBeforeRelease[T any] func(p *SharedPointer[T])

// Pool
// user -> Alloc -> (recycled or new) SharedPointer with one accessor -> user
// last Release -> beforeReleaseFunc -> Reset -> back into the pool
type Pool[T any] struct {
	inited bool

	prepareNewFunc    PoolInvokePrepareNew[T]
	beforeReleaseFunc PoolInvokeBeforeRelease[T]

	activeNum   atomic.Int32
	allocNum    atomic.Int64
	releasedNum atomic.Int64

	pool sync.Pool
}

func (p *Pool[T]) Init(prepareNewFunc PoolInvokePrepareNew[T],
	beforeReleaseFunc PoolInvokeBeforeRelease[T]) error {
	p.prepareNewFunc = prepareNewFunc
	p.beforeReleaseFunc = beforeReleaseFunc
	p.pool.New = func() any {
		sp := new(SharedPointer[T])
		if p.prepareNewFunc != nil {
			p.prepareNewFunc(sp)
		}
		return sp
	}
	p.activeNum.Store(0)
	p.inited = true
	return nil
}

// Alloc returns a pointer holding data with one accessor owned by the caller.
func (p *Pool[T]) Alloc(data T) *SharedPointer[T] {
	if !p.inited {
		panic(ErrPoolNotInited)
	}
	sp := p.pool.Get().(*SharedPointer[T])
	p.activeNum.Add(1)
	p.allocNum.Add(1)
	sp.Init(data, p.release)
	return sp
}

func (p *Pool[T]) release(sp *SharedPointer[T]) {
	if p.beforeReleaseFunc != nil {
		p.beforeReleaseFunc(sp)
	}
	sp.Reset()
	p.releasedNum.Add(1)
	p.activeNum.Add(-1)
	p.pool.Put(sp)
}

// Active is the number of allocated pointers whose accessors are not all released.
func (p *Pool[T]) Active() int32 { return p.activeNum.Load() }

func (p *Pool[T]) AllocNum() int64 { return p.allocNum.Load() }

func (p *Pool[T]) ReleasedNum() int64 { return p.releasedNum.Load() }
