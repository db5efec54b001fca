// Package sharedptr provides reference counted payload handles. A
// SharedPointer is owned by everyone holding an accessor on it; when the
// last accessor is released the release callback runs exactly once, after
// which the handle may be recycled by its Pool.
package sharedptr

import (
	"fmt"
	"sync/atomic"
)

const (
	SharedPointerUninited = int32(iota)
	SharedPointerInited
	SharedPointerReleasable
	SharedPointerReleased
)

type SharedPointerInvokeRelease[T any] func(p *SharedPointer[T])

type SharedPointer[T any] struct {
	accessor atomic.Int32
	status   atomic.Int32

	releaseFunc SharedPointerInvokeRelease[T]

	Data T
}

// Init hands the first accessor to the caller.
func (p *SharedPointer[T]) Init(data T, releaseFunc SharedPointerInvokeRelease[T]) {
	p.Data = data
	p.releaseFunc = releaseFunc
	p.accessor.Store(1)
	p.status.Store(SharedPointerInited)
}

func (p *SharedPointer[T]) GetAccessor() int32 {
	return p.accessor.Load()
}

func (p *SharedPointer[T]) IsInited() bool {
	return p.status.Load() == SharedPointerInited
}

func (p *SharedPointer[T]) IsReleased() bool {
	return p.status.Load() >= SharedPointerReleasable
}

// Acquire adds an accessor. The caller must already hold one.
func (p *SharedPointer[T]) Acquire() int32 {
	return p.accessor.Add(1)
}

// TryAcquire adds an accessor unless the count already dropped to zero.
// Readers that found the pointer through a shared location use it, since
// they hold no accessor of their own yet.
func (p *SharedPointer[T]) TryAcquire() bool {
	for {
		n := p.accessor.Load()
		if n <= 0 {
			return false
		}
		if p.accessor.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (p *SharedPointer[T]) Release() int32 {
	n := p.accessor.Add(-1)
	if n < 0 {
		panic(ErrReleased)
	}
	if n == 0 {
		p.status.Store(SharedPointerReleasable)
		if p.EnsureRelease() && p.releaseFunc != nil {
			p.releaseFunc(p)
		}
	}
	return n
}

func (p *SharedPointer[T]) EnsureRelease() bool {
	return p.status.CompareAndSwap(SharedPointerReleasable, SharedPointerReleased)
}

func (p *SharedPointer[T]) Reset() {
	var zero T
	p.Data = zero
	p.releaseFunc = nil
	p.accessor.Store(0)
	p.status.Store(SharedPointerUninited)
}

func (p *SharedPointer[T]) String() string {
	return fmt.Sprintf("SharedPointer(%v)", p.Data)
}
