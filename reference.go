package sdatomic

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Reference is MarkableReference without the mark.
type Reference[T any] struct {
	v atomic.Pointer[T]

	locked bool
	mutex  sync.Mutex
	ref    *T
}

func NewReference[T any](ref *T) *Reference[T] {
	p := new(Reference[T])
	p.Init(ref, Options{})
	return p
}

// Init must complete before p is shared. Re-initializing releases the
// reference p held before.
func (p *Reference[T]) Init(ref *T, options Options) {
	var oldRef *T
	if p.locked {
		oldRef, p.ref = p.ref, nil
	} else {
		oldRef = p.v.Swap(nil)
	}

	p.locked = options.locked(pointerWord)
	acquire(ref)
	if p.locked {
		p.ref = ref
	} else {
		p.v.Store(ref)
	}
	release(oldRef)
}

func (p *Reference[T]) LockFree() bool { return !p.locked }

// Get returns the current reference. The caller co-owns it.
func (p *Reference[T]) Get() *T {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		acquire(p.ref)
		return p.ref
	}
	for {
		ref := p.v.Load()
		if !tryAcquire(ref) {
			continue
		}
		if p.v.Load() == ref {
			return ref
		}
		release(ref)
	}
}

func (p *Reference[T]) Set(ref *T) {
	release(p.GetAndSet(ref))
}

// GetAndSet installs ref and hands the ownership p held on the previous
// reference to the caller.
func (p *Reference[T]) GetAndSet(ref *T) *T {
	acquire(ref)
	if p.locked {
		p.mutex.Lock()
		old := p.ref
		p.ref = ref
		p.mutex.Unlock()
		return old
	}
	return p.v.Swap(ref)
}

func (p *Reference[T]) Clear() {
	p.Set(nil)
}

// CompareAndSet installs update if the current reference is expect by
// identity. It never fails spuriously. The caller must own update.
func (p *Reference[T]) CompareAndSet(expect, update *T) bool {
	acquire(update)
	if p.locked {
		p.mutex.Lock()
		if p.ref != expect {
			p.mutex.Unlock()
			release(update)
			return false
		}
		p.ref = update
		p.mutex.Unlock()
		release(expect)
		return true
	}
	if p.v.CompareAndSwap(expect, update) {
		release(expect)
		return true
	}
	release(update)
	return false
}

// WeakCompareAndSet has the CompareAndSet contract minus the guarantee
// against spurious failure. A single pointer CAS compares by identity and
// cannot fail spuriously, so the two are the same here.
func (p *Reference[T]) WeakCompareAndSet(expect, update *T) bool {
	return p.CompareAndSet(expect, update)
}

func (p *Reference[T]) String() string {
	ref := p.Get()
	defer release(ref)
	return fmt.Sprintf("sdatomic.Reference(%s)", formatRef(ref))
}
