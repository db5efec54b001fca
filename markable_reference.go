package sdatomic

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// markPair is never mutated after it is published. A nil *markPair reads
// as (nil, false).
type markPair[T any] struct {
	ref  *T
	mark bool
}

func (n *markPair[T]) load() (*T, bool) {
	if n == nil {
		return nil, false
	}
	return n.ref, n.mark
}

// MarkableReference holds a (*T, mark) pair updated as one unit.
// The zero value holds (nil, false) and uses native atomics.
// A MarkableReference must not be copied after first use.
type MarkableReference[T any] struct {
	pair atomic.Pointer[markPair[T]]

	// mutex emulation, see markable_reference_emulated.go
	locked bool
	mutex  sync.Mutex
	ref    *T
	mark   bool
}

func NewMarkableReference[T any](ref *T, mark bool) *MarkableReference[T] {
	p := new(MarkableReference[T])
	p.InitWithOptions(ref, mark, Options{})
	return p
}

// Init stores the initial pair. mark must be nil (false) or a bool; any
// other value fails with ErrInvalidArgument and leaves p untouched.
// Init must complete before p is shared. Re-initializing releases the
// reference p held before.
func (p *MarkableReference[T]) Init(ref *T, mark interface{}) error {
	return p.InitWithOptions(ref, mark, Options{})
}

func (p *MarkableReference[T]) InitWithOptions(ref *T, mark interface{}, options Options) error {
	m, err := markValue(mark)
	if err != nil {
		return err
	}

	oldRef := p.reset()
	p.locked = options.locked(pointerWord)
	acquire(ref)
	if p.locked {
		p.ref, p.mark = ref, m
	} else {
		p.pair.Store(&markPair[T]{ref: ref, mark: m})
	}
	release(oldRef)
	return nil
}

// reset empties p in whichever mode it ran and hands back the reference it
// owned.
func (p *MarkableReference[T]) reset() *T {
	if p.locked {
		oldRef := p.ref
		p.ref, p.mark = nil, false
		return oldRef
	}
	oldRef, _ := p.pair.Swap(nil).load()
	return oldRef
}

func (p *MarkableReference[T]) LockFree() bool { return !p.locked }

// acquireCurrent returns the current pair with an accessor on the reference
// taken for the caller. The pair is re-read after acquiring: pairs are
// never reinstalled, so an unchanged pair proves the reference was owned by
// p for the whole time and the accessor was not taken on a released payload.
func (p *MarkableReference[T]) acquireCurrent() (*T, bool) {
	for {
		n := p.pair.Load()
		ref, mark := n.load()
		if !tryAcquire(ref) {
			continue
		}
		if p.pair.Load() == n {
			return ref, mark
		}
		release(ref)
	}
}

// GetReference returns the current reference. The caller co-owns it.
func (p *MarkableReference[T]) GetReference() *T {
	ref, _ := p.Get()
	return ref
}

func (p *MarkableReference[T]) IsMarked() bool {
	if p.locked {
		return p.lockedIsMarked()
	}
	_, mark := p.pair.Load().load()
	return mark
}

// Get returns the reference and mark of one consistent snapshot. The
// caller co-owns the reference.
func (p *MarkableReference[T]) Get() (*T, bool) {
	if p.locked {
		return p.lockedGet()
	}
	return p.acquireCurrent()
}

// Set unconditionally installs (ref, mark). The caller keeps its own
// ownership of ref.
func (p *MarkableReference[T]) Set(ref *T, mark bool) {
	if p.locked {
		p.lockedSet(ref, mark)
		return
	}
	acquire(ref)
	old := p.pair.Swap(&markPair[T]{ref: ref, mark: mark})
	oldRef, _ := old.load()
	release(oldRef)
}

// Clear installs (nil, false) and releases the held reference.
func (p *MarkableReference[T]) Clear() {
	if p.locked {
		p.lockedSet(nil, false)
		return
	}
	old := p.pair.Swap(nil)
	oldRef, _ := old.load()
	release(oldRef)
}

// CompareAndSet installs (updateRef, updateMark) if the current reference
// is expectRef by identity and the current mark is expectMark. It never
// fails spuriously: false means the current pair differed from the
// expected one. The caller must own updateRef.
func (p *MarkableReference[T]) CompareAndSet(expectRef, updateRef *T, expectMark, updateMark bool) bool {
	if p.locked {
		return p.lockedCompareAndSet(expectRef, updateRef, expectMark, updateMark)
	}
	for {
		n := p.pair.Load()
		ref, mark := n.load()
		if ref != expectRef || mark != expectMark {
			return false
		}
		if ref == updateRef && mark == updateMark {
			return true
		}
		// a failed swap with a matching pair means another writer installed
		// an equal pair in between
		if p.swapPair(n, updateRef, updateMark) {
			return true
		}
	}
}

// WeakCompareAndSet is CompareAndSet with a single attempt. It may return
// false while the expected pair holds, when a concurrent writer replaced
// the pair with an equal one. Use it in a retry loop.
func (p *MarkableReference[T]) WeakCompareAndSet(expectRef, updateRef *T, expectMark, updateMark bool) bool {
	if p.locked {
		return p.lockedCompareAndSet(expectRef, updateRef, expectMark, updateMark)
	}
	n := p.pair.Load()
	ref, mark := n.load()
	if ref != expectRef || mark != expectMark {
		return false
	}
	if ref == updateRef && mark == updateMark {
		return true
	}
	return p.swapPair(n, updateRef, updateMark)
}

func (p *MarkableReference[T]) swapPair(n *markPair[T], updateRef *T, updateMark bool) bool {
	acquire(updateRef)
	if p.pair.CompareAndSwap(n, &markPair[T]{ref: updateRef, mark: updateMark}) {
		oldRef, _ := n.load()
		release(oldRef)
		return true
	}
	release(updateRef)
	return false
}

// AttemptMark sets the mark to updateMark if it is expectMark, keeping
// whatever reference is current. It may fail spuriously when the
// reference changes concurrently; repeated attempts succeed while the
// mark holds expectMark and no other writer interferes.
func (p *MarkableReference[T]) AttemptMark(expectMark, updateMark bool) bool {
	if p.locked {
		return p.lockedAttemptMark(expectMark, updateMark)
	}
	n := p.pair.Load()
	ref, mark := n.load()
	if mark != expectMark {
		return false
	}
	if mark == updateMark {
		return true
	}
	// p owns ref only while n is installed
	if !tryAcquire(ref) {
		return false
	}
	if p.pair.CompareAndSwap(n, &markPair[T]{ref: ref, mark: updateMark}) {
		release(ref)
		return true
	}
	release(ref)
	return false
}

func (p *MarkableReference[T]) String() string {
	ref, mark := p.Get()
	defer release(ref)
	return fmt.Sprintf("sdatomic.MarkableReference(%s, %t)", formatRef(ref), mark)
}

func formatRef[T any](ref *T) string {
	if ref == nil {
		return "<nil>"
	}
	if s, ok := any(ref).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", *ref)
}
