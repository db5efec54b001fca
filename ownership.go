package sdatomic

// Shared is implemented by reference counted payloads, see
// sharedptr.SharedPointer.
type Shared interface {
	// Acquire adds an accessor; the caller already holds one.
	Acquire() int32
	// TryAcquire adds an accessor unless the payload was already released.
	TryAcquire() bool
	Release() int32
}

func acquire[T any](ref *T) {
	if ref == nil {
		return
	}
	if s, ok := any(ref).(Shared); ok {
		s.Acquire()
	}
}

func tryAcquire[T any](ref *T) bool {
	if ref == nil {
		return true
	}
	if s, ok := any(ref).(Shared); ok {
		return s.TryAcquire()
	}
	return true
}

func release[T any](ref *T) {
	if ref == nil {
		return
	}
	if s, ok := any(ref).(Shared); ok {
		s.Release()
	}
}
