package sdatomic

import (
	"fmt"
	"runtime"
	"sync"

	"soloos/sdatomic/log"
)

type wordKind int

const (
	pointerWord wordKind = iota
	word64
	wordKindsNum
)

// Every Go port has native pointer sized compare-and-swap.
const pointerLockFree = true

var advisoryOnce [wordKindsNum]sync.Once

func (k wordKind) String() string {
	switch k {
	case pointerWord:
		return "pointer word"
	case word64:
		return "64-bit word"
	default:
		return "unknown word"
	}
}

func (k wordKind) lockFree() bool {
	switch k {
	case pointerWord:
		return pointerLockFree
	case word64:
		return word64LockFree
	default:
		return false
	}
}

func adviseLockFreedom(k wordKind) {
	advisoryOnce[k].Do(func() {
		log.Warn(fmt.Errorf("%w: %v on %s/%s, falling back to mutex emulation",
			ErrLockFreedomUnavailable, k, runtime.GOOS, runtime.GOARCH))
	})
}

// IsPointerLockFree reports whether pointer sized atomics are native.
func IsPointerLockFree() bool { return pointerWord.lockFree() }

// IsWord64LockFree reports whether 64-bit atomics are native.
func IsWord64LockFree() bool { return word64.lockFree() }

type Options struct {
	// EmulateLocking runs the instance on a mutex even when native atomics
	// exist. External behavior is identical.
	EmulateLocking bool
}

func (o Options) locked(k wordKind) bool {
	if !k.lockFree() {
		adviseLockFreedom(k)
		return true
	}
	return o.EmulateLocking
}

func markValue(mark interface{}) (bool, error) {
	switch v := mark.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("%w: mark must be a bool, got %T", ErrInvalidArgument, mark)
	}
}
