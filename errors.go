package sdatomic

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLockFreedomUnavailable is logged, never returned: the affected
	// instances keep working on a mutex.
	ErrLockFreedomUnavailable = errors.New("atomic operations are not lock free")
)
