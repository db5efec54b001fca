//go:build !mips && !mipsle

package sdatomic

const word64LockFree = true
