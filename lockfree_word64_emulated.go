//go:build mips || mipsle

package sdatomic

// 64-bit atomics on 32-bit mips are spinlock emulated by the runtime.
const word64LockFree = false
