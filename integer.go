package sdatomic

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// Integer is an int64 with sequentially consistent operations. On ports
// without native 64-bit atomics it runs on a mutex.
type Integer struct {
	v atomic.Int64

	locked bool
	mutex  sync.Mutex
	value  int64
}

func NewInteger(value int64) *Integer {
	p := new(Integer)
	p.Init(value, Options{})
	return p
}

func (p *Integer) Init(value int64, options Options) {
	p.locked = options.locked(word64)
	if p.locked {
		p.value = value
		return
	}
	p.v.Store(value)
}

func (p *Integer) LockFree() bool { return !p.locked }

func (p *Integer) Get() int64 {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		return p.value
	}
	return p.v.Load()
}

func (p *Integer) Set(value int64) {
	p.GetAndSet(value)
}

func (p *Integer) GetAndSet(value int64) int64 {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		old := p.value
		p.value = value
		return old
	}
	return p.v.Swap(value)
}

// Add returns the new value.
func (p *Integer) Add(delta int64) int64 {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		p.value += delta
		return p.value
	}
	return p.v.Add(delta)
}

func (p *Integer) Increment() int64 { return p.Add(1) }

func (p *Integer) Decrement() int64 { return p.Add(-1) }

func (p *Integer) CompareAndSet(expect, update int64) bool {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		if p.value != expect {
			return false
		}
		p.value = update
		return true
	}
	return p.v.CompareAndSwap(expect, update)
}

// WeakCompareAndSet never fails spuriously here; it exists so callers can
// be written against the weak contract.
func (p *Integer) WeakCompareAndSet(expect, update int64) bool {
	return p.CompareAndSet(expect, update)
}

func (p *Integer) String() string {
	return "sdatomic.Integer(" + strconv.FormatInt(p.Get(), 10) + ")"
}
