package sdatomic

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MaxMarkableIndex is the largest index a MarkableIndex can hold; the low
// bit of the word is the mark.
const MaxMarkableIndex = ^uint64(0) >> 1

// MarkableIndex packs an arena index and a mark into one uint64 so both
// change with a single compare-and-swap. Indexes above MaxMarkableIndex
// make Set and CompareAndSet panic with ErrInvalidArgument.
type MarkableIndex struct {
	v atomic.Uint64

	locked bool
	mutex  sync.Mutex
	word   uint64
}

func packIndex(index uint64, mark bool) uint64 {
	w := index << 1
	if mark {
		w |= 1
	}
	return w
}

func unpackIndex(w uint64) (uint64, bool) {
	return w >> 1, w&1 == 1
}

func checkIndex(index uint64) error {
	if index > MaxMarkableIndex {
		return fmt.Errorf("%w: index %d exceeds %d", ErrInvalidArgument, index, MaxMarkableIndex)
	}
	return nil
}

func mustIndex(index uint64) {
	if err := checkIndex(index); err != nil {
		panic(err)
	}
}

func NewMarkableIndex(index uint64, mark bool) (*MarkableIndex, error) {
	p := new(MarkableIndex)
	if err := p.Init(index, mark, Options{}); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *MarkableIndex) Init(index uint64, mark interface{}, options Options) error {
	m, err := markValue(mark)
	if err != nil {
		return err
	}
	if err = checkIndex(index); err != nil {
		return err
	}
	p.locked = options.locked(word64)
	if p.locked {
		p.word = packIndex(index, m)
		return nil
	}
	p.v.Store(packIndex(index, m))
	return nil
}

func (p *MarkableIndex) LockFree() bool { return !p.locked }

func (p *MarkableIndex) load() uint64 {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		return p.word
	}
	return p.v.Load()
}

func (p *MarkableIndex) cas(old, new uint64) bool {
	if p.locked {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		if p.word != old {
			return false
		}
		p.word = new
		return true
	}
	return p.v.CompareAndSwap(old, new)
}

func (p *MarkableIndex) Get() (uint64, bool) { return unpackIndex(p.load()) }

func (p *MarkableIndex) GetIndex() uint64 {
	index, _ := p.Get()
	return index
}

func (p *MarkableIndex) IsMarked() bool {
	_, mark := p.Get()
	return mark
}

func (p *MarkableIndex) Set(index uint64, mark bool) {
	mustIndex(index)
	w := packIndex(index, mark)
	if p.locked {
		p.mutex.Lock()
		p.word = w
		p.mutex.Unlock()
		return
	}
	p.v.Store(w)
}

// CompareAndSet swaps the whole word at once and never fails spuriously.
func (p *MarkableIndex) CompareAndSet(expectIndex, updateIndex uint64, expectMark, updateMark bool) bool {
	mustIndex(updateIndex)
	if checkIndex(expectIndex) != nil {
		return false
	}
	return p.cas(packIndex(expectIndex, expectMark), packIndex(updateIndex, updateMark))
}

// WeakCompareAndSet is CompareAndSet; a single word CAS has no spurious
// failure to allow for.
func (p *MarkableIndex) WeakCompareAndSet(expectIndex, updateIndex uint64, expectMark, updateMark bool) bool {
	return p.CompareAndSet(expectIndex, updateIndex, expectMark, updateMark)
}

// AttemptMark changes only the mark. It makes one attempt, so a concurrent
// index change makes it fail even when the mark matched.
func (p *MarkableIndex) AttemptMark(expectMark, updateMark bool) bool {
	w := p.load()
	index, mark := unpackIndex(w)
	if mark != expectMark {
		return false
	}
	if mark == updateMark {
		return true
	}
	return p.cas(w, packIndex(index, updateMark))
}

func (p *MarkableIndex) String() string {
	index, mark := p.Get()
	return fmt.Sprintf("sdatomic.MarkableIndex(%d, %t)", index, mark)
}
