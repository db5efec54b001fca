package sdatomic

func (p *MarkableReference[T]) lockedIsMarked() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.mark
}

func (p *MarkableReference[T]) lockedGet() (*T, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	acquire(p.ref)
	return p.ref, p.mark
}

func (p *MarkableReference[T]) lockedSet(ref *T, mark bool) {
	acquire(ref)
	p.mutex.Lock()
	old := p.ref
	p.ref, p.mark = ref, mark
	p.mutex.Unlock()
	release(old)
}

func (p *MarkableReference[T]) lockedCompareAndSet(expectRef, updateRef *T, expectMark, updateMark bool) bool {
	acquire(updateRef)
	p.mutex.Lock()
	if p.ref != expectRef || p.mark != expectMark {
		p.mutex.Unlock()
		release(updateRef)
		return false
	}
	old := p.ref
	p.ref, p.mark = updateRef, updateMark
	p.mutex.Unlock()
	release(old)
	return true
}

func (p *MarkableReference[T]) lockedAttemptMark(expectMark, updateMark bool) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.mark != expectMark {
		return false
	}
	p.mark = updateMark
	return true
}
