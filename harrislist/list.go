// Package harrislist is a lock-free ordered set of int64 keys in the style
// of Harris. A node is logically deleted by marking its own next
// reference; since the mark and the successor change together, no insert
// can slip in behind a node that is being removed.
package harrislist

import (
	"soloos/sdatomic"
	"soloos/sdatomic/util"
)

type node struct {
	key  int64
	next sdatomic.MarkableReference[node]
}

type List struct {
	options sdatomic.Options

	head *node
	tail *node
	size sdatomic.Integer
}

func NewList() *List {
	return NewListWithOptions(sdatomic.Options{})
}

func NewListWithOptions(options sdatomic.Options) *List {
	l := &List{options: options}
	l.tail = l.newNode(0, nil)
	l.head = l.newNode(0, l.tail)
	l.size.Init(0, options)
	return l
}

func (l *List) newNode(key int64, next *node) *node {
	n := &node{key: key}
	util.AssertErrIsNil(n.next.InitWithOptions(next, false, l.options))
	return n
}

// find returns adjacent pred and curr with pred.key < key <= curr.key,
// unlinking marked nodes on the way.
func (l *List) find(key int64) (pred, curr *node) {
retry:
	for {
		pred = l.head
		curr = pred.next.GetReference()
		for {
			succ, marked := curr.next.Get()
			for marked {
				if !pred.next.CompareAndSet(curr, succ, false, false) {
					continue retry
				}
				curr = succ
				succ, marked = curr.next.Get()
			}
			if curr == l.tail || curr.key >= key {
				return pred, curr
			}
			pred, curr = curr, succ
		}
	}
}

// Add inserts key, reporting false if it was already present.
func (l *List) Add(key int64) bool {
	for {
		pred, curr := l.find(key)
		if curr != l.tail && curr.key == key {
			return false
		}
		n := l.newNode(key, curr)
		if pred.next.CompareAndSet(curr, n, false, false) {
			l.size.Increment()
			return true
		}
	}
}

// Remove deletes key, reporting false if it was absent. Exactly one of
// several concurrent removers of the same key succeeds.
func (l *List) Remove(key int64) bool {
	for {
		pred, curr := l.find(key)
		if curr == l.tail || curr.key != key {
			return false
		}
		if !curr.next.AttemptMark(false, true) {
			continue
		}
		l.size.Decrement()
		succ := curr.next.GetReference()
		// a failed unlink is left to the next find over this range
		pred.next.CompareAndSet(curr, succ, false, false)
		return true
	}
}

// Contains never writes and never retries.
func (l *List) Contains(key int64) bool {
	curr := l.head.next.GetReference()
	for curr != l.tail && curr.key < key {
		curr = curr.next.GetReference()
	}
	return curr != l.tail && curr.key == key && !curr.next.IsMarked()
}

func (l *List) Len() int {
	return int(l.size.Get())
}

// Keys returns the unmarked keys in ascending order. Under concurrent
// updates it is a best-effort view, not an atomic snapshot.
func (l *List) Keys() []int64 {
	var keys []int64
	curr := l.head.next.GetReference()
	for curr != l.tail {
		next, marked := curr.next.Get()
		if !marked {
			keys = append(keys, curr.key)
		}
		curr = next
	}
	return keys
}
