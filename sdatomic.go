// Package sdatomic provides atomic references with sequentially consistent
// load, store and compare-and-set.
//
// MarkableReference couples a *T with a boolean mark. Both live in one
// immutable pair installed through a single atomic pointer, so a reader can
// never observe the reference of one update with the mark of another. This
// is what lock-free lists need when a node is logically deleted (marked) at
// the same instant its successor pointer is fixed.
//
// References compare by identity: two distinct *T holding equal values are
// different references.
//
// Payloads whose pointer type implements Shared are reference counted by
// the containers: ownership is acquired before a payload becomes visible and
// released after it has been replaced. Reads hand the caller an accessor of
// its own which the caller must Release. Other payloads are left to the
// garbage collector.
//
// Reference and Integer are the same pattern without a mark, and
// MarkableIndex packs an arena index and a mark into one word.
package sdatomic
