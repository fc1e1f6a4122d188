// Package timeline merges boundary sequences into a single timeline and
// evaluates products of series over it.
package timeline

import (
	"cmp"
	"container/heap"
	"iter"
	"time"
)

// Merge lazily merges ascending sequences into one ascending sequence,
// dropping values equal to the one yielded just before. The result is
// infinite if any input is; the caller bounds it.
func Merge[T cmp.Ordered](seqs ...iter.Seq[T]) iter.Seq[T] {
	return MergeFunc(cmp.Compare[T], seqs...)
}

// MergeTimes is Merge for dates.
func MergeTimes(seqs ...iter.Seq[time.Time]) iter.Seq[time.Time] {
	return MergeFunc(func(a, b time.Time) int { return a.Compare(b) }, seqs...)
}

// MergeFunc is Merge with an explicit ordering.
func MergeFunc[T any](compare func(a, b T) int, seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		h := &mergeHeap[T]{compare: compare}
		defer h.stopAll()

		for _, seq := range seqs {
			next, stop := iter.Pull(seq)
			h.stops = append(h.stops, stop)
			if v, ok := next(); ok {
				h.items = append(h.items, mergeItem[T]{value: v, next: next})
			}
		}
		heap.Init(h)

		var last T
		started := false
		for h.Len() > 0 {
			top := &h.items[0]
			v := top.value
			if nv, ok := top.next(); ok {
				top.value = nv
				heap.Fix(h, 0)
			} else {
				heap.Pop(h)
			}

			if started && compare(v, last) == 0 {
				continue
			}
			if !yield(v) {
				return
			}
			last, started = v, true
		}
	}
}

type mergeItem[T any] struct {
	value T
	next  func() (T, bool)
}

type mergeHeap[T any] struct {
	items   []mergeItem[T]
	stops   []func()
	compare func(a, b T) int
}

func (h *mergeHeap[T]) Len() int           { return len(h.items) }
func (h *mergeHeap[T]) Less(i, j int) bool { return h.compare(h.items[i].value, h.items[j].value) < 0 }
func (h *mergeHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *mergeHeap[T]) Push(x any)         { h.items = append(h.items, x.(mergeItem[T])) }

func (h *mergeHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

func (h *mergeHeap[T]) stopAll() {
	for _, stop := range h.stops {
		stop()
	}
}

// Window yields the values of an ascending sequence that fall in the closed
// range [from, to] and stops reading once a value passes to.
func Window(seq iter.Seq[time.Time], from, to time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for t := range seq {
			if t.Before(from) {
				continue
			}
			if t.After(to) || !yield(t) {
				return
			}
		}
	}
}
