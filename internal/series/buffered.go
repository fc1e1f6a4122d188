package series

import (
	"iter"
	"sync"
)

// Step produces the next element of a sequence. It reports false once the
// sequence is exhausted; it is not called again after that.
type Step[T any] func() (T, bool)

// Buffered is a lazily generated sequence whose elements are kept in an
// append-only buffer. Any number of cursors can read it, each starting from
// the first element; an element is generated only when a cursor first
// reaches it, and then only once.
type Buffered[T any] struct {
	mu    sync.Mutex
	items []T
	next  Step[T]
	done  bool
}

// NewBuffered returns a sequence generated by next.
func NewBuffered[T any](next Step[T]) *Buffered[T] {
	return &Buffered[T]{next: next}
}

// At returns element i, generating elements up to i as needed.
func (b *Buffered[T]) At(i int) (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.items) <= i && !b.done {
		v, ok := b.next()
		if !ok {
			b.done = true
			b.next = nil
			break
		}
		b.items = append(b.items, v)
	}
	if i < len(b.items) {
		return b.items[i], true
	}
	var zero T
	return zero, false
}

// Computed returns how many elements have been generated so far.
func (b *Buffered[T]) Computed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Cursor returns a new enumerator positioned before the first element.
func (b *Buffered[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{buf: b}
}

// All returns the sequence as an iterator. Every range over it starts from
// the first element.
func (b *Buffered[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		c := b.Cursor()
		for {
			v, ok := c.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Cursor is one consumer's position in a Buffered sequence.
type Cursor[T any] struct {
	buf *Buffered[T]
	pos int
}

// Next returns the element under the cursor and advances it.
func (c *Cursor[T]) Next() (T, bool) {
	v, ok := c.buf.At(c.pos)
	if ok {
		c.pos++
	}
	return v, ok
}

// Memo holds one Buffered sequence per argument key. The zero value is ready
// to use. Embed it in the node that owns the sequences so the cache lives and
// dies with that node.
type Memo[K comparable, T any] struct {
	mu      sync.Mutex
	entries map[K]*Buffered[T]
}

// Get returns the sequence for key, creating it with start on first use.
func (m *Memo[K, T]) Get(key K, start func() Step[T]) *Buffered[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.entries[key]; ok {
		return b
	}
	if m.entries == nil {
		m.entries = make(map[K]*Buffered[T])
	}
	b := NewBuffered(start())
	m.entries[key] = b
	return b
}

// Peek returns the sequence for key without creating it.
func (m *Memo[K, T]) Peek(key K) (*Buffered[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[key]
	return b, ok
}

// Len returns the number of cached sequences.
func (m *Memo[K, T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
