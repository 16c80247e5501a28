package flow

// Buffer is a bounded FIFO between two activities. It is deliberately plain
// data without locks: the kernel runs at most one activity between
// suspension points, so concurrent access cannot occur. Activities that
// find the buffer full or empty retry through a kernel delay instead of
// blocking outside the clock (see Process.put and Process.get).
type Buffer struct {
	name  string
	cap   int
	items []*Item
}

// NewBuffer creates an empty buffer holding at most capacity items.
func NewBuffer(name string, capacity int) *Buffer {
	return &Buffer{name: name, cap: capacity}
}

// Name returns the buffer's name.
func (b *Buffer) Name() string { return b.name }

// Len returns the number of buffered items.
func (b *Buffer) Len() int { return len(b.items) }

// Cap returns the buffer's capacity.
func (b *Buffer) Cap() int { return b.cap }

// TryPut appends item and reports whether it fit.
func (b *Buffer) TryPut(it *Item) bool {
	if len(b.items) >= b.cap {
		return false
	}
	b.items = append(b.items, it)
	return true
}

// TryGet removes and returns the oldest item, or nil when empty.
func (b *Buffer) TryGet() *Item {
	if len(b.items) == 0 {
		return nil
	}
	it := b.items[0]
	b.items = b.items[1:]
	return it
}
