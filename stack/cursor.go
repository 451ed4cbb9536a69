package stack

import "iter"

// cursor is a position marker over a chain: it holds the next node to visit
// and nothing else. A nil next means the cursor is exhausted.
type cursor[T any] struct {
	next *node[T]
}

// advance returns the node under the cursor and moves past it.
// It returns nil once the cursor is exhausted.
func (c *cursor[T]) advance() *node[T] {
	n := c.next
	if n == nil {
		return nil
	}

	c.next = n.next
	return n
}

// IntoIter owns a detached chain and hands out its elements by value,
// releasing each node as it goes.
type IntoIter[T any] struct {
	cursor[T]
	left int
}

// Next removes and returns the next element.
func (it *IntoIter[T]) Next() (T, bool) { //nolint:ireturn
	n := it.advance()
	if n == nil {
		var zero T
		return zero, false
	}

	n.next = nil
	it.left--

	return n.val, true
}

// Len returns the number of elements not yet consumed.
func (it *IntoIter[T]) Len() int {
	return it.left
}

// Seq adapts the cursor for use with range.
func (it *IntoIter[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Iter walks the stack without modifying it. Any number of Iter cursors may
// be open at once.
type Iter[T any] struct {
	cursor[T]
	s   *Stack[T]
	gen uint64
}

// Next returns the next element.
func (it *Iter[T]) Next() (T, bool) { //nolint:ireturn
	if it.next != nil {
		if it.s.mutTaken {
			panic(ErrMutableCursorActive)
		}
		if it.s.gen != it.gen {
			panic(ErrStaleCursor)
		}
	}

	n := it.advance()
	if n == nil {
		var zero T
		return zero, false
	}

	return n.val, true
}

// Seq adapts the cursor for use with range.
func (it *Iter[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// IterMut hands out a pointer to each element in turn so it can be updated
// in place. The cursor keeps the stack locked until Next reports false or
// Close is called. Pointers it returned must not be used after that.
type IterMut[T any] struct {
	cursor[T]
	s *Stack[T]
}

// Next returns a pointer to the next element.
func (it *IterMut[T]) Next() (*T, bool) {
	n := it.advance()
	if n == nil {
		it.release()
		return nil, false
	}

	return &n.val, true
}

// Close ends the traversal early and unlocks the stack. It is safe to call
// more than once.
func (it *IterMut[T]) Close() {
	it.next = nil
	it.release()
}

func (it *IterMut[T]) release() {
	if it.s == nil {
		return
	}

	it.s.mutTaken = false
	it.s = nil
}

// Seq adapts the cursor for use with range. The stack is unlocked when the
// loop ends, including on break or panic.
func (it *IterMut[T]) Seq() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		defer it.Close()

		for p, ok := it.Next(); ok; p, ok = it.Next() {
			if !yield(p) {
				return
			}
		}
	}
}
