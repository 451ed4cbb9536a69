// Package stack provides a singly linked LIFO stack with consuming,
// read-only and mutable cursors.
//
// A Stack is not safe for concurrent use. While an [IterMut] is active the
// stack refuses every other element access and panics with
// [ErrMutableCursorActive]; an [Iter] panics with [ErrStaleCursor] if the
// stack changed shape after the cursor was created.
package stack

import (
	"iter"

	"github.com/percona/linkcontainers/errors"
)

var (
	// ErrMutableCursorActive is the panic value for stack access while an
	// IterMut is still active.
	ErrMutableCursorActive = errors.New("stack: mutable cursor is active")
	// ErrStaleCursor is the panic value for advancing an Iter after a push,
	// pop or clear.
	ErrStaleCursor = errors.New("stack: cursor used after stack was modified")
)

type node[T any] struct {
	val  T
	next *node[T]
}

// Stack is a LIFO stack. The zero value is an empty stack ready to use.
type Stack[T any] struct {
	head *node[T]
	size int

	gen      uint64 // bumped on every structural change
	mutTaken bool   // an IterMut is active
}

// New returns an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (s *Stack[T]) checkAccess() {
	if s.mutTaken {
		panic(ErrMutableCursorActive)
	}
}

// Push adds val to the top of the stack.
func (s *Stack[T]) Push(val T) {
	s.checkAccess()

	s.head = &node[T]{val: val, next: s.head}
	s.size++
	s.gen++
}

// Pop removes and returns the top element. It returns false if the stack is
// empty.
func (s *Stack[T]) Pop() (T, bool) { //nolint:ireturn
	s.checkAccess()

	n := s.head
	if n == nil {
		var zero T
		return zero, false
	}

	s.head = n.next
	n.next = nil
	s.size--
	s.gen++

	return n.val, true
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) { //nolint:ireturn
	s.checkAccess()

	if s.head == nil {
		var zero T
		return zero, false
	}

	return s.head.val, true
}

// Size returns the number of elements on the stack.
func (s *Stack[T]) Size() int {
	return s.size
}

// IsEmpty reports whether the stack has no elements.
func (s *Stack[T]) IsEmpty() bool {
	return s.head == nil
}

// Clear removes all elements, unlinking the chain node by node so that a
// node retained elsewhere does not keep the rest of the chain reachable.
func (s *Stack[T]) Clear() {
	s.checkAccess()

	for n := s.head; n != nil; {
		next := n.next
		n.next = nil
		n = next
	}

	s.head = nil
	s.size = 0
	s.gen++
}

// IntoIter moves the whole chain into a consuming cursor and leaves s empty.
func (s *Stack[T]) IntoIter() *IntoIter[T] {
	s.checkAccess()

	it := &IntoIter[T]{cursor: cursor[T]{next: s.head}, left: s.size}
	s.head = nil
	s.size = 0
	s.gen++

	return it
}

// Iter returns a read-only cursor positioned at the top of the stack.
func (s *Stack[T]) Iter() *Iter[T] {
	s.checkAccess()

	return &Iter[T]{cursor: cursor[T]{next: s.head}, s: s, gen: s.gen}
}

// IterMut returns a cursor yielding pointers to the elements, top first.
// No other access to s is allowed until the cursor is exhausted or closed.
func (s *Stack[T]) IterMut() *IterMut[T] {
	s.checkAccess()

	s.mutTaken = true
	it := &IterMut[T]{cursor: cursor[T]{next: s.head}, s: s}
	if it.next == nil {
		it.release()
	}

	return it
}

// All returns an iterator over the elements from top to bottom. Each range
// loop starts a fresh read-only cursor.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.Iter().Seq()(yield)
	}
}

// Drain returns an iterator that consumes the stack from top to bottom.
// The chain is detached when the loop starts; elements not reached before
// the loop breaks are discarded.
func (s *Stack[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.IntoIter().Seq()(yield)
	}
}

// Mutable returns an iterator over pointers to the elements from top to
// bottom. The stack is locked for the duration of the loop.
func (s *Stack[T]) Mutable() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		s.IterMut().Seq()(yield)
	}
}
