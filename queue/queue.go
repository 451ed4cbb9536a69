// Package queue provides a singly linked FIFO queue.
//
// Nodes live in a slice arena and link to each other by index, so the tail
// marker can never refer to a released node.
package queue

import "iter"

// ref is a 1-based index into the arena. The zero ref means no node.
type ref int

const none ref = 0

type node[T any] struct {
	val  T
	next ref
}

// Queue is a FIFO queue. The zero value is an empty queue ready to use.
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	nodes []node[T]
	head  ref
	tail  ref
	free  ref // first reusable slot, chained through node.next
	size  int
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) at(r ref) *node[T] {
	return &q.nodes[r-1]
}

// alloc returns a slot for a new node, reusing a freed one when possible.
func (q *Queue[T]) alloc() ref {
	if q.free != none {
		r := q.free
		q.free = q.at(r).next
		return r
	}

	q.nodes = append(q.nodes, node[T]{})
	return ref(len(q.nodes))
}

// Push adds val to the back of the queue.
func (q *Queue[T]) Push(val T) {
	r := q.alloc()
	n := q.at(r)
	n.val = val
	n.next = none

	if q.tail == none {
		q.head = r
	} else {
		q.at(q.tail).next = r
	}

	q.tail = r
	q.size++
}

// Pop removes and returns the front element. It returns false if the queue
// is empty.
func (q *Queue[T]) Pop() (T, bool) { //nolint:ireturn
	var zero T

	if q.head == none {
		return zero, false
	}

	r := q.head
	n := q.at(r)
	val := n.val

	q.head = n.next
	n.val = zero
	n.next = q.free
	q.free = r
	q.size--

	if q.head == none {
		// the tail slot was just released
		q.tail = none
		q.free = none
		q.nodes = q.nodes[:0]
	}

	return val, true
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) { //nolint:ireturn
	if q.head == none {
		var zero T
		return zero, false
	}

	return q.at(q.head).val, true
}

// Size returns the number of elements in the queue.
func (q *Queue[T]) Size() int {
	return q.size
}

// IsEmpty reports whether the queue has no elements.
func (q *Queue[T]) IsEmpty() bool {
	return q.head == none
}

// Clear removes all elements.
func (q *Queue[T]) Clear() {
	clear(q.nodes)
	q.nodes = q.nodes[:0]
	q.head = none
	q.tail = none
	q.free = none
	q.size = 0
}

// All returns an iterator over the elements from front to back.
// The queue must not be modified while iterating.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for r := q.head; r != none; r = q.at(r).next {
			if !yield(q.at(r).val) {
				return
			}
		}
	}
}
