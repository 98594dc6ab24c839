// Package queue provides a FIFO queue on top of a linked sequence.
package queue

import (
	"fmt"
	"reflect"

	"github.com/nobletooth/linkedseq/pkg/list"
	"github.com/nobletooth/linkedseq/pkg/utils"
)

// Sequence is the part of a double-ended sequence the queue relies on.
type Sequence[T any] interface {
	InsertAtTail(value T)
	DeleteHead() (T, bool)
	Front() (T, bool)
	Back() (T, bool)
	Len() int
	Clear()
}

var _ Sequence[int] = (*list.LinkedList[int])(nil)

// Queue is a first-in-first-out queue. Like the list beneath it, it is not safe for concurrent use.
type Queue[T any] struct {
	elements Sequence[T]
}

// New returns an empty queue backed by a linked list.
func New[T any]() *Queue[T] {
	return &Queue[T]{elements: list.New[T]()}
}

// isNilSequence reports whether `seq` is nil, including a nil pointer wrapped in the interface.
func isNilSequence[T any](seq Sequence[T]) bool {
	if seq == nil {
		return true
	}
	switch value := reflect.ValueOf(seq); value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}

// NewWithSequence returns a queue backed by `seq`. The queue takes ownership of the sequence.
// A nil sequence, typed or not, is a bug: it is raised as an invariant and the queue falls back to a linked list.
func NewWithSequence[T any](seq Sequence[T]) *Queue[T] {
	if isNilSequence(seq) {
		utils.RaiseInvariant("queue", "nil_sequence", "Queue got a nil sequence, falling back to a linked list.")
		return New[T]()
	}
	return &Queue[T]{elements: seq}
}

// Enqueue adds `value` to the back of the queue.
func (q *Queue[T]) Enqueue(value T) {
	q.elements.InsertAtTail(value)
}

// Dequeue removes and returns the front value, or false if the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	return q.elements.DeleteHead()
}

// PeekFront returns the front value without removing it, or false if the queue is empty.
func (q *Queue[T]) PeekFront() (T, bool) {
	return q.elements.Front()
}

// PeekBack returns the back value without removing it, or false if the queue is empty.
func (q *Queue[T]) PeekBack() (T, bool) {
	return q.elements.Back()
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	return q.elements.Len()
}

// IsEmpty reports whether the queue holds no values.
func (q *Queue[T]) IsEmpty() bool {
	return q.elements.Len() == 0
}

// Drain removes every value from the queue.
func (q *Queue[T]) Drain() {
	q.elements.Clear()
}

// String renders the queue front to back when the underlying sequence knows how to render itself.
func (q *Queue[T]) String() string {
	if stringer, ok := q.elements.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("queue of %d elements", q.elements.Len())
}
