// Package list implements a generic doubly linked list with positional inserts, deletes and lookups.
//
// Nodes are not heap objects pointing at each other. The list keeps them in an arena (a slice of slots) and
// links them through handles, so the list is the only owner of every node and no caller ever holds a reference
// to one. A removed node's slot is zeroed, which releases its value to the GC, and is put on a free list to be
// reused by later inserts. When free slots pile up, the arena is compacted.
//
// Index arguments outside the valid range are caller bugs: such calls panic with an error wrapping
// ErrIndexOutOfBounds and leave the list untouched. An empty list or a missing position is not a bug and is
// reported through a boolean result instead. A chain found broken during a walk is a bug in this package; it is
// raised as an invariant and panics with ErrBrokenChain rather than dropping the operation.
package list

import (
	"errors"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/nobletooth/linkedseq/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrIndexOutOfBounds is wrapped by the value of every index related panic.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrBrokenChain is wrapped by the panic value raised when a walk finds fewer linked nodes than Len().
	ErrBrokenChain = errors.New("list chain is broken")
)

var (
	initialCapacity = flag.Int("list_initial_capacity", 0,
		"The number of node slots to preallocate in lists created by list.New.")
	compactionMinFreeSlots = flag.Int("list_compaction_min_free_slots", 1024,
		"Compacts a list's arena once it has at least this many free slots and more free slots than nodes; "+
			"0 or negative disables auto compaction.")

	compactionsMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "list_compactions_total",
		Help: "Total number of list arena compactions.",
	})
)

// LinkedList is a doubly linked list of values of type T. The zero value is an empty list ready to use.
// A LinkedList is not safe for concurrent use; callers sharing one must guard the whole list with a mutex.
type LinkedList[T any] struct {
	arena     []node[T] // Slot `h` lives at arena[h-1].
	free      handle    // First free slot; free slots are chained through their next link.
	freeCount int
	head      handle
	tail      handle
	size      int
}

// New returns an empty list whose arena is preallocated according to -list_initial_capacity.
func New[T any]() *LinkedList[T] {
	capacity := *initialCapacity
	if capacity < 0 {
		utils.RaiseInvariant("list", "negative_initial_capacity",
			"Invalid initial capacity has been given to list.", "capacity", capacity)
		capacity = 0
	}
	return &LinkedList[T]{arena: make([]node[T], 0, capacity)}
}

// outOfBounds builds the panic value of an operation `op` called with an invalid `index`.
func outOfBounds(op string, index, length int) error {
	return fmt.Errorf("%w: %s(%d) on a list of length %d", ErrIndexOutOfBounds, op, index, length)
}

// at returns the slot named by `h`. The pointer is only valid until the next alloc.
func (l *LinkedList[T]) at(h handle) *node[T] {
	return &l.arena[h-1]
}

// alloc stores `value` in a detached slot, reusing a free one when possible.
func (l *LinkedList[T]) alloc(value T) handle {
	if l.free != noNode {
		h := l.free
		n := l.at(h)
		l.free = n.next
		l.freeCount--
		*n = newNode(value)
		return h
	}
	l.arena = append(l.arena, newNode(value))
	return handle(len(l.arena))
}

// release zeroes the slot `h`, pushes it on the free list and returns the value it held.
func (l *LinkedList[T]) release(h handle) T {
	n := l.at(h)
	value := n.value
	*n = node[T]{next: l.free}
	l.free = h
	l.freeCount++
	return value
}

// unlink splices the node `h` out of the chain and releases its slot.
func (l *LinkedList[T]) unlink(h handle) T {
	n := l.at(h)
	if n.prev != noNode {
		l.at(n.prev).next = n.next
	} else {
		// Node is the head.
		l.head = n.next
	}

	if n.next != noNode {
		l.at(n.next).prev = n.prev
	} else {
		// Node is the tail.
		l.tail = n.prev
	}

	l.size--
	return l.release(h)
}

// nodeAt walks to the node at `index`, starting from the closer end. Assumes 0 <= index < l.size.
// A chain that ends before `index` is corruption: the invariant is raised and nodeAt panics with ErrBrokenChain.
func (l *LinkedList[T]) nodeAt(index int) handle {
	var h handle
	if index < l.size/2 {
		h = l.head
		for step := 0; step < index && h != noNode; step++ {
			h = l.at(h).next
		}
	} else {
		h = l.tail
		for step := l.size - 1; step > index && h != noNode; step-- {
			h = l.at(h).prev
		}
	}
	if h == noNode {
		utils.RaiseInvariant("list", "broken_chain", "Walk ran off the list before reaching the index.",
			"index", index, "length", l.size)
		panic(fmt.Errorf("%w: no node at index %d on a list of length %d", ErrBrokenChain, index, l.size))
	}
	return h
}

// Len returns the number of elements in the list.
func (l *LinkedList[T]) Len() int {
	return l.size
}

// InsertAtHead adds `value` in front of the current head.
func (l *LinkedList[T]) InsertAtHead(value T) {
	h := l.alloc(value)
	l.at(h).next = l.head
	if l.head != noNode {
		l.at(l.head).prev = h
	} else { // List was empty.
		l.tail = h
	}
	l.head = h
	l.size++
}

// InsertAtTail adds `value` after the current tail.
func (l *LinkedList[T]) InsertAtTail(value T) {
	h := l.alloc(value)
	l.at(h).prev = l.tail
	if l.tail != noNode {
		l.at(l.tail).next = h
	} else {
		// List was empty.
		l.head = h
	}
	l.tail = h
	l.size++
}

// InsertAt puts `value` at position `index`, shifting the node there and everything after it by one.
// An index equal to Len() appends. It panics if index is negative or greater than Len().
func (l *LinkedList[T]) InsertAt(index int, value T) {
	if index < 0 || index > l.size {
		panic(outOfBounds("InsertAt", index, l.size))
	}
	if index == 0 || l.size == 0 {
		l.InsertAtHead(value)
		return
	}
	if index == l.size {
		l.InsertAtTail(value)
		return
	}

	successor := l.nodeAt(index)
	h := l.alloc(value)
	n, s := l.at(h), l.at(successor)
	n.prev, n.next = s.prev, successor
	// 0 < index < size, so the successor always has a predecessor.
	l.at(s.prev).next = h
	s.prev = h
	l.size++
}

// DeleteHead removes the first element and returns it. It returns false if the list is empty.
func (l *LinkedList[T]) DeleteHead() (T, bool) {
	if l.size == 0 {
		return *new(T), false
	}
	value := l.unlink(l.head)
	l.maybeCompact()
	return value, true
}

// DeleteTail removes the last element and returns it. It returns false if the list is empty.
func (l *LinkedList[T]) DeleteTail() (T, bool) {
	if l.size == 0 {
		return *new(T), false
	}
	value := l.unlink(l.tail)
	l.maybeCompact()
	return value, true
}

// DeleteAt removes the element at `index` and returns it.
// DeleteAt(0) on an empty list returns false like DeleteHead. Any other index must be in [0, Len()), or else
// DeleteAt panics; in particular Len() is not an alias for the tail.
func (l *LinkedList[T]) DeleteAt(index int) (T, bool) {
	if index < 0 || index > l.size || (index == l.size && l.size != 0) {
		panic(outOfBounds("DeleteAt", index, l.size))
	}
	if index == 0 {
		return l.DeleteHead()
	}

	h := l.nodeAt(index)
	value := l.unlink(h)
	l.maybeCompact()
	return value, true
}

// Get returns the value at `index`, or false if index is negative or past the tail.
func (l *LinkedList[T]) Get(index int) (T, bool) {
	if index < 0 || index >= l.size {
		return *new(T), false
	}
	h := l.nodeAt(index)
	return l.at(h).value, true
}

// Front returns the first value of the list or false if the list is empty.
func (l *LinkedList[T]) Front() (T, bool) {
	if l.head == noNode {
		return *new(T), false
	}
	return l.at(l.head).value, true
}

// Back returns the last value of the list or false if the list is empty.
func (l *LinkedList[T]) Back() (T, bool) {
	if l.tail == noNode {
		return *new(T), false
	}
	return l.at(l.tail).value, true
}

// Clear removes every element head first and drops the arena.
func (l *LinkedList[T]) Clear() {
	for l.size > 0 {
		l.unlink(l.head)
	}
	l.arena = nil
	l.free = noNode
	l.freeCount = 0
}

// All yields the list's (index, value) pairs from head to tail.
func (l *LinkedList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		index := 0
		for h := l.head; h != noNode; h = l.at(h).next {
			if !yield(index, l.at(h).value) {
				return
			}
			index++
		}
	}
}

// Backward yields the list's (index, value) pairs from tail to head.
func (l *LinkedList[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		index := l.size - 1
		for h := l.tail; h != noNode; h = l.at(h).prev {
			if !yield(index, l.at(h).value) {
				return
			}
			index--
		}
	}
}

// Values returns a copy of the list's values in order.
func (l *LinkedList[T]) Values() []T {
	values := make([]T, 0, l.size)
	for _, value := range l.All() {
		values = append(values, value)
	}
	return values
}

// String renders the list as "a, b, c". An empty list renders as an empty string.
func (l *LinkedList[T]) String() string {
	var sb strings.Builder
	writeChain(&sb, l.arena, l.head)
	return sb.String()
}

// Compact moves the live nodes, in list order, into a new arena without free slots.
func (l *LinkedList[T]) Compact() {
	if l.freeCount == 0 {
		return
	}
	freed := l.freeCount
	arena := make([]node[T], 0, l.size)
	for h := l.head; h != noNode; h = l.at(h).next {
		n := newNode(l.at(h).value)
		if last := len(arena); last > 0 {
			n.prev = handle(last)
			arena[last-1].next = handle(last + 1)
		}
		arena = append(arena, n)
	}
	if len(arena) != l.size {
		utils.RaiseInvariant("list", "length_mismatch", "Number of linked nodes doesn't match the list length.",
			"linked", len(arena), "length", l.size)
		l.size = len(arena)
	}

	l.arena = arena
	l.free = noNode
	l.freeCount = 0
	if len(arena) == 0 {
		l.head, l.tail = noNode, noNode
	} else {
		l.head, l.tail = 1, handle(len(arena))
	}
	compactionsMetric.Inc()
	slog.Debug("Compacted list arena.", "length", l.size, "freedSlots", freed)
}

// maybeCompact compacts the arena when free slots pass the -list_compaction_min_free_slots threshold and
// outnumber live nodes.
func (l *LinkedList[T]) maybeCompact() {
	threshold := *compactionMinFreeSlots
	if threshold > 0 && l.freeCount >= threshold && l.freeCount > l.size {
		l.Compact()
	}
}
