package list

import (
	"fmt"
	"strings"
)

// handle names a node slot inside a list's arena. Slots are 1-based so the zero handle names no node.
type handle uint32

// noNode is the empty link.
const noNode handle = 0

// node is a single list element. Its links are positional references into the owning list's arena and never
// decide the node's lifetime; the list does.
type node[T any] struct {
	value T
	prev  handle
	next  handle
}

// newNode returns a detached node holding `value`.
func newNode[T any](value T) node[T] {
	return node[T]{value: value, prev: noNode, next: noNode}
}

// writeChain renders the node at `h` and every node reachable through next as "a, b, c".
func writeChain[T any](sb *strings.Builder, arena []node[T], h handle) {
	for first := true; h != noNode; first = false {
		n := &arena[h-1]
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprint(sb, n.value)
		h = n.next
	}
}
