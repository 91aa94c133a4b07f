package value

import "fmt"

// ListNode is a container cell owning exactly one inner value of any
// non-ListNode kind. It is the element type of List; wherever a
// ListNode appears as an operand it is unwrapped to its inner value
// first (see Unwrap).
type ListNode struct {
	refcounted
	Inner Object
}

// NewListNode wraps inner, taking a reference to it — the node owns its
// inner value. At refcount zero the node releases its owned inner value
// exactly once.
func NewListNode(inner Object) *ListNode {
	inner.Incref()
	n := &ListNode{refcounted: newRefcounted(), Inner: inner}
	n.onRelease = func() { n.Inner.Decref() }
	return n
}

func (n *ListNode) Kind() Kind { return ListNodeKind }

func (n *ListNode) Incref() Object {
	n.incref()
	return n
}

func (n *ListNode) Decref() { n.decref() }

func (n *ListNode) Print() string { return n.Inner.Print() }

func (n *ListNode) String() string { return fmt.Sprintf("ListNode(%v)", n.Inner) }
