package value

import (
	"fmt"

	"minilang/internal/langerr"
)

// List is an ordered sequence of ListNode cells. Its length always
// equals its node count.
type List struct {
	refcounted
	Nodes []*ListNode
}

// NewList allocates an empty list with refcount 1.
func NewList() *List {
	l := &List{refcounted: newRefcounted()}
	l.onRelease = func() {
		for _, n := range l.Nodes {
			n.Decref()
		}
		l.Nodes = nil
	}
	return l
}

func (l *List) Kind() Kind { return ListKind }

func (l *List) Incref() Object {
	l.incref()
	return l
}

func (l *List) Decref() { l.decref() }

func (l *List) Print() string {
	s := "["
	for i, n := range l.Nodes {
		if i > 0 {
			s += ", "
		}
		if str, ok := n.Inner.(*Str); ok {
			s += fmt.Sprintf("%q", str.Val)
		} else if c, ok := n.Inner.(*Char); ok {
			s += fmt.Sprintf("'%c'", c.Val)
		} else {
			s += n.Inner.Print()
		}
	}
	return s + "]"
}

func (l *List) String() string { return l.Print() }

func (l *List) Length() int { return len(l.Nodes) }

// SetFrom replaces l's contents with new nodes referencing other's
// element values, releasing l's previous elements first — the
// assignment-coercion path for `list = list`.
func (l *List) SetFrom(other *List) {
	if other == l {
		return
	}
	for _, n := range l.Nodes {
		n.Decref()
	}
	l.Nodes = l.Nodes[:0]
	for _, n := range other.Nodes {
		l.Append(n.Inner)
	}
}

// Append adds a ListNode holding a new reference to item to the end of
// the list (the caller keeps its own reference; List stores its own
// node).
func (l *List) Append(item Object) {
	l.Nodes = append(l.Nodes, NewListNode(item))
}

// RemoveAt removes and returns the element at index i (already
// normalized, non-negative, in range); the returned ListNode carries
// the reference the list held.
func (l *List) RemoveAt(i int) *ListNode {
	n := l.Nodes[i]
	l.Nodes = append(l.Nodes[:i], l.Nodes[i+1:]...)
	return n
}

// Item implements list[i]: returns the ListNode itself, not unwrapped —
// callers that need the inner value call Unwrap.
func (l *List) Item(i int) (*ListNode, error) {
	idx := Normalize(i, len(l.Nodes))
	if idx < 0 || idx >= len(l.Nodes) {
		return nil, langerr.NewNoPos(langerr.IndexError, "list index %d out of range", i)
	}
	return l.Nodes[idx], nil
}

// Slice implements list[a:b], returning a fresh List whose nodes
// reference the selected element values.
func (l *List) Slice(a, b int) *List {
	length := len(l.Nodes)
	a = clamp(Normalize(a, length), length)
	b = clamp(Normalize(b, length), length)
	out := NewList()
	for i := a; i < b; i++ {
		out.Append(l.Nodes[i].Inner)
	}
	return out
}

// copyList deep-copies every element.
func (l *List) copyList() *List {
	out := NewList()
	for _, n := range l.Nodes {
		c := MustCopy(n.Inner)
		out.Append(c)
		c.Decref()
	}
	return out
}

// Concat2 implements a + b for two lists: a fresh list whose nodes
// reference both operands' element values.
func Concat2(a, b *List) *List {
	out := NewList()
	for _, n := range a.Nodes {
		out.Append(n.Inner)
	}
	for _, n := range b.Nodes {
		out.Append(n.Inner)
	}
	return out
}

// Repeat implements list * n: a negative/zero count yields an empty list.
func (l *List) Repeat(n int64) *List {
	out := NewList()
	if n <= 0 {
		return out
	}
	for i := int64(0); i < n; i++ {
		for _, node := range l.Nodes {
			out.Append(node.Inner)
		}
	}
	return out
}

// Eql implements a == b: same length and every element structurally
// equal (unwrapped, kind-and-value compared).
func (l *List) Eql(other *List) bool {
	if len(l.Nodes) != len(other.Nodes) {
		return false
	}
	for i, n := range l.Nodes {
		if !deepEql(n.Inner, other.Nodes[i].Inner) {
			return false
		}
	}
	return true
}

func deepEql(a, b Object) bool {
	a, b = Unwrap(a), Unwrap(b)
	if IsNumber(a) && IsNumber(b) {
		return AsFloat64(a) == AsFloat64(b)
	}
	if sa, ok := a.(*Str); ok {
		if sb, ok := b.(*Str); ok {
			return sa.Eql(sb)
		}
		return false
	}
	if la, ok := a.(*List); ok {
		if lb, ok := b.(*List); ok {
			return la.Eql(lb)
		}
		return false
	}
	return false
}
