package value

import "testing"

func TestRefcountLifecycle(t *testing.T) {
	c := NewChar('x')
	if c.Refcount() != 1 {
		t.Fatalf("new object refcount = %d, want 1", c.Refcount())
	}
	c.Incref()
	if c.Refcount() != 2 {
		t.Fatalf("after Incref refcount = %d, want 2", c.Refcount())
	}
	c.Decref()
	if c.Refcount() != 1 {
		t.Fatalf("after Decref refcount = %d, want 1", c.Refcount())
	}
}

func TestLiveObjectsTracksAllocation(t *testing.T) {
	before := LiveObjects()
	a := NewInt(1)
	b := NewInt(2)
	if got := LiveObjects(); got != before+2 {
		t.Fatalf("LiveObjects after two allocations = %d, want %d", got, before+2)
	}
	a.Decref()
	b.Decref()
	if got := LiveObjects(); got != before {
		t.Fatalf("LiveObjects after releasing both = %d, want %d", got, before)
	}
}

func TestUnwrapListNode(t *testing.T) {
	inner := NewInt(5)
	n := NewListNode(inner)
	inner.Decref()
	if Unwrap(n) != inner {
		t.Fatalf("Unwrap(listnode) did not return the wrapped inner value")
	}
	n.Decref()
}

func TestIsNumberIsStringIsList(t *testing.T) {
	i := NewInt(1)
	s := NewStr("x")
	l := NewList()
	defer i.Decref()
	defer s.Decref()
	defer l.Decref()

	if !IsNumber(i) || IsNumber(s) || IsNumber(l) {
		t.Fatalf("IsNumber misclassified")
	}
	if !IsString(s) || IsString(i) {
		t.Fatalf("IsString misclassified")
	}
	if !IsList(l) || IsList(i) {
		t.Fatalf("IsList misclassified")
	}
	if !IsSequence(s) || !IsSequence(l) || IsSequence(i) {
		t.Fatalf("IsSequence misclassified")
	}
}

func TestCopyProducesIndependentObject(t *testing.T) {
	l := NewList()
	elem := NewInt(7)
	l.Append(elem)
	elem.Decref()

	cp, err := Copy(l)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	cpList := cp.(*List)
	node, err := cpList.Item(0)
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	node.Inner.(*Int).Val = 99

	origNode, _ := l.Item(0)
	if origNode.Inner.(*Int).Val != 7 {
		t.Fatalf("Copy aliased the original list's element")
	}
	l.Decref()
	cp.Decref()
}

func TestNoneSingletonPinnedRefcount(t *testing.T) {
	n1 := TheNone()
	n2 := TheNone()
	if n1 != n2 {
		t.Fatalf("TheNone() returned distinct objects")
	}
	before := n1.Refcount()
	n1.Incref()
	n1.Decref()
	n1.Decref()
	n1.Decref()
	if n1.Refcount() != before {
		t.Fatalf("None refcount moved: got %d, want pinned at %d", n1.Refcount(), before)
	}
}
