// Package value implements the dynamically-typed object model: a closed
// set of value kinds sharing a common reference-counted header, each
// providing its own print/assign behaviour.
//
// There is no garbage collector. Lifetime is deterministic: every
// Object starts at refcount 1, every bind/copy increments it, every
// unbind/release decrements it, and the object is freed the moment the
// count reaches zero. None is the sole exception — it is a process-wide
// singleton whose refcount is pinned.
package value

import (
	"fmt"

	"minilang/internal/langerr"
)

// Kind identifies one of the closed set of value kinds.
type Kind int

const (
	CharKind Kind = iota
	IntKind
	FloatKind
	StrKind
	ListKind
	ListNodeKind
	PositionKind
	NoneKind
)

func (k Kind) String() string {
	switch k {
	case CharKind:
		return "char"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StrKind:
		return "str"
	case ListKind:
		return "list"
	case ListNodeKind:
		return "listnode"
	case PositionKind:
		return "position"
	case NoneKind:
		return "none"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Object is the common interface every value kind implements. It plays
// the role of the C original's per-kind vtable: Kind identifies the
// dynamic type, Incref/Decref implement the reference count, and Print
// returns the value's textual form (writing and flushing it is the
// caller's job, as in the statement executor's print loop).
type Object interface {
	Kind() Kind
	Incref() Object
	Decref()
	Refcount() int
	Print() string
}

// Copy performs (type op1)result = op1: a fresh, independent object of
// op's own kind holding the same value. Every operator result in this
// package is produced this way — never by returning an operand with an
// added reference, except Str's ToStrObj (see convert.go).
func Copy(op Object) (Object, error) {
	op = Unwrap(op)
	switch v := op.(type) {
	case *Char:
		return NewChar(v.Val), nil
	case *Int:
		return NewInt(v.Val), nil
	case *Float:
		return NewFloat(v.Val), nil
	case *Str:
		return NewStr(v.Val), nil
	case *List:
		return v.copyList(), nil
	default:
		return nil, langerr.NewNoPos(langerr.TypeError, "cannot copy type %s", op.Kind())
	}
}

// MustCopy is Copy for call sites that only ever pass a copyable kind
// (Char/Int/Float/Str/List) by construction, e.g. a List's own element
// copies. It panics on the closed set's remaining kinds, which would
// indicate a dispatch invariant violation, not a user-facing error.
func MustCopy(op Object) Object {
	out, err := Copy(op)
	if err != nil {
		panic(err)
	}
	return out
}

// Unwrap transparently dereferences a ListNode to its inner value.
// Every operation in this package and in internal/ops calls Unwrap on
// its operands first: a ListNode appearing where a value is expected is
// always unwrapped before use.
func Unwrap(op Object) Object {
	if ln, ok := op.(*ListNode); ok {
		return ln.Inner
	}
	return op
}

// IsNumber reports whether op (after ListNode unwrap) is Char, Int or
// Float — the three kinds that take part in numeric coercion.
func IsNumber(op Object) bool {
	switch Unwrap(op).(type) {
	case *Char, *Int, *Float:
		return true
	default:
		return false
	}
}

// IsString reports whether op (after ListNode unwrap) is a Str.
func IsString(op Object) bool {
	_, ok := Unwrap(op).(*Str)
	return ok
}

// IsList reports whether op (after ListNode unwrap) is a List.
func IsList(op Object) bool {
	_, ok := Unwrap(op).(*List)
	return ok
}

// IsSequence reports whether op is subscriptable (Str or List).
func IsSequence(op Object) bool {
	return IsString(op) || IsList(op)
}
