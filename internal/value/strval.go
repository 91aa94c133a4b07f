package value

import (
	"fmt"
	"strings"

	"minilang/internal/langerr"
)

// Str is an owned, null-free byte sequence; printable and subscriptable.
type Str struct {
	refcounted
	Val string
}

func NewStr(v string) *Str {
	return &Str{refcounted: newRefcounted(), Val: v}
}

func (s *Str) Kind() Kind { return StrKind }

func (s *Str) Incref() Object {
	s.incref()
	return s
}

func (s *Str) Decref() { s.decref() }

func (s *Str) Print() string { return s.Val }

func (s *Str) String() string { return fmt.Sprintf("Str(%q)", s.Val) }

func (s *Str) Length() int { return len(s.Val) }

// Normalize turns a possibly-negative index into a 0-based one by
// adding the length, Python-style.
func Normalize(i, length int) int {
	if i < 0 {
		return i + length
	}
	return i
}

// Item implements s[i] for strings: item = s[i] returns a Char.
func (s *Str) Item(i int) (*Char, error) {
	idx := Normalize(i, len(s.Val))
	if idx < 0 || idx >= len(s.Val) {
		return nil, langerr.NewNoPos(langerr.IndexError, "string index %d out of range", i)
	}
	return NewChar(s.Val[idx]), nil
}

// Slice implements s[a:b], clamping a and b to [0, len] after negative
// normalization.
func (s *Str) Slice(a, b int) *Str {
	length := len(s.Val)
	a = clamp(Normalize(a, length), length)
	b = clamp(Normalize(b, length), length)
	if a >= b {
		return NewStr("")
	}
	return NewStr(s.Val[a:b])
}

func clamp(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

// Concat implements s + other, where other is converted to its printed
// form first if it isn't already a string.
func Concat(op1, op2 Object) *Str {
	var left, right string
	if s, ok := Unwrap(op1).(*Str); ok {
		left = s.Val
	} else {
		lhs := ToStrObj(op1)
		left = lhs.(*Str).Val
		lhs.Decref()
	}
	if s, ok := Unwrap(op2).(*Str); ok {
		right = s.Val
	} else {
		rhs := ToStrObj(op2)
		right = rhs.(*Str).Val
		rhs.Decref()
	}
	return NewStr(left + right)
}

// Repeat implements s * n (or n * s): a negative count produces an
// empty string.
func (s *Str) Repeat(n int64) *Str {
	if n <= 0 {
		return NewStr("")
	}
	return NewStr(strings.Repeat(s.Val, int(n)))
}

// Eql implements s == t.
func (s *Str) Eql(other *Str) bool { return s.Val == other.Val }
