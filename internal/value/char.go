package value

import "fmt"

// Char is a single byte-sized character.
type Char struct {
	refcounted
	Val byte
}

// NewChar allocates a Char with refcount 1.
func NewChar(v byte) *Char {
	return &Char{refcounted: newRefcounted(), Val: v}
}

func (c *Char) Kind() Kind { return CharKind }

func (c *Char) Incref() Object {
	c.incref()
	return c
}

func (c *Char) Decref() { c.decref() }

func (c *Char) Print() string {
	return string(rune(c.Val))
}

func (c *Char) String() string { return fmt.Sprintf("Char(%q)", c.Val) }
