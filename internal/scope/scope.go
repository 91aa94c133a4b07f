// Package scope implements the identifier table: Add/Search/Bind/Unbind
// plus push/pop of scope levels.
//
// A stack of per-level name tables, innermost-first search falling
// back to level 0 — the top-level table also holds every function
// name, so a function call resolves the same way a variable lookup
// does.
package scope

import "minilang/internal/value"

// Binding is one named slot: its declared value and, once bound, the
// value it currently holds.
type Binding struct {
	Name  string
	Value value.Object
}

// Table is the full lexical scope stack.
type Table struct {
	levels []map[string]*Binding
}

// New returns a Table with just the top level (level 0) present.
func New() *Table {
	return &Table{levels: []map[string]*Binding{{}}}
}

// PushLevel adds a new, empty scope level (function entry).
func (t *Table) PushLevel() {
	t.levels = append(t.levels, map[string]*Binding{})
}

// PopLevel removes the innermost scope level, unbinding and releasing
// every identifier still bound in it.
func (t *Table) PopLevel() {
	top := t.levels[len(t.levels)-1]
	for _, b := range top {
		if b.Value != nil {
			b.Value.Decref()
		}
	}
	t.levels = t.levels[:len(t.levels)-1]
}

// Add declares name at the current (innermost) level. It returns nil
// if name is already present at that level — callers turn that into a
// NameError.
func (t *Table) Add(name string) *Binding {
	level := t.levels[len(t.levels)-1]
	if _, exists := level[name]; exists {
		return nil
	}
	b := &Binding{Name: name}
	level[name] = b
	return b
}

// Search looks up name innermost-first, falling back to level 0 (the
// top level, where function bookmarks live). It returns nil if name is
// not declared anywhere visible.
func (t *Table) Search(name string) *Binding {
	for i := len(t.levels) - 1; i > 0; i-- {
		if b, ok := t.levels[i][name]; ok {
			return b
		}
	}
	if b, ok := t.levels[0][name]; ok {
		return b
	}
	return nil
}

// Bind attaches value to id, incrementing its reference count; any
// previous binding is released first.
func Bind(id *Binding, v value.Object) {
	if id.Value != nil {
		id.Value.Decref()
	}
	id.Value = v.Incref()
}

// Unbind releases id's current value and clears the slot.
func Unbind(id *Binding) {
	if id.Value != nil {
		id.Value.Decref()
		id.Value = nil
	}
}
