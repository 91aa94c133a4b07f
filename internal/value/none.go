package value

// None is the process-wide singleton. Its refcount is pinned: Incref
// and Decref are no-ops so allocation and release never touch real
// state.
type None struct{}

var noneSingleton = &None{}

// TheNone returns the single None instance.
func TheNone() *None { return noneSingleton }

func (n *None) Kind() Kind { return NoneKind }

func (n *None) Incref() Object { return n }

func (n *None) Decref() {}

func (n *None) Refcount() int { return 1 }

func (n *None) Print() string { return "None" }

func (n *None) String() string { return "None" }
