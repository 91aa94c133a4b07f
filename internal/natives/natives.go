// Package natives implements the "import" extension surface: a small
// set of functions callable from the language once a module name has
// been imported (import "uuid", import "db", ...), each backed by a
// real third-party library rather than an in-language stdlib. A
// name-to-function table is consulted before falling back to a
// user-defined symbol; arguments and results marshal against this
// interpreter's own closed value-kind set.
package natives

import (
	"minilang/internal/langerr"
	"minilang/internal/value"
)

// Func is one native function: it receives already-evaluated,
// already-owned argument objects (the caller will not touch them
// again) and returns a fresh, owned result.
type Func func(args []value.Object) (value.Object, error)

// Registry is the set of native functions available to a running
// program, keyed by function name, each tagged with the module name
// that must have been imported ("uuid", "hash", "db", "ws"). A function
// is callable only once its owning module has been imported.
type Registry struct {
	fns      map[string]Func
	module   map[string]string
	imported map[string]bool
	db       *dbHandles
	ws       *wsHandles
}

// NewRegistry builds the full native function table. Every module's
// functions are always registered, but none are callable until the
// matching "import" statement runs (see Import).
func NewRegistry() *Registry {
	r := &Registry{
		fns:      map[string]Func{},
		module:   map[string]string{},
		imported: map[string]bool{},
		db:       newDBHandles(),
		ws:       newWSHandles(),
	}
	registerUUID(r)
	registerHash(r)
	registerDB(r, r.db)
	registerWS(r, r.ws)
	return r
}

func (r *Registry) register(module, name string, f Func) {
	r.fns[name] = f
	r.module[name] = module
}

// Import marks module as imported, making its functions callable. It
// reports whether module names a known native module; an unknown name
// should be treated as a source file path instead.
func (r *Registry) Import(module string) bool {
	switch module {
	case "uuid", "hash", "db", "ws":
		r.imported[module] = true
		return true
	default:
		return false
	}
}

// Has reports whether name is a native function whose module has been
// imported.
func (r *Registry) Has(name string) bool {
	module, ok := r.module[name]
	if !ok {
		return false
	}
	return r.imported[module]
}

// Call dispatches to a native function. args are owned by the caller
// on entry; Call takes over releasing them (natives that don't need an
// argument simply decref it immediately).
func (r *Registry) Call(name string, args []value.Object) (value.Object, error) {
	if !r.Has(name) {
		releaseArgs(args)
		return nil, langerr.NewNoPos(langerr.NameError, "%q is not a native function", name)
	}
	return r.fns[name](args)
}

func argStr(args []value.Object, i int) (string, error) {
	if i >= len(args) {
		return "", langerr.NewNoPos(langerr.SyntaxError, "missing argument %d", i)
	}
	return value.ToStr(args[i])
}

func argInt(args []value.Object, i int) (int64, error) {
	if i >= len(args) {
		return 0, langerr.NewNoPos(langerr.SyntaxError, "missing argument %d", i)
	}
	return value.ToInt(args[i])
}

func releaseArgs(args []value.Object) {
	for _, a := range args {
		a.Decref()
	}
}
