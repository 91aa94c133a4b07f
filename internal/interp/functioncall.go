package interp

import (
	"minilang/internal/langerr"
	"minilang/internal/lexer"
	"minilang/internal/scope"
	"minilang/internal/value"
)

// CallFunction implements exprparser.FunctionCaller: resolve name as
// either a native function or a user-defined one (bound, during
// discovery, to a reader Position at the top scope level) and invoke
// it. args are already deep copies the callee owns outright.
func (in *Interp) CallFunction(name string, args []value.Object) (value.Object, error) {
	if in.natives != nil && in.natives.Has(name) {
		return in.natives.Call(name, args)
	}
	id := in.sc.Search(name)
	if id == nil {
		releaseAllArgs(args)
		return nil, in.errf(langerr.NameError, "%q is not defined", name)
	}
	pos, ok := id.Value.(*lexer.Position)
	if !ok {
		releaseAllArgs(args)
		return nil, in.errf(langerr.TypeError, "%q is not callable", name)
	}
	return in.functionCall(pos, args)
}

// functionCall pushes a scope level, jumps to the function's bookmark,
// binds its formal parameters from args, executes its body, then jumps
// back to the call site. A body that runs to its closing DEDENT
// without an explicit return yields Int 0.
func (in *Interp) functionCall(addr *lexer.Position, args []value.Object) (value.Object, error) {
	in.sc.PushLevel()
	returnTo := in.r.Save()
	in.r.Jump(addr)

	if err := in.expect(lexer.Ident); err != nil {
		in.sc.PopLevel()
		in.r.Jump(returnTo)
		returnTo.Decref()
		releaseAllArgs(args)
		return nil, err
	}
	if err := in.popArguments(args); err != nil {
		in.sc.PopLevel()
		in.r.Jump(returnTo)
		returnTo.Decref()
		return nil, err
	}

	sig, err := in.block()
	if err != nil {
		in.sc.PopLevel()
		in.r.Jump(returnTo)
		returnTo.Decref()
		return nil, err
	}

	var result value.Object
	if sig == SigReturn {
		result = in.returnValue
		in.returnValue = nil
	} else {
		result = value.NewInt(0)
	}

	in.sc.PopLevel()
	in.r.Jump(returnTo)
	returnTo.Decref()
	return result, nil
}

// popArguments reads the function's formal parameter list and binds
// each name to the next argument in order. Missing arguments are a
// SyntaxError; extra arguments are silently dropped (see DESIGN.md's
// Open Question decisions).
func (in *Interp) popArguments(args []value.Object) error {
	if err := in.expect(lexer.LPar); err != nil {
		releaseAllArgs(args)
		return err
	}
	i := 0
	for in.r.Token() != lexer.RPar {
		if in.r.Token() != lexer.Ident {
			releaseAllArgs(args[i:])
			return in.errf(langerr.SyntaxError, "expected identifier instead of %s", in.r.Token())
		}
		name := in.r.Text()
		id := in.sc.Add(name)
		if id == nil {
			releaseAllArgs(args[i:])
			return in.errf(langerr.NameError, "identifier %q already declared", name)
		}
		if i >= len(args) {
			return in.errf(langerr.SyntaxError, "missing argument for parameter %q", name)
		}
		scope.Bind(id, args[i])
		args[i].Decref()
		i++
		in.r.Next()
		in.accept(lexer.Comma)
	}
	releaseAllArgs(args[i:])
	return in.expect(lexer.RPar)
}
