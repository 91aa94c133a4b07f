package interp

import (
	"fmt"

	"minilang/internal/langerr"
	"minilang/internal/lexer"
	"minilang/internal/ops"
	"minilang/internal/scope"
	"minilang/internal/value"
)

// variableDeclaration parses one or more "IDENT (= expr)?" clauses,
// comma-separated, all of the declared kind.
func (in *Interp) variableDeclaration(kind value.Kind) error {
	for {
		if in.r.Token() != lexer.Ident {
			return in.errf(langerr.SyntaxError, "expected identifier instead of %s", in.r.Token())
		}
		name := in.r.Text()
		id := in.sc.Add(name)
		if id == nil {
			return in.errf(langerr.NameError, "identifier %q already declared", name)
		}
		zero := zeroValue(kind)
		scope.Bind(id, zero)
		zero.Decref()
		in.r.Next()

		if in.accept(lexer.Equal) {
			rhs, err := in.ep.AssignmentExpr()
			if err != nil {
				return err
			}
			if err := ops.Assign(id.Value, rhs); err != nil {
				rhs.Decref()
				return err
			}
			rhs.Decref()
		}
		if in.accept(lexer.Newline) {
			break
		}
		if err := in.expect(lexer.Comma); err != nil {
			return err
		}
	}
	return nil
}

// condition evaluates a comma expression and tests its truthiness;
// non-numeric values are a ValueError here, never specially truthy or
// falsy (see DESIGN.md's Open Question decisions).
func (in *Interp) condition() (bool, error) {
	v, err := in.ep.CommaExpr()
	if err != nil {
		return false, err
	}
	b, err := value.ToBool(v)
	v.Decref()
	return b, err
}

func (in *Interp) ifStmt() (Signal, error) {
	cond, err := in.condition()
	if err != nil {
		return SigNormal, err
	}
	if cond {
		sig, err := in.block()
		if err != nil {
			return SigNormal, err
		}
		if err := in.expect(lexer.Dedent); err != nil {
			return SigNormal, err
		}
		if in.accept(lexer.KwElse) {
			if err := in.skipBlock(); err != nil {
				return SigNormal, err
			}
		}
		return sig, nil
	}
	if err := in.skipBlock(); err != nil {
		return SigNormal, err
	}
	if in.accept(lexer.KwElse) {
		sig, err := in.block()
		if err != nil {
			return SigNormal, err
		}
		if err := in.expect(lexer.Dedent); err != nil {
			return SigNormal, err
		}
		return sig, nil
	}
	return SigNormal, nil
}

// whileStmt evaluates a "while condition" loop. The loop bookmark sits right after
// the WHILE keyword, before the condition, so every iteration
// (including the final, loop-ending one) re-parses the condition
// itself; a break still forces one more condition parse (to land the
// reader on the body's NEWLINE) before skipBlock() skips the
// not-re-entered body.
func (in *Interp) whileStmt() (Signal, error) {
	loop := in.r.Save()
	brokeOut := false
	for {
		cond, err := in.condition()
		if err != nil {
			loop.Decref()
			return SigNormal, err
		}
		if !cond || brokeOut {
			break
		}
		sig, err := in.block()
		if err != nil {
			loop.Decref()
			return SigNormal, err
		}
		if sig == SigReturn {
			loop.Decref()
			return sig, nil
		}
		if sig == SigBreak {
			brokeOut = true
		}
		if err := in.expect(lexer.Dedent); err != nil {
			loop.Decref()
			return SigNormal, err
		}
		in.r.Jump(loop)
	}
	if err := in.skipBlock(); err != nil {
		loop.Decref()
		return SigNormal, err
	}
	loop.Decref()
	return SigNormal, nil
}

// doStmt evaluates a "do ... while condition" loop: body first, then
// the trailing condition check.
func (in *Interp) doStmt() (Signal, error) {
	if in.r.Token() != lexer.Newline {
		return SigNormal, in.errf(langerr.SyntaxError, "expected newline after do")
	}
	loop := in.r.Save()
	brokeOut := false
	for {
		in.r.Jump(loop)
		sig, err := in.block()
		if err != nil {
			loop.Decref()
			return SigNormal, err
		}
		if sig == SigReturn {
			loop.Decref()
			return sig, nil
		}
		if sig == SigBreak {
			brokeOut = true
		}
		if err := in.expect(lexer.Dedent); err != nil {
			loop.Decref()
			return SigNormal, err
		}
		if err := in.expect(lexer.KwWhile); err != nil {
			loop.Decref()
			return SigNormal, err
		}
		cond, err := in.condition()
		if err != nil {
			loop.Decref()
			return SigNormal, err
		}
		if !cond || brokeOut {
			break
		}
	}
	loop.Decref()
	return SigNormal, in.expect(lexer.Newline)
}

// forStmt binds the loop variable to each element of a sequence in
// turn, re-executing the body's tokens every iteration exactly like
// whileStmt/doStmt.
func (in *Interp) forStmt() (Signal, error) {
	var id *scope.Binding
	if in.r.Token() == lexer.Ident {
		name := in.r.Text()
		if existing := in.sc.Search(name); existing != nil {
			id = existing
		} else {
			id = in.sc.Add(name)
		}
	}
	if err := in.expect(lexer.Ident); err != nil {
		return SigNormal, err
	}
	if err := in.expect(lexer.KwIn); err != nil {
		return SigNormal, err
	}
	sequence, err := in.ep.CommaExpr()
	if err != nil {
		return SigNormal, err
	}
	length, err := ops.Length(sequence)
	if err != nil {
		sequence.Decref()
		return SigNormal, err
	}
	if in.r.Token() != lexer.Newline {
		sequence.Decref()
		return SigNormal, in.errf(langerr.SyntaxError, "expected newline")
	}

	loop := in.r.Save()
	brokeOut := false
	for i := int64(0); i < length && !brokeOut; i++ {
		item, err := ops.Item(sequence, int(i))
		if err != nil {
			sequence.Decref()
			loop.Decref()
			return SigNormal, err
		}
		scope.Bind(id, item)
		item.Decref()

		sig, err := in.block()
		scope.Unbind(id)
		if err != nil {
			sequence.Decref()
			loop.Decref()
			return SigNormal, err
		}
		if sig == SigReturn {
			sequence.Decref()
			loop.Decref()
			return sig, nil
		}
		if sig == SigBreak {
			brokeOut = true
		}
		if err := in.expect(lexer.Dedent); err != nil {
			sequence.Decref()
			loop.Decref()
			return SigNormal, err
		}
		in.r.Jump(loop)
	}
	sequence.Decref()
	if err := in.skipBlock(); err != nil {
		loop.Decref()
		return SigNormal, err
	}
	loop.Decref()
	return SigNormal, nil
}

// printStmt prints one or more comma-separated expressions with no
// separator and no trailing newline — the statement's own NEWLINE is a
// source terminator, not an output one.
func (in *Interp) printStmt() error {
	for {
		v, err := in.ep.AssignmentExpr()
		if err != nil {
			return err
		}
		fmt.Fprint(in.out, v.Print())
		v.Decref()
		if !in.accept(lexer.Comma) {
			break
		}
	}
	return in.expect(lexer.Newline)
}

// inputStmt reads an optional prompt string followed by an
// already-declared identifier, whose value is overwritten with a
// freshly scanned value of its own declared kind.
func (in *Interp) inputStmt() error {
	for {
		if in.r.Token() == lexer.Str {
			fmt.Fprint(in.out, in.r.Text())
			in.r.Next()
		}
		if in.r.Token() != lexer.Ident {
			return in.errf(langerr.SyntaxError, "expected identifier instead of %s", in.r.Token())
		}
		name := in.r.Text()
		id := in.sc.Search(name)
		if id == nil {
			return in.errf(langerr.NameError, "identifier %q undeclared", name)
		}
		obj, err := in.scanValue(id.Value.Kind())
		if err != nil {
			return err
		}
		scope.Bind(id, obj)
		obj.Decref()
		in.accept(lexer.Ident)
		if !in.accept(lexer.Comma) {
			break
		}
	}
	return in.expect(lexer.Newline)
}

// scanValue reads one line from stdin and parses it as the given kind.
func (in *Interp) scanValue(kind value.Kind) (value.Object, error) {
	line, err := in.stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, langerr.NewNoPos(langerr.SystemError, "input: %v", err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	switch kind {
	case value.CharKind:
		c, err := value.StrToChar(line)
		if err != nil {
			return nil, err
		}
		return value.NewChar(c), nil
	case value.IntKind:
		n, err := value.StrToInt(line)
		if err != nil {
			return nil, err
		}
		return value.NewInt(n), nil
	case value.FloatKind:
		f, err := value.StrToFloat(line)
		if err != nil {
			return nil, err
		}
		return value.NewFloat(f), nil
	case value.StrKind:
		return value.NewStr(line), nil
	default:
		return nil, langerr.NewNoPos(langerr.TypeError, "cannot read type %s from input", kind)
	}
}

// expressionStmt evaluates a bare expression statement and discards
// its result.
func (in *Interp) expressionStmt() error {
	v, err := in.ep.CommaExpr()
	if err != nil {
		return err
	}
	v.Decref()
	return in.expect(lexer.Newline)
}

// returnStmt stashes the value on the Interp and reports SigReturn,
// which block()/functionCall propagate up to the call site.
func (in *Interp) returnStmt() (Signal, error) {
	if in.r.Token() == lexer.Newline {
		in.returnValue = value.NewInt(0)
	} else {
		v, err := in.ep.CommaExpr()
		if err != nil {
			return SigNormal, err
		}
		in.returnValue = v
	}
	if err := in.expect(lexer.Newline); err != nil {
		return SigNormal, err
	}
	return SigReturn, nil
}

// importStmt runs the imported file as a nested, complete Interp over
// its own Reader, sharing this Interp's scope table so top-level defs
// and variables merge into the importer, then resumes at the next
// token here.
func (in *Interp) importStmt() error {
	for {
		v, err := in.ep.AssignmentExpr()
		if err != nil {
			return err
		}
		path, perr := value.ToStr(v)
		v.Decref()
		if perr != nil {
			return perr
		}
		if err := in.runImport(path); err != nil {
			return err
		}
		if !in.accept(lexer.Comma) {
			break
		}
	}
	return in.expect(lexer.Newline)
}

// runImport treats path as a native module name first (uuid/hash/db/ws:
// marks that module's functions callable in the native registry instead
// of reading a file) and falls back to importing it as a source file.
func (in *Interp) runImport(path string) error {
	if in.natives != nil && in.natives.Import(path) {
		return nil
	}
	sub, err := lexer.NewReaderFromFile(path)
	if err != nil {
		return langerr.Fatal(langerr.SystemError, "cannot import %q: %v", path, err)
	}
	child := New(sub, in.sc, in.natives, in.out, in.stdin)
	return child.Run()
}
