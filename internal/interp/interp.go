// Package interp implements a two-phase parser/executor: a first pass
// over the whole token stream that records every function's definition
// as a reader bookmark, followed by a streaming second pass that
// executes statements directly as they are parsed, with no AST or
// bytecode step in between.
//
// Control flow that would use setjmp/longjmp in a C implementation of
// the same design instead threads a Signal return value (signal.go)
// through statement()/block(); an implicit end-of-function `return 0`
// is handled explicitly in functionCall.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"minilang/internal/exprparser"
	"minilang/internal/langerr"
	"minilang/internal/lexer"
	"minilang/internal/natives"
	"minilang/internal/scope"
	"minilang/internal/value"
)

// Interp runs one program (or, recursively, one imported module) over
// a single reader and a shared scope table.
type Interp struct {
	r           *lexer.Reader
	sc          *scope.Table
	ep          *exprparser.Parser
	natives     *natives.Registry
	out         io.Writer
	stdin       *bufio.Reader
	returnValue value.Object
}

// New builds an Interp over r, resolving/binding identifiers in sc,
// printing to out and reading "input" statements from in.
func New(r *lexer.Reader, sc *scope.Table, reg *natives.Registry, out io.Writer, in io.Reader) *Interp {
	it := &Interp{r: r, sc: sc, natives: reg, out: out, stdin: bufio.NewReader(in)}
	it.ep = exprparser.New(r, sc, it)
	return it
}

// Run executes the whole program: phase A (discoverFunctions) then
// phase B, statement by statement, until ENDMARKER.
func (in *Interp) Run() error {
	if err := in.discoverFunctions(); err != nil {
		return err
	}
	for {
		_, err := in.statement()
		if err != nil {
			return err
		}
		if in.accept(lexer.Endmarker) {
			break
		}
	}
	return nil
}

func (in *Interp) errf(kind langerr.Kind, format string, args ...interface{}) error {
	return langerr.New(kind, langerr.Location{File: in.r.File, Line: in.r.Line(), Column: in.r.Column()}, format, args...)
}

func (in *Interp) accept(t lexer.TokenType) bool {
	if in.r.Token() == t {
		in.r.Next()
		return true
	}
	return false
}

func (in *Interp) expect(t lexer.TokenType) error {
	if in.accept(t) {
		return nil
	}
	return in.errf(langerr.SyntaxError, "expected %s, found %s", t, in.r.Token())
}

// discoverFunctions scans the entire token stream, recording every
// "def NAME(...)" as a bookmark bound to NAME at the top scope level,
// then resets the reader to the start.
func (in *Interp) discoverFunctions() error {
	in.r.Reset()
	for in.r.Token() != lexer.Endmarker {
		if in.accept(lexer.KwDef) {
			if in.r.Token() != lexer.Ident {
				return in.errf(langerr.SyntaxError, "missing identifier after function definition")
			}
			name := in.r.Text()
			id := in.sc.Add(name)
			if id == nil {
				return in.errf(langerr.NameError, "%q is already declared", name)
			}
			bookmark := in.r.Save()
			scope.Bind(id, bookmark)
			bookmark.Decref()
			if err := in.skipFunction(); err != nil {
				return err
			}
		} else {
			in.r.Next()
		}
	}
	in.r.Reset()
	return nil
}

// skipFunction skips over a function's header and body during
// discovery, or over a nested "def" statement met during normal
// execution (function bodies only ever run via a call, never by
// falling into them).
func (in *Interp) skipFunction() error {
	if err := in.expect(lexer.Ident); err != nil {
		return err
	}
	if err := in.expect(lexer.LPar); err != nil {
		return err
	}
	for in.r.Token() != lexer.Newline && in.r.Token() != lexer.Endmarker {
		in.r.Next()
	}
	return in.skipBlock()
}

// skipBlock skips a whole, not-yet-entered statement block (an
// untaken if/else branch, or a function body during discovery),
// leaving the reader positioned just after the block's closing DEDENT.
func (in *Interp) skipBlock() error {
	if err := in.expect(lexer.Newline); err != nil {
		return err
	}
	if err := in.expect(lexer.Indent); err != nil {
		return err
	}
	level := 1
	for {
		in.r.Next()
		if in.r.Token() == lexer.Indent {
			level++
		}
		if in.r.Token() == lexer.Dedent {
			level--
		}
		if !(level > 0 && in.r.Token() != lexer.Endmarker) {
			break
		}
	}
	in.r.Next()
	return nil
}

// skipToBlockEnd skips the remainder of a block already being executed
// after a break/continue/return signal, stopping at (not past) the
// DEDENT that closes it — the position block()'s normal exit also
// leaves the reader in, so callers don't need to distinguish the two.
func (in *Interp) skipToBlockEnd() {
	level := 1
	for {
		in.r.Next()
		if in.r.Token() == lexer.Indent {
			level++
		}
		if in.r.Token() == lexer.Dedent {
			level--
		}
		if !(level > 0 && in.r.Token() != lexer.Endmarker) {
			break
		}
	}
}

// block executes NEWLINE INDENT statement+ DEDENT, stopping as soon as
// a statement reports a non-normal signal (propagated to the caller)
// or the block runs out of statements normally.
func (in *Interp) block() (Signal, error) {
	if err := in.expect(lexer.Newline); err != nil {
		return SigNormal, err
	}
	if err := in.expect(lexer.Indent); err != nil {
		return SigNormal, err
	}
	for {
		sig, err := in.statement()
		if err != nil {
			return SigNormal, err
		}
		if in.r.Token() == lexer.Dedent || in.r.Token() == lexer.Endmarker {
			return sig, nil
		}
		if sig != SigNormal {
			in.skipToBlockEnd()
			return sig, nil
		}
	}
}

// statement dispatches on the current token, one keyword at a time.
func (in *Interp) statement() (Signal, error) {
	switch {
	case in.accept(lexer.KwChar):
		return SigNormal, in.variableDeclaration(value.CharKind)
	case in.accept(lexer.KwInt):
		return SigNormal, in.variableDeclaration(value.IntKind)
	case in.accept(lexer.KwFloat):
		return SigNormal, in.variableDeclaration(value.FloatKind)
	case in.accept(lexer.KwStr):
		return SigNormal, in.variableDeclaration(value.StrKind)
	case in.accept(lexer.KwList):
		return SigNormal, in.variableDeclaration(value.ListKind)
	case in.accept(lexer.KwDef):
		return SigNormal, in.skipFunction()
	case in.accept(lexer.KwFor):
		return in.forStmt()
	case in.accept(lexer.KwDo):
		return in.doStmt()
	case in.accept(lexer.KwIf):
		return in.ifStmt()
	case in.accept(lexer.KwImport):
		return SigNormal, in.importStmt()
	case in.accept(lexer.KwInput):
		return SigNormal, in.inputStmt()
	case in.accept(lexer.KwPass):
		return SigNormal, in.expect(lexer.Newline)
	case in.accept(lexer.KwPrint):
		return SigNormal, in.printStmt()
	case in.accept(lexer.KwReturn):
		return in.returnStmt()
	case in.accept(lexer.KwWhile):
		return in.whileStmt()
	case in.accept(lexer.KwBreak):
		return SigBreak, nil
	case in.accept(lexer.KwContinue):
		return SigContinue, nil
	case in.accept(lexer.Endmarker):
		return SigNormal, nil
	default:
		return SigNormal, in.expressionStmt()
	}
}

// zeroValue allocates the default-initialised value for a declared
// kind: every numeric kind starts at 0, Str at "", List empty.
func zeroValue(kind value.Kind) value.Object {
	switch kind {
	case value.CharKind:
		return value.NewChar(0)
	case value.IntKind:
		return value.NewInt(0)
	case value.FloatKind:
		return value.NewFloat(0)
	case value.StrKind:
		return value.NewStr("")
	case value.ListKind:
		return value.NewList()
	default:
		panic(fmt.Sprintf("interp: zeroValue: not a declarable kind: %s", kind))
	}
}

func releaseAllArgs(args []value.Object) {
	for _, a := range args {
		a.Decref()
	}
}
