// Package exprparser implements expression evaluation: assignment and
// comma expressions, precedence-climbing straight over internal/ops
// rather than building any AST. Each precedence level parses the next
// tighter level, then loops consuming same-precedence operators; every
// leaf calls into internal/ops immediately instead of constructing an
// expression node to walk later — there is no tree.
package exprparser

import (
	"strconv"

	"minilang/internal/langerr"
	"minilang/internal/lexer"
	"minilang/internal/ops"
	"minilang/internal/scope"
	"minilang/internal/value"
)

// FunctionCaller resolves and invokes a user-defined or native function
// by name. Implemented by internal/interp, which owns the bookmark-jump
// and native-dispatch machinery; this package only needs to hand it a
// name and an already-evaluated, already-copied argument list.
type FunctionCaller interface {
	CallFunction(name string, args []value.Object) (value.Object, error)
}

// Parser evaluates expressions directly against a reader's token stream
// and a scope table, producing value.Objects the caller owns.
type Parser struct {
	r      *lexer.Reader
	sc     *scope.Table
	caller FunctionCaller
}

// New returns a Parser reading from r, resolving identifiers in sc, and
// dispatching calls through caller.
func New(r *lexer.Reader, sc *scope.Table, caller FunctionCaller) *Parser {
	return &Parser{r: r, sc: sc, caller: caller}
}

func (p *Parser) errf(kind langerr.Kind, format string, args ...interface{}) error {
	return langerr.New(kind, langerr.Location{File: p.r.File, Line: p.r.Line(), Column: p.r.Column()}, format, args...)
}

func (p *Parser) accept(t lexer.TokenType) bool {
	if p.r.Token() == t {
		p.r.Next()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType) error {
	if p.accept(t) {
		return nil
	}
	return p.errf(langerr.SyntaxError, "expected %s, found %s", t, p.r.Token())
}

// CommaExpr parses a sequence of assignment expressions separated by
// commas, evaluated left to right with every value but the last
// discarded. Used for expression statements, loop conditions, and
// for-loop sequences, where a single assignment expression is the
// overwhelmingly common case.
func (p *Parser) CommaExpr() (value.Object, error) {
	v, err := p.AssignmentExpr()
	if err != nil {
		return nil, err
	}
	for p.accept(lexer.Comma) {
		v.Decref()
		v, err = p.AssignmentExpr()
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// AssignmentExpr parses IDENT '=' assignment-expr, or, failing that
// one-token lookahead, falls through to the full binary-operator ladder
// starting at the "or" precedence level.
func (p *Parser) AssignmentExpr() (value.Object, error) {
	if p.r.Token() == lexer.Ident && p.r.Peek(1).Type == lexer.Equal {
		name := p.r.Text()
		p.r.Next()
		p.r.Next()
		rhs, err := p.AssignmentExpr()
		if err != nil {
			return nil, err
		}
		id := p.sc.Search(name)
		if id == nil {
			rhs.Decref()
			return nil, p.errf(langerr.NameError, "identifier %q is not declared", name)
		}
		if id.Value == nil {
			rhs.Decref()
			return nil, p.errf(langerr.NameError, "identifier %q is not bound", name)
		}
		if err := ops.Assign(id.Value, rhs); err != nil {
			rhs.Decref()
			return nil, err
		}
		rhs.Decref()
		return id.Value.Incref(), nil
	}
	return p.orExpr()
}

func (p *Parser) orExpr() (value.Object, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.r.Token() == lexer.KwOr {
		p.r.Next()
		right, err := p.andExpr()
		if err != nil {
			left.Decref()
			return nil, err
		}
		res, err := ops.Or(left, right)
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) andExpr() (value.Object, error) {
	left, err := p.inExpr()
	if err != nil {
		return nil, err
	}
	for p.r.Token() == lexer.KwAnd {
		p.r.Next()
		right, err := p.inExpr()
		if err != nil {
			left.Decref()
			return nil, err
		}
		res, err := ops.And(left, right)
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) inExpr() (value.Object, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.r.Token() == lexer.KwIn {
		p.r.Next()
		right, err := p.equality()
		if err != nil {
			left.Decref()
			return nil, err
		}
		res, err := ops.In(left, right)
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) equality() (value.Object, error) {
	left, err := p.relational()
	if err != nil {
		return nil, err
	}
	for p.r.Token() == lexer.EqEq || p.r.Token() == lexer.Ne {
		op := p.r.Token()
		p.r.Next()
		right, err := p.relational()
		if err != nil {
			left.Decref()
			return nil, err
		}
		var res value.Object
		if op == lexer.EqEq {
			res, err = ops.Eql(left, right)
		} else {
			res, err = ops.Neq(left, right)
		}
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) relational() (value.Object, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		op := p.r.Token()
		if op != lexer.Lt && op != lexer.Le && op != lexer.Gt && op != lexer.Ge {
			break
		}
		p.r.Next()
		right, err := p.additive()
		if err != nil {
			left.Decref()
			return nil, err
		}
		var res value.Object
		switch op {
		case lexer.Lt:
			res, err = ops.Lss(left, right)
		case lexer.Le:
			res, err = ops.Leq(left, right)
		case lexer.Gt:
			res, err = ops.Gtr(left, right)
		default:
			res, err = ops.Geq(left, right)
		}
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) additive() (value.Object, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.r.Token() == lexer.Plus || p.r.Token() == lexer.Minus {
		op := p.r.Token()
		p.r.Next()
		right, err := p.multiplicative()
		if err != nil {
			left.Decref()
			return nil, err
		}
		var res value.Object
		if op == lexer.Plus {
			res, err = ops.Add(left, right)
		} else {
			res, err = ops.Sub(left, right)
		}
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) multiplicative() (value.Object, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.r.Token()
		if op != lexer.Star && op != lexer.Slash && op != lexer.Percent {
			break
		}
		p.r.Next()
		right, err := p.unary()
		if err != nil {
			left.Decref()
			return nil, err
		}
		var res value.Object
		switch op {
		case lexer.Star:
			res, err = ops.Mul(left, right)
		case lexer.Slash:
			res, err = ops.Div(left, right)
		default:
			res, err = ops.Mod(left, right)
		}
		left.Decref()
		right.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) unary() (value.Object, error) {
	switch p.r.Token() {
	case lexer.Minus:
		p.r.Next()
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		res, err := ops.Negate(v)
		v.Decref()
		return res, err
	case lexer.Not:
		p.r.Next()
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		res, err := ops.Not(v)
		v.Decref()
		return res, err
	default:
		return p.postfix()
	}
}

func (p *Parser) postfix() (value.Object, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.r.Token() == lexer.LBracket {
		p.r.Next()
		first, err := p.AssignmentExpr()
		if err != nil {
			left.Decref()
			return nil, err
		}
		if p.accept(lexer.Colon) {
			second, err := p.AssignmentExpr()
			if err != nil {
				left.Decref()
				first.Decref()
				return nil, err
			}
			if err := p.expect(lexer.RBracket); err != nil {
				left.Decref()
				first.Decref()
				second.Decref()
				return nil, err
			}
			a, aerr := value.ToInt(first)
			b, berr := value.ToInt(second)
			first.Decref()
			second.Decref()
			if aerr != nil {
				left.Decref()
				return nil, aerr
			}
			if berr != nil {
				left.Decref()
				return nil, berr
			}
			res, err := ops.Slice(left, int(a), int(b))
			left.Decref()
			if err != nil {
				return nil, err
			}
			left = res
			continue
		}
		if err := p.expect(lexer.RBracket); err != nil {
			left.Decref()
			first.Decref()
			return nil, err
		}
		idx, ierr := value.ToInt(first)
		first.Decref()
		if ierr != nil {
			left.Decref()
			return nil, ierr
		}
		res, err := ops.Item(left, int(idx))
		left.Decref()
		if err != nil {
			return nil, err
		}
		left = res
	}
	return left, nil
}

func (p *Parser) primary() (value.Object, error) {
	switch p.r.Token() {
	case lexer.IntLit:
		text := p.r.Text()
		p.r.Next()
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, p.errf(langerr.SyntaxError, "malformed integer literal %q", text)
		}
		return value.NewInt(n), nil
	case lexer.FloatLit:
		text := p.r.Text()
		p.r.Next()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errf(langerr.SyntaxError, "malformed float literal %q", text)
		}
		return value.NewFloat(f), nil
	case lexer.CharLit:
		text := p.r.Text()
		p.r.Next()
		c, err := value.StrToChar(text)
		if err != nil {
			return nil, err
		}
		return value.NewChar(c), nil
	case lexer.Str:
		text := p.r.Text()
		p.r.Next()
		return value.NewStr(text), nil
	case lexer.LBracket:
		return p.listLiteral()
	case lexer.LPar:
		p.r.Next()
		v, err := p.AssignmentExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPar); err != nil {
			v.Decref()
			return nil, err
		}
		return v, nil
	case lexer.Ident:
		name := p.r.Text()
		p.r.Next()
		if p.r.Token() == lexer.LPar {
			args, err := p.callArguments()
			if err != nil {
				return nil, err
			}
			return p.caller.CallFunction(name, args)
		}
		id := p.sc.Search(name)
		if id == nil {
			return nil, p.errf(langerr.NameError, "identifier %q is not declared", name)
		}
		if id.Value == nil {
			return nil, p.errf(langerr.NameError, "identifier %q is not bound", name)
		}
		return id.Value.Incref(), nil
	default:
		return nil, p.errf(langerr.SyntaxError, "unexpected token %s in expression", p.r.Token())
	}
}

func (p *Parser) listLiteral() (value.Object, error) {
	p.r.Next() // '['
	l := value.NewList()
	if p.r.Token() == lexer.RBracket {
		p.r.Next()
		return l, nil
	}
	for {
		v, err := p.AssignmentExpr()
		if err != nil {
			l.Decref()
			return nil, err
		}
		l.Append(v)
		v.Decref()
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expect(lexer.RBracket); err != nil {
		l.Decref()
		return nil, err
	}
	return l, nil
}

// callArguments evaluates each argument expression then deep-copies it
// into the call's own temporary list, so the callee can never alias
// (and mutate through assignment) a value the caller still holds.
func (p *Parser) callArguments() ([]value.Object, error) {
	p.r.Next() // '('
	var args []value.Object
	if p.r.Token() == lexer.RPar {
		p.r.Next()
		return args, nil
	}
	for {
		v, err := p.AssignmentExpr()
		if err != nil {
			releaseAll(args)
			return nil, err
		}
		cp, err := value.Copy(v)
		v.Decref()
		if err != nil {
			releaseAll(args)
			return nil, err
		}
		args = append(args, cp)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expect(lexer.RPar); err != nil {
		releaseAll(args)
		return nil, err
	}
	return args, nil
}

func releaseAll(args []value.Object) {
	for _, a := range args {
		a.Decref()
	}
}
