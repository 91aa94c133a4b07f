package exprparser

import (
	"testing"

	"minilang/internal/lexer"
	"minilang/internal/scope"
	"minilang/internal/value"
)

type stubCaller struct {
	calls int
}

func (s *stubCaller) CallFunction(name string, args []value.Object) (value.Object, error) {
	s.calls++
	for _, a := range args {
		a.Decref()
	}
	return value.NewInt(int64(len(args))), nil
}

func evalComma(t *testing.T, src string, sc *scope.Table, caller FunctionCaller) value.Object {
	t.Helper()
	r, err := lexer.NewReader(src+"\n", "<test>")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	p := New(r, sc, caller)
	v, err := p.CommaExpr()
	if err != nil {
		t.Fatalf("CommaExpr(%q): %v", src, err)
	}
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "2 + 3 * 4", sc, &stubCaller{})
	defer v.Decref()
	n, err := value.ToInt(v)
	if err != nil || n != 14 {
		t.Fatalf("2 + 3 * 4 = %d (err %v), want 14", n, err)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "(2 + 3) * 4", sc, &stubCaller{})
	defer v.Decref()
	n, _ := value.ToInt(v)
	if n != 20 {
		t.Fatalf("(2 + 3) * 4 = %d, want 20", n)
	}
}

func TestAssignmentUpdatesBoundIdentifier(t *testing.T) {
	sc := scope.New()
	id := sc.Add("x")
	zero := value.NewInt(0)
	scope.Bind(id, zero)
	zero.Decref()

	v := evalComma(t, "x = 5", sc, &stubCaller{})
	v.Decref()

	n, _ := value.ToInt(id.Value)
	if n != 5 {
		t.Fatalf("after x = 5, x = %d, want 5", n)
	}
}

func TestCommaExprDiscardsAllButLast(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "1, 2, 3", sc, &stubCaller{})
	defer v.Decref()
	n, _ := value.ToInt(v)
	if n != 3 {
		t.Fatalf("comma expr result = %d, want 3 (the last operand)", n)
	}
}

func TestListLiteralAndSubscript(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "[10, 20, 30][1]", sc, &stubCaller{})
	defer v.Decref()
	n, err := value.ToInt(v)
	if err != nil || n != 20 {
		t.Fatalf("[10,20,30][1] = %d (err %v), want 20", n, err)
	}
}

func TestSliceExpression(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "[1, 2, 3, 4][1:3]", sc, &stubCaller{})
	defer v.Decref()
	lst, err := value.ToList(v)
	if err != nil {
		t.Fatalf("ToList: %v", err)
	}
	if lst.Length() != 2 {
		t.Fatalf("[1,2,3,4][1:3] length = %d, want 2", lst.Length())
	}
}

func TestFunctionCallPassesEveryArgument(t *testing.T) {
	sc := scope.New()
	caller := &stubCaller{}
	v := evalComma(t, "f(1, 2, 3)", sc, caller)
	defer v.Decref()
	n, _ := value.ToInt(v)
	if n != 3 {
		t.Fatalf("f(1,2,3) arg count reported = %d, want 3", n)
	}
	if caller.calls != 1 {
		t.Fatalf("CallFunction invoked %d times, want 1", caller.calls)
	}
}

func TestUnaryMinusAndNot(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "-5", sc, &stubCaller{})
	n, _ := value.ToInt(v)
	v.Decref()
	if n != -5 {
		t.Fatalf("-5 = %d, want -5", n)
	}

	v2 := evalComma(t, "!0", sc, &stubCaller{})
	n2, _ := value.ToInt(v2)
	v2.Decref()
	if n2 != 1 {
		t.Fatalf("!0 = %d, want 1", n2)
	}
}

func TestAndOrShortCircuitNotRequired(t *testing.T) {
	sc := scope.New()
	v := evalComma(t, "1 and 0 or 1", sc, &stubCaller{})
	defer v.Decref()
	n, _ := value.ToInt(v)
	if n != 1 {
		t.Fatalf("1 and 0 or 1 = %d, want 1", n)
	}
}

func TestUndeclaredIdentifierIsNameError(t *testing.T) {
	sc := scope.New()
	r, err := lexer.NewReader("missing\n", "<test>")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	p := New(r, sc, &stubCaller{})
	if _, err := p.CommaExpr(); err == nil {
		t.Fatalf("expected a NameError for an undeclared identifier")
	}
}
