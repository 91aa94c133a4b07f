package ops

import (
	"testing"

	"minilang/internal/value"
)

func mustInt(t *testing.T, o value.Object) int64 {
	t.Helper()
	i, err := value.ToInt(o)
	if err != nil {
		t.Fatalf("ToInt: %v", err)
	}
	return i
}

func TestAddNumericCoercionLadder(t *testing.T) {
	cases := []struct {
		name string
		a, b value.Object
		kind value.Kind
	}{
		{"char+char", value.NewChar(1), value.NewChar(2), value.CharKind},
		{"int+int", value.NewInt(1), value.NewInt(2), value.IntKind},
		{"int+float", value.NewInt(1), value.NewFloat(2.5), value.FloatKind},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := Add(c.a, c.b)
			c.a.Decref()
			c.b.Decref()
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			defer res.Decref()
			if res.Kind() != c.kind {
				t.Fatalf("Add result kind = %s, want %s", res.Kind(), c.kind)
			}
		})
	}
}

func TestAddStringConcatenatesPrintedForm(t *testing.T) {
	s := value.NewStr("count: ")
	n := value.NewInt(3)
	res, err := Add(s, n)
	s.Decref()
	n.Decref()
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	defer res.Decref()
	str, err := value.ToStr(res)
	if err != nil {
		t.Fatalf("ToStr: %v", err)
	}
	if str != "count: 3" {
		t.Fatalf("Add(str, int) = %q, want %q", str, "count: 3")
	}
}

func TestDivisionByZeroIsValueError(t *testing.T) {
	a := value.NewInt(1)
	b := value.NewInt(0)
	defer a.Decref()
	defer b.Decref()
	_, err := Div(a, b)
	if err == nil {
		t.Fatalf("Div by zero: want error, got nil")
	}
}

func TestListRepeatAndEquality(t *testing.T) {
	l := value.NewList()
	e := value.NewInt(1)
	l.Append(e)
	e.Decref()

	n := value.NewInt(3)
	res, err := Mul(l, n)
	n.Decref()
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	repeated := res.(*value.List)
	if repeated.Length() != 3 {
		t.Fatalf("list * 3 length = %d, want 3", repeated.Length())
	}

	eq, err := Eql(l, l)
	if err != nil {
		t.Fatalf("Eql: %v", err)
	}
	if mustInt(t, eq) != 1 {
		t.Fatalf("list == itself should be true")
	}
	eq.Decref()
	l.Decref()
	res.Decref()
}

func TestInFindsMatchInList(t *testing.T) {
	l := value.NewList()
	for _, v := range []int64{1, 2, 3} {
		e := value.NewInt(v)
		l.Append(e)
		e.Decref()
	}
	needle := value.NewInt(2)
	res, err := In(needle, l)
	needle.Decref()
	l.Decref()
	if err != nil {
		t.Fatalf("In: %v", err)
	}
	defer res.Decref()
	if mustInt(t, res) != 1 {
		t.Fatalf("In: 2 in [1,2,3] should be true")
	}
}

func TestItemOnListIncrefsNode(t *testing.T) {
	l := value.NewList()
	e := value.NewInt(42)
	l.Append(e)
	e.Decref()

	item, err := Item(l, 0)
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if item.Refcount() != 2 {
		t.Fatalf("Item(list,0) refcount = %d, want 2 (list's own ref + caller's)", item.Refcount())
	}
	item.Decref()
	l.Decref()
}

func TestAssignCoercesIntoDeclaredKind(t *testing.T) {
	dst := value.NewFloat(0)
	src := value.NewInt(7)
	defer src.Decref()
	defer dst.Decref()
	if err := Assign(dst, src); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if dst.Val != 7.0 {
		t.Fatalf("Assign(float, int): got %v, want 7.0", dst.Val)
	}
}

func TestNegateTypeError(t *testing.T) {
	s := value.NewStr("x")
	defer s.Decref()
	if _, err := Negate(s); err == nil {
		t.Fatalf("Negate(str): want error, got nil")
	}
}

func TestIntArithmeticKeepsFullInt64Precision(t *testing.T) {
	// 2^53 + 3: float64's 53-bit mantissa cannot represent this exactly,
	// so routing the add through float64 would silently round it.
	a := value.NewInt(9007199254740992)
	b := value.NewInt(3)
	defer a.Decref()
	defer b.Decref()
	res, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	defer res.Decref()
	if got := mustInt(t, res); got != 9007199254740995 {
		t.Fatalf("Add(2^53, 3) = %d, want 9007199254740995", got)
	}
}

func TestIntDivisionKeepsFullInt64Precision(t *testing.T) {
	a := value.NewInt(9223372036854775805)
	b := value.NewInt(1)
	defer a.Decref()
	defer b.Decref()
	res, err := Div(a, b)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	defer res.Decref()
	if got := mustInt(t, res); got != 9223372036854775805 {
		t.Fatalf("Div(9223372036854775805, 1) = %d, want 9223372036854775805", got)
	}
}
