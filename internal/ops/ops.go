// Package ops implements the operator dispatch table: the family of
// unary and binary operations that unwrap ListNode operands, coerce
// operand kinds, pick a kind-specific implementation, and return a
// freshly-allocated result.
package ops

import (
	"math"

	"minilang/internal/langerr"
	"minilang/internal/value"
)

func typeErr(op string, a, b value.Object) error {
	return langerr.NewNoPos(langerr.TypeError,
		"unsupported operand type(s) for operation %s: %s and %s", op, a.Kind(), b.Kind())
}

func typeErr1(op string, a value.Object) error {
	return langerr.NewNoPos(langerr.TypeError, "unsupported operand type for operation %s: %s", op, a.Kind())
}

// Add implements op1 + op2: numeric×numeric coerces, string+anything
// converts the other side to its printed form, list×list concatenates.
func Add(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	switch {
	case value.IsNumber(a) && value.IsNumber(b):
		return numericBinary(a, b,
			func(x, y int64) int64 { return x + y },
			func(x, y float64) float64 { return x + y }), nil
	case value.IsString(a) || value.IsString(b):
		return value.Concat(a, b), nil
	case value.IsList(a) && value.IsList(b):
		return value.Concat2(a.(*value.List), b.(*value.List)), nil
	default:
		return nil, typeErr("+", a, b)
	}
}

// Sub implements op1 - op2: numeric only.
func Sub(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, typeErr("-", a, b)
	}
	return numericBinary(a, b,
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y }), nil
}

// Mul implements op1 * op2: numeric×numeric, or a numeric paired with
// a string/list to repeat it.
func Mul(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	switch {
	case value.IsNumber(a) && value.IsNumber(b):
		return numericBinary(a, b,
			func(x, y int64) int64 { return x * y },
			func(x, y float64) float64 { return x * y }), nil
	case (value.IsNumber(a) || value.IsNumber(b)) && (value.IsString(a) || value.IsString(b)):
		str, num := pickStringAndNumber(a, b)
		n, err := value.ToInt(num)
		if err != nil {
			return nil, err
		}
		return str.Repeat(n), nil
	case (value.IsNumber(a) || value.IsNumber(b)) && (value.IsList(a) || value.IsList(b)):
		lst, num := pickListAndNumber(a, b)
		n, err := value.ToInt(num)
		if err != nil {
			return nil, err
		}
		return lst.Repeat(n), nil
	default:
		return nil, typeErr("*", a, b)
	}
}

func pickStringAndNumber(a, b value.Object) (*value.Str, value.Object) {
	if s, ok := a.(*value.Str); ok {
		return s, b
	}
	return b.(*value.Str), a
}

func pickListAndNumber(a, b value.Object) (*value.List, value.Object) {
	if l, ok := a.(*value.List); ok {
		return l, b
	}
	return b.(*value.List), a
}

// Div implements op1 / op2: numeric only, division by zero is a
// ValueError.
func Div(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, typeErr("/", a, b)
	}
	kind := value.HigherKind(a.Kind(), b.Kind())
	if kind == value.FloatKind {
		divisor := value.AsFloat64(b)
		if divisor == 0 {
			return nil, langerr.NewNoPos(langerr.ValueError, "division by zero")
		}
		return value.NewFloat(value.AsFloat64(a) / divisor), nil
	}
	divisor := value.AsInt64(b)
	if divisor == 0 {
		return nil, langerr.NewNoPos(langerr.ValueError, "division by zero")
	}
	return value.NewIntegral(kind, value.AsInt64(a)/divisor), nil
}

// Mod implements op1 % op2: remainder whose sign follows the dividend
// (Go's % and math.Mod already have this behaviour); a Float operand
// gives a Float result.
func Mod(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, typeErr("%", a, b)
	}
	kind := value.HigherKind(a.Kind(), b.Kind())
	if kind == value.FloatKind {
		fdivisor := value.AsFloat64(b)
		if fdivisor == 0 {
			return nil, langerr.NewNoPos(langerr.ValueError, "division by zero")
		}
		return value.NewFloat(math.Mod(value.AsFloat64(a), fdivisor)), nil
	}
	divisor := value.AsInt64(b)
	if divisor == 0 {
		return nil, langerr.NewNoPos(langerr.ValueError, "division by zero")
	}
	return value.NewIntegral(kind, value.AsInt64(a)%divisor), nil
}

// Negate implements unary -op1 (0 - op1): same numeric kind as op1.
func Negate(op1 value.Object) (value.Object, error) {
	a := value.Unwrap(op1)
	if !value.IsNumber(a) {
		return nil, typeErr1("-", a)
	}
	if a.Kind() == value.FloatKind {
		return value.NewFloat(-value.AsFloat64(a)), nil
	}
	return value.NewIntegral(a.Kind(), -value.AsInt64(a)), nil
}

// Not implements unary !op1: Int 0 or 1, the logical negation of
// op1's truthiness.
func Not(op1 value.Object) (value.Object, error) {
	a := value.Unwrap(op1)
	if !value.IsNumber(a) {
		return nil, typeErr1("!", a)
	}
	if value.AsFloat64(a) == 0 {
		return value.NewInt(1), nil
	}
	return value.NewInt(0), nil
}

func boolInt(b bool) *value.Int {
	if b {
		return value.NewInt(1)
	}
	return value.NewInt(0)
}

// Eql implements op1 == op2: numeric/string/list compare by value;
// operands of different kind families are by definition not equal.
func Eql(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	switch {
	case value.IsNumber(a) && value.IsNumber(b):
		return boolInt(value.AsFloat64(a) == value.AsFloat64(b)), nil
	case value.IsString(a) && value.IsString(b):
		return boolInt(a.(*value.Str).Eql(b.(*value.Str))), nil
	case value.IsList(a) && value.IsList(b):
		return boolInt(a.(*value.List).Eql(b.(*value.List))), nil
	default:
		return value.NewInt(0), nil
	}
}

// Neq implements op1 != op2.
func Neq(op1, op2 value.Object) (value.Object, error) {
	eq, err := Eql(op1, op2)
	if err != nil {
		return nil, err
	}
	defer eq.Decref()
	i := eq.(*value.Int).Val
	if i == 1 {
		return value.NewInt(0), nil
	}
	return value.NewInt(1), nil
}

func numericCompare(op string, op1, op2 value.Object, cmp func(x, y float64) bool) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, typeErr(op, a, b)
	}
	return boolInt(cmp(value.AsFloat64(a), value.AsFloat64(b))), nil
}

func Lss(op1, op2 value.Object) (value.Object, error) {
	return numericCompare("<", op1, op2, func(x, y float64) bool { return x < y })
}

func Leq(op1, op2 value.Object) (value.Object, error) {
	return numericCompare("<=", op1, op2, func(x, y float64) bool { return x <= y })
}

func Gtr(op1, op2 value.Object) (value.Object, error) {
	return numericCompare(">", op1, op2, func(x, y float64) bool { return x > y })
}

func Geq(op1, op2 value.Object) (value.Object, error) {
	return numericCompare(">=", op1, op2, func(x, y float64) bool { return x >= y })
}

// And implements op1 and op2: numeric only, Int 0/1. Short-circuiting
// is left to the expression parser; this function always evaluates
// both sides since its arguments already exist.
func And(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, typeErr("and", a, b)
	}
	return boolInt(value.AsFloat64(a) != 0 && value.AsFloat64(b) != 0), nil
}

// Or implements op1 or op2.
func Or(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, typeErr("or", a, b)
	}
	return boolInt(value.AsFloat64(a) != 0 || value.AsFloat64(b) != 0), nil
}

// In implements op1 in op2: iterate the sequence op2, returning 1 at
// the first ==-match.
func In(op1, op2 value.Object) (value.Object, error) {
	a, b := value.Unwrap(op1), value.Unwrap(op2)
	if !value.IsSequence(b) {
		return nil, langerr.NewNoPos(langerr.TypeError, "%s is not subscriptable", b.Kind())
	}
	length, err := Length(b)
	if err != nil {
		return nil, err
	}
	for i := int64(0); i < length; i++ {
		item, err := Item(b, int(i))
		if err != nil {
			return nil, err
		}
		eq, err := Eql(a, item)
		item.Decref()
		if err != nil {
			return nil, err
		}
		match := eq.(*value.Int).Val == 1
		eq.Decref()
		if match {
			return value.NewInt(1), nil
		}
	}
	return value.NewInt(0), nil
}

// Item implements sequence[index]: Char for a string, ListNode for a
// list. Both arms return a reference the caller owns and must release:
// Str.Item already allocates a fresh Char, while List.Item hands back
// the node it keeps internally, so that arm takes an extra reference
// on the way out.
func Item(seq value.Object, index int) (value.Object, error) {
	s := value.Unwrap(seq)
	switch v := s.(type) {
	case *value.Str:
		return v.Item(index)
	case *value.List:
		n, err := v.Item(index)
		if err != nil {
			return nil, err
		}
		return n.Incref(), nil
	default:
		return nil, langerr.NewNoPos(langerr.TypeError, "type %s is not subscriptable", s.Kind())
	}
}

// Slice implements sequence[start:end].
func Slice(seq value.Object, start, end int) (value.Object, error) {
	s := value.Unwrap(seq)
	switch v := s.(type) {
	case *value.Str:
		return v.Slice(start, end), nil
	case *value.List:
		return v.Slice(start, end), nil
	default:
		return nil, langerr.NewNoPos(langerr.TypeError, "type %s is not subscriptable", s.Kind())
	}
}

// Length implements len(sequence).
func Length(seq value.Object) (int64, error) {
	s := value.Unwrap(seq)
	switch v := s.(type) {
	case *value.Str:
		return int64(v.Length()), nil
	case *value.List:
		return int64(v.Length()), nil
	default:
		return 0, langerr.NewNoPos(langerr.TypeError, "type %s is not subscriptable", s.Kind())
	}
}

// numericBinary widens both operands to the higher of their kinds and
// applies fi or ff, producing a fresh result of that kind. Char/Int
// results go through fi's int64 arithmetic so large values never lose
// precision crossing float64's 53-bit mantissa; only a Float result
// uses ff.
func numericBinary(a, b value.Object, fi func(x, y int64) int64, ff func(x, y float64) float64) value.Object {
	kind := value.HigherKind(a.Kind(), b.Kind())
	if kind == value.FloatKind {
		return value.NewFloat(ff(value.AsFloat64(a), value.AsFloat64(b)))
	}
	return value.NewIntegral(kind, fi(value.AsInt64(a), value.AsInt64(b)))
}

// Assign implements op1 = (type op1) op2, coercing op2 to op1's
// declared kind in place.
func Assign(op1, op2 value.Object) error {
	switch v := op1.(type) {
	case *value.Char:
		c, err := value.ToChar(op2)
		if err != nil {
			return err
		}
		v.Val = c
	case *value.Int:
		i, err := value.ToInt(op2)
		if err != nil {
			return err
		}
		v.Val = i
	case *value.Float:
		f, err := value.ToFloat(op2)
		if err != nil {
			return err
		}
		v.Val = f
	case *value.Str:
		strObj := value.ToStrObj(op2)
		defer strObj.Decref()
		v.Val = strObj.(*value.Str).Val
	case *value.List:
		l, err := value.ToList(op2)
		if err != nil {
			return err
		}
		v.SetFrom(l)
	default:
		return langerr.NewNoPos(langerr.TypeError, "unsupported operand type(s) for operation =: %s and %s", op1.Kind(), op2.Kind())
	}
	return nil
}
