package value

import (
	"strconv"
	"strings"

	"minilang/internal/langerr"
)

// ToChar coerces op to a char: numeric kinds narrow, Str parses via
// StrToChar, anything else is a ValueError.
func ToChar(op Object) (byte, error) {
	switch v := Unwrap(op).(type) {
	case *Char:
		return v.Val, nil
	case *Int:
		return byte(v.Val), nil
	case *Float:
		return byte(int64(v.Val)), nil
	case *Str:
		return StrToChar(v.Val)
	default:
		return 0, langerr.NewNoPos(langerr.ValueError, "cannot convert %s to char", op.Kind())
	}
}

// ToInt coerces op to an int.
func ToInt(op Object) (int64, error) {
	switch v := Unwrap(op).(type) {
	case *Char:
		return int64(v.Val), nil
	case *Int:
		return v.Val, nil
	case *Float:
		return int64(v.Val), nil
	case *Str:
		return StrToInt(v.Val)
	default:
		return 0, langerr.NewNoPos(langerr.ValueError, "cannot convert %s to integer", op.Kind())
	}
}

// ToFloat coerces op to a float.
func ToFloat(op Object) (float64, error) {
	switch v := Unwrap(op).(type) {
	case *Char:
		return float64(v.Val), nil
	case *Int:
		return float64(v.Val), nil
	case *Float:
		return v.Val, nil
	case *Str:
		return StrToFloat(v.Val)
	default:
		return 0, langerr.NewNoPos(langerr.ValueError, "cannot convert %s to float", op.Kind())
	}
}

// ToStr requires op to already be a Str and is a ValueError otherwise
// (use ToStrObj for the printable-form coercion used by string `+`).
func ToStr(op Object) (string, error) {
	if s, ok := Unwrap(op).(*Str); ok {
		return s.Val, nil
	}
	return "", langerr.NewNoPos(langerr.ValueError, "cannot convert %s to string", op.Kind())
}

// ToList requires op to already be a List and is a ValueError otherwise.
func ToList(op Object) (*List, error) {
	if l, ok := Unwrap(op).(*List); ok {
		return l, nil
	}
	return nil, langerr.NewNoPos(langerr.ValueError, "cannot convert %s to list", op.Kind())
}

// ToBool reports a numeric value's truthiness on non-zero; every other
// kind is a ValueError rather than specially truthy or falsy (see
// DESIGN.md's Open Question decisions).
func ToBool(op Object) (bool, error) {
	switch v := Unwrap(op).(type) {
	case *Char:
		return v.Val != 0, nil
	case *Int:
		return v.Val != 0, nil
	case *Float:
		return v.Val != 0, nil
	default:
		return false, langerr.NewNoPos(langerr.ValueError, "cannot convert %s to bool", op.Kind())
	}
}

// StrToChar accepts a single literal character or one of the escapes
// \0 \b \f \n \r \t \v \\ \' \". Empty or multi-character content is a
// SyntaxError; an unknown escape is a ValueError.
func StrToChar(s string) (byte, error) {
	if len(s) == 0 {
		return 0, langerr.NewNoPos(langerr.SyntaxError, "empty character constant")
	}
	if s[0] == '\\' {
		if len(s) < 2 {
			return 0, langerr.NewNoPos(langerr.ValueError, "unknown escape sequence")
		}
		var c byte
		switch s[1] {
		case '0':
			c = 0
		case 'b':
			c = '\b'
		case 'f':
			c = '\f'
		case 'n':
			c = '\n'
		case 'r':
			c = '\r'
		case 't':
			c = '\t'
		case 'v':
			c = '\v'
		case '\\':
			c = '\\'
		case '\'':
			c = '\''
		case '"':
			c = '"'
		default:
			return 0, langerr.NewNoPos(langerr.ValueError, "unknown escape sequence: %c", s[1])
		}
		if len(s) > 2 {
			return 0, langerr.NewNoPos(langerr.SyntaxError, "too many characters in character constant")
		}
		return c, nil
	}
	if len(s) > 1 {
		return 0, langerr.NewNoPos(langerr.SyntaxError, "too many characters in character constant")
	}
	return s[0], nil
}

// StrToInt parses s as a base-10 integer, full consumption, overflow
// checked.
func StrToInt(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	i, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, langerr.NewNoPos(langerr.ValueError, "cannot convert %q to int", s)
	}
	return i, nil
}

// StrToFloat parses s as a base-10 float, full consumption, overflow
// checked.
func StrToFloat(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, langerr.NewNoPos(langerr.ValueError, "cannot convert %q to float", s)
	}
	return f, nil
}

// ToStrObj coerces op to its printable string form for use by `+` and
// by assignment to a str: Str inputs are returned with an added
// reference (the one exception to every other operator here returning
// a fresh object); Char, Int, Float and List are rendered to their
// printed form, None to "None", and any other kind to "".
func ToStrObj(op Object) Object {
	switch v := Unwrap(op).(type) {
	case *Str:
		return v.Incref()
	case *Char:
		return NewStr(string(rune(v.Val)))
	case *Int:
		return NewStr(v.Print())
	case *Float:
		return NewStr(v.Print())
	case *List:
		return NewStr(v.Print())
	case *None:
		return NewStr("None")
	default:
		return NewStr("")
	}
}
