package lexer

import "testing"

func tokenTypes(r *Reader) []TokenType {
	var out []TokenType
	for {
		out = append(out, r.Token())
		if r.Token() == Endmarker {
			break
		}
		r.Next()
	}
	return out
}

func TestScanIndentation(t *testing.T) {
	src := "int x = 1\nif x\n    print x\nprint x\n"
	r, err := NewReader(src, "<test>")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	types := tokenTypes(r)
	want := []TokenType{
		KwInt, Ident, Equal, IntLit, Newline,
		KwIf, Ident, Newline,
		Indent, KwPrint, Ident, Newline,
		Dedent, KwPrint, Ident, Newline,
		Endmarker,
	}
	if len(types) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot:  %v\nwant: %v", len(types), len(want), types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestInconsistentDedentIsSyntaxError(t *testing.T) {
	src := "if 1\n  print 1\n if 2\n  print 2\n"
	if _, err := NewReader(src, "<test>"); err == nil {
		t.Fatalf("expected a syntax error for a dedent to an unseen column")
	}
}

func TestSaveJumpResets(t *testing.T) {
	r, err := NewReader("1 2 3\n", "<test>")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Token() != IntLit || r.Text() != "1" {
		t.Fatalf("first token = %s %q", r.Token(), r.Text())
	}
	bookmark := r.Save()
	r.Next()
	r.Next()
	if r.Text() != "3" {
		t.Fatalf("after two Next, text = %q, want 3", r.Text())
	}
	r.Jump(bookmark)
	if r.Text() != "1" {
		t.Fatalf("after Jump back, text = %q, want 1", r.Text())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	r, err := NewReader("x = 1\n", "<test>")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Peek(1).Type != Equal {
		t.Fatalf("Peek(1) = %s, want =", r.Peek(1).Type)
	}
	if r.Token() != Ident {
		t.Fatalf("Peek mutated current token: got %s, want IDENT", r.Token())
	}
}

func TestStringEscapesAndCharLiterals(t *testing.T) {
	r, err := NewReader("\"a\\nb\" '\\n'\n", "<test>")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Token() != Str || r.Text() != "a\nb" {
		t.Fatalf("string literal = %q, want %q", r.Text(), "a\nb")
	}
	r.Next()
	if r.Token() != CharLit || r.Text() != "\\n" {
		t.Fatalf("char literal = %q, want %q", r.Text(), "\\n")
	}
}
