package lexer

import (
	"os"

	"minilang/internal/value"
)

// Reader walks a pre-tokenized source: Token/Text expose the current
// token, Next advances, Save/Jump/Reset bookmark and restore position,
// letting the parser backtrack cheaply instead of re-scanning.
type Reader struct {
	File   string
	tokens []Token
	pos    int
}

// NewReader tokenizes source completely and returns a Reader positioned
// at its first token.
func NewReader(source, file string) (*Reader, error) {
	toks, err := scan(source, file)
	if err != nil {
		return nil, err
	}
	return &Reader{File: file, tokens: toks}, nil
}

// NewReaderFromFile reads and tokenizes the file at path.
func NewReaderFromFile(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewReader(string(data), path)
}

// Current returns the token at the reader's current position.
func (r *Reader) Current() Token {
	if r.pos >= len(r.tokens) {
		return Token{Type: Endmarker}
	}
	return r.tokens[r.pos]
}

// Token is the type of the current token.
func (r *Reader) Token() TokenType { return r.Current().Type }

// Text is the current token's literal text.
func (r *Reader) Text() string { return r.Current().Text }

// Line/Column locate the current token, for error reporting.
func (r *Reader) Line() int   { return r.Current().Line }
func (r *Reader) Column() int { return r.Current().Column }

// Peek looks offset tokens ahead of the current one without consuming
// anything (used by the expression sub-parser's one-token assignment
// lookahead).
func (r *Reader) Peek(offset int) Token {
	idx := r.pos + offset
	if idx >= len(r.tokens) {
		return Token{Type: Endmarker}
	}
	return r.tokens[idx]
}

// Next advances one token.
func (r *Reader) Next() {
	if r.pos < len(r.tokens) {
		r.pos++
	}
}

// Save allocates a Position value capturing enough state to resume
// parsing at exactly the current token.
func (r *Reader) Save() *Position {
	return newPosition(r, r.pos)
}

// Jump restores reader state to a previously saved Position.
func (r *Reader) Jump(p *Position) {
	if p.reader != r {
		panic("lexer: Jump across readers")
	}
	r.pos = p.index
}

// Reset returns to the start of the current source.
func (r *Reader) Reset() { r.pos = 0 }

// Position is an opaque, refcounted bookmark into a Reader's token
// stream, held as a value so the language itself can pass it around
// (e.g. as a loop's saved resume point).
type Position struct {
	reader *Reader
	index  int
	rc     int
}

func newPosition(r *Reader, index int) *Position {
	return &Position{reader: r, index: index, rc: 1}
}

func (p *Position) Kind() value.Kind { return value.PositionKind }

func (p *Position) Incref() value.Object {
	p.rc++
	return p
}

func (p *Position) Decref() { p.rc-- }

func (p *Position) Refcount() int { return p.rc }

// Print renders a Position as the empty string; it has no useful
// textual form.
func (p *Position) Print() string { return "" }
