// Package lexer implements the reader/scanner consumed by the
// parser/executor: a pre-tokenized stream with Next/Save/Jump/Reset,
// and INDENT/DEDENT recognition over a Python-style indent stack.
package lexer

import "fmt"

// TokenType identifies one lexical token kind.
type TokenType string

const (
	Ident    TokenType = "IDENT"
	Str      TokenType = "STR"
	IntLit   TokenType = "INT_LIT"
	FloatLit TokenType = "FLOAT_LIT"
	CharLit  TokenType = "CHAR_LIT"

	LPar     TokenType = "("
	RPar     TokenType = ")"
	LBracket TokenType = "["
	RBracket TokenType = "]"
	Comma    TokenType = ","
	Colon    TokenType = ":"
	Equal    TokenType = "="

	Plus    TokenType = "+"
	Minus   TokenType = "-"
	Star    TokenType = "*"
	Slash   TokenType = "/"
	Percent TokenType = "%"

	EqEq TokenType = "=="
	Ne   TokenType = "!="
	Lt   TokenType = "<"
	Le   TokenType = "<="
	Gt   TokenType = ">"
	Ge   TokenType = ">="
	Not  TokenType = "!"

	Newline   TokenType = "NEWLINE"
	Indent    TokenType = "INDENT"
	Dedent    TokenType = "DEDENT"
	Endmarker TokenType = "ENDMARKER"

	// Keywords
	KwDef      TokenType = "def"
	KwIf       TokenType = "if"
	KwElse     TokenType = "else"
	KwWhile    TokenType = "while"
	KwDo       TokenType = "do"
	KwFor      TokenType = "for"
	KwIn       TokenType = "in"
	KwAnd      TokenType = "and"
	KwOr       TokenType = "or"
	KwImport   TokenType = "import"
	KwInput    TokenType = "input"
	KwPrint    TokenType = "print"
	KwReturn   TokenType = "return"
	KwPass     TokenType = "pass"
	KwBreak    TokenType = "break"
	KwContinue TokenType = "continue"

	// Variable-declaration keywords, one per value kind.
	KwChar  TokenType = "char"
	KwInt   TokenType = "int"
	KwFloat TokenType = "float"
	KwStr   TokenType = "str"
	KwList  TokenType = "list"
)

var keywords = map[string]TokenType{
	"def": KwDef, "if": KwIf, "else": KwElse, "while": KwWhile,
	"do": KwDo, "for": KwFor, "in": KwIn, "and": KwAnd, "or": KwOr,
	"import": KwImport, "input": KwInput, "print": KwPrint,
	"return": KwReturn, "pass": KwPass, "break": KwBreak, "continue": KwContinue,
	"char": KwChar, "int": KwInt, "float": KwFloat, "str": KwStr, "list": KwList,
}

// Token is one lexical unit: its type, literal text, and source
// position.
type Token struct {
	Type   TokenType
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Text, t.Line, t.Column)
}
