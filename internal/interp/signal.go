package interp

// Signal replaces a setjmp/longjmp-based control-flow escape: every
// statement form returns one, and block() propagates a non-normal
// signal straight up to the construct that knows how to handle it
// (functionCall for Return, whileStmt/doStmt/forStmt for Break/Continue).
type Signal int

const (
	SigNormal Signal = iota
	SigReturn
	SigBreak
	SigContinue
)
