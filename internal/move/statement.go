package move

// Statement is a tagged union: the renderer switches exhaustively on the
// concrete types below.
type Statement interface {
	isStatement()
}

type LetStatement struct {
	Name  string
	Type  string // empty when inferred by the Move compiler
	Value string
}

type BorrowStatement struct {
	Name    string
	Target  string
	Mutable bool
}

type ReturnStatement struct {
	Value string
}

type EmitStatement struct {
	EventType string
	Hash      string
}

type AssertStatement struct {
	Condition string
	ErrorCode int
}

type TransferStatement struct {
	Value     string
	Recipient string
}

type CommentStatement struct {
	Text string
}

// RawStatement holds an already-rendered line, including the brace markers
// that delimit inlined loop and conditional bodies.
type RawStatement struct {
	Text string
}

func (LetStatement) isStatement()      {}
func (BorrowStatement) isStatement()   {}
func (ReturnStatement) isStatement()   {}
func (EmitStatement) isStatement()     {}
func (AssertStatement) isStatement()   {}
func (TransferStatement) isStatement() {}
func (CommentStatement) isStatement()  {}
func (RawStatement) isStatement()      {}
