package ast

// A Node is an immutable CODIE AST node. The node-kind set is closed: every
// consumer switches exhaustively on the concrete types below, there is no
// extension point.
type Node interface {
	Base() NodeBase
	BasePtr() *NodeBase
}

type NodeSpan struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"` //exclusive
}

// NodeBase implements the Node interface, all node types embed it.
type NodeBase struct {
	Span NodeSpan `json:"span"`
}

func (base NodeBase) Base() NodeBase {
	return base
}

func (base *NodeBase) BasePtr() *NodeBase {
	return base
}

// SourceKind classifies where an external reference points.
type SourceKind string

const (
	SourceLocal      SourceKind = "local"
	SourceRemote     SourceKind = "remote"
	SourceStateful   SourceKind = "stateful"
	SourcePrivileged SourceKind = "privileged"
)

// IsExternalData reports whether the source kind denotes remote or stateful
// data, the two kinds that register module dependencies.
func (k SourceKind) IsExternalData() bool {
	return k == SourceRemote || k == SourceStateful
}

// ModuleDecl is the module-defining construct. Nested ModuleDecls are
// flattened into their parent during transpilation.
type ModuleDecl struct {
	NodeBase
	Name     string
	Children []Node
}

// ResourceDecl declares a linear struct. Name may be a proper identifier or a
// free-form rule sentence.
type ResourceDecl struct {
	NodeBase
	Name string
}

// FlexibleDecl declares a droppable struct whose fields come from its body.
type FlexibleDecl struct {
	NodeBase
	Name string
	Body []Node
}

// EntryField is one entry of an entry-point construct's ordered field map.
type EntryField struct {
	Name  string
	Value Node
}

// EntryDecl declares a top-level transaction action.
type EntryDecl struct {
	NodeBase
	Name   string
	Fields []EntryField
}

type TypedParam struct {
	Name string
	Type string
}

// FunctionDecl declares a module function with explicit parameters.
type FunctionDecl struct {
	NodeBase
	Name       string
	Params     []TypedParam
	Body       []Node
	ReturnType string
	Public     bool
}

// GoalDecl is the goal/output construct: a single composable expression.
type GoalDecl struct {
	NodeBase
	Expr Node
}

// ConstraintBlock is an ordered list of declarative rules.
type ConstraintBlock struct {
	NodeBase
	Rules []string
}

// ConstraintRule is a standalone rule inside a function body.
type ConstraintRule struct {
	NodeBase
	Rule string
}

// Checkpoint marks an on-chain event emission point.
type Checkpoint struct {
	NodeBase
	Hash string
}

// Todo is an incomplete construct left by the author.
type Todo struct {
	NodeBase
	Text string
}

// VarBinding binds a name to a value, optionally with a declared CODIE type.
type VarBinding struct {
	NodeBase
	Name         string
	DeclaredType string
	Value        Node
}

// ExternalRef references data outside the module. Names may carry a leading
// `@` sigil on the root segment.
type ExternalRef struct {
	NodeBase
	Name   string
	Source SourceKind
}

// IterationLoop iterates over each element of a collection.
type IterationLoop struct {
	NodeBase
	Over Node
	Var  string
	Body []Node
}

// ConditionalLoop repeats while its condition holds.
type ConditionalLoop struct {
	NodeBase
	Cond Node
	Body []Node
}

// CountedLoop repeats a fixed number of times.
type CountedLoop struct {
	NodeBase
	Count Node
	Body  []Node
}

// ForeverLoop repeats unconditionally.
type ForeverLoop struct {
	NodeBase
	Body []Node
}

// IfStatement is a single-branch conditional (CODIE has no else).
type IfStatement struct {
	NodeBase
	Cond Node
	Body []Node
}

type Call struct {
	NodeBase
	Callee string
	Args   []Node
}

type Break struct {
	NodeBase
}

type NumberLit struct {
	NodeBase
	Raw string
}

type BoolLit struct {
	NodeBase
	Value bool
}

type StringLit struct {
	NodeBase
	Value string
}

type NullLit struct {
	NodeBase
}

type Identifier struct {
	NodeBase
	Name string
}

// ObjectLit is a brace-delimited field list.
type ObjectLit struct {
	NodeBase
	Fields []EntryField
}

type BinaryExpr struct {
	NodeBase
	Op    string
	Left  Node
	Right Node
}

type PropertyAccess struct {
	NodeBase
	Object Node
	Name   string
}

type Comment struct {
	NodeBase
	Text string
}

type Empty struct {
	NodeBase
}

// List groups sibling nodes with no semantics of its own.
type List struct {
	NodeBase
	Children []Node
}
