// Package transpiler translates CODIE trees into Move modules. The
// translation is a single synchronous pass: a module-level dispatcher builds
// structs and functions, a body pass lowers statements, and pure helpers map
// expressions, names and types.
package transpiler

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codie-lang/codie/internal/ast"
	"github.com/codie-lang/codie/internal/move"
)

var (
	ErrNoModule       = errors.New("no module construct found in CODIE tree")
	ErrNoParser       = errors.New("no parser configured")
	ErrNoRehydrator   = errors.New("no glyph rehydrator configured")
	ErrNoRegistry     = errors.New("no hash registry configured")
	ErrUnresolvedHash = errors.New("hash not present in registry")
)

// DefaultModuleName is used when the module construct carries no name.
const DefaultModuleName = "codie"

// Parser is the external CODIE parser collaborator.
type Parser interface {
	Parse(source string) (ast.Node, error)
}

// Rehydrator recovers source text from a compressed glyph string.
type Rehydrator interface {
	Rehydrate(glyphs string) (string, error)
}

// Registry resolves a content hash to previously registered source text.
type Registry interface {
	Resolve(hash string) (source string, ok bool)
}

type Options struct {
	Parser     Parser
	Rehydrator Rehydrator
	Registry   Registry
	Logger     zerolog.Logger
}

// A Transpiler holds the external collaborators. It carries no per-call
// state: independent calls may run concurrently.
type Transpiler struct {
	parser     Parser
	rehydrator Rehydrator
	registry   Registry
	logger     zerolog.Logger
}

func New(opts Options) *Transpiler {
	return &Transpiler{
		parser:     opts.Parser,
		rehydrator: opts.Rehydrator,
		registry:   opts.Registry,
		logger:     opts.Logger,
	}
}

// TranspileTree translates an already-parsed CODIE tree. The first module
// construct found anywhere in the tree becomes the Move module; a tree
// without one is the single hard failure.
func (t *Transpiler) TranspileTree(root ast.Node) (*move.Module, error) {
	moduleDecl, found := ast.FindFirst[*ast.ModuleDecl](root)
	if !found {
		return nil, ErrNoModule
	}

	name := moduleDecl.Name
	if name == "" {
		name = DefaultModuleName
	}

	b := newBuilder(name, t.logger)
	for _, child := range moduleDecl.Children {
		b.dispatchTopLevel(child)
	}

	t.logger.Debug().
		Str("module", name).
		Int("structs", len(b.module.Structs)).
		Int("functions", len(b.module.Functions)).
		Msg("transpiled CODIE module")

	return b.module, nil
}

// TranspileSource parses CODIE source text with the external parser and
// translates the resulting tree.
func (t *Transpiler) TranspileSource(source string) (*move.Module, error) {
	if t.parser == nil {
		return nil, ErrNoParser
	}

	root, err := t.parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CODIE source: %w", err)
	}
	return t.TranspileTree(root)
}

// TranspileGlyphs rehydrates a compressed glyph string and translates the
// recovered source.
func (t *Transpiler) TranspileGlyphs(glyphs string) (*move.Module, error) {
	if t.rehydrator == nil {
		return nil, ErrNoRehydrator
	}

	source, err := t.rehydrator.Rehydrate(glyphs)
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate glyph string: %w", err)
	}
	return t.TranspileSource(source)
}

// TranspileHash resolves a content hash against the registry and translates
// the stored source.
func (t *Transpiler) TranspileHash(hash string) (*move.Module, error) {
	if t.registry == nil {
		return nil, ErrNoRegistry
	}

	source, ok := t.registry.Resolve(hash)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedHash, hash)
	}
	return t.TranspileSource(source)
}

// builder is the per-call accumulator: the module under construction, the
// pending-constraint queue and the error-code counter. Nothing here is
// shared between calls.
type builder struct {
	module             *move.Module
	pendingConstraints []string
	nextErrorCode      int
	logger             zerolog.Logger
}

func newBuilder(moduleName string, logger zerolog.Logger) *builder {
	return &builder{
		module:        move.NewModule(moduleName),
		nextErrorCode: 1,
		logger:        logger,
	}
}

// nextCode consumes the next unused abort code.
func (b *builder) nextCode() int {
	code := b.nextErrorCode
	b.nextErrorCode++
	return code
}

// drainConstraints converts the queued rules into Assert statements, in
// queue order, and empties the queue.
func (b *builder) drainConstraints() []move.Statement {
	if len(b.pendingConstraints) == 0 {
		return nil
	}

	asserts := make([]move.Statement, len(b.pendingConstraints))
	for i, rule := range b.pendingConstraints {
		asserts[i] = move.AssertStatement{
			Condition: ConstraintToCondition(rule),
			ErrorCode: b.nextCode(),
		}
	}
	b.pendingConstraints = nil
	return asserts
}

// attachPendingConstraints prepends the queued constraints to a freshly
// built function. Called for every function construct, right after building.
func (b *builder) attachPendingConstraints(fn *move.Function) {
	fn.PrependStatements(b.drainConstraints())
}

func contextParam() move.Param {
	return move.Param{Name: "ctx", Type: "TxContext", MutableRef: true}
}
