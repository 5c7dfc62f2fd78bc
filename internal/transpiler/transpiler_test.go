package transpiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codie-lang/codie/internal/ast"
	"github.com/codie-lang/codie/internal/move"
)

func transpileTree(t *testing.T, root ast.Node) *move.Module {
	t.Helper()

	mod, err := New(Options{}).TranspileTree(root)
	require.NoError(t, err)
	return mod
}

func TestTranspileTree(t *testing.T) {
	t.Run("tree without a module construct is the hard failure", func(t *testing.T) {
		_, err := New(Options{}).TranspileTree(&ast.ResourceDecl{Name: "AuthToken"})
		assert.ErrorIs(t, err, ErrNoModule)
	})

	t.Run("module found anywhere in the tree", func(t *testing.T) {
		root := &ast.List{Children: []ast.Node{
			&ast.Comment{Text: "preamble"},
			&ast.ModuleDecl{Name: "auth"},
		}}

		mod := transpileTree(t, root)
		assert.Equal(t, "auth", mod.Name)
	})

	t.Run("rendered header contains the lower-cased module name", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "AuthVault"})
		assert.Contains(t, mod.Source(), "module authvault::authvault {")
	})

	t.Run("transpiling the same tree twice is deterministic", func(t *testing.T) {
		root := &ast.ModuleDecl{Name: "auth", Children: []ast.Node{
			&ast.ResourceDecl{Name: "AuthToken"},
			&ast.ConstraintBlock{Rules: []string{"amount > 0", "owner signs"}},
			&ast.EntryDecl{Name: "mint", Fields: []ast.EntryField{
				{Name: "amount", Value: &ast.Identifier{Name: "number"}},
			}},
			&ast.Checkpoint{Hash: "ab12cd34ef"},
		}}

		first := transpileTree(t, root).Source()
		second := transpileTree(t, root).Source()
		assert.Equal(t, first, second)
	})

	t.Run("unnamed module falls back to the default name", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{})
		assert.Equal(t, DefaultModuleName, mod.Name)
	})
}

// Scenario A from the compatibility suite: a resource plus an internal
// function returning a boolean literal.
func TestResourceAndValidateFunction(t *testing.T) {
	root := &ast.ModuleDecl{Name: "auth", Children: []ast.Node{
		&ast.ResourceDecl{Name: "AuthToken"},
		&ast.FunctionDecl{
			Name: "validate",
			Body: []ast.Node{&ast.GoalDecl{Expr: &ast.BoolLit{Value: true}}},
		},
	}}

	mod := transpileTree(t, root)

	require.Len(t, mod.Structs, 1)
	s := mod.Structs[0]
	assert.Equal(t, "AuthToken", s.Name)
	assert.Equal(t, []move.Ability{move.Key, move.Store}, s.Abilities)
	assert.False(t, s.Has(move.Copy))
	assert.False(t, s.Has(move.Drop))

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "validate", fn.Name)
	assert.Equal(t, move.Internal, fn.Visibility)
	assert.Equal(t, "bool", fn.ReturnType)

	source := mod.Source()
	assert.Contains(t, source, "struct AuthToken has key, store {")
	assert.Contains(t, source, "fun validate(): bool {")
	assert.Contains(t, source, "return true")
}

// Scenario B: a constraint block immediately followed by an entry point.
func TestConstraintBlockAttachesToNextFunction(t *testing.T) {
	root := &ast.ModuleDecl{Name: "mintable", Children: []ast.Node{
		&ast.ConstraintBlock{Rules: []string{"amount > 0", "owner signs every mint"}},
		&ast.EntryDecl{Name: "mint", Fields: []ast.EntryField{
			{Name: "amount", Value: &ast.Identifier{Name: "number"}},
		}},
	}}

	mod := transpileTree(t, root)

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "mint", fn.Name)
	require.GreaterOrEqual(t, len(fn.Statements), 2)

	first, ok := fn.Statements[0].(move.AssertStatement)
	require.True(t, ok)
	second, ok := fn.Statements[1].(move.AssertStatement)
	require.True(t, ok)

	assert.Equal(t, "amount > 0", first.Condition)
	assert.Contains(t, second.Condition, "owner signs every mint")
	assert.Greater(t, second.ErrorCode, first.ErrorCode)

	// the implicit context parameter is prepended on the entry-point path
	require.NotEmpty(t, fn.Params)
	assert.Equal(t, "ctx", fn.Params[0].Name)
	assert.True(t, fn.Params[0].MutableRef)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "amount", fn.Params[1].Name)
	assert.Equal(t, "u64", fn.Params[1].Type)
}

// Scenario C: a flexible construct with one numeric field.
func TestFlexibleStruct(t *testing.T) {
	root := &ast.ModuleDecl{Name: "cache", Children: []ast.Node{
		&ast.FlexibleDecl{Name: "TempCache", Body: []ast.Node{
			&ast.VarBinding{Name: "ttl", Value: &ast.NumberLit{Raw: "60"}},
		}},
	}}

	mod := transpileTree(t, root)

	require.Len(t, mod.Structs, 1)
	s := mod.Structs[0]
	assert.Equal(t, "TempCache", s.Name)
	assert.True(t, s.Has(move.Drop))
	assert.False(t, s.Has(move.Copy))

	require.Len(t, s.Fields, 2)
	assert.Equal(t, move.Field{Name: "id", Type: "UID"}, s.Fields[0])
	assert.Equal(t, move.Field{Name: "ttl", Type: "u64"}, s.Fields[1])
}

func TestFlexibleStructDefaults(t *testing.T) {
	t.Run("empty body gets a default value field", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
			&ast.FlexibleDecl{Name: "Scratch"},
		}})

		require.Len(t, mod.Structs, 1)
		assert.Equal(t, []move.Field{
			{Name: "id", Type: "UID"},
			{Name: "value", Type: "u64"},
		}, mod.Structs[0].Fields)
	})

	t.Run("bare identifiers become u64 fields", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
			&ast.FlexibleDecl{Name: "Counters", Body: []ast.Node{
				&ast.Identifier{Name: "hits"},
				&ast.Identifier{Name: "misses"},
			}},
		}})

		require.Len(t, mod.Structs, 1)
		assert.Equal(t, []move.Field{
			{Name: "id", Type: "UID"},
			{Name: "hits", Type: "u64"},
			{Name: "misses", Type: "u64"},
		}, mod.Structs[0].Fields)
	})
}

func TestResourceStructDefaults(t *testing.T) {
	mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.ResourceDecl{Name: "NOT: store passwords plain"},
	}})

	require.Len(t, mod.Structs, 1)
	s := mod.Structs[0]
	assert.Equal(t, "store_passwords_plain", s.Name)
	assert.Equal(t, []move.Field{
		{Name: "id", Type: "UID"},
		{Name: "value", Type: "u64"},
	}, s.Fields)
}

func TestErrorCodesIncreaseAcrossFunctions(t *testing.T) {
	root := &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.ConstraintBlock{Rules: []string{"a > 0"}},
		&ast.EntryDecl{Name: "first"},
		&ast.ConstraintBlock{Rules: []string{"b > 0", "c > 0"}},
		&ast.EntryDecl{Name: "second"},
	}}

	mod := transpileTree(t, root)
	require.Len(t, mod.Functions, 2)

	var codes []int
	for _, fn := range mod.Functions {
		for _, stmt := range fn.Statements {
			if a, ok := stmt.(move.AssertStatement); ok {
				codes = append(codes, a.ErrorCode)
			}
		}
	}

	require.Len(t, codes, 3)
	for i := 1; i < len(codes); i++ {
		assert.Greater(t, codes[i], codes[i-1])
	}
}

func TestConstraintsWithNoFollowingFunctionAreDiscarded(t *testing.T) {
	root := &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.EntryDecl{Name: "act"},
		&ast.ConstraintBlock{Rules: []string{"dangling > 0"}},
	}}

	mod := transpileTree(t, root)
	require.Len(t, mod.Functions, 1)
	assert.Empty(t, mod.Functions[0].Statements)
	assert.NotContains(t, mod.Source(), "dangling")
}

func TestEntryFieldLowering(t *testing.T) {
	root := &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.EntryDecl{Name: "configure", Fields: []ast.EntryField{
			{Name: "recipient", Value: &ast.Identifier{Name: "address"}},
			{Name: "limit", Value: &ast.NumberLit{Raw: "10"}},
			{Name: "nested", Value: &ast.ObjectLit{}},
		}},
	}}

	mod := transpileTree(t, root)
	fn := mod.Functions[0]

	require.Len(t, fn.Params, 2)
	assert.Equal(t, move.Param{Name: "recipient", Type: "address"}, fn.Params[1])

	require.Len(t, fn.Statements, 2)
	assert.Equal(t, move.LetStatement{Name: "limit", Type: "u64", Value: "10"}, fn.Statements[0])
	assert.Equal(t, move.CommentStatement{Text: "unsupported field: nested"}, fn.Statements[1])
}

func TestInternalFunctionContextParameter(t *testing.T) {
	t.Run("public functions get the context appended", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
			&ast.FunctionDecl{
				Name:   "share",
				Public: true,
				Params: []ast.TypedParam{{Name: "amount", Type: "number"}},
			},
		}})

		fn := mod.Functions[0]
		assert.Equal(t, move.PublicPackage, fn.Visibility)
		require.Len(t, fn.Params, 2)
		assert.Equal(t, "amount", fn.Params[0].Name)
		assert.Equal(t, "ctx", fn.Params[1].Name)
	})

	t.Run("internal functions get no context parameter", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
			&ast.FunctionDecl{Name: "helper", Params: []ast.TypedParam{{Name: "x", Type: "number"}}},
		}})

		fn := mod.Functions[0]
		assert.Equal(t, move.Internal, fn.Visibility)
		require.Len(t, fn.Params, 1)
		assert.Equal(t, "x", fn.Params[0].Name)
	})
}

func TestGoalBecomesOutputFunction(t *testing.T) {
	mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.GoalDecl{Expr: &ast.BinaryExpr{
			Op:    "+",
			Left:  &ast.Identifier{Name: "a"},
			Right: &ast.Identifier{Name: "b"},
		}},
	}})

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "output", fn.Name)
	assert.Equal(t, move.PublicPackage, fn.Visibility)
	assert.Equal(t, "u64", fn.ReturnType)
	assert.Equal(t, []move.Statement{move.ReturnStatement{Value: "a + b"}}, fn.Statements)
}

func TestCheckpointStruct(t *testing.T) {
	mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.Checkpoint{Hash: "deadbeef1234"},
	}})

	require.Len(t, mod.Structs, 1)
	s := mod.Structs[0]
	assert.Equal(t, "Checkpoint_deadbeef", s.Name)
	assert.Equal(t, []move.Ability{move.Copy, move.Drop}, s.Abilities)
	assert.Equal(t, []move.Field{{Name: "hash", Type: "vector<u8>"}}, s.Fields)

	assert.Contains(t, mod.Source(), "use sui::event;")
}

func TestTodoStub(t *testing.T) {
	mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.Todo{Text: "wire up royalties"},
	}})

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "todo", fn.Name)
	assert.Equal(t, []move.Statement{move.CommentStatement{Text: "wire up royalties"}}, fn.Statements)
}

func TestNestedModulesAreFlattened(t *testing.T) {
	mod := transpileTree(t, &ast.ModuleDecl{Name: "outer", Children: []ast.Node{
		&ast.ResourceDecl{Name: "Outer"},
		&ast.ModuleDecl{Name: "inner", Children: []ast.Node{
			&ast.ResourceDecl{Name: "Inner"},
		}},
	}})

	assert.Equal(t, "outer", mod.Name)
	require.Len(t, mod.Structs, 2)
	assert.Equal(t, "Outer", mod.Structs[0].Name)
	assert.Equal(t, "Inner", mod.Structs[1].Name)
}

func TestStrayModuleScopeBindings(t *testing.T) {
	t.Run("appended to the most recently defined struct", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
			&ast.ResourceDecl{Name: "Vault"},
			&ast.VarBinding{Name: "owner", DeclaredType: "address"},
		}})

		s := mod.Structs[0]
		require.Len(t, s.Fields, 3)
		assert.Equal(t, move.Field{Name: "owner", Type: "address"}, s.Fields[2])
	})

	t.Run("dropped when no struct exists", func(t *testing.T) {
		mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
			&ast.VarBinding{Name: "orphan", Value: &ast.NumberLit{Raw: "1"}},
		}})

		assert.Empty(t, mod.Structs)
	})
}

func TestModuleScopeExternalRefs(t *testing.T) {
	root := &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.ExternalRef{Name: "@oracle.prices", Source: ast.SourceRemote},
		&ast.ExternalRef{Name: "@oracle.feeds", Source: ast.SourceRemote},
		&ast.ExternalRef{Name: "ledger", Source: ast.SourceStateful},
		&ast.ExternalRef{Name: "scratch", Source: ast.SourceLocal},
	}}

	mod := transpileTree(t, root)
	assert.Equal(t, []string{"oracle", "ledger"}, mod.Dependencies)

	source := mod.Source()
	assert.Contains(t, source, "use oracle::oracle;")
	assert.Contains(t, source, "use ledger::ledger;")
}

func TestModuleScopeLoopBecomesRunFunction(t *testing.T) {
	mod := transpileTree(t, &ast.ModuleDecl{Name: "m", Children: []ast.Node{
		&ast.ForeverLoop{Body: []ast.Node{&ast.Break{}}},
	}})

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "run", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "ctx", fn.Params[0].Name)

	assert.Equal(t, []move.Statement{
		move.RawStatement{Text: "loop {"},
		move.RawStatement{Text: "break;"},
		move.RawStatement{Text: "};"},
	}, fn.Statements)
}

type stubParser struct {
	node ast.Node
	err  error
}

func (p stubParser) Parse(string) (ast.Node, error) {
	return p.node, p.err
}

type stubRegistry map[string]string

func (r stubRegistry) Resolve(hash string) (string, bool) {
	source, ok := r[hash]
	return source, ok
}

func TestTranspileSource(t *testing.T) {
	t.Run("parser errors are wrapped", func(t *testing.T) {
		t1 := New(Options{Parser: stubParser{err: errors.New("boom")}})

		_, err := t1.TranspileSource("x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse CODIE source")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("missing parser", func(t *testing.T) {
		_, err := New(Options{}).TranspileSource("x")
		assert.ErrorIs(t, err, ErrNoParser)
	})

	t.Run("parsed tree is transpiled", func(t *testing.T) {
		t1 := New(Options{Parser: stubParser{node: &ast.ModuleDecl{Name: "demo"}}})

		mod, err := t1.TranspileSource("whatever")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(mod.Source(), "module demo::demo {"))
	})
}

func TestTranspileHash(t *testing.T) {
	t.Run("unresolved hash fails", func(t *testing.T) {
		t1 := New(Options{
			Parser:   stubParser{node: &ast.ModuleDecl{Name: "demo"}},
			Registry: stubRegistry{},
		})

		_, err := t1.TranspileHash("cafe")
		assert.ErrorIs(t, err, ErrUnresolvedHash)
	})

	t.Run("resolved hash transpiles the stored source", func(t *testing.T) {
		t1 := New(Options{
			Parser:   stubParser{node: &ast.ModuleDecl{Name: "demo"}},
			Registry: stubRegistry{"cafe": "stored"},
		})

		mod, err := t1.TranspileHash("cafe")
		require.NoError(t, err)
		assert.Equal(t, "demo", mod.Name)
	})

	t.Run("missing registry", func(t *testing.T) {
		_, err := New(Options{}).TranspileHash("cafe")
		assert.ErrorIs(t, err, ErrNoRegistry)
	})
}
