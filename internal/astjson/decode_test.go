package astjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codie-lang/codie/internal/ast"
)

func decode(t *testing.T, data string) ast.Node {
	t.Helper()

	node, err := Decode([]byte(data))
	require.NoError(t, err)
	return node
}

func TestDecodeModule(t *testing.T) {
	node := decode(t, `{
		"kind": "module",
		"name": "auth",
		"children": [
			{"kind": "resource", "name": "AuthToken"},
			{"kind": "constraints", "rules": ["amount > 0"]},
			{"kind": "entry", "name": "mint", "fields": [
				{"name": "amount", "value": {"kind": "ident", "name": "number"}}
			]}
		]
	}`)

	mod, ok := node.(*ast.ModuleDecl)
	require.True(t, ok)
	assert.Equal(t, "auth", mod.Name)
	require.Len(t, mod.Children, 3)

	resource, ok := mod.Children[0].(*ast.ResourceDecl)
	require.True(t, ok)
	assert.Equal(t, "AuthToken", resource.Name)

	block, ok := mod.Children[1].(*ast.ConstraintBlock)
	require.True(t, ok)
	assert.Equal(t, []string{"amount > 0"}, block.Rules)

	entry, ok := mod.Children[2].(*ast.EntryDecl)
	require.True(t, ok)
	assert.Equal(t, "mint", entry.Name)
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, "amount", entry.Fields[0].Name)

	ident, ok := entry.Fields[0].Value.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "number", ident.Name)
}

func TestDecodeFunction(t *testing.T) {
	node := decode(t, `{
		"kind": "function",
		"name": "validate",
		"public": true,
		"return": "bool",
		"params": [{"name": "attempts", "type": "number"}],
		"body": [
			{"kind": "if", "cond": {"kind": "binary", "op": ">", "left": {"kind": "ident", "name": "attempts"}, "right": {"kind": "number", "raw": "3"}}, "body": [
				{"kind": "break"}
			]},
			{"kind": "goal", "expr": {"kind": "bool", "bool": true}}
		]
	}`)

	fn, ok := node.(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "validate", fn.Name)
	assert.True(t, fn.Public)
	assert.Equal(t, "bool", fn.ReturnType)
	assert.Equal(t, []ast.TypedParam{{Name: "attempts", Type: "number"}}, fn.Params)
	require.Len(t, fn.Body, 2)

	ifStmt, ok := fn.Body[0].(*ast.IfStatement)
	require.True(t, ok)
	cond, ok := ifStmt.Cond.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ">", cond.Op)
	require.Len(t, ifStmt.Body, 1)
	assert.IsType(t, &ast.Break{}, ifStmt.Body[0])

	goal, ok := fn.Body[1].(*ast.GoalDecl)
	require.True(t, ok)
	lit, ok := goal.Expr.(*ast.BoolLit)
	require.True(t, ok)
	assert.True(t, lit.Value)
}

func TestDecodeLoopsAndStatements(t *testing.T) {
	node := decode(t, `{
		"kind": "list",
		"children": [
			{"kind": "foreach", "var": "item", "over": {"kind": "ident", "name": "items"}, "body": [{"kind": "break"}]},
			{"kind": "while", "cond": {"kind": "bool", "bool": true}, "body": []},
			{"kind": "repeat", "count": {"kind": "number", "raw": "3"}, "body": []},
			{"kind": "loop", "body": []},
			{"kind": "binding", "name": "ttl", "type": "number", "value": {"kind": "number", "raw": "60"}},
			{"kind": "external", "name": "@oracle.prices", "source": "remote"},
			{"kind": "checkpoint", "hash": "abcd"},
			{"kind": "todo", "text": "later"},
			{"kind": "call", "callee": "transfer", "args": [{"kind": "ident", "name": "token"}, {"kind": "ident", "name": "to"}]},
			{"kind": "object", "fields": [{"name": "a", "value": {"kind": "number", "raw": "1"}}]},
			{"kind": "property", "name": "owner", "object": {"kind": "ident", "name": "vault"}},
			{"kind": "string", "text": "hello"},
			{"kind": "null"},
			{"kind": "rule", "rule": "x > 0"},
			{"kind": "goal", "expr": {"kind": "ident", "name": "x"}},
			{"kind": "empty"},
			{"kind": "comment", "text": "note"}
		]
	}`)

	list, ok := node.(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Children, 17)

	loop, ok := list.Children[0].(*ast.IterationLoop)
	require.True(t, ok)
	assert.Equal(t, "item", loop.Var)
	require.Len(t, loop.Body, 1)

	binding, ok := list.Children[4].(*ast.VarBinding)
	require.True(t, ok)
	assert.Equal(t, "ttl", binding.Name)
	assert.Equal(t, "number", binding.DeclaredType)

	external, ok := list.Children[5].(*ast.ExternalRef)
	require.True(t, ok)
	assert.Equal(t, ast.SourceRemote, external.Source)

	call, ok := list.Children[8].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "transfer", call.Callee)
	require.Len(t, call.Args, 2)

	property, ok := list.Children[10].(*ast.PropertyAccess)
	require.True(t, ok)
	assert.Equal(t, "owner", property.Name)
}

func TestDecodeDegradation(t *testing.T) {
	t.Run("unknown kinds become comments", func(t *testing.T) {
		node := decode(t, `{"kind": "hologram"}`)

		comment, ok := node.(*ast.Comment)
		require.True(t, ok)
		assert.Contains(t, comment.Text, "hologram")
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		_, err := Decode([]byte("{nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CODIE interchange document")
	})

	t.Run("null children are skipped", func(t *testing.T) {
		node := decode(t, `{"kind": "module", "name": "m", "children": [null]}`)

		mod, ok := node.(*ast.ModuleDecl)
		require.True(t, ok)
		assert.Empty(t, mod.Children)
	})
}

func TestParserAdapter(t *testing.T) {
	node, err := Parser{}.Parse(`{"kind": "module", "name": "demo"}`)
	require.NoError(t, err)

	mod, ok := node.(*ast.ModuleDecl)
	require.True(t, ok)
	assert.Equal(t, "demo", mod.Name)
}
