package transpiler

import (
	"strings"

	"github.com/codie-lang/codie/internal/ast"
	"github.com/codie-lang/codie/internal/move"
)

// InferTypeFromName guesses a Move primitive type from identifier naming
// conventions. The default is an unsigned integer.
func InferTypeFromName(name string) string {
	lowered := strings.ToLower(name)

	switch {
	case strings.Contains(lowered, "addr"),
		strings.Contains(lowered, "sender"),
		strings.Contains(lowered, "recipient"):
		return move.TypeAddress
	case strings.Contains(lowered, "id"):
		return move.TypeUID
	case strings.Contains(lowered, "amount"),
		strings.Contains(lowered, "count"),
		strings.Contains(lowered, "value"):
		return move.TypeU64
	case strings.Contains(lowered, "flag"),
		strings.Contains(lowered, "is_"),
		strings.Contains(lowered, "has_"):
		return move.TypeBool
	default:
		return move.TypeU64
	}
}

// InferTypeFromLiteral maps a literal node to a Move primitive type, or
// returns false when the node is not a literal.
func InferTypeFromLiteral(node ast.Node) (string, bool) {
	switch node.(type) {
	case *ast.NumberLit:
		return move.TypeU64, true
	case *ast.BoolLit:
		return move.TypeBool, true
	case *ast.StringLit, *ast.NullLit:
		return move.TypeByteVector, true
	default:
		return "", false
	}
}

// MapDeclaredType maps a declared CODIE type to its Move counterpart.
// Unknown custom names are matched case-insensitively against a handful of
// conventional patterns and otherwise passed through unchanged.
func MapDeclaredType(declared string) string {
	trimmed := strings.TrimSpace(declared)
	lowered := strings.ToLower(trimmed)

	switch lowered {
	case "", "any", "unknown":
		return move.TypeByteVector
	case "text", "string":
		return move.TypeByteVector
	case "number", "int", "integer", "uint":
		return move.TypeU64
	case "bool", "boolean":
		return move.TypeBool
	case "uuid", "hash":
		return move.TypeByteVector
	}

	if inner, ok := parameterized(lowered, trimmed, "list"); ok {
		return "vector<" + MapDeclaredType(inner) + ">"
	}
	if _, ok := parameterized(lowered, trimmed, "map"); ok {
		// no native map target
		return move.TypeByteVector
	}

	switch {
	case strings.Contains(lowered, "address"):
		return move.TypeAddress
	case lowered == "id" || lowered == "uid" || strings.Contains(lowered, "object"):
		return move.TypeUID
	case strings.Contains(lowered, "coin"),
		strings.Contains(lowered, "token"),
		strings.Contains(lowered, "money"):
		return move.TypeCoin
	case strings.Contains(lowered, "bytes"),
		strings.Contains(lowered, "data"),
		strings.Contains(lowered, "raw"):
		return move.TypeByteVector
	}

	return trimmed
}

// parameterized extracts the argument of a `name(...)` type expression,
// returning the argument from the original (non-lowered) text.
func parameterized(lowered, original, name string) (string, bool) {
	prefix := name + "("
	if !strings.HasPrefix(lowered, prefix) || !strings.HasSuffix(lowered, ")") {
		return "", false
	}
	return original[len(prefix) : len(original)-1], true
}

// inferReturnType deduces a return type from a goal expression.
func inferReturnType(expr ast.Node) string {
	if typ, ok := InferTypeFromLiteral(expr); ok {
		return typ
	}

	switch n := expr.(type) {
	case *ast.Identifier:
		return InferTypeFromName(n.Name)
	case *ast.BinaryExpr:
		for _, op := range comparisonOperators {
			if n.Op == op {
				return move.TypeBool
			}
		}
		if n.Op == "&&" || n.Op == "||" {
			return move.TypeBool
		}
		return move.TypeU64
	case *ast.PropertyAccess:
		return InferTypeFromName(n.Name)
	default:
		return move.TypeU64
	}
}
