package transpiler

import (
	"fmt"
	"strings"

	"github.com/codie-lang/codie/internal/ast"
)

// convertExpr maps a CODIE expression node to Move expression text. It is a
// pure function shared by the module and body passes.
func convertExpr(node ast.Node) string {
	switch n := node.(type) {
	case nil:
		return "0"
	case *ast.NumberLit:
		return strings.TrimSpace(n.Raw)
	case *ast.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.StringLit:
		return fmt.Sprintf("b\"%s\"", n.Value)
	case *ast.NullLit:
		return "b\"\""
	case *ast.Identifier:
		return ToSnakeCase(n.Name)
	case *ast.ExternalRef:
		return ToSnakeCase(strings.TrimPrefix(strings.TrimSpace(n.Name), "@"))
	case *ast.BinaryExpr:
		return fmt.Sprintf("%s %s %s", convertExpr(n.Left), n.Op, convertExpr(n.Right))
	case *ast.PropertyAccess:
		return fmt.Sprintf("%s.%s", convertExpr(n.Object), ToSnakeCase(n.Name))
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, arg := range n.Args {
			args[i] = convertExpr(arg)
		}
		return fmt.Sprintf("%s(%s)", ToSnakeCase(n.Callee), strings.Join(args, ", "))
	case *ast.ObjectLit:
		return convertObjectLit(n)
	default:
		return "0"
	}
}

func convertObjectLit(lit *ast.ObjectLit) string {
	if len(lit.Fields) == 0 {
		return "{ }"
	}

	parts := make([]string, len(lit.Fields))
	for i, field := range lit.Fields {
		parts[i] = fmt.Sprintf("%s: %s", ToSnakeCase(field.Name), convertExpr(field.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
