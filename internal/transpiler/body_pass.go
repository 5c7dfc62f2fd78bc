package transpiler

import (
	"fmt"
	"strings"

	"github.com/codie-lang/codie/internal/ast"
	"github.com/codie-lang/codie/internal/move"
)

// lowerBody lowers an ordered list of body nodes into Move statements.
// Loops and conditionals recurse into the same table.
func (b *builder) lowerBody(nodes []ast.Node) []move.Statement {
	var stmts []move.Statement
	for _, node := range nodes {
		stmts = append(stmts, b.lowerStatement(node)...)
	}
	return stmts
}

func (b *builder) lowerStatement(node ast.Node) []move.Statement {
	switch n := node.(type) {
	case *ast.VarBinding:
		return []move.Statement{move.LetStatement{
			Name:  ToSnakeCase(n.Name),
			Type:  b.fieldType(n),
			Value: convertExpr(n.Value),
		}}
	case *ast.ExternalRef:
		return b.lowerExternalRef(n)
	case *ast.ConstraintRule:
		return []move.Statement{b.assertFor(n.Rule)}
	case *ast.ConstraintBlock:
		stmts := make([]move.Statement, len(n.Rules))
		for i, rule := range n.Rules {
			stmts[i] = b.assertFor(rule)
		}
		return stmts
	case *ast.Checkpoint:
		return []move.Statement{move.EmitStatement{
			EventType: checkpointTypeName(n.Hash),
			Hash:      n.Hash,
		}}
	case *ast.GoalDecl:
		return []move.Statement{move.ReturnStatement{Value: convertExpr(n.Expr)}}
	case *ast.IterationLoop:
		stmts := []move.Statement{
			move.RawStatement{Text: "let i = 0;"},
			move.RawStatement{Text: fmt.Sprintf("while (i < vector::length(&%s)) {", convertExpr(n.Over))},
		}
		stmts = append(stmts, b.lowerBody(n.Body)...)
		return append(stmts,
			move.RawStatement{Text: "i = i + 1;"},
			move.RawStatement{Text: "};"},
		)
	case *ast.ConditionalLoop:
		stmts := []move.Statement{
			move.RawStatement{Text: fmt.Sprintf("while (%s) {", convertExpr(n.Cond))},
		}
		stmts = append(stmts, b.lowerBody(n.Body)...)
		return append(stmts, move.RawStatement{Text: "};"})
	case *ast.CountedLoop:
		stmts := []move.Statement{
			move.RawStatement{Text: "let n = 0;"},
			move.RawStatement{Text: fmt.Sprintf("while (n < %s) {", convertExpr(n.Count))},
		}
		stmts = append(stmts, b.lowerBody(n.Body)...)
		return append(stmts,
			move.RawStatement{Text: "n = n + 1;"},
			move.RawStatement{Text: "};"},
		)
	case *ast.ForeverLoop:
		stmts := []move.Statement{move.RawStatement{Text: "loop {"}}
		stmts = append(stmts, b.lowerBody(n.Body)...)
		return append(stmts, move.RawStatement{Text: "};"})
	case *ast.IfStatement:
		stmts := []move.Statement{
			move.RawStatement{Text: fmt.Sprintf("if (%s) {", convertExpr(n.Cond))},
		}
		stmts = append(stmts, b.lowerBody(n.Body)...)
		return append(stmts, move.RawStatement{Text: "};"})
	case *ast.Call:
		return []move.Statement{b.lowerCall(n)}
	case *ast.Todo:
		text := n.Text
		if text == "" {
			text = "todo"
		}
		return []move.Statement{move.CommentStatement{Text: text}}
	case *ast.FlexibleDecl:
		return b.lowerStructLiteral(n)
	case *ast.EntryDecl:
		return []move.Statement{b.lowerDelegatedCall(n)}
	case *ast.ModuleDecl:
		// nested modules inline into the surrounding body
		return b.lowerBody(n.Children)
	case *ast.Break:
		return []move.Statement{move.RawStatement{Text: "break;"}}
	case *ast.NumberLit, *ast.BoolLit, *ast.StringLit, *ast.NullLit,
		*ast.Identifier, *ast.BinaryExpr, *ast.PropertyAccess:
		return []move.Statement{move.RawStatement{Text: convertExpr(node) + ";"}}
	case *ast.ObjectLit:
		return []move.Statement{move.RawStatement{Text: convertObjectLit(n) + ";"}}
	case *ast.FunctionDecl:
		// no real nested functions: mark the spot and inline the body
		stmts := []move.Statement{move.CommentStatement{Text: "inlined function: " + n.Name}}
		return append(stmts, b.lowerBody(n.Body)...)
	case *ast.Comment, *ast.Empty, *ast.List, nil:
		return nil
	default:
		return []move.Statement{move.CommentStatement{
			Text: fmt.Sprintf("unsupported construct: %T", node),
		}}
	}
}

func (b *builder) assertFor(rule string) move.Statement {
	return move.AssertStatement{
		Condition: ConstraintToCondition(rule),
		ErrorCode: b.nextCode(),
	}
}

// lowerExternalRef lowers a body-level external-reference read. Stateful
// sources borrow mutably, remote sources immutably; privileged access and
// anything else degrade to comments.
func (b *builder) lowerExternalRef(n *ast.ExternalRef) []move.Statement {
	name := strings.TrimPrefix(strings.TrimSpace(n.Name), "@")

	if hasSigil(n.Name) && n.Source.IsExternalData() {
		b.module.AddDependency(rootName(n.Name))
	}

	switch n.Source {
	case ast.SourceStateful:
		return []move.Statement{move.BorrowStatement{
			Name:    ToSnakeCase(lastSegment(name)),
			Target:  ToSnakeCase(name),
			Mutable: true,
		}}
	case ast.SourceRemote:
		return []move.Statement{move.BorrowStatement{
			Name:   ToSnakeCase(lastSegment(name)),
			Target: ToSnakeCase(name),
		}}
	case ast.SourcePrivileged:
		return []move.Statement{move.CommentStatement{
			Text: "requires privileged access: " + name,
		}}
	default:
		return []move.Statement{move.CommentStatement{
			Text: "external reference: " + name,
		}}
	}
}

func lastSegment(name string) string {
	if i := strings.LastIndexAny(name, "./"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// lowerCall lowers a call statement. A two-argument `transfer` call becomes
// a real transfer statement, everything else a raw call.
func (b *builder) lowerCall(n *ast.Call) move.Statement {
	if ToSnakeCase(n.Callee) == "transfer" && len(n.Args) == 2 {
		return move.TransferStatement{
			Value:     convertExpr(n.Args[0]),
			Recipient: convertExpr(n.Args[1]),
		}
	}
	return move.RawStatement{Text: convertExpr(n) + ";"}
}

// lowerStructLiteral lowers a flexible construct used inside a body into a
// struct-literal binding, one field-assignment line per child binding.
func (b *builder) lowerStructLiteral(n *ast.FlexibleDecl) []move.Statement {
	name := n.Name
	if name == "" {
		name = "Flexible"
	}

	stmts := []move.Statement{move.RawStatement{
		Text: fmt.Sprintf("let %s = %s {", ToSnakeCase(name), ToPascalCase(name)),
	}}
	for _, entry := range n.Body {
		if binding, ok := entry.(*ast.VarBinding); ok {
			stmts = append(stmts, move.RawStatement{
				Text: fmt.Sprintf("%s: %s,", ToSnakeCase(binding.Name), convertExpr(binding.Value)),
			})
		}
	}
	return append(stmts, move.RawStatement{Text: "};"})
}

// lowerDelegatedCall lowers an entry-point construct nested inside a body
// into a call delegating to it, with the field values as arguments.
func (b *builder) lowerDelegatedCall(n *ast.EntryDecl) move.Statement {
	name := "entry_action"
	if n.Name != "" {
		name = ToSnakeCase(n.Name)
	}

	args := make([]string, len(n.Fields))
	for i, field := range n.Fields {
		args[i] = convertExpr(field.Value)
	}
	return move.RawStatement{Text: fmt.Sprintf("%s(%s);", name, strings.Join(args, ", "))}
}
