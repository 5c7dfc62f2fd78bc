package transpiler

import (
	"github.com/codie-lang/codie/internal/ast"
	"github.com/codie-lang/codie/internal/move"
)

// dispatchTopLevel handles one module-scope construct. Constructs with no
// handler are skipped silently: partial input still yields best-effort
// scaffolding.
func (b *builder) dispatchTopLevel(node ast.Node) {
	switch n := node.(type) {
	case *ast.ModuleDecl:
		// nested modules are flattened, there are no true sub-modules
		for _, child := range n.Children {
			b.dispatchTopLevel(child)
		}
	case *ast.ResourceDecl:
		b.buildResourceStruct(n)
	case *ast.FlexibleDecl:
		b.buildFlexibleStruct(n)
	case *ast.EntryDecl:
		b.buildEntryFunction(n)
	case *ast.FunctionDecl:
		b.buildFunction(n)
	case *ast.GoalDecl:
		b.buildOutputFunction(n)
	case *ast.ConstraintBlock:
		b.pendingConstraints = append(b.pendingConstraints, n.Rules...)
	case *ast.Checkpoint:
		b.buildCheckpointStruct(n)
	case *ast.Todo:
		b.buildTodoStub(n)
	case *ast.VarBinding:
		b.appendStrayField(n)
	case *ast.ExternalRef:
		if n.Source.IsExternalData() {
			b.module.AddDependency(rootName(n.Name))
		}
	case *ast.IterationLoop, *ast.ConditionalLoop, *ast.CountedLoop, *ast.ForeverLoop:
		b.buildRunFunction(n)
	default:
		b.logger.Debug().Type("node", node).Msg("skipped module-scope construct")
	}
}

func (b *builder) buildResourceStruct(n *ast.ResourceDecl) {
	s := move.NewResourceStruct(ExtractStructName(n.Name))
	s.AddField("id", move.TypeUID)
	s.AddField("value", move.TypeU64)
	b.module.AddStruct(s)

	b.logger.Debug().Str("struct", s.Name).Msg("built resource struct")
}

func (b *builder) buildFlexibleStruct(n *ast.FlexibleDecl) {
	name := "Flexible"
	if n.Name != "" {
		name = ExtractStructName(n.Name)
	}

	s := move.NewFlexibleStruct(name, false)
	s.AddField("id", move.TypeUID)

	for _, entry := range n.Body {
		switch child := entry.(type) {
		case *ast.VarBinding:
			s.AddField(ToSnakeCase(child.Name), b.fieldType(child))
		case *ast.Identifier:
			s.AddField(ToSnakeCase(child.Name), move.TypeU64)
		}
	}

	if len(s.Fields) == 1 {
		s.AddField("value", move.TypeU64)
	}
	b.module.AddStruct(s)

	b.logger.Debug().Str("struct", s.Name).Msg("built flexible struct")
}

// fieldType picks the Move type for a variable binding: the declared type
// when present, then the literal kind of the value, then the binding name.
func (b *builder) fieldType(binding *ast.VarBinding) string {
	if binding.DeclaredType != "" {
		return MapDeclaredType(binding.DeclaredType)
	}
	if typ, ok := InferTypeFromLiteral(binding.Value); ok {
		return typ
	}
	return InferTypeFromName(binding.Name)
}

func (b *builder) buildEntryFunction(n *ast.EntryDecl) {
	name := "entry_action"
	if n.Name != "" {
		name = ToSnakeCase(n.Name)
	}

	fn := &move.Function{
		Name:       name,
		Visibility: move.PublicEntry,
		// the implicit context parameter comes first on this path
		Params: []move.Param{contextParam()},
	}

	for _, field := range n.Fields {
		switch value := field.Value.(type) {
		case *ast.Identifier:
			fn.Params = append(fn.Params, move.Param{
				Name: ToSnakeCase(field.Name),
				Type: MapDeclaredType(value.Name),
			})
		case *ast.NumberLit, *ast.BoolLit, *ast.StringLit, *ast.NullLit:
			typ, _ := InferTypeFromLiteral(value)
			fn.Statements = append(fn.Statements, move.LetStatement{
				Name:  ToSnakeCase(field.Name),
				Type:  typ,
				Value: convertExpr(value),
			})
		default:
			fn.Statements = append(fn.Statements, move.CommentStatement{
				Text: "unsupported field: " + field.Name,
			})
		}
	}

	b.attachPendingConstraints(fn)
	b.module.AddFunction(fn)

	b.logger.Debug().Str("function", fn.Name).Msg("built entry function")
}

func (b *builder) buildFunction(n *ast.FunctionDecl) {
	name := "internal_action"
	if n.Name != "" {
		name = ToSnakeCase(n.Name)
	}

	visibility := move.Internal
	if n.Public {
		visibility = move.PublicPackage
	}

	fn := &move.Function{
		Name:       name,
		Visibility: visibility,
		ReturnType: b.functionReturnType(n),
	}

	for _, param := range n.Params {
		fn.Params = append(fn.Params, move.Param{
			Name: ToSnakeCase(param.Name),
			Type: MapDeclaredType(param.Type),
		})
	}

	// unlike the entry-point path, the context parameter is appended, and
	// only for public functions
	if n.Public {
		fn.Params = append(fn.Params, contextParam())
	}

	fn.Statements = append(fn.Statements, b.lowerBody(n.Body)...)

	b.attachPendingConstraints(fn)
	b.module.AddFunction(fn)

	b.logger.Debug().Str("function", fn.Name).Msg("built function")
}

func (b *builder) functionReturnType(n *ast.FunctionDecl) string {
	if n.ReturnType != "" {
		return MapDeclaredType(n.ReturnType)
	}
	if len(n.Body) > 0 {
		if goal, ok := n.Body[len(n.Body)-1].(*ast.GoalDecl); ok {
			return inferReturnType(goal.Expr)
		}
	}
	return ""
}

func (b *builder) buildOutputFunction(n *ast.GoalDecl) {
	fn := &move.Function{
		Name:       "output",
		Visibility: move.PublicPackage,
		ReturnType: inferReturnType(n.Expr),
		Statements: []move.Statement{
			move.ReturnStatement{Value: convertExpr(n.Expr)},
		},
	}

	b.attachPendingConstraints(fn)
	b.module.AddFunction(fn)
}

func (b *builder) buildCheckpointStruct(n *ast.Checkpoint) {
	s := move.NewEventStruct(checkpointTypeName(n.Hash))
	s.AddField("hash", move.TypeByteVector)
	b.module.AddStruct(s)
}

// buildTodoStub emits a placeholder for an incomplete construct. TODO stubs
// are not function constructs, so the pending-constraint queue is left
// untouched.
func (b *builder) buildTodoStub(n *ast.Todo) {
	text := n.Text
	if text == "" {
		text = "todo"
	}

	b.module.AddFunction(&move.Function{
		Name:       "todo",
		Visibility: move.Internal,
		Statements: []move.Statement{move.CommentStatement{Text: text}},
	})
}

// appendStrayField attaches a module-scope variable binding to the most
// recently defined struct. With no struct defined yet the binding is dropped
// without an error, an intentionally order-dependent behavior.
func (b *builder) appendStrayField(n *ast.VarBinding) {
	last := b.module.LastStruct()
	if last == nil {
		b.logger.Debug().Str("binding", n.Name).Msg("dropped stray module-scope binding")
		return
	}
	last.AddField(ToSnakeCase(n.Name), b.fieldType(n))
}

// buildRunFunction wraps a module-scope loop into a "run" entry function.
func (b *builder) buildRunFunction(loop ast.Node) {
	fn := &move.Function{
		Name:       "run",
		Visibility: move.PublicEntry,
		Params:     []move.Param{contextParam()},
		Statements: b.lowerStatement(loop),
	}

	b.attachPendingConstraints(fn)
	b.module.AddFunction(fn)
}
