package ast

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

type TraversalAction int

const (
	ContinueTraversal TraversalAction = iota
	Prune
	StopTraversal
)

type NodeHandler = func(node Node, parent Node, ancestorChain []Node, after bool) (TraversalAction, error)

// This function performs a pre-order traversal on an AST (depth first).
// postHandle is called on a node after all its descendants have been visited.
func Walk(node Node, handle, postHandle NodeHandler) (err error) {
	defer func() {
		v := recover()

		switch val := v.(type) {
		case error:
			err = fmt.Errorf("%s:%w", debug.Stack(), val)
		case nil:
		case TraversalAction:
		default:
			panic(v)
		}
	}()

	ancestorChain := make([]Node, 0)
	walk(node, nil, &ancestorChain, handle, postHandle)
	return
}

func walk(node, parent Node, ancestorChain *[]Node, fn, afterFn NodeHandler) {

	if node == nil || reflect.ValueOf(node).IsNil() {
		return
	}

	if ancestorChain != nil {
		*ancestorChain = append((*ancestorChain), parent)
		defer func() {
			*ancestorChain = (*ancestorChain)[:len(*ancestorChain)-1]
		}()
	}

	if fn != nil {
		action, err := fn(node, parent, *ancestorChain, false)

		if err != nil {
			panic(err)
		}

		switch action {
		case StopTraversal:
			panic(StopTraversal)
		case Prune:
			return
		}
	}

	switch n := node.(type) {
	case *ModuleDecl:
		for _, child := range n.Children {
			walk(child, node, ancestorChain, fn, afterFn)
		}
	case *FlexibleDecl:
		for _, child := range n.Body {
			walk(child, node, ancestorChain, fn, afterFn)
		}
	case *EntryDecl:
		for _, field := range n.Fields {
			walk(field.Value, node, ancestorChain, fn, afterFn)
		}
	case *FunctionDecl:
		for _, stmt := range n.Body {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *GoalDecl:
		walk(n.Expr, node, ancestorChain, fn, afterFn)
	case *VarBinding:
		walk(n.Value, node, ancestorChain, fn, afterFn)
	case *IterationLoop:
		walk(n.Over, node, ancestorChain, fn, afterFn)
		for _, stmt := range n.Body {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *ConditionalLoop:
		walk(n.Cond, node, ancestorChain, fn, afterFn)
		for _, stmt := range n.Body {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *CountedLoop:
		walk(n.Count, node, ancestorChain, fn, afterFn)
		for _, stmt := range n.Body {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *ForeverLoop:
		for _, stmt := range n.Body {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *IfStatement:
		walk(n.Cond, node, ancestorChain, fn, afterFn)
		for _, stmt := range n.Body {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *Call:
		for _, arg := range n.Args {
			walk(arg, node, ancestorChain, fn, afterFn)
		}
	case *ObjectLit:
		for _, field := range n.Fields {
			walk(field.Value, node, ancestorChain, fn, afterFn)
		}
	case *BinaryExpr:
		walk(n.Left, node, ancestorChain, fn, afterFn)
		walk(n.Right, node, ancestorChain, fn, afterFn)
	case *PropertyAccess:
		walk(n.Object, node, ancestorChain, fn, afterFn)
	case *List:
		for _, child := range n.Children {
			walk(child, node, ancestorChain, fn, afterFn)
		}
	}

	if afterFn != nil {
		action, err := afterFn(node, parent, *ancestorChain, true)

		if err != nil {
			panic(err)
		}

		switch action {
		case StopTraversal:
			panic(StopTraversal)
		}
	}
}

// FindFirst returns the first node of type T encountered during a pre-order
// traversal, or the zero value and false.
func FindFirst[T Node](root Node) (result T, found bool) {
	Walk(root, func(node, _ Node, _ []Node, _ bool) (TraversalAction, error) {
		if n, ok := node.(T); ok {
			result = n
			found = true
			return StopTraversal, nil
		}
		return ContinueTraversal, nil
	}, nil)
	return
}
