// Package astjson decodes the JSON interchange format emitted by the
// external CODIE parser into AST nodes. Every node is a JSON object with a
// "kind" discriminator; unknown kinds degrade to comment nodes so partial
// trees still transpile.
package astjson

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/codie-lang/codie/internal/ast"
)

type rawField struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type rawParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type rawNode struct {
	Kind string `json:"kind"`

	Name   string `json:"name"`
	Type   string `json:"type"`
	Return string `json:"return"`
	Public bool   `json:"public"`
	Text   string `json:"text"`
	Raw    string `json:"raw"`
	Bool   bool   `json:"bool"`
	Hash   string `json:"hash"`
	Rule   string `json:"rule"`
	Source string `json:"source"`
	Op     string `json:"op"`
	Callee string `json:"callee"`
	Var    string `json:"var"`

	Rules []string `json:"rules"`

	Value  json.RawMessage `json:"value"`
	Left   json.RawMessage `json:"left"`
	Right  json.RawMessage `json:"right"`
	Object json.RawMessage `json:"object"`
	Over   json.RawMessage `json:"over"`
	Cond   json.RawMessage `json:"cond"`
	Count  json.RawMessage `json:"count"`
	Expr   json.RawMessage `json:"expr"`

	Args     []json.RawMessage `json:"args"`
	Children []json.RawMessage `json:"children"`
	Body     []json.RawMessage `json:"body"`
	Fields   []rawField        `json:"fields"`
	Params   []rawParam        `json:"params"`
}

// Decode parses one interchange document into an AST node.
func Decode(data []byte) (ast.Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid CODIE interchange document: %w", err)
	}
	return buildNode(raw)
}

func decodeChild(data json.RawMessage) (ast.Node, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return Decode(data)
}

func decodeChildren(children []json.RawMessage) ([]ast.Node, error) {
	var nodes []ast.Node
	for _, child := range children {
		node, err := decodeChild(child)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func buildNode(raw rawNode) (ast.Node, error) {
	switch raw.Kind {
	case "module":
		children, err := decodeChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		return &ast.ModuleDecl{Name: raw.Name, Children: children}, nil
	case "resource":
		return &ast.ResourceDecl{Name: raw.Name}, nil
	case "flexible":
		body, err := decodeChildren(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FlexibleDecl{Name: raw.Name, Body: body}, nil
	case "entry":
		fields, err := decodeFields(raw.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.EntryDecl{Name: raw.Name, Fields: fields}, nil
	case "function":
		body, err := decodeChildren(raw.Body)
		if err != nil {
			return nil, err
		}
		params := make([]ast.TypedParam, len(raw.Params))
		for i, p := range raw.Params {
			params[i] = ast.TypedParam{Name: p.Name, Type: p.Type}
		}
		return &ast.FunctionDecl{
			Name:       raw.Name,
			Params:     params,
			Body:       body,
			ReturnType: raw.Return,
			Public:     raw.Public,
		}, nil
	case "goal":
		expr, err := decodeChild(raw.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.GoalDecl{Expr: expr}, nil
	case "constraints":
		return &ast.ConstraintBlock{Rules: raw.Rules}, nil
	case "rule":
		return &ast.ConstraintRule{Rule: raw.Rule}, nil
	case "checkpoint":
		return &ast.Checkpoint{Hash: raw.Hash}, nil
	case "todo":
		return &ast.Todo{Text: raw.Text}, nil
	case "binding":
		value, err := decodeChild(raw.Value)
		if err != nil {
			return nil, err
		}
		return &ast.VarBinding{Name: raw.Name, DeclaredType: raw.Type, Value: value}, nil
	case "external":
		return &ast.ExternalRef{Name: raw.Name, Source: ast.SourceKind(raw.Source)}, nil
	case "foreach":
		return buildIterationLoop(raw)
	case "while":
		cond, err := decodeChild(raw.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeChildren(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalLoop{Cond: cond, Body: body}, nil
	case "repeat":
		count, err := decodeChild(raw.Count)
		if err != nil {
			return nil, err
		}
		body, err := decodeChildren(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.CountedLoop{Count: count, Body: body}, nil
	case "loop":
		body, err := decodeChildren(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForeverLoop{Body: body}, nil
	case "if":
		cond, err := decodeChild(raw.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeChildren(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.IfStatement{Cond: cond, Body: body}, nil
	case "call":
		args, err := decodeChildren(raw.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Callee: raw.Callee, Args: args}, nil
	case "break":
		return &ast.Break{}, nil
	case "number":
		return &ast.NumberLit{Raw: raw.Raw}, nil
	case "bool":
		return &ast.BoolLit{Value: raw.Bool}, nil
	case "string":
		return &ast.StringLit{Value: raw.Text}, nil
	case "null":
		return &ast.NullLit{}, nil
	case "ident":
		return &ast.Identifier{Name: raw.Name}, nil
	case "object":
		fields, err := decodeFields(raw.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectLit{Fields: fields}, nil
	case "binary":
		left, err := decodeChild(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeChild(raw.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: raw.Op, Left: left, Right: right}, nil
	case "property":
		object, err := decodeChild(raw.Object)
		if err != nil {
			return nil, err
		}
		return &ast.PropertyAccess{Object: object, Name: raw.Name}, nil
	case "comment":
		return &ast.Comment{Text: raw.Text}, nil
	case "empty":
		return &ast.Empty{}, nil
	case "list":
		children, err := decodeChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		return &ast.List{Children: children}, nil
	default:
		return &ast.Comment{Text: "unknown construct kind: " + raw.Kind}, nil
	}
}

func buildIterationLoop(raw rawNode) (ast.Node, error) {
	over, err := decodeChild(raw.Over)
	if err != nil {
		return nil, err
	}
	body, err := decodeChildren(raw.Body)
	if err != nil {
		return nil, err
	}
	return &ast.IterationLoop{Over: over, Var: raw.Var, Body: body}, nil
}

func decodeFields(fields []rawField) ([]ast.EntryField, error) {
	result := make([]ast.EntryField, 0, len(fields))
	for _, field := range fields {
		value, err := decodeChild(field.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, ast.EntryField{Name: field.Name, Value: value})
	}
	return result, nil
}

// Parser satisfies the transpiler's Parser interface for sources in the JSON
// interchange format.
type Parser struct{}

func (Parser) Parse(source string) (ast.Node, error) {
	return Decode([]byte(source))
}
