package move

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Render emits the final module source. The output is a pure function of the
// module contents: same module, same bytes.
func Render(m *Module) string {
	var b strings.Builder

	name := strings.ToLower(m.Name)
	fmt.Fprintf(&b, "module %s::%s {\n", name, name)

	b.WriteString(indentUnit + "use sui::object::{Self, UID};\n")
	b.WriteString(indentUnit + "use sui::transfer;\n")
	b.WriteString(indentUnit + "use sui::tx_context::TxContext;\n")

	if definesEventLikeTypes(m) {
		b.WriteString(indentUnit + "use sui::event;\n")
	}

	for _, dep := range m.Dependencies {
		fmt.Fprintf(&b, "%suse %s::%s;\n", indentUnit, dep, dep)
	}
	b.WriteString("\n")

	for _, s := range m.Structs {
		renderStruct(&b, s)
		b.WriteString("\n")
	}

	for _, f := range m.Functions {
		renderFunction(&b, f)
		b.WriteString("\n")
	}

	b.WriteString("}\n")
	return b.String()
}

func definesEventLikeTypes(m *Module) bool {
	for _, s := range m.Structs {
		if s.IsEventLike() {
			return true
		}
	}
	return false
}

func renderStruct(b *strings.Builder, s *Struct) {
	abilities := make([]string, len(s.Abilities))
	for i, a := range s.Abilities {
		abilities[i] = string(a)
	}

	fmt.Fprintf(b, "%sstruct %s has %s {\n", indentUnit, s.Name, strings.Join(abilities, ", "))
	for _, f := range s.Fields {
		fmt.Fprintf(b, "%s%s: %s,\n", indentUnit+indentUnit, f.Name, f.Type)
	}
	b.WriteString(indentUnit + "}\n")
}

func renderFunction(b *strings.Builder, f *Function) {
	var visibility string
	switch f.Visibility {
	case PublicEntry:
		visibility = "public entry fun"
	case PublicPackage:
		visibility = "public fun"
	default:
		visibility = "fun"
	}

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		typ := p.Type
		if p.MutableRef {
			typ = "&mut " + typ
		} else if p.Ref {
			typ = "&" + typ
		}
		params[i] = fmt.Sprintf("%s: %s", p.Name, typ)
	}

	fmt.Fprintf(b, "%s%s %s(%s)", indentUnit, visibility, f.Name, strings.Join(params, ", "))
	if f.ReturnType != "" {
		fmt.Fprintf(b, ": %s", f.ReturnType)
	}
	b.WriteString(" {\n")

	depth := 2
	for _, stmt := range f.Statements {
		line := renderStatement(stmt)

		if isClosingLine(line) && depth > 2 {
			depth--
		}
		b.WriteString(strings.Repeat(indentUnit, depth) + line + "\n")
		if strings.HasSuffix(line, "{") {
			depth++
		}
	}

	b.WriteString(indentUnit + "}\n")
}

func isClosingLine(line string) bool {
	return line == "}" || line == "};"
}

func renderStatement(stmt Statement) string {
	switch s := stmt.(type) {
	case LetStatement:
		if s.Type == "" {
			return fmt.Sprintf("let %s = %s;", s.Name, s.Value)
		}
		return fmt.Sprintf("let %s: %s = %s;", s.Name, s.Type, s.Value)
	case BorrowStatement:
		if s.Mutable {
			return fmt.Sprintf("let %s = &mut %s;", s.Name, s.Target)
		}
		return fmt.Sprintf("let %s = &%s;", s.Name, s.Target)
	case ReturnStatement:
		return fmt.Sprintf("return %s", s.Value)
	case EmitStatement:
		return fmt.Sprintf("event::emit(%s { hash: b\"%s\" });", s.EventType, s.Hash)
	case AssertStatement:
		return fmt.Sprintf("assert!(%s, %d);", s.Condition, s.ErrorCode)
	case TransferStatement:
		return fmt.Sprintf("transfer::public_transfer(%s, %s);", s.Value, s.Recipient)
	case CommentStatement:
		return "// " + s.Text
	case RawStatement:
		return s.Text
	default:
		return ""
	}
}
