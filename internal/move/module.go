// Package move models the emitted Move module: structs with ability sets,
// functions with tagged statements, and a deterministic renderer.
package move

// Ability is one of the four Move struct abilities.
type Ability string

const (
	Key   Ability = "key"
	Store Ability = "store"
	Copy  Ability = "copy"
	Drop  Ability = "drop"
)

// Primitive Move types used by the type-inference helpers.
const (
	TypeU64        = "u64"
	TypeBool       = "bool"
	TypeAddress    = "address"
	TypeUID        = "UID"
	TypeByteVector = "vector<u8>"
	TypeCoin       = "Coin<SUI>"
)

type Visibility int

const (
	Internal Visibility = iota
	PublicEntry
	PublicPackage
)

type Field struct {
	Name string
	Type string
}

type Struct struct {
	Name      string
	Abilities []Ability
	Fields    []Field
}

// NewResourceStruct builds a linear struct: exactly {key, store}, never
// {copy} or {drop}. The ability set is fixed at construction so an invalid
// combination cannot be produced.
func NewResourceStruct(name string) *Struct {
	return &Struct{
		Name:      name,
		Abilities: []Ability{Key, Store},
	}
}

// NewFlexibleStruct builds a droppable struct: {key, store, drop}, plus
// {copy} only when explicitly requested.
func NewFlexibleStruct(name string, copyable bool) *Struct {
	abilities := []Ability{Key, Store, Drop}
	if copyable {
		abilities = append(abilities, Copy)
	}
	return &Struct{
		Name:      name,
		Abilities: abilities,
	}
}

// NewEventStruct builds an event payload struct: {copy, drop}.
func NewEventStruct(name string) *Struct {
	return &Struct{
		Name:      name,
		Abilities: []Ability{Copy, Drop},
	}
}

func (s *Struct) AddField(name, typ string) {
	s.Fields = append(s.Fields, Field{Name: name, Type: typ})
}

func (s *Struct) Has(a Ability) bool {
	for _, ability := range s.Abilities {
		if ability == a {
			return true
		}
	}
	return false
}

// IsEventLike reports whether the struct carries both copy and drop, the
// shape of an event payload.
func (s *Struct) IsEventLike() bool {
	return s.Has(Copy) && s.Has(Drop)
}

type Param struct {
	Name       string
	Type       string
	Ref        bool
	MutableRef bool
}

type Function struct {
	Name       string
	Visibility Visibility
	Params     []Param
	ReturnType string
	Statements []Statement
}

// PrependStatements inserts stmts at the front of the statement list,
// preserving their order.
func (f *Function) PrependStatements(stmts []Statement) {
	f.Statements = append(append([]Statement{}, stmts...), f.Statements...)
}

// A Module accumulates structs, functions and dependencies during one
// transpile call. It is immutable once rendered.
type Module struct {
	Name         string
	Structs      []*Struct
	Functions    []*Function
	Dependencies []string

	rendered string
}

func NewModule(name string) *Module {
	return &Module{Name: name}
}

func (m *Module) AddStruct(s *Struct) {
	m.Structs = append(m.Structs, s)
}

func (m *Module) AddFunction(f *Function) {
	m.Functions = append(m.Functions, f)
}

// AddDependency registers a dependency name, ignoring duplicates.
func (m *Module) AddDependency(name string) {
	for _, dep := range m.Dependencies {
		if dep == name {
			return
		}
	}
	m.Dependencies = append(m.Dependencies, name)
}

// LastStruct returns the most recently added struct, or nil.
func (m *Module) LastStruct() *Struct {
	if len(m.Structs) == 0 {
		return nil
	}
	return m.Structs[len(m.Structs)-1]
}

// Source returns the rendered module text, rendering on first use.
func (m *Module) Source() string {
	if m.rendered == "" {
		m.rendered = Render(m)
	}
	return m.rendered
}
