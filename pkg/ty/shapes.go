package ty

import "math"

// PropertyKeyKind discriminates the three ways a property can be addressed.
type PropertyKeyKind int

const (
	KeyName PropertyKeyKind = iota
	KeyIndex
	KeySymbol
)

// PropertyKey addresses one property during resolution: a string name, a
// numeric index, or a unique symbol.
type PropertyKey struct {
	Kind  PropertyKeyKind
	Name  string
	Index float64
	Sym   SymbolID
}

func NameKey(name string) PropertyKey { return PropertyKey{Kind: KeyName, Name: name} }

func IndexKey(n float64) PropertyKey { return PropertyKey{Kind: KeyIndex, Index: n} }

func SymbolKey(id SymbolID) PropertyKey { return PropertyKey{Kind: KeySymbol, Sym: id} }

// Equal compares keys. Numeric indices compare bitwise, like NumberLiteral.
func (k PropertyKey) Equal(o PropertyKey) bool {
	if k.Kind != o.Kind {
		return false
	}
	switch k.Kind {
	case KeyName:
		return k.Name == o.Name
	case KeyIndex:
		return math.Float64bits(k.Index) == math.Float64bits(o.Index)
	case KeySymbol:
		return k.Sym == o.Sym
	default:
		return false
	}
}

// PropertyDef is one declared property of an object or interface shape.
type PropertyDef struct {
	Key      PropertyKey
	Value    Ty
	Optional bool
}

func lookupProp(props []PropertyDef, key PropertyKey) (PropertyDef, bool) {
	for _, p := range props {
		if p.Key.Equal(key) {
			return p, true
		}
	}
	return PropertyDef{}, false
}

// ObjectShape is the structural payload of a Record. Shapes are arena
// owned; identity, not structure, is their equality.
type ObjectShape struct {
	id    uint64
	Props []PropertyDef
}

// Lookup finds the property declared under key.
func (s *ObjectShape) Lookup(key PropertyKey) (PropertyDef, bool) {
	return lookupProp(s.Props, key)
}

// FunctionShape models a callable: parameter types and a return type.
type FunctionShape struct {
	id     uint64
	Name   string
	Params []Ty
	Return Ty
}

// ConstructorShape models a new-able: construction parameters and the
// instance type construction produces.
type ConstructorShape struct {
	id       uint64
	Name     string
	Params   []Ty
	Instance Ty
}

// InterfaceShape is a named property bag.
type InterfaceShape struct {
	id    uint64
	Name  string
	Props []PropertyDef
}

// Lookup finds the property declared under key.
func (s *InterfaceShape) Lookup(key PropertyKey) (PropertyDef, bool) {
	return lookupProp(s.Props, key)
}

// IntersectionShape lists the intersected member types.
type IntersectionShape struct {
	id      uint64
	Members []Ty
}

// NamespaceShape is a namespace's exported symbol table.
type NamespaceShape struct {
	id      uint64
	Name    string
	Exports map[string]Ty
}

// GenericDef is an uninstantiated generic type definition.
type GenericDef struct {
	id     uint64
	Name   string
	Params []string
}

// IntrinsicDef is a compiler-provided string-mapping type definition.
type IntrinsicDef struct {
	id   uint64
	Name string
}

// GenericInstance is one instantiation of a generic definition. Resolved
// holds the concrete type the instance stands for; nil means upstream
// resolution failed and unwrapping degrades to Error.
type GenericInstance struct {
	id       uint64
	Def      *GenericDef
	Args     []Ty
	Resolved Ty
}

// UnresolvedType is a named placeholder for a type a later pass may
// resolve. Placeholders never compare equal, even under the same name.
type UnresolvedType struct {
	id   uint64
	Name string
}
