package ty

import (
	"hash/fnv"
	"math"
)

// Kind identifies the type category.
type Kind int

const (
	KindNever Kind = iota
	KindError
	KindAny
	KindUnknown
	KindObject
	KindVoid
	KindNull
	KindUndefined
	KindString
	KindNumber
	KindBigInt
	KindSymbol
	KindBoolean
	KindStringLiteral
	KindNumberLiteral
	KindBigIntLiteral
	KindUniqueSymbol
	KindBooleanLiteral
	KindUnion
	KindRecord
	KindFunction
	KindConstructor
	KindInterface
	KindIntersection
	KindNamespace
	KindGeneric
	KindIntrinsic
	KindInstance
	KindUnresolved
)

func (k Kind) String() string {
	switch k {
	case KindNever:
		return "never"
	case KindError:
		return "error"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindObject:
		return "object"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	case KindBoolean:
		return "boolean"
	case KindStringLiteral:
		return "string literal"
	case KindNumberLiteral:
		return "number literal"
	case KindBigIntLiteral:
		return "bigint literal"
	case KindUniqueSymbol:
		return "unique symbol"
	case KindBooleanLiteral:
		return "boolean literal"
	case KindUnion:
		return "union"
	case KindRecord:
		return "record"
	case KindFunction:
		return "function"
	case KindConstructor:
		return "constructor"
	case KindInterface:
		return "interface"
	case KindIntersection:
		return "intersection"
	case KindNamespace:
		return "namespace"
	case KindGeneric:
		return "generic"
	case KindIntrinsic:
		return "intrinsic"
	case KindInstance:
		return "instance"
	case KindUnresolved:
		return "unresolved"
	default:
		return "invalid"
	}
}

// Ty is one value type understood by the analyzer. Every implementation is
// an immutable value struct; compound payloads (shapes, unions, defs) live
// in the pass Arena and hash by arena identity.
type Ty interface {
	Kind() Kind
	Hash() uint64
	isTy()
}

// SymbolID identifies one unique-symbol creation site within a pass.
type SymbolID uint32

// Primitive is a payload-free singleton kind. Use the package-level
// singletons below; the zero value is Never.
type Primitive struct {
	kind Kind
}

func (p Primitive) Kind() Kind   { return p.kind }
func (p Primitive) Hash() uint64 { return uint64(p.kind)*31 + 7 }
func (Primitive) isTy()          {}

var (
	Never     = Primitive{KindNever}
	Error     = Primitive{KindError}
	Any       = Primitive{KindAny}
	Unknown   = Primitive{KindUnknown}
	Object    = Primitive{KindObject}
	Void      = Primitive{KindVoid}
	Null      = Primitive{KindNull}
	Undefined = Primitive{KindUndefined}
	String    = Primitive{KindString}
	Number    = Primitive{KindNumber}
	BigInt    = Primitive{KindBigInt}
	Symbol    = Primitive{KindSymbol}
	Boolean   = Primitive{KindBoolean}
)

// StringLiteral is the type of one exact string value.
type StringLiteral struct {
	Value string
}

func (StringLiteral) Kind() Kind     { return KindStringLiteral }
func (t StringLiteral) Hash() uint64 { return hashString(uint64(KindStringLiteral), t.Value) }
func (StringLiteral) isTy()          {}

// NumberLiteral is the type of one exact number value. Identity is bitwise:
// NaN equals itself, +0 and -0 stay distinct.
type NumberLiteral struct {
	Value float64
}

func (NumberLiteral) Kind() Kind { return KindNumberLiteral }
func (t NumberLiteral) Hash() uint64 {
	return math.Float64bits(t.Value)*31 + uint64(KindNumberLiteral)
}
func (NumberLiteral) isTy() {}

// BigIntLiteral is the type of one exact bigint value, keyed by its
// canonical digit string (sign included, no suffix).
type BigIntLiteral struct {
	Digits string
}

func (BigIntLiteral) Kind() Kind     { return KindBigIntLiteral }
func (t BigIntLiteral) Hash() uint64 { return hashString(uint64(KindBigIntLiteral), t.Digits) }
func (BigIntLiteral) isTy()          {}

// UniqueSymbol is the type of the symbol produced by one creation site.
type UniqueSymbol struct {
	ID SymbolID
}

func (UniqueSymbol) Kind() Kind     { return KindUniqueSymbol }
func (t UniqueSymbol) Hash() uint64 { return uint64(t.ID)*31 + uint64(KindUniqueSymbol) }
func (UniqueSymbol) isTy()          {}

// BooleanLiteral is the type of exactly true or exactly false.
type BooleanLiteral struct {
	Value bool
}

func (BooleanLiteral) Kind() Kind { return KindBooleanLiteral }
func (t BooleanLiteral) Hash() uint64 {
	if t.Value {
		return uint64(KindBooleanLiteral)*31 + 1
	}
	return uint64(KindBooleanLiteral) * 31
}
func (BooleanLiteral) isTy() {}

// Union references a canonical compound owned by the pass arena. A
// canonical union never contains another union.
type Union struct {
	Of *UnionType
}

func (Union) Kind() Kind     { return KindUnion }
func (t Union) Hash() uint64 { return t.Of.id*31 + uint64(KindUnion) }
func (Union) isTy()          {}

// Record is a structural object type.
type Record struct {
	Shape *ObjectShape
}

func (Record) Kind() Kind     { return KindRecord }
func (t Record) Hash() uint64 { return t.Shape.id*31 + uint64(KindRecord) }
func (Record) isTy()          {}

// Function is a callable type.
type Function struct {
	Shape *FunctionShape
}

func (Function) Kind() Kind     { return KindFunction }
func (t Function) Hash() uint64 { return t.Shape.id*31 + uint64(KindFunction) }
func (Function) isTy()          {}

// Constructor is a new-able type.
type Constructor struct {
	Shape *ConstructorShape
}

func (Constructor) Kind() Kind     { return KindConstructor }
func (t Constructor) Hash() uint64 { return t.Shape.id*31 + uint64(KindConstructor) }
func (Constructor) isTy()          {}

// Interface is a named declaration-merged property bag.
type Interface struct {
	Shape *InterfaceShape
}

func (Interface) Kind() Kind     { return KindInterface }
func (t Interface) Hash() uint64 { return t.Shape.id*31 + uint64(KindInterface) }
func (Interface) isTy()          {}

// Intersection is the conjunction of its member types.
type Intersection struct {
	Shape *IntersectionShape
}

func (Intersection) Kind() Kind     { return KindIntersection }
func (t Intersection) Hash() uint64 { return t.Shape.id*31 + uint64(KindIntersection) }
func (Intersection) isTy()          {}

// Namespace is a module-like symbol table. It cannot be represented inside
// a union; the builder degrades to Error when one arrives.
type Namespace struct {
	Shape *NamespaceShape
}

func (Namespace) Kind() Kind     { return KindNamespace }
func (t Namespace) Hash() uint64 { return t.Shape.id*31 + uint64(KindNamespace) }
func (Namespace) isTy()          {}

// Generic is an uninstantiated generic definition. Like Namespace it
// forces escalation when added to a union.
type Generic struct {
	Def *GenericDef
}

func (Generic) Kind() Kind     { return KindGeneric }
func (t Generic) Hash() uint64 { return t.Def.id*31 + uint64(KindGeneric) }
func (Generic) isTy()          {}

// Intrinsic is a compiler-provided string-mapping type. Forces escalation
// when added to a union.
type Intrinsic struct {
	Def *IntrinsicDef
}

func (Intrinsic) Kind() Kind     { return KindIntrinsic }
func (t Intrinsic) Hash() uint64 { return t.Def.id*31 + uint64(KindIntrinsic) }
func (Intrinsic) isTy()          {}

// Instance is one instantiation of a generic. The algebra never inspects
// it; Host.UnwrapInstance supplies the underlying type when the instance
// joins a union.
type Instance struct {
	Inst *GenericInstance
}

func (Instance) Kind() Kind     { return KindInstance }
func (t Instance) Hash() uint64 { return t.Inst.id*31 + uint64(KindInstance) }
func (Instance) isTy()          {}

// Unresolved is a named placeholder for a type a later pass may resolve.
// Each placeholder keeps its own identity; unions retain every occurrence.
type Unresolved struct {
	Ref *UnresolvedType
}

func (Unresolved) Kind() Kind     { return KindUnresolved }
func (t Unresolved) Hash() uint64 { return t.Ref.id*31 + uint64(KindUnresolved) }
func (Unresolved) isTy()          {}

func hashString(seed uint64, s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return seed*31 + h.Sum64()
}
