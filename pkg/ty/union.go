package ty

import (
	"cmp"
	"math"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// UnionType is the canonical, kind-partitioned payload of a Union. Literal
// kinds live in LiteralAble containers, primitive singletons in presence
// flags, boolean in a (hasTrue, hasFalse) pair, complex shapes in an
// identity-hashed set, unresolved placeholders in an ordered list. Only
// UnionBuilder constructs these; after Build returns, the node is frozen.
type UnionType struct {
	id uint64

	str LiteralAble[string]
	num LiteralAble[uint64]
	big LiteralAble[string]
	sym LiteralAble[SymbolID]

	object    bool
	void      bool
	null      bool
	undefined bool
	hasTrue   bool
	hasFalse  bool

	complex    set.Collection[Ty]
	unresolved []*UnresolvedType
}

// Add classifies one member into its partition. Escalating kinds, nested
// unions and generic instances are the builder's job; one reaching here is
// a caller defect.
func (u *UnionType) Add(t Ty) {
	switch m := t.(type) {
	case Primitive:
		switch m.kind {
		case KindObject:
			u.object = true
		case KindVoid:
			u.void = true
		case KindNull:
			u.null = true
		case KindUndefined:
			u.undefined = true
		case KindString:
			u.str.Widen()
		case KindNumber:
			u.num.Widen()
		case KindBigInt:
			u.big.Widen()
		case KindSymbol:
			u.sym.Widen()
		case KindBoolean:
			u.hasTrue = true
			u.hasFalse = true
		default:
			panic("ty: UnionType.Add: " + m.kind.String() + " is handled by UnionBuilder")
		}
	case StringLiteral:
		u.str.Add(m.Value)
	case NumberLiteral:
		u.num.Add(math.Float64bits(m.Value))
	case BigIntLiteral:
		u.big.Add(m.Digits)
	case UniqueSymbol:
		u.sym.Add(m.ID)
	case BooleanLiteral:
		if m.Value {
			u.hasTrue = true
		} else {
			u.hasFalse = true
		}
	case Record, Function, Constructor, Interface, Intersection:
		if u.complex == nil {
			u.complex = set.NewHashSet[Ty](0)
		}
		u.complex.Insert(t)
	case Unresolved:
		u.unresolved = append(u.unresolved, m.Ref)
	default:
		panic("ty: UnionType.Add: " + t.Kind().String() + " is handled by UnionBuilder")
	}
}

// ForEach enumerates the members this union represents. It is the single
// source of truth for membership; printing and property distribution both
// go through it. Category order is fixed: string, number, bigint, symbol
// expansions, then object/void/null/undefined, then boolean, then complex
// members (hash order), then unresolved placeholders in insertion order.
func (u *UnionType) ForEach(visit func(Ty)) {
	u.str.ForEach(String, func(s string) Ty { return StringLiteral{Value: s} }, visit)
	u.num.ForEach(Number, func(bits uint64) Ty { return NumberLiteral{Value: math.Float64frombits(bits)} }, visit)
	u.big.ForEach(BigInt, func(d string) Ty { return BigIntLiteral{Digits: d} }, visit)
	u.sym.ForEach(Symbol, func(id SymbolID) Ty { return UniqueSymbol{ID: id} }, visit)

	if u.object {
		visit(Object)
	}
	if u.void {
		visit(Void)
	}
	if u.null {
		visit(Null)
	}
	if u.undefined {
		visit(Undefined)
	}

	switch {
	case u.hasTrue && u.hasFalse:
		visit(Boolean)
	case u.hasTrue:
		visit(BooleanLiteral{Value: true})
	case u.hasFalse:
		visit(BooleanLiteral{Value: false})
	}

	if u.complex != nil {
		members := u.complex.Slice()
		slices.SortFunc(members, func(a, b Ty) int { return cmp.Compare(a.Hash(), b.Hash()) })
		for _, m := range members {
			visit(m)
		}
	}

	for _, r := range u.unresolved {
		visit(Unresolved{Ref: r})
	}
}

// Host supplies the pass capabilities the union algebra borrows from its
// surroundings: materializing compounds in the pass arena and unwrapping
// generic instances to their underlying types.
type Host interface {
	AllocUnion(u *UnionType) Union
	UnwrapInstance(inst *GenericInstance) Ty
}

type builderState int

const (
	builderNever builderState = iota
	builderCompound
	builderError
	builderAny
	builderUnknown
)

// UnionBuilder folds a stream of member types into canonical union form.
// The zero value is ready to use: state Never, the union identity.
// Escalation is monotone (Never < Compound < Error/Any/Unknown) and the
// first top-like member to arrive decides which terminal wins; Any after
// Unknown is ignored, and vice versa.
type UnionBuilder struct {
	state    builderState
	compound *UnionType
}

// Add folds one member into the builder.
func (b *UnionBuilder) Add(h Host, t Ty) {
	switch b.state {
	case builderError, builderAny, builderUnknown:
		return
	}
	switch t.Kind() {
	case KindError, KindGeneric, KindIntrinsic, KindNamespace:
		// These kinds cannot live inside a union; the whole union
		// degrades to Error instead of dropping them.
		b.state = builderError
		b.compound = nil
	case KindAny:
		b.state = builderAny
		b.compound = nil
	case KindUnknown:
		b.state = builderUnknown
		b.compound = nil
	case KindNever:
	case KindUnion:
		t.(Union).Of.ForEach(func(member Ty) { b.Add(h, member) })
	case KindInstance:
		b.Add(h, h.UnwrapInstance(t.(Instance).Inst))
	default:
		if b.state == builderNever {
			b.compound = &UnionType{}
			b.state = builderCompound
		}
		b.compound.Add(t)
	}
}

// Build materializes the accumulated state. Compound unions are allocated
// through the host arena; terminal states come back as their primitive.
func (b *UnionBuilder) Build(h Host) Ty {
	switch b.state {
	case builderNever:
		return Never
	case builderError:
		return Error
	case builderAny:
		return Any
	case builderUnknown:
		return Unknown
	case builderCompound:
		return h.AllocUnion(b.compound)
	default:
		panic("ty: UnionBuilder.Build: invalid state")
	}
}
