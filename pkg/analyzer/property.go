package analyzer

import (
	"fmt"

	"tyflow/analyzer-go/pkg/ty"
)

// GetProperty resolves one property access against one type. Resolution
// never aborts: kinds with no modeled answer produce a conservative type,
// and nullish receivers produce a diagnostic alongside Undefined.
func (a *Analyzer) GetProperty(t ty.Ty, key ty.PropertyKey) ty.Ty {
	switch v := t.(type) {
	case ty.Union:
		return a.GetUnionProperty(v.Of, key)
	case ty.Record:
		if def, ok := v.Shape.Lookup(key); ok {
			return a.GetOptionalType(def.Optional, def.Value)
		}
		return ty.Undefined
	case ty.Interface:
		if def, ok := v.Shape.Lookup(key); ok {
			return a.GetOptionalType(def.Optional, def.Value)
		}
		return ty.Undefined
	case ty.Intersection:
		// First member that declares the key wins.
		for _, member := range v.Shape.Members {
			if def, ok := shapeLookup(member, key); ok {
				return a.GetOptionalType(def.Optional, def.Value)
			}
		}
		return ty.Undefined
	case ty.Namespace:
		if key.Kind == ty.KeyName {
			if exported, ok := v.Shape.Exports[key.Name]; ok {
				return exported
			}
		}
		return ty.Undefined
	case ty.Instance:
		return a.GetProperty(a.UnwrapInstance(v.Inst), key)
	case ty.StringLiteral:
		return stringProperty(key)
	case ty.Unresolved:
		return ty.Error
	case ty.Primitive:
		switch v.Kind() {
		case ty.KindNull, ty.KindUndefined, ty.KindVoid:
			a.report(SeverityWarning, a.site, fmt.Sprintf("property access on %s", v.Kind()))
			return ty.Undefined
		case ty.KindString:
			return stringProperty(key)
		case ty.KindAny:
			return ty.Any
		case ty.KindError:
			return ty.Error
		case ty.KindNever:
			return ty.Never
		}
	}
	return ty.Unknown
}

func shapeLookup(t ty.Ty, key ty.PropertyKey) (ty.PropertyDef, bool) {
	switch v := t.(type) {
	case ty.Record:
		return v.Shape.Lookup(key)
	case ty.Interface:
		return v.Shape.Lookup(key)
	}
	return ty.PropertyDef{}, false
}

func stringProperty(key ty.PropertyKey) ty.Ty {
	if key.Kind == ty.KeyName && key.Name == "length" {
		return ty.Number
	}
	return ty.Unknown
}

var (
	typeofString    = ty.StringLiteral{Value: "string"}
	typeofNumber    = ty.StringLiteral{Value: "number"}
	typeofBigInt    = ty.StringLiteral{Value: "bigint"}
	typeofBoolean   = ty.StringLiteral{Value: "boolean"}
	typeofSymbol    = ty.StringLiteral{Value: "symbol"}
	typeofUndefined = ty.StringLiteral{Value: "undefined"}
	typeofObject    = ty.StringLiteral{Value: "object"}
	typeofFunction  = ty.StringLiteral{Value: "function"}
)

// TypeOf models the typeof operator. Results are string literals, and
// unions distribute so typeof stays precise across branches.
func (a *Analyzer) TypeOf(t ty.Ty) ty.Ty {
	switch v := t.(type) {
	case ty.Union:
		var b ty.UnionBuilder
		v.Of.ForEach(func(member ty.Ty) {
			b.Add(a, a.TypeOf(member))
		})
		return b.Build(a)
	case ty.Instance:
		return a.TypeOf(a.UnwrapInstance(v.Inst))
	case ty.StringLiteral:
		return typeofString
	case ty.NumberLiteral:
		return typeofNumber
	case ty.BigIntLiteral:
		return typeofBigInt
	case ty.BooleanLiteral:
		return typeofBoolean
	case ty.UniqueSymbol:
		return typeofSymbol
	case ty.Record, ty.Interface, ty.Intersection, ty.Namespace:
		return typeofObject
	case ty.Function, ty.Constructor:
		return typeofFunction
	case ty.Primitive:
		switch v.Kind() {
		case ty.KindString:
			return typeofString
		case ty.KindNumber:
			return typeofNumber
		case ty.KindBigInt:
			return typeofBigInt
		case ty.KindBoolean:
			return typeofBoolean
		case ty.KindSymbol:
			return typeofSymbol
		case ty.KindUndefined, ty.KindVoid:
			return typeofUndefined
		case ty.KindNull, ty.KindObject:
			return typeofObject
		case ty.KindError:
			return ty.Error
		case ty.KindNever:
			return ty.Never
		}
	}
	// Generic, intrinsic, and unresolved receivers could evaluate to any
	// runtime tag.
	return ty.String
}
