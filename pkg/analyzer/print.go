package analyzer

import (
	"fmt"
	"strconv"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

// maxPrintDepth bounds annotation trees; cyclic shapes print as "..."
// past it instead of recursing forever.
const maxPrintDepth = 8

// PrintType renders one type as a syntax annotation.
func (a *Analyzer) PrintType(t ty.Ty) ast.TypeAnnotation {
	return a.printType(t, 0)
}

// PrintUnionType renders a compound union as a union annotation in
// canonical member order.
func (a *Analyzer) PrintUnionType(u *ty.UnionType) ast.TypeAnnotation {
	return a.printUnion(u, 0)
}

func (a *Analyzer) printUnion(u *ty.UnionType, depth int) ast.TypeAnnotation {
	var members []ast.TypeAnnotation
	u.ForEach(func(member ty.Ty) {
		members = append(members, a.printType(member, depth+1))
	})
	return ast.NewUnionTypeAnnotation(members)
}

func (a *Analyzer) printType(t ty.Ty, depth int) ast.TypeAnnotation {
	if t == nil {
		return ast.NewNamedTypeAnnotation("unknown")
	}
	if depth > maxPrintDepth {
		return ast.NewNamedTypeAnnotation("...")
	}
	switch v := t.(type) {
	case ty.Primitive:
		return ast.NewNamedTypeAnnotation(v.Kind().String())
	case ty.StringLiteral:
		return ast.NewStringLiteralType(v.Value)
	case ty.NumberLiteral:
		return ast.NewNumberLiteralType(v.Value)
	case ty.BigIntLiteral:
		return ast.NewBigIntLiteralType(v.Digits)
	case ty.BooleanLiteral:
		return ast.NewBooleanLiteralType(v.Value)
	case ty.UniqueSymbol:
		return ast.NewUniqueSymbolType()
	case ty.Union:
		return a.printUnion(v.Of, depth)
	case ty.Record:
		props := make([]ast.RecordTypeProp, 0, len(v.Shape.Props))
		for _, p := range v.Shape.Props {
			props = append(props, ast.RecordTypeProp{
				Name:     propName(p.Key),
				Optional: p.Optional,
				Value:    a.printType(p.Value, depth+1),
			})
		}
		return ast.NewRecordTypeAnnotation(props)
	case ty.Function:
		return ast.NewFunctionTypeAnnotation(a.printAll(v.Shape.Params, depth), a.printType(v.Shape.Return, depth+1))
	case ty.Constructor:
		return ast.NewConstructorTypeAnnotation(a.printAll(v.Shape.Params, depth), a.printType(v.Shape.Instance, depth+1))
	case ty.Interface:
		return ast.NewNamedTypeAnnotation(v.Shape.Name)
	case ty.Intersection:
		return ast.NewIntersectionTypeAnnotation(a.printAll(v.Shape.Members, depth))
	case ty.Namespace:
		return ast.NewNamedTypeAnnotation(v.Shape.Name)
	case ty.Generic:
		return ast.NewNamedTypeAnnotation(v.Def.Name)
	case ty.Intrinsic:
		return ast.NewNamedTypeAnnotation(v.Def.Name)
	case ty.Instance:
		return ast.NewGenericTypeAnnotation(v.Inst.Def.Name, a.printAll(v.Inst.Args, depth))
	case ty.Unresolved:
		return ast.NewUnresolvedTypeAnnotation(v.Ref.Name)
	}
	panic(fmt.Sprintf("analyzer: PrintType: unhandled type %T", t))
}

func (a *Analyzer) printAll(ts []ty.Ty, depth int) []ast.TypeAnnotation {
	out := make([]ast.TypeAnnotation, len(ts))
	for i, t := range ts {
		out[i] = a.printType(t, depth+1)
	}
	return out
}

func propName(key ty.PropertyKey) string {
	switch key.Kind {
	case ty.KeyName:
		return key.Name
	case ty.KeyIndex:
		return strconv.FormatFloat(key.Index, 'g', -1, 64)
	default:
		return fmt.Sprintf("[symbol #%d]", key.Sym)
	}
}
