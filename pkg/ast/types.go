package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeAnnotation is the syntax-side rendering target for analyzed types.
// The analyzer's printers produce these nodes; RenderType turns them into
// TypeScript-style text for reports and diagnostics.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

type typeAnnotationMarker struct{}

func (typeAnnotationMarker) typeAnnotationNode() {}

// NamedTypeAnnotation references a type by keyword or declared name.
type NamedTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Name string `json:"name"`
}

func NewNamedTypeAnnotation(name string) *NamedTypeAnnotation {
	return &NamedTypeAnnotation{nodeImpl: newNodeImpl(NodeNamedTypeAnnotation), Name: name}
}

type StringLiteralType struct {
	nodeImpl
	typeAnnotationMarker

	Value string `json:"value"`
}

func NewStringLiteralType(value string) *StringLiteralType {
	return &StringLiteralType{nodeImpl: newNodeImpl(NodeStringLiteralType), Value: value}
}

type NumberLiteralType struct {
	nodeImpl
	typeAnnotationMarker

	Value float64 `json:"value"`
}

func NewNumberLiteralType(value float64) *NumberLiteralType {
	return &NumberLiteralType{nodeImpl: newNodeImpl(NodeNumberLiteralType), Value: value}
}

type BigIntLiteralType struct {
	nodeImpl
	typeAnnotationMarker

	Digits string `json:"digits"`
}

func NewBigIntLiteralType(digits string) *BigIntLiteralType {
	return &BigIntLiteralType{nodeImpl: newNodeImpl(NodeBigIntLiteralType), Digits: digits}
}

type BooleanLiteralType struct {
	nodeImpl
	typeAnnotationMarker

	Value bool `json:"value"`
}

func NewBooleanLiteralType(value bool) *BooleanLiteralType {
	return &BooleanLiteralType{nodeImpl: newNodeImpl(NodeBooleanLiteralType), Value: value}
}

type UniqueSymbolType struct {
	nodeImpl
	typeAnnotationMarker
}

func NewUniqueSymbolType() *UniqueSymbolType {
	return &UniqueSymbolType{nodeImpl: newNodeImpl(NodeUniqueSymbolType)}
}

// UnresolvedTypeAnnotation names a type the analyzer could not resolve.
type UnresolvedTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Name string `json:"name"`
}

func NewUnresolvedTypeAnnotation(name string) *UnresolvedTypeAnnotation {
	return &UnresolvedTypeAnnotation{nodeImpl: newNodeImpl(NodeUnresolvedTypeAnnotation), Name: name}
}

type UnionTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Members []TypeAnnotation `json:"members"`
}

func NewUnionTypeAnnotation(members []TypeAnnotation) *UnionTypeAnnotation {
	return &UnionTypeAnnotation{nodeImpl: newNodeImpl(NodeUnionTypeAnnotation), Members: members}
}

// RecordTypeProp is one property of a record type annotation.
type RecordTypeProp struct {
	Name     string         `json:"name"`
	Optional bool           `json:"optional,omitempty"`
	Value    TypeAnnotation `json:"value"`
}

type RecordTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Props []RecordTypeProp `json:"props"`
}

func NewRecordTypeAnnotation(props []RecordTypeProp) *RecordTypeAnnotation {
	return &RecordTypeAnnotation{nodeImpl: newNodeImpl(NodeRecordTypeAnnotation), Props: props}
}

type FunctionTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Params []TypeAnnotation `json:"params"`
	Return TypeAnnotation   `json:"return"`
}

func NewFunctionTypeAnnotation(params []TypeAnnotation, ret TypeAnnotation) *FunctionTypeAnnotation {
	return &FunctionTypeAnnotation{nodeImpl: newNodeImpl(NodeFunctionTypeAnnotation), Params: params, Return: ret}
}

type ConstructorTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Params   []TypeAnnotation `json:"params"`
	Instance TypeAnnotation   `json:"instance"`
}

func NewConstructorTypeAnnotation(params []TypeAnnotation, instance TypeAnnotation) *ConstructorTypeAnnotation {
	return &ConstructorTypeAnnotation{nodeImpl: newNodeImpl(NodeConstructorTypeAnnotation), Params: params, Instance: instance}
}

type IntersectionTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Members []TypeAnnotation `json:"members"`
}

func NewIntersectionTypeAnnotation(members []TypeAnnotation) *IntersectionTypeAnnotation {
	return &IntersectionTypeAnnotation{nodeImpl: newNodeImpl(NodeIntersectionTypeAnnotation), Members: members}
}

type GenericTypeAnnotation struct {
	nodeImpl
	typeAnnotationMarker

	Name string           `json:"name"`
	Args []TypeAnnotation `json:"args"`
}

func NewGenericTypeAnnotation(name string, args []TypeAnnotation) *GenericTypeAnnotation {
	return &GenericTypeAnnotation{nodeImpl: newNodeImpl(NodeGenericTypeAnnotation), Name: name, Args: args}
}

// RenderType prints an annotation as TypeScript-style text.
func RenderType(t TypeAnnotation) string {
	var b strings.Builder
	renderType(&b, t)
	return b.String()
}

func renderType(b *strings.Builder, t TypeAnnotation) {
	switch n := t.(type) {
	case *NamedTypeAnnotation:
		b.WriteString(n.Name)
	case *StringLiteralType:
		b.WriteString(strconv.Quote(n.Value))
	case *NumberLiteralType:
		b.WriteString(formatNumber(n.Value))
	case *BigIntLiteralType:
		b.WriteString(n.Digits)
		b.WriteByte('n')
	case *BooleanLiteralType:
		b.WriteString(strconv.FormatBool(n.Value))
	case *UniqueSymbolType:
		b.WriteString("unique symbol")
	case *UnresolvedTypeAnnotation:
		b.WriteString(n.Name)
	case *UnionTypeAnnotation:
		if len(n.Members) == 0 {
			b.WriteString("never")
			return
		}
		for i, m := range n.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			renderOperand(b, m, true)
		}
	case *IntersectionTypeAnnotation:
		if len(n.Members) == 0 {
			b.WriteString("unknown")
			return
		}
		for i, m := range n.Members {
			if i > 0 {
				b.WriteString(" & ")
			}
			renderOperand(b, m, false)
		}
	case *RecordTypeAnnotation:
		if len(n.Props) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, p := range n.Props {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(p.Name)
			if p.Optional {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			renderType(b, p.Value)
		}
		b.WriteString(" }")
	case *FunctionTypeAnnotation:
		renderParams(b, n.Params)
		b.WriteString(" => ")
		renderType(b, n.Return)
	case *ConstructorTypeAnnotation:
		b.WriteString("new ")
		renderParams(b, n.Params)
		b.WriteString(" => ")
		renderType(b, n.Instance)
	case *GenericTypeAnnotation:
		b.WriteString(n.Name)
		b.WriteByte('<')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			renderType(b, a)
		}
		b.WriteByte('>')
	default:
		panic(fmt.Sprintf("ast: RenderType: unhandled annotation %T", t))
	}
}

// renderOperand parenthesizes members that would not reparse inside a
// union or intersection.
func renderOperand(b *strings.Builder, t TypeAnnotation, inUnion bool) {
	needsParens := false
	switch t.(type) {
	case *FunctionTypeAnnotation, *ConstructorTypeAnnotation:
		needsParens = true
	case *UnionTypeAnnotation:
		needsParens = !inUnion
	}
	if needsParens {
		b.WriteByte('(')
		renderType(b, t)
		b.WriteByte(')')
	} else {
		renderType(b, t)
	}
}

func renderParams(b *strings.Builder, params []TypeAnnotation) {
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "arg%d: ", i)
		renderType(b, p)
	}
	b.WriteByte(')')
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
