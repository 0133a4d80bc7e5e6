package analyzer

import (
	"fmt"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

// ExecExpression computes an expression's type, records it in the
// inference map, and returns it.
func (a *Analyzer) ExecExpression(node ast.Expression) ty.Ty {
	if node == nil {
		return ty.Undefined
	}
	a.site = node
	t := a.evalExpression(node)
	a.infer.set(node, t)
	return t
}

func (a *Analyzer) evalExpression(node ast.Expression) ty.Ty {
	switch n := node.(type) {
	case *ast.Identifier:
		return a.evalIdentifier(n)
	case *ast.StringLiteral:
		return ty.StringLiteral{Value: n.Value}
	case *ast.NumberLiteral:
		return ty.NumberLiteral{Value: n.Value}
	case *ast.BigIntLiteral:
		return ty.BigIntLiteral{Digits: n.Digits}
	case *ast.BooleanLiteral:
		return ty.BooleanLiteral{Value: n.Value}
	case *ast.NullLiteral:
		return ty.Null
	case *ast.UndefinedLiteral:
		return ty.Undefined
	case *ast.TemplateLiteral:
		return a.evalTemplate(n)
	case *ast.ArrayLiteral:
		return a.evalArray(n)
	case *ast.ObjectLiteral:
		return a.evalObject(n)
	case *ast.UnaryExpression:
		return a.evalUnary(n)
	case *ast.UpdateExpression:
		return a.evalUpdate(n)
	case *ast.BinaryExpression:
		return a.evalBinary(n)
	case *ast.AssignmentExpression:
		return a.evalAssignment(n)
	case *ast.ConditionalExpression:
		return a.evalConditional(n)
	case *ast.CallExpression:
		return a.evalCall(n)
	case *ast.NewExpression:
		return a.evalNew(n)
	case *ast.MemberAccessExpression:
		return a.evalMemberAccess(n)
	case *ast.IndexExpression:
		return a.evalIndex(n)
	case *ast.SequenceExpression:
		return a.evalSequence(n)
	case *ast.FunctionExpression:
		return a.evalFunctionExpression(n)
	default:
		panic(fmt.Sprintf("analyzer: ExecExpression: unhandled expression %T", node))
	}
}

// evalIdentifier resolves a name; unknown names become fresh unresolved
// placeholders so downstream operations keep going.
func (a *Analyzer) evalIdentifier(n *ast.Identifier) ty.Ty {
	if t, ok := a.ReadBinding(n.Name); ok {
		return t
	}
	a.report(SeverityWarning, n, fmt.Sprintf("unresolved name %q", n.Name))
	return a.arena.NewUnresolved(n.Name)
}

func (a *Analyzer) evalTemplate(n *ast.TemplateLiteral) ty.Ty {
	if len(n.Exprs) == 0 {
		value := ""
		if len(n.Quasis) > 0 {
			value = n.Quasis[0]
		}
		return ty.StringLiteral{Value: value}
	}
	for _, e := range n.Exprs {
		a.ExecExpression(e)
	}
	return ty.String
}

// evalArray types array literals as plain object. Element types still
// get walked for their own inference entries.
func (a *Analyzer) evalArray(n *ast.ArrayLiteral) ty.Ty {
	for _, e := range n.Elements {
		a.ExecExpression(e)
	}
	return ty.Object
}

func (a *Analyzer) evalObject(n *ast.ObjectLiteral) ty.Ty {
	props := make([]ty.PropertyDef, 0, len(n.Properties))
	for _, p := range n.Properties {
		valueType := a.ExecExpression(p.Value)
		key, ok := a.propertyKeyFor(p)
		if !ok {
			continue
		}
		props = append(props, ty.PropertyDef{Key: key, Value: valueType})
	}
	return a.arena.NewObject(props)
}

// propertyKeyFor derives a static key from a literal property name.
// Computed keys with non-literal expressions contribute no key; their
// expression still executes.
func (a *Analyzer) propertyKeyFor(p *ast.ObjectProperty) (ty.PropertyKey, bool) {
	switch k := p.Key.(type) {
	case *ast.Identifier:
		if !p.Computed {
			return ty.NameKey(k.Name), true
		}
	case *ast.StringLiteral:
		return ty.NameKey(k.Value), true
	case *ast.NumberLiteral:
		return ty.IndexKey(k.Value), true
	}
	if p.Computed {
		a.ExecExpression(p.Key)
	}
	return ty.PropertyKey{}, false
}

func (a *Analyzer) evalUnary(n *ast.UnaryExpression) ty.Ty {
	operand := a.ExecExpression(n.Operand)
	switch n.Operator {
	case "typeof":
		return a.TypeOf(operand)
	case "void":
		return ty.Undefined
	case "delete", "!":
		return ty.Boolean
	case "-", "+", "~":
		return ty.Number
	default:
		a.report(SeverityInfo, n, fmt.Sprintf("unmodeled unary operator %q", n.Operator))
		return ty.Unknown
	}
}

// evalUpdate types ++x and x--. Either form leaves the binding numeric,
// and the produced value types as number regardless of position.
func (a *Analyzer) evalUpdate(n *ast.UpdateExpression) ty.Ty {
	if id, ok := n.Operand.(*ast.Identifier); ok {
		a.ExecExpression(id)
		a.WriteBinding(id.Name, ty.Number)
	} else {
		a.ExecExpression(n.Operand)
	}
	return ty.Number
}

func (a *Analyzer) evalBinary(n *ast.BinaryExpression) ty.Ty {
	left := a.ExecExpression(n.Left)
	right := a.ExecExpression(n.Right)
	switch n.Operator {
	case "&&", "||", "??":
		// Both operands stay possible: no truthiness narrowing, and
		// short-circuiting does not shield the right side's writes.
		return a.IntoUnion(left, right)
	case "+":
		return a.additionType(left, right)
	case "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", ">>>":
		return ty.Number
	case "==", "!=", "===", "!==", "<", "<=", ">", ">=", "instanceof", "in":
		return ty.Boolean
	default:
		a.report(SeverityInfo, n, fmt.Sprintf("unmodeled binary operator %q", n.Operator))
		return ty.Unknown
	}
}

// additionType follows the + operator's coercion split: any string
// operand concatenates, numeric operands add, matched bigints add, and
// anything else keeps both outcomes.
func (a *Analyzer) additionType(left, right ty.Ty) ty.Ty {
	if isStringish(left) || isStringish(right) {
		return ty.String
	}
	if isNumberish(left) && isNumberish(right) {
		return ty.Number
	}
	if isBigIntish(left) && isBigIntish(right) {
		return ty.BigInt
	}
	return a.IntoUnion(ty.String, ty.Number)
}

func isStringish(t ty.Ty) bool {
	switch t.Kind() {
	case ty.KindString, ty.KindStringLiteral:
		return true
	}
	return false
}

func isNumberish(t ty.Ty) bool {
	switch t.Kind() {
	case ty.KindNumber, ty.KindNumberLiteral, ty.KindBoolean, ty.KindBooleanLiteral,
		ty.KindNull, ty.KindUndefined:
		return true
	}
	return false
}

func isBigIntish(t ty.Ty) bool {
	switch t.Kind() {
	case ty.KindBigInt, ty.KindBigIntLiteral:
		return true
	}
	return false
}

func (a *Analyzer) evalAssignment(n *ast.AssignmentExpression) ty.Ty {
	switch dst := n.Target.(type) {
	case *ast.Identifier:
		value := a.ExecExpression(n.Value)
		result := value
		if n.Operator != "=" {
			current, ok := a.ReadBinding(dst.Name)
			if !ok {
				current = ty.Undefined
			}
			result = a.compoundType(n.Operator, current, value)
		}
		a.WriteBinding(dst.Name, result)
		a.infer.set(dst, result)
		return result
	case *ast.MemberAccessExpression, *ast.IndexExpression:
		// Shapes are immutable arena values; writing through a member
		// narrows nothing, but the receiver still gets walked.
		current := a.ExecExpression(n.Target)
		value := a.ExecExpression(n.Value)
		if n.Operator == "=" {
			return value
		}
		return a.compoundType(n.Operator, current, value)
	default:
		a.report(SeverityWarning, n, "unsupported assignment target")
		return a.ExecExpression(n.Value)
	}
}

func (a *Analyzer) compoundType(op string, current, value ty.Ty) ty.Ty {
	switch op {
	case "+=":
		return a.additionType(current, value)
	case "&&=", "||=", "??=":
		// The binding ends as either its old value or the assigned one.
		return a.IntoUnion(current, value)
	default:
		return ty.Number
	}
}

// evalConditional runs each arm in its own indeterminate scope and
// unions the results. The test does not narrow either arm.
func (a *Analyzer) evalConditional(n *ast.ConditionalExpression) ty.Ty {
	a.ExecExpression(n.Test)
	var consequent, alternate ty.Ty
	a.withScope(ScopeIndeterminate, func() {
		consequent = a.ExecExpression(n.Consequent)
	})
	a.withScope(ScopeIndeterminate, func() {
		alternate = a.ExecExpression(n.Alternate)
	})
	return a.IntoUnion(consequent, alternate)
}

func (a *Analyzer) evalCall(n *ast.CallExpression) ty.Ty {
	callee := a.ExecExpression(n.Callee)
	for _, arg := range n.Arguments {
		a.ExecExpression(arg)
	}
	if isNeverCallable(callee) {
		a.report(SeverityWarning, n, "callee is not a function")
	}
	result := a.callResult(callee)
	return a.GetOptionalType(n.Optional, result)
}

// callResult resolves what calling a value of the given type produces.
// Bodies are never analyzed, so shapes answer with whatever return type
// their creator recorded.
func (a *Analyzer) callResult(callee ty.Ty) ty.Ty {
	switch v := callee.(type) {
	case ty.Function:
		if v.Shape.Return != nil {
			return v.Shape.Return
		}
		return ty.Unknown
	case ty.Union:
		var b ty.UnionBuilder
		v.Of.ForEach(func(member ty.Ty) {
			b.Add(a, a.callResult(member))
		})
		return b.Build(a)
	case ty.Instance:
		return a.callResult(a.UnwrapInstance(v.Inst))
	case ty.Primitive:
		switch v.Kind() {
		case ty.KindAny:
			return ty.Any
		case ty.KindError:
			return ty.Error
		}
	}
	return ty.Unknown
}

func isNeverCallable(t ty.Ty) bool {
	switch t.(type) {
	case ty.StringLiteral, ty.NumberLiteral, ty.BigIntLiteral, ty.BooleanLiteral,
		ty.UniqueSymbol, ty.Record, ty.Interface, ty.Namespace:
		return true
	case ty.Primitive:
		switch t.Kind() {
		case ty.KindString, ty.KindNumber, ty.KindBigInt, ty.KindBoolean, ty.KindSymbol,
			ty.KindObject, ty.KindNull, ty.KindUndefined, ty.KindVoid:
			return true
		}
	}
	return false
}

func (a *Analyzer) evalNew(n *ast.NewExpression) ty.Ty {
	callee := a.ExecExpression(n.Callee)
	for _, arg := range n.Arguments {
		a.ExecExpression(arg)
	}
	if ctor, ok := callee.(ty.Constructor); ok && ctor.Shape.Instance != nil {
		return ctor.Shape.Instance
	}
	return ty.Object
}

// evalMemberAccess types o.p and o?.p. Optional access peels the
// nullish members off the receiver before resolving, then unions
// undefined back into the result.
func (a *Analyzer) evalMemberAccess(n *ast.MemberAccessExpression) ty.Ty {
	object := a.ExecExpression(n.Object)
	a.site = n
	key := ty.NameKey(n.Property)
	if !n.Optional {
		return a.GetProperty(object, key)
	}
	receiver, wasNullish := a.stripNullish(object)
	if receiver == nil {
		return ty.Undefined
	}
	result := a.GetProperty(receiver, key)
	if wasNullish {
		return a.IntoUnion(ty.Undefined, result)
	}
	return result
}

// evalIndex types o[k]; the key resolves statically only when the index
// expression types as a literal or a unique symbol.
func (a *Analyzer) evalIndex(n *ast.IndexExpression) ty.Ty {
	object := a.ExecExpression(n.Object)
	index := a.ExecExpression(n.Index)
	a.site = n
	receiver := object
	wasNullish := false
	if n.Optional {
		receiver, wasNullish = a.stripNullish(object)
		if receiver == nil {
			return ty.Undefined
		}
	}
	var result ty.Ty = ty.Unknown
	if key, ok := indexKeyFor(index); ok {
		result = a.GetProperty(receiver, key)
	}
	if wasNullish {
		return a.IntoUnion(ty.Undefined, result)
	}
	return result
}

func indexKeyFor(index ty.Ty) (ty.PropertyKey, bool) {
	switch v := index.(type) {
	case ty.StringLiteral:
		return ty.NameKey(v.Value), true
	case ty.NumberLiteral:
		return ty.IndexKey(v.Value), true
	case ty.UniqueSymbol:
		return ty.SymbolKey(v.ID), true
	}
	return ty.PropertyKey{}, false
}

// stripNullish removes null, undefined and void from t. The second
// result reports whether anything was removed; a nil first result means
// nothing remained.
func (a *Analyzer) stripNullish(t ty.Ty) (ty.Ty, bool) {
	if isNullish(t) {
		return nil, true
	}
	u, ok := t.(ty.Union)
	if !ok {
		return t, false
	}
	removed := false
	var b ty.UnionBuilder
	u.Of.ForEach(func(member ty.Ty) {
		if isNullish(member) {
			removed = true
			return
		}
		b.Add(a, member)
	})
	if !removed {
		return t, false
	}
	rebuilt := b.Build(a)
	if rebuilt == ty.Never {
		return nil, true
	}
	return rebuilt, true
}

func isNullish(t ty.Ty) bool {
	switch t.Kind() {
	case ty.KindNull, ty.KindUndefined, ty.KindVoid:
		return true
	}
	return false
}

func (a *Analyzer) evalSequence(n *ast.SequenceExpression) ty.Ty {
	var last ty.Ty = ty.Undefined
	for _, e := range n.Expressions {
		last = a.ExecExpression(e)
	}
	return last
}

// evalFunctionExpression mirrors function declarations: a shape with
// unknown parameters and return, no body analysis, and no binding even
// for named expressions.
func (a *Analyzer) evalFunctionExpression(n *ast.FunctionExpression) ty.Ty {
	params := make([]ty.Ty, len(n.Params))
	for i := range n.Params {
		params[i] = ty.Unknown
	}
	return a.arena.NewFunction(n.Name, params, ty.Unknown)
}
