package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"tyflow/analyzer-go/pkg/ast"
)

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil expression node")
	}
	switch node.Kind() {
	case "identifier":
		return parseIdentifier(node, ctx.source)
	case "number":
		return ctx.parseNumberLiteral(node)
	case "string":
		return ctx.parseStringLiteral(node)
	case "template_string":
		return ctx.parseTemplateLiteral(node)
	case "true":
		return annotateExpression(ast.NewBooleanLiteral(true), node), nil
	case "false":
		return annotateExpression(ast.NewBooleanLiteral(false), node), nil
	case "null":
		return annotateExpression(ast.NewNullLiteral(), node), nil
	case "undefined":
		return annotateExpression(ast.NewUndefinedLiteral(), node), nil
	case "array":
		return ctx.parseArrayLiteral(node)
	case "object":
		return ctx.parseObjectLiteral(node)
	case "unary_expression":
		return ctx.parseUnaryExpression(node)
	case "update_expression":
		return ctx.parseUpdateExpression(node)
	case "binary_expression":
		return ctx.parseBinaryExpression(node)
	case "ternary_expression":
		return ctx.parseConditionalExpression(node)
	case "assignment_expression", "augmented_assignment_expression":
		return ctx.parseAssignmentExpression(node)
	case "call_expression":
		return ctx.parseCallExpression(node)
	case "new_expression":
		return ctx.parseNewExpression(node)
	case "member_expression":
		return ctx.parseMemberExpression(node)
	case "subscript_expression":
		return ctx.parseSubscriptExpression(node)
	case "parenthesized_expression":
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: empty parenthesized expression")
		}
		return ctx.parseExpression(inner)
	case "sequence_expression":
		return ctx.parseSequenceExpression(node)
	case "arrow_function":
		return ctx.parseArrowFunction(node)
	case "function_expression", "generator_function":
		return ctx.parseFunctionExpression(node)
	case "await_expression":
		// Promise settlement is not modeled; await passes the operand through.
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: await expression missing operand")
		}
		return ctx.parseExpression(inner)
	default:
		return nil, fmt.Errorf("parser: unsupported expression %q", node.Kind())
	}
}

func (ctx *parseContext) parseNumberLiteral(node *sitter.Node) (ast.Expression, error) {
	content := sliceContent(node, ctx.source)
	if content == "" {
		return nil, fmt.Errorf("parser: empty number literal")
	}

	if strings.HasSuffix(content, "n") {
		sanitized := strings.ReplaceAll(strings.TrimSuffix(content, "n"), "_", "")
		value := new(big.Int)
		if _, ok := value.SetString(strings.ToLower(sanitized), 0); !ok {
			return nil, fmt.Errorf("parser: invalid bigint literal %q", content)
		}
		return annotateExpression(ast.NewBigIntLiteral(value.String()), node), nil
	}

	sanitized := strings.ReplaceAll(content, "_", "")
	lower := strings.ToLower(sanitized)

	if strings.HasPrefix(lower, "0b") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0x") {
		value, err := strconv.ParseUint(lower, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid number literal %q", content)
		}
		return annotateExpression(ast.NewNumberLiteral(float64(value)), node), nil
	}

	value, err := strconv.ParseFloat(sanitized, 64)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid number literal %q", content)
	}
	return annotateExpression(ast.NewNumberLiteral(value), node), nil
}

func (ctx *parseContext) parseStringLiteral(node *sitter.Node) (ast.Expression, error) {
	var builder strings.Builder
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "string_fragment":
			builder.WriteString(sliceContent(child, ctx.source))
		case "escape_sequence":
			decoded, err := decodeEscapeSequence(sliceContent(child, ctx.source))
			if err != nil {
				return nil, fmt.Errorf("parser: invalid string literal: %w", err)
			}
			builder.WriteString(decoded)
		}
	}
	return annotateExpression(ast.NewStringLiteral(builder.String()), node), nil
}

func (ctx *parseContext) parseTemplateLiteral(node *sitter.Node) (ast.Expression, error) {
	quasis := []string{""}
	exprs := make([]ast.Expression, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "string_fragment":
			quasis[len(quasis)-1] += sliceContent(child, ctx.source)
		case "escape_sequence":
			decoded, err := decodeEscapeSequence(sliceContent(child, ctx.source))
			if err != nil {
				return nil, fmt.Errorf("parser: invalid template literal: %w", err)
			}
			quasis[len(quasis)-1] += decoded
		case "template_substitution":
			inner := firstNamedChild(child)
			if inner == nil {
				return nil, fmt.Errorf("parser: empty template substitution")
			}
			expr, err := ctx.parseExpression(inner)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
			quasis = append(quasis, "")
		}
	}
	return annotateExpression(ast.NewTemplateLiteral(quasis, exprs), node), nil
}

func decodeEscapeSequence(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '\\' {
		return "", fmt.Errorf("invalid escape %q", raw)
	}
	switch raw[1] {
	case 'n':
		return "\n", nil
	case 'r':
		return "\r", nil
	case 't':
		return "\t", nil
	case 'b':
		return "\b", nil
	case 'f':
		return "\f", nil
	case 'v':
		return "\v", nil
	case '0':
		return "\x00", nil
	case 'x':
		return decodeCodepoint(raw[2:])
	case 'u':
		digits := strings.TrimSuffix(strings.TrimPrefix(raw[2:], "{"), "}")
		return decodeCodepoint(digits)
	case '\n':
		// Line continuation.
		return "", nil
	default:
		return raw[1:], nil
	}
}

func decodeCodepoint(hex string) (string, error) {
	value, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return "", fmt.Errorf("invalid unicode escape \\%s", hex)
	}
	r := rune(value)
	if !utf8.ValidRune(r) {
		return "", fmt.Errorf("invalid unicode scalar \\%s", hex)
	}
	return string(r), nil
}

func (ctx *parseContext) parseArrayLiteral(node *sitter.Node) (ast.Expression, error) {
	elements := make([]ast.Expression, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		target := child
		if child.Kind() == "spread_element" {
			target = firstNamedChild(child)
			if target == nil {
				continue
			}
		}
		expr, err := ctx.parseExpression(target)
		if err != nil {
			return nil, err
		}
		elements = append(elements, expr)
	}
	return annotateExpression(ast.NewArrayLiteral(elements), node), nil
}

func (ctx *parseContext) parseObjectLiteral(node *sitter.Node) (ast.Expression, error) {
	properties := make([]*ast.ObjectProperty, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "pair":
			prop, err := ctx.parseObjectPair(child)
			if err != nil {
				return nil, err
			}
			properties = append(properties, prop)
		case "shorthand_property_identifier":
			key, err := parseIdentifier(child, ctx.source)
			if err != nil {
				return nil, err
			}
			value := ast.NewIdentifier(key.Name)
			annotateSpan(value, child)
			prop := ast.NewObjectProperty(key, value, false, true)
			annotateSpan(prop, child)
			properties = append(properties, prop)
		case "method_definition":
			prop, err := ctx.parseMethodProperty(child)
			if err != nil {
				return nil, err
			}
			properties = append(properties, prop)
		case "spread_element":
			// Spread entries contribute no keyed property.
			continue
		default:
			return nil, fmt.Errorf("parser: unsupported object member %q", child.Kind())
		}
	}
	return annotateExpression(ast.NewObjectLiteral(properties), node), nil
}

func (ctx *parseContext) parseObjectPair(node *sitter.Node) (*ast.ObjectProperty, error) {
	keyNode := node.ChildByFieldName("key")
	valueNode := node.ChildByFieldName("value")
	if keyNode == nil || valueNode == nil {
		return nil, fmt.Errorf("parser: object pair missing key or value")
	}
	key, computed, err := ctx.parsePropertyKey(keyNode)
	if err != nil {
		return nil, err
	}
	value, err := ctx.parseExpression(valueNode)
	if err != nil {
		return nil, err
	}
	prop := ast.NewObjectProperty(key, value, computed, false)
	annotateSpan(prop, node)
	return prop, nil
}

func (ctx *parseContext) parsePropertyKey(node *sitter.Node) (ast.Expression, bool, error) {
	switch node.Kind() {
	case "property_identifier":
		id, err := parseIdentifier(node, ctx.source)
		return id, false, err
	case "string":
		key, err := ctx.parseStringLiteral(node)
		return key, false, err
	case "number":
		key, err := ctx.parseNumberLiteral(node)
		return key, false, err
	case "computed_property_name":
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, false, fmt.Errorf("parser: empty computed property name")
		}
		key, err := ctx.parseExpression(inner)
		return key, true, err
	default:
		return nil, false, fmt.Errorf("parser: unsupported property key %q", node.Kind())
	}
}

func (ctx *parseContext) parseMethodProperty(node *sitter.Node) (*ast.ObjectProperty, error) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("parser: method definition missing name")
	}
	key, computed, err := ctx.parsePropertyKey(nameNode)
	if err != nil {
		return nil, err
	}
	params, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: method definition missing body")
	}
	body, err := ctx.parseBlock(bodyNode)
	if err != nil {
		return nil, err
	}

	name := ""
	if id, ok := key.(*ast.Identifier); ok {
		name = id.Name
	}
	fn := ast.NewFunctionExpression(name, params, body, false)
	annotateSpan(fn, node)

	prop := ast.NewObjectProperty(key, fn, computed, false)
	annotateSpan(prop, node)
	return prop, nil
}

func (ctx *parseContext) parseUnaryExpression(node *sitter.Node) (ast.Expression, error) {
	operatorNode := node.ChildByFieldName("operator")
	operandNode := node.ChildByFieldName("argument")
	if operatorNode == nil || operandNode == nil {
		return nil, fmt.Errorf("parser: malformed unary expression")
	}
	operand, err := ctx.parseExpression(operandNode)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(operatorNode, ctx.source)
	return annotateExpression(ast.NewUnaryExpression(operator, operand), node), nil
}

func (ctx *parseContext) parseUpdateExpression(node *sitter.Node) (ast.Expression, error) {
	operatorNode := node.ChildByFieldName("operator")
	operandNode := node.ChildByFieldName("argument")
	if operatorNode == nil || operandNode == nil {
		return nil, fmt.Errorf("parser: malformed update expression")
	}
	operand, err := ctx.parseExpression(operandNode)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(operatorNode, ctx.source)
	prefix := operatorNode.StartByte() < operandNode.StartByte()
	return annotateExpression(ast.NewUpdateExpression(operator, operand, prefix), node), nil
}

func (ctx *parseContext) parseBinaryExpression(node *sitter.Node) (ast.Expression, error) {
	leftNode := node.ChildByFieldName("left")
	operatorNode := node.ChildByFieldName("operator")
	rightNode := node.ChildByFieldName("right")
	if leftNode == nil || operatorNode == nil || rightNode == nil {
		return nil, fmt.Errorf("parser: malformed binary expression")
	}
	left, err := ctx.parseExpression(leftNode)
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(rightNode)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(operatorNode, ctx.source)
	return annotateExpression(ast.NewBinaryExpression(operator, left, right), node), nil
}

func (ctx *parseContext) parseConditionalExpression(node *sitter.Node) (ast.Expression, error) {
	condNode := node.ChildByFieldName("condition")
	consequentNode := node.ChildByFieldName("consequence")
	alternateNode := node.ChildByFieldName("alternative")
	if condNode == nil || consequentNode == nil || alternateNode == nil {
		return nil, fmt.Errorf("parser: malformed ternary expression")
	}
	test, err := ctx.parseExpression(condNode)
	if err != nil {
		return nil, err
	}
	consequent, err := ctx.parseExpression(consequentNode)
	if err != nil {
		return nil, err
	}
	alternate, err := ctx.parseExpression(alternateNode)
	if err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewConditionalExpression(test, consequent, alternate), node), nil
}

func (ctx *parseContext) parseAssignmentExpression(node *sitter.Node) (ast.Expression, error) {
	leftNode := node.ChildByFieldName("left")
	rightNode := node.ChildByFieldName("right")
	if leftNode == nil || rightNode == nil {
		return nil, fmt.Errorf("parser: malformed assignment expression")
	}
	target, err := ctx.parseExpression(leftNode)
	if err != nil {
		return nil, err
	}
	value, err := ctx.parseExpression(rightNode)
	if err != nil {
		return nil, err
	}
	operator := "="
	if operatorNode := node.ChildByFieldName("operator"); operatorNode != nil {
		operator = sliceContent(operatorNode, ctx.source)
	}
	return annotateExpression(ast.NewAssignmentExpression(operator, target, value), node), nil
}

func (ctx *parseContext) parseCallExpression(node *sitter.Node) (ast.Expression, error) {
	calleeNode := node.ChildByFieldName("function")
	if calleeNode == nil {
		return nil, fmt.Errorf("parser: call expression missing callee")
	}
	callee, err := ctx.parseExpression(calleeNode)
	if err != nil {
		return nil, err
	}
	args, err := ctx.parseArguments(node.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	call := ast.NewCallExpression(callee, args, hasOptionalChain(node))
	annotateSpan(call, node)
	return call, nil
}

// parseArguments handles both parenthesized argument lists and the template
// argument of tagged template calls.
func (ctx *parseContext) parseArguments(node *sitter.Node) ([]ast.Expression, error) {
	if node == nil {
		// new expressions may omit the argument list entirely.
		return []ast.Expression{}, nil
	}
	if node.Kind() == "template_string" {
		arg, err := ctx.parseTemplateLiteral(node)
		if err != nil {
			return nil, err
		}
		return []ast.Expression{arg}, nil
	}
	args := make([]ast.Expression, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		target := child
		if child.Kind() == "spread_element" {
			target = firstNamedChild(child)
			if target == nil {
				continue
			}
		}
		expr, err := ctx.parseExpression(target)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
	return args, nil
}

func (ctx *parseContext) parseNewExpression(node *sitter.Node) (ast.Expression, error) {
	calleeNode := node.ChildByFieldName("constructor")
	if calleeNode == nil {
		return nil, fmt.Errorf("parser: new expression missing constructor")
	}
	callee, err := ctx.parseExpression(calleeNode)
	if err != nil {
		return nil, err
	}
	args, err := ctx.parseArguments(node.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	expr := ast.NewNewExpression(callee, args)
	annotateSpan(expr, node)
	return expr, nil
}

func (ctx *parseContext) parseMemberExpression(node *sitter.Node) (ast.Expression, error) {
	objectNode := node.ChildByFieldName("object")
	propertyNode := node.ChildByFieldName("property")
	if objectNode == nil || propertyNode == nil {
		return nil, fmt.Errorf("parser: malformed member expression")
	}
	object, err := ctx.parseExpression(objectNode)
	if err != nil {
		return nil, err
	}
	property := sliceContent(propertyNode, ctx.source)
	if property == "" {
		return nil, fmt.Errorf("parser: member expression missing property name")
	}
	expr := ast.NewMemberAccessExpression(object, property, hasOptionalChain(node))
	annotateSpan(expr, node)
	return expr, nil
}

func (ctx *parseContext) parseSubscriptExpression(node *sitter.Node) (ast.Expression, error) {
	objectNode := node.ChildByFieldName("object")
	indexNode := node.ChildByFieldName("index")
	if objectNode == nil || indexNode == nil {
		return nil, fmt.Errorf("parser: malformed subscript expression")
	}
	object, err := ctx.parseExpression(objectNode)
	if err != nil {
		return nil, err
	}
	index, err := ctx.parseExpression(indexNode)
	if err != nil {
		return nil, err
	}
	expr := ast.NewIndexExpression(object, index, hasOptionalChain(node))
	annotateSpan(expr, node)
	return expr, nil
}

func (ctx *parseContext) parseSequenceExpression(node *sitter.Node) (ast.Expression, error) {
	var exprs []ast.Expression
	var collect func(n *sitter.Node) error
	collect = func(n *sitter.Node) error {
		if n.Kind() == "sequence_expression" {
			leftNode := n.ChildByFieldName("left")
			rightNode := n.ChildByFieldName("right")
			if leftNode == nil || rightNode == nil {
				for i := uint(0); i < n.NamedChildCount(); i++ {
					child := n.NamedChild(i)
					if child == nil || isIgnorableNode(child) {
						continue
					}
					if err := collect(child); err != nil {
						return err
					}
				}
				return nil
			}
			if err := collect(leftNode); err != nil {
				return err
			}
			return collect(rightNode)
		}
		expr, err := ctx.parseExpression(n)
		if err != nil {
			return err
		}
		exprs = append(exprs, expr)
		return nil
	}
	if err := collect(node); err != nil {
		return nil, err
	}
	return annotateExpression(ast.NewSequenceExpression(exprs), node), nil
}

func (ctx *parseContext) parseArrowFunction(node *sitter.Node) (ast.Expression, error) {
	var params []*ast.Identifier
	if single := node.ChildByFieldName("parameter"); single != nil {
		id, err := parseIdentifier(single, ctx.source)
		if err != nil {
			return nil, err
		}
		params = []*ast.Identifier{id}
	} else {
		list, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
		if err != nil {
			return nil, err
		}
		params = list
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: arrow function missing body")
	}
	var body ast.Node
	if bodyNode.Kind() == "statement_block" {
		block, err := ctx.parseBlock(bodyNode)
		if err != nil {
			return nil, err
		}
		body = block
	} else {
		expr, err := ctx.parseExpression(bodyNode)
		if err != nil {
			return nil, err
		}
		body = expr
	}

	fn := ast.NewFunctionExpression("", params, body, true)
	annotateSpan(fn, node)
	return fn, nil
}

func (ctx *parseContext) parseFunctionExpression(node *sitter.Node) (ast.Expression, error) {
	name := ""
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = sliceContent(nameNode, ctx.source)
	}
	params, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: function expression missing body")
	}
	body, err := ctx.parseBlock(bodyNode)
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionExpression(name, params, body, false)
	annotateSpan(fn, node)
	return fn, nil
}
