package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"tyflow/analyzer-go/pkg/ast"
)

// parseStatement lowers one grammar statement node. A nil statement with a
// nil error means the node has no analyzable effect and is skipped.
func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil statement node")
	}
	switch node.Kind() {
	case "expression_statement":
		return ctx.parseExpressionStatement(node)
	case "lexical_declaration", "variable_declaration":
		return ctx.parseVariableDeclaration(node)
	case "statement_block":
		return ctx.parseBlock(node)
	case "if_statement":
		return ctx.parseIfStatement(node)
	case "while_statement":
		return ctx.parseWhileStatement(node)
	case "do_statement":
		return ctx.parseDoWhileStatement(node)
	case "for_statement":
		return ctx.parseForStatement(node)
	case "switch_statement":
		return ctx.parseSwitchStatement(node)
	case "break_statement":
		return ctx.parseBreakStatement(node)
	case "continue_statement":
		return ctx.parseContinueStatement(node)
	case "return_statement":
		return ctx.parseReturnStatement(node)
	case "empty_statement":
		stmt := ast.NewEmptyStatement()
		annotateSpan(stmt, node)
		return stmt, nil
	case "function_declaration", "generator_function_declaration":
		return ctx.parseFunctionDeclaration(node)
	case "labeled_statement":
		bodyNode := node.ChildByFieldName("body")
		if bodyNode == nil {
			return nil, fmt.Errorf("parser: labeled statement missing body")
		}
		return ctx.parseStatement(bodyNode)
	case "throw_statement":
		// Unwinding is not modeled; the thrown expression still executes.
		return ctx.parseThrowStatement(node)
	case "export_statement":
		return ctx.parseExportStatement(node)
	case "import_statement":
		// Imports are not resolved; imported names read as unresolved.
		return nil, nil
	default:
		return nil, fmt.Errorf("parser: unsupported statement %q", node.Kind())
	}
}

func (ctx *parseContext) parseExpressionStatement(node *sitter.Node) (ast.Statement, error) {
	inner := firstNamedChild(node)
	if inner == nil {
		return nil, fmt.Errorf("parser: empty expression statement")
	}
	expr, err := ctx.parseExpression(inner)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewExpressionStatement(expr)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseVariableDeclaration(node *sitter.Node) (ast.Statement, error) {
	kind := ast.DeclVar
	if node.Kind() == "lexical_declaration" {
		kind = ast.DeclLet
		if first := node.Child(0); first != nil && first.Kind() == "const" {
			kind = ast.DeclConst
		}
	}

	var declarators []*ast.VariableDeclarator
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			return nil, fmt.Errorf("parser: unsupported binding pattern %q", kindOf(nameNode))
		}
		name, err := parseIdentifier(nameNode, ctx.source)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if valueNode := child.ChildByFieldName("value"); valueNode != nil {
			init, err = ctx.parseExpression(valueNode)
			if err != nil {
				return nil, err
			}
		}
		d := ast.NewVariableDeclarator(name, init)
		annotateSpan(d, child)
		declarators = append(declarators, d)
	}
	if len(declarators) == 0 {
		return nil, fmt.Errorf("parser: variable declaration without declarators")
	}

	decl := ast.NewVariableDeclaration(kind, declarators)
	annotateSpan(decl, node)
	return decl, nil
}

func kindOf(node *sitter.Node) string {
	if node == nil {
		return "missing"
	}
	return node.Kind()
}

func (ctx *parseContext) parseBlock(node *sitter.Node) (*ast.BlockStatement, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing block")
	}
	statements := make([]ast.Statement, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		stmt, err := ctx.parseStatement(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	block := ast.NewBlockStatement(statements)
	annotateSpan(block, node)
	return block, nil
}

func (ctx *parseContext) parseIfStatement(node *sitter.Node) (ast.Statement, error) {
	condNode := node.ChildByFieldName("condition")
	if condNode == nil {
		return nil, fmt.Errorf("parser: if statement missing condition")
	}
	test, err := ctx.parseExpression(condNode)
	if err != nil {
		return nil, err
	}

	consequentNode := node.ChildByFieldName("consequence")
	if consequentNode == nil {
		return nil, fmt.Errorf("parser: if statement missing consequence")
	}
	consequent, err := ctx.parseStatement(consequentNode)
	if err != nil {
		return nil, err
	}

	var alternate ast.Statement
	if altNode := node.ChildByFieldName("alternative"); altNode != nil {
		// The alternative field wraps the statement in an else_clause.
		inner := firstNamedChild(altNode)
		if inner != nil {
			alternate, err = ctx.parseStatement(inner)
			if err != nil {
				return nil, err
			}
		}
	}

	stmt := ast.NewIfStatement(test, consequent, alternate)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseWhileStatement(node *sitter.Node) (ast.Statement, error) {
	condNode := node.ChildByFieldName("condition")
	if condNode == nil {
		return nil, fmt.Errorf("parser: while statement missing condition")
	}
	test, err := ctx.parseExpression(condNode)
	if err != nil {
		return nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: while statement missing body")
	}
	body, err := ctx.parseStatement(bodyNode)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewWhileStatement(test, body)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseDoWhileStatement(node *sitter.Node) (ast.Statement, error) {
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: do statement missing body")
	}
	body, err := ctx.parseStatement(bodyNode)
	if err != nil {
		return nil, err
	}
	condNode := node.ChildByFieldName("condition")
	if condNode == nil {
		return nil, fmt.Errorf("parser: do statement missing condition")
	}
	test, err := ctx.parseExpression(condNode)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewDoWhileStatement(body, test)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseForStatement(node *sitter.Node) (ast.Statement, error) {
	var init ast.Statement
	if initNode := node.ChildByFieldName("initializer"); initNode != nil && initNode.Kind() != "empty_statement" {
		stmt, err := ctx.parseStatement(initNode)
		if err != nil {
			return nil, err
		}
		init = stmt
	}

	test, err := ctx.parseForClause(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	update, err := ctx.parseForClause(node.ChildByFieldName("increment"))
	if err != nil {
		return nil, err
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: for statement missing body")
	}
	body, err := ctx.parseStatement(bodyNode)
	if err != nil {
		return nil, err
	}

	stmt := ast.NewForStatement(init, test, update, body)
	annotateSpan(stmt, node)
	return stmt, nil
}

// parseForClause handles the optional condition and increment slots, where
// the grammar yields an expression_statement, an empty_statement, or a bare
// expression.
func (ctx *parseContext) parseForClause(node *sitter.Node) (ast.Expression, error) {
	if node == nil || node.Kind() == "empty_statement" {
		return nil, nil
	}
	if node.Kind() == "expression_statement" {
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, nil
		}
		node = inner
	}
	return ctx.parseExpression(node)
}

func (ctx *parseContext) parseSwitchStatement(node *sitter.Node) (ast.Statement, error) {
	discNode := node.ChildByFieldName("value")
	if discNode == nil {
		return nil, fmt.Errorf("parser: switch statement missing discriminant")
	}
	discriminant, err := ctx.parseExpression(discNode)
	if err != nil {
		return nil, err
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: switch statement missing body")
	}
	cases := make([]*ast.SwitchCase, 0, bodyNode.NamedChildCount())
	for i := uint(0); i < bodyNode.NamedChildCount(); i++ {
		child := bodyNode.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "switch_case", "switch_default":
			c, err := ctx.parseSwitchCase(child)
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		default:
			return nil, fmt.Errorf("parser: unsupported switch body node %q", child.Kind())
		}
	}

	stmt := ast.NewSwitchStatement(discriminant, cases)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseSwitchCase(node *sitter.Node) (*ast.SwitchCase, error) {
	var test ast.Expression
	valueNode := node.ChildByFieldName("value")
	if valueNode != nil {
		expr, err := ctx.parseExpression(valueNode)
		if err != nil {
			return nil, err
		}
		test = expr
	}

	body := make([]ast.Statement, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if valueNode != nil && child.StartByte() == valueNode.StartByte() {
			continue
		}
		stmt, err := ctx.parseStatement(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}

	c := ast.NewSwitchCase(test, body)
	annotateSpan(c, node)
	return c, nil
}

func (ctx *parseContext) parseBreakStatement(node *sitter.Node) (ast.Statement, error) {
	label := ""
	if labelNode := node.ChildByFieldName("label"); labelNode != nil {
		label = sliceContent(labelNode, ctx.source)
	}
	stmt := ast.NewBreakStatement(label)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseContinueStatement(node *sitter.Node) (ast.Statement, error) {
	label := ""
	if labelNode := node.ChildByFieldName("label"); labelNode != nil {
		label = sliceContent(labelNode, ctx.source)
	}
	stmt := ast.NewContinueStatement(label)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseReturnStatement(node *sitter.Node) (ast.Statement, error) {
	var argument ast.Expression
	if inner := firstNamedChild(node); inner != nil {
		expr, err := ctx.parseExpression(inner)
		if err != nil {
			return nil, err
		}
		argument = expr
	}
	stmt := ast.NewReturnStatement(argument)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseThrowStatement(node *sitter.Node) (ast.Statement, error) {
	inner := firstNamedChild(node)
	if inner == nil {
		return nil, fmt.Errorf("parser: throw statement missing argument")
	}
	expr, err := ctx.parseExpression(inner)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewExpressionStatement(expr)
	annotateSpan(stmt, node)
	return stmt, nil
}

// parseExportStatement keeps the exported declaration or default expression
// and drops re-export forms, which bind nothing locally.
func (ctx *parseContext) parseExportStatement(node *sitter.Node) (ast.Statement, error) {
	if declNode := node.ChildByFieldName("declaration"); declNode != nil {
		return ctx.parseStatement(declNode)
	}
	if valueNode := node.ChildByFieldName("value"); valueNode != nil {
		expr, err := ctx.parseExpression(valueNode)
		if err != nil {
			return nil, err
		}
		stmt := ast.NewExpressionStatement(expr)
		annotateSpan(stmt, node)
		return stmt, nil
	}
	return nil, nil
}

func (ctx *parseContext) parseFunctionDeclaration(node *sitter.Node) (ast.Statement, error) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("parser: function declaration missing name")
	}
	name, err := parseIdentifier(nameNode, ctx.source)
	if err != nil {
		return nil, err
	}
	params, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: function declaration missing body")
	}
	body, err := ctx.parseBlock(bodyNode)
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionDeclaration(name, params, body)
	annotateSpan(fn, node)
	return fn, nil
}

// parseFormalParameters collects plain and defaulted identifier parameters.
// Destructuring and rest parameters carry no single name and are skipped;
// parameter count only feeds arity, never types.
func (ctx *parseContext) parseFormalParameters(node *sitter.Node) ([]*ast.Identifier, error) {
	if node == nil {
		return nil, nil
	}
	params := make([]*ast.Identifier, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		nameNode := child
		if child.Kind() == "assignment_pattern" {
			nameNode = child.ChildByFieldName("left")
		}
		if nameNode == nil || nameNode.Kind() != "identifier" {
			continue
		}
		id, err := parseIdentifier(nameNode, ctx.source)
		if err != nil {
			return nil, err
		}
		params = append(params, id)
	}
	return params, nil
}
