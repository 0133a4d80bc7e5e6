package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/parser/language"
)

// Parser wraps a tree-sitter parser configured for JavaScript sources.
type Parser struct {
	parser *sitter.Parser
}

// New constructs a parser with the JavaScript grammar loaded.
func New() (*Parser, error) {
	lang := language.JavaScript()
	if lang == nil {
		return nil, fmt.Errorf("parser: javascript language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseProgram parses JavaScript source into the analyzer AST. The path is
// only carried into diagnostics.
func (p *Parser) ParseProgram(path string, source []byte) (*ast.Program, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.Kind() != "program" {
		if root.HasError() {
			return nil, syntaxError(path, root, source)
		}
		return nil, fmt.Errorf("parser: unexpected root node %q", root.Kind())
	}
	if root.HasError() {
		return nil, syntaxError(path, root, source)
	}

	ctx := newParseContext(path, source)

	body := make([]ast.Statement, 0, root.NamedChildCount())
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if isIgnorableNode(node) {
			continue
		}
		stmt, err := ctx.parseStatement(node)
		if err != nil {
			return nil, ctx.wrapParseError(node, err)
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}

	program := ast.NewProgram(body)
	annotateSpan(program, root)
	return program, nil
}

type parseContext struct {
	path   string
	source []byte
}

func newParseContext(path string, source []byte) *parseContext {
	return &parseContext{path: path, source: source}
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		return child
	}
	return nil
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return true
	}
	switch node.Kind() {
	case "comment", "hash_bang_line":
		return true
	default:
		return false
	}
}

func annotateSpan(n ast.Node, node *sitter.Node) {
	if n == nil || node == nil {
		return
	}
	start := node.StartPosition()
	end := node.EndPosition()
	ast.SetSpan(n, ast.Span{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	})
}

func annotateExpression(expr ast.Expression, node *sitter.Node) ast.Expression {
	annotateSpan(expr, node)
	return expr
}

func parseIdentifier(node *sitter.Node, source []byte) (*ast.Identifier, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: expected identifier")
	}
	switch node.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier", "statement_identifier":
	default:
		return nil, fmt.Errorf("parser: expected identifier, got %q", node.Kind())
	}
	name := sliceContent(node, source)
	if name == "" {
		return nil, fmt.Errorf("parser: empty identifier")
	}
	id := ast.NewIdentifier(name)
	annotateSpan(id, node)
	return id, nil
}

// hasOptionalChain reports whether the node carries a ?. token directly, as
// member, subscript, and call nodes do in optional chains.
func hasOptionalChain(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "optional_chain" {
			return true
		}
	}
	return false
}
