package ast

// NodeType names the syntactic category of a node.
type NodeType string

const (
	NodeProgram                NodeType = "Program"
	NodeIdentifier             NodeType = "Identifier"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeNumberLiteral          NodeType = "NumberLiteral"
	NodeBigIntLiteral          NodeType = "BigIntLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNullLiteral            NodeType = "NullLiteral"
	NodeUndefinedLiteral       NodeType = "UndefinedLiteral"
	NodeTemplateLiteral        NodeType = "TemplateLiteral"
	NodeArrayLiteral           NodeType = "ArrayLiteral"
	NodeObjectLiteral          NodeType = "ObjectLiteral"
	NodeObjectProperty         NodeType = "ObjectProperty"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeUpdateExpression       NodeType = "UpdateExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodeConditionalExpression  NodeType = "ConditionalExpression"
	NodeCallExpression         NodeType = "CallExpression"
	NodeNewExpression          NodeType = "NewExpression"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeIndexExpression        NodeType = "IndexExpression"
	NodeSequenceExpression     NodeType = "SequenceExpression"
	NodeFunctionExpression     NodeType = "FunctionExpression"
	NodeExpressionStatement    NodeType = "ExpressionStatement"
	NodeVariableDeclaration    NodeType = "VariableDeclaration"
	NodeVariableDeclarator     NodeType = "VariableDeclarator"
	NodeBlockStatement         NodeType = "BlockStatement"
	NodeIfStatement            NodeType = "IfStatement"
	NodeWhileStatement         NodeType = "WhileStatement"
	NodeDoWhileStatement       NodeType = "DoWhileStatement"
	NodeForStatement           NodeType = "ForStatement"
	NodeSwitchStatement        NodeType = "SwitchStatement"
	NodeSwitchCase             NodeType = "SwitchCase"
	NodeBreakStatement         NodeType = "BreakStatement"
	NodeContinueStatement      NodeType = "ContinueStatement"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeEmptyStatement         NodeType = "EmptyStatement"
	NodeFunctionDeclaration    NodeType = "FunctionDeclaration"

	NodeNamedTypeAnnotation        NodeType = "NamedTypeAnnotation"
	NodeStringLiteralType          NodeType = "StringLiteralType"
	NodeNumberLiteralType          NodeType = "NumberLiteralType"
	NodeBigIntLiteralType          NodeType = "BigIntLiteralType"
	NodeBooleanLiteralType         NodeType = "BooleanLiteralType"
	NodeUniqueSymbolType           NodeType = "UniqueSymbolType"
	NodeUnresolvedTypeAnnotation   NodeType = "UnresolvedTypeAnnotation"
	NodeUnionTypeAnnotation        NodeType = "UnionTypeAnnotation"
	NodeRecordTypeAnnotation       NodeType = "RecordTypeAnnotation"
	NodeFunctionTypeAnnotation     NodeType = "FunctionTypeAnnotation"
	NodeConstructorTypeAnnotation  NodeType = "ConstructorTypeAnnotation"
	NodeIntersectionTypeAnnotation NodeType = "IntersectionTypeAnnotation"
	NodeGenericTypeAnnotation      NodeType = "GenericTypeAnnotation"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

// nonNil keeps list-valued fields JSON-stable: an absent list marshals as []
// rather than null no matter how the node was built.
func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: nonNil(body)}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type BigIntLiteral struct {
	nodeImpl
	expressionMarker

	Digits string `json:"digits"`
}

func NewBigIntLiteral(digits string) *BigIntLiteral {
	return &BigIntLiteral{nodeImpl: newNodeImpl(NodeBigIntLiteral), Digits: digits}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type UndefinedLiteral struct {
	nodeImpl
	expressionMarker
}

func NewUndefinedLiteral() *UndefinedLiteral {
	return &UndefinedLiteral{nodeImpl: newNodeImpl(NodeUndefinedLiteral)}
}

// TemplateLiteral keeps the raw string chunks and the interleaved
// substitution expressions: Quasis always has len(Exprs)+1 entries.
type TemplateLiteral struct {
	nodeImpl
	expressionMarker

	Quasis []string     `json:"quasis"`
	Exprs  []Expression `json:"expressions"`
}

func NewTemplateLiteral(quasis []string, exprs []Expression) *TemplateLiteral {
	return &TemplateLiteral{nodeImpl: newNodeImpl(NodeTemplateLiteral), Quasis: nonNil(quasis), Exprs: nonNil(exprs)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: nonNil(elements)}
}

type ObjectProperty struct {
	nodeImpl

	Key       Expression `json:"key"`
	Value     Expression `json:"value"`
	Computed  bool       `json:"computed,omitempty"`
	Shorthand bool       `json:"shorthand,omitempty"`
}

func NewObjectProperty(key, value Expression, computed, shorthand bool) *ObjectProperty {
	return &ObjectProperty{
		nodeImpl:  newNodeImpl(NodeObjectProperty),
		Key:       key,
		Value:     value,
		Computed:  computed,
		Shorthand: shorthand,
	}
}

type ObjectLiteral struct {
	nodeImpl
	expressionMarker

	Properties []*ObjectProperty `json:"properties"`
}

func NewObjectLiteral(properties []*ObjectProperty) *ObjectLiteral {
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Properties: nonNil(properties)}
}

// Expressions

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

// UpdateExpression is ++ or -- in either position.
type UpdateExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
	Prefix   bool       `json:"prefix,omitempty"`
}

func NewUpdateExpression(operator string, operand Expression, prefix bool) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Operand: operand, Prefix: prefix}
}

// BinaryExpression covers arithmetic, comparison, logical and nullish
// operators; the operator string decides which.
type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Target   Expression `json:"target"`
	Value    Expression `json:"value"`
}

func NewAssignmentExpression(operator string, target, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Target: target, Value: value}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker

	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Test: test, Consequent: consequent, Alternate: alternate}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
	Optional  bool         `json:"optional,omitempty"`
}

func NewCallExpression(callee Expression, arguments []Expression, optional bool) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: nonNil(arguments), Optional: optional}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(callee Expression, arguments []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Callee: callee, Arguments: nonNil(arguments)}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property string     `json:"property"`
	Optional bool       `json:"optional,omitempty"`
}

func NewMemberAccessExpression(object Expression, property string, optional bool) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Property: property, Optional: optional}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Index    Expression `json:"index"`
	Optional bool       `json:"optional,omitempty"`
}

func NewIndexExpression(object, index Expression, optional bool) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index, Optional: optional}
}

type SequenceExpression struct {
	nodeImpl
	expressionMarker

	Expressions []Expression `json:"expressions"`
}

func NewSequenceExpression(expressions []Expression) *SequenceExpression {
	return &SequenceExpression{nodeImpl: newNodeImpl(NodeSequenceExpression), Expressions: nonNil(expressions)}
}

// FunctionExpression covers function expressions and arrow functions. The
// body is a BlockStatement or, for concise arrows, an Expression.
type FunctionExpression struct {
	nodeImpl
	expressionMarker

	Name   string        `json:"name,omitempty"`
	Params []*Identifier `json:"params"`
	Body   Node          `json:"body"`
	Arrow  bool          `json:"arrow,omitempty"`
}

func NewFunctionExpression(name string, params []*Identifier, body Node, arrow bool) *FunctionExpression {
	return &FunctionExpression{nodeImpl: newNodeImpl(NodeFunctionExpression), Name: name, Params: nonNil(params), Body: body, Arrow: arrow}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

// DeclKind is the binding form of a variable declaration.
type DeclKind string

const (
	DeclLet   DeclKind = "let"
	DeclConst DeclKind = "const"
	DeclVar   DeclKind = "var"
)

type VariableDeclarator struct {
	nodeImpl

	Name *Identifier `json:"name"`
	Init Expression  `json:"init,omitempty"`
}

func NewVariableDeclarator(name *Identifier, init Expression) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), Name: name, Init: init}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Kind        DeclKind              `json:"kind"`
	Declarators []*VariableDeclarator `json:"declarators"`
}

func NewVariableDeclaration(kind DeclKind, declarators []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarators: nonNil(declarators)}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: nonNil(body)}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Test: test, Consequent: consequent, Alternate: alternate}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func NewWhileStatement(test Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Test: test, Body: body}
}

type DoWhileStatement struct {
	nodeImpl
	statementMarker

	Body Statement  `json:"body"`
	Test Expression `json:"test"`
}

func NewDoWhileStatement(body Statement, test Expression) *DoWhileStatement {
	return &DoWhileStatement{nodeImpl: newNodeImpl(NodeDoWhileStatement), Body: body, Test: test}
}

// ForStatement models the classic three-clause loop. Init is a
// VariableDeclaration or an ExpressionStatement; any clause may be nil.
type ForStatement struct {
	nodeImpl
	statementMarker

	Init   Statement  `json:"init,omitempty"`
	Test   Expression `json:"test,omitempty"`
	Update Expression `json:"update,omitempty"`
	Body   Statement  `json:"body"`
}

func NewForStatement(init Statement, test, update Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Test: test, Update: update, Body: body}
}

type SwitchCase struct {
	nodeImpl

	Test Expression  `json:"test,omitempty"`
	Body []Statement `json:"body"`
}

func NewSwitchCase(test Expression, body []Statement) *SwitchCase {
	return &SwitchCase{nodeImpl: newNodeImpl(NodeSwitchCase), Test: test, Body: nonNil(body)}
}

type SwitchStatement struct {
	nodeImpl
	statementMarker

	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

func NewSwitchStatement(discriminant Expression, cases []*SwitchCase) *SwitchStatement {
	return &SwitchStatement{nodeImpl: newNodeImpl(NodeSwitchStatement), Discriminant: discriminant, Cases: nonNil(cases)}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Label string `json:"label,omitempty"`
}

func NewBreakStatement(label string) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Label: label}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Label string `json:"label,omitempty"`
}

func NewContinueStatement(label string) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Label: label}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   *Identifier     `json:"name"`
	Params []*Identifier   `json:"params"`
	Body   *BlockStatement `json:"body"`
}

func NewFunctionDeclaration(name *Identifier, params []*Identifier, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: nonNil(params), Body: body}
}
