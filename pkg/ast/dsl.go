package ast

// Construction helpers used heavily by tests and fixtures.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Big(digits string) *BigIntLiteral {
	return NewBigIntLiteral(digits)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Undef() *UndefinedLiteral {
	return NewUndefinedLiteral()
}

func Tmpl(quasis []string, exprs ...Expression) *TemplateLiteral {
	return NewTemplateLiteral(quasis, exprs)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Obj(props ...*ObjectProperty) *ObjectLiteral {
	return NewObjectLiteral(props)
}

func Prop(name string, value Expression) *ObjectProperty {
	return NewObjectProperty(ID(name), value, false, false)
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Inc(operand Expression) *UpdateExpression {
	return NewUpdateExpression("++", operand, false)
}

func Dec(operand Expression) *UpdateExpression {
	return NewUpdateExpression("--", operand, false)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Assign(target, value Expression) *AssignmentExpression {
	return NewAssignmentExpression("=", target, value)
}

func AssignOp(operator string, target, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(operator, target, value)
}

func Cond(test, consequent, alternate Expression) *ConditionalExpression {
	return NewConditionalExpression(test, consequent, alternate)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args, false)
}

func Ctor(callee Expression, args ...Expression) *NewExpression {
	return NewNewExpression(callee, args)
}

func Member(object Expression, property string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, property, false)
}

func OptMember(object Expression, property string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, property, true)
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index, false)
}

func Seq(exprs ...Expression) *SequenceExpression {
	return NewSequenceExpression(exprs)
}

// Statement helpers.

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func D(name string, init Expression) *VariableDeclarator {
	return NewVariableDeclarator(ID(name), init)
}

func Decl(kind DeclKind, declarators ...*VariableDeclarator) *VariableDeclaration {
	return NewVariableDeclaration(kind, declarators)
}

func Let(name string, init Expression) *VariableDeclaration {
	return Decl(DeclLet, D(name, init))
}

func Const(name string, init Expression) *VariableDeclaration {
	return Decl(DeclConst, D(name, init))
}

func Var(name string, init Expression) *VariableDeclaration {
	return Decl(DeclVar, D(name, init))
}

func Block(stmts ...Statement) *BlockStatement {
	return NewBlockStatement(stmts)
}

func If(test Expression, body ...Statement) *IfStatement {
	return NewIfStatement(test, Block(body...), nil)
}

func IfElse(test Expression, consequent, alternate Statement) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func While(test Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(test, Block(body...))
}

func DoWhile(test Expression, body ...Statement) *DoWhileStatement {
	return NewDoWhileStatement(Block(body...), test)
}

func For(init Statement, test, update Expression, body ...Statement) *ForStatement {
	return NewForStatement(init, test, update, Block(body...))
}

func Switch(discriminant Expression, cases ...*SwitchCase) *SwitchStatement {
	return NewSwitchStatement(discriminant, cases)
}

func Case(test Expression, body ...Statement) *SwitchCase {
	return NewSwitchCase(test, body)
}

func DefaultCase(body ...Statement) *SwitchCase {
	return NewSwitchCase(nil, body)
}

func Brk() *BreakStatement {
	return NewBreakStatement("")
}

func Cont() *ContinueStatement {
	return NewContinueStatement("")
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Empty() *EmptyStatement {
	return NewEmptyStatement()
}

func FnDecl(name string, params []string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), idents(params), Block(body...))
}

func FnExpr(name string, params []string, body ...Statement) *FunctionExpression {
	return NewFunctionExpression(name, idents(params), Block(body...), false)
}

func Arrow(params []string, body Node) *FunctionExpression {
	return NewFunctionExpression("", idents(params), body, true)
}

func idents(names []string) []*Identifier {
	out := make([]*Identifier, len(names))
	for i, name := range names {
		out[i] = ID(name)
	}
	return out
}

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}
