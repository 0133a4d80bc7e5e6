package analyzer

import (
	"fmt"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

// ExecProgram walks every top-level statement in order. One pass, no
// fixed point: the pop-time merge rules are the entire loop story.
func (a *Analyzer) ExecProgram(program *ast.Program) {
	if program == nil {
		return
	}
	a.logger.Debug("exec program", "statements", len(program.Body))
	for _, stmt := range program.Body {
		a.ExecStatement(stmt)
	}
}

// ExecStatement dispatches one statement to its handler.
func (a *Analyzer) ExecStatement(node ast.Statement) {
	if node == nil {
		return
	}
	a.site = node
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		a.ExecExpression(n.Expr)
	case *ast.VariableDeclaration:
		a.execVariableDeclaration(n)
	case *ast.BlockStatement:
		a.execBlock(n)
	case *ast.IfStatement:
		a.execIf(n)
	case *ast.WhileStatement:
		a.execWhile(n)
	case *ast.DoWhileStatement:
		a.execDoWhile(n)
	case *ast.ForStatement:
		a.execFor(n)
	case *ast.SwitchStatement:
		a.execSwitch(n)
	case *ast.FunctionDeclaration:
		a.execFunctionDeclaration(n)
	case *ast.ReturnStatement:
		if n.Argument != nil {
			a.ExecExpression(n.Argument)
		}
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.EmptyStatement:
		// Control transfer is not modeled; the pop-time merges already
		// over-approximate every path out of a construct.
	default:
		panic(fmt.Sprintf("analyzer: ExecStatement: unhandled statement %T", node))
	}
}

func (a *Analyzer) execVariableDeclaration(n *ast.VariableDeclaration) {
	for _, d := range n.Declarators {
		var t ty.Ty = ty.Undefined
		if d.Init != nil {
			t = a.ExecExpression(d.Init)
		}
		a.DeclareBinding(d.Name.Name, t)
		a.infer.set(d.Name, t)
		a.logger.Debug("declare", "kind", n.Kind, "binding", d.Name.Name)
	}
}

func (a *Analyzer) execBlock(n *ast.BlockStatement) {
	a.withScope(ScopeNormal, func() {
		for _, stmt := range n.Body {
			a.ExecStatement(stmt)
		}
	})
}

// execIf runs the test unscoped (it always evaluates) and each branch in
// its own indeterminate scope. The test's outcome does not narrow either
// branch; both see the pre-statement binding states.
func (a *Analyzer) execIf(n *ast.IfStatement) {
	a.ExecExpression(n.Test)
	a.withScope(ScopeIndeterminate, func() {
		a.ExecStatement(n.Consequent)
	})
	if n.Alternate != nil {
		a.withScope(ScopeIndeterminate, func() {
			a.ExecStatement(n.Alternate)
		})
	}
}

// execWhile runs the test in an indeterminate scope, then the body in a
// loop scope. Narrowing from the test is not threaded into the body; the
// body sees the binding states from before the loop.
func (a *Analyzer) execWhile(n *ast.WhileStatement) {
	a.PushIndeterminateScope()
	a.ExecExpression(n.Test)
	a.PopScope()

	a.PushLoopScope()
	a.ExecStatement(n.Body)
	a.PopScope()
}

// execDoWhile mirrors execWhile with the body first. The at-least-once
// guarantee is not exploited; the body still merges as a loop scope.
func (a *Analyzer) execDoWhile(n *ast.DoWhileStatement) {
	a.PushLoopScope()
	a.ExecStatement(n.Body)
	a.PopScope()

	a.PushIndeterminateScope()
	a.ExecExpression(n.Test)
	a.PopScope()
}

// execFor wraps the whole loop in a normal frame so the init binding
// stays visible to the other clauses and dies with the statement.
func (a *Analyzer) execFor(n *ast.ForStatement) {
	a.withScope(ScopeNormal, func() {
		if n.Init != nil {
			a.ExecStatement(n.Init)
		}
		a.withScope(ScopeIndeterminate, func() {
			if n.Test != nil {
				a.ExecExpression(n.Test)
			}
			if n.Update != nil {
				a.ExecExpression(n.Update)
			}
		})
		a.withScope(ScopeLoop, func() {
			a.ExecStatement(n.Body)
		})
	})
}

func (a *Analyzer) execSwitch(n *ast.SwitchStatement) {
	a.ExecExpression(n.Discriminant)
	for _, c := range n.Cases {
		if c.Test != nil {
			a.ExecExpression(c.Test)
		}
		a.withScope(ScopeIndeterminate, func() {
			for _, stmt := range c.Body {
				a.ExecStatement(stmt)
			}
		})
	}
}

// execFunctionDeclaration binds the name to a function shape. Bodies are
// never analyzed, so parameters and the return type stay unknown and
// calls resolve through the shape.
func (a *Analyzer) execFunctionDeclaration(n *ast.FunctionDeclaration) {
	params := make([]ty.Ty, len(n.Params))
	for i := range n.Params {
		params[i] = ty.Unknown
	}
	fn := a.arena.NewFunction(n.Name.Name, params, ty.Unknown)
	a.DeclareBinding(n.Name.Name, fn)
	a.infer.set(n.Name, fn)
}
