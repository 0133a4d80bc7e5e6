package analyzer

import "tyflow/analyzer-go/pkg/ast"

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding produced while analyzing. Diagnostics never
// abort the pass; conservative types carry the analysis past them.
type Diagnostic struct {
	Severity Severity
	Message  string
	Node     ast.Node
}

func (a *Analyzer) report(severity Severity, node ast.Node, message string) {
	a.diags = append(a.diags, Diagnostic{Severity: severity, Message: message, Node: node})
}

// Diagnostics returns everything reported so far, in emission order.
func (a *Analyzer) Diagnostics() []Diagnostic {
	return a.diags
}
