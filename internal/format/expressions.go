package format

import (
	"strings"

	"github.com/sqlc-dev/chqualify/ast"
)

// Expression formats an expression.
func Expression(sb *strings.Builder, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case *ast.Literal:
		formatLiteral(sb, e)
	case *ast.Identifier:
		formatIdentifier(sb, e)
		formatAlias(sb, e.Alias)
	case *ast.FunctionCall:
		formatFunctionCall(sb, e)
		formatAlias(sb, e.Alias)
	case *ast.BinaryExpr:
		operand(sb, e.Left)
		sb.WriteString(" ")
		sb.WriteString(e.Op)
		sb.WriteString(" ")
		operand(sb, e.Right)
	case *ast.UnaryExpr:
		sb.WriteString(e.Op)
		if e.Op == "NOT" {
			sb.WriteString(" ")
		}
		if _, ok := e.Operand.(*ast.UnaryExpr); ok && e.Op != "NOT" {
			sb.WriteString("(")
			Expression(sb, e.Operand)
			sb.WriteString(")")
		} else {
			operand(sb, e.Operand)
		}
	case *ast.Asterisk:
		if e.Table != "" {
			for _, part := range strings.Split(e.Table, ".") {
				Name(sb, part)
				sb.WriteString(".")
			}
		}
		sb.WriteString("*")
	case *ast.InExpr:
		formatInExpr(sb, e)
	case *ast.Subquery:
		formatSubquery(sb, e)
		formatAlias(sb, e.Alias)
	case *ast.AliasedExpr:
		Expression(sb, e.Expr)
		formatAlias(sb, e.Alias)
	case *ast.TupleExpr:
		sb.WriteString("(")
		expressionList(sb, e.Elements)
		sb.WriteString(")")
	case *ast.DataType:
		formatDataType(sb, e)
	}
}

// operand formats a nested operand, parenthesizing operator expressions so
// the printed form parses back to the same tree.
func operand(sb *strings.Builder, expr ast.Expression) {
	parens := false
	switch e := expr.(type) {
	case *ast.BinaryExpr, *ast.InExpr, *ast.AliasedExpr:
		parens = true
	case *ast.UnaryExpr:
		// -(-x) must not print as the comment opener --x
		_, nested := e.Operand.(*ast.UnaryExpr)
		parens = e.Op == "NOT" || nested
	}
	if !parens {
		Expression(sb, expr)
		return
	}
	sb.WriteString("(")
	Expression(sb, expr)
	sb.WriteString(")")
}

func expressionList(sb *strings.Builder, exprs []ast.Expression) {
	for i, expr := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, expr)
	}
}

func formatAlias(sb *strings.Builder, alias string) {
	if alias == "" {
		return
	}
	sb.WriteString(" AS ")
	Name(sb, alias)
}

// formatLiteral formats a literal value.
func formatLiteral(sb *strings.Builder, lit *ast.Literal) {
	switch lit.Type {
	case ast.LiteralString:
		sb.WriteString("'")
		s := strings.ReplaceAll(lit.Value, "\\", "\\\\")
		s = strings.ReplaceAll(s, "'", "\\'")
		sb.WriteString(s)
		sb.WriteString("'")
	case ast.LiteralNull:
		sb.WriteString("NULL")
	default:
		sb.WriteString(lit.Value)
	}
}

func formatIdentifier(sb *strings.Builder, ident *ast.Identifier) {
	for i, part := range ident.Components() {
		if i > 0 {
			sb.WriteString(".")
		}
		Name(sb, part)
	}
}

func formatFunctionCall(sb *strings.Builder, fn *ast.FunctionCall) {
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	if fn.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, arg := range fn.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		if sub, ok := arg.(*ast.Subquery); ok {
			// exists(SELECT ...) takes the query without extra parentheses
			formatSelectUnion(sb, sub.Query)
			continue
		}
		Expression(sb, arg)
	}
	sb.WriteString(")")
}

func formatInExpr(sb *strings.Builder, e *ast.InExpr) {
	operand(sb, e.Expr)
	if e.Global {
		sb.WriteString(" GLOBAL")
	}
	if e.Not {
		sb.WriteString(" NOT")
	}
	sb.WriteString(" IN ")
	if e.Query != nil {
		formatSubquery(sb, e.Query)
		return
	}
	if len(e.List) == 1 {
		if _, ok := e.List[0].(*ast.Identifier); ok {
			Expression(sb, e.List[0])
			return
		}
	}
	sb.WriteString("(")
	expressionList(sb, e.List)
	sb.WriteString(")")
}

func formatSubquery(sb *strings.Builder, sub *ast.Subquery) {
	sb.WriteString("(")
	formatSelectUnion(sb, sub.Query)
	sb.WriteString(")")
}

func formatDataType(sb *strings.Builder, dt *ast.DataType) {
	sb.WriteString(dt.Name)
	if len(dt.Parameters) > 0 {
		sb.WriteString("(")
		expressionList(sb, dt.Parameters)
		sb.WriteString(")")
	}
}
