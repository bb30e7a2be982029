package parser

import (
	"strings"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/token"
)

// Operator precedence levels
const (
	LOWEST      = iota
	OR_PREC     // OR
	AND_PREC    // AND
	NOT_PREC    // NOT
	COMPARE     // =, !=, <, >, <=, >=, LIKE, IN
	CONCAT_PREC // ||
	ADD_PREC    // +, -
	MUL_PREC    // *, /, %
	UNARY       // -x
	CALL        // function()
	HIGHEST
)

func (p *Parser) precedence(tok token.Token) int {
	switch tok {
	case token.OR:
		return OR_PREC
	case token.AND:
		return AND_PREC
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.LIKE, token.IN, token.GLOBAL:
		return COMPARE
	case token.NOT:
		// only as the start of NOT IN / NOT LIKE
		if p.peekIs(token.IN) || p.peekIs(token.LIKE) {
			return COMPARE
		}
		return LOWEST
	case token.CONCAT:
		return CONCAT_PREC
	case token.PLUS, token.MINUS:
		return ADD_PREC
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return MUL_PREC
	default:
		return LOWEST
	}
}

func (p *Parser) parseExpressionList() []ast.Expression {
	var exprs []ast.Expression

	if p.currentIs(token.RPAREN) || p.currentIs(token.EOF) {
		return exprs
	}

	for {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return exprs
		}
		exprs = append(exprs, expr)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return exprs
}

// parseSelectList parses the column list of a SELECT, where every
// expression may carry an alias.
func (p *Parser) parseSelectList() []ast.Expression {
	var exprs []ast.Expression

	for {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return exprs
		}
		exprs = append(exprs, p.parseAlias(expr))

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return exprs
}

// parseAlias handles `expr AS name` and the implicit `expr name`.
func (p *Parser) parseAlias(expr ast.Expression) ast.Expression {
	var alias string
	switch {
	case p.currentIs(token.AS):
		p.nextToken()
		name, ok := p.parseName()
		if !ok {
			return expr
		}
		alias = name
	case p.currentIs(token.IDENT):
		// Keywords like FROM, WHERE etc. are tokenized as their own token
		// types, so a plain identifier here can only be an alias.
		alias = p.current.Value
		p.nextToken()
	default:
		return expr
	}

	// Set alias on the expression if it supports it
	switch e := expr.(type) {
	case *ast.Identifier:
		e.Alias = alias
		return e
	case *ast.FunctionCall:
		e.Alias = alias
		return e
	case *ast.Subquery:
		e.Alias = alias
		return e
	default:
		return &ast.AliasedExpr{
			Position: expr.Pos(),
			Expr:     expr,
			Alias:    alias,
		}
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefixExpression()
	if left == nil {
		return nil
	}

	for !p.currentIs(token.EOF) && precedence < p.precedence(p.current.Token) {
		left = p.parseInfixExpression(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	switch p.current.Token {
	case token.IDENT:
		return p.parseIdentifierOrFunction()
	case token.NUMBER:
		return p.parseLiteral(ast.LiteralNumber)
	case token.STRING:
		return p.parseLiteral(ast.LiteralString)
	case token.TRUE, token.FALSE:
		return p.parseLiteral(ast.LiteralBoolean)
	case token.NULL:
		return p.parseLiteral(ast.LiteralNull)
	case token.MINUS, token.PLUS:
		return p.parseUnary(p.current.Value, UNARY)
	case token.NOT:
		return p.parseUnary("NOT", NOT_PREC)
	case token.LPAREN:
		return p.parseGroupedOrTuple()
	case token.ASTERISK:
		asterisk := &ast.Asterisk{
			Position: p.current.Pos,
		}
		p.nextToken()
		return asterisk
	default:
		// Keywords that can be used as function names or qualifiers
		if p.current.Token.IsKeyword() && (p.peekIs(token.LPAREN) || p.peekIs(token.DOT)) {
			return p.parseIdentifierOrFunction()
		}
		p.unexpected()
		return nil
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	switch p.current.Token {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR, token.CONCAT, token.LIKE:
		return p.parseBinaryExpression(left)
	case token.NOT:
		// NOT IN, NOT LIKE
		p.nextToken()
		switch p.current.Token {
		case token.IN:
			return p.parseInExpression(left, false, true)
		case token.LIKE:
			expr := p.parseBinaryExpression(left)
			if bin, ok := expr.(*ast.BinaryExpr); ok {
				bin.Op = "NOT LIKE"
			}
			return expr
		}
		p.unexpected()
		return nil
	case token.IN:
		return p.parseInExpression(left, false, false)
	case token.GLOBAL:
		// GLOBAL IN or GLOBAL NOT IN
		p.nextToken()
		not := false
		if p.currentIs(token.NOT) {
			not = true
			p.nextToken()
		}
		if !p.currentIs(token.IN) {
			p.errorf(p.current.Pos, "expected IN, got %s", describe(p.current))
			return nil
		}
		return p.parseInExpression(left, true, not)
	default:
		return left
	}
}

func (p *Parser) parseIdentifierOrFunction() ast.Expression {
	pos := p.current.Pos
	name := p.current.Value
	p.nextToken()

	if p.currentIs(token.LPAREN) {
		return p.parseFunctionCall(name, pos)
	}

	// Check for qualified identifier (a.b.c)
	parts := []string{name}
	for p.currentIs(token.DOT) {
		p.nextToken()
		if p.currentIs(token.ASTERISK) {
			// table.*
			p.nextToken()
			return &ast.Asterisk{
				Position: pos,
				Table:    strings.Join(parts, "."),
			}
		}
		part, ok := p.parseName()
		if !ok {
			return nil
		}
		parts = append(parts, part)
	}

	ident := ast.NewCompoundIdentifier(parts...)
	ident.Position = pos
	return ident
}

func (p *Parser) parseFunctionCall(name string, pos token.Position) *ast.FunctionCall {
	fn := &ast.FunctionCall{
		Position: pos,
		Name:     name,
	}

	p.nextToken() // skip (

	if p.currentIs(token.DISTINCT) {
		fn.Distinct = true
		p.nextToken()
	}

	for !p.currentIs(token.RPAREN) && !p.currentIs(token.EOF) {
		var arg ast.Expression
		if p.currentIs(token.SELECT) {
			// exists(SELECT ...), view(SELECT ...)
			argPos := p.current.Pos
			query := p.parseSelectWithUnion()
			if query == nil {
				return nil
			}
			arg = &ast.Subquery{Position: argPos, Query: query}
		} else {
			arg = p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
		}
		fn.Arguments = append(fn.Arguments, arg)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	return fn
}

func (p *Parser) parseLiteral(typ ast.LiteralType) ast.Expression {
	lit := &ast.Literal{
		Position: p.current.Pos,
		Type:     typ,
		Value:    p.current.Value,
	}
	switch typ {
	case ast.LiteralBoolean:
		lit.Value = strings.ToLower(p.current.Value)
	case ast.LiteralNull:
		lit.Value = ""
	}
	p.nextToken()
	return lit
}

func (p *Parser) parseUnary(op string, prec int) ast.Expression {
	expr := &ast.UnaryExpr{
		Position: p.current.Pos,
		Op:       op,
	}
	p.nextToken()
	expr.Operand = p.parseExpression(prec)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedOrTuple() ast.Expression {
	pos := p.current.Pos
	p.nextToken() // skip (

	// Handle empty tuple ()
	if p.currentIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleExpr{Position: pos}
	}

	if p.currentIs(token.SELECT) {
		query := p.parseSelectWithUnion()
		if query == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.Subquery{
			Position: pos,
			Query:    query,
		}
	}

	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	// Check if it's a tuple
	if p.currentIs(token.COMMA) {
		tuple := &ast.TupleExpr{
			Position: pos,
			Elements: []ast.Expression{first},
		}
		for p.currentIs(token.COMMA) {
			p.nextToken()
			elem := p.parseExpression(LOWEST)
			if elem == nil {
				return nil
			}
			tuple.Elements = append(tuple.Elements, elem)
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return tuple
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	return first
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpr{
		Position: p.current.Pos,
		Left:     left,
		Op:       p.current.Value,
	}

	switch {
	case p.current.Token.IsKeyword():
		expr.Op = strings.ToUpper(p.current.Value)
	case p.currentIs(token.EQ):
		expr.Op = "="
	case p.currentIs(token.NEQ):
		expr.Op = "!="
	}

	prec := p.precedence(p.current.Token)
	p.nextToken()

	expr.Right = p.parseExpression(prec)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInExpression(left ast.Expression, global, not bool) ast.Expression {
	expr := &ast.InExpr{
		Position: p.current.Pos,
		Expr:     left,
		Not:      not,
		Global:   global,
	}

	p.nextToken() // skip IN

	if !p.currentIs(token.LPAREN) {
		// IN table_name
		operand := p.parseExpression(CALL)
		if operand == nil {
			return nil
		}
		expr.List = []ast.Expression{operand}
		return expr
	}

	pos := p.current.Pos
	p.nextToken() // skip (
	if p.currentIs(token.SELECT) {
		query := p.parseSelectWithUnion()
		if query == nil {
			return nil
		}
		expr.Query = &ast.Subquery{Position: pos, Query: query}
	} else {
		expr.List = p.parseExpressionList()
		if len(expr.List) == 0 {
			p.errorf(p.current.Pos, "expected expression, got %s", describe(p.current))
			return nil
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	return expr
}
