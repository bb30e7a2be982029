// Package parser implements a parser for ClickHouse SQL.
package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/lexer"
	"github.com/sqlc-dev/chqualify/token"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrSyntax is returned for every malformed construct, carrying its
	// source position.
	ErrSyntax = errors.NewKind("%s at line %d, column %d")
	// ErrParse wraps the first syntax error of an input that failed to
	// parse, together with the total number of errors collected.
	ErrParse = errors.NewKind("parse errors (%d)")
)

// Parser parses ClickHouse SQL statements.
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Item
	peek    lexer.Item
	errors  []error
}

// New creates a new Parser from an io.Reader.
func New(r io.Reader) *Parser {
	p := &Parser{
		lexer: lexer.New(r),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	for {
		p.peek = p.lexer.NextToken()
		if p.peek.Token != token.COMMENT {
			break
		}
	}
}

func (p *Parser) currentIs(t token.Token) bool {
	return p.current.Token == t
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek.Token == t
}

// currentWord reports whether the current token is the given word, which
// ClickHouse treats as a keyword only in specific positions.
func (p *Parser) currentWord(word string) bool {
	return p.currentIs(token.IDENT) && !p.current.Quoted && strings.EqualFold(p.current.Value, word)
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, ErrSyntax.New(fmt.Sprintf(format, args...), pos.Line, pos.Column))
}

func (p *Parser) unexpected() {
	p.errorf(p.current.Pos, "unexpected %s", describe(p.current))
}

func describe(item lexer.Item) string {
	switch item.Token {
	case token.IDENT, token.NUMBER:
		return fmt.Sprintf("%s %q", item.Token, item.Value)
	case token.STRING:
		return fmt.Sprintf("STRING '%s'", item.Value)
	}
	return item.Token.String()
}

func (p *Parser) expect(t token.Token) bool {
	if p.currentIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.current.Pos, "expected %s, got %s", t, describe(p.current))
	return false
}

// Parse parses SQL statements from the input.
func Parse(ctx context.Context, r io.Reader) ([]ast.Statement, error) {
	p := New(r)
	return p.ParseStatements(ctx)
}

// ParseString parses SQL statements from a string.
func ParseString(ctx context.Context, sql string) ([]ast.Statement, error) {
	return Parse(ctx, strings.NewReader(sql))
}

// ParseFile parses SQL statements from the named file.
func ParseFile(ctx context.Context, path string) ([]ast.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(ctx, f)
}

// ParseStatements parses multiple SQL statements.
func (p *Parser) ParseStatements(ctx context.Context) ([]ast.Statement, error) {
	var statements []ast.Statement

	for !p.currentIs(token.EOF) {
		select {
		case <-ctx.Done():
			return statements, ctx.Err()
		default:
		}

		// Skip semicolons between statements
		if p.currentIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		errs := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil && len(p.errors) == errs {
			statements = append(statements, stmt)
		}

		if !p.currentIs(token.SEMICOLON) && !p.currentIs(token.EOF) {
			if len(p.errors) == errs {
				p.errorf(p.current.Pos, "expected end of statement, got %s", describe(p.current))
			}
			p.skipStatement()
		}
	}

	if len(p.errors) > 0 {
		return statements, ErrParse.Wrap(p.errors[0], len(p.errors))
	}
	return statements, nil
}

// skipStatement advances to the next semicolon so one malformed statement
// does not cascade into errors for the statements after it.
func (p *Parser) skipStatement() {
	for !p.currentIs(token.SEMICOLON) && !p.currentIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Token {
	case token.SELECT, token.LPAREN:
		if sel := p.parseSelectWithUnion(); sel != nil {
			return sel
		}
		return nil
	case token.INSERT:
		return p.parseInsert()
	case token.CREATE:
		return p.parseCreate()
	case token.DROP:
		return p.parseDrop()
	case token.ALTER:
		return p.parseAlter()
	case token.TRUNCATE:
		return p.parseTruncate()
	case token.OPTIMIZE:
		return p.parseOptimize()
	case token.EXISTS:
		return p.parseExists()
	case token.CHECK:
		return p.parseCheck()
	case token.SHOW:
		return p.parseShow()
	case token.RENAME:
		return p.parseRename()
	case token.USE:
		return p.parseUse()
	default:
		p.unexpected()
		p.nextToken()
		return nil
	}
}

// isName reports whether the current token can serve as a database, table
// or column name. Keywords are accepted when they are followed by a dot so
// that names such as default.t parse.
func (p *Parser) isName() bool {
	return p.currentIs(token.IDENT) || (p.current.Token.IsKeyword() && p.peekIs(token.DOT))
}

// parseName consumes a name in a position where any word is a name.
func (p *Parser) parseName() (string, bool) {
	if p.currentIs(token.IDENT) || p.current.Token.IsKeyword() {
		name := p.current.Value
		p.nextToken()
		return name, true
	}
	p.errorf(p.current.Pos, "expected name, got %s", describe(p.current))
	return "", false
}

// parseDatabaseAndTable parses [db.]name.
func (p *Parser) parseDatabaseAndTable() (database, table string, ok bool) {
	name, ok := p.parseName()
	if !ok {
		return "", "", false
	}
	if !p.currentIs(token.DOT) {
		return "", name, true
	}
	p.nextToken() // skip .
	table, ok = p.parseName()
	return name, table, ok
}

func (p *Parser) parseIfExists() bool {
	if p.currentIs(token.IF) && p.peekIs(token.EXISTS) {
		p.nextToken()
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) parseIfNotExists() bool {
	if !p.currentIs(token.IF) {
		return false
	}
	p.nextToken() // skip IF
	if !p.expect(token.NOT) || !p.expect(token.EXISTS) {
		return false
	}
	return true
}

// parseOnCluster parses an optional ON CLUSTER name.
func (p *Parser) parseOnCluster() string {
	if !p.currentIs(token.ON) || !p.peekIs(token.CLUSTER) {
		return ""
	}
	p.nextToken() // skip ON
	p.nextToken() // skip CLUSTER
	if p.currentIs(token.IDENT) || p.currentIs(token.STRING) {
		cluster := p.current.Value
		p.nextToken()
		return cluster
	}
	p.errorf(p.current.Pos, "expected cluster name, got %s", describe(p.current))
	return ""
}

// parseSelectWithUnion parses SELECT ... UNION ... queries
func (p *Parser) parseSelectWithUnion() *ast.SelectUnion {
	query := &ast.SelectUnion{
		Position: p.current.Pos,
	}

	sel := p.parseSelectOperand()
	if sel == nil {
		return nil
	}
	query.Selects = append(query.Selects, sel...)

	for p.currentIs(token.UNION) {
		p.nextToken() // skip UNION
		mode := ""
		switch p.current.Token {
		case token.ALL:
			mode = "ALL"
			p.nextToken()
		case token.DISTINCT:
			mode = "DISTINCT"
			p.nextToken()
		}
		sel := p.parseSelectOperand()
		if sel == nil {
			return nil
		}
		for range sel {
			query.UnionModes = append(query.UnionModes, mode)
		}
		query.Selects = append(query.Selects, sel...)
	}

	return query
}

// parseSelectOperand parses one side of a UNION. A parenthesized union is
// flattened into its selects.
func (p *Parser) parseSelectOperand() []*ast.SelectQuery {
	if p.currentIs(token.LPAREN) {
		p.nextToken() // skip (
		inner := p.parseSelectWithUnion()
		if inner == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return inner.Selects
	}
	sel := p.parseSelect()
	if sel == nil {
		return nil
	}
	return []*ast.SelectQuery{sel}
}

func (p *Parser) parseSelect() *ast.SelectQuery {
	sel := &ast.SelectQuery{
		Position: p.current.Pos,
	}

	if !p.expect(token.SELECT) {
		return nil
	}

	// Handle DISTINCT
	if p.currentIs(token.DISTINCT) {
		sel.Distinct = true
		p.nextToken()
	}

	sel.Columns = p.parseSelectList()
	if len(sel.Columns) == 0 {
		p.errorf(p.current.Pos, "expected select list, got %s", describe(p.current))
		return nil
	}

	// Parse FROM clause
	if p.currentIs(token.FROM) {
		p.nextToken()
		sel.Tables = p.parseTableList()
		if sel.Tables == nil {
			return nil
		}
	}

	if p.currentIs(token.PREWHERE) {
		p.nextToken()
		sel.PreWhere = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.WHERE) {
		p.nextToken()
		sel.Where = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.GROUP) {
		p.nextToken()
		if !p.expect(token.BY) {
			return nil
		}
		sel.GroupBy = p.parseExpressionList()
	}

	if p.currentIs(token.HAVING) {
		p.nextToken()
		sel.Having = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.ORDER) {
		p.nextToken()
		if !p.expect(token.BY) {
			return nil
		}
		sel.OrderBy = p.parseOrderByList()
	}

	if p.currentIs(token.LIMIT) {
		p.nextToken()
		sel.Limit = p.parseExpression(LOWEST)

		// LIMIT n, m syntax (offset, limit)
		if p.currentIs(token.COMMA) {
			p.nextToken()
			sel.Offset = sel.Limit
			sel.Limit = p.parseExpression(LOWEST)
		}
	}

	if p.currentIs(token.OFFSET) {
		p.nextToken()
		sel.Offset = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.SETTINGS) {
		p.nextToken()
		sel.Settings = p.parseSettingsList()
	}

	if p.currentIs(token.FORMAT) {
		p.nextToken()
		if !p.currentIs(token.IDENT) {
			p.errorf(p.current.Pos, "expected format name, got %s", describe(p.current))
			return nil
		}
		sel.Format = p.current.Value
		p.nextToken()
	}

	return sel
}

func (p *Parser) parseTableList() *ast.TableList {
	tables := &ast.TableList{
		Position: p.current.Pos,
	}

	elem := &ast.TableListElement{
		Position:        p.current.Pos,
		TableExpression: p.parseTableExpression(),
	}
	if elem.TableExpression == nil {
		return nil
	}
	tables.Elements = append(tables.Elements, elem)

	for p.isJoinKeyword() {
		elem := p.parseTableElementWithJoin()
		if elem == nil {
			return nil
		}
		tables.Elements = append(tables.Elements, elem)
	}

	return tables
}

func (p *Parser) isJoinKeyword() bool {
	switch p.current.Token {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS,
		token.GLOBAL, token.ANY, token.ALL, token.ASOF, token.SEMI, token.ANTI:
		return true
	case token.COMMA:
		return true
	}
	return false
}

func (p *Parser) parseTableElementWithJoin() *ast.TableListElement {
	elem := &ast.TableListElement{
		Position: p.current.Pos,
	}

	join := &ast.TableJoin{
		Position: p.current.Pos,
	}

	// Handle comma join (implicit cross join)
	if p.currentIs(token.COMMA) {
		p.nextToken()
		join.Comma = true
		elem.TableExpression = p.parseTableExpression()
		if elem.TableExpression == nil {
			return nil
		}
		elem.Join = join
		return elem
	}

	if p.currentIs(token.GLOBAL) {
		join.Global = true
		p.nextToken()
	}

	switch p.current.Token {
	case token.ANY:
		join.Strictness = ast.JoinStrictAny
		p.nextToken()
	case token.ALL:
		join.Strictness = ast.JoinStrictAll
		p.nextToken()
	case token.ASOF:
		join.Strictness = ast.JoinStrictAsof
		p.nextToken()
	case token.SEMI:
		join.Strictness = ast.JoinStrictSemi
		p.nextToken()
	case token.ANTI:
		join.Strictness = ast.JoinStrictAnti
		p.nextToken()
	}

	switch p.current.Token {
	case token.INNER:
		join.Type = ast.JoinInner
		p.nextToken()
	case token.LEFT:
		join.Type = ast.JoinLeft
		p.nextToken()
	case token.RIGHT:
		join.Type = ast.JoinRight
		p.nextToken()
	case token.FULL:
		join.Type = ast.JoinFull
		p.nextToken()
	case token.CROSS:
		join.Type = ast.JoinCross
		p.nextToken()
	}
	if join.Type == ast.JoinLeft || join.Type == ast.JoinRight || join.Type == ast.JoinFull {
		if p.currentIs(token.OUTER) {
			p.nextToken()
		}
	}

	if !p.expect(token.JOIN) {
		return nil
	}

	elem.TableExpression = p.parseTableExpression()
	if elem.TableExpression == nil {
		return nil
	}

	// Parse ON or USING clause
	if p.currentIs(token.ON) {
		p.nextToken()
		join.On = p.parseExpression(LOWEST)
	} else if p.currentIs(token.USING) {
		p.nextToken()
		if p.currentIs(token.LPAREN) {
			p.nextToken()
			join.Using = p.parseExpressionList()
			p.expect(token.RPAREN)
		} else {
			join.Using = p.parseExpressionList()
		}
	}

	elem.Join = join
	return elem
}

func (p *Parser) parseTableExpression() *ast.TableExpression {
	expr := &ast.TableExpression{
		Position: p.current.Pos,
	}

	switch {
	case p.currentIs(token.LPAREN):
		pos := p.current.Pos
		p.nextToken() // skip (
		if !p.currentIs(token.SELECT) && !p.currentIs(token.LPAREN) {
			p.errorf(p.current.Pos, "expected subquery, got %s", describe(p.current))
			return nil
		}
		query := p.parseSelectWithUnion()
		if query == nil || !p.expect(token.RPAREN) {
			return nil
		}
		expr.Subquery = &ast.Subquery{Position: pos, Query: query}
	case p.isName():
		pos := p.current.Pos
		components := []string{p.current.Value}
		p.nextToken()

		if p.currentIs(token.LPAREN) {
			// Table function
			expr.Function = p.parseFunctionCall(components[0], pos)
			if expr.Function == nil {
				return nil
			}
			break
		}

		// db.table, and longer names which only the qualifier rejects
		for p.currentIs(token.DOT) {
			p.nextToken()
			name, ok := p.parseName()
			if !ok {
				return nil
			}
			components = append(components, name)
		}
		expr.QualifiedName = ast.NewCompoundIdentifier(components...)
		expr.QualifiedName.Position = pos
	default:
		p.errorf(p.current.Pos, "expected table, got %s", describe(p.current))
		return nil
	}

	if p.currentIs(token.FINAL) {
		expr.Final = true
		p.nextToken()
	}

	// Handle alias
	if p.currentIs(token.AS) {
		p.nextToken()
		alias, ok := p.parseName()
		if !ok {
			return nil
		}
		expr.Alias = alias
	} else if p.currentIs(token.IDENT) {
		expr.Alias = p.current.Value
		p.nextToken()
	}

	return expr
}

func (p *Parser) parseOrderByList() []*ast.OrderByElement {
	var elements []*ast.OrderByElement

	for {
		elem := &ast.OrderByElement{
			Position:   p.current.Pos,
			Expression: p.parseExpression(LOWEST),
		}
		if elem.Expression == nil {
			return elements
		}

		if p.currentIs(token.ASC) {
			p.nextToken()
		} else if p.currentIs(token.DESC) {
			elem.Descending = true
			p.nextToken()
		}

		elements = append(elements, elem)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return elements
}

func (p *Parser) parseSettingsList() []*ast.SettingExpr {
	var settings []*ast.SettingExpr

	for {
		if !p.currentIs(token.IDENT) {
			p.errorf(p.current.Pos, "expected setting name, got %s", describe(p.current))
			break
		}

		setting := &ast.SettingExpr{
			Position: p.current.Pos,
			Name:     p.current.Value,
		}
		p.nextToken()

		if !p.expect(token.EQ) {
			break
		}

		setting.Value = p.parseExpression(LOWEST)
		settings = append(settings, setting)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return settings
}

func (p *Parser) parseInsert() *ast.InsertStatement {
	ins := &ast.InsertStatement{
		Position: p.current.Pos,
	}

	p.nextToken() // skip INSERT

	if !p.expect(token.INTO) {
		return nil
	}

	// Skip optional TABLE keyword
	if p.currentIs(token.TABLE) {
		p.nextToken()
	}

	var ok bool
	ins.Database, ins.Table, ok = p.parseDatabaseAndTable()
	if !ok {
		return nil
	}

	// Parse column list
	if p.currentIs(token.LPAREN) {
		p.nextToken()
		for !p.currentIs(token.RPAREN) && !p.currentIs(token.EOF) {
			pos := p.current.Pos
			name, ok := p.parseName()
			if !ok {
				return nil
			}
			col := ast.NewIdentifier(name)
			col.Position = pos
			ins.Columns = append(ins.Columns, col)
			if !p.currentIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	switch {
	case p.currentIs(token.VALUES):
		p.nextToken()
		for {
			if !p.expect(token.LPAREN) {
				return nil
			}
			ins.Values = append(ins.Values, p.parseExpressionList())
			if !p.expect(token.RPAREN) {
				return nil
			}
			if !p.currentIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	case p.currentIs(token.SELECT), p.currentIs(token.LPAREN):
		ins.Select = p.parseSelectWithUnion()
		if ins.Select == nil {
			return nil
		}
	case p.currentIs(token.FORMAT):
		p.nextToken()
		if !p.currentIs(token.IDENT) {
			p.errorf(p.current.Pos, "expected format name, got %s", describe(p.current))
			return nil
		}
		ins.Format = p.current.Value
		p.nextToken()
	default:
		p.errorf(p.current.Pos, "expected VALUES, SELECT or FORMAT, got %s", describe(p.current))
		return nil
	}

	return ins
}

func (p *Parser) parseCreate() *ast.QualifiedStatement {
	create := &ast.QualifiedStatement{
		Position: p.current.Pos,
	}

	p.nextToken() // skip CREATE

	// Handle OR REPLACE
	if p.currentIs(token.OR) {
		p.nextToken()
		if !p.expect(token.REPLACE) {
			return nil
		}
		create.OrReplace = true
	}

	if p.currentIs(token.TEMPORARY) {
		create.Temporary = true
		p.nextToken()
	}

	// What are we creating?
	switch p.current.Token {
	case token.TABLE:
		create.Type = ast.CreateTable
	case token.DATABASE:
		create.Type = ast.CreateDatabase
	case token.VIEW:
		create.Type = ast.CreateView
	case token.MATERIALIZED:
		p.nextToken()
		if !p.currentIs(token.VIEW) {
			p.errorf(p.current.Pos, "expected VIEW, got %s", describe(p.current))
			return nil
		}
		create.Type = ast.CreateMaterializedView
	default:
		p.errorf(p.current.Pos, "expected TABLE, DATABASE, VIEW or MATERIALIZED VIEW after CREATE, got %s", describe(p.current))
		return nil
	}
	p.nextToken()

	create.IfNotExists = p.parseIfNotExists()

	if create.Type == ast.CreateDatabase {
		name, ok := p.parseName()
		if !ok {
			return nil
		}
		create.Database = name
		create.OnCluster = p.parseOnCluster()
		if p.currentIs(token.ENGINE) {
			create.Engine = p.parseEngineClause()
			if create.Engine == nil {
				return nil
			}
		}
		return create
	}

	var ok bool
	create.Database, create.Table, ok = p.parseDatabaseAndTable()
	if !ok {
		return nil
	}
	create.OnCluster = p.parseOnCluster()

	// Parse column definitions
	if p.currentIs(token.LPAREN) && create.Type == ast.CreateTable {
		p.nextToken()
		for !p.currentIs(token.RPAREN) && !p.currentIs(token.EOF) {
			col := p.parseColumnDeclaration()
			if col == nil {
				return nil
			}
			create.Columns = append(create.Columns, col)
			if !p.currentIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	if !p.parseTableOptions(create) {
		return nil
	}

	if create.Type == ast.CreateMaterializedView && p.currentIs(token.POPULATE) {
		create.Populate = true
		p.nextToken()
	}

	// Parse AS SELECT
	if p.currentIs(token.AS) {
		p.nextToken()
		create.AsSelect = p.parseSelectWithUnion()
		if create.AsSelect == nil {
			return nil
		}
	} else if create.Type == ast.CreateView || create.Type == ast.CreateMaterializedView {
		p.errorf(p.current.Pos, "expected AS SELECT, got %s", describe(p.current))
		return nil
	}

	return create
}

// parseTableOptions parses the storage clauses that may follow a table
// or materialized view definition.
func (p *Parser) parseTableOptions(create *ast.QualifiedStatement) bool {
	for {
		switch p.current.Token {
		case token.ENGINE:
			create.Engine = p.parseEngineClause()
			if create.Engine == nil {
				return false
			}
		case token.ORDER:
			p.nextToken()
			if !p.expect(token.BY) {
				return false
			}
			create.OrderBy = p.parseKeyExpression()
		case token.PARTITION:
			p.nextToken()
			if !p.expect(token.BY) {
				return false
			}
			create.PartitionBy = p.parseExpression(LOWEST)
		case token.PRIMARY:
			p.nextToken()
			if !p.expect(token.KEY) {
				return false
			}
			create.PrimaryKey = p.parseKeyExpression()
		case token.SETTINGS:
			p.nextToken()
			create.Settings = p.parseSettingsList()
		default:
			return true
		}
	}
}

// parseKeyExpression parses `expr` or `(expr, ...)` as used by ORDER BY
// and PRIMARY KEY in table definitions.
func (p *Parser) parseKeyExpression() []ast.Expression {
	expr := p.parseExpression(LOWEST)
	if tuple, ok := expr.(*ast.TupleExpr); ok {
		return tuple.Elements
	}
	if expr == nil {
		return nil
	}
	return []ast.Expression{expr}
}

func (p *Parser) parseColumnDeclaration() *ast.ColumnDeclaration {
	col := &ast.ColumnDeclaration{
		Position: p.current.Pos,
	}

	name, ok := p.parseName()
	if !ok {
		return nil
	}
	col.Name = name

	if p.currentIs(token.IDENT) && !p.currentWord("ALIAS") {
		col.Type = p.parseDataType()
		if col.Type == nil {
			return nil
		}
	}

	// Parse DEFAULT/MATERIALIZED/ALIAS
	switch {
	case p.currentIs(token.DEFAULT):
		col.DefaultKind = "DEFAULT"
	case p.currentIs(token.MATERIALIZED):
		col.DefaultKind = "MATERIALIZED"
	case p.currentWord("ALIAS"):
		col.DefaultKind = "ALIAS"
	}
	if col.DefaultKind != "" {
		p.nextToken()
		col.Default = p.parseExpression(LOWEST)
		if col.Default == nil {
			return nil
		}
	}

	if col.Type == nil && col.Default == nil {
		p.errorf(col.Position, "column %s has neither a type nor a default", col.Name)
		return nil
	}
	return col
}

func (p *Parser) parseDataType() *ast.DataType {
	if !p.currentIs(token.IDENT) {
		p.errorf(p.current.Pos, "expected data type, got %s", describe(p.current))
		return nil
	}

	dt := &ast.DataType{
		Position: p.current.Pos,
		Name:     p.current.Value,
	}
	p.nextToken()

	// Parse type parameters
	if p.currentIs(token.LPAREN) {
		p.nextToken()
		for !p.currentIs(token.RPAREN) && !p.currentIs(token.EOF) {
			// Could be another data type or an expression
			if p.currentIs(token.IDENT) && (p.peekIs(token.LPAREN) || isDataTypeName(p.current.Value)) {
				param := p.parseDataType()
				if param == nil {
					return nil
				}
				dt.Parameters = append(dt.Parameters, param)
			} else {
				dt.Parameters = append(dt.Parameters, p.parseExpression(LOWEST))
			}
			if !p.currentIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	return dt
}

var dataTypeNames = map[string]bool{
	"INT8": true, "INT16": true, "INT32": true, "INT64": true, "INT128": true, "INT256": true,
	"UINT8": true, "UINT16": true, "UINT32": true, "UINT64": true, "UINT128": true, "UINT256": true,
	"FLOAT32": true, "FLOAT64": true,
	"DECIMAL": true, "DECIMAL32": true, "DECIMAL64": true, "DECIMAL128": true, "DECIMAL256": true,
	"STRING": true, "FIXEDSTRING": true,
	"UUID": true, "DATE": true, "DATE32": true, "DATETIME": true, "DATETIME64": true,
	"ENUM": true, "ENUM8": true, "ENUM16": true,
	"ARRAY": true, "TUPLE": true, "MAP": true, "NESTED": true,
	"NULLABLE": true, "LOWCARDINALITY": true,
	"BOOL": true, "BOOLEAN": true,
	"IPV4": true, "IPV6": true,
	"NOTHING": true,
}

func isDataTypeName(name string) bool {
	return dataTypeNames[strings.ToUpper(name)]
}

func (p *Parser) parseEngineClause() *ast.EngineClause {
	p.nextToken() // skip ENGINE
	if p.currentIs(token.EQ) {
		p.nextToken()
	}

	engine := &ast.EngineClause{
		Position: p.current.Pos,
	}

	if !p.currentIs(token.IDENT) {
		p.errorf(p.current.Pos, "expected engine name, got %s", describe(p.current))
		return nil
	}
	engine.Name = p.current.Value
	p.nextToken()

	if p.currentIs(token.LPAREN) {
		engine.HasParentheses = true
		p.nextToken()
		if !p.currentIs(token.RPAREN) {
			engine.Parameters = p.parseExpressionList()
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	return engine
}

func (p *Parser) parseDrop() *ast.QualifiedStatement {
	drop := &ast.QualifiedStatement{
		Position: p.current.Pos,
	}

	p.nextToken() // skip DROP

	if p.currentIs(token.TEMPORARY) {
		drop.Temporary = true
		p.nextToken()
	}

	// What are we dropping?
	switch p.current.Token {
	case token.TABLE:
		drop.Type = ast.DropTable
	case token.DATABASE:
		drop.Type = ast.DropDatabase
	case token.VIEW:
		drop.Type = ast.DropView
	default:
		p.errorf(p.current.Pos, "expected TABLE, DATABASE or VIEW after DROP, got %s", describe(p.current))
		return nil
	}
	p.nextToken()

	drop.IfExists = p.parseIfExists()

	if drop.Type == ast.DropDatabase {
		name, ok := p.parseName()
		if !ok {
			return nil
		}
		drop.Database = name
	} else {
		var ok bool
		drop.Database, drop.Table, ok = p.parseDatabaseAndTable()
		if !ok {
			return nil
		}
	}

	drop.OnCluster = p.parseOnCluster()

	if p.currentWord("SYNC") {
		drop.Sync = true
		p.nextToken()
	}

	return drop
}

func (p *Parser) parseAlter() *ast.QualifiedStatement {
	alter := &ast.QualifiedStatement{
		Position: p.current.Pos,
		Type:     ast.AlterTable,
	}

	p.nextToken() // skip ALTER

	if !p.expect(token.TABLE) {
		return nil
	}

	var ok bool
	alter.Database, alter.Table, ok = p.parseDatabaseAndTable()
	if !ok {
		return nil
	}

	alter.OnCluster = p.parseOnCluster()

	for {
		cmd := p.parseAlterCommand()
		if cmd == nil {
			return nil
		}
		alter.Commands = append(alter.Commands, cmd)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return alter
}

func (p *Parser) parseAlterCommand() *ast.AlterCommand {
	cmd := &ast.AlterCommand{
		Position: p.current.Pos,
	}

	switch p.current.Token {
	case token.ADD:
		cmd.Type = ast.AlterAddColumn
	case token.DROP:
		cmd.Type = ast.AlterDropColumn
	case token.MODIFY:
		cmd.Type = ast.AlterModifyColumn
	default:
		p.errorf(p.current.Pos, "expected ADD, DROP or MODIFY, got %s", describe(p.current))
		return nil
	}
	p.nextToken()

	if !p.expect(token.COLUMN) {
		return nil
	}

	switch cmd.Type {
	case ast.AlterAddColumn:
		cmd.IfNotExists = p.parseIfNotExists()
		cmd.Column = p.parseColumnDeclaration()
		if cmd.Column == nil {
			return nil
		}
		if p.currentIs(token.AFTER) {
			p.nextToken()
			name, ok := p.parseName()
			if !ok {
				return nil
			}
			cmd.AfterColumn = name
		}
	case ast.AlterDropColumn:
		cmd.IfExists = p.parseIfExists()
		name, ok := p.parseName()
		if !ok {
			return nil
		}
		cmd.ColumnName = name
	case ast.AlterModifyColumn:
		cmd.IfExists = p.parseIfExists()
		cmd.Column = p.parseColumnDeclaration()
		if cmd.Column == nil {
			return nil
		}
	}

	return cmd
}

// parseTableTarget parses the common tail `[TEMPORARY] [TABLE] [IF EXISTS]
// [db.]name [ON CLUSTER c]` shared by the single-table statements.
func (p *Parser) parseTableTarget(stmt *ast.QualifiedStatement, tableRequired bool) bool {
	if p.currentIs(token.TEMPORARY) {
		stmt.Temporary = true
		p.nextToken()
	}
	if p.currentIs(token.TABLE) {
		p.nextToken()
	} else if tableRequired {
		p.errorf(p.current.Pos, "expected TABLE, got %s", describe(p.current))
		return false
	}
	stmt.IfExists = p.parseIfExists()

	var ok bool
	stmt.Database, stmt.Table, ok = p.parseDatabaseAndTable()
	if !ok {
		return false
	}
	stmt.OnCluster = p.parseOnCluster()
	return true
}

func (p *Parser) parseTruncate() *ast.QualifiedStatement {
	trunc := &ast.QualifiedStatement{
		Position: p.current.Pos,
		Type:     ast.TruncateTable,
	}

	p.nextToken() // skip TRUNCATE

	if !p.parseTableTarget(trunc, false) {
		return nil
	}
	return trunc
}

func (p *Parser) parseOptimize() *ast.QualifiedStatement {
	opt := &ast.QualifiedStatement{
		Position: p.current.Pos,
		Type:     ast.OptimizeTable,
	}

	p.nextToken() // skip OPTIMIZE

	if !p.parseTableTarget(opt, true) {
		return nil
	}

	if p.currentIs(token.PARTITION) {
		p.nextToken()
		opt.Partition = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.FINAL) {
		opt.Final = true
		p.nextToken()
	}

	return opt
}

func (p *Parser) parseExists() *ast.QualifiedStatement {
	exists := &ast.QualifiedStatement{
		Position: p.current.Pos,
		Type:     ast.ExistsTable,
	}

	p.nextToken() // skip EXISTS

	if !p.parseTableTarget(exists, false) {
		return nil
	}
	return exists
}

func (p *Parser) parseCheck() *ast.QualifiedStatement {
	check := &ast.QualifiedStatement{
		Position: p.current.Pos,
		Type:     ast.CheckTable,
	}

	p.nextToken() // skip CHECK

	if !p.parseTableTarget(check, true) {
		return nil
	}

	if p.currentIs(token.PARTITION) {
		p.nextToken()
		check.Partition = p.parseExpression(LOWEST)
	}
	return check
}

func (p *Parser) parseShow() *ast.QualifiedStatement {
	show := &ast.QualifiedStatement{
		Position: p.current.Pos,
		Type:     ast.ShowCreateTable,
	}

	p.nextToken() // skip SHOW

	if !p.expect(token.CREATE) {
		return nil
	}

	if !p.parseTableTarget(show, false) {
		return nil
	}
	return show
}

func (p *Parser) parseRename() *ast.RenameStatement {
	rename := &ast.RenameStatement{
		Position: p.current.Pos,
	}

	p.nextToken() // skip RENAME

	if !p.expect(token.TABLE) {
		return nil
	}

	for {
		elem := &ast.RenameElement{}
		var ok bool
		elem.From.Database, elem.From.Table, ok = p.parseDatabaseAndTable()
		if !ok {
			return nil
		}
		if !p.expect(token.TO) {
			return nil
		}
		elem.To.Database, elem.To.Table, ok = p.parseDatabaseAndTable()
		if !ok {
			return nil
		}
		rename.Elements = append(rename.Elements, elem)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	rename.OnCluster = p.parseOnCluster()
	return rename
}

func (p *Parser) parseUse() *ast.UseStatement {
	use := &ast.UseStatement{
		Position: p.current.Pos,
	}

	p.nextToken() // skip USE

	name, ok := p.parseName()
	if !ok {
		return nil
	}
	use.Database = name
	return use
}
