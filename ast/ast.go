// Package ast defines the abstract syntax tree for ClickHouse SQL.
//
// Every node exposes its typed fields plus an ordered list of generic
// children. Generic children are what untyped traversals such as Walk and
// Explain follow; typed traversals descend through the fields directly.
package ast

import (
	"strings"

	"github.com/sqlc-dev/chqualify/token"
)

// Node is the interface implemented by all AST nodes. The set of node types
// is closed: only types in this package implement it.
type Node interface {
	Pos() token.Position
	Kind() Kind
	// Children returns the generic children of the node in source order.
	// The returned slice is freshly allocated; replacing one of its
	// elements does not change the tree.
	Children() []Node
	node()
}

// Statement is the interface implemented by all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression is the interface implemented by all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

func appendExprs(children []Node, exprs []Expression) []Node {
	for _, e := range exprs {
		if e != nil {
			children = append(children, e)
		}
	}
	return children
}

func appendExpr(children []Node, e Expression) []Node {
	if e != nil {
		children = append(children, e)
	}
	return children
}

// -----------------------------------------------------------------------------
// Select statements

// SelectUnion represents a SELECT query possibly combined with UNION.
// It is the root of every SELECT-shaped statement.
type SelectUnion struct {
	Position   token.Position `json:"-"`
	Selects    []*SelectQuery `json:"selects"`
	UnionModes []string       `json:"union_modes,omitempty"` // "ALL", "DISTINCT", or "" between each pair of selects
}

func (s *SelectUnion) Pos() token.Position { return s.Position }
func (s *SelectUnion) Kind() Kind          { return KindSelectUnion }
func (s *SelectUnion) Children() []Node {
	children := make([]Node, 0, len(s.Selects))
	for _, sel := range s.Selects {
		if sel != nil {
			children = append(children, sel)
		}
	}
	return children
}
func (s *SelectUnion) node()          {}
func (s *SelectUnion) statementNode() {}

// SelectQuery represents a single SELECT block.
type SelectQuery struct {
	Position token.Position    `json:"-"`
	Distinct bool              `json:"distinct,omitempty"`
	Columns  []Expression      `json:"columns"`
	Tables   *TableList        `json:"tables,omitempty"`
	PreWhere Expression        `json:"prewhere,omitempty"`
	Where    Expression        `json:"where,omitempty"`
	GroupBy  []Expression      `json:"group_by,omitempty"`
	Having   Expression        `json:"having,omitempty"`
	OrderBy  []*OrderByElement `json:"order_by,omitempty"`
	Limit    Expression        `json:"limit,omitempty"`
	Offset   Expression        `json:"offset,omitempty"`
	Settings []*SettingExpr    `json:"settings,omitempty"`
	Format   string            `json:"format,omitempty"`
}

func (s *SelectQuery) Pos() token.Position { return s.Position }
func (s *SelectQuery) Kind() Kind          { return KindSelectQuery }
func (s *SelectQuery) Children() []Node {
	children := appendExprs(nil, s.Columns)
	if s.Tables != nil {
		children = append(children, s.Tables)
	}
	children = appendExpr(children, s.PreWhere)
	children = appendExpr(children, s.Where)
	children = appendExprs(children, s.GroupBy)
	children = appendExpr(children, s.Having)
	for _, o := range s.OrderBy {
		children = append(children, o)
	}
	children = appendExpr(children, s.Limit)
	children = appendExpr(children, s.Offset)
	for _, st := range s.Settings {
		children = append(children, st)
	}
	return children
}
func (s *SelectQuery) node()          {}
func (s *SelectQuery) statementNode() {}

// TableList represents the FROM clause of a SELECT: the first table and
// every joined table after it.
type TableList struct {
	Position token.Position      `json:"-"`
	Elements []*TableListElement `json:"elements"`
}

func (t *TableList) Pos() token.Position { return t.Position }
func (t *TableList) Kind() Kind          { return KindTableList }
func (t *TableList) Children() []Node {
	children := make([]Node, 0, len(t.Elements))
	for _, e := range t.Elements {
		if e != nil {
			children = append(children, e)
		}
	}
	return children
}
func (t *TableList) node() {}

// TableListElement represents one FROM clause item and the join that
// attaches it to the items before it.
type TableListElement struct {
	Position        token.Position   `json:"-"`
	TableExpression *TableExpression `json:"table_expression,omitempty"`
	Join            *TableJoin       `json:"join,omitempty"`
}

func (t *TableListElement) Pos() token.Position { return t.Position }
func (t *TableListElement) Kind() Kind          { return KindTableListElement }
func (t *TableListElement) Children() []Node {
	var children []Node
	if t.TableExpression != nil {
		children = append(children, t.TableExpression)
	}
	if t.Join != nil {
		children = append(children, t.Join)
	}
	return children
}
func (t *TableListElement) node() {}

// TableExpression represents a table reference. Exactly one of
// QualifiedName, Subquery and Function is set.
type TableExpression struct {
	Position      token.Position `json:"-"`
	QualifiedName *Identifier    `json:"qualified_name,omitempty"`
	Subquery      *Subquery      `json:"subquery,omitempty"`
	Function      *FunctionCall  `json:"function,omitempty"`
	Alias         string         `json:"alias,omitempty"`
	Final         bool           `json:"final,omitempty"`
}

func (t *TableExpression) Pos() token.Position { return t.Position }
func (t *TableExpression) Kind() Kind          { return KindTableExpression }
func (t *TableExpression) Children() []Node {
	switch {
	case t.QualifiedName != nil:
		return []Node{t.QualifiedName}
	case t.Subquery != nil:
		return []Node{t.Subquery}
	case t.Function != nil:
		return []Node{t.Function}
	}
	return nil
}
func (t *TableExpression) node() {}

// TableJoin represents the JOIN clause attached to a table list element.
type TableJoin struct {
	Position   token.Position `json:"-"`
	Comma      bool           `json:"comma,omitempty"` // implicit cross join: FROM a, b
	Global     bool           `json:"global,omitempty"`
	Strictness JoinStrictness `json:"strictness,omitempty"`
	Type       JoinType       `json:"type,omitempty"`
	On         Expression     `json:"on,omitempty"`
	Using      []Expression   `json:"using,omitempty"`
}

func (t *TableJoin) Pos() token.Position { return t.Position }
func (t *TableJoin) Kind() Kind          { return KindOther }
func (t *TableJoin) Children() []Node {
	children := appendExpr(nil, t.On)
	return appendExprs(children, t.Using)
}
func (t *TableJoin) node() {}

// JoinType represents the type of join.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// JoinStrictness represents the join strictness.
type JoinStrictness string

const (
	JoinStrictAny  JoinStrictness = "ANY"
	JoinStrictAll  JoinStrictness = "ALL"
	JoinStrictAsof JoinStrictness = "ASOF"
	JoinStrictSemi JoinStrictness = "SEMI"
	JoinStrictAnti JoinStrictness = "ANTI"
)

// OrderByElement represents an ORDER BY element.
type OrderByElement struct {
	Position   token.Position `json:"-"`
	Expression Expression     `json:"expression"`
	Descending bool           `json:"descending,omitempty"`
}

func (o *OrderByElement) Pos() token.Position { return o.Position }
func (o *OrderByElement) Kind() Kind          { return KindOther }
func (o *OrderByElement) Children() []Node    { return appendExpr(nil, o.Expression) }
func (o *OrderByElement) node()               {}

// SettingExpr represents a setting expression.
type SettingExpr struct {
	Position token.Position `json:"-"`
	Name     string         `json:"name"`
	Value    Expression     `json:"value"`
}

func (s *SettingExpr) Pos() token.Position { return s.Position }
func (s *SettingExpr) Kind() Kind          { return KindOther }
func (s *SettingExpr) Children() []Node    { return appendExpr(nil, s.Value) }
func (s *SettingExpr) node()               {}

// -----------------------------------------------------------------------------
// Definition statements

// StatementType names the concrete statement a QualifiedStatement stands for.
type StatementType string

const (
	CreateTable            StatementType = "CREATE TABLE"
	CreateDatabase         StatementType = "CREATE DATABASE"
	CreateView             StatementType = "CREATE VIEW"
	CreateMaterializedView StatementType = "CREATE MATERIALIZED VIEW"
	DropTable              StatementType = "DROP TABLE"
	DropDatabase           StatementType = "DROP DATABASE"
	DropView               StatementType = "DROP VIEW"
	AlterTable             StatementType = "ALTER TABLE"
	TruncateTable          StatementType = "TRUNCATE TABLE"
	OptimizeTable          StatementType = "OPTIMIZE TABLE"
	ExistsTable            StatementType = "EXISTS TABLE"
	CheckTable             StatementType = "CHECK TABLE"
	ShowCreateTable        StatementType = "SHOW CREATE TABLE"
)

// TargetsDatabase reports whether the statement names a database rather
// than a table.
func (t StatementType) TargetsDatabase() bool {
	return t == CreateDatabase || t == DropDatabase
}

// QualifiedStatement represents any definition statement with a single
// database/table target: CREATE, DROP, ALTER, TRUNCATE, OPTIMIZE, EXISTS,
// CHECK and SHOW CREATE.
type QualifiedStatement struct {
	Position    token.Position       `json:"-"`
	Type        StatementType        `json:"type"`
	Database    string               `json:"database,omitempty"`
	Table       string               `json:"table,omitempty"`
	OrReplace   bool                 `json:"or_replace,omitempty"`
	Temporary   bool                 `json:"temporary,omitempty"`
	IfExists    bool                 `json:"if_exists,omitempty"`
	IfNotExists bool                 `json:"if_not_exists,omitempty"`
	OnCluster   string               `json:"on_cluster,omitempty"`
	Columns     []*ColumnDeclaration `json:"columns,omitempty"`
	Engine      *EngineClause        `json:"engine,omitempty"`
	OrderBy     []Expression         `json:"order_by,omitempty"`
	PartitionBy Expression           `json:"partition_by,omitempty"`
	PrimaryKey  []Expression         `json:"primary_key,omitempty"`
	Settings    []*SettingExpr       `json:"settings,omitempty"`
	Populate    bool                 `json:"populate,omitempty"`
	AsSelect    *SelectUnion         `json:"as_select,omitempty"`
	Commands    []*AlterCommand      `json:"commands,omitempty"`
	Partition   Expression           `json:"partition,omitempty"` // OPTIMIZE ... PARTITION p
	Final       bool                 `json:"final,omitempty"`     // OPTIMIZE ... FINAL
	Sync        bool                 `json:"sync,omitempty"`      // DROP ... SYNC
}

func (q *QualifiedStatement) Pos() token.Position { return q.Position }
func (q *QualifiedStatement) Kind() Kind          { return KindQualifiedStatement }
func (q *QualifiedStatement) Children() []Node {
	var children []Node
	for _, c := range q.Columns {
		children = append(children, c)
	}
	if q.Engine != nil {
		children = append(children, q.Engine)
	}
	children = appendExprs(children, q.OrderBy)
	children = appendExpr(children, q.PartitionBy)
	children = appendExprs(children, q.PrimaryKey)
	for _, s := range q.Settings {
		children = append(children, s)
	}
	for _, c := range q.Commands {
		children = append(children, c)
	}
	children = appendExpr(children, q.Partition)
	if q.AsSelect != nil {
		children = append(children, q.AsSelect)
	}
	return children
}
func (q *QualifiedStatement) node()          {}
func (q *QualifiedStatement) statementNode() {}

// ColumnDeclaration represents a column definition.
type ColumnDeclaration struct {
	Position    token.Position `json:"-"`
	Name        string         `json:"name"`
	Type        *DataType      `json:"type,omitempty"`
	DefaultKind string         `json:"default_kind,omitempty"` // DEFAULT, MATERIALIZED, ALIAS
	Default     Expression     `json:"default,omitempty"`
}

func (c *ColumnDeclaration) Pos() token.Position { return c.Position }
func (c *ColumnDeclaration) Kind() Kind          { return KindOther }
func (c *ColumnDeclaration) Children() []Node {
	var children []Node
	if c.Type != nil {
		children = append(children, c.Type)
	}
	return appendExpr(children, c.Default)
}
func (c *ColumnDeclaration) node() {}

// DataType represents a column type such as String or Decimal(10, 2).
type DataType struct {
	Position   token.Position `json:"-"`
	Name       string         `json:"name"`
	Parameters []Expression   `json:"parameters,omitempty"`
}

func (d *DataType) Pos() token.Position { return d.Position }
func (d *DataType) Kind() Kind          { return KindOther }
func (d *DataType) Children() []Node    { return appendExprs(nil, d.Parameters) }
func (d *DataType) node()               {}
func (d *DataType) expressionNode()     {}

// EngineClause represents an ENGINE clause.
type EngineClause struct {
	Position       token.Position `json:"-"`
	Name           string         `json:"name"`
	Parameters     []Expression   `json:"parameters,omitempty"`
	HasParentheses bool           `json:"has_parentheses,omitempty"`
}

func (e *EngineClause) Pos() token.Position { return e.Position }
func (e *EngineClause) Kind() Kind          { return KindOther }
func (e *EngineClause) Children() []Node    { return appendExprs(nil, e.Parameters) }
func (e *EngineClause) node()               {}

// AlterCommandType represents the type of an ALTER command.
type AlterCommandType string

const (
	AlterAddColumn    AlterCommandType = "ADD COLUMN"
	AlterDropColumn   AlterCommandType = "DROP COLUMN"
	AlterModifyColumn AlterCommandType = "MODIFY COLUMN"
)

// AlterCommand represents a single ALTER TABLE command.
type AlterCommand struct {
	Position    token.Position     `json:"-"`
	Type        AlterCommandType   `json:"type"`
	Column      *ColumnDeclaration `json:"column,omitempty"`
	ColumnName  string             `json:"column_name,omitempty"`
	IfExists    bool               `json:"if_exists,omitempty"`
	IfNotExists bool               `json:"if_not_exists,omitempty"`
	AfterColumn string             `json:"after_column,omitempty"`
}

func (a *AlterCommand) Pos() token.Position { return a.Position }
func (a *AlterCommand) Kind() Kind          { return KindOther }
func (a *AlterCommand) Children() []Node {
	if a.Column != nil {
		return []Node{a.Column}
	}
	return nil
}
func (a *AlterCommand) node() {}

// DatabaseAndTable is one side of a rename. An empty Database means the
// name is unqualified.
type DatabaseAndTable struct {
	Database string `json:"database,omitempty"`
	Table    string `json:"table"`
}

// String returns the dotted name.
func (d DatabaseAndTable) String() string {
	if d.Database == "" {
		return d.Table
	}
	return d.Database + "." + d.Table
}

// RenameElement is a single `from TO to` pair.
type RenameElement struct {
	From DatabaseAndTable `json:"from"`
	To   DatabaseAndTable `json:"to"`
}

// RenameStatement represents RENAME TABLE a TO b [, c TO d ...].
type RenameStatement struct {
	Position  token.Position   `json:"-"`
	Elements  []*RenameElement `json:"elements"`
	OnCluster string           `json:"on_cluster,omitempty"`
}

func (r *RenameStatement) Pos() token.Position { return r.Position }
func (r *RenameStatement) Kind() Kind          { return KindRenameStatement }
func (r *RenameStatement) Children() []Node    { return nil }
func (r *RenameStatement) node()               {}
func (r *RenameStatement) statementNode()      {}

// -----------------------------------------------------------------------------
// Other statements

// InsertStatement represents an INSERT statement.
type InsertStatement struct {
	Position token.Position `json:"-"`
	Database string         `json:"database,omitempty"`
	Table    string         `json:"table"`
	Columns  []*Identifier  `json:"columns,omitempty"`
	Values   [][]Expression `json:"values,omitempty"`
	Select   *SelectUnion   `json:"select,omitempty"`
	Format   string         `json:"format,omitempty"`
}

func (i *InsertStatement) Pos() token.Position { return i.Position }
func (i *InsertStatement) Kind() Kind          { return KindOther }
func (i *InsertStatement) Children() []Node {
	var children []Node
	for _, c := range i.Columns {
		children = append(children, c)
	}
	for _, row := range i.Values {
		children = appendExprs(children, row)
	}
	if i.Select != nil {
		children = append(children, i.Select)
	}
	return children
}
func (i *InsertStatement) node()          {}
func (i *InsertStatement) statementNode() {}

// UseStatement represents USE db.
type UseStatement struct {
	Position token.Position `json:"-"`
	Database string         `json:"database"`
}

func (u *UseStatement) Pos() token.Position { return u.Position }
func (u *UseStatement) Kind() Kind          { return KindOther }
func (u *UseStatement) Children() []Node    { return nil }
func (u *UseStatement) node()               {}
func (u *UseStatement) statementNode()      {}

// -----------------------------------------------------------------------------
// Expressions

// Identifier represents a possibly compound name. A compound name such as
// db.table keeps one child Identifier per component in Parts; a simple name
// has no Parts.
type Identifier struct {
	Position token.Position `json:"-"`
	Name     string         `json:"name"`
	Parts    []*Identifier  `json:"parts,omitempty"`
	Alias    string         `json:"alias,omitempty"`
}

// NewIdentifier returns a simple identifier.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewCompoundIdentifier returns an identifier with one child per component.
func NewCompoundIdentifier(components ...string) *Identifier {
	if len(components) == 1 {
		return NewIdentifier(components[0])
	}
	ident := &Identifier{
		Name:  strings.Join(components, "."),
		Parts: make([]*Identifier, 0, len(components)),
	}
	for _, c := range components {
		ident.Parts = append(ident.Parts, NewIdentifier(c))
	}
	return ident
}

// NewDatabaseAndTable returns the two-component identifier database.table.
func NewDatabaseAndTable(database, table string) *Identifier {
	ident := &Identifier{
		Name:  database + "." + table,
		Parts: []*Identifier{NewIdentifier(database), NewIdentifier(table)},
	}
	return ident
}

func (i *Identifier) Pos() token.Position { return i.Position }
func (i *Identifier) Kind() Kind          { return KindIdentifier }
func (i *Identifier) Children() []Node {
	children := make([]Node, 0, len(i.Parts))
	for _, p := range i.Parts {
		children = append(children, p)
	}
	return children
}
func (i *Identifier) node()           {}
func (i *Identifier) expressionNode() {}

// Components returns the name split into its components.
func (i *Identifier) Components() []string {
	if len(i.Parts) == 0 {
		return []string{i.Name}
	}
	components := make([]string, len(i.Parts))
	for n, p := range i.Parts {
		components[n] = p.Name
	}
	return components
}

// Literal represents a literal value. Value keeps the source text of
// numbers and the unescaped contents of strings.
type Literal struct {
	Position token.Position `json:"-"`
	Type     LiteralType    `json:"type"`
	Value    string         `json:"value,omitempty"`
}

// LiteralType represents the type of a literal.
type LiteralType string

const (
	LiteralString  LiteralType = "String"
	LiteralNumber  LiteralType = "Number"
	LiteralBoolean LiteralType = "Bool"
	LiteralNull    LiteralType = "Null"
)

func (l *Literal) Pos() token.Position { return l.Position }
func (l *Literal) Kind() Kind          { return KindOther }
func (l *Literal) Children() []Node    { return nil }
func (l *Literal) node()               {}
func (l *Literal) expressionNode()     {}

// Asterisk represents * or table.*.
type Asterisk struct {
	Position token.Position `json:"-"`
	Table    string         `json:"table,omitempty"`
}

func (a *Asterisk) Pos() token.Position { return a.Position }
func (a *Asterisk) Kind() Kind          { return KindOther }
func (a *Asterisk) Children() []Node    { return nil }
func (a *Asterisk) node()               {}
func (a *Asterisk) expressionNode()     {}

// FunctionCall represents a function call, including table functions in
// FROM clauses.
type FunctionCall struct {
	Position  token.Position `json:"-"`
	Name      string         `json:"name"`
	Distinct  bool           `json:"distinct,omitempty"`
	Arguments []Expression   `json:"arguments,omitempty"`
	Alias     string         `json:"alias,omitempty"`
}

func (f *FunctionCall) Pos() token.Position { return f.Position }
func (f *FunctionCall) Kind() Kind          { return KindOther }
func (f *FunctionCall) Children() []Node    { return appendExprs(nil, f.Arguments) }
func (f *FunctionCall) node()               {}
func (f *FunctionCall) expressionNode()     {}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Position token.Position `json:"-"`
	Left     Expression     `json:"left"`
	Op       string         `json:"op"`
	Right    Expression     `json:"right"`
}

func (b *BinaryExpr) Pos() token.Position { return b.Position }
func (b *BinaryExpr) Kind() Kind          { return KindOther }
func (b *BinaryExpr) Children() []Node {
	return appendExpr(appendExpr(nil, b.Left), b.Right)
}
func (b *BinaryExpr) node()           {}
func (b *BinaryExpr) expressionNode() {}

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	Position token.Position `json:"-"`
	Op       string         `json:"op"`
	Operand  Expression     `json:"operand"`
}

func (u *UnaryExpr) Pos() token.Position { return u.Position }
func (u *UnaryExpr) Kind() Kind          { return KindOther }
func (u *UnaryExpr) Children() []Node    { return appendExpr(nil, u.Operand) }
func (u *UnaryExpr) node()               {}
func (u *UnaryExpr) expressionNode()     {}

// InExpr represents [GLOBAL] [NOT] IN with either a list or a subquery.
type InExpr struct {
	Position token.Position `json:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	Global   bool           `json:"global,omitempty"`
	List     []Expression   `json:"list,omitempty"`
	Query    *Subquery      `json:"query,omitempty"`
}

func (i *InExpr) Pos() token.Position { return i.Position }
func (i *InExpr) Kind() Kind          { return KindOther }
func (i *InExpr) Children() []Node {
	children := appendExpr(nil, i.Expr)
	children = appendExprs(children, i.List)
	if i.Query != nil {
		children = append(children, i.Query)
	}
	return children
}
func (i *InExpr) node()           {}
func (i *InExpr) expressionNode() {}

// Subquery represents a parenthesized SELECT. Its single child is the
// nested SelectUnion.
type Subquery struct {
	Position token.Position `json:"-"`
	Query    *SelectUnion   `json:"query"`
	Alias    string         `json:"alias,omitempty"`
}

func (s *Subquery) Pos() token.Position { return s.Position }
func (s *Subquery) Kind() Kind          { return KindSubquery }
func (s *Subquery) Children() []Node {
	if s.Query == nil {
		return nil
	}
	return []Node{s.Query}
}
func (s *Subquery) node()           {}
func (s *Subquery) expressionNode() {}

// AliasedExpr represents an expression with an alias, for expression types
// that do not carry their own Alias field.
type AliasedExpr struct {
	Position token.Position `json:"-"`
	Expr     Expression     `json:"expr"`
	Alias    string         `json:"alias"`
}

func (a *AliasedExpr) Pos() token.Position { return a.Position }
func (a *AliasedExpr) Kind() Kind          { return KindOther }
func (a *AliasedExpr) Children() []Node    { return appendExpr(nil, a.Expr) }
func (a *AliasedExpr) node()               {}
func (a *AliasedExpr) expressionNode()     {}

// TupleExpr represents a parenthesized list such as (1, 2, 3).
type TupleExpr struct {
	Position token.Position `json:"-"`
	Elements []Expression   `json:"elements"`
}

func (t *TupleExpr) Pos() token.Position { return t.Position }
func (t *TupleExpr) Kind() Kind          { return KindOther }
func (t *TupleExpr) Children() []Node    { return appendExprs(nil, t.Elements) }
func (t *TupleExpr) node()               {}
func (t *TupleExpr) expressionNode()     {}
