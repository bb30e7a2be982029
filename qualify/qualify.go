// Package qualify fills in the database of unqualified table references.
//
// A Qualifier carries one default database and offers two passes over a
// parsed statement. Definition walks every node of a definition statement
// and sets the database of CREATE, DROP, ALTER, RENAME and similar targets.
// Query follows only the table positions of a SELECT and replaces each bare
// table name with a database.table name. Callers pick the pass that matches
// the statement, or let Statement choose.
package qualify

import (
	"github.com/sirupsen/logrus"

	"github.com/sqlc-dev/chqualify/ast"
)

// Qualifier rewrites statements against a fixed default database. It holds
// no mutable state and may be shared by goroutines working on distinct
// trees.
type Qualifier struct {
	database string
	log      logrus.FieldLogger
}

// Option configures a Qualifier.
type Option func(*Qualifier)

// WithLogger sets the logger that receives a debug entry for every name the
// Qualifier fills in.
func WithLogger(log logrus.FieldLogger) Option {
	return func(q *Qualifier) {
		q.log = log
	}
}

// New returns a Qualifier for the given default database. An empty
// database is accepted and leaves every name as it is.
func New(database string, opts ...Option) *Qualifier {
	q := &Qualifier{
		database: database,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.log = q.log.WithField("database", database)
	return q
}

// NewStrict is like New but fails with ErrEmptyDatabase when database is
// empty.
func NewStrict(database string, opts ...Option) (*Qualifier, error) {
	if database == "" {
		return nil, ErrEmptyDatabase.New()
	}
	return New(database, opts...), nil
}

// Database returns the default database.
func (q *Qualifier) Database() string {
	return q.database
}

// Statement qualifies stmt with the pass that fits it: Query for SELECT
// statements and Definition for everything else.
func (q *Qualifier) Statement(stmt ast.Statement) error {
	switch stmt.(type) {
	case *ast.SelectUnion, *ast.SelectQuery:
		return q.Query(stmt)
	}
	q.Definition(stmt)
	return nil
}

// Statements qualifies each statement in order and stops at the first
// error. Statements before the failing one stay rewritten.
func (q *Qualifier) Statements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := q.Statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Definition sets the default database on every definition target in the
// tree rooted at node that has none. Children are visited before their
// parent, and every node reachable through Children is visited once.
// Names that already carry a database are left alone.
func (q *Qualifier) Definition(node ast.Node) {
	if node == nil {
		return
	}

	for _, child := range node.Children() {
		q.Definition(child)
	}

	switch n := node.(type) {
	case *ast.QualifiedStatement:
		if q.fill(&n.Database) {
			q.log.WithFields(logrus.Fields{
				"statement": string(n.Type),
				"table":     n.Table,
			}).Debug("filled statement database")
		}
	case *ast.RenameStatement:
		for _, elem := range n.Elements {
			if q.fill(&elem.From.Database) {
				q.log.WithFields(logrus.Fields{
					"statement": "RENAME",
					"table":     elem.From.Table,
				}).Debug("filled rename source database")
			}
			if q.fill(&elem.To.Database) {
				q.log.WithFields(logrus.Fields{
					"statement": "RENAME",
					"table":     elem.To.Table,
				}).Debug("filled rename target database")
			}
		}
	}
}

// fill sets *database to the default if it is empty and reports whether it
// did.
func (q *Qualifier) fill(database *string) bool {
	if *database != "" || q.database == "" {
		return false
	}
	*database = q.database
	return true
}

// Query qualifies every table name in the FROM clauses of node, which must
// be a *ast.SelectUnion or *ast.SelectQuery; any other node is left
// untouched. Subqueries in FROM are descended into. Expressions, including
// IN subqueries, are not.
//
// A table name with a number of components other than one or two makes
// Query fail with ErrLogicalError. Tables rewritten before the failure
// keep their new names.
func (q *Qualifier) Query(node ast.Node) error {
	switch n := node.(type) {
	case *ast.SelectUnion:
		return q.union(n)
	case *ast.SelectQuery:
		return q.selectQuery(n)
	}
	return nil
}

func (q *Qualifier) union(u *ast.SelectUnion) error {
	for _, sel := range u.Selects {
		if err := q.selectQuery(sel); err != nil {
			return err
		}
	}
	return nil
}

func (q *Qualifier) selectQuery(sel *ast.SelectQuery) error {
	if sel == nil || sel.Tables == nil {
		return nil
	}
	return q.tableList(sel.Tables)
}

func (q *Qualifier) tableList(tables *ast.TableList) error {
	for _, child := range tables.Children() {
		elem, ok := child.(*ast.TableListElement)
		if !ok {
			continue
		}
		if elem.TableExpression == nil {
			continue
		}
		if err := q.tableExpression(elem.TableExpression); err != nil {
			return err
		}
	}
	return nil
}

func (q *Qualifier) tableExpression(expr *ast.TableExpression) error {
	switch {
	case expr.QualifiedName != nil:
		q.tableName(expr)
		name := expr.QualifiedName
		n := len(name.Children())
		if n == 0 && q.database == "" {
			return nil
		}
		if n != 2 {
			return ErrLogicalError.New(name.Name, n)
		}
	case expr.Subquery != nil:
		children := expr.Subquery.Children()
		if len(children) == 0 {
			return nil
		}
		if u, ok := children[0].(*ast.SelectUnion); ok {
			return q.union(u)
		}
	}
	return nil
}

// tableName replaces a bare table name of expr with database.table.
func (q *Qualifier) tableName(expr *ast.TableExpression) {
	name := expr.QualifiedName
	if len(name.Children()) != 0 || q.database == "" {
		return
	}

	qualified := ast.NewDatabaseAndTable(q.database, name.Name)
	qualified.Position = name.Position
	qualified.Alias = name.Alias
	expr.QualifiedName = qualified

	q.log.WithFields(logrus.Fields{
		"statement": "SELECT",
		"table":     name.Name,
	}).Debug("qualified table name")
}
