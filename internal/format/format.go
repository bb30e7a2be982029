// Package format provides SQL formatting for ClickHouse AST.
package format

import (
	"strings"
	"unicode"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/token"
)

// Format returns the SQL string representation of the statements.
func Format(stmts []ast.Statement) string {
	var sb strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteString("\n")
		}
		Statement(&sb, stmt)
		sb.WriteString(";")
	}
	return sb.String()
}

// Statement formats a single statement.
func Statement(sb *strings.Builder, stmt ast.Statement) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.SelectUnion:
		formatSelectUnion(sb, s)
	case *ast.SelectQuery:
		formatSelectQuery(sb, s)
	case *ast.QualifiedStatement:
		formatQualifiedStatement(sb, s)
	case *ast.RenameStatement:
		formatRenameStatement(sb, s)
	case *ast.InsertStatement:
		formatInsertStatement(sb, s)
	case *ast.UseStatement:
		sb.WriteString("USE ")
		Name(sb, s.Database)
	}
}

// Name writes a database, table or column name, backtick-quoting it when
// it would not lex back as the same plain identifier.
func Name(sb *strings.Builder, name string) {
	if isPlainName(name) {
		sb.WriteString(name)
		return
	}
	sb.WriteString("`")
	sb.WriteString(strings.ReplaceAll(name, "`", "``"))
	sb.WriteString("`")
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		switch {
		case r == '_', unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return token.Lookup(strings.ToUpper(name)) == token.IDENT
}

// databaseAndTable writes [db.]table.
func databaseAndTable(sb *strings.Builder, database, table string) {
	if database != "" {
		Name(sb, database)
		sb.WriteString(".")
	}
	Name(sb, table)
}
