package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/chqualify/ast"
)

func TestName(t *testing.T) {
	tests := map[string]string{
		"events":     "events",
		"_tmp1":      "_tmp1",
		"default":    "`default`",
		"Table":      "`Table`",
		"1abc":       "`1abc`",
		"my table":   "`my table`",
		"a`b":        "`a``b`",
		"événements": "`événements`",
		"":           "``",
	}

	for name, expected := range tests {
		var sb strings.Builder
		Name(&sb, name)
		require.Equal(t, expected, sb.String(), "name %q", name)
	}
}

func TestExpression(t *testing.T) {
	num := func(v string) ast.Expression { return &ast.Literal{Type: ast.LiteralNumber, Value: v} }

	tests := []struct {
		name     string
		expr     ast.Expression
		expected string
	}{
		{
			name:     "escaped string",
			expr:     &ast.Literal{Type: ast.LiteralString, Value: `it's a \ path`},
			expected: `'it\'s a \\ path'`,
		},
		{
			name:     "null",
			expr:     &ast.Literal{Type: ast.LiteralNull},
			expected: "NULL",
		},
		{
			name:     "double negation",
			expr:     &ast.UnaryExpr{Op: "-", Operand: &ast.UnaryExpr{Op: "-", Operand: num("1")}},
			expected: "-(-1)",
		},
		{
			name: "nested binary",
			expr: &ast.BinaryExpr{
				Left:  &ast.BinaryExpr{Left: num("1"), Op: "+", Right: num("2")},
				Op:    "*",
				Right: num("3"),
			},
			expected: "(1 + 2) * 3",
		},
		{
			name:     "not",
			expr:     &ast.UnaryExpr{Op: "NOT", Operand: ast.NewIdentifier("flag")},
			expected: "NOT flag",
		},
		{
			name:     "qualified asterisk",
			expr:     &ast.Asterisk{Table: "db.t"},
			expected: "db.t.*",
		},
		{
			name:     "aliased identifier",
			expr:     &ast.Identifier{Name: "x", Alias: "order"},
			expected: "x AS `order`",
		},
		{
			name: "global not in list",
			expr: &ast.InExpr{
				Expr:   ast.NewIdentifier("id"),
				Not:    true,
				Global: true,
				List:   []ast.Expression{num("1"), num("2")},
			},
			expected: "id GLOBAL NOT IN (1, 2)",
		},
		{
			name:     "data type",
			expr:     &ast.DataType{Name: "Decimal", Parameters: []ast.Expression{num("10"), num("2")}},
			expected: "Decimal(10, 2)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			Expression(&sb, tc.expr)
			require.Equal(t, tc.expected, sb.String())
		})
	}
}

func TestFormatStatements(t *testing.T) {
	require := require.New(t)

	stmts := []ast.Statement{
		&ast.QualifiedStatement{Type: ast.DropDatabase, Database: "d1", IfExists: true},
		&ast.QualifiedStatement{Type: ast.ShowCreateTable, Database: "d1", Table: "t"},
		&ast.RenameStatement{
			Elements:  []*ast.RenameElement{{From: ast.DatabaseAndTable{Table: "a"}, To: ast.DatabaseAndTable{Database: "d1", Table: "b"}}},
			OnCluster: "main",
		},
		&ast.UseStatement{Database: "default"},
	}

	require.Equal(
		"DROP DATABASE IF EXISTS d1;\n"+
			"SHOW CREATE TABLE d1.t;\n"+
			"RENAME TABLE a TO d1.b ON CLUSTER main;\n"+
			"USE `default`;",
		Format(stmts),
	)
	require.Empty(Format(nil))
}
