package ast_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/parser"
)

func TestExplain(t *testing.T) {
	rename := &ast.RenameStatement{Elements: []*ast.RenameElement{
		{From: ast.DatabaseAndTable{Table: "a"}, To: ast.DatabaseAndTable{Database: "x", Table: "b"}},
	}}
	call := &ast.FunctionCall{Name: "f", Arguments: []ast.Expression{
		&ast.Literal{Type: ast.LiteralString, Value: "s"},
		&ast.Literal{Type: ast.LiteralNull},
		&ast.Literal{Type: ast.LiteralNumber, Value: "42"},
	}}

	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{
			name:     "bare identifier",
			node:     ast.NewIdentifier("t1"),
			expected: "Identifier t1\n",
		},
		{
			name:     "database and table",
			node:     ast.NewDatabaseAndTable("d1", "t1"),
			expected: "Identifier d1.t1 (children 2)\n" +
				" Identifier d1\n" +
				" Identifier t1\n",
		},
		{
			name:     "drop table",
			node:     &ast.QualifiedStatement{Type: ast.DropTable, Database: "d1", Table: "t"},
			expected: "QualifiedStatement DROP TABLE d1.t\n",
		},
		{
			name:     "create database",
			node:     &ast.QualifiedStatement{Type: ast.CreateDatabase, Database: "d5"},
			expected: "QualifiedStatement CREATE DATABASE d5\n",
		},
		{
			name:     "rename",
			node:     rename,
			expected: "RenameStatement a TO x.b\n",
		},
		{
			name:     "literals",
			node:     call,
			expected: "FunctionCall f (children 3)\n" +
				" Literal 's'\n" +
				" Literal NULL\n" +
				" Literal 42\n",
		},
		{
			name:     "nil",
			node:     nil,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ast.Explain(tc.node))
		})
	}
}

func TestExplainJoin(t *testing.T) {
	stmts, err := parser.ParseString(context.Background(), "SELECT * FROM a GLOBAL ANY LEFT JOIN b ON a.id = b.id, c")
	require.NoError(t, err)

	expected := "SelectUnion (children 1)\n" +
		" SelectQuery (children 2)\n" +
		"  Asterisk *\n" +
		"  TableList (children 3)\n" +
		"   TableListElement (children 1)\n" +
		"    TableExpression (children 1)\n" +
		"     Identifier a\n" +
		"   TableListElement (children 2)\n" +
		"    TableExpression (children 1)\n" +
		"     Identifier b\n" +
		"    TableJoin GLOBAL ANY LEFT (children 1)\n" +
		"     BinaryExpr = (children 2)\n" +
		"      Identifier a.id (children 2)\n" +
		"       Identifier a\n" +
		"       Identifier id\n" +
		"      Identifier b.id (children 2)\n" +
		"       Identifier b\n" +
		"       Identifier id\n" +
		"   TableListElement (children 2)\n" +
		"    TableExpression (children 1)\n" +
		"     Identifier c\n" +
		"    TableJoin COMMA\n"
	require.Equal(t, expected, ast.Explain(stmts[0]))
}

func TestCompoundIdentifier(t *testing.T) {
	require := require.New(t)

	single := ast.NewCompoundIdentifier("t")
	require.Equal("t", single.Name)
	require.Empty(single.Children())
	require.Equal([]string{"t"}, single.Components())

	triple := ast.NewCompoundIdentifier("a", "b", "c")
	require.Equal("a.b.c", triple.Name)
	require.Len(triple.Children(), 3)
	require.Equal([]string{"a", "b", "c"}, triple.Components())

	dt := ast.NewDatabaseAndTable("d1", "t1")
	require.Equal(ast.KindIdentifier, dt.Kind())
	require.Equal([]string{"d1", "t1"}, dt.Components())
	require.Equal("d1.t1", ast.DatabaseAndTable{Database: "d1", Table: "t1"}.String())
	require.Equal("t1", ast.DatabaseAndTable{Table: "t1"}.String())
}

func TestChildrenSkipNil(t *testing.T) {
	require := require.New(t)

	require.Empty((&ast.SelectQuery{}).Children())
	require.Empty((&ast.TableExpression{}).Children())
	require.Empty((&ast.QualifiedStatement{Type: ast.CreateTable}).Children())
	require.Empty((&ast.RenameStatement{Elements: []*ast.RenameElement{{}}}).Children())

	expr := &ast.TableExpression{Subquery: &ast.Subquery{Query: &ast.SelectUnion{}}}
	children := expr.Children()
	require.Len(children, 1)
	require.Equal(ast.KindSubquery, children[0].Kind())
	require.Equal(ast.KindSelectUnion, children[0].Children()[0].Kind())
}

func TestKindString(t *testing.T) {
	require := require.New(t)

	require.Equal("Other", ast.KindOther.String())
	require.Equal("TableListElement", ast.KindTableListElement.String())
	require.Equal("Subquery", ast.KindSubquery.String())
	require.Equal("Kind(?)", ast.Kind(99).String())
}

func TestWalk(t *testing.T) {
	require := require.New(t)

	stmts, err := parser.ParseString(context.Background(),
		"SELECT a FROM t1 JOIN (SELECT b FROM t2) AS s USING (a) WHERE a IN (1, 2)")
	require.NoError(err)

	nodes := ast.Inspect(stmts[0])
	seen := map[ast.Node]bool{}
	for _, n := range nodes {
		require.False(seen[n], "node %T visited twice", n)
		seen[n] = true
	}
	require.Equal(stmts[0], nodes[0])

	var identifiers []string
	ast.Walk(stmts[0], func(n ast.Node) bool {
		if _, ok := n.(*ast.Subquery); ok {
			return false
		}
		if id, ok := n.(*ast.Identifier); ok {
			identifiers = append(identifiers, id.Name)
		}
		return true
	})
	require.Equal([]string{"a", "t1", "a", "a"}, identifiers)
}

func TestDescribe(t *testing.T) {
	require := require.New(t)

	stmts, err := parser.ParseString(context.Background(), "DROP TABLE d1.t")
	require.NoError(err)

	d := ast.Describe(stmts[0])
	require.Equal("QualifiedStatement", d.Type)
	require.Equal("QualifiedStatement", d.Kind)
	require.Equal("DROP TABLE d1.t", d.Label)
	require.Equal(1, d.Line)
	require.Equal(1, d.Column)

	data, err := json.Marshal(d)
	require.NoError(err)
	require.JSONEq(`{"type":"QualifiedStatement","kind":"QualifiedStatement","label":"DROP TABLE d1.t","line":1,"column":1}`, string(data))

	out, err := yaml.Marshal(d)
	require.NoError(err)

	var back ast.Description
	require.NoError(yaml.Unmarshal(out, &back))
	require.Equal(d, back)
}
