package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/parser"
)

func TestMultiStatementParsing(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []ast.Kind
	}{
		{
			name:     "two selects with semicolon",
			sql:      "SELECT 1; SELECT 2;",
			expected: []ast.Kind{ast.KindSelectUnion, ast.KindSelectUnion},
		},
		{
			name:     "mixed statements",
			sql:      "SELECT 1; CREATE TABLE t (a Int32); DROP TABLE t;",
			expected: []ast.Kind{ast.KindSelectUnion, ast.KindQualifiedStatement, ast.KindQualifiedStatement},
		},
		{
			name:     "no trailing semicolon",
			sql:      "USE d1; RENAME TABLE a TO b",
			expected: []ast.Kind{ast.KindOther, ast.KindRenameStatement},
		},
		{
			name:     "multiple semicolons between statements",
			sql:      "SELECT 1;; SELECT 2;;; SELECT 3",
			expected: []ast.Kind{ast.KindSelectUnion, ast.KindSelectUnion, ast.KindSelectUnion},
		},
		{
			name:     "comments between statements",
			sql:      "SELECT 1; -- trailing\n/* block /* nested */ still comment */ SELECT 2; # hash\n",
			expected: []ast.Kind{ast.KindSelectUnion, ast.KindSelectUnion},
		},
		{
			name:     "complex multi-statement",
			sql:      "SELECT a, b FROM t1 WHERE x > 10; INSERT INTO t2 VALUES (1, 'hello'); SELECT * FROM t3 ORDER BY id;",
			expected: []ast.Kind{ast.KindSelectUnion, ast.KindOther, ast.KindSelectUnion},
		},
		{
			name: "only semicolons",
			sql:  ";;;",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			stmts, err := parser.Parse(ctx, strings.NewReader(tc.sql))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if len(stmts) != len(tc.expected) {
				t.Fatalf("Expected %d statements, got %d", len(tc.expected), len(stmts))
			}
			for i, stmt := range stmts {
				if stmt.Kind() != tc.expected[i] {
					t.Errorf("statement %d: expected kind %s, got %s", i, tc.expected[i], stmt.Kind())
				}
			}
		})
	}
}

func TestParseString(t *testing.T) {
	ctx := context.Background()
	sql := "SELECT 1; SELECT 2; SELECT 3;"

	stmts, err := parser.ParseString(ctx, sql)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	if len(stmts) != 3 {
		t.Errorf("Expected 3 statements, got %d", len(stmts))
	}
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	sqlFile := filepath.Join(tmpDir, "migration.sql")

	content := `-- Schema migration
CREATE DATABASE IF NOT EXISTS analytics;

CREATE TABLE analytics.events (
    id UInt32,
    name String
) ENGINE = MergeTree() ORDER BY id;

-- Unqualified names are resolved against the session database
RENAME TABLE events_tmp TO events;

INSERT INTO events VALUES (1, 'hello');

SELECT * FROM events ORDER BY id;
`
	if err := os.WriteFile(sqlFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	ctx := context.Background()
	stmts, err := parser.ParseFile(ctx, sqlFile)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(stmts) != 5 {
		t.Errorf("Expected 5 statements, got %d", len(stmts))
	}
}

func TestParseFileNotFound(t *testing.T) {
	ctx := context.Background()
	_, err := parser.ParseFile(ctx, "/nonexistent/file.sql")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
