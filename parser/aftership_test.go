package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"

	"github.com/sqlc-dev/chqualify/parser"
)

// tryParseWithAfterShip attempts to parse a query with AfterShip parser, recovering from panics.
func tryParseWithAfterShip(query string) (stmts []aftership.Expr, parseErr error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			parseErr = nil
			stmts = nil
		}
	}()
	p := aftership.NewParser(query)
	stmts, parseErr = p.ParseStmts()
	return stmts, parseErr, false
}

// TestAfterShipParser checks that formatted output of every testdata query
// is accepted by the AfterShip/clickhouse-sql-parser.
func TestAfterShipParser(t *testing.T) {
	testdataDir := "testdata"

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testDir := filepath.Join(testdataDir, entry.Name())

		t.Run(entry.Name(), func(t *testing.T) {
			stmts, err := parser.ParseFile(context.Background(), filepath.Join(testDir, "query.sql"))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			formatted := parser.Format(stmts)

			got, parseErr, panicked := tryParseWithAfterShip(formatted)
			switch {
			case panicked:
				t.Fatalf("AfterShip parser crashed\nQuery: %s", formatted)
			case parseErr != nil:
				t.Fatalf("AfterShip parse error: %v\nQuery: %s", parseErr, formatted)
			case len(got) != len(stmts):
				t.Fatalf("AfterShip parser returned %d statements, want %d\nQuery: %s", len(got), len(stmts), formatted)
			}
		})
	}
}
