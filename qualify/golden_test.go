package qualify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/internal/normalize"
	"github.com/sqlc-dev/chqualify/parser"
	"github.com/sqlc-dev/chqualify/qualify"
)

// TestGolden qualifies every testdata/*/query.sql against database d1 and
// compares the printed result with expected.sql statement by statement,
// ignoring layout and comments. Inputs made only of SELECT
// statements are also fed to the AfterShip parser after qualification.
func TestGolden(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	require.NoError(t, err)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join("testdata", entry.Name())

		t.Run(entry.Name(), func(t *testing.T) {
			require := require.New(t)

			stmts, err := parser.ParseFile(context.Background(), filepath.Join(dir, "query.sql"))
			require.NoError(err)

			expected, err := os.ReadFile(filepath.Join(dir, "expected.sql"))
			require.NoError(err)

			require.NoError(qualify.New("d1").Statements(stmts))
			got := parser.Format(stmts)
			require.Equal(normalize.Statements(string(expected)), normalize.Statements(got))

			if !onlySelects(stmts) {
				return
			}
			parsed, err := aftership.NewParser(got).ParseStmts()
			require.NoError(err, "AfterShip rejected %s", got)
			require.Len(parsed, len(stmts))
		})
	}
}

func onlySelects(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		if _, ok := stmt.(*ast.SelectUnion); !ok {
			return false
		}
	}
	return len(stmts) > 0
}
