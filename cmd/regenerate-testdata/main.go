// Command regenerate-testdata rewrites the golden files of the parser and
// qualify test suites from the current parser, printer and qualifier.
//
//	go run ./cmd/regenerate-testdata [-test name] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/parser"
	"github.com/sqlc-dev/chqualify/qualify"
)

type suite struct {
	dir    string
	output string
	render func([]ast.Statement) (string, error)
}

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	database := flag.String("database", "d1", "Default database used for qualify/testdata")
	dryRun := flag.Bool("dry-run", false, "Print what would be written without changing files")
	flag.Parse()

	suites := []suite{
		{
			dir:    "parser/testdata",
			output: "explain.txt",
			render: explain,
		},
		{
			dir:    "qualify/testdata",
			output: "expected.sql",
			render: func(stmts []ast.Statement) (string, error) {
				if err := qualify.New(*database).Statements(stmts); err != nil {
					return "", err
				}
				return parser.Format(stmts) + "\n", nil
			},
		},
	}

	var errors []string
	var processed int
	for _, s := range suites {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", s.dir, err)
			os.Exit(1)
		}
		for _, entry := range entries {
			if !entry.IsDir() || (*testName != "" && entry.Name() != *testName) {
				continue
			}
			testDir := filepath.Join(s.dir, entry.Name())
			if err := processTest(testDir, s, *dryRun); err != nil {
				errors = append(errors, fmt.Sprintf("%s: %v", testDir, err))
				continue
			}
			processed++
		}
	}

	fmt.Printf("\nProcessed: %d, Errors: %d\n", processed, len(errors))
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

func processTest(testDir string, s suite, dryRun bool) error {
	stmts, err := parser.ParseFile(context.Background(), filepath.Join(testDir, "query.sql"))
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		return fmt.Errorf("no statements found")
	}

	content, err := s.render(stmts)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(testDir, s.output)
	if dryRun {
		fmt.Printf("%s (%d statements)\n%s", outputPath, len(stmts), indent(content))
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("%s (%d statements)\n", outputPath, len(stmts))
	return nil
}

// explain renders a single-statement parser case. Parser cases hold
// exactly one statement.
func explain(stmts []ast.Statement) (string, error) {
	if len(stmts) != 1 {
		return "", fmt.Errorf("expected 1 statement, got %d", len(stmts))
	}
	return ast.Explain(stmts[0]), nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return "  " + strings.Join(lines, "\n  ") + "\n"
}
