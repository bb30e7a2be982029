package command

import (
	"encoding/json"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/parser"
)

const (
	outputSQL     = "sql"
	outputExplain = "explain"
	outputJSON    = "json"
	outputYAML    = "yaml"
)

// write renders stmts to w in the given output format.
func write(w io.Writer, output string, stmts []ast.Statement) error {
	switch output {
	case outputSQL:
		if len(stmts) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, parser.Format(stmts))
		return err
	case outputExplain:
		for _, stmt := range stmts {
			if _, err := io.WriteString(w, ast.Explain(stmt)); err != nil {
				return err
			}
		}
		return nil
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(describe(stmts))
	case outputYAML:
		data, err := yaml.Marshal(describe(stmts))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return ErrOutput.New(output, "chqualify")
}

func describe(stmts []ast.Statement) []ast.Description {
	out := make([]ast.Description, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, ast.Describe(stmt))
	}
	return out
}
