package command

import (
	"context"

	"github.com/sqlc-dev/chqualify/qualify"
)

const (
	ExplainDescription = "Prints the syntax tree of SQL statements"
	ExplainHelp        = ExplainDescription + "\n\n" +
		"Reads ClickHouse SQL from the given files, or from the standard\n" +
		"input, and prints one tree per statement. With --qualify the trees\n" +
		"are printed after qualification with the default database."
)

// Explain represents the `explain` command of chqualify cli tool.
type Explain struct {
	options

	Qualify  bool   `short:"q" long:"qualify" description:"Qualify table names before printing"`
	Database string `short:"d" long:"database" env:"CHQUALIFY_DATABASE" description:"Default database used with --qualify"`
	Output   string `short:"o" long:"output" description:"Output format: explain, json or yaml (default explain)"`

	Args struct {
		Files []string `positional-arg-name:"file" description:"SQL files to explain"`
	} `positional-args:"yes"`
}

// Execute prints the trees of the input statements, it honors the
// go-flags.Commander interface.
func (c *Explain) Execute(args []string) error {
	cfg, err := c.setup()
	if err != nil {
		return err
	}

	output := firstNonEmpty(c.Output, outputExplain)
	if !validOutput(output, outputExplain, outputJSON, outputYAML) {
		return ErrOutput.New(output, "explain")
	}

	stmts, err := c.parse(context.Background(), c.Args.Files)
	if err != nil {
		return err
	}

	if c.Qualify {
		database := firstNonEmpty(c.Database, cfg.Database)
		q := qualify.New(database, qualify.WithLogger(c.log))
		if err := q.Statements(stmts); err != nil {
			return err
		}
	}

	return write(c.out, output, stmts)
}
