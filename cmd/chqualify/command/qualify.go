package command

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sqlc-dev/chqualify/qualify"
)

const (
	QualifyDescription = "Qualifies table names with a default database"
	QualifyHelp        = QualifyDescription + "\n\n" +
		"Reads ClickHouse SQL from the given files, or from the standard\n" +
		"input, and writes it back with every unqualified table of a\n" +
		"definition or SELECT statement prefixed by the default database.\n" +
		"INSERT and USE statements are written unchanged."
)

// Qualify represents the `qualify` command of chqualify cli tool.
type Qualify struct {
	options

	Database string `short:"d" long:"database" env:"CHQUALIFY_DATABASE" description:"Default database for unqualified names"`
	Strict   bool   `long:"strict" description:"Fail when no default database is set"`
	Output   string `short:"o" long:"output" description:"Output format: sql, explain, json or yaml (default sql)"`

	Args struct {
		Files []string `positional-arg-name:"file" description:"SQL files to qualify"`
	} `positional-args:"yes"`
}

// Execute qualifies the input statements and writes them out, it honors the
// go-flags.Commander interface.
func (c *Qualify) Execute(args []string) error {
	cfg, err := c.setup()
	if err != nil {
		return err
	}

	database := firstNonEmpty(c.Database, cfg.Database)
	output := firstNonEmpty(c.Output, cfg.Output, outputSQL)
	if !validOutput(output, outputSQL, outputExplain, outputJSON, outputYAML) {
		return ErrOutput.New(output, "qualify")
	}

	var q *qualify.Qualifier
	if c.Strict || cfg.Strict {
		q, err = qualify.NewStrict(database, qualify.WithLogger(c.log))
		if err != nil {
			return err
		}
	} else {
		q = qualify.New(database, qualify.WithLogger(c.log))
	}

	stmts, err := c.parse(context.Background(), c.Args.Files)
	if err != nil {
		return err
	}

	if err := q.Statements(stmts); err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{
		"database":   database,
		"statements": len(stmts),
	}).Info("qualified statements")

	return write(c.out, output, stmts)
}

func validOutput(output string, allowed ...string) bool {
	for _, a := range allowed {
		if output == a {
			return true
		}
	}
	return false
}
