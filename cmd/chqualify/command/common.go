package command

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/parser"
)

// options are shared by the commands that read SQL.
type options struct {
	ConfigFile string `short:"c" long:"config" env:"CHQUALIFY_CONFIG" description:"TOML configuration file"`
	LogLevel   string `long:"log-level" env:"CHQUALIFY_LOG_LEVEL" description:"logging level: debug, info, warning or error"`
	Verbose    bool   `short:"v" description:"Activates the verbose mode"`

	in  io.Reader
	out io.Writer
	log *logrus.Logger
}

// setup loads the configuration file and applies the log level, the flag
// winning over the file.
func (o *options) setup() (*Config, error) {
	if o.log == nil {
		o.log = logrus.StandardLogger()
	}
	if o.in == nil {
		o.in = os.Stdin
	}
	if o.out == nil {
		o.out = os.Stdout
	}

	cfg, err := LoadConfig(o.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := setLogLevel(o.log, firstNonEmpty(o.LogLevel, cfg.LogLevel)); err != nil {
		return nil, err
	}
	if o.Verbose {
		o.log.SetLevel(logrus.DebugLevel)
	}

	if o.ConfigFile != "" {
		o.log.WithField("file", o.ConfigFile).Debug("loaded config file")
	}
	return cfg, nil
}

// parse reads the statements of every file in order, or of the standard
// input when no file is given.
func (o *options) parse(ctx context.Context, files []string) ([]ast.Statement, error) {
	if len(files) == 0 {
		stmts, err := parser.Parse(ctx, o.in)
		if err != nil {
			return nil, err
		}
		o.log.WithField("statements", len(stmts)).Debug("parsed standard input")
		return stmts, nil
	}

	var all []ast.Statement
	for _, file := range files {
		stmts, err := parser.ParseFile(ctx, file)
		if err != nil {
			return nil, err
		}
		o.log.WithFields(logrus.Fields{
			"file":       file,
			"statements": len(stmts),
		}).Debug("parsed file")
		all = append(all, stmts...)
	}
	return all, nil
}
