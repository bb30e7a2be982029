package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/sqlc-dev/chqualify/cmd/chqualify/command"
)

const (
	name = "chqualify"
)

var (
	version = "dev"
	build   = "unknown"
)

func main() {
	parser := flags.NewNamedParser(name, flags.HelpFlag|flags.PassDoubleDash)

	parser.AddCommand("qualify", command.QualifyDescription, command.QualifyHelp,
		&command.Qualify{})

	parser.AddCommand("explain", command.ExplainDescription, command.ExplainHelp,
		&command.Explain{})

	parser.AddCommand("version", command.VersionDescription, command.VersionHelp,
		&command.Version{
			Name:    name,
			Version: version,
			Build:   build,
		})

	_, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok {
			switch e.Type {
			case flags.ErrHelp:
				parser.WriteHelp(os.Stdout)
				os.Exit(0)
			case flags.ErrCommandRequired:
				parser.WriteHelp(os.Stdout)
				os.Exit(1)
			}
		}

		logrus.WithError(err).Error(name + " failed")
		os.Exit(1)
	}
}
