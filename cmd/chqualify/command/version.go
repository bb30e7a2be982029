package command

import (
	"fmt"
	"io"
	"os"
)

const (
	VersionDescription = "Show the version information"
	VersionHelp        = VersionDescription
)

// Version represents the `version` command of chqualify cli tool.
type Version struct {
	// Name of the cli binary
	Name string
	// Version of the cli binary
	Version string
	// Build of the cli binary
	Build string

	out io.Writer
}

// Execute prints the build information provided by the compilation tools, it
// honors the go-flags.Commander interface.
func (c *Version) Execute(args []string) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "%s (%s) - build %s\n", c.Name, c.Version, c.Build)
	return err
}
