package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version  VersionCmd  `cmd:"" help:"Print version."`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration."`
	Serve    ServeCmd    `cmd:"" help:"Serve the job dataset over HTTP."`
	Search   SearchCmd   `cmd:"" help:"Filter job listings and print one or more pages."`
	Browse   BrowseCmd   `cmd:"" help:"Browse job listings interactively."`
	Filters  FiltersCmd  `cmd:"" help:"List the available filter values."`
	Backends BackendsCmd `cmd:"" help:"Backend utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
