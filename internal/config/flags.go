package config

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// ApplyFlags overrides c with command-line flags. Flags win over the
// environment; an unset flag leaves the environment value alone.
// It returns flag.ErrHelp for -h/--help after writing usage to out.
func (c *Config) ApplyFlags(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("roster-server", flag.ContinueOnError)
	fs.SetOutput(out)

	port := fs.IntP("port", "p", c.Port, "HTTP listen port")
	backend := fs.StringP("backend", "b", c.Backend, "roster store: memory or sqlite")
	seedFile := fs.String("seed", c.SeedFile, "YAML roster to load at startup (default: embedded roster)")
	logLevel := fs.String("log-level", c.LogLevel, "trace, debug, info, warn or error")
	pageSize := fs.Int("page-size", c.PageSize, "rows per grid page")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.Port = *port
	c.Backend = strings.ToLower(*backend)
	c.SeedFile = *seedFile
	c.LogLevel = *logLevel
	c.PageSize = *pageSize
	return nil
}
