package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/output"
	"github.com/augur-dev/augur/pkg/config"
)

// loadConfig loads the config named by --config, or searches the standard
// locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newFormatter builds a formatter from the global flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(
		output.ParseFormat(c.String("format")),
		c.String("output"),
		!c.Bool("no-color"),
	)
}

// targetArg returns the first positional argument, defaulting to ".".
func targetArg(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

// requireFileArg returns the first positional argument or an error.
func requireFileArg(c *cli.Context) (string, error) {
	if c.Args().Len() == 0 {
		return "", fmt.Errorf("missing required file argument")
	}
	return c.Args().First(), nil
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
