package main

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/pkg/config"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default augur.toml in the current directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: "augur.toml",
				Usage: "Where to write the config file",
			},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			color.Green("Wrote %s", path)
			return nil
		},
	}
}
