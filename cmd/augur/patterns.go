package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/output"
	"github.com/augur-dev/augur/pkg/analyzer/semantic"
	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
	"github.com/augur-dev/augur/pkg/source"
)

func patternsCmd() *cli.Command {
	return &cli.Command{
		Name:      "patterns",
		Usage:     "Detect design patterns and anti-patterns in a file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language override",
			},
		},
		Action: runPatternsCmd,
	}
}

func runPatternsCmd(c *cli.Context) error {
	file, err := requireFileArg(c)
	if err != nil {
		return err
	}

	content, err := source.NewFS().ReadFile(file)
	if err != nil {
		return err
	}

	language := c.String("language")
	if language == "" {
		language = lang.DetectLanguage(file)
	}

	patterns := semantic.DetectPatterns(content, language)

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(patterns) == 0 {
		formatter.Info("No patterns detected in %s", file)
		return nil
	}

	table := patternsTable(patterns)
	table.Data = patterns
	return formatter.Output(table)
}

func patternsTable(patterns []models.PatternMatch) *output.Table {
	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%.2f", p.Confidence),
			p.Description,
		})
	}
	return output.NewTable("Detected Patterns", []string{"Pattern", "Confidence", "Description"}, rows, nil, nil)
}
