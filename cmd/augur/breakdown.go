package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/output"
	"github.com/augur-dev/augur/pkg/analyzer/complexity"
	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/source"
)

func breakdownCmd() *cli.Command {
	return &cli.Command{
		Name:      "breakdown",
		Usage:     "Suggest decomposition strategies for complex code",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language override",
			},
		},
		Action: runBreakdownCmd,
	}
}

func runBreakdownCmd(c *cli.Context) error {
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

	metrics := complexity.CalculateMetrics(content, language)
	strategies := complexity.SuggestBreakdownStrategies(metrics, language)

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.Section{
		Title:   "Breakdown Strategies",
		Content: "- " + strings.Join(strategies, "\n- "),
		Data: map[string]any{
			"metrics":    metrics,
			"strategies": strategies,
		},
	})
}
