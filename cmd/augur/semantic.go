package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/output"
	"github.com/augur-dev/augur/pkg/analyzer/semantic"
	"github.com/augur-dev/augur/pkg/models"
)

func semanticCmd() *cli.Command {
	return &cli.Command{
		Name:      "semantic",
		Aliases:   []string{"sem"},
		Usage:     "Analyze symbols, maintainability, and dependencies of a file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language override",
			},
			&cli.BoolFlag{
				Name:  "patterns",
				Usage: "Also run design-pattern detection",
			},
		},
		Action: runSemanticCmd,
	}
}

func runSemanticCmd(c *cli.Context) error {
	file, err := requireFileArg(c)
	if err != nil {
		return err
	}

	analyzer := semantic.New()
	analysis, err := analyzer.AnalyzeCode(c.Context, semantic.Input{
		FilePath:        file,
		Language:        c.String("language"),
		IncludePatterns: c.Bool("patterns"),
	})
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(semanticReport(analysis))
}

func semanticReport(analysis *models.SemanticAnalysis) *output.Report {
	symbolRows := make([][]string, 0, len(analysis.Symbols))
	for _, s := range analysis.Symbols {
		symbolRows = append(symbolRows, []string{
			s.Name,
			string(s.Type),
			string(s.Visibility),
			fmt.Sprintf("%d", s.Range.StartLine+1),
		})
	}

	sections := []output.Renderable{
		output.NewTable("Symbols", []string{"Name", "Type", "Visibility", "Line"}, symbolRows, nil, nil),
		&output.Section{
			Title: "Dependencies",
			Content: fmt.Sprintf("Internal: %s\nExternal: %s",
				joinOrNone(analysis.Dependencies.Internal),
				joinOrNone(analysis.Dependencies.External)),
		},
	}

	if len(analysis.Maintainability.Issues) > 0 {
		sections = append(sections, &output.Section{
			Title:   "Maintainability Issues",
			Content: "- " + strings.Join(analysis.Maintainability.Issues, "\n- "),
		})
	}

	if len(analysis.Patterns) > 0 {
		sections = append(sections, patternsTable(analysis.Patterns))
	}

	return &output.Report{
		Title:    "Semantic Analysis",
		Sections: sections,
		Data:     analysis,
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
