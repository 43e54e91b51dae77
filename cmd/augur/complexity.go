package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/output"
	"github.com/augur-dev/augur/internal/scanner"
	"github.com/augur-dev/augur/pkg/analyzer/complexity"
	"github.com/augur-dev/augur/pkg/models"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Estimate complexity of a file, directory, or snippet",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Target type: file, directory, project, snippet (default: detected)",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language override (required for snippets)",
			},
			&cli.StringFlag{
				Name:  "snippet",
				Usage: "Analyze this code snippet instead of a path",
			},
		},
		Action: runComplexityCmd,
	}
}

func runComplexityCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	target := targetArg(c)
	targetType := models.TargetType(c.String("type"))
	if snippet := c.String("snippet"); snippet != "" {
		target = snippet
		targetType = models.TargetSnippet
	}
	if targetType == "" {
		if isDir(target) {
			targetType = models.TargetDirectory
		} else {
			targetType = models.TargetFile
		}
	}

	analyzer := complexity.New(complexity.WithScanner(scanner.New(cfg)))
	est, err := analyzer.AnalyzeComplexity(c.Context, target, targetType, complexity.Options{
		Language: c.String("language"),
	})
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(estimationReport(est))
}

// estimationReport renders an estimation as sections and tables.
func estimationReport(est *models.ComplexityEstimation) *output.Report {
	metricRows := [][]string{
		{"Cyclomatic", fmt.Sprintf("%d", est.Metrics.Cyclomatic)},
		{"Cognitive", fmt.Sprintf("%d", est.Metrics.Cognitive)},
		{"Max nesting", fmt.Sprintf("%d", est.Metrics.MaxNesting)},
		{"Maintainability", fmt.Sprintf("%.1f", est.Metrics.Maintainability)},
		{"Testability", fmt.Sprintf("%.1f", est.Metrics.Testability)},
		{"Coupling", fmt.Sprintf("%.1f", est.Metrics.Coupling)},
		{"Cohesion", fmt.Sprintf("%.1f", est.Metrics.Cohesion)},
		{"Lines", fmt.Sprintf("%d", est.Metrics.Lines)},
		{"Functions", fmt.Sprintf("%d", est.Metrics.Functions)},
		{"Dependencies", fmt.Sprintf("%d", est.Metrics.Dependencies)},
	}

	factorRows := make([][]string, 0, len(est.Factors))
	for _, f := range est.Factors {
		factorRows = append(factorRows, []string{
			f.Name,
			fmt.Sprintf("%.2f", f.Value),
			fmt.Sprintf("%.2f", f.Weight),
			output.SeverityColor(string(f.Impact), string(f.Impact)),
		})
	}

	summary := &output.Section{
		Title: "Summary",
		Content: fmt.Sprintf("Target: %s (%s, %s)\nScore: %.2f (%s)\nEstimated effort: %.1fh development, %.1fh testing\nOverall risk: %.2f",
			est.Target, est.Type, est.Language,
			est.Score, output.SeverityColor(string(est.Level), string(est.Level)),
			est.DevelopmentHours, est.TestingHours, est.Risk.Overall),
	}

	recommendations := &output.Section{
		Title:   "Recommendations",
		Content: "- " + strings.Join(est.Recommendations, "\n- "),
	}

	sections := []output.Renderable{
		summary,
		output.NewTable("Metrics", []string{"Metric", "Value"}, metricRows, nil, nil),
		output.NewTable("Factors", []string{"Factor", "Value", "Weight", "Impact"}, factorRows, nil, nil),
		recommendations,
	}

	if len(est.Risk.Mitigations) > 0 {
		sections = append(sections, &output.Section{
			Title:   "Risk Mitigations",
			Content: "- " + strings.Join(est.Risk.Mitigations, "\n- "),
		})
	}

	return &output.Report{
		Title:    "Complexity Analysis",
		Sections: sections,
		Data:     est,
	}
}
