package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/output"
	"github.com/augur-dev/augur/internal/progress"
	"github.com/augur-dev/augur/internal/scanner"
	"github.com/augur-dev/augur/pkg/analyzer/validate"
	"github.com/augur-dev/augur/pkg/config"
	"github.com/augur-dev/augur/pkg/models"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Run the validation pipeline against a file or project",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "step",
				Aliases: []string{"s"},
				Usage:   "Run only these steps (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "sequential",
				Usage: "Run steps sequentially in declaration order",
			},
		},
		Action: runValidateCmd,
	}
}

// newPipeline builds a pipeline wired to the file-level configuration.
func newPipeline(cfg *config.Config, scan *scanner.Scanner, sequential bool) *validate.Pipeline {
	vc := validate.DefaultConfig()
	vc.Parallel = cfg.Validation.Parallel && !sequential
	if cfg.Validation.MaxConcurrency > 0 {
		vc.MaxConcurrency = cfg.Validation.MaxConcurrency
	}
	vc.Thresholds = validate.Thresholds{
		MinScore:          cfg.Thresholds.MinScore,
		MaxCriticalIssues: cfg.Thresholds.MaxCriticalIssues,
		MaxHighIssues:     cfg.Thresholds.MaxHighIssues,
	}
	for name, settings := range cfg.Validation.Steps {
		vc.Steps[models.ValidationStep(name)] = validate.StepConfig{
			Enabled: settings.Enabled,
			Weight:  settings.Weight,
			Timeout: time.Duration(settings.TimeoutMS) * time.Millisecond,
		}
	}
	return validate.New(
		validate.WithScanner(scan),
		validate.WithConfig(vc),
	)
}

func runValidateCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	target := targetArg(c)

	var steps []models.ValidationStep
	for _, name := range c.StringSlice("step") {
		steps = append(steps, models.ValidationStep(name))
	}

	pipeline := newPipeline(cfg, scanner.New(cfg), c.Bool("sequential"))

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if isDir(target) {
		return validateProject(c, pipeline, formatter, target, steps)
	}
	return validateFile(c, pipeline, formatter, target, steps)
}

func validateFile(c *cli.Context, pipeline *validate.Pipeline, formatter *output.Formatter, path string, steps []models.ValidationStep) error {
	results, err := pipeline.ValidateFile(c.Context, validate.Input{
		FilePath:     path,
		EnabledSteps: steps,
	})
	if err != nil {
		return err
	}

	gates := pipeline.GenerateQualityGates(results)
	if err := formatter.Output(validationReport(path, results, pipeline.OverallScore(results), gates)); err != nil {
		return err
	}

	for _, gate := range gates {
		if gate.Name == "overall_quality" && !gate.Passed {
			return cli.Exit("", 1)
		}
	}
	return nil
}

func validateProject(c *cli.Context, pipeline *validate.Pipeline, formatter *output.Formatter, root string, steps []models.ValidationStep) error {
	spinner := progress.NewSpinner("Validating project...")
	results, err := pipeline.ValidateProject(c.Context, root, validate.ProjectOptions{
		EnabledSteps: steps,
	})
	spinner.FinishSuccess()
	if err != nil {
		return err
	}

	summary := pipeline.Summarize(results)

	rows := [][]string{
		{"Files", fmt.Sprintf("%d", summary.Files)},
		{"Failed files", fmt.Sprintf("%d", summary.FailedFiles)},
		{"Total issues", fmt.Sprintf("%d", summary.TotalIssues)},
		{"Critical issues", fmt.Sprintf("%d", summary.CriticalIssues)},
		{"High issues", fmt.Sprintf("%d", summary.HighIssues)},
		{"Mean score", fmt.Sprintf("%.1f", summary.MeanScore)},
		{"Score stddev", fmt.Sprintf("%.1f", summary.StdDevScore)},
		{"P50 score", fmt.Sprintf("%.1f", summary.P50Score)},
		{"P95 score", fmt.Sprintf("%.1f", summary.P95Score)},
	}

	report := &output.Report{
		Title: "Project Validation",
		Sections: []output.Renderable{
			output.NewTable("Summary", []string{"Metric", "Value"}, rows, nil, nil),
		},
		Data: map[string]any{
			"files":   results,
			"summary": summary,
		},
	}
	if err := formatter.Output(report); err != nil {
		return err
	}

	if summary.FailedFiles > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func validationReport(path string, results []models.ValidationResult, score float64, gates []models.QualityGateResult) *output.Report {
	resultRows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "pass"
		if !r.Passed {
			status = output.SeverityColor("critical", "fail")
		}
		resultRows = append(resultRows, []string{
			string(r.Step),
			status,
			fmt.Sprintf("%.0f", r.Score),
			fmt.Sprintf("%d", len(r.Issues)),
			fmt.Sprintf("%dms", r.DurationMS),
		})
	}

	var issueRows [][]string
	for _, r := range results {
		for _, issue := range r.Issues {
			issueRows = append(issueRows, []string{
				string(issue.Step),
				output.SeverityColor(string(issue.Severity), string(issue.Severity)),
				issue.Title,
				fmt.Sprintf("%d", issue.Line),
			})
		}
	}

	gateRows := make([][]string, 0, len(gates))
	for _, g := range gates {
		status := "pass"
		if !g.Passed {
			status = output.SeverityColor("critical", "fail")
		}
		gateRows = append(gateRows, []string{g.Name, status, fmt.Sprintf("%.1f", g.Score), g.Reason})
	}

	sections := []output.Renderable{
		output.NewTable("Steps", []string{"Step", "Status", "Score", "Issues", "Duration"}, resultRows, nil, nil),
	}
	if len(issueRows) > 0 {
		sections = append(sections, output.NewTable("Issues", []string{"Step", "Severity", "Title", "Line"}, issueRows, nil, nil))
	}
	sections = append(sections, output.NewTable("Quality Gates", []string{"Gate", "Status", "Score", "Reason"}, gateRows, nil, nil))

	return &output.Report{
		Title:    fmt.Sprintf("Validation: %s (score %.1f)", path, score),
		Sections: sections,
		Data: map[string]any{
			"file":          path,
			"results":       results,
			"overall_score": score,
			"gates":         gates,
		},
	}
}
