package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augur-dev/augur/internal/scanner"
	"github.com/augur-dev/augur/internal/watch"
	"github.com/augur-dev/augur/pkg/analyzer/complexity"
	"github.com/augur-dev/augur/pkg/analyzer/validate"
	"github.com/augur-dev/augur/pkg/models"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-analyze files as they change",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: 500 * time.Millisecond,
				Usage: "Wait this long after the last write before re-analyzing",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	root := targetArg(c)

	watcher, err := watch.New(root, cfg, c.Duration("debounce"))
	if err != nil {
		return err
	}
	defer watcher.Stop()

	analyzer := complexity.New(complexity.WithScanner(scanner.New(cfg)))
	pipeline := newPipeline(cfg, scanner.New(cfg), false)

	watcher.SetCallback(func(path string) {
		est, err := analyzer.AnalyzeComplexity(c.Context, path, models.TargetFile, complexity.Options{})
		if err != nil {
			color.Red("complexity: %v", err)
			return
		}
		color.Cyan("%s: score %.2f (%s), cyclomatic %d, cognitive %d",
			path, est.Score, est.Level, est.Metrics.Cyclomatic, est.Metrics.Cognitive)

		results, err := pipeline.ValidateFile(c.Context, validate.Input{FilePath: path})
		if err != nil {
			color.Red("validate: %v", err)
			return
		}
		for _, gate := range pipeline.GenerateQualityGates(results) {
			if gate.Name != "overall_quality" {
				continue
			}
			if gate.Passed {
				color.Green("quality gate passed (score %.1f)", gate.Score)
			} else {
				color.Red("quality gate failed: %s", gate.Reason)
			}
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
