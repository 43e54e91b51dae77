package validate

import (
	"context"
	"regexp"
	"strings"

	"github.com/augur-dev/augur/pkg/models"
	"github.com/rs/xid"
)

// ScoreIssues computes a step score: 100 minus the per-severity deduction of
// each issue, floored at 0.
func ScoreIssues(issues []models.QualityIssue) float64 {
	score := 100.0
	for _, issue := range issues {
		score -= issue.Severity.Deduction()
	}
	if score < 0 {
		return 0
	}
	return score
}

// defaultExecutors returns the baseline step table. Syntax and security have
// real heuristics; the rest are passthrough extension points that servers
// replace via RegisterExecutor.
func defaultExecutors() map[models.ValidationStep]Executor {
	executors := map[models.ValidationStep]Executor{
		models.StepSyntax:   syntaxExecutor,
		models.StepSecurity: securityExecutor,
	}
	for _, step := range []models.ValidationStep{
		models.StepTypeCheck,
		models.StepLint,
		models.StepTest,
		models.StepPerformance,
		models.StepDocumentation,
		models.StepIntegration,
	} {
		executors[step] = passthroughExecutor
	}
	return executors
}

// passthroughExecutor reports success with no findings.
func passthroughExecutor(ctx context.Context, target Target) (Outcome, error) {
	return Outcome{Passed: true}, nil
}

var bracketPairs = []struct{ open, close rune }{
	{'(', ')'},
	{'{', '}'},
	{'[', ']'},
}

// syntaxExecutor performs a per-line bracket balance check. Lines ending in a
// backslash continue onto the next line and are skipped together with their
// continuation. A line-local heuristic, not a parser: multi-line constructs
// are outside its reach.
func syntaxExecutor(ctx context.Context, target Target) (Outcome, error) {
	var issues []models.QualityIssue

	continued := false
	for i, line := range strings.Split(target.Content, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		endsContinued := strings.HasSuffix(trimmed, `\`)

		if continued || endsContinued {
			continued = endsContinued
			continue
		}

		for _, pair := range bracketPairs {
			opens := strings.Count(line, string(pair.open))
			closes := strings.Count(line, string(pair.close))
			if opens != closes {
				issues = append(issues, models.QualityIssue{
					ID:       xid.New().String(),
					Severity: models.SeverityHigh,
					Step:     models.StepSyntax,
					Title:    "Unbalanced brackets",
					Description: "Line has " + string(pair.open) + "/" + string(pair.close) +
						" counts that do not match",
					File:    target.FilePath,
					Line:    i + 1,
					Fixable: false,
				})
				break
			}
		}
	}

	return Outcome{Passed: len(issues) == 0, Issues: issues}, nil
}

// securityRule pairs a detection pattern with a fixed severity and title.
type securityRule struct {
	pattern  *regexp.Regexp
	severity models.Severity
	title    string
	detail   string
}

var securityRules = []securityRule{
	{
		pattern:  regexp.MustCompile(`\beval\s*\(`),
		severity: models.SeverityCritical,
		title:    "Code Injection Risk",
		detail:   "eval() executes arbitrary strings as code",
	},
	{
		pattern:  regexp.MustCompile(`\binnerHTML\s*=`),
		severity: models.SeverityHigh,
		title:    "XSS Risk",
		detail:   "Assigning to innerHTML can inject unescaped markup",
	},
	{
		pattern:  regexp.MustCompile(`(?i)\bpassword\s*[:=]\s*["'][^"']+["']`),
		severity: models.SeverityCritical,
		title:    "Hardcoded Password",
		detail:   "Credentials must not be embedded in source",
	},
	{
		pattern:  regexp.MustCompile(`(?i)\bapi[_-]?key\s*[:=]\s*["'][^"']+["']`),
		severity: models.SeverityCritical,
		title:    "Hardcoded API Key",
		detail:   "API keys must not be embedded in source",
	},
}

// securityExecutor scans for known-dangerous constructs. The step passes iff
// no critical issue was found.
func securityExecutor(ctx context.Context, target Target) (Outcome, error) {
	var issues []models.QualityIssue
	criticals := 0

	for _, rule := range securityRules {
		for _, loc := range rule.pattern.FindAllStringIndex(target.Content, -1) {
			line := strings.Count(target.Content[:loc[0]], "\n") + 1
			issues = append(issues, models.QualityIssue{
				ID:          xid.New().String(),
				Severity:    rule.severity,
				Step:        models.StepSecurity,
				Title:       rule.title,
				Description: rule.detail,
				File:        target.FilePath,
				Line:        line,
				Fixable:     false,
			})
			if rule.severity == models.SeverityCritical {
				criticals++
			}
		}
	}

	return Outcome{Passed: criticals == 0, Issues: issues}, nil
}
