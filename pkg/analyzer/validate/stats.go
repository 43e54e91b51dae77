package validate

import (
	"sort"

	"github.com/augur-dev/augur/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// ProjectSummary aggregates score statistics across a project validation run.
type ProjectSummary struct {
	Files          int     `json:"files"`
	FailedFiles    int     `json:"failed_files"`
	TotalSteps     int     `json:"total_steps"`
	TotalIssues    int     `json:"total_issues"`
	CriticalIssues int     `json:"critical_issues"`
	HighIssues     int     `json:"high_issues"`
	MeanScore      float64 `json:"mean_score"`
	StdDevScore    float64 `json:"stddev_score"`
	P50Score       float64 `json:"p50_score"`
	P95Score       float64 `json:"p95_score"`
}

// Summarize computes per-file overall scores and their distribution. A file
// fails when any of its steps failed or it produced no results at all.
func (p *Pipeline) Summarize(results map[string][]models.ValidationResult) ProjectSummary {
	summary := ProjectSummary{Files: len(results)}

	scores := make([]float64, 0, len(results))
	for _, fileResults := range results {
		if len(fileResults) == 0 {
			summary.FailedFiles++
			continue
		}

		failed := false
		for _, r := range fileResults {
			summary.TotalSteps++
			summary.TotalIssues += len(r.Issues)
			if !r.Passed {
				failed = true
			}
		}
		if failed {
			summary.FailedFiles++
		}

		summary.CriticalIssues += models.CountIssues(fileResults, models.SeverityCritical)
		summary.HighIssues += models.CountIssues(fileResults, models.SeverityHigh)
		scores = append(scores, p.OverallScore(fileResults))
	}

	if len(scores) == 0 {
		return summary
	}

	sort.Float64s(scores)
	summary.MeanScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		summary.StdDevScore = stat.StdDev(scores, nil)
	}
	summary.P50Score = stat.Quantile(0.5, stat.Empirical, scores, nil)
	summary.P95Score = stat.Quantile(0.95, stat.Empirical, scores, nil)

	return summary
}
