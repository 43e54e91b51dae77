package validate

import (
	"fmt"

	"github.com/augur-dev/augur/pkg/models"
)

// OverallScore computes the weighted average of step scores using the
// configured step weights.
func (p *Pipeline) OverallScore(results []models.ValidationResult) float64 {
	cfg := p.Config()

	var weighted, total float64
	for _, r := range results {
		w := cfg.stepConfig(r.Step).Weight
		weighted += r.Score * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// GenerateQualityGates derives gate decisions from a result set: one overall
// gate against the configured thresholds, plus one gate per executed step.
// A step gate is stricter than the step's own passed flag: any critical
// issue fails the gate even when the step reported success.
func (p *Pipeline) GenerateQualityGates(results []models.ValidationResult) []models.QualityGateResult {
	cfg := p.Config()

	overall := p.OverallScore(results)
	criticals := models.CountIssues(results, models.SeverityCritical)
	highs := models.CountIssues(results, models.SeverityHigh)

	overallPassed := overall >= cfg.Thresholds.MinScore &&
		criticals <= cfg.Thresholds.MaxCriticalIssues &&
		highs <= cfg.Thresholds.MaxHighIssues

	gates := []models.QualityGateResult{{
		Name:   "overall_quality",
		Passed: overallPassed,
		Score:  overall,
		Reason: overallReason(overall, criticals, highs, cfg.Thresholds, overallPassed),
	}}

	for _, r := range results {
		stepCriticals := 0
		for _, issue := range r.Issues {
			if issue.Severity == models.SeverityCritical {
				stepCriticals++
			}
		}

		passed := r.Passed && stepCriticals == 0
		reason := ""
		if !passed {
			if stepCriticals > 0 {
				reason = fmt.Sprintf("%d critical issue(s)", stepCriticals)
			} else {
				reason = "step did not pass"
			}
		}

		gates = append(gates, models.QualityGateResult{
			Name:   string(r.Step),
			Passed: passed,
			Score:  r.Score,
			Reason: reason,
		})
	}

	return gates
}

func overallReason(score float64, criticals, highs int, t Thresholds, passed bool) string {
	if passed {
		return ""
	}
	switch {
	case score < t.MinScore:
		return fmt.Sprintf("score %.1f below minimum %.1f", score, t.MinScore)
	case criticals > t.MaxCriticalIssues:
		return fmt.Sprintf("%d critical issue(s), max %d", criticals, t.MaxCriticalIssues)
	default:
		return fmt.Sprintf("%d high issue(s), max %d", highs, t.MaxHighIssues)
	}
}
