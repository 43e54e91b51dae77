package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-dev/augur/pkg/models"
)

func passingResults(scores ...float64) []models.ValidationResult {
	results := make([]models.ValidationResult, 0, len(scores))
	steps := models.AllSteps()
	for i, s := range scores {
		results = append(results, models.ValidationResult{
			Step:   steps[i%len(steps)],
			Passed: true,
			Score:  s,
		})
	}
	return results
}

func TestScoreIssuesDeductions(t *testing.T) {
	issues := []models.QualityIssue{
		{Severity: models.SeverityCritical}, // -20
		{Severity: models.SeverityHigh},     // -10
		{Severity: models.SeverityMedium},   // -5
		{Severity: models.SeverityLow},      // -2
		{Severity: models.SeverityInfo},     // -1
	}
	assert.Equal(t, 62.0, ScoreIssues(issues))
	assert.Equal(t, 100.0, ScoreIssues(nil))
}

func TestScoreIssuesFloorsAtZero(t *testing.T) {
	issues := make([]models.QualityIssue, 6)
	for i := range issues {
		issues[i] = models.QualityIssue{Severity: models.SeverityCritical}
	}
	assert.Equal(t, 0.0, ScoreIssues(issues))
}

func TestOverallScoreWeighted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps[models.StepSyntax] = StepConfig{Enabled: true, Weight: 3}
	cfg.Steps[models.StepSecurity] = StepConfig{Enabled: true, Weight: 1}
	p := New(WithConfig(cfg))

	results := []models.ValidationResult{
		{Step: models.StepSyntax, Score: 100},
		{Step: models.StepSecurity, Score: 60},
	}
	// (100*3 + 60*1) / 4
	assert.Equal(t, 90.0, p.OverallScore(results))
}

func TestOverallScoreEmpty(t *testing.T) {
	p := New()
	assert.Equal(t, 0.0, p.OverallScore(nil))
}

func TestQualityGatesAllPassing(t *testing.T) {
	p := New()
	results := passingResults(90, 85)

	gates := p.GenerateQualityGates(results)
	require.Len(t, gates, 3)

	overall := gates[0]
	assert.Equal(t, "overall_quality", overall.Name)
	assert.True(t, overall.Passed)
	assert.Equal(t, 87.5, overall.Score)
	assert.Empty(t, overall.Reason)

	assert.True(t, gates[1].Passed)
	assert.True(t, gates[2].Passed)
}

func TestQualityGateFailsBelowMinScore(t *testing.T) {
	p := New()
	gates := p.GenerateQualityGates(passingResults(60, 60))

	overall := gates[0]
	assert.False(t, overall.Passed)
	assert.Contains(t, overall.Reason, "below minimum")
}

func TestQualityGateFailsOnCriticalIssues(t *testing.T) {
	p := New()
	results := []models.ValidationResult{
		{
			Step:   models.StepSecurity,
			Passed: true, // step reported success
			Score:  80,
			Issues: []models.QualityIssue{{Severity: models.SeverityCritical}},
		},
		{Step: models.StepSyntax, Passed: true, Score: 100},
	}

	gates := p.GenerateQualityGates(results)

	overall := gates[0]
	assert.False(t, overall.Passed)
	assert.Contains(t, overall.Reason, "critical")

	// the per-step gate is stricter than the step's own passed flag
	var securityGate models.QualityGateResult
	for _, g := range gates[1:] {
		if g.Name == string(models.StepSecurity) {
			securityGate = g
		}
	}
	assert.False(t, securityGate.Passed)
	assert.Contains(t, securityGate.Reason, "critical")
}

func TestQualityGateFailsOnHighIssues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.MaxHighIssues = 1
	p := New(WithConfig(cfg))

	results := []models.ValidationResult{
		{Step: models.StepLint, Passed: true, Score: 80,
			Issues: []models.QualityIssue{
				{Severity: models.SeverityHigh},
				{Severity: models.SeverityHigh},
			}},
	}

	overall := p.GenerateQualityGates(results)[0]
	assert.False(t, overall.Passed)
	assert.Contains(t, overall.Reason, "high issue")
}

func TestSummarize(t *testing.T) {
	p := New()
	results := map[string][]models.ValidationResult{
		"a.js": {
			{Step: models.StepSyntax, Passed: true, Score: 100},
			{Step: models.StepSecurity, Passed: true, Score: 80,
				Issues: []models.QualityIssue{{Severity: models.SeverityHigh}}},
		},
		"b.js": {
			{Step: models.StepSyntax, Passed: false, Score: 40,
				Issues: []models.QualityIssue{{Severity: models.SeverityCritical}}},
		},
		"broken.js": {},
	}

	summary := p.Summarize(results)

	assert.Equal(t, 3, summary.Files)
	// b.js failed a step, broken.js produced nothing
	assert.Equal(t, 2, summary.FailedFiles)
	assert.Equal(t, 3, summary.TotalSteps)
	assert.Equal(t, 2, summary.TotalIssues)
	assert.Equal(t, 1, summary.CriticalIssues)
	assert.Equal(t, 1, summary.HighIssues)
	// per-file scores: a.js 90, b.js 40
	assert.Equal(t, 65.0, summary.MeanScore)
	assert.Greater(t, summary.StdDevScore, 0.0)
}

func TestSummarizeEmpty(t *testing.T) {
	p := New()
	summary := p.Summarize(nil)
	assert.Equal(t, 0, summary.Files)
	assert.Equal(t, 0.0, summary.MeanScore)
}
