package models

import "testing"

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  ComplexityLevel
	}{
		{0, LevelSimple},
		{0.2499, LevelSimple},
		{0.25, LevelModerate},
		{0.4999, LevelModerate},
		{0.5, LevelComplex},
		{0.7499, LevelComplex},
		{0.75, LevelCritical},
		{1.0, LevelCritical},
	}

	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSeverityDeduction(t *testing.T) {
	tests := []struct {
		severity Severity
		want     float64
	}{
		{SeverityCritical, 20},
		{SeverityHigh, 10},
		{SeverityMedium, 5},
		{SeverityLow, 2},
		{SeverityInfo, 1},
		{Severity("bogus"), 1},
	}

	for _, tt := range tests {
		if got := tt.severity.Deduction(); got != tt.want {
			t.Errorf("%s.Deduction() = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestAllStepsOrder(t *testing.T) {
	steps := AllSteps()
	want := []ValidationStep{
		StepSyntax, StepTypeCheck, StepLint, StepSecurity,
		StepTest, StepPerformance, StepDocumentation, StepIntegration,
	}
	if len(steps) != len(want) {
		t.Fatalf("AllSteps() returned %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("AllSteps()[%d] = %q, want %q", i, steps[i], want[i])
		}
	}
}

func TestCountIssues(t *testing.T) {
	results := []ValidationResult{
		{Issues: []QualityIssue{
			{Severity: SeverityCritical},
			{Severity: SeverityHigh},
		}},
		{Issues: []QualityIssue{
			{Severity: SeverityCritical},
			{Severity: SeverityLow},
		}},
	}

	if got := CountIssues(results, SeverityCritical); got != 2 {
		t.Errorf("critical count = %d, want 2", got)
	}
	if got := CountIssues(results, SeverityHigh); got != 1 {
		t.Errorf("high count = %d, want 1", got)
	}
	if got := CountIssues(results, SeverityMedium); got != 0 {
		t.Errorf("medium count = %d, want 0", got)
	}
}
