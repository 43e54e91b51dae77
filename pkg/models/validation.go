package models

// ValidationStep identifies one stage of the validation pipeline.
type ValidationStep string

const (
	StepSyntax        ValidationStep = "syntax"
	StepTypeCheck     ValidationStep = "type_check"
	StepLint          ValidationStep = "lint"
	StepSecurity      ValidationStep = "security"
	StepTest          ValidationStep = "test"
	StepPerformance   ValidationStep = "performance"
	StepDocumentation ValidationStep = "documentation"
	StepIntegration   ValidationStep = "integration"
)

// AllSteps returns every pipeline step in declaration order. Sequential
// execution follows this order.
func AllSteps() []ValidationStep {
	return []ValidationStep{
		StepSyntax,
		StepTypeCheck,
		StepLint,
		StepSecurity,
		StepTest,
		StepPerformance,
		StepDocumentation,
		StepIntegration,
	}
}

// Severity is the level of a quality issue.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Deduction returns the score penalty one issue of this severity costs a step.
func (s Severity) Deduction() float64 {
	switch s {
	case SeverityCritical:
		return 20
	case SeverityHigh:
		return 10
	case SeverityMedium:
		return 5
	case SeverityLow:
		return 2
	default:
		return 1
	}
}

// QualityIssue is a single finding produced by a validation step executor.
type QualityIssue struct {
	ID          string         `json:"id"`
	Severity    Severity       `json:"severity"`
	Step        ValidationStep `json:"step"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	File        string         `json:"file,omitempty"`
	Line        int            `json:"line,omitempty"`
	Column      int            `json:"column,omitempty"`
	Fixable     bool           `json:"fixable"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ValidationResult is the outcome of one step for one target. Results are
// produced once per run and never mutated after return.
type ValidationResult struct {
	Step       ValidationStep `json:"step"`
	Passed     bool           `json:"passed"`
	Score      float64        `json:"score"` // [0,100]
	Issues     []QualityIssue `json:"issues"`
	DurationMS int64          `json:"duration_ms"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// CountIssues tallies issues at the given severity across results.
func CountIssues(results []ValidationResult, severity Severity) int {
	n := 0
	for _, r := range results {
		for _, issue := range r.Issues {
			if issue.Severity == severity {
				n++
			}
		}
	}
	return n
}

// QualityGateResult is a pass/fail decision derived from validation results.
type QualityGateResult struct {
	Name   string  `json:"name"`
	Passed bool    `json:"passed"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}
