package models

// TargetType identifies what kind of target a complexity analysis ran against.
type TargetType string

const (
	TargetFile      TargetType = "file"
	TargetDirectory TargetType = "directory"
	TargetProject   TargetType = "project"
	TargetSnippet   TargetType = "snippet"
)

// ComplexityLevel is the discrete band an overall complexity score falls into.
type ComplexityLevel string

const (
	LevelSimple   ComplexityLevel = "simple"
	LevelModerate ComplexityLevel = "moderate"
	LevelComplex  ComplexityLevel = "complex"
	LevelCritical ComplexityLevel = "critical"
)

// LevelForScore maps an overall score in [0,1] to a discrete complexity level.
// Boundaries are inclusive-lower: 0.25 is moderate, 0.5 is complex, 0.75 is critical.
func LevelForScore(score float64) ComplexityLevel {
	switch {
	case score < 0.25:
		return LevelSimple
	case score < 0.5:
		return LevelModerate
	case score < 0.75:
		return LevelComplex
	default:
		return LevelCritical
	}
}

// ComplexityMetrics represents heuristic complexity measurements for a piece
// of source text. Values are computed once per analysis and never mutated.
type ComplexityMetrics struct {
	Cyclomatic      int     `json:"cyclomatic"`
	Cognitive       int     `json:"cognitive"`
	MaxNesting      int     `json:"max_nesting"`
	Maintainability float64 `json:"maintainability"`
	Testability     float64 `json:"testability"`
	Lines           int     `json:"lines"`
	Functions       int     `json:"functions"`
	Classes         int     `json:"classes"`
	Dependencies    int     `json:"dependencies"`
	Coupling        float64 `json:"coupling"`
	Cohesion        float64 `json:"cohesion"`
}

// FactorImpact classifies how strongly a factor contributes to overall complexity.
type FactorImpact string

const (
	ImpactLow    FactorImpact = "low"
	ImpactMedium FactorImpact = "medium"
	ImpactHigh   FactorImpact = "high"
)

// ComplexityFactor is one normalized, weighted contributor to the overall score.
type ComplexityFactor struct {
	Name        string       `json:"name"`
	Value       float64      `json:"value"` // normalized to [0,1]
	Weight      float64      `json:"weight"`
	Impact      FactorImpact `json:"impact"`
	Description string       `json:"description"`
}

// RiskAssessment scores four risk categories plus an overall mean, each in [0,1].
type RiskAssessment struct {
	Overall     float64  `json:"overall"`
	Technical   float64  `json:"technical"`
	Timeline    float64  `json:"timeline"`
	Resource    float64  `json:"resource"`
	Integration float64  `json:"integration"`
	Mitigations []string `json:"mitigations,omitempty"`
}

// ComplexityEstimation is the full output of a complexity analysis: raw
// metrics, weighted factors, the derived score and level, recommendations,
// risk, and effort estimates.
type ComplexityEstimation struct {
	Target           string             `json:"target"`
	Type             TargetType         `json:"type"`
	Language         string             `json:"language"`
	Score            float64            `json:"score"` // [0,1]
	Level            ComplexityLevel    `json:"level"`
	Metrics          ComplexityMetrics  `json:"metrics"`
	Factors          []ComplexityFactor `json:"factors"`
	Recommendations  []string           `json:"recommendations"`
	DevelopmentHours float64            `json:"development_hours"`
	TestingHours     float64            `json:"testing_hours"`
	Risk             RiskAssessment     `json:"risk"`
	FileCount        int                `json:"file_count"`
}
