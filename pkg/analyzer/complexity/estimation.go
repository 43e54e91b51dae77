package complexity

import (
	"math"

	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
)

// AcceptableRangesMessage is returned when no recommendation or breakdown
// strategy applies. Callers test against it, so it never changes casually.
const AcceptableRangesMessage = "Code complexity is within acceptable ranges"

// factorSpec fixes the normalization denominator, weight, and impact
// thresholds for one complexity factor.
type factorSpec struct {
	name        string
	denominator float64
	weight      float64
	highAt      float64 // normalized value at or above which impact is high
	mediumAt    float64
	description string
}

var factorSpecs = []factorSpec{
	{"cyclomatic", 20, 0.25, 0.7, 0.4, "Number of independent paths through the code"},
	{"cognitive", 25, 0.25, 0.7, 0.4, "Mental effort required to understand the code"},
	{"nesting", 6, 0.15, 0.7, 0.4, "Maximum depth of nested control structures"},
	{"dependencies", 20, 0.10, 0.7, 0.4, "Number of imported modules"},
}

// EstimationContext carries call-site information the metrics alone do not
// have: what kind of target was analyzed and how many files it spanned.
type EstimationContext struct {
	Target    string
	Type      models.TargetType
	FileCount int
}

// BuildEstimation turns raw metrics into a weighted estimation with a
// discrete level, risk assessment, recommendations, and effort figures.
func BuildEstimation(metrics models.ComplexityMetrics, language string, ectx EstimationContext) *models.ComplexityEstimation {
	if ectx.FileCount < 1 {
		ectx.FileCount = 1
	}

	factors := extractFactors(metrics)
	score := overallScore(factors)
	risk := assessRisk(score, metrics, ectx.FileCount)
	devHours, testHours := estimateEffort(metrics, score, ectx.Type, lang.Get(language).Multiplier)

	return &models.ComplexityEstimation{
		Target:           ectx.Target,
		Type:             ectx.Type,
		Language:         language,
		Score:            score,
		Level:            models.LevelForScore(score),
		Metrics:          metrics,
		Factors:          factors,
		Recommendations:  recommend(factors, metrics, risk),
		DevelopmentHours: devHours,
		TestingHours:     testHours,
		Risk:             risk,
		FileCount:        ectx.FileCount,
	}
}

func extractFactors(m models.ComplexityMetrics) []models.ComplexityFactor {
	raw := map[string]float64{
		"cyclomatic":   float64(m.Cyclomatic),
		"cognitive":    float64(m.Cognitive),
		"nesting":      float64(m.MaxNesting),
		"dependencies": float64(m.Dependencies),
	}

	factors := make([]models.ComplexityFactor, 0, len(factorSpecs))
	for _, spec := range factorSpecs {
		value := clamp(raw[spec.name]/spec.denominator, 0, 1)
		factors = append(factors, models.ComplexityFactor{
			Name:        spec.name,
			Value:       value,
			Weight:      spec.weight,
			Impact:      impactFor(value, spec),
			Description: spec.description,
		})
	}
	return factors
}

func impactFor(value float64, spec factorSpec) models.FactorImpact {
	switch {
	case value >= spec.highAt:
		return models.ImpactHigh
	case value >= spec.mediumAt:
		return models.ImpactMedium
	default:
		return models.ImpactLow
	}
}

// overallScore is the weighted average of factor values, clamped to [0,1].
func overallScore(factors []models.ComplexityFactor) float64 {
	var weighted, total float64
	for _, f := range factors {
		weighted += f.Value * f.Weight
		total += f.Weight
	}
	if total == 0 {
		return 0
	}
	return clamp(weighted/total, 0, 1)
}

const riskThreshold = 0.7

func assessRisk(score float64, m models.ComplexityMetrics, fileCount int) models.RiskAssessment {
	r := models.RiskAssessment{
		Technical:   math.Min(score+float64(m.Cyclomatic)/50, 1),
		Timeline:    math.Min(score+float64(fileCount)/100, 1),
		Resource:    math.Min((m.Coupling+float64(m.Dependencies))/30, 1),
		Integration: math.Min(float64(m.Dependencies)/20, 1),
	}
	r.Overall = (r.Technical + r.Timeline + r.Resource + r.Integration) / 4

	if r.Technical > riskThreshold {
		r.Mitigations = append(r.Mitigations,
			"Add unit tests before modifying complex paths",
			"Break down complex functions into smaller units")
	}
	if r.Timeline > riskThreshold {
		r.Mitigations = append(r.Mitigations,
			"Split delivery into incremental milestones",
			"Tackle the highest-complexity files first")
	}
	if r.Resource > riskThreshold {
		r.Mitigations = append(r.Mitigations,
			"Reduce coupling between modules",
			"Introduce interface boundaries around shared dependencies")
	}
	if r.Integration > riskThreshold {
		r.Mitigations = append(r.Mitigations,
			"Add integration tests for external dependencies",
			"Isolate third-party integrations behind adapters")
	}
	return r
}

var factorRecommendations = map[string]string{
	"cyclomatic":   "Reduce cyclomatic complexity by extracting decision logic into separate functions",
	"cognitive":    "Simplify nested control flow to lower cognitive load",
	"nesting":      "Flatten deeply nested blocks using early returns",
	"dependencies": "Consolidate related imports to reduce the dependency surface",
}

// recommend derives suggestions from high-impact factors and unconditional
// metric checks. It never returns an empty list.
func recommend(factors []models.ComplexityFactor, m models.ComplexityMetrics, risk models.RiskAssessment) []string {
	var recs []string
	for _, f := range factors {
		if f.Impact == models.ImpactHigh {
			if rec, ok := factorRecommendations[f.Name]; ok {
				recs = append(recs, rec)
			}
		}
	}
	if m.Maintainability < 60 {
		recs = append(recs, "Refactor toward smaller, better documented units to raise maintainability")
	}
	if m.Testability < 60 {
		recs = append(recs, "Reduce coupling to make the code easier to test in isolation")
	}
	if risk.Overall > riskThreshold {
		recs = append(recs, "Schedule an architectural review before committing to this work")
	}
	if len(recs) == 0 {
		recs = []string{AcceptableRangesMessage}
	}
	return recs
}

// estimateEffort converts the score into development and testing hours.
// Snippets get a one-hour base; file-backed targets scale with size. Higher
// testability lowers the testing ratio (0.3 at testability 100, 0.7 at 0).
func estimateEffort(m models.ComplexityMetrics, score float64, targetType models.TargetType, multiplier float64) (dev, test float64) {
	baseTime := 1.0
	if targetType != models.TargetSnippet {
		baseTime = float64(m.Lines) / 100 * 2
	}

	dev = round2(baseTime * (1 + score*2) * multiplier)
	test = round2(dev * (0.7 - m.Testability/100*0.4))
	return dev, test
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// breakdownRule maps one metric threshold to a breakdown strategy.
type breakdownRule struct {
	applies    func(models.ComplexityMetrics) bool
	suggestion string
}

var breakdownRules = []breakdownRule{
	{func(m models.ComplexityMetrics) bool { return m.Cyclomatic > 15 },
		"Split decision-heavy logic into smaller functions"},
	{func(m models.ComplexityMetrics) bool { return m.Cognitive > 15 },
		"Reduce nested control flow with guard clauses and early returns"},
	{func(m models.ComplexityMetrics) bool { return m.MaxNesting > 4 },
		"Extract deeply nested blocks into helper functions"},
	{func(m models.ComplexityMetrics) bool { return m.Functions > 20 },
		"Group related functions into separate modules"},
	{func(m models.ComplexityMetrics) bool { return m.Dependencies > 15 },
		"Introduce a facade to consolidate external dependencies"},
	{func(m models.ComplexityMetrics) bool { return m.Maintainability < 60 },
		"Refactor long or undocumented sections before adding features"},
}

// SuggestBreakdownStrategies returns decomposition suggestions for metrics
// exceeding fixed thresholds, or the acceptable-ranges sentinel when none do.
func SuggestBreakdownStrategies(m models.ComplexityMetrics, language string) []string {
	_ = language // reserved for language-specific strategies

	var suggestions []string
	for _, rule := range breakdownRules {
		if rule.applies(m) {
			suggestions = append(suggestions, rule.suggestion)
		}
	}
	if len(suggestions) == 0 {
		return []string{AcceptableRangesMessage}
	}
	return suggestions
}
