package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-dev/augur/pkg/models"
)

func TestBuildEstimationCalmMetrics(t *testing.T) {
	m := models.ComplexityMetrics{
		Cyclomatic:      1,
		Maintainability: 100,
		Testability:     100,
		Cohesion:        5,
	}

	est := BuildEstimation(m, "javascript", EstimationContext{
		Target: "snippet",
		Type:   models.TargetSnippet,
	})

	assert.Equal(t, models.LevelSimple, est.Level)
	assert.Equal(t, []string{AcceptableRangesMessage}, est.Recommendations)
	assert.Equal(t, 1, est.FileCount)

	// snippet base 1h, score near zero, multiplier 1.0
	assert.InDelta(t, 1.0, est.DevelopmentHours, 0.05)
	// testability 100 gives the 0.3 testing ratio
	assert.InDelta(t, est.DevelopmentHours*0.3, est.TestingHours, 0.05)
}

func TestEstimationTestingRatioAtZeroTestability(t *testing.T) {
	m := models.ComplexityMetrics{
		Cyclomatic:      1,
		Maintainability: 100,
		Testability:     0,
	}

	est := BuildEstimation(m, "javascript", EstimationContext{Type: models.TargetSnippet})
	assert.InDelta(t, est.DevelopmentHours*0.7, est.TestingHours, 0.01)
}

func TestEstimationLanguageMultiplier(t *testing.T) {
	m := models.ComplexityMetrics{Maintainability: 100, Testability: 100}

	js := BuildEstimation(m, "javascript", EstimationContext{Type: models.TargetSnippet})
	cpp := BuildEstimation(m, "cpp", EstimationContext{Type: models.TargetSnippet})

	assert.InDelta(t, js.DevelopmentHours*1.5, cpp.DevelopmentHours, 0.01)
}

func TestEstimationHighCyclomatic(t *testing.T) {
	m := models.ComplexityMetrics{
		Cyclomatic:      20,
		Maintainability: 100,
		Testability:     100,
	}

	est := BuildEstimation(m, "javascript", EstimationContext{Type: models.TargetFile})

	var cycFactor *models.ComplexityFactor
	for i := range est.Factors {
		if est.Factors[i].Name == "cyclomatic" {
			cycFactor = &est.Factors[i]
		}
	}
	require.NotNil(t, cycFactor)
	assert.Equal(t, 1.0, cycFactor.Value)
	assert.Equal(t, models.ImpactHigh, cycFactor.Impact)

	// only the cyclomatic factor contributes: 0.25 / 0.75
	assert.InDelta(t, 1.0/3.0, est.Score, 1e-9)
	assert.Equal(t, models.LevelModerate, est.Level)

	assert.Contains(t, est.Recommendations,
		"Reduce cyclomatic complexity by extracting decision logic into separate functions")

	// technical risk = score + 20/50 crosses the mitigation threshold
	assert.Greater(t, est.Risk.Technical, 0.7)
	assert.NotEmpty(t, est.Risk.Mitigations)
}

func TestEstimationFactorWeights(t *testing.T) {
	est := BuildEstimation(models.ComplexityMetrics{Maintainability: 100, Testability: 100},
		"javascript", EstimationContext{Type: models.TargetSnippet})

	weights := map[string]float64{}
	for _, f := range est.Factors {
		weights[f.Name] = f.Weight
	}
	assert.Equal(t, 0.25, weights["cyclomatic"])
	assert.Equal(t, 0.25, weights["cognitive"])
	assert.Equal(t, 0.15, weights["nesting"])
	assert.Equal(t, 0.10, weights["dependencies"])
}

func TestEstimationScoreBounds(t *testing.T) {
	m := models.ComplexityMetrics{
		Cyclomatic:   1000,
		Cognitive:    1000,
		MaxNesting:   50,
		Dependencies: 500,
	}
	est := BuildEstimation(m, "javascript", EstimationContext{Type: models.TargetFile})

	assert.LessOrEqual(t, est.Score, 1.0)
	assert.Equal(t, models.LevelCritical, est.Level)
	assert.LessOrEqual(t, est.Risk.Overall, 1.0)
}

func TestSuggestBreakdownStrategiesSentinel(t *testing.T) {
	m := models.ComplexityMetrics{Cyclomatic: 3, Maintainability: 80}
	got := SuggestBreakdownStrategies(m, "javascript")
	assert.Equal(t, []string{AcceptableRangesMessage}, got)
}

func TestSuggestBreakdownStrategiesThresholds(t *testing.T) {
	m := models.ComplexityMetrics{
		Cyclomatic:      16,
		Cognitive:       16,
		MaxNesting:      5,
		Functions:       21,
		Dependencies:    16,
		Maintainability: 59,
	}
	got := SuggestBreakdownStrategies(m, "javascript")
	assert.Len(t, got, 6)
	assert.NotContains(t, got, AcceptableRangesMessage)

	// exactly at a threshold does not trigger
	edge := SuggestBreakdownStrategies(models.ComplexityMetrics{
		Cyclomatic: 15, Cognitive: 15, MaxNesting: 4,
		Functions: 20, Dependencies: 15, Maintainability: 60,
	}, "javascript")
	assert.Equal(t, []string{AcceptableRangesMessage}, edge)
}
