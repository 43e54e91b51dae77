package validate

import (
	"time"

	"github.com/augur-dev/augur/pkg/models"
)

// StepConfig controls one pipeline step.
type StepConfig struct {
	Enabled bool          `json:"enabled"`
	Weight  float64       `json:"weight"`
	Timeout time.Duration `json:"timeout"`
}

// Thresholds are the quality-gate limits applied to a full validation run.
type Thresholds struct {
	MinScore          float64 `json:"min_score"`
	MaxCriticalIssues int     `json:"max_critical_issues"`
	MaxHighIssues     int     `json:"max_high_issues"`
}

// Config is the pipeline-wide configuration. A process-wide default exists;
// callers override it via UpdateConfig, which is administrative and not
// expected to race with active validation runs.
type Config struct {
	Steps          map[models.ValidationStep]StepConfig `json:"steps"`
	Thresholds     Thresholds                           `json:"thresholds"`
	Parallel       bool                                 `json:"parallel"`
	MaxConcurrency int                                  `json:"max_concurrency"`
}

// DefaultConfig enables every step with equal weight, a 30s timeout each,
// parallel execution, and a batch width of 5 files.
func DefaultConfig() Config {
	steps := make(map[models.ValidationStep]StepConfig, len(models.AllSteps()))
	for _, step := range models.AllSteps() {
		steps[step] = StepConfig{
			Enabled: true,
			Weight:  1.0,
			Timeout: 30 * time.Second,
		}
	}
	return Config{
		Steps: steps,
		Thresholds: Thresholds{
			MinScore:          70,
			MaxCriticalIssues: 0,
			MaxHighIssues:     3,
		},
		Parallel:       true,
		MaxConcurrency: 5,
	}
}

// stepConfig returns the step's config, falling back to an enabled default
// for steps missing from the map.
func (c Config) stepConfig(step models.ValidationStep) StepConfig {
	if sc, ok := c.Steps[step]; ok {
		return sc
	}
	return StepConfig{Enabled: true, Weight: 1.0, Timeout: 30 * time.Second}
}
