// Package complexity computes heuristic complexity metrics over raw source
// text and turns them into weighted estimations with risk and effort figures.
//
// The metrics are regex approximations, not control-flow-graph computations:
// cyclomatic complexity counts decision keyword occurrences over the whole
// text, and the maintainability index substitutes 10*log2(lines) for the full
// Halstead volume. Known limitations, kept for reproducibility.
package complexity

import (
	"math"
	"regexp"
	"strings"

	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
)

var (
	dotCallPattern   = regexp.MustCompile(`\w+\.\w+\s*\(`)
	scopeCallPattern = regexp.MustCompile(`\w+::\w+\s*\(`)
)

// CalculateMetrics computes complexity metrics for source text in the given
// language. It never fails: garbage input degrades to near-zero metrics, and
// unknown languages use the default pattern table.
func CalculateMetrics(content, language string) models.ComplexityMetrics {
	cfg := lang.Get(language)

	m := models.ComplexityMetrics{Cyclomatic: 1}
	if content == "" {
		m.Maintainability = 100
		m.Cohesion = 5
		m.Testability = testability(m.Cyclomatic, 0, 0)
		return m
	}

	lines := strings.Split(content, "\n")
	m.Lines = len(lines)

	for _, pat := range cfg.DecisionPatterns() {
		m.Cyclomatic += len(pat.FindAllStringIndex(content, -1))
	}

	m.Cognitive, m.MaxNesting = cognitiveAndNesting(lines, cfg)
	m.Functions = countMatches(content, cfg.FunctionPatterns)
	m.Classes = countMatches(content, cfg.ClassPatterns)
	m.Dependencies = countMatches(content, cfg.ImportPatterns)

	externalCalls := len(dotCallPattern.FindAllStringIndex(content, -1)) +
		len(scopeCallPattern.FindAllStringIndex(content, -1))
	m.Coupling = math.Min(float64(m.Dependencies+externalCalls)/10, 10)
	m.Cohesion = cohesion(m.Lines, m.Functions, m.Classes)
	m.Maintainability = maintainability(m.Lines, m.Cyclomatic)
	m.Testability = testability(m.Cyclomatic, m.Coupling, m.Functions+m.Classes)

	return m
}

// cognitiveAndNesting walks lines once, tracking brace depth. Each line
// containing a decision keyword adds 1 + the nesting level at the start of
// the line; the maximum depth seen inside any line is the nesting metric.
func cognitiveAndNesting(lines []string, cfg *lang.Config) (cognitive, maxNesting int) {
	depth := 0
	for _, line := range lines {
		if lineHasDecision(line, cfg) {
			cognitive += 1 + depth
		}
		for _, r := range line {
			switch r {
			case '{':
				depth++
				if depth > maxNesting {
					maxNesting = depth
				}
			case '}':
				// Excess closers floor at zero; depth stays non-negative.
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return cognitive, maxNesting
}

func lineHasDecision(line string, cfg *lang.Config) bool {
	for _, pat := range cfg.DecisionPatterns() {
		if pat.MatchString(line) {
			return true
		}
	}
	return false
}

func countMatches(content string, patterns []*regexp.Regexp) int {
	n := 0
	for _, pat := range patterns {
		n += len(pat.FindAllStringIndex(content, -1))
	}
	return n
}

// cohesion estimates unit cohesion from lines per function/class. Files with
// no units get a fixed neutral 5.
func cohesion(lines, functions, classes int) float64 {
	units := functions + classes
	if units == 0 {
		return 5
	}
	linesPerUnit := float64(lines) / float64(units)
	return clamp(10-linesPerUnit/50, 0, 10)
}

// maintainability computes the simplified maintainability index. The Halstead
// volume term is approximated as 10*log2(lines).
func maintainability(lines, cyclomatic int) float64 {
	if lines == 0 {
		return 100
	}
	halsteadVolume := 10 * math.Log2(float64(lines))
	if halsteadVolume < 1 {
		halsteadVolume = 1
	}
	idx := 171 - 5.2*math.Log(halsteadVolume) - 0.23*float64(cyclomatic) - 16.2*math.Log(float64(lines))
	return clamp(idx, 0, 100)
}

// testability starts at 100 and penalizes complexity, coupling, and the
// absence of any extractable unit.
func testability(cyclomatic int, coupling float64, units int) float64 {
	penalty := float64(cyclomatic)/20 + coupling/10
	if units == 0 {
		penalty += 0.5
	}
	return clamp(100-20*penalty, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
