package semantic

import (
	"regexp"
	"strings"

	"github.com/augur-dev/augur/pkg/models"
)

// Pattern detection confidences are fixed heuristic constants, not computed
// probabilities.
const (
	confidenceSingleton    = 0.8
	confidenceFactory      = 0.7
	confidenceObserver     = 0.75
	confidenceGodClass     = 0.9
	confidenceMagicNumbers = 0.6
)

const (
	godClassLineLimit   = 500
	godClassMethodLimit = 20
	magicNumberLimit    = 3
)

var (
	// A class body containing a private static instance field and a
	// getInstance method, in either order.
	singletonPattern = regexp.MustCompile(
		`class\s+\w+[\s\S]*?(?:private\s+static\s+\w*\s*instance[\s\S]*?getInstance|getInstance[\s\S]*?private\s+static\s+\w*\s*instance)`)

	factoryPattern  = regexp.MustCompile(`\b(?:create|make)[A-Z_]\w*|(?i:\w*factory)\b`)
	observerPattern = regexp.MustCompile(`\b(?:subscribe|unsubscribe|notify|observer)\b`)

	methodLikePattern  = regexp.MustCompile(`\b\w+\s*\([^)]*\)\s*\{`)
	numericLiteral     = regexp.MustCompile(`\b\d{2,}\b`)
	magicNumberExclude = map[string]bool{"100": true, "1000": true}
)

// DetectPatterns scans source text for design-pattern and anti-pattern
// signals. The language tag is accepted for interface symmetry; the current
// heuristics are language independent.
func DetectPatterns(content, language string) []models.PatternMatch {
	_ = language

	patterns := []models.PatternMatch{}

	if singletonPattern.MatchString(content) {
		patterns = append(patterns, models.PatternMatch{
			Name:        "singleton",
			Confidence:  confidenceSingleton,
			Description: "Class holds a private static instance behind getInstance()",
		})
	}

	if factoryPattern.MatchString(content) {
		patterns = append(patterns, models.PatternMatch{
			Name:        "factory",
			Confidence:  confidenceFactory,
			Description: "Creation logic exposed via create*/make*/Factory naming",
		})
	}

	if observerPattern.MatchString(content) {
		patterns = append(patterns, models.PatternMatch{
			Name:        "observer",
			Confidence:  confidenceObserver,
			Description: "Subscribe/notify vocabulary suggests an observer relationship",
		})
	}

	lines := len(strings.Split(content, "\n"))
	methods := len(methodLikePattern.FindAllStringIndex(content, -1))
	if lines > godClassLineLimit || methods > godClassMethodLimit {
		patterns = append(patterns, models.PatternMatch{
			Name:        "god_class",
			Confidence:  confidenceGodClass,
			Description: "Unit is oversized in lines or method count",
		})
	}

	if countMagicNumbers(content) > magicNumberLimit {
		patterns = append(patterns, models.PatternMatch{
			Name:        "magic_numbers",
			Confidence:  confidenceMagicNumbers,
			Description: "Repeated unexplained numeric literals",
		})
	}

	return patterns
}

func countMagicNumbers(content string) int {
	n := 0
	for _, lit := range numericLiteral.FindAllString(content, -1) {
		if !magicNumberExclude[lit] {
			n++
		}
	}
	return n
}
