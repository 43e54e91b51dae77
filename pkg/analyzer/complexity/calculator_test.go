package complexity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMetricsEmptyContent(t *testing.T) {
	m := CalculateMetrics("", "javascript")

	assert.Equal(t, 1, m.Cyclomatic)
	assert.Equal(t, 0, m.Cognitive)
	assert.Equal(t, 0, m.MaxNesting)
	assert.Equal(t, 0, m.Lines)
	assert.Equal(t, 100.0, m.Maintainability)
	assert.Equal(t, 5.0, m.Cohesion)
	// 100 - 20*(1/20 + 0.5 no-unit penalty)
	assert.Equal(t, 89.0, m.Testability)
}

func TestCalculateMetricsBranching(t *testing.T) {
	code := "function foo(x) {\n" +
		"  if (x > 0) { return 1; } else { return 2; }\n" +
		"}"

	m := CalculateMetrics(code, "javascript")

	// 1 + "if" + "else"
	assert.Equal(t, 3, m.Cyclomatic)
	// decision line starts at depth 1
	assert.Equal(t, 2, m.Cognitive)
	assert.Equal(t, 2, m.MaxNesting)
	assert.Equal(t, 3, m.Lines)
	assert.Equal(t, 1, m.Functions)
	assert.Equal(t, 0, m.Classes)
	assert.Equal(t, 0, m.Dependencies)
}

func TestNestingCountsWithinOneLine(t *testing.T) {
	m := CalculateMetrics("if (a) { if (b) { c(); } }", "javascript")
	assert.Equal(t, 2, m.MaxNesting)
}

func TestCognitiveNonNegativeWithExcessClosers(t *testing.T) {
	m := CalculateMetrics("}\n}\nif (x) {\n", "javascript")

	// the stray closers must not pull the decision line below depth 0
	assert.Equal(t, 1, m.Cognitive)
	assert.GreaterOrEqual(t, m.Cognitive, 0)
	assert.Equal(t, 1, m.MaxNesting)
}

func TestCyclomaticMonotonicity(t *testing.T) {
	base := CalculateMetrics("if (a) { x(); }", "javascript")
	more := CalculateMetrics("if (a) { x(); }\nif (b) { y(); }\nif (c) { z(); }", "javascript")
	assert.Greater(t, more.Cyclomatic, base.Cyclomatic)
}

func TestCohesionWithoutUnits(t *testing.T) {
	m := CalculateMetrics("x = 1\ny = 2", "javascript")
	assert.Equal(t, 5.0, m.Cohesion)
	assert.Equal(t, 0, m.Functions)
}

func TestDependenciesAndCoupling(t *testing.T) {
	code := `import { a } from "mod-a"
import { b } from "mod-b"
const x = util.parse(raw)`

	m := CalculateMetrics(code, "javascript")

	assert.Equal(t, 2, m.Dependencies)
	// (2 deps + 1 external call) / 10
	assert.InDelta(t, 0.3, m.Coupling, 1e-9)
}

func TestMaintainabilityDecreasesWithSize(t *testing.T) {
	short := CalculateMetrics("x = 1", "javascript")

	var b strings.Builder
	for i := 0; i < 400; i++ {
		b.WriteString("if (a) { doWork(); }\n")
	}
	long := CalculateMetrics(b.String(), "javascript")

	assert.Less(t, long.Maintainability, short.Maintainability)
	assert.GreaterOrEqual(t, long.Maintainability, 0.0)
	assert.LessOrEqual(t, short.Maintainability, 100.0)
}

func TestUnknownLanguageUsesDefaultPatterns(t *testing.T) {
	code := "if (x) { y(); }"
	unknown := CalculateMetrics(code, "unknown")
	js := CalculateMetrics(code, "javascript")
	assert.Equal(t, js, unknown)
}

func TestPythonPatterns(t *testing.T) {
	code := `import os
from typing import List

def process(items):
    for item in items:
        if item and item.valid:
            yield item
`
	m := CalculateMetrics(code, "python")

	assert.Equal(t, 2, m.Dependencies)
	assert.Equal(t, 1, m.Functions)
	// 1 + for + if + and
	assert.Equal(t, 4, m.Cyclomatic)
}
