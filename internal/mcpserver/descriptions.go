package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeComplexity() string {
	return `Estimates complexity of a file, directory, project, or code snippet.

USE WHEN:
- Sizing a change before committing to it
- Finding refactoring candidates
- Estimating development and testing effort

INTERPRETING RESULTS:
- score: weighted [0,1] aggregate of cyclomatic, cognitive, nesting, and dependency factors
- level: simple (<0.25), moderate (<0.5), complex (<0.75), critical
- Cyclomatic > 15 or cognitive > 15: strong refactoring candidate
- maintainability < 60: long or under-documented code
- risk: technical, timeline, resource, and integration probabilities with mitigations

METRICS RETURNED:
- metrics: cyclomatic, cognitive, max_nesting, maintainability, testability, coupling, cohesion, lines, functions, classes, dependencies
- factors: normalized weighted contributions with impact levels
- development_hours and testing_hours estimates`
}

func describeSemantic() string {
	return `Performs semantic analysis of one file: symbols, maintainability issues, and dependencies.

USE WHEN:
- Mapping what a file declares before editing it
- Finding long functions, unclear names, or missing comments
- Listing a file's internal and external dependencies

INTERPRETING RESULTS:
- symbols: declared functions, classes, interfaces, types, and variables with positions
- maintainability.issues: concrete findings such as functions over 50 lines
- dependencies: internal (relative) vs external imports, plus circular chains when detected
- patterns: only present when include_patterns is set`
}

func describePatterns() string {
	return `Detects design patterns and anti-patterns in source text.

USE WHEN:
- Reviewing code for structural smells
- Checking whether a refactoring removed a god class or magic numbers

INTERPRETING RESULTS:
- Detects singleton, factory, observer, god_class, magic_numbers
- confidence is fixed per pattern kind; god_class (0.9) is the strongest signal
- god_class fires on files over 500 lines or over 20 methods
- magic_numbers fires on more than 3 multi-digit literals (100 and 1000 excluded)`
}

func describeBreakdown() string {
	return `Suggests decomposition strategies for complex code.

USE WHEN:
- Planning how to split a large change into reviewable pieces
- A complexity analysis reported level complex or critical

INTERPRETING RESULTS:
- Each strategy maps to one exceeded threshold (cyclomatic > 15, cognitive > 15, nesting > 4, functions > 20, dependencies > 15, maintainability < 60)
- "Code complexity is within acceptable ranges" means no threshold was exceeded`
}

func describeValidateFile() string {
	return `Runs the multi-step validation pipeline against one file.

USE WHEN:
- Checking a file before merging generated or edited code
- Gating changes on syntax and security findings

INTERPRETING RESULTS:
- results: one entry per step with passed, score [0,100], issues, and duration
- score deductions per issue: critical 20, high 10, medium 5, low 2, info 1
- overall_score: weighted average across steps
- gates: overall_quality plus one gate per step; any critical issue fails a step's gate`
}

func describeValidateProject() string {
	return `Validates every source file under a project root.

USE WHEN:
- Auditing a whole codebase against quality gates
- Producing a quality summary for a release decision

INTERPRETING RESULTS:
- files: per-file validation results keyed by path; an empty list means the file itself failed to validate
- summary: file and issue counts plus mean, stddev, p50, and p95 of per-file scores
- Files are processed in batches bounded by the configured max concurrency`
}
