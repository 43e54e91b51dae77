// Package semantic extracts symbols, dependencies, maintainability signals,
// and design-pattern heuristics from source text. It shares the pattern
// tables in pkg/lang with the complexity analyzer so the two cannot diverge.
package semantic

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/augur-dev/augur/internal/cache"
	"github.com/augur-dev/augur/pkg/analyzer/complexity"
	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
	"github.com/augur-dev/augur/pkg/source"
)

// CycleDetector resolves circular imports from a project-wide graph. The
// per-file analyzer cannot see the graph, so the default implementation
// reports nothing; callers with a graph inject their own.
type CycleDetector interface {
	DetectCircular(internalImports []string) []string
}

// NoCycles is the default CycleDetector. It always reports no cycles.
type NoCycles struct{}

// DetectCircular returns an empty list.
func (NoCycles) DetectCircular([]string) []string { return nil }

// Analyzer performs per-file semantic analysis.
type Analyzer struct {
	src    source.Reader
	cycles CycleDetector
	cache  *cache.Memory[*models.SemanticAnalysis]
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithSource sets the file content reader.
func WithSource(src source.Reader) Option {
	return func(a *Analyzer) { a.src = src }
}

// WithCycleDetector sets the circular-import collaborator.
func WithCycleDetector(d CycleDetector) Option {
	return func(a *Analyzer) { a.cycles = d }
}

// New creates a semantic analyzer backed by the local filesystem unless
// overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		src:    source.NewFS(),
		cycles: NoCycles{},
		cache:  cache.NewMemory[*models.SemanticAnalysis](),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Input describes one analysis request. Content is read from FilePath when
// empty; Language is inferred from the file extension when empty.
type Input struct {
	FilePath        string
	Content         string
	Language        string
	IncludePatterns bool
}

// AnalyzeCode runs all semantic sub-analyses over one file and merges the
// results. Pure computation never fails; only the initial file read can.
func (a *Analyzer) AnalyzeCode(ctx context.Context, in Input) (*models.SemanticAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := in.Content
	if content == "" {
		text, err := a.src.ReadFile(in.FilePath)
		if err != nil {
			return nil, err
		}
		content = text
	}

	language := in.Language
	if language == "" {
		language = lang.DetectLanguage(in.FilePath)
	}

	key := cache.Key(in.FilePath, language, fmt.Sprintf("%t", in.IncludePatterns), cache.HashString(content))
	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	cfg := lang.Get(language)
	metrics := complexity.CalculateMetrics(content, language)

	analysis := &models.SemanticAnalysis{
		FilePath: in.FilePath,
		Language: language,
		Complexity: models.SemanticComplexity{
			Cyclomatic:   metrics.Cyclomatic,
			Cognitive:    metrics.Cognitive,
			NestingDepth: metrics.MaxNesting,
		},
		Maintainability: analyzeMaintainability(content, cfg, metrics),
		Dependencies:    a.analyzeDependencies(content, cfg),
		Symbols:         extractSymbols(content, cfg),
	}
	if in.IncludePatterns {
		analysis.Patterns = DetectPatterns(content, language)
	}

	a.cache.Set(key, analysis)
	return analysis, nil
}

const (
	longFunctionLines  = 50
	minCommentDensity  = 0.1
	shortNameMaxLength = 2
)

var shortNameWhitelist = map[string]bool{
	"i": true, "j": true, "k": true, "x": true, "y": true, "z": true,
}

var shortVarPattern = regexp.MustCompile(`\b(?:var|let|const)\s+([A-Za-z_]\w*)`)

// analyzeMaintainability flags long functions, cryptic variable names, and
// sparse commenting, reusing the calculator's maintainability index.
func analyzeMaintainability(content string, cfg *lang.Config, metrics models.ComplexityMetrics) models.MaintainabilityInfo {
	info := models.MaintainabilityInfo{
		Index:       metrics.Maintainability,
		Issues:      []string{},
		Suggestions: []string{},
	}

	for _, pat := range cfg.FunctionPatterns {
		for _, loc := range pat.FindAllStringIndex(content, -1) {
			if length := functionLength(content, loc[0]); length > longFunctionLines {
				line := lineAt(content, loc[0])
				info.Issues = append(info.Issues,
					fmt.Sprintf("Function starting at line %d spans %d lines", line+1, length))
				info.Suggestions = append(info.Suggestions,
					"Break long functions into smaller, focused units")
			}
		}
	}

	for _, match := range shortVarPattern.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if len(name) <= shortNameMaxLength && !shortNameWhitelist[name] {
			info.Issues = append(info.Issues,
				fmt.Sprintf("Variable %q has a non-descriptive name", name))
			info.Suggestions = append(info.Suggestions,
				"Use descriptive variable names")
		}
	}

	totalLines := len(strings.Split(content, "\n"))
	commentLines := 0
	for _, pat := range cfg.CommentPatterns {
		for _, m := range pat.FindAllString(content, -1) {
			commentLines += len(strings.Split(m, "\n"))
		}
	}
	if totalLines > 0 && float64(commentLines)/float64(totalLines) < minCommentDensity {
		info.Issues = append(info.Issues, "Comment density is below 10% of lines")
		info.Suggestions = append(info.Suggestions, "Document non-obvious logic with comments")
	}

	info.Suggestions = dedupe(info.Suggestions)
	return info
}

// functionLength counts lines from a function's start until its brace depth
// returns to zero. Brace-free declarations count as a single line.
func functionLength(content string, start int) int {
	depth := 0
	opened := false
	lines := 1

	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if opened && depth == 0 {
				return lines
			}
		case '\n':
			lines++
		}
	}
	return lines
}

// lineAt returns the zero-based line number of a byte offset.
func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n")
}

var importPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`import\s+.+?\s+from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`require(?:_relative)?\s*\(?\s*['"]([^'"]+)['"]\s*\)?`),
	regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
	regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import`),
	regexp.MustCompile(`#include\s*[<"]([^>"]+)[>"]`),
}

// analyzeDependencies extracts import paths and classifies them as internal
// (relative or absolute paths) or external (package names). Circular imports
// come from the injected collaborator.
func (a *Analyzer) analyzeDependencies(content string, cfg *lang.Config) models.DependencyInfo {
	_ = cfg // import shape detection is cross-language

	seen := make(map[string]bool)
	info := models.DependencyInfo{
		Internal: []string{},
		External: []string{},
		Circular: []string{},
	}

	for _, pat := range importPathPatterns {
		for _, match := range pat.FindAllStringSubmatch(content, -1) {
			path := match[1]
			if seen[path] {
				continue
			}
			seen[path] = true

			if strings.HasPrefix(path, ".") || strings.HasPrefix(path, "/") {
				info.Internal = append(info.Internal, path)
			} else {
				info.External = append(info.External, path)
			}
		}
	}

	sort.Strings(info.Internal)
	sort.Strings(info.External)

	if circular := a.cycles.DetectCircular(info.Internal); circular != nil {
		info.Circular = circular
	}
	return info
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
