// Package lang holds the per-language heuristic pattern tables shared by the
// complexity and semantic analyzers. Both consume the same registry so the
// tables cannot drift apart.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Config is the immutable pattern table for one language. The multiplier
// scales effort estimates for language verbosity and risk.
type Config struct {
	Name             string
	Multiplier       float64
	DecisionKeywords []string
	FunctionPatterns []*regexp.Regexp
	ClassPatterns    []*regexp.Regexp
	ImportPatterns   []*regexp.Regexp
	CommentPatterns  []*regexp.Regexp

	decisionPatterns []*regexp.Regexp
}

// DecisionPatterns returns the compiled patterns for the decision keywords.
func (c *Config) DecisionPatterns() []*regexp.Regexp {
	return c.decisionPatterns
}

// compile builds the decision keyword patterns. Word-like keywords are bounded
// with \b; operator keywords (&&, ||, ?) are matched literally.
func (c *Config) compile() {
	c.decisionPatterns = make([]*regexp.Regexp, 0, len(c.DecisionKeywords))
	for _, kw := range c.DecisionKeywords {
		c.decisionPatterns = append(c.decisionPatterns, compileKeyword(kw))
	}
}

func compileKeyword(kw string) *regexp.Regexp {
	if isWord(kw) {
		return regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return regexp.MustCompile(regexp.QuoteMeta(kw))
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func mustAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// DefaultLanguage is the fallback for unknown or empty language names.
const DefaultLanguage = "javascript"

var (
	mu       sync.RWMutex
	registry = buildRegistry()
)

func buildRegistry() map[string]*Config {
	configs := []*Config{
		{
			Name:             "javascript",
			Multiplier:       1.0,
			DecisionKeywords: []string{"if", "else", "for", "while", "switch", "case", "catch", "&&", "||", "?"},
			FunctionPatterns: mustAll(
				`function\s+\w+`,
				`\w+\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`,
				`\w+\s*:\s*function`,
			),
			ClassPatterns: mustAll(`class\s+\w+`),
			ImportPatterns: mustAll(
				`import\s+.+?\s+from\s+['"][^'"]+['"]`,
				`require\s*\(\s*['"][^'"]+['"]\s*\)`,
			),
			CommentPatterns: mustAll(`//[^\n]*`, `/\*[\s\S]*?\*/`),
		},
		{
			Name:             "typescript",
			Multiplier:       1.1,
			DecisionKeywords: []string{"if", "else", "for", "while", "switch", "case", "catch", "&&", "||", "?"},
			FunctionPatterns: mustAll(
				`function\s+\w+`,
				`\w+\s*=\s*(?:async\s+)?\([^)]*\)\s*(?::\s*[\w<>\[\], ]+)?\s*=>`,
				`\w+\s*\([^)]*\)\s*:\s*[\w<>\[\], ]+\s*\{`,
			),
			ClassPatterns: mustAll(`class\s+\w+`, `interface\s+\w+`),
			ImportPatterns: mustAll(
				`import\s+.+?\s+from\s+['"][^'"]+['"]`,
				`import\s*\(\s*['"][^'"]+['"]\s*\)`,
				`require\s*\(\s*['"][^'"]+['"]\s*\)`,
			),
			CommentPatterns: mustAll(`//[^\n]*`, `/\*[\s\S]*?\*/`),
		},
		{
			Name:             "python",
			Multiplier:       0.9,
			DecisionKeywords: []string{"if", "elif", "else", "for", "while", "except", "and", "or"},
			FunctionPatterns: mustAll(`def\s+\w+`, `lambda\s`),
			ClassPatterns:    mustAll(`class\s+\w+`),
			ImportPatterns: mustAll(
				`(?m)^\s*import\s+[\w.]+`,
				`(?m)^\s*from\s+[\w.]+\s+import`,
			),
			CommentPatterns: mustAll(`#[^\n]*`, `"""[\s\S]*?"""`, `'''[\s\S]*?'''`),
		},
		{
			Name:             "java",
			Multiplier:       1.3,
			DecisionKeywords: []string{"if", "else", "for", "while", "switch", "case", "catch", "&&", "||", "?"},
			FunctionPatterns: mustAll(
				`(?:public|private|protected|static|\s)+[\w<>\[\]]+\s+\w+\s*\([^)]*\)\s*(?:throws\s+[\w, ]+)?\s*\{`,
			),
			ClassPatterns:   mustAll(`(?:class|interface|enum)\s+\w+`),
			ImportPatterns:  mustAll(`import\s+(?:static\s+)?[\w.]+(?:\.\*)?\s*;`),
			CommentPatterns: mustAll(`//[^\n]*`, `/\*[\s\S]*?\*/`),
		},
		{
			Name:             "cpp",
			Multiplier:       1.5,
			DecisionKeywords: []string{"if", "else", "for", "while", "switch", "case", "catch", "&&", "||", "?"},
			FunctionPatterns: mustAll(`[\w:<>~]+\s+[\w:]+\s*\([^;)]*\)\s*(?:const\s*)?\{`),
			ClassPatterns:    mustAll(`(?:class|struct)\s+\w+`),
			ImportPatterns:   mustAll(`#include\s*[<"][^>"]+[>"]`),
			CommentPatterns:  mustAll(`//[^\n]*`, `/\*[\s\S]*?\*/`),
		},
		{
			Name:             "go",
			Multiplier:       1.1,
			DecisionKeywords: []string{"if", "else", "for", "switch", "case", "select", "&&", "||"},
			FunctionPatterns: mustAll(`func\s+(?:\([^)]+\)\s+)?\w+\s*\(`),
			ClassPatterns:    mustAll(`type\s+\w+\s+struct`, `type\s+\w+\s+interface`),
			ImportPatterns:   mustAll(`import\s+\(`, `import\s+"[^"]+"`),
			CommentPatterns:  mustAll(`//[^\n]*`, `/\*[\s\S]*?\*/`),
		},
		{
			Name:             "ruby",
			Multiplier:       0.9,
			DecisionKeywords: []string{"if", "elsif", "else", "unless", "while", "until", "case", "when", "rescue", "&&", "||"},
			FunctionPatterns: mustAll(`def\s+\w+`),
			ClassPatterns:    mustAll(`class\s+\w+`, `module\s+\w+`),
			ImportPatterns:   mustAll(`require(?:_relative)?\s+['"][^'"]+['"]`),
			CommentPatterns:  mustAll(`#[^\n]*`, `=begin[\s\S]*?=end`),
		},
	}

	m := make(map[string]*Config, len(configs))
	for _, c := range configs {
		c.compile()
		m[c.Name] = c
	}
	return m
}

// Get returns the config for a language, falling back to the javascript
// default for unknown or empty names. It never fails.
func Get(language string) *Config {
	mu.RLock()
	defer mu.RUnlock()

	if c, ok := registry[strings.ToLower(language)]; ok {
		return c
	}
	return registry[DefaultLanguage]
}

// Register adds or replaces a language config. It is the plug-in point for
// languages the built-in table does not cover.
func Register(name string, cfg Config) {
	cfg.Name = strings.ToLower(name)
	cfg.compile()

	mu.Lock()
	defer mu.Unlock()
	registry[cfg.Name] = &cfg
}

// Supported returns the names of all registered languages.
func Supported() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Unknown is the language tag for files whose extension is not recognized.
// It still resolves to the default config downstream.
const Unknown = "unknown"

var extensions = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".py":   "python",
	".java": "java",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".h":    "cpp",
	".go":   "go",
	".rb":   "ruby",
}

// DetectLanguage infers a language tag from a file extension. Unrecognized
// extensions map to Unknown.
func DetectLanguage(path string) string {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return Unknown
}
