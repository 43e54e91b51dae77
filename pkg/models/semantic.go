package models

// SymbolType categorizes an extracted symbol.
type SymbolType string

const (
	SymbolFunction  SymbolType = "function"
	SymbolClass     SymbolType = "class"
	SymbolVariable  SymbolType = "variable"
	SymbolInterface SymbolType = "interface"
	SymbolTypeAlias SymbolType = "type"
	SymbolMethod    SymbolType = "method"
	SymbolProperty  SymbolType = "property"
)

// Visibility is the declared access level of a symbol.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
)

// SourceRange locates a symbol in its file. Lines and characters are zero-based.
type SourceRange struct {
	StartLine int `json:"start_line"`
	StartChar int `json:"start_char"`
	EndLine   int `json:"end_line"`
	EndChar   int `json:"end_char"`
}

// SymbolInfo describes one symbol extracted from a file. The ID is
// deterministic for a given file content so cached analyses compare equal.
type SymbolInfo struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          SymbolType     `json:"type"`
	Range         SourceRange    `json:"range"`
	Scope         string         `json:"scope,omitempty"`
	Visibility    Visibility     `json:"visibility,omitempty"`
	Documentation string         `json:"documentation,omitempty"`
	References    []string       `json:"references,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// SemanticComplexity carries the complexity sub-metrics embedded in a
// semantic analysis.
type SemanticComplexity struct {
	Cyclomatic   int `json:"cyclomatic"`
	Cognitive    int `json:"cognitive"`
	NestingDepth int `json:"nesting_depth"`
}

// MaintainabilityInfo holds the maintainability index plus flagged issues
// and improvement suggestions.
type MaintainabilityInfo struct {
	Index       float64  `json:"index"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// DependencyInfo classifies a file's imports.
type DependencyInfo struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
	Circular []string `json:"circular"`
}

// PatternMatch is a detected design pattern or anti-pattern with a fixed
// heuristic confidence, not a computed probability.
type PatternMatch struct {
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// SemanticAnalysis is the per-file output of the semantic extractor.
type SemanticAnalysis struct {
	FilePath        string              `json:"file_path"`
	Language        string              `json:"language"`
	Complexity      SemanticComplexity  `json:"complexity"`
	Maintainability MaintainabilityInfo `json:"maintainability"`
	Dependencies    DependencyInfo      `json:"dependencies"`
	Symbols         []SymbolInfo        `json:"symbols"`
	Patterns        []PatternMatch      `json:"patterns,omitempty"`
}
