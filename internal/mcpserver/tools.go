package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/augur-dev/augur/pkg/analyzer/complexity"
	"github.com/augur-dev/augur/pkg/analyzer/semantic"
	"github.com/augur-dev/augur/pkg/analyzer/validate"
	"github.com/augur-dev/augur/pkg/config"
	"github.com/augur-dev/augur/pkg/models"
)

// applyValidationConfig maps file-level validation settings onto the
// pipeline configuration.
func applyValidationConfig(vc *validate.Config, cfg *config.Config) {
	vc.Parallel = cfg.Validation.Parallel
	if cfg.Validation.MaxConcurrency > 0 {
		vc.MaxConcurrency = cfg.Validation.MaxConcurrency
	}
	vc.Thresholds = validate.Thresholds{
		MinScore:          cfg.Thresholds.MinScore,
		MaxCriticalIssues: cfg.Thresholds.MaxCriticalIssues,
		MaxHighIssues:     cfg.Thresholds.MaxHighIssues,
	}
	for name, settings := range cfg.Validation.Steps {
		vc.Steps[models.ValidationStep(name)] = validate.StepConfig{
			Enabled: settings.Enabled,
			Weight:  settings.Weight,
			Timeout: time.Duration(settings.TimeoutMS) * time.Millisecond,
		}
	}
}

// Tool input structures

// ComplexityInput selects a target for complexity estimation.
type ComplexityInput struct {
	Target     string `json:"target" jsonschema:"File path, directory path, or code snippet to analyze."`
	TargetType string `json:"target_type,omitempty" jsonschema:"One of: file, directory, project, snippet. Default file."`
	Language   string `json:"language,omitempty" jsonschema:"Language override. Required for snippets; detected from extension otherwise."`
}

// CodeInput selects a file or inline content for semantic analysis.
type CodeInput struct {
	FilePath        string `json:"file_path,omitempty" jsonschema:"Path of the file to analyze. Optional when content is given."`
	Content         string `json:"content,omitempty" jsonschema:"Inline source text. Read from file_path when empty."`
	Language        string `json:"language,omitempty" jsonschema:"Language override. Detected from file_path otherwise."`
	IncludePatterns bool   `json:"include_patterns,omitempty" jsonschema:"Also run design-pattern detection."`
}

// PatternsInput selects content for pattern detection.
type PatternsInput struct {
	Content  string `json:"content" jsonschema:"Source text to scan for design patterns and anti-patterns."`
	Language string `json:"language,omitempty" jsonschema:"Language of the content. Default javascript."`
}

// BreakdownInput selects content for breakdown suggestions.
type BreakdownInput struct {
	Content  string `json:"content" jsonschema:"Source text to derive decomposition strategies from."`
	Language string `json:"language,omitempty" jsonschema:"Language of the content. Default javascript."`
}

// ValidateFileInput selects a file for pipeline validation.
type ValidateFileInput struct {
	FilePath string   `json:"file_path" jsonschema:"Path of the file to validate."`
	Content  string   `json:"content,omitempty" jsonschema:"Inline source text. Read from file_path when empty."`
	Language string   `json:"language,omitempty" jsonschema:"Language override."`
	Steps    []string `json:"steps,omitempty" jsonschema:"Step names to run. Defaults to all enabled steps."`
}

// ValidateProjectInput selects a project root for pipeline validation.
type ValidateProjectInput struct {
	ProjectPath string   `json:"project_path" jsonschema:"Root directory of the project to validate."`
	Steps       []string `json:"steps,omitempty" jsonschema:"Step names to run. Defaults to all enabled steps."`
}

// Helpers

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func parseSteps(names []string) []models.ValidationStep {
	steps := make([]models.ValidationStep, 0, len(names))
	for _, n := range names {
		steps = append(steps, models.ValidationStep(n))
	}
	return steps
}

// Tool handlers

func (s *Server) handleAnalyzeComplexity(ctx context.Context, req *mcp.CallToolRequest, input ComplexityInput) (*mcp.CallToolResult, any, error) {
	if input.Target == "" {
		return toolError("target is required")
	}

	targetType := models.TargetFile
	if input.TargetType != "" {
		targetType = models.TargetType(input.TargetType)
	}

	est, err := s.complexity.AnalyzeComplexity(ctx, input.Target, targetType, complexity.Options{
		Language: input.Language,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(est)
}

func (s *Server) handleAnalyzeCode(ctx context.Context, req *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, any, error) {
	if input.FilePath == "" && input.Content == "" {
		return toolError("file_path or content is required")
	}

	analysis, err := s.semantic.AnalyzeCode(ctx, semantic.Input{
		FilePath:        input.FilePath,
		Content:         input.Content,
		Language:        input.Language,
		IncludePatterns: input.IncludePatterns,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(analysis)
}

func (s *Server) handleDetectPatterns(ctx context.Context, req *mcp.CallToolRequest, input PatternsInput) (*mcp.CallToolResult, any, error) {
	if input.Content == "" {
		return toolError("content is required")
	}

	patterns := semantic.DetectPatterns(input.Content, input.Language)
	result := struct {
		Patterns []models.PatternMatch `json:"patterns" toon:"patterns"`
		Count    int                   `json:"count" toon:"count"`
	}{patterns, len(patterns)}
	return toolResult(result)
}

func (s *Server) handleSuggestBreakdown(ctx context.Context, req *mcp.CallToolRequest, input BreakdownInput) (*mcp.CallToolResult, any, error) {
	if input.Content == "" {
		return toolError("content is required")
	}

	metrics := complexity.CalculateMetrics(input.Content, input.Language)
	strategies := complexity.SuggestBreakdownStrategies(metrics, input.Language)

	result := struct {
		Metrics    models.ComplexityMetrics `json:"metrics" toon:"metrics"`
		Strategies []string                 `json:"strategies" toon:"strategies"`
	}{metrics, strategies}
	return toolResult(result)
}

func (s *Server) handleValidateFile(ctx context.Context, req *mcp.CallToolRequest, input ValidateFileInput) (*mcp.CallToolResult, any, error) {
	if input.FilePath == "" && input.Content == "" {
		return toolError("file_path or content is required")
	}

	results, err := s.pipeline.ValidateFile(ctx, validate.Input{
		FilePath:     input.FilePath,
		Content:      input.Content,
		Language:     input.Language,
		EnabledSteps: parseSteps(input.Steps),
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Results []models.ValidationResult  `json:"results" toon:"results"`
		Score   float64                    `json:"overall_score" toon:"overall_score"`
		Gates   []models.QualityGateResult `json:"gates" toon:"gates"`
	}{results, s.pipeline.OverallScore(results), s.pipeline.GenerateQualityGates(results)}
	return toolResult(out)
}

func (s *Server) handleValidateProject(ctx context.Context, req *mcp.CallToolRequest, input ValidateProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectPath == "" {
		return toolError("project_path is required")
	}

	results, err := s.pipeline.ValidateProject(ctx, input.ProjectPath, validate.ProjectOptions{
		EnabledSteps: parseSteps(input.Steps),
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Files   map[string][]models.ValidationResult `json:"files" toon:"files"`
		Summary validate.ProjectSummary              `json:"summary" toon:"summary"`
	}{results, s.pipeline.Summarize(results)}
	return toolResult(out)
}
