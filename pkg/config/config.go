// Package config loads and validates augur configuration from TOML, YAML, or
// JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml"
)

// Config holds all configuration options for augur.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Validation pipeline settings
	Validation ValidationConfig `koanf:"validation" toml:"validation"`

	// Quality gate thresholds
	Thresholds ThresholdConfig `koanf:"thresholds" toml:"thresholds"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls analyzer behavior.
type AnalysisConfig struct {
	DefaultLanguage string `koanf:"default_language" toml:"default_language"`
	IncludePatterns bool   `koanf:"include_patterns" toml:"include_patterns"`
	MaxFileSize     int64  `koanf:"max_file_size" toml:"max_file_size"`
}

// StepSettings configures one validation step.
type StepSettings struct {
	Enabled   bool    `koanf:"enabled" toml:"enabled"`
	Weight    float64 `koanf:"weight" toml:"weight"`
	TimeoutMS int     `koanf:"timeout_ms" toml:"timeout_ms"`
}

// ValidationConfig controls the validation pipeline.
type ValidationConfig struct {
	Parallel       bool                    `koanf:"parallel" toml:"parallel"`
	MaxConcurrency int                     `koanf:"max_concurrency" toml:"max_concurrency"`
	Steps          map[string]StepSettings `koanf:"steps" toml:"steps"`
}

// ThresholdConfig defines quality-gate limits.
type ThresholdConfig struct {
	MinScore          float64 `koanf:"min_score" toml:"min_score"`
	MaxCriticalIssues int     `koanf:"max_critical_issues" toml:"max_critical_issues"`
	MaxHighIssues     int     `koanf:"max_high_issues" toml:"max_high_issues"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" toml:"patterns"`
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Dirs       []string `koanf:"dirs" toml:"dirs"`
	Gitignore  bool     `koanf:"gitignore" toml:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, yaml, markdown
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	steps := make(map[string]StepSettings)
	for _, step := range []string{
		"syntax", "type_check", "lint", "security",
		"test", "performance", "documentation", "integration",
	} {
		steps[step] = StepSettings{Enabled: true, Weight: 1.0, TimeoutMS: 30000}
	}

	return &Config{
		Analysis: AnalysisConfig{
			DefaultLanguage: "javascript",
			IncludePatterns: true,
			MaxFileSize:     1 << 20,
		},
		Validation: ValidationConfig{
			Parallel:       true,
			MaxConcurrency: 5,
			Steps:          steps,
		},
		Thresholds: ThresholdConfig{
			MinScore:          70,
			MaxCriticalIssues: 0,
			MaxHighIssues:     3,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*_test.go",
				"*.test.ts",
				"*.spec.js",
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".augur",
				"dist",
				"build",
				"__pycache__",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, validating it against the embedded
// schema before unmarshaling.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := validateDocument(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"augur.toml",
		"augur.yaml",
		"augur.yml",
		"augur.json",
		".augur.toml",
		".augur.yaml",
		".augur.yml",
		".augur.json",
	}

	searchDirs := []string{".", ".augur"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// WriteDefault writes the default configuration as TOML to path. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := gotoml.Marshal(*DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
