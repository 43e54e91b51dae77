package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "javascript", cfg.Analysis.DefaultLanguage)
	assert.True(t, cfg.Validation.Parallel)
	assert.Equal(t, 5, cfg.Validation.MaxConcurrency)
	assert.Equal(t, 70.0, cfg.Thresholds.MinScore)
	assert.Equal(t, 0, cfg.Thresholds.MaxCriticalIssues)
	assert.Equal(t, 3, cfg.Thresholds.MaxHighIssues)
	assert.Len(t, cfg.Validation.Steps, 8)

	for name, step := range cfg.Validation.Steps {
		assert.True(t, step.Enabled, name)
		assert.Equal(t, 1.0, step.Weight, name)
		assert.Equal(t, 30000, step.TimeoutMS, name)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "augur.toml")
	content := `
[thresholds]
min_score = 85.0

[validation]
max_concurrency = 2

[validation.steps.syntax]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 85.0, cfg.Thresholds.MinScore)
	assert.Equal(t, 2, cfg.Validation.MaxConcurrency)
	assert.False(t, cfg.Validation.Steps["syntax"].Enabled)
	// untouched defaults survive the merge
	assert.True(t, cfg.Validation.Steps["lint"].Enabled)
	assert.Equal(t, 3, cfg.Thresholds.MaxHighIssues)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "augur.yaml")
	content := `
output:
  format: json
exclude:
  dirs:
    - generated
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Contains(t, cfg.Exclude.Dirs, "generated")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"score_over_max", "[thresholds]\nmin_score = 200\n"},
		{"negative_weight", "[validation.steps.syntax]\nweight = -1.0\n"},
		{"bad_format", "[output]\nformat = \"xml\"\n"},
		{"negative_concurrency", "[validation]\nmax_concurrency = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "augur.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "augur.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Thresholds, cfg.Thresholds)
	assert.Equal(t, DefaultConfig().Analysis, cfg.Analysis)

	// refuses to overwrite
	assert.Error(t, WriteDefault(path))
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"vendor/pkg/mod.go", true},
		{"src/node_modules/left-pad/index.js", true},
		{"app.test.ts", true},
		{"bundle.min.js", true},
		{"go.sum", true},
		{"Gemfile.lock", true},
		{"src/app.ts", false},
		{"main.go", false},
	}

	for _, tt := range tests {
		if got := cfg.ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
