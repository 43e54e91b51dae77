package complexity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-dev/augur/pkg/models"
	"github.com/augur-dev/augur/pkg/source"
)

type stubScanner struct {
	files []string
	err   error
}

func (s stubScanner) ScanDir(string) ([]string, error) { return s.files, s.err }

func TestAnalyzeSnippet(t *testing.T) {
	a := New()
	est, err := a.AnalyzeComplexity(context.Background(),
		"function foo(x) { if (x) { return 1; } }",
		models.TargetSnippet, Options{Language: "javascript"})
	require.NoError(t, err)

	assert.Equal(t, models.TargetSnippet, est.Type)
	assert.Equal(t, "javascript", est.Language)
	assert.Equal(t, 1, est.FileCount)
	assert.Equal(t, 2, est.Metrics.Cyclomatic)
}

func TestAnalyzeSnippetDefaultsLanguage(t *testing.T) {
	a := New()
	est, err := a.AnalyzeComplexity(context.Background(), "x = 1",
		models.TargetSnippet, Options{})
	require.NoError(t, err)
	assert.Equal(t, "javascript", est.Language)
}

func TestAnalyzeFile(t *testing.T) {
	src := source.Map{
		"app.py": "def handler(req):\n    if req.ok:\n        return req.body\n",
	}
	a := New(WithSource(src))

	est, err := a.AnalyzeComplexity(context.Background(), "app.py", models.TargetFile, Options{})
	require.NoError(t, err)

	assert.Equal(t, "python", est.Language)
	assert.Equal(t, models.TargetFile, est.Type)
	assert.Equal(t, "app.py", est.Target)
}

func TestAnalyzeFileNotFound(t *testing.T) {
	a := New(WithSource(source.Map{}))
	_, err := a.AnalyzeComplexity(context.Background(), "missing.js", models.TargetFile, Options{})
	require.Error(t, err)
	assert.True(t, source.IsNotFound(err))
}

func TestAnalyzeDirectory(t *testing.T) {
	src := source.Map{
		"a.js": "if (a) { x(); }",
		"b.js": "if (b) { y(); }",
	}
	a := New(WithSource(src), WithScanner(stubScanner{files: []string{"a.js", "b.js"}}))

	est, err := a.AnalyzeComplexity(context.Background(), ".", models.TargetDirectory, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, est.FileCount)
	assert.Equal(t, "javascript", est.Language)
	// 1 + two ifs across the joined content
	assert.Equal(t, 3, est.Metrics.Cyclomatic)
}

func TestAnalyzeDirectoryJoinsInPathOrder(t *testing.T) {
	// a.js opens a brace that b.js's decision line sits inside; the cognitive
	// total only comes out to 2 when contents join in sorted path order.
	src := source.Map{
		"a.js": "{",
		"b.js": "if (x) { y(); }",
	}
	a := New(WithSource(src), WithScanner(stubScanner{files: []string{"b.js", "a.js"}}))

	est, err := a.AnalyzeComplexity(context.Background(), ".", models.TargetDirectory, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, est.Metrics.Cognitive)
}

func TestAnalyzeDirectoryWithoutScanner(t *testing.T) {
	a := New()
	_, err := a.AnalyzeComplexity(context.Background(), ".", models.TargetProject, Options{})
	assert.Error(t, err)
}

func TestAnalyzeUnsupportedType(t *testing.T) {
	a := New()
	_, err := a.AnalyzeComplexity(context.Background(), "x", models.TargetType("blob"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestAnalyzeCachesByContent(t *testing.T) {
	a := New()
	ctx := context.Background()

	first, err := a.AnalyzeComplexity(ctx, "if (x) { y(); }", models.TargetSnippet, Options{Language: "javascript"})
	require.NoError(t, err)
	second, err := a.AnalyzeComplexity(ctx, "if (x) { y(); }", models.TargetSnippet, Options{Language: "javascript"})
	require.NoError(t, err)

	assert.Same(t, first, second)

	hits, misses := a.CacheStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCacheDistinguishesLanguage(t *testing.T) {
	a := New()
	ctx := context.Background()

	js, err := a.AnalyzeComplexity(ctx, "def f(): pass", models.TargetSnippet, Options{Language: "javascript"})
	require.NoError(t, err)
	py, err := a.AnalyzeComplexity(ctx, "def f(): pass", models.TargetSnippet, Options{Language: "python"})
	require.NoError(t, err)

	assert.NotSame(t, js, py)
	assert.Equal(t, "python", py.Language)
}
