package complexity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/augur-dev/augur/internal/cache"
	"github.com/augur-dev/augur/internal/fileproc"
	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
	"github.com/augur-dev/augur/pkg/source"
)

// Scanner discovers source files under a root. Implemented by
// internal/scanner; injected so tests can supply fixed file lists.
type Scanner interface {
	ScanDir(root string) ([]string, error)
}

// Analyzer resolves analysis targets, computes metrics, and caches
// estimations by content and options.
type Analyzer struct {
	src     source.Reader
	scanner Scanner
	cache   *cache.Memory[*models.ComplexityEstimation]
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithSource sets the file content reader.
func WithSource(src source.Reader) Option {
	return func(a *Analyzer) { a.src = src }
}

// WithScanner sets the project file scanner.
func WithScanner(s Scanner) Option {
	return func(a *Analyzer) { a.scanner = s }
}

// New creates a complexity analyzer backed by the local filesystem unless
// overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		src:   source.NewFS(),
		cache: cache.NewMemory[*models.ComplexityEstimation](),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Options configures a single analysis call.
type Options struct {
	// Language overrides extension-based detection. Required for snippets;
	// defaults to the registry default when empty.
	Language string
}

// AnalyzeComplexity analyzes a target of the given type and returns a cached
// or freshly computed estimation. Unsupported target types fail fast.
func (a *Analyzer) AnalyzeComplexity(ctx context.Context, target string, targetType models.TargetType, opts Options) (*models.ComplexityEstimation, error) {
	content, language, fileCount, err := a.resolve(ctx, target, targetType, opts)
	if err != nil {
		return nil, err
	}

	key := cache.Key(string(targetType), language, cache.HashString(content), target)
	if est, ok := a.cache.Get(key); ok {
		return est, nil
	}

	metrics := CalculateMetrics(content, language)
	est := BuildEstimation(metrics, language, EstimationContext{
		Target:    target,
		Type:      targetType,
		FileCount: fileCount,
	})
	a.cache.Set(key, est)
	return est, nil
}

// resolve turns a target into analyzable text plus a language tag and file
// count. Directory and project targets join their files' contents; a single
// unreadable file inside a directory scan is skipped, but a missing
// single-file target is an error for the caller.
func (a *Analyzer) resolve(ctx context.Context, target string, targetType models.TargetType, opts Options) (content, language string, fileCount int, err error) {
	switch targetType {
	case models.TargetSnippet:
		language = opts.Language
		if language == "" {
			language = lang.DefaultLanguage
		}
		return target, language, 1, nil

	case models.TargetFile:
		text, err := a.src.ReadFile(target)
		if err != nil {
			return "", "", 0, err
		}
		language = opts.Language
		if language == "" {
			language = lang.DetectLanguage(target)
		}
		return text, language, 1, nil

	case models.TargetDirectory, models.TargetProject:
		if a.scanner == nil {
			return "", "", 0, fmt.Errorf("no scanner configured for %s analysis", targetType)
		}
		files, err := a.scanner.ScanDir(target)
		if err != nil {
			return "", "", 0, fmt.Errorf("scan %s: %w", target, err)
		}
		sort.Strings(files)

		// Contents join in sorted-path order so repeated runs over the same
		// tree hash identically.
		contents := fileproc.MapFiles(files, func(path string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return a.src.ReadFile(path)
		})
		if err := ctx.Err(); err != nil {
			return "", "", 0, err
		}

		parts := make([]string, 0, len(contents))
		for _, c := range contents {
			if c != "" {
				parts = append(parts, c)
			}
		}

		language = opts.Language
		if language == "" && len(files) > 0 {
			language = dominantLanguage(files)
		}
		if language == "" {
			language = lang.DefaultLanguage
		}
		return strings.Join(parts, "\n"), language, len(files), nil

	default:
		return "", "", 0, fmt.Errorf("unsupported analysis target type: %q", targetType)
	}
}

// dominantLanguage picks the most common detected language among files.
func dominantLanguage(files []string) string {
	counts := make(map[string]int)
	for _, f := range files {
		if l := lang.DetectLanguage(f); l != lang.Unknown {
			counts[l]++
		}
	}

	best, bestCount := "", 0
	for l, n := range counts {
		if n > bestCount || (n == bestCount && l < best) {
			best, bestCount = l, n
		}
	}
	return best
}

// CacheStats reports cache hits and misses for diagnostics.
func (a *Analyzer) CacheStats() (hits, misses uint64) {
	return a.cache.Stats()
}
