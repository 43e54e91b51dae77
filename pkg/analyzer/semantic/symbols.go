package semantic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
)

var (
	namePattern      = regexp.MustCompile(`[A-Za-z_]\w*`)
	interfacePattern = regexp.MustCompile(`interface\s+\w+`)
	typeAliasPattern = regexp.MustCompile(`type\s+\w+\s*=`)
)

// declaration keywords skipped when pulling the symbol name out of a match.
var declarationKeywords = map[string]bool{
	"function": true, "class": true, "interface": true, "type": true,
	"def": true, "func": true, "module": true, "struct": true, "enum": true,
	"const": true, "let": true, "var": true, "async": true, "static": true,
	"public": true, "private": true, "protected": true, "export": true,
	"abstract": true, "final": true,
}

// extractSymbols regex-scans declarations and records their source positions.
// Symbol IDs are derived from name and position so identical content produces
// identical analyses.
func extractSymbols(content string, cfg *lang.Config) []models.SymbolInfo {
	symbols := []models.SymbolInfo{}
	seen := make(map[string]bool)

	scan := func(patterns []*regexp.Regexp) {
		for _, pat := range patterns {
			for _, loc := range pat.FindAllStringIndex(content, -1) {
				sym, ok := symbolFromMatch(content, loc[0], loc[1])
				if !ok || seen[sym.ID] {
					continue
				}
				seen[sym.ID] = true
				symbols = append(symbols, sym)
			}
		}
	}

	scan(cfg.FunctionPatterns)
	scan(cfg.ClassPatterns)
	scan([]*regexp.Regexp{interfacePattern, typeAliasPattern})

	return symbols
}

func symbolFromMatch(content string, start, end int) (models.SymbolInfo, bool) {
	matched := content[start:end]

	name := symbolName(matched)
	if name == "" {
		return models.SymbolInfo{}, false
	}

	line := lineAt(content, start)
	char := start - strings.LastIndex(content[:start], "\n") - 1

	sym := models.SymbolInfo{
		ID:         fmt.Sprintf("%s:%d:%d", name, line, char),
		Name:       name,
		Type:       symbolType(matched),
		Visibility: symbolVisibility(matched),
		Range: models.SourceRange{
			StartLine: line,
			StartChar: char,
			EndLine:   line + strings.Count(matched, "\n"),
			EndChar:   char + len(matched),
		},
	}
	return sym, true
}

// symbolName returns the first identifier in the match that is not a
// declaration keyword.
func symbolName(matched string) string {
	for _, candidate := range namePattern.FindAllString(matched, -1) {
		if !declarationKeywords[candidate] {
			return candidate
		}
	}
	return ""
}

// symbolType inspects the matched text for declaration keywords.
func symbolType(matched string) models.SymbolType {
	switch {
	case strings.Contains(matched, "interface"):
		return models.SymbolInterface
	case strings.Contains(matched, "class") || strings.Contains(matched, "struct") || strings.Contains(matched, "module"):
		return models.SymbolClass
	case typeAliasPattern.MatchString(matched):
		return models.SymbolTypeAlias
	case strings.Contains(matched, "function") || strings.Contains(matched, "=>") ||
		strings.Contains(matched, "def ") || strings.Contains(matched, "func "):
		return models.SymbolFunction
	default:
		return models.SymbolVariable
	}
}

func symbolVisibility(matched string) models.Visibility {
	switch {
	case strings.Contains(matched, "private"):
		return models.VisibilityPrivate
	case strings.Contains(matched, "protected"):
		return models.VisibilityProtected
	default:
		return models.VisibilityPublic
	}
}
