package rules

import (
	"strings"

	"github.com/blackwell-systems/fixforge/internal/source"
)

// blockKeywords open an indented suite and must end their header with a colon.
var blockKeywords = map[string]bool{
	"if": true, "elif": true, "else": true,
	"for": true, "while": true,
	"def": true, "class": true,
	"try": true, "except": true, "finally": true, "with": true,
}

func syntaxRules() []Rule {
	return []Rule{
		{
			ID:       "missing-colon",
			Category: CategorySyntax,
			Severity: SeverityError,
			Match: func(lc *source.LineContext) bool {
				trimmed := strings.TrimSpace(lc.Raw)
				word := leadingWord(trimmed)
				if !blockKeywords[word] {
					return false
				}
				code := source.StripStrings(trimmed)
				if i := strings.Index(code, "#"); i >= 0 {
					code = code[:i]
				}
				code = strings.TrimSpace(code)
				// Continuation lines defer the colon to a later line.
				if strings.HasSuffix(code, "\\") || strings.HasSuffix(code, "(") ||
					strings.HasSuffix(code, ",") {
					return false
				}
				return !strings.Contains(code, ":")
			},
			Description: "Block statement missing trailing colon",
		},
		{
			ID:       "unbalanced-quotes",
			Category: CategorySyntax,
			Severity: SeverityError,
			Match: func(lc *source.LineContext) bool {
				if strings.Contains(lc.Raw, `"""`) || strings.Contains(lc.Raw, "'''") {
					return false
				}
				return unterminatedQuote(lc.Raw)
			},
			Description: "Unterminated string literal",
		},
	}
}

// leadingWord returns the first identifier-like token of a trimmed line.
func leadingWord(trimmed string) string {
	end := 0
	for end < len(trimmed) {
		c := trimmed[end]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' {
			end++
			continue
		}
		break
	}
	return trimmed[:end]
}

// unterminatedQuote reports whether a quote opened on the line never closes.
// Backslash escapes inside the literal are skipped.
func unterminatedQuote(line string) bool {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return false
		}
	}
	return quote != 0
}
