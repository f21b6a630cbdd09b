package source

import (
	"regexp"
	"strings"
)

// Construct is a lexical tag attached to a line by the extractor.
type Construct uint32

// Construct tags. A line may carry any combination.
const (
	ConstructBlank Construct = 1 << iota
	ConstructComment
	ConstructAssignment
	ConstructAugAssignment
	ConstructFunctionDef
	ConstructClassDef
	ConstructLoop
	ConstructLoopBody
	ConstructConditional
	ConstructExceptionHandler
	ConstructDecorator
	ConstructStringLiteral
	ConstructReturn
	ConstructGlobal
	ConstructUnusedAssignment
	ConstructUnusedFunction
)

// ConstructSet is the set of tags detected on a single line.
type ConstructSet uint32

// Has reports whether the set contains the given tag.
func (s ConstructSet) Has(c Construct) bool { return uint32(s)&uint32(c) != 0 }

// add inserts a tag into the set.
func (s *ConstructSet) add(c Construct) { *s |= ConstructSet(c) }

// Empty reports whether no tags were detected.
func (s ConstructSet) Empty() bool { return s == 0 }

// LineContext holds the structural facts extracted for one physical line.
// It is produced once per analysis and read-only afterward.
type LineContext struct {
	// Number is the 1-based physical line number.
	Number int

	// Raw is the unmodified line text.
	Raw string

	// Constructs is the set of lexical tags detected on the line.
	Constructs ConstructSet

	// Decisions counts decision points contributed by this line: conditional
	// branches, loop headers, exception-handler clauses, and boolean and/or
	// operators. The scoring engine sums these for cyclomatic complexity.
	Decisions int
}

var (
	assignRe    = regexp.MustCompile(`^\s*[A-Za-z_]\w*\s*=(?:[^=]|$)`)
	augAssignRe = regexp.MustCompile(`^\s*[A-Za-z_][\w.\[\]'"]*\s*(\+=|-=|\*=|/=|//=|%=)`)
	defRe       = regexp.MustCompile(`^\s*def\s+([A-Za-z_]\w*)\s*\(`)
	classRe     = regexp.MustCompile(`^\s*class\s+[A-Za-z_]\w*`)
	identRe     = regexp.MustCompile(`[A-Za-z_]\w*`)
	boolOpRe    = regexp.MustCompile(`\b(and|or)\b`)
)

// loopFrame tracks an open loop header while scanning subsequent lines.
type loopFrame struct {
	indent int
}

// Extract produces one LineContext per physical line of the unit, index
// matching 1-based line numbers. Blank lines get an empty construct set.
// Extraction is deterministic and linear in the size of the input; it never
// returns an error, even for malformed input.
func Extract(unit Unit) []LineContext {
	rawLines := unit.Lines()
	contexts := make([]LineContext, len(rawLines))

	// First pass: per-line tags and decision counts.
	var loops []loopFrame
	for i, raw := range rawLines {
		lc := LineContext{Number: i + 1, Raw: raw}
		trimmed := strings.TrimSpace(raw)
		indent := indentWidth(raw)

		// Close loop frames whose body this line has left.
		if trimmed != "" {
			for len(loops) > 0 && indent <= loops[len(loops)-1].indent {
				loops = loops[:len(loops)-1]
			}
			if len(loops) > 0 {
				lc.Constructs.add(ConstructLoopBody)
			}
		}

		switch {
		case trimmed == "":
			lc.Constructs.add(ConstructBlank)
		case strings.HasPrefix(trimmed, "#"):
			lc.Constructs.add(ConstructComment)
		default:
			tagCode(&lc, trimmed)
			if lc.Constructs.Has(ConstructLoop) {
				loops = append(loops, loopFrame{indent: indent})
			}
		}

		contexts[i] = lc
	}

	markUnusedNames(rawLines, contexts)
	return contexts
}

// tagCode tags a non-blank, non-comment line. The trimmed text has leading
// whitespace removed; Raw is kept intact on the context.
func tagCode(lc *LineContext, trimmed string) {
	keyword := firstWord(trimmed)

	switch keyword {
	case "if", "elif":
		lc.Constructs.add(ConstructConditional)
		lc.Decisions++
	case "else":
		lc.Constructs.add(ConstructConditional)
	case "for", "while":
		lc.Constructs.add(ConstructLoop)
		lc.Decisions++
	case "except":
		lc.Constructs.add(ConstructExceptionHandler)
		lc.Decisions++
	case "def":
		lc.Constructs.add(ConstructFunctionDef)
	case "class":
		if classRe.MatchString(trimmed) {
			lc.Constructs.add(ConstructClassDef)
		}
	case "return":
		lc.Constructs.add(ConstructReturn)
	case "global":
		lc.Constructs.add(ConstructGlobal)
	}

	if strings.HasPrefix(trimmed, "@") {
		lc.Constructs.add(ConstructDecorator)
	}
	if strings.ContainsAny(trimmed, `"'`) {
		lc.Constructs.add(ConstructStringLiteral)
	}
	if augAssignRe.MatchString(trimmed) {
		lc.Constructs.add(ConstructAugAssignment)
	} else if assignRe.MatchString(trimmed) {
		lc.Constructs.add(ConstructAssignment)
	}

	// Inline conditionals and boolean operators count as decision points
	// even when the line's first word is something else.
	if keyword != "if" && keyword != "elif" && strings.Contains(trimmed, " if ") {
		lc.Decisions++
	}
	lc.Decisions += len(boolOpRe.FindAllString(StripStrings(trimmed), -1))
}

// markUnusedNames runs the second extraction pass: names introduced by a
// simple assignment or a function definition that appear nowhere else in the
// unit get an unused tag on their defining line. Names with a leading
// underscore are treated as intentionally unused and skipped.
func markUnusedNames(rawLines []string, contexts []LineContext) {
	counts := make(map[string]int)
	for _, raw := range rawLines {
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, id := range identRe.FindAllString(StripStrings(trimmed), -1) {
			counts[id]++
		}
	}

	for i := range contexts {
		lc := &contexts[i]
		trimmed := strings.TrimSpace(lc.Raw)

		if lc.Constructs.Has(ConstructAssignment) {
			name := identRe.FindString(trimmed)
			if name != "" && !strings.HasPrefix(name, "_") && counts[name] == 1 {
				lc.Constructs.add(ConstructUnusedAssignment)
			}
		}
		if lc.Constructs.Has(ConstructFunctionDef) {
			m := defRe.FindStringSubmatch(trimmed)
			if m != nil && !strings.HasPrefix(m[1], "_") && counts[m[1]] == 1 {
				lc.Constructs.add(ConstructUnusedFunction)
			}
		}
	}
}

// indentWidth returns the leading whitespace width of a line, counting a tab
// as four columns.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// firstWord returns the leading identifier-like token of a trimmed line.
func firstWord(trimmed string) string {
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

// StripStrings blanks out single- and double-quoted spans so keyword and
// identifier scans do not match inside string literals. Quotes themselves
// are preserved as placeholders to keep column positions stable.
func StripStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(s) {
				b.WriteString("  ")
				i++
				continue
			}
			if c == quote {
				quote = 0
				b.WriteByte(c)
				continue
			}
			b.WriteByte(' ')
		case c == '\'' || c == '"':
			quote = c
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
