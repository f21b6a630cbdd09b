// Package source turns raw source text into line-indexed structural facts.
// The extraction is lexical, not a parse: it tags each physical line with
// lightweight construct markers that the rule engine and the scoring engine
// consume. Malformed input never fails extraction; unrecognized lines simply
// carry an empty tag set.
package source

import (
	"strings"
	"unicode/utf8"
)

// Unit is a single piece of source text under analysis. It is immutable once
// constructed and owned by the analysis call that created it.
type Unit struct {
	Text     string `json:"text"`
	FileName string `json:"file_name,omitempty"`
}

// NewUnit builds a Unit from raw text and an optional file name.
func NewUnit(text, fileName string) Unit {
	return Unit{Text: text, FileName: fileName}
}

// Valid reports whether the unit contains analyzable text: non-blank and
// valid UTF-8.
func (u Unit) Valid() bool {
	if strings.TrimSpace(u.Text) == "" {
		return false
	}
	return utf8.ValidString(u.Text)
}

// Lines splits the unit into physical lines. Line numbers used throughout
// the analyzer are 1-based indexes into this slice.
func (u Unit) Lines() []string {
	return strings.Split(u.Text, "\n")
}

// TotalLines returns the number of physical lines in the unit.
func (u Unit) TotalLines() int {
	return len(u.Lines())
}
