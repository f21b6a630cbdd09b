package source

import "testing"

func TestExtractTags(t *testing.T) {
	code := `import os

# setup
@cached
def handler(event):
    if event and event.valid:
        total = 0
        for item in event.items:
            total += item.size
    return total

class Router:
    pass

try:
    run()
except ValueError:
    pass
`
	contexts := Extract(NewUnit(code, "handler.py"))

	tests := []struct {
		line int
		want Construct
	}{
		{2, ConstructBlank},
		{3, ConstructComment},
		{4, ConstructDecorator},
		{5, ConstructFunctionDef},
		{6, ConstructConditional},
		{7, ConstructAssignment},
		{8, ConstructLoop},
		{9, ConstructAugAssignment},
		{9, ConstructLoopBody},
		{10, ConstructReturn},
		{12, ConstructClassDef},
		{17, ConstructExceptionHandler},
	}
	for _, tt := range tests {
		if !contexts[tt.line-1].Constructs.Has(tt.want) {
			t.Errorf("line %d %q missing construct %b", tt.line, contexts[tt.line-1].Raw, tt.want)
		}
	}
}

func TestExtractDecisions(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"x = 1", 0},
		{"if a:", 1},
		{"if a and b:", 2},
		{"if a and b or c:", 3},
		{"while running:", 1},
		{"for i in items:", 1},
		{"except ValueError:", 1},
		{"x = a if b else c", 1},
		{`s = "with and inside"`, 0},
		{"else:", 0},
	}
	for _, tt := range tests {
		contexts := Extract(NewUnit(tt.code, ""))
		if got := contexts[0].Decisions; got != tt.want {
			t.Errorf("decisions(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestExtractLoopBodyNesting(t *testing.T) {
	code := "for a in xs:\n    for b in ys:\n        work(a, b)\ndone()"
	contexts := Extract(NewUnit(code, ""))

	if contexts[0].Constructs.Has(ConstructLoopBody) {
		t.Error("outer loop header tagged as loop body")
	}
	if !contexts[1].Constructs.Has(ConstructLoopBody) {
		t.Error("inner loop header not tagged as loop body")
	}
	if !contexts[2].Constructs.Has(ConstructLoopBody) {
		t.Error("nested statement not tagged as loop body")
	}
	if contexts[3].Constructs.Has(ConstructLoopBody) {
		t.Error("dedented statement still tagged as loop body")
	}
}

func TestExtractUnusedNames(t *testing.T) {
	code := "total = 0\norphan = 5\n_private = 1\nprint(total)\ndef helper():\n    pass\ndef entry():\n    helper()"
	contexts := Extract(NewUnit(code, ""))

	if contexts[0].Constructs.Has(ConstructUnusedAssignment) {
		t.Error("read name flagged as unused")
	}
	if !contexts[1].Constructs.Has(ConstructUnusedAssignment) {
		t.Error("orphan assignment not flagged")
	}
	if contexts[2].Constructs.Has(ConstructUnusedAssignment) {
		t.Error("underscore-prefixed name flagged")
	}
	if contexts[4].Constructs.Has(ConstructUnusedFunction) {
		t.Error("called function flagged as unused")
	}
	if !contexts[6].Constructs.Has(ConstructUnusedFunction) {
		t.Error("never-referenced function not flagged")
	}
}

func TestStripStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`x = "and or"`, `x = "      "`},
		{`x = 'a\'b'`, `x = '    '`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := StripStrings(tt.in); got != tt.want {
			t.Errorf("StripStrings(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
