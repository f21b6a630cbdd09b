package scan

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/source"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanFindsSecurityIssues(t *testing.T) {
	code := `import hashlib
password = "admin123"
digest = hashlib.md5(data).hexdigest()`
	eng := NewEngine(rules.Default(), quietLogger())

	res, err := eng.Scan(context.Background(), source.Extract(source.NewUnit(code, "app.py")),
		[]rules.Category{rules.CategorySecurity})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(res.Issues) != 2 {
		t.Fatalf("got %d issues, want 2: %+v", len(res.Issues), res.Issues)
	}
	creds := res.Issues[0]
	if creds.RuleID != "hardcoded-credentials" || creds.LineNumber != 2 {
		t.Errorf("issue[0] = %+v, want hardcoded-credentials at line 2", creds)
	}
	if creds.Severity != rules.SeverityCritical || creds.CWE != "CWE-798" {
		t.Errorf("issue[0] severity/CWE = %s/%s", creds.Severity, creds.CWE)
	}
	if creds.Delegable {
		t.Error("templated rule should not be delegable")
	}
}

func TestScanCategoryIsolation(t *testing.T) {
	// A unit with both a security and a performance finding: scanning one
	// category must never surface the other's issues.
	code := "password = \"hunter2\"\nglobal counter"
	eng := NewEngine(rules.Default(), quietLogger())

	res, err := eng.Scan(context.Background(), source.Extract(source.NewUnit(code, "")),
		[]rules.Category{rules.CategoryPerformance})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for _, is := range res.Issues {
		if is.IssueType != rules.CategoryPerformance {
			t.Errorf("issue from disabled category leaked: %+v", is)
		}
	}
	if len(res.Issues) != 1 || res.Issues[0].RuleID != "global-statement" {
		t.Errorf("issues = %+v, want only global-statement", res.Issues)
	}
}

func TestScanDeterministic(t *testing.T) {
	code := `def f(a, b)
x = eval(raw)
result = "a" + b + "c" + d
total = 12345`
	cats := []rules.Category{
		rules.CategorySyntax, rules.CategorySecurity,
		rules.CategoryPerformance, rules.CategoryQuality,
	}
	eng := NewEngine(rules.Default(), quietLogger())
	unit := source.NewUnit(code, "")

	contexts := source.Extract(unit)
	first, err := eng.Scan(context.Background(), contexts, cats)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := eng.Scan(context.Background(), contexts, cats)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("scan %d diverged:\nfirst %+v\nagain %+v", i, first, again)
		}
	}
}

func TestScanFaultIsolation(t *testing.T) {
	reg := rules.New([]rules.Rule{
		{
			ID:       "panicky",
			Category: rules.CategoryQuality,
			Severity: rules.SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				panic("matcher exploded")
			},
			Description: "never produced",
		},
		{
			ID:          "steady",
			Category:    rules.CategoryQuality,
			Severity:    rules.SeverityInfo,
			Pattern:     regexp.MustCompile(`TODO`),
			Description: "marker found",
		},
	})
	eng := NewEngine(reg, quietLogger())

	res, err := eng.Scan(context.Background(), source.Extract(source.NewUnit("x = 1 # TODO\ny = 2", "")),
		[]rules.Category{rules.CategoryQuality})
	if err != nil {
		t.Fatalf("faulting rule must not fail the scan: %v", err)
	}

	if len(res.Issues) != 1 || res.Issues[0].RuleID != "steady" {
		t.Errorf("issues = %+v, want only steady", res.Issues)
	}
	if len(res.Faults) != 2 {
		t.Fatalf("got %d faults, want one per scanned line", len(res.Faults))
	}
	if res.Faults[0].RuleID != "panicky" || res.Faults[0].Reason != "matcher exploded" {
		t.Errorf("fault = %+v", res.Faults[0])
	}
}

func TestScanRecordsGroupsFromFullLine(t *testing.T) {
	// The line exceeds the snippet limit, so the stored snippet loses the
	// closing quote. Capture groups must still come from the full line.
	line := `password = "` + strings.Repeat("a", 130) + `"`
	eng := NewEngine(rules.Default(), quietLogger())

	res, err := eng.Scan(context.Background(), source.Extract(source.NewUnit(line, "")),
		[]rules.Category{rules.CategorySecurity})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(res.Issues), res.Issues)
	}

	is := res.Issues[0]
	if !strings.HasSuffix(is.CodeSnippet, "...") || len(is.CodeSnippet) >= len(line) {
		t.Errorf("snippet not truncated: %q", is.CodeSnippet)
	}
	if len(is.Groups) < 2 || is.Groups[1] != "password" {
		t.Errorf("Groups = %v, want captured variable name at index 1", is.Groups)
	}
}

func TestSnippetTruncation(t *testing.T) {
	short := "x = compute(a, b)"
	if got := snippet("  " + short + "  "); got != short {
		t.Errorf("snippet = %q, want trimmed %q", got, short)
	}

	long := "y = " + strings.Repeat("z", 130)
	got := snippet(long)
	if !strings.HasSuffix(got, "...") || len(got) != snippetKeepLen+3 {
		t.Errorf("snippet = %q (len %d)", got, len(got))
	}

	// Multibyte runes must not be split mid-sequence. The prefix offsets the
	// rune grid so the keep limit lands inside a rune.
	wide := "msg = \"" + strings.Repeat("好", 60) + "\""
	got = snippet(wide)
	if !utf8.ValidString(got) {
		t.Errorf("snippet is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("snippet = %q, want truncated", got)
	}
}

func TestScanCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := NewEngine(rules.Default(), quietLogger())
	_, err := eng.Scan(ctx, source.Extract(source.NewUnit("x = 1", "")),
		[]rules.Category{rules.CategorySecurity})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
