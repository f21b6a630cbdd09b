package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/source"
)

func newTestAnalyzer() *Analyzer {
	return New(rules.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunHardcodedPassword(t *testing.T) {
	a := newTestAnalyzer()
	r, err := a.Run(context.Background(), source.NewUnit(`password = "admin123"`, "app.py"),
		Options{Security: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !r.Success {
		t.Error("expected success")
	}
	if r.Critical < 1 {
		t.Fatalf("expected at least one critical issue, got %+v", r)
	}
	found := false
	for _, is := range r.Issues {
		if is.RuleID == "hardcoded-credentials" {
			found = true
			if is.CWE != "CWE-798" {
				t.Errorf("CWE = %q, want CWE-798", is.CWE)
			}
			want := `password = os.getenv("PASSWORD")`
			if is.SuggestedFix != want {
				t.Errorf("SuggestedFix = %q, want %q", is.SuggestedFix, want)
			}
		}
	}
	if !found {
		t.Fatal("hardcoded-credentials issue missing")
	}
	if r.SecurityScore >= 100 {
		t.Errorf("security score = %d, want < 100", r.SecurityScore)
	}
	if r.SecurityScore != 75 {
		t.Errorf("security score = %d, want 75 for a single critical", r.SecurityScore)
	}
}

func TestRunLongCredentialLine(t *testing.T) {
	// The secret pushes the line past the snippet limit, so the stored
	// snippet drops the closing quote. The suggested fix must still use the
	// captured variable name.
	code := `password = "` + strings.Repeat("a", 130) + `"`
	a := newTestAnalyzer()
	r, err := a.Run(context.Background(), source.NewUnit(code, "app.py"),
		Options{Security: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, is := range r.Issues {
		if is.RuleID != "hardcoded-credentials" {
			continue
		}
		found = true
		want := `password = os.getenv("PASSWORD")`
		if is.SuggestedFix != want {
			t.Errorf("SuggestedFix = %q, want %q", is.SuggestedFix, want)
		}
		if len(is.CodeSnippet) >= len(code) {
			t.Errorf("snippet not truncated: %d bytes", len(is.CodeSnippet))
		}
	}
	if !found {
		t.Fatal("hardcoded-credentials issue missing")
	}
}

func TestRunPerformanceOnlyUnit(t *testing.T) {
	// A clean division function: no security findings, full security score.
	code := "def divide(a, b):\n    return a / b"
	a := newTestAnalyzer()
	r, err := a.Run(context.Background(), source.NewUnit(code, ""), DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, is := range r.Issues {
		if is.IssueType == rules.CategorySecurity {
			t.Errorf("unexpected security issue: %+v", is)
		}
	}
	if r.SecurityScore != 100 {
		t.Errorf("security score = %d, want 100", r.SecurityScore)
	}
}

func TestRunInvalidInput(t *testing.T) {
	a := newTestAnalyzer()
	for _, text := range []string{"", "   \n\t  ", "x\xff\xfe"} {
		r, err := a.Run(context.Background(), source.NewUnit(text, "bad.py"), DefaultOptions())
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Run(%q) err = %v, want ErrInvalidInput", text, err)
		}
		if r == nil || r.Success {
			t.Fatalf("Run(%q) report = %+v, want failure report", text, r)
		}
		if r.Issues == nil || len(r.Issues) != 0 {
			t.Errorf("failure report issues = %v, want empty non-nil", r.Issues)
		}
		if r.SecurityScore != 100 || r.PerformanceScore != 100 {
			t.Errorf("failure scores = %d/%d, want 100/100", r.SecurityScore, r.PerformanceScore)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	code := `import pickle
password = "hunter2"
def f(a, b)
obj = pickle.loads(raw)
result = "a" + b + "c" + d
x = 1; y = 2`
	a := newTestAnalyzer()
	unit := source.NewUnit(code, "multi.py")

	first, err := a.Run(context.Background(), unit, DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := a.Run(context.Background(), unit, DefaultOptions())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged", i)
		}
	}

	// Issues sorted by line, then severity, then catalog order.
	for i := 1; i < len(first.Issues); i++ {
		prev, cur := first.Issues[i-1], first.Issues[i]
		if cur.LineNumber < prev.LineNumber {
			t.Fatalf("issues out of line order: %+v before %+v", prev, cur)
		}
		if cur.LineNumber == prev.LineNumber && cur.Severity.Rank() > prev.Severity.Rank() {
			t.Fatalf("issues out of severity order at line %d", cur.LineNumber)
		}
	}
}

func TestRunCategoryToggles(t *testing.T) {
	code := `password = "secret1"
global counter
def f(a, b):
    pass`
	a := newTestAnalyzer()

	r, err := a.Run(context.Background(), source.NewUnit(code, ""),
		Options{Performance: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, is := range r.Issues {
		if is.IssueType != rules.CategoryPerformance {
			t.Errorf("disabled category produced issue: %+v", is)
		}
	}
	// Security was not scanned, so its score stays untouched at 100.
	if r.SecurityScore != 100 {
		t.Errorf("security score = %d, want 100 when security disabled", r.SecurityScore)
	}
}

func TestRunLineNumberBounds(t *testing.T) {
	code := `x = eval(a)
y = eval(b)
z = eval(c)`
	a := newTestAnalyzer()
	unit := source.NewUnit(code, "")

	r, err := a.Run(context.Background(), unit, Options{Security: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	total := unit.TotalLines()
	for _, is := range r.Issues {
		if is.LineNumber < 1 || is.LineNumber > total {
			t.Errorf("line number %d outside [1,%d]", is.LineNumber, total)
		}
	}
}

func TestRunComplexityToggle(t *testing.T) {
	code := "if a and b:\n    pass"
	a := newTestAnalyzer()

	with, err := a.Run(context.Background(), source.NewUnit(code, ""),
		Options{Complexity: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if with.Complexity.Cyclomatic != 3 {
		t.Errorf("cyclomatic = %d, want 3", with.Complexity.Cyclomatic)
	}

	without, err := a.Run(context.Background(), source.NewUnit(code, ""), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if without.Complexity.Cyclomatic != 0 {
		t.Errorf("disabled complexity computed anyway: %+v", without.Complexity)
	}
}

func TestOptionsCategories(t *testing.T) {
	all := DefaultOptions().Categories()
	if len(all) != 6 {
		t.Fatalf("all categories = %v, want 6", all)
	}
	none := Options{}.Categories()
	if len(none) != 0 {
		t.Errorf("zero options yielded categories %v", none)
	}
	sec := Options{Security: true}.Categories()
	if len(sec) != 1 || sec[0] != rules.CategorySecurity {
		t.Errorf("security-only = %v", sec)
	}
}
