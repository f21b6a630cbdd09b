package source

import "testing"

func TestUnitValid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"code", "x = 1", true},
		{"empty", "", false},
		{"whitespace only", "  \n\t\n", false},
		{"invalid utf8", "x = 1\xff\xfe", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUnit(tt.text, "f.py").Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnitLines(t *testing.T) {
	u := NewUnit("a\nb\nc", "")
	if got := u.TotalLines(); got != 3 {
		t.Errorf("TotalLines() = %d, want 3", got)
	}
	lines := u.Lines()
	if lines[0] != "a" || lines[2] != "c" {
		t.Errorf("Lines() = %v", lines)
	}
}
