package rules

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		groups   []string
		want     string
	}{
		{
			name:     "plain group",
			template: "%1 = os.getenv(%1)",
			groups:   []string{`password = "x"`, "password"},
			want:     "password = os.getenv(password)",
		},
		{
			name:     "uppercased group",
			template: `%1 = os.getenv("%U1")`,
			groups:   []string{`password = "admin123"`, "password"},
			want:     `password = os.getenv("PASSWORD")`,
		},
		{
			name:     "missing group",
			template: "use %3 here",
			groups:   []string{"whole", "one"},
			want:     "use  here",
		},
		{
			name:     "literal percent",
			template: "100% done",
			groups:   []string{"x"},
			want:     "100% done",
		},
		{
			name:     "no placeholders",
			template: "Use json.loads() for untrusted data",
			groups:   nil,
			want:     "Use json.loads() for untrusted data",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.template, tt.groups); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}
