package classify

import (
	"strings"
	"testing"
)

func TestSet_Match_Defaults(t *testing.T) {
	set, err := Compile(DefaultSpecs())
	if err != nil {
		t.Fatalf("Compile(DefaultSpecs()): %v", err)
	}

	tests := []struct {
		name     string
		filename string
		want     string
		matched  bool
	}{
		{
			name:     "full report",
			filename: "ModuleA.Full_Report.html",
			want:     "full_reports",
			matched:  true,
		},
		{
			name:     "metrics report",
			filename: "ModuleB.Metrics_Report.html",
			want:     "metrics_reports",
			matched:  true,
		},
		{
			name:     "testcase management report",
			filename: "Proj.Sub.Testcase_Management_Report.html",
			want:     "testcase_reports",
			matched:  true,
		},
		{
			name:     "coverage report",
			filename: "ModuleB.Coverage_Report.html",
			want:     "coverage_reports",
			matched:  true,
		},
		{
			name:     "execution report",
			filename: "x.Execution_Report.html",
			want:     "execution_reports",
			matched:  true,
		},
		{
			name:     "case insensitive",
			filename: "modulea.full_report.HTML",
			want:     "full_reports",
			matched:  true,
		},
		{
			name:     "no match plain html",
			filename: "index.html",
			matched:  false,
		},
		{
			name:     "no match wrong extension",
			filename: "ModuleA.Full_Report.htm",
			matched:  false,
		},
		{
			name:     "no match partial suffix only",
			filename: "Full_Report.html.bak",
			matched:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := set.Match(tt.filename)
			if ok != tt.matched {
				t.Fatalf("Match(%q) matched = %v, want %v", tt.filename, ok, tt.matched)
			}
			if ok && c.Name != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.filename, c.Name, tt.want)
			}
		})
	}
}

func TestSet_Match_FirstMatchWins(t *testing.T) {
	// Both patterns match; declaration order decides.
	set, err := Compile([]Spec{
		{Name: "html_files", Regex: `.*\.html`},
		{Name: "full_reports", Regex: `.*\.Full_Report\.html`},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	c, ok := set.Match("ModuleA.Full_Report.html")
	if !ok {
		t.Fatal("expected a match")
	}
	if c.Name != "html_files" {
		t.Errorf("got %q, want first-declared category html_files", c.Name)
	}
}

func TestSet_Match_Glob(t *testing.T) {
	set, err := Compile([]Spec{
		{Name: "smoke_reports", Glob: "*.Smoke_Report.html"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if _, ok := set.Match("ModuleC.Smoke_Report.html"); !ok {
		t.Error("glob should match exact case")
	}
	if _, ok := set.Match("MODULEC.SMOKE_REPORT.HTML"); !ok {
		t.Error("glob should match case-insensitively")
	}
	if _, ok := set.Match("ModuleC.Smoke_Report.html.old"); ok {
		t.Error("glob should not match a longer filename")
	}
}

func TestCompile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{
			name:  "empty set",
			specs: nil,
		},
		{
			name:  "empty name",
			specs: []Spec{{Regex: ".*"}},
		},
		{
			name: "duplicate name",
			specs: []Spec{
				{Name: "a", Regex: ".*"},
				{Name: "a", Regex: ".*"},
			},
		},
		{
			name:  "invalid regex",
			specs: []Spec{{Name: "bad", Regex: "("}},
		},
		{
			name:  "invalid glob",
			specs: []Spec{{Name: "bad", Glob: "[abc"}},
		},
		{
			name:  "both regex and glob",
			specs: []Spec{{Name: "bad", Regex: ".*", Glob: "*"}},
		},
		{
			name:  "neither regex nor glob",
			specs: []Spec{{Name: "bad"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.specs); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCompile_DefaultTitle(t *testing.T) {
	set, err := Compile([]Spec{{Name: "full_reports", Regex: ".*"}})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := set.Categories()[0].Title; got != "Full Reports" {
		t.Errorf("default title = %q, want %q", got, "Full Reports")
	}
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"full_reports", "Full Reports"},
		{"testcase_reports", "Testcase Reports"},
		{"total", "Total"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleFor(tt.in); got != tt.want {
			t.Errorf("TitleFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultSpecs_Order(t *testing.T) {
	want := []string{"full_reports", "metrics_reports", "testcase_reports", "coverage_reports", "execution_reports"}
	specs := DefaultSpecs()
	if len(specs) != len(want) {
		t.Fatalf("got %d default specs, want %d", len(specs), len(want))
	}
	var names []string
	for _, s := range specs {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("default order = %v, want %v", names, want)
	}
}
