package tree

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/suduli/vcast-analyzer/internal/testutil"
)

func TestBuilder_Build(t *testing.T) {
	fs := testutil.NewFs()
	testutil.MustMkdirAll(t, fs, "/scan/ModuleA")
	testutil.MustMkdirAll(t, fs, "/scan/ModuleB")
	testutil.MustWriteFile(t, fs, "/scan/ModuleA/a.html", "<html/>")
	testutil.MustWriteFile(t, fs, "/scan/readme.txt", "hi")

	lines, err := NewBuilder(fs).Build("/scan")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"Directory Tree for: /scan",
		strings.Repeat("=", 50),
		"📁 scan/",
		"├── 📁 ModuleA/",
		"│   └── 🌐 a.html",
		"├── 📁 ModuleB/",
		"└── 📝 readme.txt",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Build mismatch:\ngot:  %q\nwant: %q", lines, want)
	}
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	fs := testutil.NewFs()
	testutil.MustWriteFile(t, fs, "/scan/a/x.html", "x")
	testutil.MustWriteFile(t, fs, "/scan/b/y.log", "y")
	testutil.MustWriteFile(t, fs, "/scan/z.json", "z")

	b := NewBuilder(fs)
	first, err := b.Build("/scan")
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, err := b.Build("/scan")
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two builds of an unchanged tree differ")
	}
}

func TestBuilder_Build_SortsDirsFirstCaseInsensitive(t *testing.T) {
	fs := testutil.NewFs()
	testutil.MustMkdirAll(t, fs, "/scan/beta")
	testutil.MustMkdirAll(t, fs, "/scan/Alpha")
	testutil.MustWriteFile(t, fs, "/scan/AAA.txt", "")
	testutil.MustWriteFile(t, fs, "/scan/bbb.txt", "")

	lines, err := NewBuilder(fs).Build("/scan")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"├── 📁 Alpha/",
		"├── 📁 beta/",
		"├── 📝 AAA.txt",
		"└── 📝 bbb.txt",
	}
	got := lines[3:]
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entry order:\ngot:  %q\nwant: %q", got, want)
	}
}

// denyFs fails Open for one path so an unreadable subtree can be simulated
// on the in-memory filesystem.
type denyFs struct {
	afero.Fs
	denied string
}

func (d *denyFs) Open(name string) (afero.File, error) {
	if name == d.denied {
		return nil, os.ErrPermission
	}
	return d.Fs.Open(name)
}

func TestBuilder_Build_PermissionDenied(t *testing.T) {
	base := testutil.NewFs()
	testutil.MustMkdirAll(t, base, "/scan/locked")
	testutil.MustWriteFile(t, base, "/scan/open/a.txt", "a")

	fs := &denyFs{Fs: base, denied: "/scan/locked"}
	lines, err := NewBuilder(fs).Build("/scan")
	if err != nil {
		t.Fatalf("Build should continue past an unreadable subtree: %v", err)
	}

	markers := 0
	for _, line := range lines {
		if strings.Contains(line, "[Permission Denied]") {
			markers++
		}
	}
	if markers != 1 {
		t.Errorf("got %d permission markers, want 1\nlines: %q", markers, lines)
	}

	// The readable sibling is still traversed.
	found := false
	for _, line := range lines {
		if strings.Contains(line, "a.txt") {
			found = true
		}
	}
	if !found {
		t.Error("readable sibling subtree missing from output")
	}
}

func TestBuilder_Build_RootErrors(t *testing.T) {
	fs := testutil.NewFs()
	testutil.MustWriteFile(t, fs, "/scan/file.txt", "x")

	if _, err := NewBuilder(fs).Build("/missing"); err == nil {
		t.Error("missing root should be an error")
	}
	if _, err := NewBuilder(fs).Build("/scan/file.txt"); err == nil {
		t.Error("non-directory root should be an error")
	}
}

func TestDump(t *testing.T) {
	fs := testutil.NewFs()
	lines := []string{"a", "b", "c"}

	if err := Dump(fs, lines, "/out/tree.txt"); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	data, err := afero.ReadFile(fs, "/out/tree.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(data), "a\nb\nc\n"; got != want {
		t.Errorf("dump content = %q, want %q", got, want)
	}
}

func TestDump_WriteFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(testutil.NewFs())
	if err := Dump(fs, []string{"a"}, "/tree.txt"); err == nil {
		t.Error("expected error writing to read-only filesystem")
	}
}
