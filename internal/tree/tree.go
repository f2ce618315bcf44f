// Package tree renders a directory tree as indented text lines with
// box-drawing connectors, in the style of the unix tree command.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const permissionDeniedMarker = "[Permission Denied]"

// fileIcons maps lowercase extensions to a display icon. Unknown
// extensions fall back to a generic document icon.
var fileIcons = map[string]string{
	".html": "🌐",
	".xml":  "📄",
	".json": "📋",
	".csv":  "📊",
	".xlsx": "📈",
	".go":   "🐹",
	".txt":  "📝",
	".log":  "📃",
}

// Builder renders directory trees from the given filesystem.
type Builder struct {
	fs afero.Fs
}

// NewBuilder returns a Builder reading from the given filesystem.
func NewBuilder(fs afero.Fs) *Builder {
	return &Builder{fs: fs}
}

// frame is one directory being traversed: the entries still to emit and
// the line prefix its children inherit.
type frame struct {
	prefix  string
	path    string
	entries []os.FileInfo
	next    int
}

// Build walks root and returns one line per reachable filesystem entry,
// preceded by a two-line header. Traversal is depth-first with directories
// sorted before files, case-insensitively, using an explicit stack rather
// than recursion so deep trees cannot exhaust the goroutine stack.
//
// An unreadable subdirectory contributes a single permission marker line
// and traversal continues; only an unreadable root is an error.
func (b *Builder) Build(root string) ([]string, error) {
	lines := []string{
		fmt.Sprintf("Directory Tree for: %s", root),
		strings.Repeat("=", 50),
	}

	info, err := b.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access root directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	entries, err := b.readSorted(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read root directory %s: %w", root, err)
	}

	lines = append(lines, "📁 "+filepath.Base(root)+"/")
	stack := []frame{{prefix: "", path: root, entries: entries}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++
		last := top.next == len(top.entries)

		connector := "├── "
		childPrefix := top.prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = top.prefix + "    "
		}

		if !entry.IsDir() {
			lines = append(lines, top.prefix+connector+iconFor(entry.Name())+" "+entry.Name())
			continue
		}

		lines = append(lines, top.prefix+connector+"📁 "+entry.Name()+"/")

		childPath := filepath.Join(top.path, entry.Name())
		children, err := b.readSorted(childPath)
		if err != nil {
			lines = append(lines, childPrefix+"    "+permissionDeniedMarker)
			continue
		}
		stack = append(stack, frame{prefix: childPrefix, path: childPath, entries: children})
	}

	return lines, nil
}

// readSorted lists a directory with directories first, then files, each
// group ordered case-insensitively by name.
func (b *Builder) readSorted(path string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(b.fs, path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
	return entries, nil
}

// Dump writes tree lines to a plain-text file. Callers treat a failure as
// a warning; the tree data remains available in memory.
func Dump(fs afero.Fs, lines []string, path string) error {
	data := []byte(strings.Join(lines, "\n") + "\n")
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to save directory tree to %s: %w", path, err)
	}
	return nil
}

func iconFor(name string) string {
	if icon, ok := fileIcons[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return "📄"
}
