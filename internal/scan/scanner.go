// Package scan walks a directory tree, classifies files against a report
// category set, and collects per-file metadata.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"
	"github.com/itchyny/timefmt-go"
	"github.com/spf13/afero"

	"github.com/suduli/vcast-analyzer/internal/classify"
)

const (
	bytesPerMB   = 1024 * 1024
	modifiedFmt  = "%Y-%m-%d %H:%M:%S"
	unknownValue = "Unknown"
)

// Scanner classifies and collects report files under a root directory.
type Scanner struct {
	fs  afero.Fs
	set *classify.Set
}

// New returns a Scanner reading from the given filesystem.
func New(fs afero.Fs, set *classify.Set) *Scanner {
	return &Scanner{fs: fs, set: set}
}

// Scan walks every file under root and returns the classified records.
// A missing or unreadable root is an error; anything that goes wrong for a
// single file or subtree is logged and skipped so one bad entry cannot
// abort the whole scan. Cancelling the context stops the walk.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access root directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	slog.Info("scanning directory for reports", "root", root)

	result := NewResult(s.set)
	err = afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		category, ok := s.set.Match(info.Name())
		if !ok {
			return nil
		}
		result.add(category.Name, s.collect(root, path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("scan complete", "total", result.Total())
	for _, c := range result.Categories() {
		if n := result.Count(c.Name); n > 0 {
			slog.Debug("category populated", "category", c.Name, "files", n)
		}
	}

	return result, nil
}

// collect extracts metadata for one matched file. A stat failure (for
// example the file disappearing mid-scan) degrades to a zero-size record
// with an Unknown timestamp instead of failing the scan.
func (s *Scanner) collect(root, path string) Record {
	rec := Record{
		Filename:    filepath.Base(path),
		Path:        absolutePath(path),
		RelPath:     relativeTo(root, path),
		Directory:   relativeTo(root, filepath.Dir(path)),
		Modified:    unknownValue,
		Changed:     unknownValue,
		ContentType: unknownValue,
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		slog.Warn("could not extract metadata", "path", path, "error", err)
		return rec
	}

	rec.SizeBytes = info.Size()
	rec.SizeMB = RoundMB(info.Size())
	rec.Modified = timefmt.Format(info.ModTime(), modifiedFmt)

	// times reads the platform stat payload from Sys(), which in-memory
	// filesystems don't provide.
	if info.Sys() != nil {
		if ts := times.Get(info); ts.HasChangeTime() {
			rec.Changed = timefmt.Format(ts.ChangeTime(), modifiedFmt)
		}
	}

	if ct, err := s.detectContentType(path); err == nil {
		rec.ContentType = ct
	}

	return rec
}

func (s *Scanner) detectContentType(path string) (string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	return detected.String(), nil
}

// RoundMB converts a byte count to megabytes rounded to two decimals.
func RoundMB(bytes int64) float64 {
	return math.Round(float64(bytes)/bytesPerMB*100) / 100
}

func absolutePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
