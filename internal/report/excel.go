package report

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/suduli/vcast-analyzer/internal/scan"
)

const (
	summarySheet  = "Summary"
	overviewSheet = "Overview"
	treeSheet     = "Directory Tree"

	// absentMarker fills overview cells that have no report to show.
	absentMarker = "-"

	// Excel caps sheet names at 31 characters.
	maxSheetNameLen = 31
	maxColumnWidth  = 50

	headerFillColor = "4F81BD"
)

// sheet is the in-memory form of one workbook sheet: a header row plus
// data rows. The whole workbook is assembled from these before a single
// save, so there is no write-reopen-rewrite cycle.
type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// WriteWorkbook writes the summary, overview, per-category detail sheets,
// and the directory tree into one xlsx file. Header styling and column sizing are
// best-effort: a styling failure is logged and the unstyled workbook is
// still saved. A save failure is the caller's failure.
func WriteWorkbook(afs afero.Fs, path string, result *scan.Result, treeLines []string) (err error) {
	sheets := buildSheets(result, treeLines)

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	for i, s := range sheets {
		if i == 0 {
			// Rename the default sheet rather than leaving an empty Sheet1.
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
			}
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
			}
		}
		if err := writeSheet(f, s); err != nil {
			return fmt.Errorf("failed to populate sheet %q: %w", s.name, err)
		}
	}

	if err := styleSheets(f, sheets); err != nil {
		slog.Warn("could not apply workbook formatting", "error", err)
	}

	out, err := afs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook %s: %w", path, err)
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}

	slog.Info("workbook written", "path", path, "sheets", len(sheets))
	return nil
}

// buildSheets assembles every sheet: Summary and Overview first, then one
// detail sheet per non-empty category in category order, then the
// directory tree.
func buildSheets(result *scan.Result, treeLines []string) []sheet {
	summary := sheet{
		name:    summarySheet,
		headers: []string{"Report Type", "Count", "Total Size (MB)", "Average Size (MB)", "Latest Modified"},
	}
	for _, row := range Summarize(result) {
		summary.rows = append(summary.rows, []interface{}{
			row.Category, row.Count, row.TotalMB, row.AvgMB, row.LatestModified,
		})
	}
	sheets := []sheet{summary, buildOverviewSheet(result)}

	taken := map[string]bool{summarySheet: true, overviewSheet: true, treeSheet: true}
	for _, c := range result.Categories() {
		records := result.Records(c.Name)
		if len(records) == 0 {
			continue
		}

		s := sheet{
			name:    uniqueSheetName(c.Title, taken),
			headers: []string{"Filename", "Full Path", "Relative Path", "Directory", "Size (Bytes)", "Size (MB)", "Modified", "Changed", "Content Type"},
		}
		for _, r := range records {
			s.rows = append(s.rows, []interface{}{
				r.Filename, r.Path, r.RelPath, r.Directory, r.SizeBytes, r.SizeMB, r.Modified, r.Changed, r.ContentType,
			})
		}
		sheets = append(sheets, s)
	}

	tree := sheet{name: treeSheet, headers: []string{"Directory Structure"}}
	for _, line := range treeLines {
		tree.rows = append(tree.rows, []interface{}{line})
	}
	return append(sheets, tree)
}

// buildOverviewSheet lays out the containing directories and the matched
// filenames of every category side by side, padding shorter columns with
// an absent marker so all columns have equal length.
func buildOverviewSheet(result *scan.Result) sheet {
	dirSet := map[string]bool{}
	for _, c := range result.Categories() {
		for _, r := range result.Records(c.Name) {
			dirSet[r.Directory] = true
		}
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	headers := []string{"Directory"}
	columns := [][]string{dirs}
	for _, c := range result.Categories() {
		var names []string
		for _, r := range result.Records(c.Name) {
			names = append(names, r.Filename)
		}
		headers = append(headers, c.Title)
		columns = append(columns, names)
	}

	s := sheet{name: overviewSheet, headers: headers}
	padded := PadColumns(absentMarker, columns...)
	if len(padded) == 0 {
		return s
	}
	for i := range padded[0] {
		row := make([]interface{}, len(padded))
		for j := range padded {
			row[j] = padded[j][i]
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func writeSheet(f *excelize.File, s sheet) error {
	header := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// styleSheets applies the header style and content-based column widths to
// every sheet in one pass over the in-memory workbook.
func styleSheets(f *excelize.File, sheets []sheet) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for _, s := range sheets {
		lastHeader, err := excelize.CoordinatesToCellName(len(s.headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, "A1", lastHeader, styleID); err != nil {
			return err
		}

		for col := range s.headers {
			width := runewidth.StringWidth(s.headers[col])
			for _, row := range s.rows {
				if col < len(row) {
					if w := runewidth.StringWidth(fmt.Sprint(row[col])); w > width {
						width = w
					}
				}
			}
			if width+2 < maxColumnWidth {
				width += 2
			} else {
				width = maxColumnWidth
			}

			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(s.name, name, name, float64(width)); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetNameSanitizer strips the characters Excel forbids in sheet names.
var sheetNameSanitizer = strings.NewReplacer(
	":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "",
)

// uniqueSheetName sanitizes and truncates a title to a valid sheet name,
// appending a numeric suffix when the name is already taken.
func uniqueSheetName(title string, taken map[string]bool) string {
	name := sheetNameSanitizer.Replace(title)
	if name == "" {
		name = "Sheet"
	}
	name = truncateRunes(name, maxSheetNameLen)

	candidate := name
	for i := 2; taken[candidate]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate = truncateRunes(name, maxSheetNameLen-len(suffix)) + suffix
	}
	taken[candidate] = true
	return candidate
}

// truncateRunes shortens s to at most max characters. Excel's sheet-name
// limit counts characters, so slicing must not split a multibyte rune.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
