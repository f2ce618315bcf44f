// Package report turns scan results into summary statistics and writes
// them out as a styled spreadsheet and a console overview.
package report

import (
	"math"

	"github.com/suduli/vcast-analyzer/internal/scan"
)

// TotalLabel is the category label of the aggregate summary row.
const TotalLabel = "TOTAL"

// SummaryRow is one line of the summary sheet: per-category statistics,
// or the final TOTAL row aggregating every category.
type SummaryRow struct {
	Category       string
	Count          int
	TotalMB        float64
	AvgMB          float64
	LatestModified string
}

// Summarize computes one row per non-empty category, in category order,
// followed by a TOTAL row. The latest-modified column is the string
// maximum over the formatted timestamps, which is chronologically correct
// because the format is lexicographically monotonic. The TOTAL average is
// zero when nothing was found.
func Summarize(result *scan.Result) []SummaryRow {
	var rows []SummaryRow
	var grandCount int
	var grandMB float64

	for _, c := range result.Categories() {
		records := result.Records(c.Name)
		if len(records) == 0 {
			continue
		}

		var totalMB float64
		var latest string
		for _, r := range records {
			totalMB += r.SizeMB
			if r.Modified > latest {
				latest = r.Modified
			}
		}

		rows = append(rows, SummaryRow{
			Category:       c.Title,
			Count:          len(records),
			TotalMB:        round2(totalMB),
			AvgMB:          round2(totalMB / float64(len(records))),
			LatestModified: latest,
		})

		grandCount += len(records)
		grandMB += totalMB
	}

	total := SummaryRow{Category: TotalLabel, Count: grandCount, TotalMB: round2(grandMB)}
	if grandCount > 0 {
		total.AvgMB = round2(grandMB / float64(grandCount))
	}
	return append(rows, total)
}

// PadColumns equalizes column lengths by filling shorter columns with the
// absent marker, so parallel columns can be written side by side.
func PadColumns(absent string, columns ...[]string) [][]string {
	maxLen := 0
	for _, col := range columns {
		if len(col) > maxLen {
			maxLen = len(col)
		}
	}

	padded := make([][]string, len(columns))
	for i, col := range columns {
		out := make([]string, maxLen)
		copy(out, col)
		for j := len(col); j < maxLen; j++ {
			out[j] = absent
		}
		padded[i] = out
	}
	return padded
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
