package scan

import (
	"github.com/suduli/vcast-analyzer/internal/classify"
)

// Record holds the metadata collected for one matched report file.
type Record struct {
	Filename    string
	Path        string
	RelPath     string
	Directory   string
	SizeBytes   int64
	SizeMB      float64
	Modified    string
	Changed     string
	ContentType string
}

// Result groups scanned records by category. Every category declared in
// the set is present, even when no file matched it.
type Result struct {
	set     *classify.Set
	records map[string][]Record
}

// NewResult returns an empty Result covering every category in the set.
func NewResult(set *classify.Set) *Result {
	records := make(map[string][]Record, set.Len())
	for _, c := range set.Categories() {
		records[c.Name] = nil
	}
	return &Result{set: set, records: records}
}

func (r *Result) add(category string, rec Record) {
	r.records[category] = append(r.records[category], rec)
}

// Records returns the records for a category, in the order they were found.
func (r *Result) Records(category string) []Record {
	return r.records[category]
}

// Categories returns the category set in declaration order.
func (r *Result) Categories() []classify.Category {
	return r.set.Categories()
}

// Count returns the number of records in one category.
func (r *Result) Count(category string) int {
	return len(r.records[category])
}

// Total returns the number of records across all categories.
func (r *Result) Total() int {
	total := 0
	for _, recs := range r.records {
		total += len(recs)
	}
	return total
}
