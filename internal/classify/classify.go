package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Spec describes one report category before compilation.
// Exactly one of Regex or Glob must be set.
type Spec struct {
	Name  string
	Title string
	Regex string
	Glob  string
}

// Category is a compiled report category. Matching is case-insensitive and
// anchored to the full filename.
type Category struct {
	Name  string
	Title string

	regex *regexp.Regexp
	glob  string
}

// Matches reports whether the base filename belongs to this category.
func (c *Category) Matches(filename string) bool {
	if c.regex != nil {
		return c.regex.MatchString(filename)
	}
	matched, err := doublestar.Match(c.glob, strings.ToLower(filename))
	if err != nil {
		// Glob validity is checked at compile time.
		return false
	}
	return matched
}

// Set is an ordered list of categories. Classification is first-match-wins
// in declaration order, so precedence is a property of the configuration
// rather than of map iteration.
type Set struct {
	categories []Category
}

// Compile validates and compiles a list of category specs, preserving order.
// Any invalid pattern fails the whole set.
func Compile(specs []Spec) (*Set, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no report categories defined")
	}

	seen := make(map[string]bool, len(specs))
	categories := make([]Category, 0, len(specs))

	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate category %q", s.Name)
		}
		seen[s.Name] = true

		if (s.Regex == "") == (s.Glob == "") {
			return nil, fmt.Errorf("category %q: exactly one of regex or glob required", s.Name)
		}

		c := Category{Name: s.Name, Title: s.Title}
		if c.Title == "" {
			c.Title = TitleFor(s.Name)
		}

		if s.Regex != "" {
			re, err := regexp.Compile(`(?i)\A(?:` + s.Regex + `)\z`)
			if err != nil {
				return nil, fmt.Errorf("category %q: invalid regex %q: %w", s.Name, s.Regex, err)
			}
			c.regex = re
		} else {
			glob := strings.ToLower(s.Glob)
			if !doublestar.ValidatePattern(glob) {
				return nil, fmt.Errorf("category %q: invalid glob %q", s.Name, s.Glob)
			}
			c.glob = glob
		}

		categories = append(categories, c)
	}

	return &Set{categories: categories}, nil
}

// Match returns the first category whose pattern matches the filename.
func (s *Set) Match(filename string) (*Category, bool) {
	for i := range s.categories {
		if s.categories[i].Matches(filename) {
			return &s.categories[i], true
		}
	}
	return nil, false
}

// Categories returns the categories in declaration order.
func (s *Set) Categories() []Category {
	return s.categories
}

// Len returns the number of categories in the set.
func (s *Set) Len() int {
	return len(s.categories)
}

// DefaultSpecs returns the built-in VectorCAST report categories. Order
// matters: a filename matching several patterns is classified by the first.
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: "full_reports", Regex: `.*\.Full_Report\.html`},
		{Name: "metrics_reports", Regex: `.*\.Metrics_Report\.html`},
		{Name: "testcase_reports", Regex: `.*\.Testcase_Management_Report\.html`},
		{Name: "coverage_reports", Regex: `.*\.Coverage_Report\.html`},
		{Name: "execution_reports", Regex: `.*\.Execution_Report\.html`},
	}
}

// TitleFor converts a snake_case category name into a display title,
// e.g. "full_reports" becomes "Full Reports".
func TitleFor(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
