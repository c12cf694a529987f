package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    PathRegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PathRegexList works like the -run flag of "go test": each pattern is split on "/" and the
// pieces are matched against the corresponding levels of the test path. A group is selected if
// its path matches the leading pieces, so that its nested checks can be reached.
type PathRegexList struct {
	raw      []string
	patterns [][]*regexp.Regexp
}

func (r PathRegexList) String() string {
	var ss []string
	for _, p := range r.raw {
		ss = append(ss, `"`+p+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *PathRegexList) Set(value string) error {
	var levels []*regexp.Regexp
	for _, piece := range strings.Split(value, "/") {
		rx, err := regexp.Compile(piece)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		levels = append(levels, rx)
	}
	r.raw = append(r.raw, value)
	r.patterns = append(r.patterns, levels)
	return nil
}

func (r PathRegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r PathRegexList) AnyMatch(id TestID) bool {
	for _, levels := range r.patterns {
		if matchLevels(levels, id.Path) {
			return true
		}
	}
	return false
}

func matchLevels(levels []*regexp.Regexp, path []string) bool {
	for i, name := range path {
		if i >= len(levels) {
			break
		}
		if !levels[i].MatchString(name) {
			return false
		}
	}
	return true
}

// ExactMatchPattern returns a -run pattern that selects only the given test ID.
func ExactMatchPattern(id TestID) string {
	pieces := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		pieces = append(pieces, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(pieces, "/")
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.MustMatch.IsDefined() && !filters.MustNotMatch.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}
