package domain

import (
	"fmt"
	"regexp"
)

// totalRe matches the TOTAL line of `coverage report` output, e.g.
// "TOTAL    312     41    87%".
var totalRe = regexp.MustCompile(`TOTAL.*?([\d.]+%)`)

// TotalPercent extracts the total coverage percentage from `coverage report`
// output, e.g. "87%". A missing TOTAL line means the tool produced output we
// do not understand, which is a contract violation rather than a user error.
func TotalPercent(output string) (string, error) {
	match := totalRe.FindStringSubmatch(output)
	if match == nil {
		return "", fmt.Errorf("no TOTAL line in coverage output: %q", output)
	}
	return match[1], nil
}

// TypeCoverage is the coverage percentage measured for one test type.
type TypeCoverage struct {
	Type    string `json:"type"`
	Percent string `json:"percent"`
}

// Summary aggregates per-type coverage with the combined total.
type Summary struct {
	Types []TypeCoverage
	Total string
}
