package domain

import "time"

// History is an append-only log of coverage-report runs.
type History struct {
	Entries []HistoryEntry `json:"entries"`
}

// HistoryEntry records the outcome of one coverage-report run.
type HistoryEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Types     []TypeCoverage `json:"types,omitempty"`
	Total     string         `json:"total"`
}
