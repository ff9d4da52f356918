// Package analytics records query/search executions for offline analysis.
// Recording is best-effort and never blocks or fails the read path.
package analytics

import (
	"sort"
	"time"
)

// ReadEvent describes one executed query or search.
type ReadEvent struct {
	Entity     string
	Op         string // "query" or "search"
	FilterKeys []string
	Total      int64
	Duration   time.Duration
	At         time.Time
}

// Recorder is the sink port. A nil Recorder disables analytics.
type Recorder interface {
	Record(event ReadEvent) error
}

// FilterKeys extracts the sorted filter key names of a filter map.
func FilterKeys[V any](filters map[string]V) []string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
