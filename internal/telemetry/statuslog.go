package telemetry

import (
	"sync"
)

// DefaultStatusLogCap bounds the human-readable status journal; the raw
// frame log uses the smaller RawLogCap, matching the console view that shows
// only the last screenful of frames.
const (
	DefaultStatusLogCap = 200
	RawLogCap           = 20
)

// StatusLog is an append-only, capped journal. When full, the oldest entry
// is evicted first. Safe for concurrent use: the ingest loop appends while
// HTTP handlers read.
type StatusLog struct {
	mu      sync.Mutex
	entries []string
	cap     int
}

// NewStatusLog creates a log bounded to max entries. A non-positive max
// falls back to DefaultStatusLogCap.
func NewStatusLog(max int) *StatusLog {
	if max <= 0 {
		max = DefaultStatusLogCap
	}
	return &StatusLog{cap: max}
}

// Append adds a line to the end of the journal, evicting the oldest line
// when the cap is reached.
func (l *StatusLog) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == l.cap {
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = line
		return
	}
	l.entries = append(l.entries, line)
}

// Entries returns a copy of the journal, oldest first.
func (l *StatusLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the current number of entries.
func (l *StatusLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
