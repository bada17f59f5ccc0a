package telemetry

import (
	"fmt"
	"testing"
)

func TestStatusLogOrder(t *testing.T) {
	l := NewStatusLog(10)
	l.Append("first")
	l.Append("second")
	l.Append("third")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0] != "first" || entries[2] != "third" {
		t.Errorf("expected oldest-first order, got %v", entries)
	}
}

func TestStatusLogEvictsOldest(t *testing.T) {
	l := NewStatusLog(3)
	for i := 0; i < 5; i++ {
		l.Append(fmt.Sprintf("line %d", i))
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(entries))
	}
	if entries[0] != "line 2" || entries[2] != "line 4" {
		t.Errorf("expected oldest lines evicted, got %v", entries)
	}
}

func TestStatusLogDefaultCap(t *testing.T) {
	l := NewStatusLog(0)
	for i := 0; i < DefaultStatusLogCap+50; i++ {
		l.Append("x")
	}
	if l.Len() != DefaultStatusLogCap {
		t.Errorf("expected default cap %d, got %d", DefaultStatusLogCap, l.Len())
	}
}

func TestStatusLogEntriesIsCopy(t *testing.T) {
	l := NewStatusLog(10)
	l.Append("a")

	entries := l.Entries()
	entries[0] = "mutated"

	if l.Entries()[0] != "a" {
		t.Error("expected Entries to return a copy")
	}
}
