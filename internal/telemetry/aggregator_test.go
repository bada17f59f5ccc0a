package telemetry

import (
	"strings"
	"testing"
	"time"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
)

func newTestAggregator(maxTrack int) (*TrackAggregator, *StatusLog) {
	statusLog := NewStatusLog(DefaultStatusLogCap)
	return NewTrackAggregator(zones.DefaultRegistry(), statusLog, maxTrack), statusLog
}

func TestIngestAppendsAndReportsViolation(t *testing.T) {
	agg, statusLog := newTestAggregator(0)

	agg.Ingest(Entry{
		FlightID:   1,
		DroneID:    9,
		Latitude:   51.1258334, // Ak Orda center
		Longitude:  71.4466667,
		Altitude:   100,
		Speed:      40,
		ReceivedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local),
	})

	track := agg.Trajectory(1)
	if len(track) != 1 {
		t.Fatalf("expected trajectory length 1, got %d", len(track))
	}

	entries := statusLog.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one violation entry, got %d", len(entries))
	}
	line := entries[0]
	for _, want := range []string{"Flight 1", "drone 9", "Ak Orda Area"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected violation line to contain %q, got %q", want, line)
		}
	}
}

func TestIngestOutsideZonesIsSilent(t *testing.T) {
	agg, statusLog := newTestAggregator(0)

	agg.Ingest(Entry{FlightID: 1, Latitude: 52.0, Longitude: 72.0, ReceivedAt: time.Now()})

	if n := statusLog.Len(); n != 0 {
		t.Errorf("expected no violation entries, got %d", n)
	}
	if len(agg.Trajectory(1)) != 1 {
		t.Error("expected point still appended to trajectory")
	}
}

func TestFlightsKeptSeparate(t *testing.T) {
	agg, _ := newTestAggregator(0)

	agg.Ingest(Entry{FlightID: 2, Latitude: 52.0, Longitude: 72.0})
	agg.Ingest(Entry{FlightID: 1, Latitude: 52.1, Longitude: 72.1})
	agg.Ingest(Entry{FlightID: 2, Latitude: 52.2, Longitude: 72.2})

	if len(agg.Trajectory(1)) != 1 || len(agg.Trajectory(2)) != 2 {
		t.Errorf("expected separate trajectories, got %d and %d",
			len(agg.Trajectory(1)), len(agg.Trajectory(2)))
	}

	ids := agg.AllFlightIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("expected sorted ids [1 2], got %v", ids)
	}
}

func TestLatestReturnsLastAppended(t *testing.T) {
	agg, _ := newTestAggregator(0)

	if _, ok := agg.Latest(7); ok {
		t.Error("expected no latest entry for unknown flight")
	}

	agg.Ingest(Entry{FlightID: 7, Latitude: 52.0, Longitude: 72.0})
	agg.Ingest(Entry{FlightID: 7, Latitude: 52.5, Longitude: 72.5})

	last, ok := agg.Latest(7)
	if !ok {
		t.Fatal("expected latest entry")
	}
	if last.Latitude != 52.5 {
		t.Errorf("expected latest latitude 52.5, got %f", last.Latitude)
	}
}

func TestTrajectoryCapEvictsOldest(t *testing.T) {
	agg, _ := newTestAggregator(3)

	for i := 0; i < 5; i++ {
		agg.Ingest(Entry{FlightID: 1, Latitude: 52.0 + float64(i), Longitude: 72.0})
	}

	track := agg.Trajectory(1)
	if len(track) != 3 {
		t.Fatalf("expected trajectory capped at 3, got %d", len(track))
	}
	if track[0].Latitude != 54.0 {
		t.Errorf("expected oldest points evicted, got first latitude %f", track[0].Latitude)
	}
}

func TestColorAssignmentStableAndCycling(t *testing.T) {
	agg, _ := newTestAggregator(0)

	for id := 1; id <= len(trackPalette)+1; id++ {
		agg.Ingest(Entry{FlightID: id, Latitude: 52.0, Longitude: 72.0})
	}

	if agg.Color(1) != trackPalette[0] {
		t.Errorf("expected first flight to get first color, got %s", agg.Color(1))
	}
	// One more flight than colors: the palette wraps around.
	if agg.Color(len(trackPalette)+1) != trackPalette[0] {
		t.Errorf("expected palette to cycle, got %s", agg.Color(len(trackPalette)+1))
	}
	if got := agg.Color(2); got != trackPalette[1] {
		t.Errorf("expected stable color by sorted index, got %s", got)
	}
}
