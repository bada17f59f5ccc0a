package telemetry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
)

type recorderStub struct {
	saved []*domain.Telemetry
	err   error
}

func (r *recorderStub) Save(_ context.Context, t *domain.Telemetry) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, t)
	return nil
}

func newTestIngestor(rec Recorder) (*Ingestor, *TrackAggregator, *StatusLog) {
	statusLog := NewStatusLog(DefaultStatusLogCap)
	agg := NewTrackAggregator(zones.DefaultRegistry(), statusLog, 0)
	ing := NewIngestor(agg, statusLog, rec)
	ing.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local) }
	return ing, agg, statusLog
}

func TestHandleFrameTelemetryAtZoneCenter(t *testing.T) {
	rec := &recorderStub{}
	ing, agg, statusLog := newTestIngestor(rec)

	ing.HandleFrame([]byte(`{"type":"telemetry","flight_id":1,"drone_id":9,` +
		`"latitude":51.1258334,"longitude":71.4466667,"altitude":100,"speed":40}`))

	if len(agg.Trajectory(1)) != 1 {
		t.Fatalf("expected one trajectory point, got %d", len(agg.Trajectory(1)))
	}

	entries := statusLog.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one violation entry, got %d", len(entries))
	}
	for _, want := range []string{"Flight 1", "drone 9", "Ak Orda Area"} {
		if !strings.Contains(entries[0], want) {
			t.Errorf("expected %q in %q", want, entries[0])
		}
	}

	if len(rec.saved) != 1 {
		t.Fatalf("expected telemetry persisted once, got %d", len(rec.saved))
	}
	if rec.saved[0].FlightID != 1 || rec.saved[0].Speed != 40 {
		t.Errorf("unexpected persisted record: %+v", rec.saved[0])
	}
}

func TestHandleFrameMalformedIsDropped(t *testing.T) {
	ing, agg, statusLog := newTestIngestor(nil)

	ing.HandleFrame([]byte(`{not json`))

	for _, id := range agg.AllFlightIDs() {
		t.Errorf("expected no flights tracked, found %d", id)
	}
	if statusLog.Len() != 0 {
		t.Errorf("expected no status entries, got %d", statusLog.Len())
	}
	// The raw frame is still journaled for the console view.
	if len(ing.RawFrames()) != 1 {
		t.Errorf("expected raw frame journaled, got %d", len(ing.RawFrames()))
	}
}

func TestHandleFrameUnknownTypeIgnored(t *testing.T) {
	ing, agg, statusLog := newTestIngestor(nil)

	ing.HandleFrame([]byte(`{"type":"ping","flight_id":1}`))

	if len(agg.AllFlightIDs()) != 0 || statusLog.Len() != 0 {
		t.Error("expected unknown frame to leave all state untouched")
	}
}

func TestHandleFrameStartStopJournaled(t *testing.T) {
	ing, _, statusLog := newTestIngestor(nil)

	// Milliseconds timestamp: 2021-01-01T00:00:00Z.
	ing.HandleFrame([]byte(`{"type":"start","flight_id":3,"drone_id":2,"timestamp":1609459200000}`))
	// Seconds timestamp, as a string, same instant.
	ing.HandleFrame([]byte(`{"type":"stop","flight_id":3,"drone_id":2,"timestamp":"1609459200"}`))

	entries := statusLog.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0], "Flight 3 started (drone 2)") {
		t.Errorf("unexpected start entry: %q", entries[0])
	}
	if !strings.Contains(entries[1], "Flight 3 stopped (drone 2)") {
		t.Errorf("unexpected stop entry: %q", entries[1])
	}

	// Both units must normalize to the same instant.
	want := time.UnixMilli(1609459200000).Format("2006-01-02 15:04:05")
	if !strings.Contains(entries[0], want) || !strings.Contains(entries[1], want) {
		t.Errorf("expected both entries at %s, got %v", want, entries)
	}
}

func TestRawFrameLogCapped(t *testing.T) {
	ing, _, _ := newTestIngestor(nil)

	for i := 0; i < RawLogCap+5; i++ {
		ing.HandleFrame([]byte(`{"type":"ping"}`))
	}

	if n := len(ing.RawFrames()); n != RawLogCap {
		t.Errorf("expected raw log capped at %d, got %d", RawLogCap, n)
	}
}

func TestRecorderFailureDoesNotDropPoint(t *testing.T) {
	rec := &recorderStub{err: errors.New("db down")}
	ing, agg, _ := newTestIngestor(rec)

	ing.HandleFrame([]byte(`{"type":"telemetry","flight_id":5,"drone_id":1,` +
		`"latitude":52.0,"longitude":72.0,"altitude":100,"speed":30}`))

	if len(agg.Trajectory(5)) != 1 {
		t.Error("expected trajectory updated despite recorder failure")
	}
}

func TestRunWithoutConnection(t *testing.T) {
	ing, _, _ := newTestIngestor(nil)

	if err := ing.Run(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
	if ing.State() != StateDisconnected {
		t.Errorf("expected disconnected state, got %s", ing.State())
	}
}

func TestParseFrameTypes(t *testing.T) {
	msg, err := ParseFrame([]byte(`{"type":"start","flight_id":1,"drone_id":2,` +
		`"route":[[51.12,71.43],[51.13,71.44]],"timestamp":1609459200}`))
	if err != nil {
		t.Fatalf("expected start frame to parse, got %v", err)
	}
	start, ok := msg.(*StartMessage)
	if !ok {
		t.Fatalf("expected *StartMessage, got %T", msg)
	}
	if len(start.Route) != 2 || start.Route[0][0] != 51.12 {
		t.Errorf("unexpected route: %v", start.Route)
	}

	if _, err := ParseFrame([]byte(`{"type":"wat"}`)); !errors.Is(err, ErrUnknownMessageType) {
		t.Errorf("expected ErrUnknownMessageType, got %v", err)
	}
	if _, err := ParseFrame([]byte(`garbage`)); err == nil || errors.Is(err, ErrUnknownMessageType) {
		t.Errorf("expected malformed-frame error, got %v", err)
	}
}
