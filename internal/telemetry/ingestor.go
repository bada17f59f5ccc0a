package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// State is the ingestor connection state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// ErrNotConnected is returned by Run when no connection was established.
var ErrNotConnected = errors.New("ingestor is not connected")

// millisThreshold separates seconds-since-epoch from milliseconds in feed
// timestamps. The feed has emitted both units.
const millisThreshold = 1e12

// Recorder persists telemetry reports as they arrive. Implemented by the
// telemetry repository; nil disables persistence.
type Recorder interface {
	Save(ctx context.Context, t *domain.Telemetry) error
}

// Ingestor owns one persistent connection to the telemetry feed, parses
// inbound frames and routes them to the aggregator, the status journal and
// the recorder. A dropped connection is not retried: the owner reconnects by
// creating a fresh session.
type Ingestor struct {
	aggregator *TrackAggregator
	statusLog  *StatusLog
	rawLog     *StatusLog
	recorder   Recorder

	now func() time.Time

	mu    sync.Mutex
	conn  *websocket.Conn
	state State
}

// NewIngestor creates an ingestor feeding the given aggregator and status
// journal. recorder may be nil.
func NewIngestor(aggregator *TrackAggregator, statusLog *StatusLog, recorder Recorder) *Ingestor {
	return &Ingestor{
		aggregator: aggregator,
		statusLog:  statusLog,
		rawLog:     NewStatusLog(RawLogCap),
		recorder:   recorder,
		now:        time.Now,
	}
}

// State returns the current connection state.
func (i *Ingestor) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// RawFrames returns the last frames received verbatim, oldest first.
func (i *Ingestor) RawFrames() []string {
	return i.rawLog.Entries()
}

// Connect dials the feed URL. On failure the ingestor returns to the
// disconnected state.
func (i *Ingestor) Connect(ctx context.Context, url string) error {
	i.setState(StateConnecting)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		i.setState(StateDisconnected)
		return fmt.Errorf("failed to connect to telemetry feed: %w", err)
	}

	i.mu.Lock()
	i.conn = conn
	i.state = StateConnected
	i.mu.Unlock()
	return nil
}

// Run reads frames until the connection drops or ctx is canceled. Frames
// are processed in receipt order; per-frame errors never abort the loop.
func (i *Ingestor) Run(ctx context.Context) error {
	i.mu.Lock()
	conn := i.conn
	i.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			i.setState(StateDisconnected)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("telemetry stream closed: %w", err)
		}
		i.HandleFrame(raw)
	}
}

// Close releases the connection. Safe to call multiple times.
func (i *Ingestor) Close() error {
	i.mu.Lock()
	conn := i.conn
	i.conn = nil
	i.state = StateDisconnected
	i.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// HandleFrame processes one raw feed frame. Malformed frames are logged and
// dropped; frames with an unknown type tag are ignored.
func (i *Ingestor) HandleFrame(raw []byte) {
	i.rawLog.Append(string(raw))

	msg, err := ParseFrame(raw)
	if err != nil {
		if !errors.Is(err, ErrUnknownMessageType) {
			log.Printf("dropping telemetry frame: %v", err)
		}
		return
	}

	switch m := msg.(type) {
	case *StartMessage:
		ts := i.normalizeTimestamp(m.Timestamp)
		i.statusLog.Append(fmt.Sprintf("[%s] Flight %d started (drone %d)",
			ts.Format("2006-01-02 15:04:05"), m.FlightID, m.DroneID))

	case *StopMessage:
		ts := i.normalizeTimestamp(m.Timestamp)
		i.statusLog.Append(fmt.Sprintf("[%s] Flight %d stopped (drone %d)",
			ts.Format("2006-01-02 15:04:05"), m.FlightID, m.DroneID))

	case *TelemetryMessage:
		receivedAt := i.now()
		i.aggregator.Ingest(Entry{
			FlightID:   m.FlightID,
			DroneID:    m.DroneID,
			Latitude:   m.Latitude,
			Longitude:  m.Longitude,
			Altitude:   m.Altitude,
			Speed:      m.Speed,
			ReceivedAt: receivedAt,
		})

		if i.recorder != nil {
			record := &domain.Telemetry{
				FlightID:  m.FlightID,
				DroneID:   m.DroneID,
				Latitude:  m.Latitude,
				Longitude: m.Longitude,
				Altitude:  m.Altitude,
				Speed:     m.Speed,
				CreatedAt: receivedAt,
			}
			if err := i.recorder.Save(context.Background(), record); err != nil {
				log.Printf("failed to persist telemetry for flight %d: %v", m.FlightID, err)
			}
		}
	}
}

// normalizeTimestamp converts a feed timestamp to local time. Values below
// the threshold are seconds-since-epoch; that branch is logged to surface
// upstream unit drift.
func (i *Ingestor) normalizeTimestamp(n FlexNumber) time.Time {
	ms := float64(n)
	if ms < millisThreshold {
		log.Printf("feed timestamp %v interpreted as seconds", ms)
		ms *= 1000
	}
	return time.UnixMilli(int64(ms))
}

func (i *Ingestor) setState(s State) {
	i.mu.Lock()
	i.state = s
	i.mu.Unlock()
}
