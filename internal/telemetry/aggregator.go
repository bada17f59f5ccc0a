package telemetry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
	"github.com/Tokshabayev/LetunTrafficManagement/pkg/geo"
)

// DefaultTrajectoryCap bounds each per-flight trajectory. Tracking sessions
// are long-lived, so unbounded append would grow for the whole session.
const DefaultTrajectoryCap = 5000

// trackPalette assigns a render color per flight by stable index; it cycles
// when more flights are tracked than there are colors.
var trackPalette = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#ca8a04", "#db2777",
}

// Entry is one telemetry report plus the local receipt time.
type Entry struct {
	FlightID   int       `json:"flight_id"`
	DroneID    int       `json:"drone_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Altitude   float64   `json:"altitude"`
	Speed      float64   `json:"speed"`
	ReceivedAt time.Time `json:"received_at"`
}

// TrackAggregator groups telemetry by flight, keeps an ordered trajectory
// per flight and raises zone-violation entries on the status log. There is
// no removal: a flight's trajectory lives for the tracking session.
type TrackAggregator struct {
	mu       sync.Mutex
	tracks   map[int][]Entry
	maxTrack int

	registry  *zones.Registry
	statusLog *StatusLog
}

// NewTrackAggregator creates an aggregator checking positions against the
// given registry and journaling violations to statusLog. A non-positive
// maxTrack falls back to DefaultTrajectoryCap.
func NewTrackAggregator(registry *zones.Registry, statusLog *StatusLog, maxTrack int) *TrackAggregator {
	if maxTrack <= 0 {
		maxTrack = DefaultTrajectoryCap
	}
	return &TrackAggregator{
		tracks:    make(map[int][]Entry),
		maxTrack:  maxTrack,
		registry:  registry,
		statusLog: statusLog,
	}
}

// Ingest appends the entry to its flight's trajectory and journals one
// violation line per zone containing the position, in registry order. Each
// point is judged on its own: there is no entry/exit hysteresis.
func (a *TrackAggregator) Ingest(e Entry) {
	a.mu.Lock()
	track := append(a.tracks[e.FlightID], e)
	if len(track) > a.maxTrack {
		track = track[len(track)-a.maxTrack:]
	}
	a.tracks[e.FlightID] = track
	a.mu.Unlock()

	for _, z := range a.registry.Zones() {
		d := geo.DistanceMeters(e.Latitude, e.Longitude, z.Center.Latitude, z.Center.Longitude)
		if d <= z.RadiusMeters {
			a.statusLog.Append(fmt.Sprintf("[%s] Flight %d (drone %d) entered no-fly zone %s",
				e.ReceivedAt.Format("2006-01-02 15:04:05"), e.FlightID, e.DroneID, z.Name))
		}
	}
}

// Latest returns the last-appended entry for the flight.
func (a *TrackAggregator) Latest(flightID int) (Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	track := a.tracks[flightID]
	if len(track) == 0 {
		return Entry{}, false
	}
	return track[len(track)-1], true
}

// Trajectory returns a copy of the flight's trajectory in arrival order.
func (a *TrackAggregator) Trajectory(flightID int) []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	track := a.tracks[flightID]
	out := make([]Entry, len(track))
	copy(out, track)
	return out
}

// AllFlightIDs returns the tracked flight ids in ascending order. The sort
// keeps color assignment stable across calls.
func (a *TrackAggregator) AllFlightIDs() []int {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make([]int, 0, len(a.tracks))
	for id := range a.tracks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Color returns the render color for a flight, cycling the palette by the
// flight's position in AllFlightIDs. Untracked flights get the first color.
func (a *TrackAggregator) Color(flightID int) string {
	for i, id := range a.AllFlightIDs() {
		if id == flightID {
			return trackPalette[i%len(trackPalette)]
		}
	}
	return trackPalette[0]
}
