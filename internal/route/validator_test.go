package route

import (
	"testing"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
)

func newTestValidator() *Validator {
	return NewValidator(zones.DefaultRegistry())
}

func TestVertexInsideZone(t *testing.T) {
	v := newTestValidator()

	points := []domain.Coordinate{
		{Latitude: 51.1258334, Longitude: 71.4466667}, // Ak Orda center
		{Latitude: 52.0, Longitude: 72.0},
	}

	name, ok := v.FindViolatedZone(points)
	if !ok {
		t.Fatal("expected violation, got none")
	}
	if name != "Ak Orda Area" {
		t.Errorf("expected Ak Orda Area, got %s", name)
	}
}

func TestSegmentCrossesZoneBetweenClearEndpoints(t *testing.T) {
	v := newTestValidator()

	// Both endpoints sit ~7km west/east of the Ak Orda center, outside both
	// zones, while the straight segment passes through the center itself.
	points := []domain.Coordinate{
		{Latitude: 51.1258334, Longitude: 71.3466667},
		{Latitude: 51.1258334, Longitude: 71.5466667},
	}

	if name, ok := v.zoneContaining(points[0].Latitude, points[0].Longitude); ok {
		t.Fatalf("test endpoint unexpectedly inside %s", name)
	}
	if name, ok := v.zoneContaining(points[1].Latitude, points[1].Longitude); ok {
		t.Fatalf("test endpoint unexpectedly inside %s", name)
	}

	name, ok := v.FindViolatedZone(points)
	if !ok {
		t.Fatal("expected segment sampling to detect the crossing")
	}
	if name != "Ak Orda Area" {
		t.Errorf("expected Ak Orda Area, got %s", name)
	}
}

func TestRouteEntirelyOutsideZones(t *testing.T) {
	v := newTestValidator()

	points := []domain.Coordinate{
		{Latitude: 52.0, Longitude: 72.0},
		{Latitude: 52.01, Longitude: 72.01},
		{Latitude: 52.02, Longitude: 72.0},
	}

	if name, ok := v.FindViolatedZone(points); ok {
		t.Errorf("expected no violation, got %s", name)
	}
}

func TestSinglePointChecksVertexOnly(t *testing.T) {
	v := newTestValidator()

	// One point, no segments to sample: still flagged when inside a zone.
	name, ok := v.FindViolatedZone([]domain.Coordinate{
		{Latitude: 51.0313889, Longitude: 71.4633333},
	})
	if !ok {
		t.Fatal("expected vertex violation")
	}
	if name != "Astana Airport Area" {
		t.Errorf("expected Astana Airport Area, got %s", name)
	}

	if _, ok := v.FindViolatedZone(nil); ok {
		t.Error("expected no violation for empty route")
	}
}

func TestFirstPointInPathOrderWins(t *testing.T) {
	v := newTestValidator()

	// Airport vertex comes before the Ak Orda vertex, so the airport zone is
	// reported even though Ak Orda precedes it in registry order.
	points := []domain.Coordinate{
		{Latitude: 51.0313889, Longitude: 71.4633333},
		{Latitude: 51.1258334, Longitude: 71.4466667},
	}

	name, ok := v.FindViolatedZone(points)
	if !ok {
		t.Fatal("expected violation")
	}
	if name != "Astana Airport Area" {
		t.Errorf("expected Astana Airport Area, got %s", name)
	}
}

func TestFindViolatedZoneIdempotent(t *testing.T) {
	v := newTestValidator()

	points := []domain.Coordinate{
		{Latitude: 51.1258334, Longitude: 71.3466667},
		{Latitude: 51.1258334, Longitude: 71.5466667},
	}

	n1, ok1 := v.FindViolatedZone(points)
	n2, ok2 := v.FindViolatedZone(points)

	if n1 != n2 || ok1 != ok2 {
		t.Errorf("expected identical results, got (%s,%v) and (%s,%v)", n1, ok1, n2, ok2)
	}
}
