package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// ErrMalformedPoints is returned when a serialized route cannot be parsed.
var ErrMalformedPoints = errors.New("malformed points payload")

// EncodePoints serializes waypoints as "lat,lng;lat,lng;..." — the flight
// creation wire format.
func EncodePoints(points []domain.Coordinate) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%s,%s",
			strconv.FormatFloat(p.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	}
	return strings.Join(parts, ";")
}

// DecodePoints parses the "lat,lng;lat,lng;..." wire format back into
// waypoints. Pairs that do not parse as two floats fail the whole payload.
func DecodePoints(raw string) ([]domain.Coordinate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ";")
	points := make([]domain.Coordinate, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(part, ",")
		if len(fields) != 2 {
			return nil, ErrMalformedPoints
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, ErrMalformedPoints
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, ErrMalformedPoints
		}
		points = append(points, domain.Coordinate{Latitude: lat, Longitude: lng})
	}

	return points, nil
}
