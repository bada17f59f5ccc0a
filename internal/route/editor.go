package route

import (
	"errors"
	"fmt"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// ErrInsufficientPoints is returned when a route is submitted with fewer
// than two waypoints.
var ErrInsufficientPoints = errors.New("route requires at least two points")

// ZoneViolationError reports a route that intersects a no-fly zone.
type ZoneViolationError struct {
	Zone string
}

func (e *ZoneViolationError) Error() string {
	return fmt.Sprintf("route intersects no-fly zone: %s", e.Zone)
}

// Editor is a single-user route authoring session. One editor owns one
// in-progress waypoint sequence; it is not safe for concurrent use.
type Editor struct {
	validator *Validator
	points    []domain.Coordinate
	lastError string
}

// NewEditor creates an empty editing session.
func NewEditor(validator *Validator) *Editor {
	return &Editor{validator: validator}
}

// AddPoint appends a waypoint. It always succeeds.
func (e *Editor) AddPoint(p domain.Coordinate) {
	e.points = append(e.points, p)
}

// RemovePoint deletes the waypoint at index, preserving the order of the
// rest. An out-of-range index leaves the session unchanged and returns false.
func (e *Editor) RemovePoint(index int) bool {
	if index < 0 || index >= len(e.points) {
		return false
	}
	e.points = append(e.points[:index], e.points[index+1:]...)
	return true
}

// Points returns a copy of the current waypoint sequence.
func (e *Editor) Points() []domain.Coordinate {
	out := make([]domain.Coordinate, len(e.points))
	copy(out, e.points)
	return out
}

// LastError returns the message from the most recent failed validation.
func (e *Editor) LastError() string {
	return e.lastError
}

// Reset clears the session. Called whenever the editing dialog is (re)opened
// or closed.
func (e *Editor) Reset() {
	e.points = nil
	e.lastError = ""
}

// ValidateForSubmit checks the current route and, when valid, returns the
// waypoints ready for submission. Validation runs locally before any network
// call: a short route fails with ErrInsufficientPoints, a route crossing a
// zone fails with *ZoneViolationError.
func (e *Editor) ValidateForSubmit() ([]domain.Coordinate, error) {
	e.lastError = ""

	if len(e.points) < 2 {
		e.lastError = "Click at least two points to define a route"
		return nil, ErrInsufficientPoints
	}

	if zone, ok := e.validator.FindViolatedZone(e.points); ok {
		err := &ZoneViolationError{Zone: zone}
		e.lastError = err.Error()
		return nil, err
	}

	return e.Points(), nil
}
