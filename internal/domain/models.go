package domain

import (
	"time"
)

type FlightStatus string
type DroneStatus string

const (
	FlightStatusPending  FlightStatus = "pending"
	FlightStatusAccepted FlightStatus = "accepted"
	FlightStatusRejected FlightStatus = "rejected"
	FlightStatusStarted  FlightStatus = "started"
	FlightStatusFinished FlightStatus = "finished"

	DroneStatusActive  DroneStatus = "active"
	DroneStatusBlocked DroneStatus = "blocked"
	DroneStatusFlying  DroneStatus = "flying"
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NoFlyZone is a circular restricted area. Zones are loaded at startup and
// never mutated afterwards.
type NoFlyZone struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Center       Coordinate `json:"center"`
	RadiusMeters float64    `json:"radius_meters"`
}

// Drone is a registered airframe.
type Drone struct {
	ID          int    `json:"id"`
	Model       string `json:"model"`
	WeightLimit int    `json:"weight_limit"`
	Battery     int    `json:"battery"`
	IsActive    bool   `json:"is_active"`
	IsFlying    bool   `json:"is_flying"`
}

// Status derives the presentation status from the activity flags.
func (d *Drone) Status() DroneStatus {
	switch {
	case !d.IsActive:
		return DroneStatusBlocked
	case d.IsFlying:
		return DroneStatusFlying
	default:
		return DroneStatusActive
	}
}

// Flight is a submitted flight plan. Points holds the route serialized as
// "lat,lng;lat,lng;..." exactly as received from the console.
type Flight struct {
	ID        int          `json:"id"`
	Status    FlightStatus `json:"status"`
	Points    string       `json:"points"`
	DroneID   int          `json:"drone_id"`
	UserID    int          `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Drone Drone `json:"drone"`
}

// Telemetry is a persisted position report.
type Telemetry struct {
	ID        int       `json:"id"`
	FlightID  int       `json:"flight_id"`
	DroneID   int       `json:"drone_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Altitude  float64   `json:"altitude"`
	Speed     float64   `json:"speed"`
	CreatedAt time.Time `json:"created_at"`
}
