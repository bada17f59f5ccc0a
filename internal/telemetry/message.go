// Package telemetry implements the live-tracking pipeline: parsing of the
// streaming feed, per-flight trajectory aggregation with zone alerts, and
// the capped status journal.
package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownMessageType marks a frame whose type tag is not recognized.
// Such frames are ignored, not treated as errors by the ingest loop.
var ErrUnknownMessageType = errors.New("unknown message type")

// Message is one parsed feed frame: *StartMessage, *StopMessage or
// *TelemetryMessage.
type Message interface {
	messageType() string
}

// StartMessage announces that a flight took off.
type StartMessage struct {
	FlightID  int          `json:"flight_id"`
	DroneID   int          `json:"drone_id"`
	Route     [][2]float64 `json:"route"`
	Timestamp FlexNumber   `json:"timestamp"`
}

// StopMessage announces that a flight landed.
type StopMessage struct {
	FlightID  int        `json:"flight_id"`
	DroneID   int        `json:"drone_id"`
	Timestamp FlexNumber `json:"timestamp"`
}

// TelemetryMessage is a live position report. Speed is in km/h, altitude in
// meters.
type TelemetryMessage struct {
	FlightID  int     `json:"flight_id"`
	DroneID   int     `json:"drone_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Speed     float64 `json:"speed"`
}

func (*StartMessage) messageType() string     { return "start" }
func (*StopMessage) messageType() string      { return "stop" }
func (*TelemetryMessage) messageType() string { return "telemetry" }

// FlexNumber accepts a JSON number or a numeric string. The emulator side of
// the feed has been observed sending timestamps both ways.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q: %w", data, err)
	}
	*n = FlexNumber(v)
	return nil
}

// ParseFrame decodes one raw feed frame into a typed message. Frames with an
// unrecognized type tag return ErrUnknownMessageType; anything else that
// fails to decode is a malformed frame.
func ParseFrame(raw []byte) (Message, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch probe.Type {
	case "start":
		var m StartMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("malformed start frame: %w", err)
		}
		return &m, nil
	case "stop":
		var m StopMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("malformed stop frame: %w", err)
		}
		return &m, nil
	case "telemetry":
		var m TelemetryMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("malformed telemetry frame: %w", err)
		}
		return &m, nil
	default:
		return nil, ErrUnknownMessageType
	}
}
