package irail

import (
	"bytes"
	"strconv"
	"strings"
)

// Number is an integer the API encodes as a JSON string ("1385418600").
// Empty or unparsable values decode to 0, matching how the original
// collector defaulted missing fields.
type Number int64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// Flag is a boolean the API encodes as "0"/"1" strings.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

// VehicleResponse is the vehicle endpoint's top-level payload.
type VehicleResponse struct {
	VehicleInfo VehicleInfo `json:"vehicleinfo"`
	Stops       StopList    `json:"stops"`
}

// VehicleInfo identifies one scheduled train run.
type VehicleInfo struct {
	Name      string `json:"name"` // fully qualified, e.g. "BE.NMBS.IC538"
	ShortName string `json:"shortname"`
	Number    string `json:"number"`
	Type      string `json:"type"` // category label: IC, S, P, ...
}

// TrainID returns the train identifier with the operator prefix stripped.
func (v VehicleInfo) TrainID() string {
	return strings.TrimPrefix(v.Name, "BE.NMBS.")
}

// StopList wraps the ordered stop sequence of a vehicle.
type StopList struct {
	Number Number `json:"number"`
	Stop   []Stop `json:"stop"`
}

// Stop is one stop event in a vehicle's journey.
type Stop struct {
	Station                string `json:"station"`
	Platform               string `json:"platform"`
	Time                   Number `json:"time"`
	ScheduledArrivalTime   Number `json:"scheduledArrivalTime"`
	ArrivalDelay           Number `json:"arrivalDelay"` // seconds, signed
	ScheduledDepartureTime Number `json:"scheduledDepartureTime"`
	DepartureDelay         Number `json:"departureDelay"` // seconds, signed
	Canceled               Flag   `json:"canceled"`
	ArrivalCanceled        Flag   `json:"arrivalCanceled"`
	DepartureCanceled      Flag   `json:"departureCanceled"`
	Arrived                Flag   `json:"arrived"`
	Left                   Flag   `json:"left"`
}

// ConnectionsResponse is the connections endpoint's top-level payload.
type ConnectionsResponse struct {
	Connection []Connection `json:"connection"`
}

// Connection is a single origin-to-destination departure option.
type Connection struct {
	Departure ConnectionEvent `json:"departure"`
	Arrival   ConnectionEvent `json:"arrival"`
}

// ConnectionEvent is the departure or arrival half of a connection.
type ConnectionEvent struct {
	Vehicle  string `json:"vehicle"` // fully qualified vehicle identifier
	Station  string `json:"station"`
	Platform string `json:"platform"`
	Time     Number `json:"time"`
	Delay    Number `json:"delay"`
	Canceled Flag   `json:"canceled"`
}

// VehicleID returns the event's vehicle identifier without the operator prefix.
func (e ConnectionEvent) VehicleID() string {
	return strings.TrimPrefix(e.Vehicle, "BE.NMBS.")
}
