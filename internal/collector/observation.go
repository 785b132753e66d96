package collector

import "time"

// Position classifies a stop by its index within the journey.
type Position string

const (
	PositionDeparture    Position = "DEPARTURE"    // first stop
	PositionIntermediate Position = "INTERMEDIATE" // any stop in between
	PositionArrival      Position = "ARRIVAL"      // last stop
)

// Observation is one denormalized record per stop per processed vehicle.
// Times are epoch seconds; delays are signed seconds. Date, RouteID, TripID
// and CapturedAt are only populated by the route-driven collector.
type Observation struct {
	TrainID   string `json:"train_id"`
	TrainType string `json:"train_type"`
	Station   string `json:"station"`

	Position Position `json:"position"`

	ScheduledArrival   int64 `json:"scheduled_arrival"`
	ActualArrival      int64 `json:"actual_arrival"`
	ArrivalDelay       int64 `json:"arrival_delay"`
	ScheduledDeparture int64 `json:"scheduled_departure"`
	ActualDeparture    int64 `json:"actual_departure"`
	DepartureDelay     int64 `json:"departure_delay"`

	Platform  string `json:"platform"`
	Cancelled bool   `json:"cancelled"`

	Date       string    `json:"date,omitempty"`
	RouteID    string    `json:"route_id,omitempty"`
	TripID     string    `json:"trip_id,omitempty"`
	CapturedAt time.Time `json:"captured_at,omitempty"`
}

// Sink receives observation rows as they are produced. Implementations are
// expected to make each row durable (or published) before returning.
type Sink interface {
	Write(o Observation) error
	Close() error
}
