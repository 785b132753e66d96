package storage

import (
	"fmt"
	"time"

	"railwatch/internal/collector"
)

// Write inserts one observation row, satisfying collector.Sink.
func (d *DB) Write(o collector.Observation) error {
	capturedAt := o.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	_, err := d.db.Exec(`
		INSERT INTO observations (
			date, route_id, trip_id,
			train_id, train_type, station, position,
			scheduled_arrival, actual_arrival, arrival_delay_sec,
			scheduled_departure, actual_departure, departure_delay_sec,
			platform, cancelled, captured_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullable(o.Date), nullable(o.RouteID), nullable(o.TripID),
		o.TrainID, o.TrainType, o.Station, string(o.Position),
		o.ScheduledArrival, o.ActualArrival, o.ArrivalDelay,
		o.ScheduledDeparture, o.ActualDeparture, o.DepartureDelay,
		o.Platform, boolInt(o.Cancelled), capturedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// CountObservations returns the number of archived rows.
func (d *DB) CountObservations() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM observations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count observations: %w", err)
	}
	return n, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
