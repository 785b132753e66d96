package collector

import (
	"time"

	"railwatch/internal/irail"
)

// Classify determines a stop's position from its index in a journey of n
// stops. Index 0 is the departure, index n-1 the arrival. A single-stop
// journey is classified as the departure.
func Classify(index, n int) Position {
	switch {
	case index == 0:
		return PositionDeparture
	case index == n-1:
		return PositionArrival
	default:
		return PositionIntermediate
	}
}

// DelayMinutes converts a signed delay in seconds to whole minutes, rounding
// toward negative infinity so that -90s becomes -2min.
func DelayMinutes(seconds int64) int64 {
	m := seconds / 60
	if seconds%60 != 0 && seconds < 0 {
		m--
	}
	return m
}

// BuildObservations turns a vehicle's ordered stop list into output rows.
// Actual times are scheduled time plus delay; a row is flagged cancelled when
// any of the stop's cancellation flags is set.
func BuildObservations(info irail.VehicleInfo, stops []irail.Stop) []Observation {
	obs := make([]Observation, 0, len(stops))
	for i, s := range stops {
		scheduledArrival := int64(s.ScheduledArrivalTime)
		arrivalDelay := int64(s.ArrivalDelay)
		scheduledDeparture := int64(s.ScheduledDepartureTime)
		departureDelay := int64(s.DepartureDelay)

		obs = append(obs, Observation{
			TrainID:            info.TrainID(),
			TrainType:          info.Type,
			Station:            s.Station,
			Position:           Classify(i, len(stops)),
			ScheduledArrival:   scheduledArrival,
			ActualArrival:      scheduledArrival + arrivalDelay,
			ArrivalDelay:       arrivalDelay,
			ScheduledDeparture: scheduledDeparture,
			ActualDeparture:    scheduledDeparture + departureDelay,
			DepartureDelay:     departureDelay,
			Platform:           s.Platform,
			Cancelled:          bool(s.Canceled) || bool(s.ArrivalCanceled) || bool(s.DepartureCanceled),
		})
	}
	return obs
}

// PastOnly filters observations to stops whose scheduled departure already
// lies in the past, producing partial-journey snapshots for trains still
// under way.
func PastOnly(obs []Observation, now time.Time) []Observation {
	var past []Observation
	for _, o := range obs {
		if o.ScheduledDeparture < now.Unix() {
			past = append(past, o)
		}
	}
	return past
}
