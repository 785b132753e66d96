package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"railwatch/internal/gtfs"
	"railwatch/internal/metrics"
)

// Routes is the route-driven collector: for every rail route it derives the
// origin and destination stations from the route's display name, queries
// today's connections between them, and records the already-occurred stops
// of every departed vehicle, deduplicating journeys within the run.
type Routes struct {
	feed    ScheduleFeed
	api     VehicleAPI
	sinks   []Sink
	dedup   *Dedup
	metrics *metrics.Collector
	delay   time.Duration
	logger  *slog.Logger

	now func() time.Time // test seam
}

// NewRoutes creates the route-driven collector.
func NewRoutes(feed ScheduleFeed, api VehicleAPI, sinks []Sink, m *metrics.Collector, delay time.Duration, logger *slog.Logger) *Routes {
	return &Routes{
		feed:    feed,
		api:     api,
		sinks:   sinks,
		dedup:   NewDedup(),
		metrics: m,
		delay:   delay,
		logger:  logger,
		now:     time.Now,
	}
}

// Run downloads the schedule tables and walks route by route, trip by trip.
// Unlike the fixed-feed collector, a schedule download failure here is fatal.
func (r *Routes) Run(ctx context.Context) error {
	start := r.now()

	routes, err := r.feed.Routes(ctx)
	if err != nil {
		return fmt.Errorf("download routes: %w", err)
	}
	trips, err := r.feed.Trips(ctx)
	if err != nil {
		return fmt.Errorf("download trips: %w", err)
	}
	stopTimes, err := r.feed.StopTimes(ctx)
	if err != nil {
		return fmt.Errorf("download stop times: %w", err)
	}

	rail := gtfs.RailRoutes(routes)
	byRoute := gtfs.TripsByRoute(trips)
	stopCounts := gtfs.StopCounts(stopTimes)
	r.logger.Info("schedule loaded", "rail_routes", len(rail), "trips", len(trips))

	processed, errored, skipped := 0, 0, 0
	for _, route := range rail {
		origin, destination, ok := gtfs.SplitLongName(route.RouteLongName)
		if !ok {
			// The feed's "Origin -- Destination" convention is undocumented;
			// surface every name that breaks it instead of dropping data silently.
			r.logger.Warn("unparseable route name", "route", route.RouteID, "name", route.RouteLongName)
			continue
		}

		for _, trip := range byRoute[route.RouteID] {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if stopCounts[trip.TripID] == 0 {
				r.logger.Debug("trip has no stop times", "trip", trip.TripID)
				continue
			}

			now := r.now()
			conns, err := r.api.Connections(ctx, origin, destination, now)
			if err != nil {
				r.logger.Warn("connections fetch failed",
					"route", route.RouteID, "from", origin, "to", destination, "error", err)
				errored++
				continue
			}

			for _, conn := range conns.Connection {
				if int64(conn.Departure.Time) >= now.Unix() {
					continue // not departed yet
				}

				switch r.processVehicle(ctx, conn.Departure.VehicleID(), route.RouteID, trip.TripID) {
				case vehicleWritten:
					processed++
				case vehicleSkipped:
					skipped++
				case vehicleFailed:
					errored++
				}

				if err := sleep(ctx, r.delay); err != nil {
					return err
				}
			}
		}
	}

	r.logger.Info("collection complete",
		"duration", r.now().Sub(start).Round(time.Second),
		"journeys", r.dedup.Len(),
		"processed", processed,
		"duplicates_skipped", skipped,
		"errors", errored,
	)
	return nil
}

type vehicleResult int

const (
	vehicleWritten vehicleResult = iota
	vehicleSkipped
	vehicleFailed
)

func (r *Routes) processVehicle(ctx context.Context, id, routeID, tripID string) vehicleResult {
	fetchStart := time.Now()
	v, err := r.api.Vehicle(ctx, id)
	r.metrics.ObserveFetch(time.Since(fetchStart))
	if err != nil {
		r.logger.Warn("vehicle fetch failed", "train", id, "error", err)
		r.metrics.VehicleError()
		return vehicleFailed
	}
	if len(v.Stops.Stop) == 0 {
		r.logger.Warn("no stops found for train", "train", id)
		r.metrics.VehicleError()
		return vehicleFailed
	}

	stops := v.Stops.Stop
	key := JourneyKey(
		v.VehicleInfo.TrainID(),
		v.VehicleInfo.Type,
		stops[0].Station,
		stops[len(stops)-1].Station,
		int64(stops[0].ScheduledDepartureTime),
	)
	if r.dedup.Seen(key) {
		r.logger.Info("duplicate journey skipped", "train", v.VehicleInfo.TrainID())
		r.metrics.JourneySkipped()
		return vehicleSkipped
	}

	now := r.now()
	past := PastOnly(BuildObservations(v.VehicleInfo, stops), now)
	if len(past) == 0 {
		r.logger.Debug("no past stops yet", "train", v.VehicleInfo.TrainID())
		return vehicleSkipped
	}

	date := now.Format("2006-01-02")
	for _, o := range past {
		o.Date = date
		o.RouteID = routeID
		o.TripID = tripID
		o.CapturedAt = now

		if o.Cancelled {
			r.logger.Info("found cancellation", "train", o.TrainID, "station", o.Station)
		}
		for _, s := range r.sinks {
			if err := s.Write(o); err != nil {
				r.logger.Error("write observation failed", "train", o.TrainID, "error", err)
				r.metrics.VehicleError()
				return vehicleFailed
			}
		}
	}

	r.dedup.Add(key)
	r.metrics.VehicleProcessed()
	r.metrics.RowsWritten(len(past))
	return vehicleWritten
}
