package collector

import (
	"context"
	"log/slog"
	"time"

	"railwatch/internal/gtfs"
	"railwatch/internal/irail"
	"railwatch/internal/metrics"
)

// VehicleAPI is the slice of the iRail client the collectors need.
type VehicleAPI interface {
	Vehicle(ctx context.Context, id string) (*irail.VehicleResponse, error)
	Connections(ctx context.Context, from, to string, date time.Time) (*irail.ConnectionsResponse, error)
}

// ScheduleFeed is the slice of the GTFS client the collectors need.
type ScheduleFeed interface {
	Trips(ctx context.Context) ([]gtfs.Trip, error)
	Routes(ctx context.Context) ([]gtfs.Route, error)
	StopTimes(ctx context.Context) ([]gtfs.StopTime, error)
}

// Daily walks the full set of train identifiers from the schedule feed once,
// recording every stop of every vehicle it can fetch.
type Daily struct {
	feed    ScheduleFeed
	api     VehicleAPI
	sinks   []Sink
	metrics *metrics.Collector
	delay   time.Duration
	logger  *slog.Logger
}

// NewDaily creates the fixed-feed collector.
func NewDaily(feed ScheduleFeed, api VehicleAPI, sinks []Sink, m *metrics.Collector, delay time.Duration, logger *slog.Logger) *Daily {
	return &Daily{
		feed:    feed,
		api:     api,
		sinks:   sinks,
		metrics: m,
		delay:   delay,
		logger:  logger,
	}
}

// Run processes every scheduled train once, pausing between vehicle fetches.
// A schedule download failure degrades to an empty run; per-vehicle failures
// are logged and counted without stopping the loop.
func (d *Daily) Run(ctx context.Context) error {
	start := time.Now()
	d.logger.Info("starting data collection for all daily trains")

	trips, err := d.feed.Trips(ctx)
	if err != nil {
		d.logger.Error("schedule download failed", "error", err)
		return nil
	}

	ids := gtfs.TrainIDs(trips)
	if len(ids) == 0 {
		d.logger.Info("no trains found to process")
		return nil
	}
	d.logger.Info("found trains to process", "count", len(ids))
	d.metrics.SetTrainsTotal(len(ids))

	processed, errored := 0, 0
	for i, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		d.logger.Info("processing train", "train", id, "index", i+1, "total", len(ids))
		if d.processVehicle(ctx, id) {
			processed++
		} else {
			errored++
		}

		if (i+1)%10 == 0 {
			d.logger.Info("progress",
				"done", i+1,
				"total", len(ids),
				"success", processed,
				"errors", errored,
				"elapsed", time.Since(start).Round(time.Second),
			)
		}

		if err := sleep(ctx, d.delay); err != nil {
			return err
		}
	}

	d.logger.Info("collection complete",
		"duration", time.Since(start).Round(time.Second),
		"processed", processed,
		"errors", errored,
	)
	return nil
}

func (d *Daily) processVehicle(ctx context.Context, id string) bool {
	fetchStart := time.Now()
	v, err := d.api.Vehicle(ctx, id)
	d.metrics.ObserveFetch(time.Since(fetchStart))
	if err != nil {
		d.logger.Warn("vehicle fetch failed", "train", id, "error", err)
		d.metrics.VehicleError()
		return false
	}
	if len(v.Stops.Stop) == 0 {
		d.logger.Warn("no stops found for train", "train", id)
		d.metrics.VehicleError()
		return false
	}

	obs := BuildObservations(v.VehicleInfo, v.Stops.Stop)
	d.logger.Info("processing stops", "train", v.VehicleInfo.TrainID(), "stops", len(obs))

	for _, o := range obs {
		if o.Cancelled {
			d.logger.Info("found cancellation", "train", o.TrainID, "station", o.Station)
		}
		for _, s := range d.sinks {
			if err := s.Write(o); err != nil {
				d.logger.Error("write observation failed", "train", o.TrainID, "error", err)
				d.metrics.VehicleError()
				return false
			}
		}
	}

	d.metrics.VehicleProcessed()
	d.metrics.RowsWritten(len(obs))
	return true
}

// sleep pauses between API calls as a politeness throttle, returning early
// when the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
