package sink

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"railwatch/internal/collector"
)

var dailyHeader = []string{
	"train_id",
	"train_type",
	"station_name",
	"station_position",
	"scheduled_arrival",
	"actual_arrival",
	"arrival_delay",
	"scheduled_departure",
	"actual_departure",
	"departure_delay",
	"platform",
	"is_cancelled",
}

var routeHeader = []string{
	"date",
	"route_id",
	"trip_id",
	"train_id",
	"train_type",
	"station_name",
	"station_position",
	"scheduled_arrival",
	"actual_arrival",
	"arrival_delay",
	"scheduled_departure",
	"actual_departure",
	"departure_delay",
	"platform",
	"is_cancelled",
	"captured_at",
}

// CSV appends one record per observation to a per-run file, flushing after
// every write so rows survive an interrupted run.
type CSV struct {
	path   string
	file   *os.File
	w      *csv.Writer
	record func(o collector.Observation) []string
}

// NewDailyCSV opens a daily_trains_<timestamp>.csv file in dir with the
// fixed-feed collector's semicolon-delimited column set.
func NewDailyCSV(dir string, loc *time.Location, logger *slog.Logger) (*CSV, error) {
	name := fmt.Sprintf("daily_trains_%s.csv", time.Now().In(loc).Format("20060102_1504"))
	return open(filepath.Join(dir, name), ';', dailyHeader, func(o collector.Observation) []string {
		return baseRecord(o, loc)
	}, logger)
}

// NewRouteCSV opens a route_trains_<timestamp>.csv file in dir with the
// route-driven collector's comma-delimited column set.
func NewRouteCSV(dir string, loc *time.Location, logger *slog.Logger) (*CSV, error) {
	name := fmt.Sprintf("route_trains_%s.csv", time.Now().In(loc).Format("20060102_1504"))
	return open(filepath.Join(dir, name), ',', routeHeader, func(o collector.Observation) []string {
		rec := []string{o.Date, o.RouteID, o.TripID}
		rec = append(rec, baseRecord(o, loc)...)
		return append(rec, o.CapturedAt.In(loc).Format(time.RFC3339))
	}, logger)
}

func open(path string, comma rune, header []string, record func(collector.Observation) []string, logger *slog.Logger) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush header: %w", err)
	}

	logger.Info("created output file", "path", path)
	return &CSV{path: path, file: f, w: w, record: record}, nil
}

// Path returns the output file location.
func (c *CSV) Path() string {
	return c.path
}

// Write appends one observation row and flushes it to disk.
func (c *CSV) Write(o collector.Observation) error {
	if err := c.w.Write(c.record(o)); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Close flushes pending rows and closes the file.
func (c *CSV) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}

// baseRecord renders the columns both variants share.
func baseRecord(o collector.Observation, loc *time.Location) []string {
	return []string{
		o.TrainID,
		o.TrainType,
		o.Station,
		string(o.Position),
		clock(o.ScheduledArrival, loc),
		clock(o.ActualArrival, loc),
		strconv.FormatInt(collector.DelayMinutes(o.ArrivalDelay), 10),
		clock(o.ScheduledDeparture, loc),
		clock(o.ActualDeparture, loc),
		strconv.FormatInt(collector.DelayMinutes(o.DepartureDelay), 10),
		o.Platform,
		boolFlag(o.Cancelled),
	}
}

// clock renders an epoch as a local HH:MM, or empty when unset.
func clock(epoch int64, loc *time.Location) string {
	if epoch <= 0 {
		return ""
	}
	return time.Unix(epoch, 0).In(loc).Format("15:04")
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
