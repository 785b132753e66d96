package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"railwatch/internal/gtfs"
	"railwatch/internal/irail"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubFeed serves canned schedule tables.
type stubFeed struct {
	trips        []gtfs.Trip
	tripsErr     error
	routes       []gtfs.Route
	routesErr    error
	stopTimes    []gtfs.StopTime
	stopTimesErr error
}

func (f *stubFeed) Trips(context.Context) ([]gtfs.Trip, error)         { return f.trips, f.tripsErr }
func (f *stubFeed) Routes(context.Context) ([]gtfs.Route, error)       { return f.routes, f.routesErr }
func (f *stubFeed) StopTimes(context.Context) ([]gtfs.StopTime, error) { return f.stopTimes, f.stopTimesErr }

// stubAPI serves canned vehicle and connection payloads and records calls.
type stubAPI struct {
	vehicles    map[string]*irail.VehicleResponse
	connections map[string]*irail.ConnectionsResponse

	vehicleCalls    []string
	connectionCalls []string
}

func (a *stubAPI) Vehicle(_ context.Context, id string) (*irail.VehicleResponse, error) {
	a.vehicleCalls = append(a.vehicleCalls, id)
	v, ok := a.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("HTTP 404 for vehicle %s", id)
	}
	return v, nil
}

func (a *stubAPI) Connections(_ context.Context, from, to string, _ time.Time) (*irail.ConnectionsResponse, error) {
	key := irail.StationSlug(from) + "|" + irail.StationSlug(to)
	a.connectionCalls = append(a.connectionCalls, key)
	c, ok := a.connections[key]
	if !ok {
		return nil, fmt.Errorf("HTTP 404 for connections %s", key)
	}
	return c, nil
}

// memSink collects written observations in memory.
type memSink struct {
	rows   []Observation
	closed bool
}

func (s *memSink) Write(o Observation) error {
	s.rows = append(s.rows, o)
	return nil
}

func (s *memSink) Close() error {
	s.closed = true
	return nil
}

// failSink rejects every write.
type failSink struct{}

func (failSink) Write(Observation) error { return fmt.Errorf("disk full") }
func (failSink) Close() error            { return nil }
