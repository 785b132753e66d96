package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the prometheus instruments for a collection run. A nil
// *Collector is valid and records nothing, so callers never need to guard.
type Collector struct {
	reg *prometheus.Registry

	trainsTotal       prometheus.Gauge
	vehiclesProcessed prometheus.Counter
	vehicleErrors     prometheus.Counter
	rowsWritten       prometheus.Counter
	journeysDeduped   prometheus.Counter
	fetchDuration     prometheus.Histogram
}

// NewCollector creates and registers the run's instruments.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		trainsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railwatch_trains_total",
			Help: "Number of train identifiers queued for processing.",
		}),
		vehiclesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railwatch_vehicles_processed_total",
			Help: "Total vehicles fetched and written successfully.",
		}),
		vehicleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railwatch_vehicle_errors_total",
			Help: "Total vehicles skipped due to fetch or parse failures.",
		}),
		rowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railwatch_rows_written_total",
			Help: "Total observation rows written to sinks.",
		}),
		journeysDeduped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railwatch_journeys_deduped_total",
			Help: "Total journeys skipped as duplicates within this run.",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "railwatch_vehicle_fetch_duration_seconds",
			Help:    "Duration of vehicle endpoint fetches.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	reg.MustRegister(
		c.trainsTotal,
		c.vehiclesProcessed, c.vehicleErrors,
		c.rowsWritten, c.journeysDeduped,
		c.fetchDuration,
	)

	return c
}

func (c *Collector) SetTrainsTotal(n int) {
	if c == nil {
		return
	}
	c.trainsTotal.Set(float64(n))
}

func (c *Collector) VehicleProcessed() {
	if c == nil {
		return
	}
	c.vehiclesProcessed.Inc()
}

func (c *Collector) VehicleError() {
	if c == nil {
		return
	}
	c.vehicleErrors.Inc()
}

func (c *Collector) RowsWritten(n int) {
	if c == nil {
		return
	}
	c.rowsWritten.Add(float64(n))
}

func (c *Collector) JourneySkipped() {
	if c == nil {
		return
	}
	c.journeysDeduped.Inc()
}

func (c *Collector) ObserveFetch(d time.Duration) {
	if c == nil {
		return
	}
	c.fetchDuration.Observe(d.Seconds())
}

// Handler returns an http.Handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()
	logger.Info("metrics listening", "addr", addr)
	return srv
}
