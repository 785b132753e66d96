package irail

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Vehicle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vehicle/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "IC538", q.Get("id"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "en", q.Get("lang"))

		io.WriteString(w, `{
			"vehicleinfo": {"name": "BE.NMBS.IC538", "type": "IC"},
			"stops": {"number": "1", "stop": [{"station": "Brugge", "scheduledArrivalTime": "1385420100"}]}
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "en", testLogger())
	v, err := c.Vehicle(context.Background(), "IC538")
	require.NoError(t, err)

	assert.Equal(t, "IC538", v.VehicleInfo.TrainID())
	require.Len(t, v.Stops.Stop, 1)
	assert.Equal(t, "Brugge", v.Stops.Stop[0].Station)
}

func TestClient_Vehicle_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "en", testLogger())
	_, err := c.Vehicle(context.Background(), "bogus")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestClient_Vehicle_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "en", testLogger())
	_, err := c.Vehicle(context.Background(), "IC538")
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_Connections_NormalizesAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/connections/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "liege-guillemins", q.Get("from"))
		assert.Equal(t, "brussels-south", q.Get("to"))
		assert.Equal(t, "150620", q.Get("date"))
		assert.Equal(t, "0000", q.Get("time"))
		assert.Equal(t, "departure", q.Get("timesel"))
		assert.Equal(t, "false", q.Get("alerts"))

		io.WriteString(w, `{"connection": [
			{"departure": {"vehicle": "BE.NMBS.IC1717", "time": "1592208000", "station": "Liège-Guillemins"}}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "en", testLogger())
	date := time.Date(2020, 6, 15, 10, 30, 0, 0, time.UTC)

	conns, err := c.Connections(context.Background(), "Liège-Guillemins", "Brussels-South", date)
	require.NoError(t, err)
	require.Len(t, conns.Connection, 1)
	assert.Equal(t, "IC1717", conns.Connection[0].Departure.VehicleID())

	// Second identical lookup is served from the cache.
	_, err = c.Connections(context.Background(), "Liège-Guillemins", "Brussels-South", date)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
