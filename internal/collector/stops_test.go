package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railwatch/internal/irail"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		index int
		n     int
		want  Position
	}{
		{"first of many", 0, 5, PositionDeparture},
		{"middle", 2, 5, PositionIntermediate},
		{"last of many", 4, 5, PositionArrival},
		{"first of two", 0, 2, PositionDeparture},
		{"last of two", 1, 2, PositionArrival},
		{"single stop", 0, 1, PositionDeparture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.index, tt.n))
		})
	}
}

func TestClassify_ExactlyOneBoundaryEach(t *testing.T) {
	for n := 2; n <= 6; n++ {
		first, last := 0, 0
		for i := 0; i < n; i++ {
			switch Classify(i, n) {
			case PositionDeparture:
				first++
			case PositionArrival:
				last++
			}
		}
		assert.Equal(t, 1, first, "n=%d", n)
		assert.Equal(t, 1, last, "n=%d", n)
	}
}

func TestDelayMinutes(t *testing.T) {
	tests := []struct {
		seconds int64
		want    int64
	}{
		{0, 0},
		{59, 0},
		{60, 1},
		{119, 1},
		{300, 5},
		{-60, -1},
		{-90, -2}, // floored, not truncated
		{-1, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DelayMinutes(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestBuildObservations_Arithmetic(t *testing.T) {
	info := irail.VehicleInfo{Name: "BE.NMBS.IC538", Type: "IC"}
	stops := []irail.Stop{
		{
			Station:                "Gent-Sint-Pieters",
			Platform:               "4",
			ScheduledArrivalTime:   1000,
			ArrivalDelay:           120,
			ScheduledDepartureTime: 1060,
			DepartureDelay:         180,
		},
	}

	obs := BuildObservations(info, stops)
	require.Len(t, obs, 1)

	o := obs[0]
	assert.Equal(t, "IC538", o.TrainID)
	assert.Equal(t, "IC", o.TrainType)
	assert.Equal(t, int64(1000+120), o.ActualArrival)
	assert.Equal(t, int64(1060+180), o.ActualDeparture)
	assert.Equal(t, int64(120), o.ArrivalDelay)
	assert.Equal(t, int64(180), o.DepartureDelay)
	assert.Equal(t, "4", o.Platform)
	assert.False(t, o.Cancelled)
}

func TestBuildObservations_Positions(t *testing.T) {
	info := irail.VehicleInfo{Name: "IC1"}
	stops := []irail.Stop{
		{Station: "A"}, {Station: "B"}, {Station: "C"},
	}

	obs := BuildObservations(info, stops)
	require.Len(t, obs, 3)
	assert.Equal(t, PositionDeparture, obs[0].Position)
	assert.Equal(t, PositionIntermediate, obs[1].Position)
	assert.Equal(t, PositionArrival, obs[2].Position)
}

func TestBuildObservations_CancellationFlags(t *testing.T) {
	tests := []struct {
		name string
		stop irail.Stop
		want bool
	}{
		{"none", irail.Stop{}, false},
		{"general", irail.Stop{Canceled: true}, true},
		{"arrival only", irail.Stop{ArrivalCanceled: true}, true},
		{"departure only", irail.Stop{DepartureCanceled: true}, true},
		{"all", irail.Stop{Canceled: true, ArrivalCanceled: true, DepartureCanceled: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := BuildObservations(irail.VehicleInfo{}, []irail.Stop{tt.stop})
			require.Len(t, obs, 1)
			assert.Equal(t, tt.want, obs[0].Cancelled)
		})
	}
}

func TestPastOnly(t *testing.T) {
	now := time.Unix(5000, 0)
	obs := []Observation{
		{Station: "past", ScheduledDeparture: 4000},
		{Station: "boundary", ScheduledDeparture: 5000},
		{Station: "future", ScheduledDeparture: 6000},
	}

	past := PastOnly(obs, now)
	require.Len(t, past, 1)
	assert.Equal(t, "past", past[0].Station)
}
