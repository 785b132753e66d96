package gtfs

import (
	"sort"
	"strings"
)

// Rail is the GTFS route_type for heavy rail.
const Rail = "2"

type Trip struct {
	TripID        string `csv:"trip_id"`
	RouteID       string `csv:"route_id"`
	ServiceID     string `csv:"service_id"`
	TripHeadsign  string `csv:"trip_headsign"`
	TripShortName string `csv:"trip_short_name"`
	DirectionID   string `csv:"direction_id"`
	BlockID       string `csv:"block_id"`
}

type Route struct {
	RouteID        string `csv:"route_id"`
	AgencyID       string `csv:"agency_id"`
	RouteShortName string `csv:"route_short_name"`
	RouteLongName  string `csv:"route_long_name"`
	RouteType      string `csv:"route_type"`
}

type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  string `csv:"stop_sequence"`
}

// TrainIDs returns the distinct non-empty trip short names, sorted.
// For the NMBS feed the trip short name is the national train number
// that the vehicle endpoint accepts as an identifier.
func TrainIDs(trips []Trip) []string {
	seen := make(map[string]bool)
	for _, t := range trips {
		id := strings.TrimSpace(t.TripShortName)
		if id != "" {
			seen[id] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RailRoutes filters routes to heavy-rail routes.
func RailRoutes(routes []Route) []Route {
	var rail []Route
	for _, r := range routes {
		if r.RouteType == Rail {
			rail = append(rail, r)
		}
	}
	return rail
}

// SplitLongName derives the origin and destination station from a route's
// display name, which the feed encodes as "Origin -- Destination". Returns
// ok=false when the name does not follow that convention.
func SplitLongName(longName string) (origin, destination string, ok bool) {
	parts := strings.SplitN(longName, "--", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	origin = strings.TrimSpace(parts[0])
	destination = strings.TrimSpace(parts[1])
	if origin == "" || destination == "" {
		return "", "", false
	}
	return origin, destination, true
}

// TripsByRoute groups trips by their route ID.
func TripsByRoute(trips []Trip) map[string][]Trip {
	byRoute := make(map[string][]Trip)
	for _, t := range trips {
		byRoute[t.RouteID] = append(byRoute[t.RouteID], t)
	}
	return byRoute
}

// StopCounts returns the number of stop_times rows per trip.
func StopCounts(stopTimes []StopTime) map[string]int {
	counts := make(map[string]int)
	for _, st := range stopTimes {
		counts[st.TripID]++
	}
	return counts
}
