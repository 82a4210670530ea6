package export

import (
	"net/url"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/schedule"
)

// maxWaypoints caps the intermediate stops in a directions link; the
// maps service silently drops anything past its own limit.
const maxWaypoints = 20

// routeStop reports whether a block represents a place worth routing
// to. Moves are the edges of the route, not stops; free slots have no
// location at all.
func routeStop(t domain.BlockType) bool {
	switch t {
	case domain.BlockArrival, domain.BlockSpot, domain.BlockMeal, domain.BlockHotel:
		return true
	}
	return false
}

func queryFor(b domain.Block, destination string) string {
	place := b.Place
	if place == "" {
		place = strings.TrimSpace(b.Title + " " + destination)
	}
	return place
}

// SearchURL returns a map search link for one block, or "" for block
// types with no location. Blocks without an explicit place fall back
// to title plus destination so the search still lands near the trip.
func SearchURL(b domain.Block, destination string) string {
	if !routeStop(b.Type) {
		return ""
	}
	q := queryFor(b, destination)
	if q == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(q)
}

// DirectionsURL returns a driving/walking directions link through the
// day's stops in schedule order, or "" when the day has fewer than two
// stops. Intermediate waypoints are capped at maxWaypoints.
func DirectionsURL(day domain.Day, destination string) string {
	blocks := make([]domain.Block, len(day.Blocks))
	copy(blocks, day.Blocks)
	schedule.SortBlocks(blocks)

	var stops []string
	for _, b := range blocks {
		if !routeStop(b.Type) {
			continue
		}
		if q := queryFor(b, destination); q != "" {
			stops = append(stops, q)
		}
	}
	if len(stops) < 2 {
		return ""
	}

	origin, dest := stops[0], stops[len(stops)-1]
	waypoints := stops[1 : len(stops)-1]
	if len(waypoints) > maxWaypoints {
		waypoints = waypoints[:maxWaypoints]
	}

	u := "https://www.google.com/maps/dir/?api=1&origin=" + url.QueryEscape(origin) +
		"&destination=" + url.QueryEscape(dest)
	if len(waypoints) > 0 {
		u += "&waypoints=" + url.QueryEscape(strings.Join(waypoints, "|"))
	}
	return u
}
