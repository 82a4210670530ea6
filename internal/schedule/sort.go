// Package schedule owns the client-side schedule invariants: it
// canonicalizes freshly generated itineraries, applies the in-place
// edit operations, and detects time conflicts. Every function here is
// pure — mutation works on deep copies and returns new values, conflict
// detection only reports.
package schedule

import (
	"sort"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// startKey returns a sortable key for a block's start time. Malformed
// times sort first so they stay visible at the top of the day instead
// of crashing the sort.
func startKey(b domain.Block) int {
	min, err := timeutil.ParseClock(b.TimeStart)
	if err != nil {
		return -1
	}
	return min
}

// SortBlocks orders a day's blocks ascending by timeStart, in place.
// The sort is stable so equal start times keep their relative order.
func SortBlocks(blocks []domain.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return startKey(blocks[i]) < startKey(blocks[j])
	})
}
