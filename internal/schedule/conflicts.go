package schedule

import (
	"fmt"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// DetectConflicts scans one day for overlapping or inverted time
// ranges and returns a map from block id to a human-readable
// description. It is a pure query, re-run after every edit and before
// every render; it never mutates the schedule.
func DetectConflicts(day domain.Day) map[string]string {
	conflicts := make(map[string]string)

	blocks := make([]domain.Block, len(day.Blocks))
	copy(blocks, day.Blocks)
	SortBlocks(blocks)

	record := func(id, msg string) {
		if prev, ok := conflicts[id]; ok {
			conflicts[id] = prev + "; " + msg
			return
		}
		conflicts[id] = msg
	}

	for _, b := range blocks {
		start, errS := timeutil.ParseClock(b.TimeStart)
		end, errE := timeutil.ParseClock(b.TimeEnd)
		if errS != nil || errE != nil {
			record(b.ID, fmt.Sprintf("invalid time range %s-%s", b.TimeStart, b.TimeEnd))
			continue
		}
		if end <= start {
			record(b.ID, fmt.Sprintf("ends at or before it starts (%s-%s)", b.TimeStart, b.TimeEnd))
		}
	}

	for i := 1; i < len(blocks); i++ {
		prev, cur := blocks[i-1], blocks[i]
		prevEnd, err := timeutil.ParseClock(prev.TimeEnd)
		if err != nil {
			continue
		}
		curStart, err := timeutil.ParseClock(cur.TimeStart)
		if err != nil {
			continue
		}
		// Touching blocks (prev end == next start) are fine.
		if curStart < prevEnd {
			record(prev.ID, fmt.Sprintf("overlaps with %q (%s-%s)", cur.Title, cur.TimeStart, cur.TimeEnd))
			record(cur.ID, fmt.Sprintf("overlaps with %q (%s-%s)", prev.Title, prev.TimeStart, prev.TimeEnd))
		}
	}

	return conflicts
}
