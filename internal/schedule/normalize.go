package schedule

import (
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// Normalize canonicalizes a raw parsed itinerary from the generation
// collaborator: display fields are copied from the selected option,
// times are snapped to step minutes, and each day's blocks are sorted
// by timeStart. Idempotent. It never fabricates missing fields,
// repairs overlapping times, or inserts missing blocks — semantic
// repair belongs to the reflow collaborator.
func Normalize(it domain.Itinerary, step int) domain.Itinerary {
	out := it.Clone()
	for di := range out.Days {
		day := &out.Days[di]
		for bi := range day.Blocks {
			normalizeBlock(&day.Blocks[bi], step)
		}
		SortBlocks(day.Blocks)
	}
	return out
}

// NormalizeDay canonicalizes a single day, used on reflow responses.
func NormalizeDay(day domain.Day, step int) domain.Day {
	out := day.Clone()
	for bi := range out.Blocks {
		normalizeBlock(&out.Blocks[bi], step)
	}
	SortBlocks(out.Blocks)
	return out
}

func normalizeBlock(b *domain.Block, step int) {
	if opt := b.SelectedOrDefault(); opt != nil {
		// Pin the tag to the option actually applied so the display
		// fields and selectedOption never diverge.
		b.SelectedOption = opt.Label
		b.Title = opt.Title
		b.Place = opt.Place
		b.Note = opt.Note
	}
	b.TimeStart = timeutil.SnapClock(b.TimeStart, step)
	b.TimeEnd = timeutil.SnapClock(b.TimeEnd, step)
}
