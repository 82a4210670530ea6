package schedule

import (
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// InsertDurationMin is the fixed length of a block created by InsertAfter.
const InsertDurationMin = 60

// FieldPatch carries the display fields UpdateField may overwrite.
// Nil fields are left untouched.
type FieldPatch struct {
	TimeStart *string
	TimeEnd   *string
	Title     *string
	Place     *string
	Note      *string
}

// Every operation below acts on one day within one itinerary and
// returns a new itinerary value; the input is never mutated. A missing
// day number or block id makes the operation a no-op returning the
// input unchanged — these run off UI event handlers where a stale id
// is a recoverable condition, never a reason to panic.

// UpdateField overwrites display fields on the identified block and
// re-sorts the day. No validation beyond the sort: conflicts are
// surfaced separately by DetectConflicts so a user mid-typing a time
// is never blocked.
func UpdateField(it domain.Itinerary, dayNum int, blockID string, patch FieldPatch) domain.Itinerary {
	di := it.FindDay(dayNum)
	if di < 0 {
		return it
	}
	bi := it.Days[di].FindBlock(blockID)
	if bi < 0 {
		return it
	}

	out := it.Clone()
	b := &out.Days[di].Blocks[bi]
	if patch.TimeStart != nil {
		b.TimeStart = *patch.TimeStart
	}
	if patch.TimeEnd != nil {
		b.TimeEnd = *patch.TimeEnd
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Place != nil {
		b.Place = *patch.Place
	}
	if patch.Note != nil {
		b.Note = *patch.Note
	}
	SortBlocks(out.Days[di].Blocks)
	return out
}

// SwitchOption selects the option matching label on a block with
// options and copies its title/place/note into the block, keeping the
// display fields and the selectedOption tag in lockstep. No-op when
// the block has no option with that label.
func SwitchOption(it domain.Itinerary, dayNum int, blockID string, label domain.OptionLabel) domain.Itinerary {
	di := it.FindDay(dayNum)
	if di < 0 {
		return it
	}
	bi := it.Days[di].FindBlock(blockID)
	if bi < 0 {
		return it
	}

	var picked *domain.Option
	for i := range it.Days[di].Blocks[bi].Options {
		if it.Days[di].Blocks[bi].Options[i].Label == label {
			picked = &it.Days[di].Blocks[bi].Options[i]
			break
		}
	}
	if picked == nil {
		return it
	}

	out := it.Clone()
	b := &out.Days[di].Blocks[bi]
	b.SelectedOption = label
	b.Title = picked.Title
	b.Place = picked.Place
	b.Note = picked.Note
	SortBlocks(out.Days[di].Blocks)
	return out
}

// DeleteKeepGap replaces the target block with a user-sourced free
// placeholder over the identical time range, so the day's total span
// is preserved and no other block shifts. Move blocks immediately
// before or after the target (in sorted order) are flagged stale:
// their from/to may no longer be valid.
func DeleteKeepGap(it domain.Itinerary, dayNum int, blockID string) domain.Itinerary {
	di := it.FindDay(dayNum)
	if di < 0 {
		return it
	}
	bi := it.Days[di].FindBlock(blockID)
	if bi < 0 {
		return it
	}

	out := it.Clone()
	day := &out.Days[di]
	SortBlocks(day.Blocks)
	bi = day.FindBlock(blockID)

	old := day.Blocks[bi]
	day.Blocks[bi] = domain.Block{
		ID:        domain.NewBlockID(dayNum),
		TimeStart: old.TimeStart,
		TimeEnd:   old.TimeEnd,
		Type:      domain.BlockFree,
		Title:     "Open slot",
		Note:      "freed: " + old.Title,
		Source:    domain.SourceUser,
	}

	for _, ni := range []int{bi - 1, bi + 1} {
		if ni < 0 || ni >= len(day.Blocks) {
			continue
		}
		n := &day.Blocks[ni]
		if n.Type != domain.BlockMove || n.Move == nil {
			continue
		}
		n.Move.NeedsUpdate = true
		n.Title = "Transit (needs update)"
		n.Note = "route endpoints changed, reflow this day"
	}

	SortBlocks(day.Blocks)
	return out
}

// DeleteWithRipple removes the target block entirely and compacts the
// day: every block starting at or after the deleted block's end shifts
// earlier by the deleted duration. Move blocks orphaned by the
// deletion (ending at its start, starting at its end, or lying inside
// the deleted range) are removed too. Shifted blocks are clamped into
// the itinerary's day window.
func DeleteWithRipple(it domain.Itinerary, dayNum int, blockID string) domain.Itinerary {
	di := it.FindDay(dayNum)
	if di < 0 {
		return it
	}
	bi := it.Days[di].FindBlock(blockID)
	if bi < 0 {
		return it
	}

	target := it.Days[di].Blocks[bi]
	targetStart, errS := timeutil.ParseClock(target.TimeStart)
	targetEnd, errE := timeutil.ParseClock(target.TimeEnd)
	gap := target.DurationMin()

	out := it.Clone()
	day := &out.Days[di]
	winStart, winEnd := out.Window()

	kept := day.Blocks[:0]
	for _, b := range day.Blocks {
		if b.ID == blockID {
			continue
		}
		if errS == nil && errE == nil && orphanedMove(b, targetStart, targetEnd) {
			continue
		}
		kept = append(kept, b)
	}
	day.Blocks = kept

	if errS == nil && errE == nil && gap > 0 {
		for i := range day.Blocks {
			shiftBlock(&day.Blocks[i], targetEnd, gap, winStart, winEnd)
		}
	}

	SortBlocks(day.Blocks)
	return out
}

// orphanedMove reports whether a move block lost an endpoint to the
// deleted [start, end) range.
func orphanedMove(b domain.Block, deletedStart, deletedEnd int) bool {
	if b.Type != domain.BlockMove {
		return false
	}
	start, errS := timeutil.ParseClock(b.TimeStart)
	end, errE := timeutil.ParseClock(b.TimeEnd)
	if errS != nil || errE != nil {
		return false
	}
	if end == deletedStart || start == deletedEnd {
		return true
	}
	return start >= deletedStart && end <= deletedEnd
}

// shiftBlock moves a block earlier by gap minutes when it started at
// or after the deleted block's end, then clamps it into the day
// window, preserving duration where the window allows.
func shiftBlock(b *domain.Block, deletedEnd, gap, winStart, winEnd int) {
	start, errS := timeutil.ParseClock(b.TimeStart)
	end, errE := timeutil.ParseClock(b.TimeEnd)
	if errS != nil || errE != nil || start < deletedEnd {
		return
	}

	dur := end - start
	start -= gap
	if start < winStart {
		start = winStart
	}
	if start > winEnd {
		start = winEnd
	}
	end = start + dur
	if end > winEnd {
		end = winEnd
	}
	if end < start {
		end = start
	}
	b.TimeStart = timeutil.FormatClock(start)
	b.TimeEnd = timeutil.FormatClock(end)
}

// InsertAfter creates a fresh user-sourced free block starting at the
// target's timeEnd and lasting InsertDurationMin, capped at the day
// window close.
func InsertAfter(it domain.Itinerary, dayNum int, blockID string) domain.Itinerary {
	di := it.FindDay(dayNum)
	if di < 0 {
		return it
	}
	bi := it.Days[di].FindBlock(blockID)
	if bi < 0 {
		return it
	}

	target := it.Days[di].Blocks[bi]
	start, err := timeutil.ParseClock(target.TimeEnd)
	if err != nil {
		return it
	}

	out := it.Clone()
	_, winEnd := out.Window()
	end := start + InsertDurationMin
	if end > winEnd {
		end = winEnd
	}
	if end < start {
		end = start
	}

	day := &out.Days[di]
	day.Blocks = append(day.Blocks, domain.Block{
		ID:        domain.NewBlockID(dayNum),
		TimeStart: timeutil.FormatClock(start),
		TimeEnd:   timeutil.FormatClock(end),
		Type:      domain.BlockFree,
		Title:     "Open slot",
		Source:    domain.SourceUser,
	})
	SortBlocks(day.Blocks)
	return out
}
