package schedule

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dayOne builds a sorted, conflict-free editing fixture:
// arrival 09:30-10:00, move 10:00-10:30, spot 10:30-12:00,
// meal 12:00-13:00, move 13:00-13:30, spot 13:30-15:00.
func dayOne() domain.Itinerary {
	return domain.Itinerary{
		Title: "Kyoto day trip",
		Assumptions: domain.Assumptions{
			StartTime: "09:30", EndTime: "21:00",
			Pace: domain.PaceNormal, Transport: domain.TransportTransit,
		},
		Days: []domain.Day{{
			Day: 1,
			Blocks: []domain.Block{
				{ID: "arr", TimeStart: "09:30", TimeEnd: "10:00", Type: domain.BlockArrival, Title: "Arrive Kyoto", Source: domain.SourceAI},
				{ID: "mv1", TimeStart: "10:00", TimeEnd: "10:30", Type: domain.BlockMove, Title: "Transit to temple", Source: domain.SourceAI,
					Move: &domain.Move{Mode: domain.TransportTransit, DurationMin: 30, From: "Kyoto Station", To: "Kinkaku-ji"}},
				{ID: "spot1", TimeStart: "10:30", TimeEnd: "12:00", Type: domain.BlockSpot, Title: "Kinkaku-ji", Source: domain.SourceAI,
					Options: []domain.Option{
						{Label: domain.OptionA, Title: "Kinkaku-ji", Place: "Kita Ward", Score: 95, Reason: "iconic", Source: domain.SourceAI},
						{Label: domain.OptionB, Title: "Ryoan-ji", Place: "Ukyo Ward", Score: 80, Reason: "quieter", Source: domain.SourceAI},
					},
					SelectedOption: domain.OptionA},
				{ID: "meal1", TimeStart: "12:00", TimeEnd: "13:00", Type: domain.BlockMeal, Title: "Soba lunch", Source: domain.SourceAI, MealType: domain.MealLunch},
				{ID: "mv2", TimeStart: "13:00", TimeEnd: "13:30", Type: domain.BlockMove, Title: "Transit to market", Source: domain.SourceAI,
					Move: &domain.Move{Mode: domain.TransportTransit, DurationMin: 30, From: "Kinkaku-ji", To: "Nishiki Market"}},
				{ID: "spot2", TimeStart: "13:30", TimeEnd: "15:00", Type: domain.BlockSpot, Title: "Nishiki Market", Source: domain.SourceAI},
			},
		}},
	}
}

func sortedByStart(t *testing.T, day domain.Day) {
	t.Helper()
	for i := 1; i < len(day.Blocks); i++ {
		prev, _ := timeutil.ParseClock(day.Blocks[i-1].TimeStart)
		cur, _ := timeutil.ParseClock(day.Blocks[i].TimeStart)
		require.LessOrEqual(t, prev, cur, "blocks must stay sorted by timeStart")
	}
}

func daySpan(t *testing.T, day domain.Day) int {
	t.Helper()
	require.NotEmpty(t, day.Blocks)
	first, err := timeutil.ParseClock(day.Blocks[0].TimeStart)
	require.NoError(t, err)
	last, err := timeutil.ParseClock(day.Blocks[len(day.Blocks)-1].TimeEnd)
	require.NoError(t, err)
	return last - first
}

func TestUpdateField_PatchesAndResorts(t *testing.T) {
	it := dayOne()
	start := "08:00"
	title := "Early arrival"
	got := UpdateField(it, 1, "spot2", FieldPatch{TimeStart: &start, Title: &title})

	day := got.Days[0]
	sortedByStart(t, day)
	assert.Equal(t, "spot2", day.Blocks[0].ID, "moved block re-sorts to the front")
	assert.Equal(t, "Early arrival", day.Blocks[0].Title)
	assert.Equal(t, "15:00", day.Blocks[0].TimeEnd, "unpatched field untouched")

	// Input value unchanged.
	assert.Equal(t, "13:30", it.Days[0].Blocks[5].TimeStart)
}

func TestUpdateField_NoValidation(t *testing.T) {
	it := dayOne()
	half := "12:3" // mid-typing
	got := UpdateField(it, 1, "meal1", FieldPatch{TimeStart: &half})
	bi := got.Days[0].FindBlock("meal1")
	assert.Equal(t, "12:3", got.Days[0].Blocks[bi].TimeStart,
		"editor accepts free-form text; the detector flags it separately")
}

func TestUpdateField_StaleIDIsNoop(t *testing.T) {
	it := dayOne()
	title := "x"
	assert.Equal(t, it, UpdateField(it, 1, "gone", FieldPatch{Title: &title}))
	assert.Equal(t, it, UpdateField(it, 9, "spot1", FieldPatch{Title: &title}))
}

func TestSwitchOption_CopiesDisplayFields(t *testing.T) {
	it := dayOne()
	got := SwitchOption(it, 1, "spot1", domain.OptionB)

	b := got.Days[0].Blocks[got.Days[0].FindBlock("spot1")]
	assert.Equal(t, domain.OptionB, b.SelectedOption)
	assert.Equal(t, "Ryoan-ji", b.Title)
	assert.Equal(t, "Ukyo Ward", b.Place)
	sortedByStart(t, got.Days[0])
}

func TestSwitchOption_SecondApplyIsNoop(t *testing.T) {
	it := dayOne()
	once := SwitchOption(it, 1, "spot1", domain.OptionB)
	twice := SwitchOption(once, 1, "spot1", domain.OptionB)
	assert.Equal(t, once.Days[0].Blocks, twice.Days[0].Blocks)
}

func TestSwitchOption_UnknownLabelIsNoop(t *testing.T) {
	it := dayOne()
	assert.Equal(t, it, SwitchOption(it, 1, "spot1", "C"))
	assert.Equal(t, it, SwitchOption(it, 1, "meal1", domain.OptionB), "block without that option")
}

func TestDeleteKeepGap_PreservesSpanAndCount(t *testing.T) {
	it := dayOne()
	before := it.Days[0]
	got := DeleteKeepGap(it, 1, "spot1")
	day := got.Days[0]

	sortedByStart(t, day)
	assert.Equal(t, len(before.Blocks), len(day.Blocks), "block count unchanged")
	assert.Equal(t, daySpan(t, before), daySpan(t, day), "day span unchanged")

	// The placeholder occupies the identical range.
	var placeholder *domain.Block
	for i := range day.Blocks {
		if day.Blocks[i].Type == domain.BlockFree {
			placeholder = &day.Blocks[i]
		}
	}
	require.NotNil(t, placeholder)
	assert.Equal(t, "10:30", placeholder.TimeStart)
	assert.Equal(t, "12:00", placeholder.TimeEnd)
	assert.Equal(t, domain.SourceUser, placeholder.Source)
	assert.NotEqual(t, "spot1", placeholder.ID, "fresh id")
}

func TestDeleteKeepGap_FlagsAdjacentMoves(t *testing.T) {
	it := dayOne()
	got := DeleteKeepGap(it, 1, "spot1")
	day := got.Days[0]

	mv1 := day.Blocks[day.FindBlock("mv1")]
	require.NotNil(t, mv1.Move)
	assert.True(t, mv1.Move.NeedsUpdate, "move before the deleted block flagged")
	assert.Contains(t, mv1.Title, "needs update")

	// meal1 follows spot1, so mv2 (two blocks later) is untouched.
	mv2 := day.Blocks[day.FindBlock("mv2")]
	require.NotNil(t, mv2.Move)
	assert.False(t, mv2.Move.NeedsUpdate)
}

func TestDeleteWithRipple_ShiftsLaterBlocks(t *testing.T) {
	it := dayOne()
	got := DeleteWithRipple(it, 1, "meal1") // 60-minute gap

	day := got.Days[0]
	sortedByStart(t, day)
	// meal1 removed; mv2 started at meal1's end, so it is orphaned too.
	assert.Equal(t, 4, len(day.Blocks))
	assert.Equal(t, -1, day.FindBlock("mv2"))

	spot2 := day.Blocks[day.FindBlock("spot2")]
	assert.Equal(t, "12:30", spot2.TimeStart)
	assert.Equal(t, "14:00", spot2.TimeEnd)

	// Blocks before the deleted range do not move.
	arr := day.Blocks[day.FindBlock("arr")]
	assert.Equal(t, "09:30", arr.TimeStart)
}

func TestDeleteWithRipple_RemovesOrphanedMoves(t *testing.T) {
	it := dayOne()
	// Deleting spot1 orphans mv1 (mv1.timeEnd == spot1.timeStart).
	got := DeleteWithRipple(it, 1, "spot1")
	day := got.Days[0]

	assert.Equal(t, -1, day.FindBlock("spot1"))
	assert.Equal(t, -1, day.FindBlock("mv1"), "move ending at the deleted start is orphaned")
	assert.Equal(t, 4, len(day.Blocks))
	sortedByStart(t, day)

	// meal1 started at spot1's end (12:00) -> shifted 90 earlier, clamped to the window.
	meal := day.Blocks[day.FindBlock("meal1")]
	assert.Equal(t, "10:30", meal.TimeStart)
}

func TestDeleteWithRipple_ClampsIntoWindow(t *testing.T) {
	it := dayOne()
	it.Days[0].Blocks = []domain.Block{
		{ID: "a", TimeStart: "09:30", TimeEnd: "12:30", Type: domain.BlockSpot, Title: "long", Source: domain.SourceAI},
		{ID: "b", TimeStart: "12:30", TimeEnd: "13:30", Type: domain.BlockSpot, Title: "next", Source: domain.SourceAI},
	}

	got := DeleteWithRipple(it, 1, "a") // 180-minute gap would push b to 09:30
	day := got.Days[0]
	require.Equal(t, 1, len(day.Blocks))
	assert.Equal(t, "09:30", day.Blocks[0].TimeStart, "clamped to the window open")
	assert.Equal(t, "10:30", day.Blocks[0].TimeEnd, "duration preserved")
}

func TestDeleteWithRipple_StaleIDIsNoop(t *testing.T) {
	it := dayOne()
	assert.Equal(t, it, DeleteWithRipple(it, 1, "gone"))
	assert.Equal(t, it, DeleteKeepGap(it, 2, "spot1"))
}

func TestInsertAfter_AddsFreeBlock(t *testing.T) {
	it := dayOne()
	got := InsertAfter(it, 1, "spot2")
	day := got.Days[0]

	require.Equal(t, 7, len(day.Blocks))
	sortedByStart(t, day)

	inserted := day.Blocks[len(day.Blocks)-1]
	assert.Equal(t, domain.BlockFree, inserted.Type)
	assert.Equal(t, domain.SourceUser, inserted.Source)
	assert.Equal(t, "15:00", inserted.TimeStart)
	assert.Equal(t, "16:00", inserted.TimeEnd)
	assert.NotEmpty(t, inserted.ID)
}

func TestInsertAfter_CapsAtWindowClose(t *testing.T) {
	it := dayOne()
	late := UpdateField(it, 1, "spot2", FieldPatch{
		TimeStart: strPtr("20:00"), TimeEnd: strPtr("20:30"),
	})
	got := InsertAfter(late, 1, "spot2")
	day := got.Days[0]

	inserted := day.Blocks[len(day.Blocks)-1]
	assert.Equal(t, "20:30", inserted.TimeStart)
	assert.Equal(t, "21:00", inserted.TimeEnd, "capped at the window close")
}

func strPtr(s string) *string { return &s }

// Seeded random edit sequences: whatever the operation mix, the day
// stays sorted, ids stay unique, and no block escapes the window on
// the ripple path.
func TestEditor_Invariants_RandomOperationSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		it := dayOne()
		for step := 0; step < 12; step++ {
			day := it.Days[0]
			if len(day.Blocks) == 0 {
				break
			}
			target := day.Blocks[rng.Intn(len(day.Blocks))].ID

			switch rng.Intn(5) {
			case 0:
				s := timeutil.FormatClock(rng.Intn(timeutil.MinutesPerDay))
				it = UpdateField(it, 1, target, FieldPatch{TimeStart: &s})
			case 1:
				it = SwitchOption(it, 1, target, domain.OptionB)
			case 2:
				it = DeleteKeepGap(it, 1, target)
			case 3:
				it = DeleteWithRipple(it, 1, target)
			case 4:
				it = InsertAfter(it, 1, target)
			}

			got := it.Days[0]
			sortedByStart(t, got)

			seen := map[string]bool{}
			for _, b := range got.Blocks {
				require.False(t, seen[b.ID], "trial %d step %d: duplicate id %s", trial, step, b.ID)
				seen[b.ID] = true
			}
		}
	}
}
