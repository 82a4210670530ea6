package planner

import (
	"fmt"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// lunchWindowStart/End bound the preferred lunch slot. A lunch block
// outside the window needs a deviation reason in its note.
const (
	lunchWindowStart = 11*60 + 30
	lunchWindowEnd   = 12*60 + 30
)

// validateItinerary checks a freshly extracted itinerary against the
// generation contract before it reaches the normalizer. Violations
// surface as format errors: they mean the model ignored the schema,
// not that the network failed.
func validateItinerary(it domain.Itinerary, req TripRequest) error {
	if len(it.Days) != req.Days {
		return fmt.Errorf("expected %d days, got %d", req.Days, len(it.Days))
	}
	for i, day := range it.Days {
		if day.Day != i+1 {
			return fmt.Errorf("day numbers must be contiguous from 1, position %d has day %d", i, day.Day)
		}
		if err := validateDay(day, req.Pace, i == 0); err != nil {
			return err
		}
	}
	return nil
}

// validateDay checks one generated day. arrivalFirst is enforced on
// day 1 only; later days legitimately begin at the hotel.
func validateDay(day domain.Day, pace domain.Pace, arrivalFirst bool) error {
	min := minBlocksPerPace[pace]
	if len(day.Blocks) < min {
		return fmt.Errorf("day %d: expected at least %d blocks for pace %q, got %d", day.Day, min, pace, len(day.Blocks))
	}

	seen := make(map[string]bool, len(day.Blocks))
	for _, b := range day.Blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", day.Day, err)
		}
		if seen[b.ID] {
			return fmt.Errorf("day %d: duplicate block id %s", day.Day, b.ID)
		}
		seen[b.ID] = true
	}

	if arrivalFirst {
		first := earliestBlock(day)
		if first.Type != domain.BlockArrival {
			return fmt.Errorf("day %d: first block must be an arrival, got %q", day.Day, first.Type)
		}
	}

	if err := checkLunch(day); err != nil {
		return err
	}
	return nil
}

func earliestBlock(day domain.Day) domain.Block {
	best := day.Blocks[0]
	bestMin, _ := timeutil.ParseClock(best.TimeStart)
	for _, b := range day.Blocks[1:] {
		m, err := timeutil.ParseClock(b.TimeStart)
		if err == nil && m < bestMin {
			best, bestMin = b, m
		}
	}
	return best
}

// checkLunch enforces the preferred lunch window: a lunch outside
// 11:30-12:30 passes only when the block's note gives a reason.
func checkLunch(day domain.Day) error {
	for _, b := range day.Blocks {
		if b.Type != domain.BlockMeal || b.MealType != domain.MealLunch {
			continue
		}
		start, err := timeutil.ParseClock(b.TimeStart)
		if err != nil {
			continue // malformed time already rejected by Block.Validate
		}
		if start >= lunchWindowStart && start <= lunchWindowEnd {
			return nil
		}
		if noteOf(b) != "" {
			return nil
		}
		return fmt.Errorf("day %d: lunch at %s is outside 11:30-12:30 with no reason in note", day.Day, b.TimeStart)
	}
	return nil
}

func noteOf(b domain.Block) string {
	if b.Note != "" {
		return b.Note
	}
	if opt := b.SelectedOrDefault(); opt != nil {
		return opt.Note
	}
	return ""
}

// validateReflowedDay checks a replacement day from the reflow
// collaborator: same day number, structurally valid blocks.
func validateReflowedDay(day domain.Day, req ReflowRequest) error {
	if day.Day != req.Day.Day {
		return fmt.Errorf("expected day %d back, got day %d", req.Day.Day, day.Day)
	}
	if len(day.Blocks) == 0 {
		return fmt.Errorf("day %d: reflow returned no blocks", day.Day)
	}
	seen := make(map[string]bool, len(day.Blocks))
	for _, b := range day.Blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", day.Day, err)
		}
		if seen[b.ID] {
			return fmt.Errorf("day %d: duplicate block id %s", day.Day, b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}
