package domain

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/timeutil"
	"github.com/google/uuid"
)

// Move describes a transit block's route. DurationMin is expected to
// equal the block's elapsed minutes; the generation prompt enforces
// that, the client only flags staleness via NeedsUpdate.
type Move struct {
	Mode        TransportMode `json:"mode"`
	DurationMin int           `json:"durationMin"`
	From        string        `json:"from,omitempty"`
	To          string        `json:"to,omitempty"`
	NeedsUpdate bool          `json:"needsUpdate,omitempty"`
}

// Option is one of two alternative recommendations attached to a
// recommendable block, scored 0-100 and justified.
type Option struct {
	Label  OptionLabel `json:"label"`
	Title  string      `json:"title"`
	Place  string      `json:"place,omitempty"`
	Note   string      `json:"note,omitempty"`
	Score  int         `json:"score"`
	Reason string      `json:"reason"`
	Source Source      `json:"source"`
}

// Block is one scheduled unit within a day. TimeStart/TimeEnd are
// 24-hour "HH:MM" strings; TimeEnd at or before TimeStart is a
// detectable conflict, not a hard precondition failure.
type Block struct {
	ID        string    `json:"id"`
	TimeStart string    `json:"timeStart"`
	TimeEnd   string    `json:"timeEnd"`
	Type      BlockType `json:"type"`
	Title     string    `json:"title"`
	Place     string    `json:"place,omitempty"`
	Note      string    `json:"note,omitempty"`
	Source    Source    `json:"source"`

	// Options is an ordered A/B pair, present only for spot/meal/hotel.
	Options        []Option    `json:"options,omitempty"`
	SelectedOption OptionLabel `json:"selectedOption,omitempty"`

	// MealType is present only for type=meal.
	MealType MealType `json:"mealType,omitempty"`

	// Move is present only for type=move.
	Move *Move `json:"move,omitempty"`
}

// NewBlockID returns a fresh block identifier, unique within a day.
func NewBlockID(day int) string {
	return fmt.Sprintf("d%d-%s", day, uuid.NewString()[:8])
}

// Recommendable reports whether this block type carries A/B options.
func (t BlockType) Recommendable() bool {
	return t == BlockSpot || t == BlockMeal || t == BlockHotel
}

// DurationMin returns the block's elapsed minutes, or zero when either
// time is malformed or the range is inverted.
func (b Block) DurationMin() int {
	start, err := timeutil.ParseClock(b.TimeStart)
	if err != nil {
		return 0
	}
	end, err := timeutil.ParseClock(b.TimeEnd)
	if err != nil || end <= start {
		return 0
	}
	return end - start
}

// SelectedOrDefault returns the option matching SelectedOption, falling
// back to the first option when the label is absent or non-matching.
// Returns nil when the block has no options.
func (b Block) SelectedOrDefault() *Option {
	if len(b.Options) == 0 {
		return nil
	}
	label := b.SelectedOption
	if label == "" {
		label = OptionA
	}
	for i := range b.Options {
		if b.Options[i].Label == label {
			return &b.Options[i]
		}
	}
	return &b.Options[0]
}

// Validate checks the tagged-variant rules: options only on
// recommendable types, mealType only on meals, move only on moves.
func (b Block) Validate() error {
	var issues []string
	if b.ID == "" {
		issues = append(issues, "missing id")
	}
	if !ValidBlockTypes[b.Type] {
		issues = append(issues, fmt.Sprintf("unknown type %q", b.Type))
	}
	if !timeutil.IsClock(b.TimeStart) {
		issues = append(issues, fmt.Sprintf("bad timeStart %q", b.TimeStart))
	}
	if !timeutil.IsClock(b.TimeEnd) {
		issues = append(issues, fmt.Sprintf("bad timeEnd %q", b.TimeEnd))
	}
	if len(b.Options) > 0 && !b.Type.Recommendable() {
		issues = append(issues, fmt.Sprintf("type %q cannot carry options", b.Type))
	}
	if len(b.Options) > 2 {
		issues = append(issues, fmt.Sprintf("expected at most 2 options, got %d", len(b.Options)))
	}
	for _, opt := range b.Options {
		if opt.Label != OptionA && opt.Label != OptionB {
			issues = append(issues, fmt.Sprintf("unknown option label %q", opt.Label))
		}
		if opt.Score < 0 || opt.Score > 100 {
			issues = append(issues, fmt.Sprintf("option %s score %d out of range", opt.Label, opt.Score))
		}
	}
	if b.MealType != "" && b.Type != BlockMeal {
		issues = append(issues, fmt.Sprintf("type %q cannot carry mealType", b.Type))
	}
	if b.MealType != "" && !ValidMealTypes[b.MealType] {
		issues = append(issues, fmt.Sprintf("unknown mealType %q", b.MealType))
	}
	if b.Move != nil && b.Type != BlockMove {
		issues = append(issues, fmt.Sprintf("type %q cannot carry move", b.Type))
	}
	if b.Move != nil {
		if !ValidTransportModes[b.Move.Mode] {
			issues = append(issues, fmt.Sprintf("unknown move mode %q", b.Move.Mode))
		}
		if b.Move.DurationMin < 0 {
			issues = append(issues, "negative move durationMin")
		}
	}
	if len(issues) > 0 {
		return fmt.Errorf("block %s: %s", b.ID, strings.Join(issues, "; "))
	}
	return nil
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	if b.Options != nil {
		out.Options = make([]Option, len(b.Options))
		copy(out.Options, b.Options)
	}
	if b.Move != nil {
		m := *b.Move
		out.Move = &m
	}
	return out
}
