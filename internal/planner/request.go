package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// PreferenceMode selects between model recommendations and
// user-specified content for meals, hotel, and spots.
type PreferenceMode string

const (
	ModeRecommend PreferenceMode = "recommend"
	ModeCustom    PreferenceMode = "custom"
)

// Preference carries one of the three recommend-or-custom request
// sections. Value holds a single free-text payload (hotel), Values a
// list (must-visit spots, fixed meals).
type Preference struct {
	Mode   PreferenceMode
	Value  string
	Values []string
}

func (p Preference) payload() string {
	if len(p.Values) > 0 {
		return strings.Join(p.Values, "; ")
	}
	return p.Value
}

// TripRequest is the outbound generation request: everything the user
// specifies before the collaborator is called.
type TripRequest struct {
	Destination string
	Days        int
	Adults      int
	Kids        int
	Pace        domain.Pace
	Transport   domain.TransportMode
	DayStart    string // day window opens, "HH:MM"
	DayEnd      string // day window closes, "HH:MM"
	Meals       Preference
	Hotel       Preference
	Spots       Preference
}

// MaxTripDays bounds the day count a single generation may request.
const MaxTripDays = 14

// Validate checks the request client-side. A non-nil result wraps
// ErrValidation and lists every problem so the form can surface them
// all at once; the request is never sent.
func (r TripRequest) Validate() error {
	var issues []string
	if strings.TrimSpace(r.Destination) == "" {
		issues = append(issues, "destination is required")
	}
	if r.Days < 1 || r.Days > MaxTripDays {
		issues = append(issues, fmt.Sprintf("days must be 1-%d", MaxTripDays))
	}
	if r.Adults < 1 {
		issues = append(issues, "at least one adult is required")
	}
	if r.Kids < 0 {
		issues = append(issues, "kids cannot be negative")
	}
	if !domain.ValidPaces[r.Pace] {
		issues = append(issues, fmt.Sprintf("unknown pace %q", r.Pace))
	}
	if !domain.ValidTransportModes[r.Transport] {
		issues = append(issues, fmt.Sprintf("unknown transport %q", r.Transport))
	}

	startMin, errS := timeutil.ParseClock(r.DayStart)
	if errS != nil {
		issues = append(issues, fmt.Sprintf("bad day window start %q", r.DayStart))
	}
	endMin, errE := timeutil.ParseClock(r.DayEnd)
	if errE != nil {
		issues = append(issues, fmt.Sprintf("bad day window end %q", r.DayEnd))
	}
	if errS == nil && errE == nil && endMin <= startMin {
		issues = append(issues, "day window must close after it opens")
	}

	for name, p := range map[string]Preference{"meals": r.Meals, "hotel": r.Hotel, "spots": r.Spots} {
		switch p.Mode {
		case ModeRecommend:
		case ModeCustom:
			if p.payload() == "" {
				issues = append(issues, name+": custom mode needs content")
			}
		default:
			issues = append(issues, fmt.Sprintf("%s: unknown mode %q", name, p.Mode))
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(issues, "; "))
	}
	return nil
}

// ReflowRequest regenerates a single day in the context of the
// original trip parameters.
type ReflowRequest struct {
	Destination string
	Pace        domain.Pace
	Transport   domain.TransportMode
	DayStart    string
	DayEnd      string
	HasKids     bool
	Day         domain.Day
}

// Validate checks the reflow request client-side.
func (r ReflowRequest) Validate() error {
	var issues []string
	if strings.TrimSpace(r.Destination) == "" {
		issues = append(issues, "destination is required")
	}
	if r.Day.Day < 1 {
		issues = append(issues, "day number must be positive")
	}
	if len(r.Day.Blocks) == 0 {
		issues = append(issues, "day has no blocks to reflow")
	}
	if !domain.ValidPaces[r.Pace] {
		issues = append(issues, fmt.Sprintf("unknown pace %q", r.Pace))
	}
	if !domain.ValidTransportModes[r.Transport] {
		issues = append(issues, fmt.Sprintf("unknown transport %q", r.Transport))
	}
	if !timeutil.IsClock(r.DayStart) || !timeutil.IsClock(r.DayEnd) {
		issues = append(issues, "bad day window")
	}
	if len(issues) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(issues, "; "))
	}
	return nil
}
