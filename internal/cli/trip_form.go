package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
	"github.com/charmbracelet/huh"
)

// tripFormState collects the raw form values; numbers and lists stay
// strings until buildRequest converts them.
type tripFormState struct {
	destination string
	days        string
	adults      string
	kids        string
	pace        string
	transport   string
	dayStart    string
	dayEnd      string
	mealsMode   string
	mealsValue  string
	hotelMode   string
	hotelValue  string
	spotsMode   string
	spotsValue  string
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a number, 0 or more")
	}
	return nil
}

func validateClock(s string) error {
	if !timeutil.IsClock(strings.TrimSpace(s)) {
		return fmt.Errorf("use 24h HH:MM")
	}
	return nil
}

func modeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Recommend for me", string(planner.ModeRecommend)),
		huh.NewOption("I have my own", string(planner.ModeCustom)),
	}
}

// newTripForm builds the interactive trip parameter form.
func newTripForm(st *tripFormState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Destination").
				Placeholder("Kyoto").
				Value(&st.destination).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("destination is required")
					}
					return nil
				}),
			huh.NewInput().
				Title(fmt.Sprintf("Days (1-%d)", planner.MaxTripDays)).
				Placeholder("3").
				Value(&st.days).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Adults").
				Placeholder("2").
				Value(&st.adults).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Kids (blank for none)").
				Placeholder("0").
				Value(&st.kids).
				Validate(validateNonNegativeInt),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pace").
				Options(
					huh.NewOption("Packed", string(domain.PacePacked)),
					huh.NewOption("Normal", string(domain.PaceNormal)),
					huh.NewOption("Relaxed", string(domain.PaceRelaxed)),
				).
				Value(&st.pace),
			huh.NewSelect[string]().
				Title("Getting around").
				Options(
					huh.NewOption("Driving", string(domain.TransportDrive)),
					huh.NewOption("Public transit", string(domain.TransportTransit)),
				).
				Value(&st.transport),
			huh.NewInput().
				Title("Day starts (HH:MM)").
				Placeholder("09:00").
				Value(&st.dayStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Day ends (HH:MM)").
				Placeholder("21:00").
				Value(&st.dayEnd).
				Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Meals").
				Options(modeOptions()...).
				Value(&st.mealsMode),
			huh.NewInput().
				Title("Fixed meals (comma-separated, blank if recommending)").
				Value(&st.mealsValue),
			huh.NewSelect[string]().
				Title("Hotel").
				Options(modeOptions()...).
				Value(&st.hotelMode),
			huh.NewInput().
				Title("Hotel name (blank if recommending)").
				Value(&st.hotelValue),
			huh.NewSelect[string]().
				Title("Spots").
				Options(modeOptions()...).
				Value(&st.spotsMode),
			huh.NewInput().
				Title("Must-visit spots (comma-separated, blank if recommending)").
				Value(&st.spotsValue),
		),
	).WithTheme(wanderplanHuhTheme()).WithShowHelp(false)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func preference(mode, value string, list bool) planner.Preference {
	p := planner.Preference{Mode: planner.PreferenceMode(mode)}
	if p.Mode == "" {
		p.Mode = planner.ModeRecommend
	}
	if p.Mode == planner.ModeCustom {
		if list {
			p.Values = splitList(value)
		} else {
			p.Value = strings.TrimSpace(value)
		}
	}
	return p
}

// buildRequest converts form state into a TripRequest. Numeric parse
// failures fall through as zeros; TripRequest.Validate reports them.
func (st tripFormState) buildRequest() planner.TripRequest {
	days, _ := strconv.Atoi(strings.TrimSpace(st.days))
	adults, _ := strconv.Atoi(strings.TrimSpace(st.adults))
	kids := 0
	if strings.TrimSpace(st.kids) != "" {
		kids, _ = strconv.Atoi(strings.TrimSpace(st.kids))
	}

	return planner.TripRequest{
		Destination: strings.TrimSpace(st.destination),
		Days:        days,
		Adults:      adults,
		Kids:        kids,
		Pace:        domain.Pace(st.pace),
		Transport:   domain.TransportMode(st.transport),
		DayStart:    strings.TrimSpace(st.dayStart),
		DayEnd:      strings.TrimSpace(st.dayEnd),
		Meals:       preference(st.mealsMode, st.mealsValue, true),
		Hotel:       preference(st.hotelMode, st.hotelValue, false),
		Spots:       preference(st.spotsMode, st.spotsValue, true),
	}
}
