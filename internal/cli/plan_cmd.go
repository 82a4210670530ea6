package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/export"
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/alexanderramin/wanderplan/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type planFlags struct {
	destination string
	days        int
	adults      int
	kids        int
	pace        string
	transport   string
	dayStart    string
	dayEnd      string
	meals       []string
	hotel       string
	spots       []string

	csvPath   string
	icsPath   string
	startDate string // anchor date for the calendar export, YYYY-MM-DD
}

func (f planFlags) request() planner.TripRequest {
	req := planner.TripRequest{
		Destination: f.destination,
		Days:        f.days,
		Adults:      f.adults,
		Kids:        f.kids,
		Pace:        domain.Pace(f.pace),
		Transport:   domain.TransportMode(f.transport),
		DayStart:    f.dayStart,
		DayEnd:      f.dayEnd,
		Meals:       planner.Preference{Mode: planner.ModeRecommend},
		Hotel:       planner.Preference{Mode: planner.ModeRecommend},
		Spots:       planner.Preference{Mode: planner.ModeRecommend},
	}
	if len(f.meals) > 0 {
		req.Meals = planner.Preference{Mode: planner.ModeCustom, Values: f.meals}
	}
	if f.hotel != "" {
		req.Hotel = planner.Preference{Mode: planner.ModeCustom, Value: f.hotel}
	}
	if len(f.spots) > 0 {
		req.Spots = planner.Preference{Mode: planner.ModeCustom, Values: f.spots}
	}
	return req
}

func newPlanCmd(app *App) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a trip itinerary and open the schedule editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, flags)
		},
	}

	registerPlanFlags(cmd.Flags(), &flags)
	return cmd
}

func registerPlanFlags(fs *pflag.FlagSet, flags *planFlags) {
	fs.StringVar(&flags.destination, "destination", "", "where the trip goes")
	fs.IntVar(&flags.days, "days", 0, fmt.Sprintf("trip length in days (1-%d)", planner.MaxTripDays))
	fs.IntVar(&flags.adults, "adults", 2, "number of adults")
	fs.IntVar(&flags.kids, "kids", 0, "number of kids")
	fs.StringVar(&flags.pace, "pace", string(domain.PaceNormal), "packed, normal or relaxed")
	fs.StringVar(&flags.transport, "transport", string(domain.TransportTransit), "drive or transit")
	fs.StringVar(&flags.dayStart, "day-start", "09:00", "day window opens (HH:MM)")
	fs.StringVar(&flags.dayEnd, "day-end", "21:00", "day window closes (HH:MM)")
	fs.StringSliceVar(&flags.meals, "meal", nil, "fixed meal, repeatable")
	fs.StringVar(&flags.hotel, "hotel", "", "hotel to plan around")
	fs.StringSliceVar(&flags.spots, "spot", nil, "must-visit spot, repeatable")
	fs.StringVar(&flags.csvPath, "csv", "", "write a CSV export here and skip the editor")
	fs.StringVar(&flags.icsPath, "ics", "", "write a calendar export here and skip the editor")
	fs.StringVar(&flags.startDate, "start-date", "", "first day's date for the calendar export (YYYY-MM-DD, default today)")
}

func runPlan(cmd *cobra.Command, app *App, flags planFlags) error {
	interactive := app.IsInteractive != nil && app.IsInteractive()
	exportOnly := flags.csvPath != "" || flags.icsPath != ""

	var req planner.TripRequest
	if flags.destination == "" && interactive && !exportOnly {
		var st tripFormState
		if err := newTripForm(&st).Run(); err != nil {
			return err
		}
		req = st.buildRequest()
	} else {
		req = flags.request()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Planning %d days in %s...\n", req.Days, req.Destination)

	it, err := app.Planner.Generate(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("[%s] %w", planner.Kind(err), err)
	}

	if exportOnly || !interactive {
		return writeExports(cmd, *it, flags)
	}

	sess := session.New(*it)
	model := newEditorModel(app, sess, req)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func exportAnchor(startDate string) (time.Time, error) {
	if startDate == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad --start-date %q: use YYYY-MM-DD", startDate)
	}
	return t, nil
}

func writeExports(cmd *cobra.Command, it domain.Itinerary, flags planFlags) error {
	if flags.csvPath != "" {
		if err := writeFile(flags.csvPath, func(f *os.File) error {
			return export.WriteCSV(f, it)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flags.csvPath)
	}
	if flags.icsPath != "" {
		anchor, err := exportAnchor(flags.startDate)
		if err != nil {
			return err
		}
		if err := writeFile(flags.icsPath, func(f *os.File) error {
			return export.WriteICS(f, it, anchor)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flags.icsPath)
	}
	if flags.csvPath == "" && flags.icsPath == "" {
		// Non-interactive with no export target: dump CSV to stdout.
		return export.WriteCSV(cmd.OutOrStdout(), it)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
