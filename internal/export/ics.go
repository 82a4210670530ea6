package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/schedule"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

const icsProdID = "-//wanderplan//itinerary//EN"

// WriteICS writes the itinerary as an iCalendar feed, one VEVENT per
// block. Day 1 lands on the anchor's date, each later day one calendar
// day further. Event times are floating local times; the feed carries
// no timezone, the viewer's local zone applies.
func WriteICS(w io.Writer, it domain.Itinerary, anchor time.Time) error {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:" + icsProdID)
	if it.Title != "" {
		line("X-WR-CALNAME:" + escapeICS(it.Title))
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")

	for _, day := range it.Days {
		date := anchor.AddDate(0, 0, day.Day-1)

		blocks := make([]domain.Block, len(day.Blocks))
		copy(blocks, day.Blocks)
		schedule.SortBlocks(blocks)

		for _, blk := range blocks {
			start, errS := timeutil.ParseClock(blk.TimeStart)
			end, errE := timeutil.ParseClock(blk.TimeEnd)
			if errS != nil || errE != nil || end <= start {
				continue // unexportable range, visible as a conflict in the editor
			}

			line("BEGIN:VEVENT")
			line(fmt.Sprintf("UID:%s@wanderplan", blk.ID))
			line("DTSTAMP:" + stamp)
			line("DTSTART:" + icsTime(date, start))
			line("DTEND:" + icsTime(date, end))
			line("SUMMARY:" + escapeICS(blk.Title))
			if blk.Place != "" {
				line("LOCATION:" + escapeICS(blk.Place))
			}
			if blk.Note != "" {
				line("DESCRIPTION:" + escapeICS(blk.Note))
			}
			line("END:VEVENT")
		}
	}

	line("END:VCALENDAR")
	_, err := io.WriteString(w, b.String())
	return err
}

func icsTime(date time.Time, minutes int) string {
	t := time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("20060102T150405")
}

// escapeICS applies RFC 5545 TEXT escaping and flattens newlines.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
