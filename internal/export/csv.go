// Package export renders an in-session itinerary into shareable
// formats: a CSV table, an iCalendar feed, and map links. Every
// exporter reads the itinerary as-is; none of them mutate it.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/schedule"
)

var csvHeader = []string{"Day", "Start", "End", "Type", "Title", "Place", "Note"}

// WriteCSV writes the itinerary as one flat table, one row per block,
// blocks ordered by start time within each day. Field quoting follows
// encoding/csv, so commas and quotes in titles survive a round trip.
func WriteCSV(w io.Writer, it domain.Itinerary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, day := range it.Days {
		blocks := make([]domain.Block, len(day.Blocks))
		copy(blocks, day.Blocks)
		schedule.SortBlocks(blocks)

		for _, b := range blocks {
			row := []string{
				fmt.Sprintf("%d", day.Day),
				b.TimeStart,
				b.TimeEnd,
				string(b.Type),
				b.Title,
				b.Place,
				b.Note,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row for block %s: %w", b.ID, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
