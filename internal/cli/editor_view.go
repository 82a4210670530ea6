package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/export"
)

func (m *editorModel) View() string {
	it := m.sess.Itinerary()
	var b strings.Builder

	b.WriteString(styleHeader.Render(it.Title))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("window %s-%s · pace %s · %s",
		it.Assumptions.StartTime, it.Assumptions.EndTime,
		it.Assumptions.Pace, it.Assumptions.Transport)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs(it))
	b.WriteString("\n\n")

	day, ok := m.currentDay()
	if !ok || len(day.Blocks) == 0 {
		b.WriteString(styleDim.Render("  (empty day)"))
		b.WriteString("\n")
	} else {
		conflicts := m.sess.Conflicts(day.Day)
		for i, blk := range day.Blocks {
			b.WriteString(m.renderBlock(blk, i == m.cursor, conflicts[blk.ID]))
		}
	}

	if m.showMaps {
		b.WriteString("\n")
		b.WriteString(m.renderMaps(day))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *editorModel) renderTabs(it domain.Itinerary) string {
	tabs := make([]string, 0, len(it.Days))
	for i, day := range it.Days {
		label := fmt.Sprintf("Day %d", day.Day)
		if len(m.sess.Conflicts(day.Day)) > 0 {
			label += " !"
		}
		if i == m.dayIdx {
			tabs = append(tabs, styleTabOn.Render(label))
		} else {
			tabs = append(tabs, styleTabOff.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *editorModel) renderBlock(blk domain.Block, selected bool, conflict string) string {
	var b strings.Builder

	marker := "  "
	if selected {
		marker = styleCursor.Render("> ")
	}

	timeRange := styleTime.Render(blk.TimeStart + "-" + blk.TimeEnd)
	title := blk.Title
	if blk.Type == domain.BlockMove && blk.Move != nil && blk.Move.NeedsUpdate {
		title = styleStale.Render(title)
	} else if selected {
		title = styleFg.Bold(true).Render(title)
	} else {
		title = styleFg.Render(title)
	}

	b.WriteString(fmt.Sprintf("%s%s  %-7s %s", marker, timeRange, styleDim.Render(string(blk.Type)), title))
	if blk.Place != "" {
		b.WriteString(styleDim.Render(" @ " + blk.Place))
	}
	b.WriteString("\n")

	if selected && m.editing {
		b.WriteString(fmt.Sprintf("    %s %s\n", styleHeader.Render(m.field.label()+":"), m.input.View()))
	}

	if selected && len(blk.Options) > 0 {
		for _, opt := range blk.Options {
			line := fmt.Sprintf("    [%s] %s (%d) %s", opt.Label, opt.Title, opt.Score, opt.Reason)
			if opt.Label == blk.SelectedOption {
				b.WriteString(styleOK.Render(line))
			} else {
				b.WriteString(styleDim.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if selected && blk.Note != "" {
		b.WriteString(styleDim.Render("    note: " + blk.Note))
		b.WriteString("\n")
	}

	if conflict != "" {
		b.WriteString(styleConflict.Render("    ! " + conflict))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *editorModel) renderMaps(day domain.Day) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Map links"))
	b.WriteString("\n")
	if u := export.DirectionsURL(day, m.req.Destination); u != "" {
		b.WriteString(styleDim.Render("  route: "))
		b.WriteString(u)
		b.WriteString("\n")
	}
	if blk, ok := m.currentBlock(); ok {
		if u := export.SearchURL(blk, m.req.Destination); u != "" {
			b.WriteString(styleDim.Render("  stop:  "))
			b.WriteString(u)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *editorModel) renderHelp() string {
	if m.editing {
		return styleDim.Render("enter apply · tab next field · esc cancel")
	}
	return styleDim.Render(
		"↑/↓ move · tab day · e edit · t times · a/b option · g free slot · x delete · i insert · r reflow · m maps · c csv · v ics · q quit")
}
