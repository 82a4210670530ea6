package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/export"
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/alexanderramin/wanderplan/internal/schedule"
	"github.com/alexanderramin/wanderplan/internal/session"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editField names the block field the inline input is editing.
type editField int

const (
	fieldStart editField = iota
	fieldEnd
	fieldTitle
	fieldPlace
	fieldNote
	fieldCount
)

func (f editField) label() string {
	switch f {
	case fieldStart:
		return "start"
	case fieldEnd:
		return "end"
	case fieldTitle:
		return "title"
	case fieldPlace:
		return "place"
	default:
		return "note"
	}
}

// reflowDoneMsg carries an async reflow result back into the event loop.
type reflowDoneMsg struct {
	day *domain.Day
	err error
}

// editorModel is the bubbletea schedule editor. All edits dispatch
// session commands; the conflict map refreshes on every one.
type editorModel struct {
	app  *App
	sess *session.Session
	req  planner.TripRequest

	dayIdx int
	cursor int

	editing bool
	field   editField
	input   textinput.Model

	showMaps bool
	status   string
	width    int
	height   int
}

func newEditorModel(app *App, sess *session.Session, req planner.TripRequest) *editorModel {
	ti := textinput.New()
	ti.CharLimit = 120
	return &editorModel{app: app, sess: sess, req: req, input: ti}
}

func (m *editorModel) Init() tea.Cmd { return nil }

func (m *editorModel) currentDay() (domain.Day, bool) {
	it := m.sess.Itinerary()
	if m.dayIdx < 0 || m.dayIdx >= len(it.Days) {
		return domain.Day{}, false
	}
	return it.Days[m.dayIdx], true
}

func (m *editorModel) currentBlock() (domain.Block, bool) {
	day, ok := m.currentDay()
	if !ok || m.cursor < 0 || m.cursor >= len(day.Blocks) {
		return domain.Block{}, false
	}
	return day.Blocks[m.cursor], true
}

func (m *editorModel) clampCursor() {
	day, ok := m.currentDay()
	if !ok || len(day.Blocks) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(day.Blocks) {
		m.cursor = len(day.Blocks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case reflowDoneMsg:
		m.sess.EndGeneration()
		if msg.err != nil {
			// The schedule stays as it was; the user keeps editing.
			m.status = styleConflict.Render(fmt.Sprintf("reflow failed [%s]: %v", planner.Kind(msg.err), msg.err))
			return m, nil
		}
		m.sess.ReplaceDay(*msg.day)
		m.clampCursor()
		m.status = styleOK.Render(fmt.Sprintf("day %d reflowed", msg.day.Day))
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *editorModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	it := m.sess.Itinerary()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "right", "]":
		if m.dayIdx < len(it.Days)-1 {
			m.dayIdx++
			m.cursor = 0
		}
	case "shift+tab", "left", "[":
		if m.dayIdx > 0 {
			m.dayIdx--
			m.cursor = 0
		}

	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "up", "k":
		m.cursor--
		m.clampCursor()

	case "enter", "e":
		if _, ok := m.currentBlock(); ok {
			m.startEditing(fieldTitle)
		}
	case "t":
		if _, ok := m.currentBlock(); ok {
			m.startEditing(fieldStart)
		}

	case "a", "b":
		if b, ok := m.currentBlock(); ok {
			label := domain.OptionA
			if msg.String() == "b" {
				label = domain.OptionB
			}
			day, _ := m.currentDay()
			m.sess.Apply(session.Command{
				Kind: session.CmdSwitchOption, Day: day.Day, BlockID: b.ID, Label: label,
			})
			m.status = ""
		}

	case "g":
		if b, ok := m.currentBlock(); ok {
			day, _ := m.currentDay()
			m.sess.Apply(session.Command{Kind: session.CmdDeleteKeepGap, Day: day.Day, BlockID: b.ID})
			m.status = styleDim.Render("deleted, slot kept open")
		}

	case "x":
		if b, ok := m.currentBlock(); ok {
			day, _ := m.currentDay()
			m.sess.Apply(session.Command{Kind: session.CmdDeleteWithRipple, Day: day.Day, BlockID: b.ID})
			m.clampCursor()
			m.status = styleDim.Render("deleted, later blocks pulled earlier")
		}

	case "i":
		if b, ok := m.currentBlock(); ok {
			day, _ := m.currentDay()
			m.sess.Apply(session.Command{Kind: session.CmdInsertAfter, Day: day.Day, BlockID: b.ID})
			m.status = styleDim.Render("open slot inserted")
		}

	case "r":
		return m, m.startReflow()

	case "m":
		m.showMaps = !m.showMaps

	case "c":
		m.status = m.exportCSV()
	case "v":
		m.status = m.exportICS()
	}

	return m, nil
}

func (m *editorModel) startEditing(f editField) {
	b, ok := m.currentBlock()
	if !ok {
		return
	}
	m.editing = true
	m.field = f
	m.input.SetValue(m.fieldValue(b, f))
	m.input.CursorEnd()
	m.input.Focus()
	m.status = ""
}

func (m *editorModel) fieldValue(b domain.Block, f editField) string {
	switch f {
	case fieldStart:
		return b.TimeStart
	case fieldEnd:
		return b.TimeEnd
	case fieldTitle:
		return b.Title
	case fieldPlace:
		return b.Place
	default:
		return b.Note
	}
}

// applyField commits the inline input to the current block. Times are
// snapped here, at blur, so typing "9:5" mid-edit is never mangled.
func (m *editorModel) applyField() {
	b, ok := m.currentBlock()
	if !ok {
		m.editing = false
		return
	}
	day, _ := m.currentDay()
	val := m.input.Value()

	var patch schedule.FieldPatch
	switch m.field {
	case fieldStart:
		snapped := timeutil.SnapClock(val, timeutil.DefaultStep)
		patch.TimeStart = &snapped
	case fieldEnd:
		snapped := timeutil.SnapClock(val, timeutil.DefaultStep)
		patch.TimeEnd = &snapped
	case fieldTitle:
		patch.Title = &val
	case fieldPlace:
		patch.Place = &val
	default:
		patch.Note = &val
	}

	m.sess.Apply(session.Command{
		Kind: session.CmdUpdateField, Day: day.Day, BlockID: b.ID, Patch: patch,
	})

	// The edit may have re-sorted the day; follow the block.
	if updated, ok := m.currentDay(); ok {
		if idx := updated.FindBlock(b.ID); idx >= 0 {
			m.cursor = idx
		}
	}
}

func (m *editorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.applyField()
		m.editing = false
		m.input.Blur()
		return m, nil
	case "tab":
		m.applyField()
		m.startEditing((m.field + 1) % fieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startReflow kicks off an async day reflow. At most one generation
// request is in flight; a second "r" while waiting is refused.
func (m *editorModel) startReflow() tea.Cmd {
	day, ok := m.currentDay()
	if !ok {
		return nil
	}
	if !m.sess.BeginGeneration() {
		m.status = styleStale.Render("a reflow is already running")
		return nil
	}
	m.status = styleDim.Render(fmt.Sprintf("reflowing day %d...", day.Day))

	req := planner.ReflowRequest{
		Destination: m.req.Destination,
		Pace:        m.req.Pace,
		Transport:   m.req.Transport,
		DayStart:    m.req.DayStart,
		DayEnd:      m.req.DayEnd,
		HasKids:     m.req.Kids > 0,
		Day:         day.Clone(),
	}
	svc := m.app.Planner
	return func() tea.Msg {
		d, err := svc.ReflowDay(context.Background(), req)
		return reflowDoneMsg{day: d, err: err}
	}
}

func (m *editorModel) exportCSV() string {
	path := "wanderplan.csv"
	if err := writeFile(path, func(f *os.File) error {
		return export.WriteCSV(f, m.sess.Itinerary())
	}); err != nil {
		return styleConflict.Render(err.Error())
	}
	return styleOK.Render("wrote " + path)
}

func (m *editorModel) exportICS() string {
	path := "wanderplan.ics"
	now := time.Now()
	anchor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := writeFile(path, func(f *os.File) error {
		return export.WriteICS(f, m.sess.Itinerary(), anchor)
	}); err != nil {
		return styleConflict.Render(err.Error())
	}
	return styleOK.Render("wrote " + path)
}
