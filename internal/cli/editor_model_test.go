package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/llm"
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/alexanderramin/wanderplan/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanner struct {
	day *domain.Day
	err error
}

func (f *fakePlanner) Generate(context.Context, planner.TripRequest) (*domain.Itinerary, error) {
	return nil, errors.New("not used")
}

func (f *fakePlanner) ReflowDay(context.Context, planner.ReflowRequest) (*domain.Day, error) {
	return f.day, f.err
}

func editorFixture(t *testing.T, svc planner.Service) *editorModel {
	t.Helper()
	it := domain.Itinerary{
		Title: "Kyoto",
		Assumptions: domain.Assumptions{
			StartTime: "09:00", EndTime: "21:00",
			Pace: domain.PaceNormal, Transport: domain.TransportTransit,
		},
		Days: []domain.Day{
			{Day: 1, Blocks: []domain.Block{
				{ID: "a", TimeStart: "09:00", TimeEnd: "10:00", Type: domain.BlockArrival, Title: "Arrive", Source: domain.SourceAI},
				{ID: "b", TimeStart: "10:00", TimeEnd: "12:00", Type: domain.BlockSpot, Title: "Temple", Source: domain.SourceAI,
					Options: []domain.Option{
						{Label: domain.OptionA, Title: "Temple", Score: 90, Reason: "iconic", Source: domain.SourceAI},
						{Label: domain.OptionB, Title: "Bamboo grove", Score: 80, Reason: "quieter", Source: domain.SourceAI},
					},
					SelectedOption: domain.OptionA},
				{ID: "c", TimeStart: "12:00", TimeEnd: "13:00", Type: domain.BlockMeal, Title: "Lunch", MealType: domain.MealLunch, Source: domain.SourceAI},
			}},
			{Day: 2, Blocks: []domain.Block{
				{ID: "d", TimeStart: "10:00", TimeEnd: "11:00", Type: domain.BlockSpot, Title: "Market", Source: domain.SourceAI},
			}},
		},
	}
	app := &App{Planner: svc}
	req := planner.TripRequest{
		Destination: "Kyoto", Days: 2, Adults: 2,
		Pace: domain.PaceNormal, Transport: domain.TransportTransit,
		DayStart: "09:00", DayEnd: "21:00",
	}
	return newEditorModel(app, session.New(it), req)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *editorModel, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func TestEditor_Navigation(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})

	press(m, "down", "down")
	b, ok := m.currentBlock()
	require.True(t, ok)
	assert.Equal(t, "c", b.ID)

	// Cursor clamps at the end of the day.
	press(m, "down")
	b, _ = m.currentBlock()
	assert.Equal(t, "c", b.ID)

	press(m, "tab")
	assert.Equal(t, 1, m.dayIdx)
	b, _ = m.currentBlock()
	assert.Equal(t, "d", b.ID)
}

func TestEditor_SwitchOption(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "down", "b")

	blk, _ := m.currentBlock()
	assert.Equal(t, domain.OptionB, blk.SelectedOption)
	assert.Equal(t, "Bamboo grove", blk.Title)
}

func TestEditor_DeleteKeepGap(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "down", "g")

	day, _ := m.currentDay()
	require.Len(t, day.Blocks, 3)
	assert.Equal(t, domain.BlockFree, day.Blocks[1].Type)
	assert.Equal(t, "10:00", day.Blocks[1].TimeStart)
	assert.Equal(t, "12:00", day.Blocks[1].TimeEnd)
}

func TestEditor_DeleteWithRipple(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "down", "x")

	day, _ := m.currentDay()
	require.Len(t, day.Blocks, 2)
	// Lunch pulled earlier by the deleted two hours.
	assert.Equal(t, "10:00", day.Blocks[1].TimeStart)
	assert.Equal(t, "11:00", day.Blocks[1].TimeEnd)
}

func TestEditor_EditTimeSnapsAtBlur(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "down", "t") // edit start time of "b"
	require.True(t, m.editing)

	m.input.SetValue("10:03")
	press(m, "enter")
	require.False(t, m.editing)

	day, _ := m.currentDay()
	idx := day.FindBlock("b")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "10:05", day.Blocks[idx].TimeStart)
}

func TestEditor_EscCancelsEdit(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "e")
	m.input.SetValue("changed")
	press(m, "esc")

	blk, _ := m.currentBlock()
	assert.Equal(t, "Arrive", blk.Title)
}

func TestEditor_EditCreatingConflictIsVisible(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "down", "t")
	m.input.SetValue("09:30") // overlaps the arrival
	press(m, "enter")

	day, _ := m.currentDay()
	require.NotEmpty(t, m.sess.Conflicts(day.Day))
	assert.Contains(t, m.View(), "overlaps")
}

func TestEditor_ReflowReplacesDay(t *testing.T) {
	replacement := domain.Day{Day: 1, Blocks: []domain.Block{
		{ID: "n1", TimeStart: "09:00", TimeEnd: "11:00", Type: domain.BlockSpot, Title: "New plan", Source: domain.SourceAI},
	}}
	m := editorFixture(t, &fakePlanner{day: &replacement})

	cmd := m.startReflow()
	require.NotNil(t, cmd)
	assert.True(t, m.sess.Generating())

	// Second reflow while one is in flight is refused.
	assert.Nil(t, m.startReflow())

	m.Update(cmd())
	assert.False(t, m.sess.Generating())

	day, _ := m.currentDay()
	require.Len(t, day.Blocks, 1)
	assert.Equal(t, "New plan", day.Blocks[0].Title)
}

func TestEditor_ReflowFailureKeepsScheduleEditable(t *testing.T) {
	m := editorFixture(t, &fakePlanner{err: llm.ErrModelsExhausted})

	cmd := m.startReflow()
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.False(t, m.sess.Generating())
	day, _ := m.currentDay()
	assert.Len(t, day.Blocks, 3)

	// Still editable after the failure.
	press(m, "down", "x")
	day, _ = m.currentDay()
	assert.Len(t, day.Blocks, 2)
}

func TestEditor_InsertAfter(t *testing.T) {
	m := editorFixture(t, &fakePlanner{})
	press(m, "down", "down", "i")

	day, _ := m.currentDay()
	require.Len(t, day.Blocks, 4)
	last := day.Blocks[3]
	assert.Equal(t, domain.BlockFree, last.Type)
	assert.Equal(t, "13:00", last.TimeStart)
	assert.Equal(t, "14:00", last.TimeEnd)
}
