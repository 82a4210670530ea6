// Package session holds the mutable editing state for one run of the
// client: the current itinerary plus the conflict map derived from it.
// All mutation flows through Apply, which dispatches to the pure
// schedule operations and re-runs conflict detection, so the rendered
// state and the conflict annotations can never drift apart.
package session

import (
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/schedule"
)

// CommandKind names one edit operation.
type CommandKind int

const (
	CmdUpdateField CommandKind = iota
	CmdSwitchOption
	CmdDeleteKeepGap
	CmdDeleteWithRipple
	CmdInsertAfter
)

// Command is one edit against the current itinerary.
type Command struct {
	Kind    CommandKind
	Day     int
	BlockID string
	Patch   schedule.FieldPatch // CmdUpdateField
	Label   domain.OptionLabel  // CmdSwitchOption
}

// Session is the editing state. Not safe for concurrent use: the UI
// event loop is the only writer.
type Session struct {
	itinerary domain.Itinerary
	conflicts map[int]map[string]string

	// generating guards the single-in-flight rule for generation and
	// reflow requests.
	generating bool
}

// New creates a session around a freshly generated itinerary.
func New(it domain.Itinerary) *Session {
	s := &Session{}
	s.SetItinerary(it)
	return s
}

// Itinerary returns the current itinerary. Callers must treat it as
// read-only; edits go through Apply.
func (s *Session) Itinerary() domain.Itinerary { return s.itinerary }

// Conflicts returns the conflict messages for one day, keyed by block
// id. Nil when the day is clean or unknown.
func (s *Session) Conflicts(dayNum int) map[string]string { return s.conflicts[dayNum] }

// HasConflicts reports whether any day currently has a conflict.
func (s *Session) HasConflicts() bool {
	for _, m := range s.conflicts {
		if len(m) > 0 {
			return true
		}
	}
	return false
}

// Apply runs one edit command and refreshes the affected day's
// conflicts. Unknown day or block ids leave the state unchanged.
func (s *Session) Apply(cmd Command) {
	switch cmd.Kind {
	case CmdUpdateField:
		s.itinerary = schedule.UpdateField(s.itinerary, cmd.Day, cmd.BlockID, cmd.Patch)
	case CmdSwitchOption:
		s.itinerary = schedule.SwitchOption(s.itinerary, cmd.Day, cmd.BlockID, cmd.Label)
	case CmdDeleteKeepGap:
		s.itinerary = schedule.DeleteKeepGap(s.itinerary, cmd.Day, cmd.BlockID)
	case CmdDeleteWithRipple:
		s.itinerary = schedule.DeleteWithRipple(s.itinerary, cmd.Day, cmd.BlockID)
	case CmdInsertAfter:
		s.itinerary = schedule.InsertAfter(s.itinerary, cmd.Day, cmd.BlockID)
	default:
		return
	}
	s.refreshConflicts(cmd.Day)
}

// SetItinerary replaces the whole itinerary, as after a fresh
// generation, and recomputes every day's conflicts.
func (s *Session) SetItinerary(it domain.Itinerary) {
	s.itinerary = it
	s.conflicts = make(map[int]map[string]string, len(it.Days))
	for _, day := range it.Days {
		s.refreshConflicts(day.Day)
	}
}

// ReplaceDay swaps in a reflowed day. A day number not present in the
// itinerary is a no-op, so a late reflow result for a since-changed
// itinerary cannot corrupt state.
func (s *Session) ReplaceDay(day domain.Day) {
	di := s.itinerary.FindDay(day.Day)
	if di < 0 {
		return
	}
	s.itinerary.Days[di] = day.Clone()
	schedule.SortBlocks(s.itinerary.Days[di].Blocks)
	s.refreshConflicts(day.Day)
}

// Generating reports whether a generation or reflow request is in
// flight.
func (s *Session) Generating() bool { return s.generating }

// BeginGeneration marks a request in flight. Returns false when one
// already is, enforcing at most one outstanding request.
func (s *Session) BeginGeneration() bool {
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

// EndGeneration clears the in-flight flag. Called on success and on
// failure alike: a failed reflow leaves the itinerary editable.
func (s *Session) EndGeneration() { s.generating = false }

func (s *Session) refreshConflicts(dayNum int) {
	di := s.itinerary.FindDay(dayNum)
	if di < 0 {
		delete(s.conflicts, dayNum)
		return
	}
	found := schedule.DetectConflicts(s.itinerary.Days[di])
	if len(found) == 0 {
		delete(s.conflicts, dayNum)
		return
	}
	s.conflicts[dayNum] = found
}
