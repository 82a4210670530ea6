// Package domain holds the itinerary schedule model: a multi-day,
// block-structured schedule produced by the generation collaborator
// and mutated only through the schedule package's edit operations.
// The tree lives in session state for the length of one editing
// session; there is no persistence layer.
package domain

// Assumptions are the trip-wide parameters the schedule was generated
// under. All fields are optional on inbound payloads.
type Assumptions struct {
	StartTime string        `json:"startTime,omitempty"` // day window opens, "HH:MM"
	EndTime   string        `json:"endTime,omitempty"`   // day window closes, "HH:MM"
	Pace      Pace          `json:"pace,omitempty"`
	Transport TransportMode `json:"transport,omitempty"`
}

// Day is one day of the trip. Blocks are kept sorted ascending by
// TimeStart; the ordering is re-established after every mutation, it
// is not an inherent property of storage order.
type Day struct {
	Day    int     `json:"day"`
	Blocks []Block `json:"blocks"`
}

// Itinerary is the root of the schedule tree. Days are ordered by day
// number ascending, contiguous from 1.
type Itinerary struct {
	Title       string      `json:"title"`
	Assumptions Assumptions `json:"assumptions"`
	Days        []Day       `json:"days"`
}

// FindBlock returns the index of the block with the given id, or -1.
func (d Day) FindBlock(id string) int {
	for i := range d.Blocks {
		if d.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := Day{Day: d.Day}
	if d.Blocks != nil {
		out.Blocks = make([]Block, len(d.Blocks))
		for i := range d.Blocks {
			out.Blocks[i] = d.Blocks[i].Clone()
		}
	}
	return out
}

// FindDay returns the index of the day with the given day number, or -1.
func (it Itinerary) FindDay(dayNum int) int {
	for i := range it.Days {
		if it.Days[i].Day == dayNum {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the itinerary. Edit operations clone
// before mutating so callers can keep the prior value.
func (it Itinerary) Clone() Itinerary {
	out := Itinerary{Title: it.Title, Assumptions: it.Assumptions}
	if it.Days != nil {
		out.Days = make([]Day, len(it.Days))
		for i := range it.Days {
			out.Days[i] = it.Days[i].Clone()
		}
	}
	return out
}

// Window returns the day time window in minutes since midnight,
// falling back to a full day when either bound is absent or malformed.
func (it Itinerary) Window() (startMin, endMin int) {
	return clockOr(it.Assumptions.StartTime, 0), clockOr(it.Assumptions.EndTime, 24*60-1)
}
