package planner

import (
	"testing"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrip() TripRequest {
	return TripRequest{
		Destination: "Lisbon",
		Days:        3,
		Adults:      2,
		Kids:        1,
		Pace:        domain.PaceNormal,
		Transport:   domain.TransportTransit,
		DayStart:    "09:30",
		DayEnd:      "21:00",
		Meals:       Preference{Mode: ModeRecommend},
		Hotel:       Preference{Mode: ModeCustom, Value: "Hotel Avenida"},
		Spots:       Preference{Mode: ModeCustom, Values: []string{"Belém Tower", "Alfama"}},
	}
}

func TestTripRequest_Valid(t *testing.T) {
	assert.NoError(t, validTrip().Validate())
}

func TestTripRequest_CollectsAllIssues(t *testing.T) {
	req := validTrip()
	req.Destination = "  "
	req.Days = 0
	req.Adults = 0

	err := req.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "destination")
	assert.Contains(t, err.Error(), "days")
	assert.Contains(t, err.Error(), "adult")
}

func TestTripRequest_WindowMustBeOrdered(t *testing.T) {
	req := validTrip()
	req.DayStart = "21:00"
	req.DayEnd = "09:00"
	err := req.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "close after it opens")
}

func TestTripRequest_RejectsPastMidnightWindow(t *testing.T) {
	// Policy: multi-day-spanning windows are rejected, not wrapped.
	req := validTrip()
	req.DayEnd = "25:00"
	assert.ErrorIs(t, req.Validate(), ErrValidation)
}

func TestTripRequest_CustomPreferenceNeedsPayload(t *testing.T) {
	req := validTrip()
	req.Hotel = Preference{Mode: ModeCustom}
	err := req.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "hotel")
}

func TestTripRequest_UnknownEnums(t *testing.T) {
	req := validTrip()
	req.Pace = "sprint"
	req.Transport = "teleport"
	err := req.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "pace")
	assert.Contains(t, err.Error(), "transport")
}

func TestReflowRequest_Validate(t *testing.T) {
	req := ReflowRequest{
		Destination: "Lisbon",
		Pace:        domain.PaceNormal,
		Transport:   domain.TransportDrive,
		DayStart:    "09:00",
		DayEnd:      "20:00",
		Day: domain.Day{Day: 2, Blocks: []domain.Block{
			{ID: "x", TimeStart: "10:00", TimeEnd: "11:00", Type: domain.BlockSpot, Title: "t", Source: domain.SourceAI},
		}},
	}
	assert.NoError(t, req.Validate())

	req.Day.Blocks = nil
	assert.ErrorIs(t, req.Validate(), ErrValidation)
}
