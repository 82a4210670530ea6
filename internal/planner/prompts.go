package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// minBlocksPerPace is the minimum number of blocks the model must emit
// per day at each pace tier.
var minBlocksPerPace = map[domain.Pace]int{
	domain.PacePacked:  8,
	domain.PaceNormal:  6,
	domain.PaceRelaxed: 4,
}

const itinerarySchema = `{
  "title": "trip title",
  "assumptions": {"startTime": "09:00", "endTime": "21:00", "pace": "normal", "transport": "transit"},
  "days": [
    {
      "day": 1,
      "blocks": [
        {
          "id": "d1-1",
          "timeStart": "09:00",
          "timeEnd": "09:30",
          "type": "arrival|spot|meal|hotel|move|free",
          "title": "display title",
          "place": "place name",
          "note": "short note",
          "source": "ai",
          "options": [
            {"label": "A", "title": "...", "place": "...", "note": "...", "score": 90, "reason": "one sentence", "source": "ai"},
            {"label": "B", "title": "...", "place": "...", "note": "...", "score": 80, "reason": "one sentence", "source": "ai"}
          ],
          "selectedOption": "A",
          "mealType": "breakfast|lunch|dinner|snack",
          "move": {"mode": "drive|transit", "durationMin": 30, "from": "...", "to": "..."}
        }
      ]
    }
  ]
}`

func paceLine(p domain.Pace) string {
	switch p {
	case domain.PacePacked:
		return "packed (many stops, tight transfers, short stays)"
	case domain.PaceRelaxed:
		return "relaxed (generous slack, long stays, loose schedule)"
	default:
		return "normal (balanced)"
	}
}

func transportLine(t domain.TransportMode) string {
	if t == domain.TransportDrive {
		return "driving"
	}
	return "public transit"
}

func preferenceLine(name string, p Preference) string {
	if p.Mode == ModeCustom && p.payload() != "" {
		return fmt.Sprintf("- %s: user-specified, must include: %s", name, p.payload())
	}
	return fmt.Sprintf("- %s: recommend the best choices yourself", name)
}

// buildGeneratePrompt serializes a TripRequest into one instruction
// demanding the exact itinerary JSON shape back.
func buildGeneratePrompt(req TripRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a travel planner. Plan a %d-day trip and output ONLY a JSON object. No prose, no markdown fences.\n\n", req.Days)

	b.WriteString("Trip parameters:\n")
	fmt.Fprintf(&b, "- destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- party: %d adults, %d kids", req.Adults, req.Kids)
	if req.Kids > 0 {
		b.WriteString(" (kid-friendly stops, nothing too late)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- pace: %s\n", paceLine(req.Pace))
	fmt.Fprintf(&b, "- transport: %s (every move block must use this mode)\n", transportLine(req.Transport))
	fmt.Fprintf(&b, "- day window: %s to %s\n", req.DayStart, req.DayEnd)
	b.WriteString(preferenceLine("meals", req.Meals) + "\n")
	b.WriteString(preferenceLine("hotel", req.Hotel) + "\n")
	b.WriteString(preferenceLine("spots", req.Spots) + "\n")

	b.WriteString("\nOutput schema (match keys exactly):\n")
	b.WriteString(itinerarySchema)

	fmt.Fprintf(&b, `

Rules:
1. Exactly %d days, numbered 1..%d with no gaps. Day 1 starts with an "arrival" block.
2. Every timeStart/timeEnd falls inside %s-%s. Within a day, blocks must not overlap and must be sorted by timeStart.
3. At least %d blocks per day for this pace.
4. Insert a "move" block between any two blocks at different locations. move.durationMin must equal timeEnd minus timeStart in minutes.
5. Every "spot", "meal" and "hotel" block carries exactly two options labeled "A" and "B", each with score (0-100) and a one-sentence reason. Set selectedOption to "A" and copy that option's title/place/note onto the block.
6. Every "meal" block carries a mealType. Schedule lunch to start between 11:30 and 12:30; if you deviate, explain why in the block's note.
7. Block ids must be unique within a day.
8. Set "source" to "ai" everywhere except content the user dictated, which is "user".
`, req.Days, req.Days, req.DayStart, req.DayEnd, minBlocksPerPace[req.Pace])

	return b.String()
}

// buildReflowPrompt serializes a ReflowRequest: the current day is
// embedded verbatim and the model is asked for a replacement day
// object under the same constraints.
func buildReflowPrompt(req ReflowRequest) string {
	dayJSON, err := json.MarshalIndent(req.Day, "", "  ")
	if err != nil {
		dayJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a travel planner. Rework ONE day of an existing itinerary and output ONLY a JSON object of the form {\"day\": <number>, \"blocks\": [...]}. No prose, no markdown fences.\n\n")

	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- pace: %s\n", paceLine(req.Pace))
	fmt.Fprintf(&b, "- transport: %s (every move block must use this mode)\n", transportLine(req.Transport))
	fmt.Fprintf(&b, "- day window: %s to %s\n", req.DayStart, req.DayEnd)
	if req.HasKids {
		b.WriteString("- traveling with kids: keep stops kid-friendly, end the day early\n")
	}

	b.WriteString("\nCurrent day (including open slots and stale transit):\n")
	b.Write(dayJSON)

	fmt.Fprintf(&b, `

Rules:
1. Keep the same day number. All blocks inside %s-%s, non-overlapping, sorted by timeStart.
2. "free" blocks marked as open slots may stay free or be replaced with a better spot/meal/hotel, but avoid leaving the day mostly empty.
3. Any move with needsUpdate=true must get fresh from/to and durationMin; move.durationMin must equal timeEnd minus timeStart.
4. Blocks the user has clearly hand-adjusted (source "user") should be preserved; prefer fixing transit and filling gaps around them.
5. New or changed spot/meal/hotel blocks carry two options "A"/"B" with score and reason; selectedOption matches the block's title/place/note.
6. Meals keep a mealType; lunch starts between 11:30 and 12:30 unless the note explains the deviation.
`, req.DayStart, req.DayEnd)

	return b.String()
}
