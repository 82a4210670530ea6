// Package planner is the request/response boundary to the itinerary
// generation collaborator: it validates trip parameters, builds the
// outbound instruction, and repairs the inbound text into the typed
// schedule model. The collaborator is a black box; its output is
// validated and normalized here, never trusted blindly.
package planner

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/llm"
	"github.com/alexanderramin/wanderplan/internal/schedule"
	"github.com/alexanderramin/wanderplan/internal/timeutil"
)

// Service generates itineraries and reflows single days.
type Service interface {
	// Generate builds a full itinerary from trip parameters. The
	// returned itinerary is normalized and ready for editing.
	Generate(ctx context.Context, req TripRequest) (*domain.Itinerary, error)

	// ReflowDay regenerates one day of an existing itinerary, keeping
	// user-adjusted blocks where possible.
	ReflowDay(ctx context.Context, req ReflowRequest) (*domain.Day, error)
}

type service struct {
	client   llm.Client
	snapStep int
}

// NewService creates a planner Service backed by a generation client.
func NewService(client llm.Client) Service {
	return &service{client: client, snapStep: timeutil.DefaultStep}
}

func (s *service) Generate(ctx context.Context, req TripRequest) (*domain.Itinerary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.Request{
		Task:   llm.TaskGenerate,
		Prompt: buildGeneratePrompt(req),
	})
	if err != nil {
		return nil, fmt.Errorf("generating itinerary: %w", err)
	}

	raw, err := llm.ExtractJSON[domain.Itinerary](resp.Text, func(it domain.Itinerary) error {
		return validateItinerary(it, req)
	})
	if err != nil {
		return nil, fmt.Errorf("parsing itinerary: %w", err)
	}

	normalized := schedule.Normalize(raw, s.snapStep)
	// The request, not the model, is authoritative for assumptions.
	normalized.Assumptions = domain.Assumptions{
		StartTime: req.DayStart,
		EndTime:   req.DayEnd,
		Pace:      req.Pace,
		Transport: req.Transport,
	}
	return &normalized, nil
}

func (s *service) ReflowDay(ctx context.Context, req ReflowRequest) (*domain.Day, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.Request{
		Task:   llm.TaskReflow,
		Prompt: buildReflowPrompt(req),
	})
	if err != nil {
		return nil, fmt.Errorf("reflowing day %d: %w", req.Day.Day, err)
	}

	raw, err := llm.ExtractJSON[domain.Day](resp.Text, func(day domain.Day) error {
		return validateReflowedDay(day, req)
	})
	if err != nil {
		return nil, fmt.Errorf("parsing reflowed day: %w", err)
	}

	normalized := schedule.NormalizeDay(raw, s.snapStep)
	return &normalized, nil
}
