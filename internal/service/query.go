package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stpnv0/EventRegistry/internal/access"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
)

// QueryService serves read-only views. Nothing here takes the event lock, so
// a listing may be a moment behind a concurrent registration.
type QueryService struct {
	events        ports.EventRepo
	registrations ports.RegistrationRepo
}

func NewQueryService(events ports.EventRepo, registrations ports.RegistrationRepo) *QueryService {
	return &QueryService{
		events:        events,
		registrations: registrations,
	}
}

func (s *QueryService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventSummary, error) {
	events, err := s.events.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	res := make([]domain.EventSummary, 0, len(events))
	for _, e := range events {
		res = append(res, domain.EventSummary{
			Event:          *e,
			SpotsAvailable: e.SpotsAvailable(),
		})
	}

	return res, nil
}

// GetEvent returns the event with is_registered resolved for userID. An empty
// userID means an anonymous caller.
func (s *QueryService) GetEvent(ctx context.Context, id, userID string) (*domain.EventDetails, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	details := &domain.EventDetails{
		Event:          *event,
		SpotsAvailable: event.SpotsAvailable(),
	}
	if userID == "" {
		return details, nil
	}

	reg, err := s.registrations.Get(ctx, id, userID)
	switch {
	case errors.Is(err, domain.ErrRegistrationNotFound):
	case err != nil:
		return nil, fmt.Errorf("get registration: %w", err)
	default:
		details.IsRegistered = reg.IsActive()
	}

	return details, nil
}

func (s *QueryService) ListRoster(ctx context.Context, actor domain.AuthenticatedUser, eventID string) ([]*domain.Registration, error) {
	if err := access.RequireUser(actor); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err = access.CanManageEvent(actor, event); err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	return regs, nil
}

func (s *QueryService) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	regs, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}

	return regs, nil
}
