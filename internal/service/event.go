package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventRegistry/internal/access"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type registrationController interface {
	CloseEvent(ctx context.Context, eventID string, cascade bool) (int, error)
	MarkAttended(ctx context.Context, eventID, userID string) (*domain.Registration, error)
}

// EventService is the administrative surface over the event store. Changes
// that touch capacity go through the event's exclusive section so they can't
// race with registrations.
type EventService struct {
	repo          ports.EventRepo
	locker        ports.EventLocker
	registrations registrationController
	logger        logger.Logger
	now           func() time.Time
}

func NewEventService(
	repo ports.EventRepo,
	locker ports.EventLocker,
	registrations registrationController,
	logger logger.Logger,
) *EventService {
	return &EventService{
		repo:          repo,
		locker:        locker,
		registrations: registrations,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventService) CreateEvent(
	ctx context.Context,
	actor domain.AuthenticatedUser,
	input domain.CreateEventInput,
) (*domain.Event, error) {
	if err := access.CanCreateEvents(actor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
	}
	now := s.now()
	if input.EventDate.Before(now) {
		return nil, fmt.Errorf("%w: event_date must be in the future", domain.ErrValidation)
	}

	event := &domain.Event{
		ID:          uuid.New().String(),
		Title:       title,
		Description: input.Description,
		Venue:       input.Venue,
		Category:    strings.TrimSpace(input.Category),
		EventDate:   input.EventDate.UTC(),
		Capacity:    input.Capacity,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		logger.String("event_id", event.ID),
		logger.String("owner_id", event.OwnerID),
		logger.Int("capacity", event.Capacity),
	)

	return event, nil
}

// UpdateEvent applies the non-nil fields of input. A capacity lower than the
// current registered count is refused and nothing changes.
func (s *EventService) UpdateEvent(
	ctx context.Context,
	actor domain.AuthenticatedUser,
	id string,
	input domain.UpdateEventInput,
) (*domain.Event, error) {
	if err := access.RequireUser(actor); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.locker.WithEventLock(ctx, id, func(ctx context.Context, tx ports.EventTx) error {
		event := tx.Event()
		if err := access.CanManageEvent(actor, event); err != nil {
			return err
		}

		if err := applyUpdate(event, input); err != nil {
			return err
		}
		event.UpdatedAt = s.now()

		if err := tx.SaveEvent(ctx, event); err != nil {
			return err
		}

		updated = event
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event updated",
		logger.String("event_id", updated.ID),
		logger.Int("capacity", updated.Capacity),
		logger.Int("registered_count", updated.RegisteredCount),
	)

	return updated, nil
}

func applyUpdate(e *domain.Event, in domain.UpdateEventInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
		}
		e.Title = title
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Venue != nil {
		e.Venue = *in.Venue
	}
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
	}
	if in.EventDate != nil {
		e.EventDate = in.EventDate.UTC()
	}
	if in.Capacity != nil {
		c := *in.Capacity
		if c < e.RegisteredCount {
			return domain.ErrCapacityBelowRegistered
		}
		if c < 1 {
			return fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
		}
		e.Capacity = c
	}

	return nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor domain.AuthenticatedUser, id string, cascade bool) (int, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return 0, err
	}

	return s.registrations.CloseEvent(ctx, id, cascade)
}

func (s *EventService) RecordAttendance(
	ctx context.Context,
	actor domain.AuthenticatedUser,
	eventID, userID string,
) (*domain.Registration, error) {
	if err := s.authorize(ctx, actor, eventID); err != nil {
		return nil, err
	}

	return s.registrations.MarkAttended(ctx, eventID, userID)
}

func (s *EventService) authorize(ctx context.Context, actor domain.AuthenticatedUser, eventID string) error {
	if err := access.RequireUser(actor); err != nil {
		return err
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	return access.CanManageEvent(actor, event)
}
