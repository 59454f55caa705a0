package ports

import (
	"context"

	"github.com/stpnv0/EventRegistry/internal/domain"
)

// EventTx is the view of a single event inside its exclusive section.
// Writes become visible to other readers only when the section returns nil.
type EventTx interface {
	Event() *domain.Event
	Registration(ctx context.Context, userID string) (*domain.Registration, error)
	ActiveRegistrations(ctx context.Context) ([]*domain.Registration, error)
	SaveRegistration(ctx context.Context, r *domain.Registration) error
	SaveEvent(ctx context.Context, e *domain.Event) error
}

// EventLocker runs fn while holding the exclusive section of one event.
// Sections of different events never block each other. If fn returns an
// error, or ctx ends before commit, nothing fn wrote is applied.
type EventLocker interface {
	WithEventLock(ctx context.Context, eventID string, fn func(ctx context.Context, tx EventTx) error) error
}
