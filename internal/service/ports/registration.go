package ports

import (
	"context"

	"github.com/stpnv0/EventRegistry/internal/domain"
)

// RegistrationRepo is the read side of the registration ledger.
type RegistrationRepo interface {
	Get(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	CountActive(ctx context.Context, eventID string) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
}
