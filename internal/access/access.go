// Package access holds the role and ownership rules applied before event
// administration and roster reads. Identity itself comes from the caller.
package access

import (
	"fmt"

	"github.com/stpnv0/EventRegistry/internal/domain"
)

func RequireUser(u domain.AuthenticatedUser) error {
	if u.ID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

func CanCreateEvents(u domain.AuthenticatedUser) error {
	if err := RequireUser(u); err != nil {
		return err
	}
	if !u.IsAdmin() {
		return fmt.Errorf("%w: only admins can create events", domain.ErrForbidden)
	}
	return nil
}

// CanManageEvent allows admins and the event's owner.
func CanManageEvent(u domain.AuthenticatedUser, e *domain.Event) error {
	if err := RequireUser(u); err != nil {
		return err
	}
	if u.IsAdmin() || u.ID == e.OwnerID {
		return nil
	}
	return fmt.Errorf("%w: only the owner or an admin can manage this event", domain.ErrForbidden)
}
