package access

import (
	"testing"

	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanCreateEvents(t *testing.T) {
	assert.NoError(t, CanCreateEvents(domain.AuthenticatedUser{ID: "a1", Role: domain.RoleAdmin}))
	assert.ErrorIs(t, CanCreateEvents(domain.AuthenticatedUser{ID: "u1", Role: domain.RoleUser}), domain.ErrForbidden)
	assert.ErrorIs(t, CanCreateEvents(domain.AuthenticatedUser{}), domain.ErrUnauthenticated)
}

func TestCanManageEvent(t *testing.T) {
	event := &domain.Event{ID: "e1", OwnerID: "owner"}

	tests := []struct {
		name string
		user domain.AuthenticatedUser
		want error
	}{
		{"owner", domain.AuthenticatedUser{ID: "owner", Role: domain.RoleUser}, nil},
		{"admin", domain.AuthenticatedUser{ID: "someone", Role: domain.RoleAdmin}, nil},
		{"stranger", domain.AuthenticatedUser{ID: "someone", Role: domain.RoleUser}, domain.ErrForbidden},
		{"anonymous", domain.AuthenticatedUser{}, domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanManageEvent(tt.user, event)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
